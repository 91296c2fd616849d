package commands

import "sync"

// routeLocks hands out one mutex per route id so that a stop update and the
// route auto-completion check that follows it form a critical section per
// route. Two stops of the same route being marked terminal concurrently must
// not race past each other and leave the route active with all stops done.
//
// Locks are never evicted; the map grows with the number of distinct routes
// touched by one process lifetime, which is bounded by daily planning volume.
type routeLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newRouteLocks() *routeLocks {
	return &routeLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *routeLocks) lock(routeID string) *sync.Mutex {
	l.mu.Lock()
	m, ok := l.locks[routeID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[routeID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m
}
