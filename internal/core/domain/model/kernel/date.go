package kernel

import "time"

// DateOnly truncates a timestamp to its calendar day in UTC. Service dates
// are stored and compared as midnight-UTC instants, so every boundary that
// accepts a date from a caller must pass it through here first.
func DateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
