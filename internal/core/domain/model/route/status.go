package route

import (
	"fmt"

	"fleetroute/internal/pkg/errs"
)

// Status represents the lifecycle state of a route.
//
// State transitions:
//
//	Active ──> Completed
//
// The transition is one-way: a completed route is never resurrected.
type Status int

const (
	// StatusUnknown catches uninitialized Status values.
	StatusUnknown Status = iota

	// Active is the initial status: the route is being driven or awaits it.
	Active

	// Completed means every stop linked to the route reached a terminal
	// status and the route was closed.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		Active:        "Active",
		Completed:     "Completed",
	}
}

// Validate checks that the Status holds one of the defined states.
func (s Status) Validate() error {
	if s != Active && s != Completed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid route status", s))
	}
	return nil
}

// String implements fmt.Stringer. Safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Complete transitions the status to Completed. Only an Active route can be
// completed; completing a completed route is rejected to keep the
// transition one-way.
func (s Status) Complete() (Status, error) {
	if s != Active {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s))
	}
	return Completed, nil
}
