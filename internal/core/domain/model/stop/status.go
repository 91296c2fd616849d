package stop

import (
	"fmt"

	"fleetroute/internal/pkg/errs"
)

// Status represents the delivery lifecycle state of a stop.
//
// State transitions:
//
//	Planned ──> InProgress ──> Completed
//	   ↑            │     └──> Failed
//	   └────────────┘
//	  (unassignment resets any status back to Planned)
//
// Completed and Failed are terminal for routing purposes: a terminal stop
// counts toward route auto-completion. Re-marking a terminal stop is
// permitted and overwrites the previous outcome; only explicit unassignment
// returns a stop to Planned.
type Status int

const (
	// StatusUnknown catches uninitialized Status values.
	StatusUnknown Status = iota

	// Planned is the initial status: the stop awaits routing or execution.
	Planned

	// InProgress means a courier is actively working the stop.
	InProgress

	// Completed means the stop was fulfilled (with proof attached).
	Completed

	// Failed means the stop could not be fulfilled (with a recorded reason).
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		Planned:       "Planned",
		InProgress:    "InProgress",
		Completed:     "Completed",
		Failed:        "Failed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as invalid
	return map[Status]string{
		Planned:    "Planned",
		InProgress: "InProgress",
		Completed:  "Completed",
		Failed:     "Failed",
	}
}

// Validate checks that the Status holds one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
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

// IsTerminal reports whether the status ends the stop's delivery lifecycle.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Failed
}

// Start transitions the status to InProgress. Only a Planned stop can be
// started.
func (s Status) Start() (Status, error) {
	if s != Planned {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to start", s))
	}
	return InProgress, nil
}
