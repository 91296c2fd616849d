package commands

import (
	"errors"

	"fleetroute/internal/core/domain/model/kernel"
)

var (
	ErrMarkStopTerminalCommandIsNotConstructed = errors.New(
		"MarkStopTerminalCommand must be created via NewCompleteStopCommand or NewFailStopCommand constructor",
	)
	ErrFailureReasonIsRequired = errors.New("failure reason is required")
)

// Outcome is the terminal state a stop is being marked with.
type Outcome int

const (
	OutcomeUnknown Outcome = iota

	// OutcomeCompleted marks the stop fulfilled, with an optional proof
	// reference.
	OutcomeCompleted

	// OutcomeFailed marks the stop unfulfillable, with a mandatory reason.
	OutcomeFailed
)

// MarkStopTerminalCommand records the driver-facing outcome of one stop.
// Re-marking an already-terminal stop is permitted and overwrites the
// previous outcome.
type MarkStopTerminalCommand struct { //nolint:recvcheck //using for validation
	stopID   kernel.UUID
	outcome  Outcome
	proofRef string
	reason   string

	guard kernel.ConstructorGuard
}

// NewCompleteStopCommand creates a command marking the stop completed.
// The proof reference may be empty.
func NewCompleteStopCommand(stopID kernel.UUID, proofRef string) (MarkStopTerminalCommand, error) {
	if err := stopID.Validate(); err != nil {
		return MarkStopTerminalCommand{}, err
	}

	return MarkStopTerminalCommand{
		stopID:   stopID,
		outcome:  OutcomeCompleted,
		proofRef: proofRef,
		guard:    kernel.NewConstructorGuard(),
	}, nil
}

// NewFailStopCommand creates a command marking the stop failed.
func NewFailStopCommand(stopID kernel.UUID, reason string) (MarkStopTerminalCommand, error) {
	if err := stopID.Validate(); err != nil {
		return MarkStopTerminalCommand{}, err
	}
	if reason == "" {
		return MarkStopTerminalCommand{}, ErrFailureReasonIsRequired
	}

	return MarkStopTerminalCommand{
		stopID:  stopID,
		outcome: OutcomeFailed,
		reason:  reason,
		guard:   kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through a constructor.
func (c MarkStopTerminalCommand) Validate() error {
	return c.guard.Validate(ErrMarkStopTerminalCommandIsNotConstructed)
}

// StopID returns the stop being marked.
func (c MarkStopTerminalCommand) StopID() kernel.UUID {
	return c.stopID
}

// Outcome returns the terminal state being recorded.
func (c MarkStopTerminalCommand) Outcome() Outcome {
	return c.outcome
}

// ProofRef returns the proof-of-completion reference.
func (c MarkStopTerminalCommand) ProofRef() string {
	return c.proofRef
}

// Reason returns the failure reason.
func (c MarkStopTerminalCommand) Reason() string {
	return c.reason
}
