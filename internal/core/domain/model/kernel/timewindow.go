package kernel

import (
	"errors"
	"fmt"
	"time"

	"fleetroute/internal/pkg/errs"
)

// ErrTimeWindowIsNotConstructed indicates a zero-value TimeWindow that did
// not come from NewTimeWindow.
var ErrTimeWindowIsNotConstructed = errs.NewValueIsRequiredError(
	"time window must be created via NewTimeWindow")

// clockLayout is the wire format for window boundaries (24-hour clock).
const clockLayout = "15:04"

// TimeWindow is a half-open daily service window [start, end) expressed as
// wall-clock times. It is calendar-agnostic: Anchor projects it onto a
// concrete service date when a routing problem is built.
//
// Example:
//
//	w, err := kernel.NewTimeWindow("09:30", "12:00")
//	start, end := w.Anchor(serviceDate) // absolute instants on that date
type TimeWindow struct { //nolint:recvcheck //using for validation
	start time.Duration // offset from midnight
	end   time.Duration
	guard ConstructorGuard
}

// NewTimeWindow creates a validated window from "HH:MM" boundaries.
// The start must precede the end; windows never span midnight.
func NewTimeWindow(start string, end string) (TimeWindow, error) {
	w := TimeWindow{guard: NewConstructorGuard()}

	startOffset, err := parseClock(start)
	if err != nil {
		return TimeWindow{}, errs.NewValueIsInvalidErrorWithCause("time window start", err)
	}

	endOffset, err := parseClock(end)
	if err != nil {
		return TimeWindow{}, errs.NewValueIsInvalidErrorWithCause("time window end", err)
	}

	if startOffset >= endOffset {
		return TimeWindow{}, errs.NewValueIsInvalidErrorWithCause(
			"time window",
			fmt.Errorf("start %s is not before end %s", start, end),
		)
	}

	w.start = startOffset
	w.end = endOffset
	return w, nil
}

// Start returns the window start as "HH:MM".
func (w TimeWindow) Start() string {
	return formatClock(w.start)
}

// End returns the window end as "HH:MM".
func (w TimeWindow) End() string {
	return formatClock(w.end)
}

// Anchor projects the window onto a concrete date, returning absolute
// instants in the date's location.
func (w TimeWindow) Anchor(date time.Time) (time.Time, time.Time) {
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return midnight.Add(w.start), midnight.Add(w.end)
}

// IsEqual reports whether two windows cover the same daily interval.
func (w TimeWindow) IsEqual(other TimeWindow) bool {
	return w.start == other.start && w.end == other.end
}

// String implements fmt.Stringer.
func (w TimeWindow) String() string {
	return fmt.Sprintf("TimeWindow(%s-%s)", w.Start(), w.End())
}

// Validate ensures the window was created via NewTimeWindow.
func (w TimeWindow) Validate() error {
	return w.guard.Validate(ErrTimeWindowIsNotConstructed)
}

func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, errors.New("expected HH:MM")
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func formatClock(offset time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(offset.Hours()), int(offset.Minutes())%60)
}
