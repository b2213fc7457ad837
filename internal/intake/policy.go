package intake

import (
	"errors"
	"fmt"
	"time"
)

// MsgStartAtPast is the single future-time rejection message.
const MsgStartAtPast = "startAt must be in the future"

// GridRule rejects start times that do not fall on the configured slot
// grid. The rule is wired onto a Service only when the deployment
// enables it; a Service whose grid is nil skips the check by deliberate
// omission, never by accident.
type GridRule struct {
	stepMinutes int
}

func NewGridRule(stepMinutes int) *GridRule {
	if stepMinutes <= 0 {
		return nil
	}
	return &GridRule{stepMinutes: stepMinutes}
}

// Check validates that the (already minute-floored, UTC) start time is
// aligned to the grid.
func (g *GridRule) Check(start time.Time) error {
	if start.UTC().Minute()%g.stepMinutes != 0 {
		return fmt.Errorf("startAt must fall on a %d-minute slot boundary", g.stepMinutes)
	}
	return nil
}

// checkFuture enforces that the appointment starts strictly after the
// evaluation instant. Equal-to-now is rejected.
func checkFuture(start, now time.Time) error {
	if !start.After(now) {
		return errors.New(MsgStartAtPast)
	}
	return nil
}
