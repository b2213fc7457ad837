package intake

import (
	"testing"
	"time"
)

func TestGridRuleAlignment(t *testing.T) {
	grid := NewGridRule(15)
	base := time.Date(2025, 9, 20, 18, 0, 0, 0, time.UTC)

	for minute := 0; minute < 60; minute++ {
		start := base.Add(time.Duration(minute) * time.Minute)
		err := grid.Check(start)
		aligned := minute%15 == 0
		if aligned && err != nil {
			t.Fatalf("minute %d: expected aligned, got %v", minute, err)
		}
		if !aligned && err == nil {
			t.Fatalf("minute %d: expected grid rejection", minute)
		}
	}
}

func TestNewGridRuleDisabled(t *testing.T) {
	if NewGridRule(0) != nil {
		t.Fatal("expected nil rule for step 0")
	}
	if NewGridRule(-5) != nil {
		t.Fatal("expected nil rule for negative step")
	}
}

func TestCheckFuture(t *testing.T) {
	now := time.Date(2025, 9, 20, 18, 0, 0, 0, time.UTC)

	if err := checkFuture(now.Add(time.Minute), now); err != nil {
		t.Fatalf("expected future start accepted, got %v", err)
	}
	if err := checkFuture(now, now); err == nil {
		t.Fatal("expected equal-to-now rejected")
	}
	if err := checkFuture(now.Add(-time.Hour), now); err == nil {
		t.Fatal("expected past start rejected")
	}
}
