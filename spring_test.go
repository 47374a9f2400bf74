package reveal

import (
	"math"
	"testing"
)

func TestSpringSettles(t *testing.T) {
	s := Spring{Stiffness: 180, Damping: 18, Target: 1}
	dt := SpringStep.Seconds()
	done := false
	for !done {
		done = s.Step(dt)
	}
	if s.Position != 1 || s.Velocity != 0 {
		t.Errorf("Position, Velocity = %v, %v, want 1, 0", s.Position, s.Velocity)
	}
	if s.Steps() >= MaxSpringSteps {
		t.Errorf("Steps = %d, want settling before the cap", s.Steps())
	}
}

func TestSpringFromNearTarget(t *testing.T) {
	s := Spring{Stiffness: 180, Damping: 18, Position: 0.92, Target: 1}
	dt := SpringStep.Seconds()
	for !s.Step(dt) {
	}
	if s.Position != 1 {
		t.Errorf("Position = %v, want 1", s.Position)
	}
	if s.Steps() >= MaxSpringSteps {
		t.Errorf("Steps = %d, want settling before the cap", s.Steps())
	}
}

func TestSpringOvershoots(t *testing.T) {
	s := Spring{Stiffness: 300, Damping: 8, Target: 1}
	dt := SpringStep.Seconds()
	peak := 0.0
	for !s.Step(dt) {
		peak = max(peak, s.Position)
	}
	if peak <= 1 {
		t.Errorf("peak = %v, want overshoot past the target", peak)
	}
}

func TestSpringUndampedHitsCap(t *testing.T) {
	s := Spring{Stiffness: 180, Target: 1}
	dt := SpringStep.Seconds()
	for !s.Step(dt) {
	}
	if s.Steps() != MaxSpringSteps {
		t.Errorf("Steps = %d, want %d", s.Steps(), MaxSpringSteps)
	}
	if s.Position != 1 || s.Velocity != 0 {
		t.Errorf("Position, Velocity = %v, %v, want snap to 1, 0", s.Position, s.Velocity)
	}
}

func TestStableSpring(t *testing.T) {
	h := SpringStep.Seconds()
	tests := []struct {
		k, c float64
	}{
		{100000, 1},
		{100000, 500},
	}
	for _, tt := range tests {
		k, c := StableSpring(tt.k, tt.c)
		if c*h >= 2 || k*h*h >= 4-2*c*h {
			t.Errorf("StableSpring(%v, %v) = %v, %v, outside the stable range", tt.k, tt.c, k, c)
		}
		s := Spring{Stiffness: k, Damping: c, Target: 1}
		for !s.Step(h) {
			if math.Abs(s.Position) > 2 {
				t.Fatalf("StableSpring(%v, %v): Position = %v after %d steps, want bounded", tt.k, tt.c, s.Position, s.Steps())
			}
		}
	}

	if k, c := StableSpring(180, 18); k != 180 || c != 18 {
		t.Errorf("StableSpring(180, 18) = %v, %v, want unchanged", k, c)
	}
}

func TestSpringAtRest(t *testing.T) {
	s := Spring{Position: 1, Target: 1}
	if !s.AtRest() {
		t.Error("spring at target with no velocity should be at rest")
	}
	s.Velocity = 0.1
	if s.AtRest() {
		t.Error("moving spring reported at rest")
	}
}
