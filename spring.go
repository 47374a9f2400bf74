package reveal

import (
	"math"
	"time"
)

const (
	// SpringStep is the fixed integration timestep.
	SpringStep = 16 * time.Millisecond
	// SpringEpsilon is the rest threshold for both velocity and
	// displacement from the target.
	SpringEpsilon = 1e-3
	// MaxSpringSteps bounds a run whose constants never settle (for example
	// zero damping); the spring snaps to its target when reached.
	MaxSpringSteps = 2000
)

// StableSpring clamps spring constants to the range in which semi-implicit
// Euler at SpringStep stays bounded: damping*h < 2 and
// stiffness*h^2 < 4 - 2*damping*h. Stiffness is held to half its limit so
// the first step cannot overshoot the target by more than its distance.
func StableSpring(stiffness, damping float64) (float64, float64) {
	h := SpringStep.Seconds()
	damping = math.Min(damping, 0.9*2/h)
	stiffness = math.Min(stiffness, 0.5*(4-2*damping*h)/(h*h))
	return stiffness, damping
}

// Spring is a damped spring over a single scalar, integrated with
// semi-implicit Euler under f = -Stiffness*(x-Target) - Damping*v.
type Spring struct {
	Stiffness float64
	Damping   float64
	Position  float64
	Velocity  float64
	Target    float64

	steps int
}

// Step advances the spring by dt seconds and reports whether it came to
// rest. At rest the position is snapped to the target and the velocity to
// zero.
func (s *Spring) Step(dt float64) bool {
	f := -s.Stiffness*(s.Position-s.Target) - s.Damping*s.Velocity
	s.Velocity += f * dt
	s.Position += s.Velocity * dt
	s.steps++
	if s.AtRest() || s.steps >= MaxSpringSteps {
		s.Position = s.Target
		s.Velocity = 0
		return true
	}
	return false
}

// AtRest reports whether velocity and displacement are both under
// SpringEpsilon.
func (s *Spring) AtRest() bool {
	return math.Abs(s.Velocity) < SpringEpsilon && math.Abs(s.Position-s.Target) < SpringEpsilon
}

// Steps returns how many steps have run.
func (s *Spring) Steps() int {
	return s.steps
}

// springRun is the runtime handle of a spring strategy in flight.
type springRun struct {
	spring Spring
	acc    time.Duration
	frame  Timer
}

func (sr *springRun) stop() {
	if sr.frame != nil {
		sr.frame.Stop()
		sr.frame = nil
	}
}
