package motion

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

const settleEpsilon = 0.01

// Spring is a damped spring chasing a target, stepped by wall-clock deltas.
type Spring struct {
	Pos, Vel, Target float64

	freq, damping float64
}

// NewSpring returns a spring at rest at zero.
func NewSpring(angularFrequency, dampingRatio float64) Spring {
	return Spring{freq: angularFrequency, damping: dampingRatio}
}

func (s *Spring) Advance(dt time.Duration) {
	if dt <= 0 || s.Settled() {
		return
	}
	h := harmonica.NewSpring(dt.Seconds(), s.freq, s.damping)
	s.Pos, s.Vel = h.Update(s.Pos, s.Vel, s.Target)
	if s.Settled() {
		s.Pos, s.Vel = s.Target, 0
	}
}

func (s Spring) Settled() bool {
	return math.Abs(s.Pos-s.Target) < settleEpsilon && math.Abs(s.Vel) < settleEpsilon
}

// Reset snaps the spring to rest at zero.
func (s *Spring) Reset() {
	s.Pos, s.Vel, s.Target = 0, 0, 0
}
