package motion

import (
	"math"
	"time"
)

// Ease maps normalised time in [0,1] to progress.
type Ease func(t float64) float64

func Linear(t float64) float64 { return t }

func Power2Out(t float64) float64 { return 1 - (1-t)*(1-t) }

func Power2InOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// BackIn overshoots backwards before accelerating in.
func BackIn(s float64) Ease {
	return func(t float64) float64 {
		return (s+1)*t*t*t - s*t*t
	}
}

// BackOut overshoots the target before settling.
func BackOut(s float64) Ease {
	return func(t float64) float64 {
		t--
		return 1 + (s+1)*t*t*t + s*t*t
	}
}

// Tween interpolates a value towards a target over a fixed duration.
// Retargeting starts from wherever the value currently is.
type Tween struct {
	from, to float64
	dur      time.Duration
	elapsed  time.Duration
	ease     Ease
}

// NewTween returns a tween resting at v.
func NewTween(v float64, ease Ease) Tween {
	if ease == nil {
		ease = Linear
	}
	return Tween{from: v, to: v, ease: ease}
}

// Retarget starts a new transition from the current value to `to`.
func (tw *Tween) Retarget(to float64, d time.Duration) {
	cur := tw.Value()
	tw.from, tw.to = cur, to
	tw.dur, tw.elapsed = d, 0
}

// Set jumps to v with no transition.
func (tw *Tween) Set(v float64) {
	tw.from, tw.to = v, v
	tw.dur, tw.elapsed = 0, 0
}

func (tw *Tween) Advance(dt time.Duration) {
	if tw.elapsed < tw.dur {
		tw.elapsed = min(tw.elapsed+dt, tw.dur)
	}
}

func (tw Tween) Value() float64 {
	if tw.dur <= 0 || tw.elapsed >= tw.dur {
		return tw.to
	}
	p := float64(tw.elapsed) / float64(tw.dur)
	return tw.from + (tw.to-tw.from)*tw.ease(p)
}

func (tw Tween) Target() float64 { return tw.to }

func (tw Tween) Done() bool { return tw.dur <= 0 || tw.elapsed >= tw.dur }
