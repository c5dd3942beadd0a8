package particle

import (
	"math"
	"math/rand/v2"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zam-dot/folio/internal/motion"
	"github.com/zam-dot/folio/internal/sched"
)

// Timer payloads.
type (
	emit struct {
		index int
		burst bool
		gen   int
	}
	expire struct {
		id    int
		burst bool
	}
	sweep      struct{ batch int }
	rippleDone struct{ id int }
)

type particle struct {
	id    int
	tpl   Template
	born  time.Duration
	burst bool

	dying   bool
	dyingAt time.Duration
	batch   int
}

type ripple struct {
	id     int
	origin motion.Vec
	radius float64
	born   time.Duration
}

// Snapshot is the render state of one particle, positioned relative to the
// element centre.
type Snapshot struct {
	Pos      motion.Vec
	Scale    float64
	Opacity  float64
	Rotation float64
	Color    string
	Dying    bool
}

// RippleSnapshot is the render state of a click ripple, positioned relative
// to the element's top-left corner.
type RippleSnapshot struct {
	Origin  motion.Vec
	Radius  float64
	Opacity float64
}

// Emitter owns every particle, ripple and timer of one element.
type Emitter struct {
	cfg Config
	rng *rand.Rand
	reg *sched.Registry

	templates []Template
	live      []*particle
	ripples   []ripple

	active   bool
	hovered  bool
	nextID   int
	batch    int
	burstGen int
	elapsed  time.Duration

	tiltX, tiltY motion.Spring
	magX, magY   motion.Spring
}

// New validates cfg and returns an active emitter. A nil rng seeds one
// from the clock.
func New(cfg Config, rng *rand.Rand, opts ...sched.Option) (*Emitter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15))
	}
	return &Emitter{
		cfg:    cfg,
		rng:    rng,
		reg:    sched.New(opts...),
		active: true,
		tiltX:  motion.NewSpring(14, 0.9),
		tiltY:  motion.NewSpring(14, 0.9),
		magX:   motion.NewSpring(10, 1),
		magY:   motion.NewSpring(10, 1),
	}, nil
}

func (e *Emitter) Config() Config { return e.cfg }

// Registry exposes the emitter's timers so a host can drive them.
func (e *Emitter) Registry() *sched.Registry { return e.reg }

func (e *Emitter) Active() bool { return e.active }

func (e *Emitter) Hovered() bool { return e.hovered }

// Live returns the number of particles currently attached, dying included.
func (e *Emitter) Live() int { return len(e.live) }

// Pending returns the number of outstanding timers.
func (e *Emitter) Pending() int { return e.reg.Len() }

// HoverStart begins a staggered burst: particle i is emitted i*Stagger
// after the pointer entered. Repeated calls while hovered are ignored.
func (e *Emitter) HoverStart(bounds motion.Rect) tea.Cmd {
	if !e.active || e.hovered {
		return nil
	}
	e.hovered = true
	if e.templates == nil {
		e.templates = make([]Template, e.cfg.Count)
		for i := range e.templates {
			e.templates[i] = NewTemplate(e.rng, i, e.cfg)
		}
	}
	if e.cfg.EnableTilt {
		e.tiltX.Target, e.tiltY.Target = 5, 5
	}

	cmds := make([]tea.Cmd, 0, len(e.templates))
	for i := range e.templates {
		cmds = append(cmds, e.reg.After(time.Duration(i)*e.cfg.Stagger, emit{index: i}))
	}
	return tea.Batch(cmds...)
}

// HoverEnd cancels the pending emissions and expiries, then shrinks and
// fades whatever is still attached. A sweep timer detaches that batch once
// the teardown animation is over.
func (e *Emitter) HoverEnd() tea.Cmd {
	if !e.active || !e.hovered {
		return nil
	}
	e.hovered = false
	e.reg.CancelFunc(func(p any) bool {
		switch p := p.(type) {
		case emit:
			return !p.burst
		case expire:
			return !p.burst
		}
		return false
	})

	e.tiltX.Target, e.tiltY.Target = 0, 0
	e.magX.Target, e.magY.Target = 0, 0

	e.batch++
	dying := false
	for _, p := range e.live {
		if p.burst || p.dying {
			continue
		}
		p.dying, p.dyingAt, p.batch = true, e.elapsed, e.batch
		dying = true
	}
	if !dying {
		return nil
	}
	return e.reg.After(e.cfg.Teardown, sweep{batch: e.batch})
}

// Burst replaces any previous one-shot burst with a fresh set of particles
// that expire on their own. Every particle waits the same Stagger delay.
func (e *Emitter) Burst() tea.Cmd {
	if !e.active {
		return nil
	}
	e.burstGen++
	e.reg.CancelFunc(func(p any) bool {
		switch p := p.(type) {
		case emit:
			return p.burst
		case expire:
			return p.burst
		}
		return false
	})
	e.live = slices.DeleteFunc(e.live, func(p *particle) bool { return p.burst })

	cmds := make([]tea.Cmd, 0, e.cfg.Count)
	for i := 0; i < e.cfg.Count; i++ {
		cmds = append(cmds, e.reg.After(e.cfg.Stagger, emit{index: i, burst: true, gen: e.burstGen}))
	}
	return tea.Batch(cmds...)
}

// Click starts a ripple sized to reach the farthest corner of the element.
func (e *Emitter) Click(p motion.Vec, bounds motion.Rect) tea.Cmd {
	if !e.active || !e.cfg.ClickEffect {
		return nil
	}
	x, y := p.X-bounds.X, p.Y-bounds.Y
	maxDistance := math.Max(
		math.Max(math.Hypot(x, y), math.Hypot(x-bounds.W, y)),
		math.Max(math.Hypot(x, y-bounds.H), math.Hypot(x-bounds.W, y-bounds.H)),
	)

	e.nextID++
	e.ripples = append(e.ripples, ripple{
		id:     e.nextID,
		origin: motion.Vec{X: x, Y: y},
		radius: maxDistance,
		born:   e.elapsed,
	})
	return e.reg.After(e.cfg.RippleDuration, rippleDone{id: e.nextID})
}

// Move tilts the element towards the pointer and pulls it slightly along.
func (e *Emitter) Move(p motion.Vec, bounds motion.Rect) {
	if !e.active || !e.hovered || bounds.Empty() {
		return
	}
	x, y := p.X-bounds.X, p.Y-bounds.Y
	cx, cy := bounds.W/2, bounds.H/2

	if e.cfg.EnableTilt {
		e.tiltX.Target = ((y - cy) / cy) * -e.cfg.TiltMax
		e.tiltY.Target = ((x - cx) / cx) * e.cfg.TiltMax
	}
	if e.cfg.EnableMagnetism {
		e.magX.Target = (x - cx) * e.cfg.MagnetStrength
		e.magY.Target = (y - cy) * e.cfg.MagnetStrength
	}
}

// Update consumes the emitter's own timer messages.
func (e *Emitter) Update(msg tea.Msg) tea.Cmd {
	payload, ok := e.reg.Accept(msg)
	if !ok || !e.active {
		return nil
	}

	switch p := payload.(type) {
	case emit:
		return e.emit(p)

	case expire:
		e.live = slices.DeleteFunc(e.live, func(q *particle) bool { return q.id == p.id })

	case sweep:
		e.live = slices.DeleteFunc(e.live, func(q *particle) bool { return q.dying && q.batch == p.batch })

	case rippleDone:
		e.ripples = slices.DeleteFunc(e.ripples, func(r ripple) bool { return r.id == p.id })
	}
	return nil
}

func (e *Emitter) emit(p emit) tea.Cmd {
	var tpl Template
	if p.burst {
		if p.gen != e.burstGen {
			return nil
		}
		tpl = NewTemplate(e.rng, p.index, e.cfg)
	} else {
		if !e.hovered || p.index >= len(e.templates) {
			return nil
		}
		tpl = e.templates[p.index]
	}

	e.nextID++
	e.live = append(e.live, &particle{id: e.nextID, tpl: tpl, born: e.elapsed, burst: p.burst})
	return e.reg.After(tpl.Lifetime, expire{id: e.nextID, burst: p.burst})
}

// Advance moves the animation clock forward.
func (e *Emitter) Advance(dt time.Duration) {
	if !e.active {
		return
	}
	e.elapsed += dt
	e.tiltX.Advance(dt)
	e.tiltY.Advance(dt)
	e.magX.Advance(dt)
	e.magY.Advance(dt)
}

// Animating reports whether anything still needs frames.
func (e *Emitter) Animating() bool {
	if !e.active {
		return false
	}
	return len(e.live) > 0 || len(e.ripples) > 0 ||
		!e.tiltX.Settled() || !e.tiltY.Settled() ||
		!e.magX.Settled() || !e.magY.Settled()
}

// Tilt returns the current rotation around the X and Y axes, in degrees.
func (e *Emitter) Tilt() (x, y float64) {
	return e.tiltX.Pos, e.tiltY.Pos
}

// Offset returns the current magnetism translation in pixels.
func (e *Emitter) Offset() motion.Vec {
	return motion.Vec{X: e.magX.Pos, Y: e.magY.Pos}
}

// Particles returns the render state of every attached particle.
func (e *Emitter) Particles() []Snapshot {
	backOut := motion.BackOut(1.7)
	backIn := motion.BackIn(1.7)

	out := make([]Snapshot, 0, len(e.live))
	for _, p := range e.live {
		age := e.elapsed - p.born
		progress := ratio(age, p.tpl.Lifetime)

		emerge := 1.0
		if e.cfg.Emerge > 0 {
			emerge = ratio(age, e.cfg.Emerge)
		}
		s := Snapshot{
			Pos:      p.tpl.Start.Lerp(p.tpl.End, motion.Power2Out(progress)),
			Scale:    p.tpl.Scale * backOut(emerge),
			Opacity:  emerge,
			Rotation: p.tpl.Rotation * progress,
			Color:    p.tpl.Color,
			Dying:    p.dying,
		}
		if p.dying {
			t := ratio(e.elapsed-p.dyingAt, e.cfg.Teardown)
			s.Scale *= math.Max(0, 1-backIn(t))
			s.Opacity *= 1 - t
		}
		out = append(out, s)
	}
	return out
}

// Ripples returns the render state of every live ripple.
func (e *Emitter) Ripples() []RippleSnapshot {
	out := make([]RippleSnapshot, 0, len(e.ripples))
	for _, r := range e.ripples {
		t := motion.Power2Out(ratio(e.elapsed-r.born, e.cfg.RippleDuration))
		out = append(out, RippleSnapshot{Origin: r.origin, Radius: r.radius * t, Opacity: 1 - t})
	}
	return out
}

// Unmount stops every timer and detaches everything immediately. The
// emitter cannot be reused.
func (e *Emitter) Unmount() {
	e.active = false
	e.hovered = false
	e.reg.Close()
	e.live = nil
	e.ripples = nil
	e.tiltX.Reset()
	e.tiltY.Reset()
	e.magX.Reset()
	e.magY.Reset()
}

func ratio(a, b time.Duration) float64 {
	if b <= 0 {
		return 1
	}
	return motion.Clamp01(float64(a) / float64(b))
}
