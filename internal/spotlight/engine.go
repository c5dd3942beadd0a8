package spotlight

import (
	"math"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/zam-dot/folio/internal/motion"
)

// Element is a tracked card and its current bounds.
type Element struct {
	ID     string
	Bounds motion.Rect
}

// Glow is the presentation state written back for one element.
type Glow struct {
	Intensity float64
	// Origin of the highlight inside the element, in percent (0-100).
	OriginX, OriginY float64
	Radius           float64
}

// OverlayState is a snapshot of the page-level spotlight.
type OverlayState struct {
	Pos     motion.Vec
	Opacity float64
	Color   colorful.Color
}

type overlay struct {
	x, y, opacity motion.Tween
	placed        bool
}

// Engine tracks the pointer against a set of elements. It owns the overlay:
// created by Mount, destroyed by Unmount, never handed out by reference.
type Engine struct {
	cfg    Config
	color  colorful.Color
	values Values

	glows   map[string]Glow
	overlay *overlay
	inside  bool
}

// New validates cfg and returns an unmounted engine.
func New(cfg Config) (*Engine, error) {
	col, err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	return &Engine{
		cfg:    cfg,
		color:  col,
		values: SpotlightValues(cfg.Radius),
		glows:  make(map[string]Glow),
	}, nil
}

func (e *Engine) Config() Config { return e.cfg }

func (e *Engine) Values() Values { return e.values }

func (e *Engine) Color() colorful.Color { return e.color }

// Mount creates the overlay. Mounting twice keeps the existing one.
func (e *Engine) Mount() {
	if !e.cfg.Enabled || e.overlay != nil {
		return
	}
	e.overlay = &overlay{
		x:       motion.NewTween(0, motion.Power2Out),
		y:       motion.NewTween(0, motion.Power2Out),
		opacity: motion.NewTween(0, motion.Power2Out),
	}
}

// Unmount destroys the overlay and forgets every glow.
func (e *Engine) Unmount() {
	e.overlay = nil
	e.inside = false
	clear(e.glows)
}

func (e *Engine) Mounted() bool { return e.overlay != nil }

// Inside reports whether the last pointer position was inside the section.
func (e *Engine) Inside() bool { return e.inside }

// Update recomputes every element's glow for pointer p. Pointers outside
// section behave like Leave.
func (e *Engine) Update(p motion.Vec, section motion.Rect, elems []Element) {
	if e.overlay == nil {
		return
	}
	if !section.Contains(p) {
		e.leave(elems)
		return
	}
	e.inside = true

	minDistance := math.Inf(1)
	seen := make(map[string]struct{}, len(elems))
	for _, el := range elems {
		d := EdgeDistance(p, el.Bounds)
		minDistance = math.Min(minDistance, d)
		e.glows[el.ID] = Glow{
			Intensity: Intensity(d, e.values),
			OriginX:   relative(p.X, el.Bounds.X, el.Bounds.W),
			OriginY:   relative(p.Y, el.Bounds.Y, el.Bounds.H),
			Radius:    e.cfg.Radius,
		}
		seen[el.ID] = struct{}{}
	}
	// Elements no longer laid out stop glowing.
	for id := range e.glows {
		if _, ok := seen[id]; !ok {
			delete(e.glows, id)
		}
	}

	o := e.overlay
	if !o.placed {
		o.x.Set(p.X)
		o.y.Set(p.Y)
		o.placed = true
	} else {
		o.x.Retarget(p.X, e.cfg.Follow)
		o.y.Retarget(p.Y, e.cfg.Follow)
	}

	target := 0.0
	if !math.IsInf(minDistance, 1) {
		target = Intensity(minDistance, e.values) * e.cfg.MaxOpacity
	}
	if target != o.opacity.Target() {
		d := e.cfg.FadeOut
		if target > 0 {
			d = e.cfg.FadeIn
		}
		o.opacity.Retarget(target, d)
	}
}

// Leave forces every intensity to zero and fades the overlay out.
func (e *Engine) Leave() {
	e.leave(nil)
}

func (e *Engine) leave(elems []Element) {
	if e.overlay == nil {
		return
	}
	e.inside = false
	for id, g := range e.glows {
		g.Intensity = 0
		e.glows[id] = g
	}
	for _, el := range elems {
		g := e.glows[el.ID]
		g.Intensity = 0
		e.glows[el.ID] = g
	}
	if e.overlay.opacity.Target() != 0 {
		e.overlay.opacity.Retarget(0, e.cfg.LeaveFade)
	}
}

// Glow returns the glow for an element; untracked elements do not glow.
func (e *Engine) Glow(id string) Glow {
	return e.glows[id]
}

// Overlay returns a copy of the overlay state while mounted.
func (e *Engine) Overlay() (OverlayState, bool) {
	if e.overlay == nil || !e.overlay.placed {
		return OverlayState{}, false
	}
	return OverlayState{
		Pos:     motion.Vec{X: e.overlay.x.Value(), Y: e.overlay.y.Value()},
		Opacity: e.overlay.opacity.Value(),
		Color:   e.color,
	}, true
}

// Advance steps the overlay transitions.
func (e *Engine) Advance(dt time.Duration) {
	if e.overlay == nil {
		return
	}
	e.overlay.x.Advance(dt)
	e.overlay.y.Advance(dt)
	e.overlay.opacity.Advance(dt)
}

// Animating reports whether an overlay transition is in flight.
func (e *Engine) Animating() bool {
	if e.overlay == nil {
		return false
	}
	o := e.overlay
	return !o.x.Done() || !o.y.Done() || !o.opacity.Done()
}

func relative(v, origin, size float64) float64 {
	if size <= 0 {
		return 50
	}
	return (v - origin) / size * 100
}
