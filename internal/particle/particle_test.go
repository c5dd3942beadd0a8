package particle

import (
	"errors"
	"math"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/zam-dot/folio/internal/motion"
	"github.com/zam-dot/folio/internal/sched"
)

var card = motion.Rect{X: 0, Y: 0, W: 200, H: 100}

// rig drives an emitter against a fake clock, advancing its animation
// clock in step with every fired timer.
type rig struct {
	e       *Emitter
	clock   *sched.Clock
	last    time.Time
	maxLive int
}

func newRig(t *testing.T, cfg Config) *rig {
	t.Helper()
	clock := sched.NewClock()
	e, err := New(cfg, rand.New(rand.NewPCG(1, 2)), sched.WithClock(clock.Now))
	if err != nil {
		t.Fatal(err)
	}
	return &rig{e: e, clock: clock, last: clock.Now()}
}

func (r *rig) run(d time.Duration) {
	until := r.clock.Now().Add(d)
	sched.Drive(r.e.Registry(), r.clock, until, func(msg sched.Msg, at time.Time) {
		r.e.Advance(at.Sub(r.last))
		r.last = at
		r.e.Update(msg)
		r.maxLive = max(r.maxLive, r.e.Live())
	})
	r.e.Advance(until.Sub(r.last))
	r.last = until
}

func TestNewTemplateBounds(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewPCG(7, 11))
	lo := 2*cfg.AnimationTime - cfg.TimeVariance
	hi := 2*cfg.AnimationTime + cfg.TimeVariance

	for n := 0; n < 50; n++ {
		for i := 0; i < cfg.Count; i++ {
			tpl := NewTemplate(rng, i, cfg)
			if tpl.Lifetime < lo || tpl.Lifetime > hi {
				t.Fatalf("lifetime %v outside [%v, %v]", tpl.Lifetime, lo, hi)
			}
			if tpl.Scale < 0.9 || tpl.Scale > 1.1 {
				t.Fatalf("scale %v outside [0.9, 1.1]", tpl.Scale)
			}
			if r := math.Abs(tpl.Rotation); r < 50 || r > 100 {
				t.Fatalf("rotation %v outside 50-100 degrees", tpl.Rotation)
			}
			if d := tpl.Start.Len(); math.Abs(d-90) > 1e-9 {
				t.Fatalf("start distance = %v, want 90", d)
			}
			if d := tpl.End.Len(); d < 6.5 || d > 13.5 {
				t.Fatalf("end distance = %v, want 10±3.5", d)
			}
			if !slices.Contains(cfg.Palette, tpl.Color) {
				t.Fatalf("colour %q not in palette", tpl.Color)
			}
		}
	}
}

func TestNoiseRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 1000; i++ {
		if v := Noise(rng, 10); v <= -5 || v > 5 {
			t.Fatalf("Noise(10) = %v", v)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero count", func(c *Config) { c.Count = 0 }, ErrInvalidCount},
		{"zero animation time", func(c *Config) { c.AnimationTime = 0 }, ErrInvalidDuration},
		{"variance too large", func(c *Config) { c.TimeVariance = 2 * c.AnimationTime }, ErrInvalidDuration},
		{"empty palette", func(c *Config) { c.Palette = nil }, ErrEmptyPalette},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, tt.want) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.want)
		}
	}

	cfg := DefaultConfig()
	cfg.PaletteWeights = []int{1, 9}
	if err := cfg.Validate(); err == nil {
		t.Error("out of range palette weight accepted")
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config: %v", err)
	}
}

func TestHoverEmitsStaggeredBurst(t *testing.T) {
	r := newRig(t, DefaultConfig())
	if cmd := r.e.HoverStart(card); cmd == nil {
		t.Fatal("HoverStart returned no command")
	}
	if got := r.e.Pending(); got != DefaultCount {
		t.Fatalf("pending after hover = %d, want %d", got, DefaultCount)
	}

	r.run(250 * time.Millisecond)
	if got := r.e.Live(); got != 3 {
		t.Errorf("live at 250ms = %d, want 3", got)
	}

	r.run(3 * time.Second)
	if r.maxLive > DefaultCount {
		t.Errorf("max live = %d, exceeds %d", r.maxLive, DefaultCount)
	}
	if r.e.Live() != 0 || r.e.Pending() != 0 {
		t.Errorf("after lifetimes: live=%d pending=%d", r.e.Live(), r.e.Pending())
	}
}

func TestHoverStartIgnoredWhileHovered(t *testing.T) {
	r := newRig(t, DefaultConfig())
	r.e.HoverStart(card)
	r.run(50 * time.Millisecond)
	before := r.e.Pending()
	if cmd := r.e.HoverStart(card); cmd != nil {
		t.Error("second HoverStart scheduled work")
	}
	if r.e.Pending() != before {
		t.Errorf("pending changed from %d to %d", before, r.e.Pending())
	}
}

func TestHoverEndTearsDown(t *testing.T) {
	r := newRig(t, DefaultConfig())
	r.e.HoverStart(card)
	r.run(350 * time.Millisecond)
	if got := r.e.Live(); got != 4 {
		t.Fatalf("live before hover end = %d, want 4", got)
	}

	if cmd := r.e.HoverEnd(); cmd == nil {
		t.Fatal("HoverEnd scheduled no sweep")
	}
	if got := r.e.Pending(); got != 1 {
		t.Errorf("pending after hover end = %d, want only the sweep", got)
	}

	r.run(150 * time.Millisecond)
	for _, s := range r.e.Particles() {
		if !s.Dying || s.Opacity <= 0 || s.Opacity >= 1 {
			t.Errorf("mid teardown snapshot = %+v", s)
		}
	}

	r.run(150 * time.Millisecond)
	if r.e.Live() != 0 || r.e.Pending() != 0 {
		t.Errorf("after teardown: live=%d pending=%d", r.e.Live(), r.e.Pending())
	}
}

func TestRepeatedHoverDoesNotAccumulate(t *testing.T) {
	r := newRig(t, DefaultConfig())
	for i := 0; i < 20; i++ {
		r.e.HoverStart(card)
		r.run(250 * time.Millisecond)
		r.e.HoverEnd()
		r.run(50 * time.Millisecond)
	}
	if r.maxLive > DefaultCount {
		t.Errorf("max live = %d over repeated hovers", r.maxLive)
	}
	r.run(time.Second)
	if r.e.Live() != 0 || r.e.Pending() != 0 {
		t.Errorf("residue after hovers: live=%d pending=%d", r.e.Live(), r.e.Pending())
	}
}

func TestUnmountStopsEverything(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ClickEffect = true
	r := newRig(t, cfg)
	r.e.HoverStart(card)
	r.e.Click(motion.Vec{X: 10, Y: 10}, card)
	r.run(150 * time.Millisecond)

	r.e.Unmount()
	if r.e.Live() != 0 || r.e.Pending() != 0 || len(r.e.Ripples()) != 0 {
		t.Fatalf("unmount left live=%d pending=%d ripples=%d", r.e.Live(), r.e.Pending(), len(r.e.Ripples()))
	}
	if r.e.HoverStart(card) != nil || r.e.Burst() != nil || r.e.Click(motion.Vec{}, card) != nil {
		t.Error("unmounted emitter scheduled work")
	}
	r.run(2 * time.Second)
	if r.e.Live() != 0 || r.e.Animating() {
		t.Error("unmounted emitter came back to life")
	}
}

func TestBurstReplacesPrevious(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Count = 15
	cfg.Stagger = 30 * time.Millisecond
	r := newRig(t, cfg)

	r.e.Burst()
	r.run(40 * time.Millisecond)
	if got := r.e.Live(); got != 15 {
		t.Fatalf("live after burst = %d, want 15", got)
	}

	r.e.Burst()
	if got := r.e.Live(); got != 0 {
		t.Errorf("previous burst survived: %d", got)
	}
	if got := r.e.Pending(); got != 15 {
		t.Errorf("pending after second burst = %d, want 15", got)
	}
	r.run(40 * time.Millisecond)
	if got := r.e.Live(); got != 15 {
		t.Errorf("live after second burst = %d", got)
	}
	r.run(3 * time.Second)
	if r.e.Live() != 0 || r.e.Pending() != 0 {
		t.Errorf("burst residue: live=%d pending=%d", r.e.Live(), r.e.Pending())
	}
}

func TestClickRipple(t *testing.T) {
	cfg := DefaultConfig()
	r := newRig(t, cfg)
	if cmd := r.e.Click(motion.Vec{X: 50, Y: 50}, card); cmd != nil {
		t.Error("click effect disabled but ripple scheduled")
	}

	cfg.ClickEffect = true
	r = newRig(t, cfg)
	r.e.Click(motion.Vec{X: 50, Y: 50}, card)
	if len(r.e.ripples) != 1 {
		t.Fatalf("ripples = %d, want 1", len(r.e.ripples))
	}
	if got, want := r.e.ripples[0].radius, math.Hypot(150, 50); math.Abs(got-want) > 1e-9 {
		t.Errorf("ripple radius = %v, want %v", got, want)
	}

	r.run(400 * time.Millisecond)
	rs := r.e.Ripples()
	if len(rs) != 1 || rs[0].Radius <= 0 || rs[0].Opacity <= 0 {
		t.Errorf("ripple mid animation = %+v", rs)
	}
	r.run(400 * time.Millisecond)
	if len(r.e.Ripples()) != 0 || r.e.Pending() != 0 {
		t.Error("ripple not removed after its duration")
	}
}

func TestTiltAndMagnetism(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableMagnetism = true
	r := newRig(t, cfg)

	r.e.Move(motion.Vec{X: 200, Y: 0}, card)
	if x, y := r.e.Tilt(); x != 0 || y != 0 {
		t.Error("tilt reacted without hover")
	}

	r.e.HoverStart(card)
	r.e.Move(motion.Vec{X: 200, Y: 0}, card)
	settle := func() {
		for i := 0; i < 200; i++ {
			r.e.Advance(16 * time.Millisecond)
		}
	}
	settle()
	if x, y := r.e.Tilt(); x != 10 || y != 10 {
		t.Errorf("tilt = (%v, %v), want (10, 10)", x, y)
	}
	if off := r.e.Offset(); off.X != 5 || off.Y != -2.5 {
		t.Errorf("offset = %+v, want (5, -2.5)", off)
	}

	r.e.HoverEnd()
	settle()
	if x, y := r.e.Tilt(); x != 0 || y != 0 {
		t.Errorf("tilt after leave = (%v, %v)", x, y)
	}
	if off := r.e.Offset(); off.X != 0 || off.Y != 0 {
		t.Errorf("offset after leave = %+v", off)
	}
}
