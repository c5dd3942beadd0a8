// Package spotlight computes how strongly each card glows as the pointer
// approaches it, and drives the single page-level spotlight that follows
// the pointer around a section.
//
// All geometry is in pixels. The host converts terminal cells into pixels
// before calling in, so the default radius reads the same as on a web page.
package spotlight

import (
	"errors"
	"fmt"
	"math"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/zam-dot/folio/internal/motion"
)

const (
	DefaultRadius    = 300
	DefaultGlowColor = "168, 85, 247"
)

var (
	ErrInvalidRadius  = errors.New("spotlight: radius must be positive")
	ErrInvalidOpacity = errors.New("spotlight: max opacity must be in (0,1]")
)

// Config is the engine's configuration surface.
type Config struct {
	Radius     float64
	GlowColor  string
	Enabled    bool
	MaxOpacity float64

	Follow    time.Duration // pointer chase
	FadeIn    time.Duration
	FadeOut   time.Duration // pointer drifted away from every card
	LeaveFade time.Duration // pointer left the section
}

// DefaultConfig mirrors the reference design.
func DefaultConfig() Config {
	return Config{
		Radius:     DefaultRadius,
		GlowColor:  DefaultGlowColor,
		Enabled:    true,
		MaxOpacity: 0.8,
		Follow:     100 * time.Millisecond,
		FadeIn:     200 * time.Millisecond,
		FadeOut:    500 * time.Millisecond,
		LeaveFade:  300 * time.Millisecond,
	}
}

// Validate checks the configuration and returns the parsed glow colour.
func (c Config) Validate() (colorful.Color, error) {
	if c.Radius <= 0 || math.IsNaN(c.Radius) || math.IsInf(c.Radius, 0) {
		return colorful.Color{}, fmt.Errorf("%w: %v", ErrInvalidRadius, c.Radius)
	}
	if c.MaxOpacity <= 0 || c.MaxOpacity > 1 {
		return colorful.Color{}, fmt.Errorf("%w: %v", ErrInvalidOpacity, c.MaxOpacity)
	}
	col, err := motion.ParseRGB(c.GlowColor)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("spotlight: %w", err)
	}
	return col, nil
}

// Values are the two radii derived from the configured base radius.
type Values struct {
	Proximity float64 // full intensity at or inside
	Fade      float64 // zero intensity at or beyond
}

// SpotlightValues derives proximity = 0.5R and fade = 0.75R.
func SpotlightValues(radius float64) Values {
	return Values{Proximity: radius * 0.5, Fade: radius * 0.75}
}

// EdgeDistance approximates the distance from p to the edge of r by
// subtracting half the larger dimension from the centre distance. Zero-area
// rectangles use the centre distance as is.
func EdgeDistance(p motion.Vec, r motion.Rect) float64 {
	d := p.Sub(r.Center()).Len()
	if r.Empty() {
		return d
	}
	return math.Max(0, d-math.Max(r.W, r.H)/2)
}

// Intensity maps an edge distance to a glow strength in [0,1].
func Intensity(d float64, v Values) float64 {
	switch {
	case d <= v.Proximity:
		return 1
	case d >= v.Fade:
		return 0
	}
	return motion.Clamp01((v.Fade - d) / (v.Fade - v.Proximity))
}
