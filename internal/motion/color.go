package motion

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ParseRGB parses a glow colour written as "R,G,B" with 0-255 components.
// A leading '#' switches to hex notation.
func ParseRGB(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("parse colour %q: %w", s, err)
		}
		return c, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return colorful.Color{}, fmt.Errorf("parse colour %q: want R,G,B", s)
	}
	var rgb [3]float64
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return colorful.Color{}, fmt.Errorf("parse colour %q: %w", s, err)
		}
		if v < 0 || v > 255 {
			return colorful.Color{}, fmt.Errorf("parse colour %q: component %d out of range", s, v)
		}
		rgb[i] = float64(v) / 255
	}
	return colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}

// MustHex parses a hex colour, falling back to black.
func MustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

// Blend mixes base towards glow by t and returns a terminal colour.
func Blend(base, glow colorful.Color, t float64) lipgloss.Color {
	return lipgloss.Color(base.BlendLab(glow, Clamp01(t)).Clamped().Hex())
}
