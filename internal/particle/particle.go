// Package particle spawns short-lived decorative particles around a card
// and guarantees they are gone once the card stops asking for them.
package particle

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/zam-dot/folio/internal/motion"
)

const DefaultCount = 12

var (
	ErrInvalidCount    = errors.New("particle: count must be positive")
	ErrInvalidDuration = errors.New("particle: durations must be positive")
	ErrEmptyPalette    = errors.New("particle: palette is empty")
)

// Config is the emitter's configuration surface.
type Config struct {
	Count int
	// Distances holds the start and end travel distances from the centre.
	Distances [2]float64
	// Rotation is the base rotation spread ("particleR").
	Rotation float64

	AnimationTime time.Duration
	TimeVariance  time.Duration
	Stagger       time.Duration
	Teardown      time.Duration
	Emerge        time.Duration

	// Palette colours are picked through PaletteWeights, a list of 1-based
	// palette indices where repeats raise the odds.
	Palette        []string
	PaletteWeights []int
	GlowColor      string

	EnableTilt      bool
	EnableMagnetism bool
	ClickEffect     bool
	TiltMax         float64
	MagnetStrength  float64
	RippleDuration  time.Duration
}

// DefaultConfig returns the card defaults.
func DefaultConfig() Config {
	return Config{
		Count:          DefaultCount,
		Distances:      [2]float64{90, 10},
		Rotation:       100,
		AnimationTime:  600 * time.Millisecond,
		TimeVariance:   300 * time.Millisecond,
		Stagger:        100 * time.Millisecond,
		Teardown:       300 * time.Millisecond,
		Emerge:         300 * time.Millisecond,
		Palette:        []string{"#92bbf4", "#a855f7", "#ec4899", "#06b6d4"},
		PaletteWeights: []int{1, 2, 3, 1, 2, 3, 1, 4},
		GlowColor:      "168, 85, 247",
		EnableTilt:     true,
		TiltMax:        10,
		MagnetStrength: 0.05,
		RippleDuration: 800 * time.Millisecond,
	}
}

// Validate fails fast on settings that would produce a broken animation.
func (c Config) Validate() error {
	if c.Count <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCount, c.Count)
	}
	if c.AnimationTime <= 0 || c.Teardown <= 0 || c.Stagger < 0 || c.Emerge < 0 || c.RippleDuration <= 0 {
		return ErrInvalidDuration
	}
	if c.TimeVariance < 0 || c.TimeVariance >= 2*c.AnimationTime {
		return fmt.Errorf("%w: variance %v must stay below twice the animation time", ErrInvalidDuration, c.TimeVariance)
	}
	if len(c.Palette) == 0 {
		return ErrEmptyPalette
	}
	for _, w := range c.PaletteWeights {
		if w < 1 || w > len(c.Palette) {
			return fmt.Errorf("particle: palette weight %d out of range 1-%d", w, len(c.Palette))
		}
	}
	if _, err := motion.ParseRGB(c.GlowColor); err != nil {
		return fmt.Errorf("particle: %w", err)
	}
	return nil
}

// Template is a precomputed particle trajectory, cloned on every emission.
type Template struct {
	Start, End motion.Vec
	Lifetime   time.Duration
	Scale      float64
	Rotation   float64
	Color      string
}

// Noise returns a uniform value in (-n/2, n/2].
func Noise(rng *rand.Rand, n float64) float64 {
	return n/2 - rng.Float64()*n
}

// PolarXY places point index of total on a circle of the given radius,
// with a few degrees of angular jitter.
func PolarXY(rng *rand.Rand, distance float64, index, total int) motion.Vec {
	angle := ((360 + Noise(rng, 8)) / float64(total)) * float64(index) * (math.Pi / 180)
	return motion.Vec{X: distance * math.Cos(angle), Y: distance * math.Sin(angle)}
}

// NewTemplate builds the i-th particle of a burst.
func NewTemplate(rng *rand.Rand, i int, cfg Config) Template {
	r := cfg.Rotation
	rotate := Noise(rng, r/10)
	if rotate > 0 {
		rotate = (rotate + r/20) * 10
	} else {
		rotate = (rotate - r/20) * 10
	}

	lifetime := float64(2*cfg.AnimationTime) + Noise(rng, float64(2*cfg.TimeVariance))
	point := cfg.Count - i

	return Template{
		Start:    PolarXY(rng, cfg.Distances[0], point, cfg.Count),
		End:      PolarXY(rng, cfg.Distances[1]+Noise(rng, 7), point, cfg.Count),
		Lifetime: time.Duration(lifetime),
		Scale:    1 + Noise(rng, 0.2),
		Rotation: rotate,
		Color:    pickColor(rng, cfg),
	}
}

func pickColor(rng *rand.Rand, cfg Config) string {
	if len(cfg.PaletteWeights) == 0 {
		return cfg.Palette[rng.IntN(len(cfg.Palette))]
	}
	return cfg.Palette[cfg.PaletteWeights[rng.IntN(len(cfg.PaletteWeights))]-1]
}
