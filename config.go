package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/zam-dot/folio/internal/particle"
	"github.com/zam-dot/folio/internal/spotlight"
	"github.com/zam-dot/folio/internal/typewriter"
)

// Config holds every user-tunable setting. Later layers override earlier
// ones: defaults, config file, .env and FOLIO_* variables, flags.
type Config struct {
	ContentFile string `yaml:"content"`
	Splash      bool   `yaml:"splash"`
	Mouse       bool   `yaml:"mouse"`
	FPS         int    `yaml:"fps"`
	Static      bool   `yaml:"static"`
	LogFile     string `yaml:"log_file"`
	// Seed fixes the particle random source; zero seeds from the clock.
	Seed uint64 `yaml:"seed"`

	SpotlightRadius float64 `yaml:"spotlight_radius"`
	GlowColor       string  `yaml:"glow_color"`
	ParticleCount   int     `yaml:"particle_count"`
	EnableTilt      bool    `yaml:"tilt"`
	EnableMagnetism bool    `yaml:"magnetism"`
	ClickEffect     bool    `yaml:"click_effect"`

	TypingSpeed   time.Duration `yaml:"typing_speed"`
	DeletingSpeed time.Duration `yaml:"deleting_speed"`
	PauseDuration time.Duration `yaml:"pause"`

	// Terminal cells are mapped to pixels so effect radii keep their
	// web-page proportions.
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

func DefaultConfig() Config {
	return Config{
		Splash:          true,
		Mouse:           true,
		FPS:             30,
		SpotlightRadius: spotlight.DefaultRadius,
		GlowColor:       spotlight.DefaultGlowColor,
		ParticleCount:   particle.DefaultCount,
		EnableTilt:      true,
		TypingSpeed:     50 * time.Millisecond,
		DeletingSpeed:   30 * time.Millisecond,
		PauseDuration:   2 * time.Second,
		CellWidth:       8,
		CellHeight:      16,
	}
}

var errInvalidConfig = errors.New("invalid config")

func (c Config) Validate() error {
	switch {
	case c.FPS < 1 || c.FPS > 120:
		return fmt.Errorf("%w: fps %d outside 1-120", errInvalidConfig, c.FPS)
	case c.CellWidth <= 0 || c.CellHeight <= 0:
		return fmt.Errorf("%w: cell size %vx%v", errInvalidConfig, c.CellWidth, c.CellHeight)
	}
	return nil
}

func (c Config) spotlightConfig() spotlight.Config {
	cfg := spotlight.DefaultConfig()
	cfg.Radius = c.SpotlightRadius
	cfg.GlowColor = c.GlowColor
	cfg.Enabled = !c.Static
	return cfg
}

func (c Config) cardConfig() particle.Config {
	cfg := particle.DefaultConfig()
	cfg.Count = c.ParticleCount
	cfg.GlowColor = c.GlowColor
	cfg.EnableTilt = c.EnableTilt
	cfg.EnableMagnetism = c.EnableMagnetism
	cfg.ClickEffect = c.ClickEffect
	return cfg
}

// navConfig is the one-shot burst behind the active navigation item.
func (c Config) navConfig() particle.Config {
	cfg := particle.DefaultConfig()
	cfg.Count = 15
	cfg.Stagger = 30 * time.Millisecond
	cfg.Palette = []string{"#92bbf4", "#3f50e7", "#b19eef", "#ededed"}
	cfg.GlowColor = c.GlowColor
	cfg.EnableTilt = false
	return cfg
}

func (c Config) typewriterConfig(strs []string) typewriter.Config {
	cfg := typewriter.DefaultConfig(strs...)
	cfg.TypingSpeed = c.TypingSpeed
	cfg.DeletingSpeed = c.DeletingSpeed
	cfg.PauseDuration = c.PauseDuration
	cfg.StartOnVisible = true
	return cfg
}

func applyEnvOverrides(config Config) Config {
	if val := os.Getenv("FOLIO_CONTENT"); val != "" {
		config.ContentFile = val
	}
	if val := os.Getenv("FOLIO_LOG"); val != "" {
		config.LogFile = val
	}
	if val := os.Getenv("FOLIO_SPLASH"); val != "" {
		config.Splash = val == "true"
	}
	if val := os.Getenv("FOLIO_MOUSE"); val != "" {
		config.Mouse = val == "true"
	}
	if val := os.Getenv("FOLIO_STATIC"); val != "" {
		config.Static = val == "true"
	}
	if val := os.Getenv("FOLIO_FPS"); val != "" {
		if fps, err := strconv.Atoi(val); err == nil {
			config.FPS = fps
		}
	}
	if val := os.Getenv("FOLIO_SPOTLIGHT_RADIUS"); val != "" {
		if r, err := strconv.ParseFloat(val, 64); err == nil {
			config.SpotlightRadius = r
		}
	}
	if val := os.Getenv("FOLIO_GLOW_COLOR"); val != "" {
		config.GlowColor = val
	}
	if val := os.Getenv("FOLIO_PARTICLES"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.ParticleCount = n
		}
	}
	if val := os.Getenv("FOLIO_TYPING_SPEED"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			config.TypingSpeed = d
		}
	}

	return config
}

// ParseFlags builds the configuration from the command line.
func ParseFlags() (Config, error) {
	// A missing .env is normal.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Error loading .env: %v", err)
	}
	return parseFlags(os.Args[1:])
}

func parseFlags(args []string) (Config, error) {
	flagged := DefaultConfig()

	fs := flag.NewFlagSet("folio", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var configFile string
	fs.StringVar(&configFile, "config", "", "Path to YAML config file")
	fs.StringVar(&flagged.ContentFile, "content", flagged.ContentFile, "Path to a portfolio YAML document")
	fs.StringVar(&flagged.LogFile, "log", flagged.LogFile, "Write debug logs to this file")
	fs.BoolVar(&flagged.Splash, "splash", flagged.Splash, "Show the splash screen")
	fs.BoolVar(&flagged.Mouse, "mouse", flagged.Mouse, "Track the mouse")
	fs.BoolVar(&flagged.Static, "static", flagged.Static, "Disable every animation")
	fs.IntVar(&flagged.FPS, "fps", flagged.FPS, "Animation frame rate")
	fs.Uint64Var(&flagged.Seed, "seed", flagged.Seed, "Particle random seed (0 = random)")
	fs.Float64Var(&flagged.SpotlightRadius, "spotlight-radius", flagged.SpotlightRadius, "Spotlight radius in pixels")
	fs.StringVar(&flagged.GlowColor, "glow-color", flagged.GlowColor, `Glow colour as "R, G, B" or #hex`)
	fs.IntVar(&flagged.ParticleCount, "particles", flagged.ParticleCount, "Particles per card")
	fs.BoolVar(&flagged.EnableTilt, "tilt", flagged.EnableTilt, "Tilt cards towards the pointer")
	fs.BoolVar(&flagged.EnableMagnetism, "magnetism", flagged.EnableMagnetism, "Pull cards towards the pointer")
	fs.BoolVar(&flagged.ClickEffect, "click-effect", flagged.ClickEffect, "Ripple on card click")
	fs.DurationVar(&flagged.TypingSpeed, "typing-speed", flagged.TypingSpeed, "Delay per typed character")
	fs.DurationVar(&flagged.DeletingSpeed, "deleting-speed", flagged.DeletingSpeed, "Delay per deleted character")
	fs.DurationVar(&flagged.PauseDuration, "pause", flagged.PauseDuration, "Pause before deleting a title")
	fs.Float64Var(&flagged.CellWidth, "cell-width", flagged.CellWidth, "Pixel width of a terminal cell")
	fs.Float64Var(&flagged.CellHeight, "cell-height", flagged.CellHeight, "Pixel height of a terminal cell")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	config := DefaultConfig()
	if configFile != "" {
		fileConfig, err := loadConfigFromFile(configFile)
		if err != nil {
			return Config{}, err
		}
		config = fileConfig
	}
	config = applyEnvOverrides(config)

	// Only flags given explicitly beat the file and the environment.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "content":
			config.ContentFile = flagged.ContentFile
		case "log":
			config.LogFile = flagged.LogFile
		case "splash":
			config.Splash = flagged.Splash
		case "mouse":
			config.Mouse = flagged.Mouse
		case "static":
			config.Static = flagged.Static
		case "fps":
			config.FPS = flagged.FPS
		case "seed":
			config.Seed = flagged.Seed
		case "spotlight-radius":
			config.SpotlightRadius = flagged.SpotlightRadius
		case "glow-color":
			config.GlowColor = flagged.GlowColor
		case "particles":
			config.ParticleCount = flagged.ParticleCount
		case "tilt":
			config.EnableTilt = flagged.EnableTilt
		case "magnetism":
			config.EnableMagnetism = flagged.EnableMagnetism
		case "click-effect":
			config.ClickEffect = flagged.ClickEffect
		case "typing-speed":
			config.TypingSpeed = flagged.TypingSpeed
		case "deleting-speed":
			config.DeletingSpeed = flagged.DeletingSpeed
		case "pause":
			config.PauseDuration = flagged.PauseDuration
		case "cell-width":
			config.CellWidth = flagged.CellWidth
		case "cell-height":
			config.CellHeight = flagged.CellHeight
		}
	})

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// loadConfigFromFile reads a YAML file on top of the defaults, so keys it
// leaves out keep their default value.
func loadConfigFromFile(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("read config: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", filename, err)
	}
	return config, nil
}
