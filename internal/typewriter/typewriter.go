// Package typewriter cycles through a list of strings, typing and deleting
// them one rune at a time on the Bubble Tea event loop.
package typewriter

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zam-dot/folio/internal/sched"
)

var (
	ErrNoStrings    = errors.New("typewriter: at least one string is required")
	ErrInvalidSpeed = errors.New("typewriter: speeds must be positive")
)

type State int

const (
	Idle State = iota
	Typing
	PausedAfterType
	Deleting
	PausedAfterDelete
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Typing:
		return "typing"
	case PausedAfterType:
		return "paused-after-type"
	case Deleting:
		return "deleting"
	case PausedAfterDelete:
		return "paused-after-delete"
	case Done:
		return "done"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// SpeedRange is a per-character typing delay sampled uniformly in
// [Min, Max).
type SpeedRange struct {
	Min, Max time.Duration
}

type Config struct {
	Strings []string

	TypingSpeed   time.Duration
	DeletingSpeed time.Duration
	PauseDuration time.Duration
	// InitialDelay precedes the first string and every string after a
	// deletion.
	InitialDelay  time.Duration
	Loop          bool
	VariableSpeed *SpeedRange

	StartOnVisible bool
	ReverseMode    bool
	// DeleteSingle deletes and retypes a lone string instead of leaving it.
	DeleteSingle bool

	ShowCursor            bool
	CursorChar            string
	CursorBlink           time.Duration
	HideCursorWhileTyping bool

	// TextColors cycle by string index.
	TextColors []string

	OnSentenceComplete func(text string, index int)
}

func DefaultConfig(strs ...string) Config {
	return Config{
		Strings:       strs,
		TypingSpeed:   50 * time.Millisecond,
		DeletingSpeed: 30 * time.Millisecond,
		PauseDuration: 2 * time.Second,
		Loop:          true,
		ShowCursor:    true,
		CursorChar:    "|",
		CursorBlink:   500 * time.Millisecond,
	}
}

func (c Config) Validate() error {
	if len(c.Strings) == 0 {
		return ErrNoStrings
	}
	if c.TypingSpeed <= 0 || c.DeletingSpeed <= 0 {
		return fmt.Errorf("%w: typing %v, deleting %v", ErrInvalidSpeed, c.TypingSpeed, c.DeletingSpeed)
	}
	if c.PauseDuration < 0 || c.InitialDelay < 0 {
		return fmt.Errorf("%w: pauses cannot be negative", ErrInvalidSpeed)
	}
	if v := c.VariableSpeed; v != nil && (v.Min <= 0 || v.Max < v.Min) {
		return fmt.Errorf("%w: variable speed range [%v, %v)", ErrInvalidSpeed, v.Min, v.Max)
	}
	if c.ShowCursor && c.CursorBlink <= 0 {
		return fmt.Errorf("%w: cursor blink %v", ErrInvalidSpeed, c.CursorBlink)
	}
	return nil
}

type (
	step  struct{}
	blink struct{}
)

// Model is one typewriter instance.
type Model struct {
	cfg Config
	rng *rand.Rand
	reg *sched.Registry

	runes [][]rune
	state State
	index int
	n     int

	visible  bool
	cursorOn bool
	disposed bool
}

// New validates cfg and returns an idle typewriter.
func New(cfg Config, rng *rand.Rand, opts ...sched.Option) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}

	runes := make([][]rune, len(cfg.Strings))
	for i, s := range cfg.Strings {
		r := []rune(s)
		if cfg.ReverseMode {
			slices.Reverse(r)
		}
		runes[i] = r
	}
	return &Model{
		cfg:      cfg,
		rng:      rng,
		reg:      sched.New(opts...),
		runes:    runes,
		cursorOn: true,
	}, nil
}

func (m *Model) Registry() *sched.Registry { return m.reg }

func (m *Model) State() State { return m.state }

func (m *Model) Index() int { return m.index }

// Text returns the characters currently displayed.
func (m *Model) Text() string {
	return string(m.runes[m.index][:m.n])
}

// Start begins typing, unless the model waits for visibility.
func (m *Model) Start() tea.Cmd {
	if m.cfg.StartOnVisible && !m.visible {
		return nil
	}
	return m.begin()
}

// SetVisible records visibility. With StartOnVisible the first visible
// call starts typing; later changes do not pause it.
func (m *Model) SetVisible(v bool) tea.Cmd {
	if m.disposed {
		return nil
	}
	m.visible = v
	if v && m.cfg.StartOnVisible {
		return m.begin()
	}
	return nil
}

func (m *Model) begin() tea.Cmd {
	if m.disposed || m.state != Idle {
		return nil
	}
	m.state = Typing
	cmds := []tea.Cmd{m.reg.After(m.cfg.InitialDelay+m.typingDelay(), step{})}
	if m.cfg.ShowCursor {
		cmds = append(cmds, m.reg.After(m.cfg.CursorBlink, blink{}))
	}
	return tea.Batch(cmds...)
}

// Update consumes the model's own timer messages.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	payload, ok := m.reg.Accept(msg)
	if !ok || m.disposed {
		return nil
	}

	switch payload.(type) {
	case blink:
		m.cursorOn = !m.cursorOn
		return m.reg.After(m.cfg.CursorBlink, blink{})
	case step:
		return m.step()
	}
	return nil
}

func (m *Model) step() tea.Cmd {
	switch m.state {
	case Typing:
		cur := m.runes[m.index]
		if m.n < len(cur) {
			m.n++
		}
		if m.n < len(cur) {
			return m.reg.After(m.typingDelay(), step{})
		}
		last := m.index == len(m.runes)-1
		switch {
		case len(m.runes) == 1 && !m.cfg.DeleteSingle:
			m.state = Done
			return nil
		case len(m.runes) > 1 && !m.cfg.Loop && last:
			m.state = Done
			return nil
		}
		m.state = PausedAfterType
		return m.reg.After(m.cfg.PauseDuration, step{})

	case PausedAfterType:
		m.state = Deleting
		return m.reg.After(m.cfg.DeletingSpeed, step{})

	case Deleting:
		if m.n > 0 {
			m.n--
		}
		if m.n > 0 {
			return m.reg.After(m.cfg.DeletingSpeed, step{})
		}
		finished := m.index
		if m.cfg.OnSentenceComplete != nil {
			m.cfg.OnSentenceComplete(m.cfg.Strings[finished], finished)
		}
		if !m.cfg.Loop && finished == len(m.runes)-1 {
			m.state = Done
			return nil
		}
		m.index = (finished + 1) % len(m.runes)
		m.state = PausedAfterDelete
		return m.reg.After(m.cfg.InitialDelay, step{})

	case PausedAfterDelete:
		m.state = Typing
		return m.reg.After(m.typingDelay(), step{})
	}
	return nil
}

func (m *Model) typingDelay() time.Duration {
	v := m.cfg.VariableSpeed
	if v == nil {
		return m.cfg.TypingSpeed
	}
	if v.Max <= v.Min {
		return v.Min
	}
	return v.Min + time.Duration(m.rng.Int64N(int64(v.Max-v.Min)))
}

// CursorVisible reports whether the cursor glyph is drawn right now.
func (m *Model) CursorVisible() bool {
	if !m.cfg.ShowCursor || !m.cursorOn {
		return false
	}
	if m.cfg.HideCursorWhileTyping && (m.state == Typing || m.state == Deleting) {
		return false
	}
	return true
}

// Color returns the text colour of the current string, or "" when none is
// configured.
func (m *Model) Color() string {
	if len(m.cfg.TextColors) == 0 {
		return ""
	}
	return m.cfg.TextColors[m.index%len(m.cfg.TextColors)]
}

// View renders the text and cursor. A hidden cursor keeps its width.
func (m *Model) View() string {
	style := lipgloss.NewStyle()
	if c := m.Color(); c != "" {
		style = style.Foreground(lipgloss.Color(c))
	}

	var b strings.Builder
	b.WriteString(style.Render(m.Text()))
	if m.cfg.ShowCursor {
		if m.CursorVisible() {
			b.WriteString(m.cfg.CursorChar)
		} else {
			b.WriteString(strings.Repeat(" ", lipgloss.Width(m.cfg.CursorChar)))
		}
	}
	return b.String()
}

// Dispose cancels every pending tick. Nothing changes afterwards.
func (m *Model) Dispose() {
	m.disposed = true
	m.reg.Close()
}

func (m *Model) Disposed() bool { return m.disposed }
