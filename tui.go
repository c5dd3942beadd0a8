package main

import (
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zam-dot/folio/internal/content"
	"github.com/zam-dot/folio/internal/motion"
	"github.com/zam-dot/folio/internal/particle"
	"github.com/zam-dot/folio/internal/sched"
	"github.com/zam-dot/folio/internal/spotlight"
	"github.com/zam-dot/folio/internal/typewriter"
)

// ============================================================================
// MESSAGE TYPES
// ============================================================================

// frameMsg advances every running animation by one frame. Only the most
// recently scheduled frame is honoured, so there is never more than one
// frame loop.
type frameMsg struct {
	tag int
	at  time.Time
}

// openedMsg is sent once an external program was asked to open a link
type openedMsg struct {
	url string
	err error
}

// App-level timer payloads, scheduled on model.reg
type (
	splashDone struct{}
	rotateRole struct{}
)

const (
	headerHeight = 2 // nav bar and a spacer line
	footerHeight = 1 // status bar or prompt

	roleInterval = 2 * time.Second
	splashCount  = 102
	splashLength = 4 * time.Second
	splashHold   = 300 * time.Millisecond
	skillFill    = 1500 * time.Millisecond
	maxFrameStep = 100 * time.Millisecond
)

// ============================================================================
// LIST ITEM IMPLEMENTATION FOR LINKS
// ============================================================================

// linkItem wraps a Link to make it compatible with Bubble Tea's list component
type linkItem struct {
	link Link
}

// FilterValue is used by the list component for searching/filtering
func (i linkItem) FilterValue() string {
	return i.link.Text + " " + i.link.URL
}

// Title is displayed as the main text in the list
func (i linkItem) Title() string {
	text := i.link.Text
	if text == "" {
		text = i.link.URL
	}
	// Truncate very long text to keep the list readable
	if len(text) > 50 {
		text = text[:47] + "..."
	}
	return fmt.Sprintf("[%d] %s", i.link.ID, text)
}

// Description is displayed as secondary text in the list
func (i linkItem) Description() string {
	url := i.link.URL
	if len(url) > 60 {
		url = url[:57] + "..."
	}
	return url
}

// ============================================================================
// MAIN APPLICATION MODEL
// ============================================================================

// slot is where a card landed in the rendered section, in content cells
// (column, line) before scrolling.
type slot struct {
	id   string
	x, y int
	w, h int
}

// span is a horizontal run of cells on one line
type span struct {
	x, w int
}

// hit is a clickable run of cells in the content that opens a URL
type hit struct {
	x, y, w int
	url     string
}

// model holds all the state for the portfolio
type model struct {
	cfg    Config
	doc    *content.Document
	static bool
	rng    *rand.Rand

	viewport      viewport.Model  // Scrolls the current section
	textInput     textinput.Model // Command prompt and live search
	linksList     list.Model      // Every link on the current section
	mode          string          // "view", "command", "search" or "links"
	ready         bool
	width, height int

	section section
	history sectionHistory

	// Effects. Any of them may be nil when disabled or when setup failed.
	reg     *sched.Registry
	engine  *spotlight.Engine
	nav     *particle.Emitter
	cards   map[string]*particle.Emitter
	noCards bool
	titles  map[section]*typewriter.Model

	splashing     bool
	splash        motion.Tween
	roleIdx       int
	skills        []motion.Tween
	skillsStarted bool

	faqOpen   int // index of the open answer, -1 when all are closed
	faqCursor int
	modal     string // id of the card whose details are shown
	showHelp  bool
	search    string

	// Layout of the last render
	slots    []slot
	faqRows  []int // content line of each question
	navSpans []span
	hits     []hit
	links    []Link

	pointer    motion.Vec
	hasPointer bool

	frameTag     int
	framePending bool
	lastFrame    time.Time

	status string
	err    string
}

// initialModel creates a new model with the starting state
func initialModel(cfg Config, doc *content.Document) *model {
	// ============================================================================
	// TEXT INPUT CONFIGURATION (for command and search mode)
	// ============================================================================
	ti := textinput.New()
	ti.Placeholder = "goto projects, search aws, help..."
	ti.CharLimit = 200
	ti.Width = 50
	ti.Prompt = ": "
	ti.PromptStyle = promptStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")) // White text
	ti.Blur()

	// ============================================================================
	// LINKS LIST CONFIGURATION
	// ============================================================================
	linksList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	linksList.Title = "Links (Press ESC to go back, ENTER to open)"
	linksList.SetShowStatusBar(false)
	linksList.SetFilteringEnabled(true)

	m := &model{
		cfg:       cfg,
		doc:       doc,
		static:    cfg.Static,
		rng:       newRand(cfg.Seed),
		textInput: ti,
		linksList: linksList,
		mode:      "view",
		section:   Home,
		history:   newSectionHistory(Home),
		reg:       sched.New(),
		cards:     make(map[string]*particle.Emitter),
		titles:    make(map[section]*typewriter.Model),
		splashing: cfg.Splash && !cfg.Static,
		splash:    motion.NewTween(0, motion.Power2Out),
		faqOpen:   -1,
		navSpans:  layoutNav(),
	}

	m.skills = make([]motion.Tween, len(doc.Skills))
	for i, s := range doc.Skills {
		m.skills[i] = motion.NewTween(0, motion.Power2Out)
		if m.static {
			m.skills[i].Set(float64(s.Level))
		}
	}
	if m.static {
		m.skillsStarted = true
	}

	m.setupEffects()
	return m
}

// setupEffects builds every animated component. A component that fails to
// build is logged and left out; the section renders without it.
func (m *model) setupEffects() {
	if m.static {
		return
	}

	if engine, err := spotlight.New(m.cfg.spotlightConfig()); err != nil {
		log.Printf("Spotlight disabled: %v", err)
	} else {
		m.engine = engine
	}

	if nav, err := particle.New(m.cfg.navConfig(), m.rng); err != nil {
		log.Printf("Navigation particles disabled: %v", err)
	} else {
		m.nav = nav
	}

	if err := m.cfg.cardConfig().Validate(); err != nil {
		log.Printf("Card particles disabled: %v", err)
		m.noCards = true
	}

	for s, strs := range m.sectionTitles() {
		tw, err := typewriter.New(m.cfg.typewriterConfig(strs), m.rng)
		if err != nil {
			log.Printf("%s title is static: %v", s, err)
			continue
		}
		m.titles[s] = tw
	}
}

func (m *model) sectionTitles() map[section][]string {
	t := m.doc.Titles
	return map[section][]string{
		Home:         t.Home,
		Projects:     t.Projects,
		Certificates: t.Certificates,
		FAQ:          t.FAQ,
		Contact:      t.Contact,
	}
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d))
}

// ============================================================================
// BUBBLE TEA LIFECYCLE METHODS
// ============================================================================

// Init starts the splash screen, or goes straight to Home without one
func (m *model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if !m.static && len(m.doc.Roles) > 1 {
		cmds = append(cmds, m.reg.After(roleInterval, rotateRole{}))
	}
	if m.splashing {
		m.splash.Retarget(splashCount, splashLength)
		cmds = append(cmds, m.reg.After(splashLength+splashHold, splashDone{}), m.kick())
		return tea.Batch(cmds...)
	}
	cmds = append(cmds, m.enterSection(m.section))
	return tea.Batch(cmds...)
}

// finishSplash leaves the splash screen early or on its timer
func (m *model) finishSplash() tea.Cmd {
	if !m.splashing {
		return nil
	}
	m.splashing = false
	m.reg.CancelFunc(func(p any) bool {
		_, ok := p.(splashDone)
		return ok
	})
	return m.enterSection(m.section)
}

// setError shows an error in the status bar until the next action
func (m *model) setError(format string, args ...any) {
	m.err = fmt.Sprintf(format, args...)
	m.status = ""
}

func (m *model) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.err = ""
}
