package main

import (
	"log"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/zam-dot/folio/internal/particle"
)

type section int

const (
	Home section = iota
	About
	Projects
	Certificates
	FAQ
	Contact
)

var sectionNames = []string{"Home", "About", "Projects", "Certificates", "FAQ", "Contact"}

func (s section) String() string {
	if s < 0 || int(s) >= len(sectionNames) {
		return "Section(" + strconv.Itoa(int(s)) + ")"
	}
	return sectionNames[s]
}

// sectionByName resolves what the user typed after "goto": a 1-based
// number or a fuzzy match on the section name ("cert", "faq").
func sectionByName(name string) (section, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(name); err == nil {
		if n < 1 || n > len(sectionNames) {
			return 0, false
		}
		return section(n - 1), true
	}
	matches := fuzzy.Find(name, sectionNames)
	if len(matches) == 0 {
		return 0, false
	}
	return section(matches[0].Index), true
}

// switchSection navigates to s and records it in the history
func (m *model) switchSection(s section) tea.Cmd {
	if s == m.section {
		return nil
	}
	m.history.navigateTo(s)
	return m.showSection(s)
}

func (m *model) goBack() tea.Cmd {
	if !m.history.canGoBack() {
		return nil
	}
	return m.showSection(m.history.goBack())
}

func (m *model) goForward() tea.Cmd {
	if !m.history.canGoForward() {
		return nil
	}
	return m.showSection(m.history.goForward())
}

// showSection swaps the visible section without touching the history.
// The navigation burst plays on every change.
func (m *model) showSection(s section) tea.Cmd {
	m.leaveSection(m.section)
	m.section = s
	m.modal = ""
	m.showHelp = false
	m.faqCursor = 0
	m.status, m.err = "", ""
	if m.ready {
		m.viewport.GotoTop()
	}

	cmds := []tea.Cmd{m.enterSection(s)}
	if m.nav != nil {
		cmds = append(cmds, m.nav.Burst())
	}
	cmds = append(cmds, m.track(), m.kick())
	return tea.Batch(cmds...)
}

// leaveSection tears down everything the section mounted. Card emitters
// are unmounted, so their pending timers die with them.
func (m *model) leaveSection(s section) {
	if m.engine != nil {
		m.engine.Unmount()
	}
	for id, e := range m.cards {
		e.Unmount()
		delete(m.cards, id)
	}
	m.slots = nil
	m.faqRows = nil
	m.hits = nil
	if tw := m.titles[s]; tw != nil {
		tw.SetVisible(false)
	}
}

func (m *model) enterSection(s section) tea.Cmd {
	var cmds []tea.Cmd
	if s == Certificates && m.engine != nil {
		m.engine.Mount()
	}
	if tw := m.titles[s]; tw != nil {
		cmds = append(cmds, tw.SetVisible(true))
	}
	if s == About && !m.skillsStarted {
		m.skillsStarted = true
		for i, sk := range m.doc.Skills {
			m.skills[i].Retarget(float64(sk.Level), skillFill)
		}
		cmds = append(cmds, m.kick())
	}
	m.refresh()
	return tea.Batch(cmds...)
}

// cardEmitter returns the particle emitter of a card, creating it the
// first time the card is seen in this section.
func (m *model) cardEmitter(id string) *particle.Emitter {
	if m.static || m.noCards {
		return nil
	}
	if e, ok := m.cards[id]; ok {
		return e
	}
	e, err := particle.New(m.cfg.cardConfig(), m.rng)
	if err != nil {
		log.Printf("Card particles disabled: %v", err)
		m.noCards = true
		return nil
	}
	m.cards[id] = e
	return e
}

// refresh re-renders the current section into the viewport and records
// where everything landed.
func (m *model) refresh() {
	if !m.ready || m.splashing {
		return
	}
	pg := m.renderSection()
	m.slots = pg.slots
	m.faqRows = pg.rows
	m.hits = pg.hits
	m.links = pg.links
	m.viewport.SetContent(pg.String())
}
