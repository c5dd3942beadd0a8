package main

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zam-dot/folio/internal/content"
)

func newTestModel(t *testing.T, mutate func(*Config)) *model {
	t.Helper()
	doc, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default: %v", err)
	}
	cfg := DefaultConfig()
	cfg.Splash = false
	cfg.Seed = 7
	if mutate != nil {
		mutate(&cfg)
	}

	m := initialModel(cfg, doc)
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 80})
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// pointAt moves the pointer to the middle of a card
func pointAt(m *model, sl slot) tea.MouseMsg {
	return tea.MouseMsg{
		X:      sl.x + sl.w/2,
		Y:      m.screenY(sl.y + sl.h/2),
		Action: tea.MouseActionMotion,
		Button: tea.MouseButtonNone,
	}
}

func TestSectionByName(t *testing.T) {
	tests := []struct {
		in   string
		want section
		ok   bool
	}{
		{"faq", FAQ, true},
		{"cert", Certificates, true},
		{"Projects", Projects, true},
		{"abt", About, true},
		{"3", Projects, true},
		{"7", 0, false},
		{"", 0, false},
		{"zzz", 0, false},
	}
	for _, tt := range tests {
		got, ok := sectionByName(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("sectionByName(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestKeyboardNavigation(t *testing.T) {
	m := newTestModel(t, nil)

	m.Update(key("3"))
	m.Update(key("5"))
	if m.section != FAQ {
		t.Fatalf("section = %v, want FAQ", m.section)
	}

	m.Update(key("left"))
	if m.section != Projects {
		t.Errorf("after back: %v, want Projects", m.section)
	}
	m.Update(key("right"))
	if m.section != FAQ {
		t.Errorf("after forward: %v, want FAQ", m.section)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.section != Contact {
		t.Errorf("after tab: %v, want Contact", m.section)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.section != Home {
		t.Errorf("tab wraps to %v, want Home", m.section)
	}
}

func TestNavigationClick(t *testing.T) {
	m := newTestModel(t, nil)

	sp := m.navSpans[Projects]
	m.Update(tea.MouseMsg{X: sp.x + 1, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.section != Projects {
		t.Fatalf("section = %v, want Projects", m.section)
	}
	if m.nav.Pending() == 0 {
		t.Error("changing section did not schedule a navigation burst")
	}
}

func TestHoverCardAndLeaveSection(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(key("4"))

	if !m.engine.Mounted() {
		t.Fatal("spotlight not mounted on Certificates")
	}
	if len(m.slots) == 0 {
		t.Fatal("no certificate cards laid out")
	}
	sl := m.slots[0]
	msg := pointAt(m, sl)
	if !m.inViewport(msg.Y) {
		t.Fatalf("first card is off screen at row %d", msg.Y)
	}

	m.Update(msg)
	e := m.cards[sl.id]
	if e == nil || !e.Hovered() {
		t.Fatal("card under the pointer is not hovered")
	}
	if e.Pending() != e.Config().Count {
		t.Errorf("pending emissions = %d, want %d", e.Pending(), e.Config().Count)
	}
	if got := m.engine.Glow(sl.id).Intensity; got != 1 {
		t.Errorf("glow under the pointer = %v, want 1", got)
	}

	// Leaving the card ends the hover
	m.Update(tea.MouseMsg{X: 0, Y: m.height - 2, Action: tea.MouseActionMotion})
	if e.Hovered() {
		t.Error("card still hovered after the pointer left")
	}

	m.Update(msg)
	m.Update(key("1"))
	if e.Active() || e.Pending() != 0 {
		t.Errorf("emitter survived the section change: active %v, pending %d", e.Active(), e.Pending())
	}
	if len(m.cards) != 0 {
		t.Errorf("%d card emitters left after leaving the section", len(m.cards))
	}
	if m.engine.Mounted() {
		t.Error("spotlight still mounted after leaving Certificates")
	}
}

func TestClickOpensDetails(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(key("3"))

	sl := m.slots[0]
	press := pointAt(m, sl)
	press.Action, press.Button = tea.MouseActionPress, tea.MouseButtonLeft
	m.Update(press)

	if m.modal != sl.id {
		t.Fatalf("modal = %q, want %q", m.modal, sl.id)
	}
	if got := ansi.Strip(m.View()); !strings.Contains(got, "esc or click to close") {
		t.Error("details are not shown")
	}
	if e := m.cards[sl.id]; e != nil && e.Hovered() {
		t.Error("card kept hovering under the details")
	}

	m.Update(key("esc"))
	if m.modal != "" {
		t.Errorf("modal = %q after esc", m.modal)
	}
}

func TestSearchCommand(t *testing.T) {
	m := newTestModel(t, nil)

	m.runCommand("search cisco")
	if m.section != Certificates {
		t.Fatalf("section = %v, want Certificates", m.section)
	}
	want := len(content.Search(m.doc.Certificates, "cisco"))
	if want == 0 {
		t.Fatal("fixture has no Cisco certificates")
	}
	// Badges are hidden while filtering
	if len(m.slots) != want {
		t.Errorf("cards = %d, want %d", len(m.slots), want)
	}

	m.runCommand("clear")
	if m.search != "" || len(m.slots) != len(m.doc.Certificates)+len(m.doc.Badges) {
		t.Errorf("after clear: search %q, %d cards", m.search, len(m.slots))
	}

	m.runCommand("bogus")
	if m.err == "" {
		t.Error("unknown command did not report an error")
	}
}

func TestLiveSearch(t *testing.T) {
	m := newTestModel(t, nil)

	m.Update(key("/"))
	if m.mode != "search" || m.section != Certificates {
		t.Fatalf("mode %q, section %v", m.mode, m.section)
	}
	for _, r := range "google" {
		m.Update(key(string(r)))
	}
	if m.search != "google" {
		t.Errorf("search = %q", m.search)
	}
	if len(m.slots) != 1 {
		t.Errorf("cards = %d, want 1", len(m.slots))
	}

	m.Update(key("esc"))
	if m.mode != "view" || m.search != "" {
		t.Errorf("esc left mode %q, search %q", m.mode, m.search)
	}
}

func TestFAQAccordion(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(key("5"))

	m.Update(key("enter"))
	if m.faqOpen != 0 {
		t.Fatalf("faqOpen = %d, want 0", m.faqOpen)
	}
	m.Update(key("down"))
	m.Update(key("enter"))
	if m.faqOpen != 1 {
		t.Errorf("faqOpen = %d, want 1; only one answer is open at a time", m.faqOpen)
	}
	m.Update(key("enter"))
	if m.faqOpen != -1 {
		t.Errorf("faqOpen = %d, want -1 after closing", m.faqOpen)
	}

	// Clicking a question opens it
	row := m.faqRows[2]
	m.Update(tea.MouseMsg{X: 4, Y: m.screenY(row), Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.faqOpen != 2 {
		t.Errorf("faqOpen = %d after click, want 2", m.faqOpen)
	}
}

func TestStaticMode(t *testing.T) {
	m := newTestModel(t, func(c *Config) { c.Static = true })

	if m.engine != nil || m.nav != nil || len(m.titles) != 0 {
		t.Fatal("effects were set up in static mode")
	}
	if got := ansi.Strip(m.View()); !strings.Contains(got, m.doc.Titles.Home[0]) {
		t.Errorf("static title missing from view:\n%s", got)
	}

	m.Update(key("3"))
	m.Update(pointAt(m, m.slots[0]))
	if len(m.cards) != 0 {
		t.Error("hover created a card emitter in static mode")
	}
	if m.animating() {
		t.Error("static mode is animating")
	}
	for i, sk := range m.doc.Skills {
		if m.skills[i].Value() != float64(sk.Level) {
			t.Errorf("skill %s = %v, want %d", sk.Name, m.skills[i].Value(), sk.Level)
		}
	}
}

func TestFrameLoop(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(key("2")) // About starts the skill bars

	if !m.framePending {
		t.Fatal("no frame scheduled while the skill bars fill")
	}
	tag := m.frameTag

	if cmd := m.handleFrame(frameMsg{tag: tag - 1, at: time.Now()}); cmd != nil {
		t.Error("a stale frame scheduled another one")
	}

	// Frames until the bars are full, then the loop stops
	for range 100 {
		if !m.framePending {
			break
		}
		m.handleFrame(frameMsg{tag: m.frameTag, at: m.lastFrame.Add(maxFrameStep)})
	}
	if m.framePending {
		t.Fatal("frame loop did not stop")
	}
	for i, sk := range m.doc.Skills {
		if m.skills[i].Value() != float64(sk.Level) {
			t.Errorf("skill %s = %v, want %d", sk.Name, m.skills[i].Value(), sk.Level)
		}
	}
}

func TestComposite(t *testing.T) {
	white := lipgloss.Color("#ffffff")
	view := "hello\n" + lipgloss.NewStyle().Bold(true).Render("world")

	got := ansi.Strip(composite(view, []mark{
		{x: 1, y: 0, glyph: "*", color: white},
		{x: 7, y: 1, glyph: "+", color: white},
		{x: 0, y: 5, glyph: "!", color: white}, // off the frame
	}))
	if want := "h*llo\nworld  +"; got != want {
		t.Errorf("composite = %q, want %q", got, want)
	}
}

func TestSkillBar(t *testing.T) {
	got := ansi.Strip(skillBar("Go", 50))
	if n := strings.Count(got, "█"); n != barWidth/2 {
		t.Errorf("filled = %d, want %d", n, barWidth/2)
	}
	if !strings.HasSuffix(got, " 50%") {
		t.Errorf("bar = %q", got)
	}
}
