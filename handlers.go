package main

import (
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zam-dot/folio/internal/sched"
)

// openModal shows a card's details once its click ripple has had a moment
type openModal struct{ id string }

const modalDelay = 250 * time.Millisecond

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case sched.Msg:
		return m, m.handleTimer(msg)
	case frameMsg:
		return m, m.handleFrame(msg)
	case openedMsg:
		return m.handleOpened(msg)
	}

	// Cursor blinks and other component messages
	switch m.mode {
	case "command", "search":
		m.textInput, cmd = m.textInput.Update(msg)
	case "links":
		m.linksList, cmd = m.linksList.Update(msg)
	}
	return m, cmd
}

// ============================================================================
// KEYBOARD
// ============================================================================

func (m *model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case "command":
		return m.handleCommandKey(msg)
	case "search":
		return m.handleSearchKey(msg)
	case "links":
		return m.handleLinksKey(msg)
	}

	if m.splashing {
		if msg.String() == "q" {
			return m, tea.Quit
		}
		return m, m.finishSplash()
	}

	key := msg.String()
	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(sectionNames) {
		return m, m.switchSection(section(n - 1))
	}

	switch key {
	case "q":
		return m, tea.Quit

	case "tab":
		return m, m.switchSection((m.section + 1) % section(len(sectionNames)))

	case "shift+tab":
		return m, m.switchSection((m.section + section(len(sectionNames)) - 1) % section(len(sectionNames)))

	case "left":
		return m, m.goBack()

	case "right":
		return m, m.goForward()

	case ":":
		m.mode = "command"
		m.textInput.Prompt = ": "
		m.textInput.SetValue("")
		m.textInput.Focus()
		return m, textinput.Blink

	case "/":
		return m.handleFocusSearch()

	case "l", "L":
		return m.handleShowLinks()

	case "?":
		m.showHelp = !m.showHelp
		return m, m.track()

	case "esc":
		return m.handleEscape()
	}

	if m.section == FAQ && m.modal == "" && !m.showHelp {
		switch key {
		case "up", "k":
			m.faqCursor = max(0, m.faqCursor-1)
			m.refresh()
			return m, nil
		case "down", "j":
			m.faqCursor = min(len(m.doc.FAQ)-1, m.faqCursor+1)
			m.refresh()
			return m, nil
		case "enter", " ":
			m.toggleFAQ(m.faqCursor)
			return m, nil
		}
	}

	// Anything else scrolls the section
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, tea.Batch(cmd, m.track())
}

func (m *model) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		input := strings.TrimSpace(m.textInput.Value())
		m.mode = "view"
		m.textInput.Blur()
		return m, m.runCommand(input)
	case "esc":
		m.mode = "view"
		m.textInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// runCommand executes a line typed at the ':' prompt
func (m *model) runCommand(input string) tea.Cmd {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return nil
	}
	rest := strings.TrimSpace(strings.TrimPrefix(input, fields[0]))

	switch strings.ToLower(fields[0]) {
	case "goto", "go", "g":
		s, ok := sectionByName(rest)
		if !ok {
			m.setError("No section matches %q", rest)
			return nil
		}
		return m.switchSection(s)

	case "search", "s":
		m.search = rest
		if m.section != Certificates {
			return m.switchSection(Certificates)
		}
		m.refresh()
		return m.track()

	case "clear":
		m.search = ""
		m.refresh()
		return m.track()

	case "back":
		return m.goBack()

	case "forward":
		return m.goForward()

	case "open", "o":
		n, err := strconv.Atoi(rest)
		if err != nil {
			m.setError("Usage: open <link number>")
			return nil
		}
		return m.openLink(n)

	case "help", "?":
		m.showHelp = true
		return m.track()

	case "quit", "q":
		return tea.Quit
	}

	// A bare section name works too
	if s, ok := sectionByName(input); ok {
		return m.switchSection(s)
	}
	m.setError("Unknown command: %s", fields[0])
	return nil
}

func (m *model) handleFocusSearch() (tea.Model, tea.Cmd) {
	m.mode = "search"
	m.textInput.Prompt = "/ "
	m.textInput.SetValue(m.search)
	m.textInput.CursorEnd()
	m.textInput.Focus()
	cmds := []tea.Cmd{textinput.Blink}
	if m.section != Certificates {
		cmds = append(cmds, m.switchSection(Certificates))
	}
	return m, tea.Batch(cmds...)
}

// handleSearchKey filters the certificates as the user types
func (m *model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = "view"
		m.textInput.Blur()
		return m, nil
	case "esc":
		m.mode = "view"
		m.textInput.Blur()
		m.search = ""
		m.refresh()
		return m, m.track()
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	if v := m.textInput.Value(); v != m.search {
		m.search = v
		m.viewport.GotoTop()
		m.refresh()
		return m, tea.Batch(cmd, m.track())
	}
	return m, cmd
}

func (m *model) handleShowLinks() (tea.Model, tea.Cmd) {
	if len(m.links) == 0 {
		m.setError("No links on %s", m.section)
		return m, nil
	}
	items := make([]list.Item, len(m.links))
	for i, link := range m.links {
		items[i] = linkItem{link: link}
	}
	m.linksList.SetItems(items)
	m.linksList.ResetSelected()
	m.mode = "links"
	return m, m.track()
}

func (m *model) handleLinksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list is filtering, enter and esc belong to the filter
	if m.linksList.FilterState() != list.Filtering {
		switch msg.String() {
		case "enter":
			m.mode = "view"
			if selected, ok := m.linksList.SelectedItem().(linkItem); ok {
				return m, tea.Batch(openURL(selected.link.URL), m.track())
			}
			return m, m.track()
		case "esc", "q":
			m.mode = "view"
			return m, m.track()
		}
	}
	var cmd tea.Cmd
	m.linksList, cmd = m.linksList.Update(msg)
	return m, cmd
}

func (m *model) handleEscape() (tea.Model, tea.Cmd) {
	switch {
	case m.modal != "":
		m.modal = ""
	case m.showHelp:
		m.showHelp = false
	case m.search != "":
		m.search = ""
		m.refresh()
	default:
		return m, nil
	}
	m.err = ""
	return m, m.track()
}

func (m *model) toggleFAQ(i int) {
	if i < 0 || i >= len(m.doc.FAQ) {
		return
	}
	if m.faqOpen == i {
		m.faqOpen = -1
	} else {
		m.faqOpen = i
	}
	m.faqCursor = i
	m.refresh()
}

// ============================================================================
// MOUSE
// ============================================================================

func (m *model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.ready || m.splashing {
		return m, nil
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		if m.mode == "links" {
			var cmd tea.Cmd
			m.linksList, cmd = m.linksList.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		// Cards moved under the pointer
		return m, tea.Batch(cmd, m.track())

	case msg.Action == tea.MouseActionMotion:
		m.pointer = m.pointPx(msg.X, msg.Y)
		m.hasPointer = true
		return m, m.track()

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.pointer = m.pointPx(msg.X, msg.Y)
		m.hasPointer = true
		return m, tea.Batch(m.track(), m.handleClick(msg.X, msg.Y))
	}
	return m, nil
}

// track feeds the pointer to every effect: cards start or stop hovering,
// tilt towards it, and the spotlight follows it.
func (m *model) track() tea.Cmd {
	if !m.ready {
		return nil
	}
	m.refresh()
	if m.static || !m.hasPointer {
		return nil
	}

	var cmds []tea.Cmd
	p := m.pointer
	interactive := m.mode != "links" && m.modal == "" && !m.showHelp
	_, py := m.cellOf(p)
	inBody := m.inViewport(py)

	for _, sl := range m.slots {
		b := m.slotPx(sl)
		inside := interactive && inBody && b.Contains(p)
		e := m.cards[sl.id]
		if inside && e == nil {
			e = m.cardEmitter(sl.id)
		}
		if e == nil {
			continue
		}
		switch {
		case inside && !e.Hovered():
			cmds = append(cmds, e.HoverStart(b))
		case !inside && e.Hovered():
			cmds = append(cmds, e.HoverEnd())
		}
		if inside {
			e.Move(p, b)
		}
	}

	if m.engine != nil && m.engine.Mounted() {
		if interactive {
			m.engine.Update(p, m.sectionPx(), m.elements())
		} else {
			m.engine.Leave()
		}
	}

	cmds = append(cmds, m.kick())
	return tea.Batch(cmds...)
}

func (m *model) handleClick(x, y int) tea.Cmd {
	if y == 0 {
		for i, sp := range m.navSpans {
			if x >= sp.x && x < sp.x+sp.w {
				return m.switchSection(section(i))
			}
		}
		return nil
	}
	if !m.inViewport(y) || m.mode != "view" {
		return nil
	}
	if m.showHelp || m.modal != "" {
		m.showHelp = false
		m.modal = ""
		return m.track()
	}

	p := m.pointPx(x, y)
	for _, sl := range m.slots {
		b := m.slotPx(sl)
		if !b.Contains(p) {
			continue
		}
		if e := m.cards[sl.id]; e != nil && m.cfg.ClickEffect {
			return tea.Batch(e.Click(p, b), m.kick(), m.reg.After(modalDelay, openModal{id: sl.id}))
		}
		m.modal = sl.id
		return m.track()
	}

	line := y - headerHeight + m.viewport.YOffset
	for i, row := range m.faqRows {
		if row == line {
			m.toggleFAQ(i)
			return nil
		}
	}
	for _, h := range m.hits {
		if h.y == line && x >= h.x && x < h.x+h.w {
			return openURL(h.url)
		}
	}
	return nil
}

// ============================================================================
// TIMERS AND FRAMES
// ============================================================================

// handleTimer routes a timer to the component that scheduled it. Timers of
// components that are gone match nobody and are dropped.
func (m *model) handleTimer(msg sched.Msg) tea.Cmd {
	cmd := m.routeTimer(msg)
	m.refresh()
	return tea.Batch(cmd, m.kick())
}

func (m *model) routeTimer(msg sched.Msg) tea.Cmd {
	if m.reg.Owns(msg) {
		return m.handleAppTimer(msg)
	}
	if m.nav != nil && m.nav.Registry().Owns(msg) {
		return m.nav.Update(msg)
	}
	for _, tw := range m.titles {
		if tw.Registry().Owns(msg) {
			return tw.Update(msg)
		}
	}
	for _, e := range m.cards {
		if e.Registry().Owns(msg) {
			return e.Update(msg)
		}
	}
	return nil
}

func (m *model) handleAppTimer(msg sched.Msg) tea.Cmd {
	payload, ok := m.reg.Accept(msg)
	if !ok {
		return nil
	}
	switch p := payload.(type) {
	case splashDone:
		return m.finishSplash()
	case rotateRole:
		m.roleIdx = (m.roleIdx + 1) % len(m.doc.Roles)
		return m.reg.After(roleInterval, rotateRole{})
	case openModal:
		if m.mode == "view" && !m.showHelp {
			m.modal = p.id
			return m.track()
		}
	}
	return nil
}

// kick schedules the next frame while anything is animating
func (m *model) kick() tea.Cmd {
	if m.framePending || !m.animating() {
		return nil
	}
	m.framePending = true
	m.frameTag++
	m.lastFrame = time.Now()
	tag := m.frameTag
	return tea.Tick(time.Second/time.Duration(m.cfg.FPS), func(t time.Time) tea.Msg {
		return frameMsg{tag: tag, at: t}
	})
}

func (m *model) handleFrame(msg frameMsg) tea.Cmd {
	if msg.tag != m.frameTag {
		return nil
	}
	m.framePending = false
	dt := min(max(msg.at.Sub(m.lastFrame), 0), maxFrameStep)
	m.advance(dt)
	m.refresh()
	return m.kick()
}

func (m *model) animating() bool {
	if m.splashing && !m.splash.Done() {
		return true
	}
	for i := range m.skills {
		if !m.skills[i].Done() {
			return true
		}
	}
	if m.engine != nil && m.engine.Animating() {
		return true
	}
	if m.nav != nil && m.nav.Animating() {
		return true
	}
	for _, e := range m.cards {
		if e.Animating() {
			return true
		}
	}
	return false
}

func (m *model) advance(dt time.Duration) {
	m.splash.Advance(dt)
	for i := range m.skills {
		m.skills[i].Advance(dt)
	}
	if m.engine != nil {
		m.engine.Advance(dt)
	}
	if m.nav != nil {
		m.nav.Advance(dt)
	}
	for _, e := range m.cards {
		e.Advance(dt)
	}
}

// ============================================================================
// WINDOW AND LINKS
// ============================================================================

func (m *model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	h := max(1, msg.Height-headerHeight-footerHeight)

	if !m.ready {
		m.viewport = viewport.New(msg.Width, h)
		m.viewport.YPosition = headerHeight
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = h
	}

	m.linksList.SetSize(msg.Width, h)
	m.textInput.Width = msg.Width - 4
	return m, m.track()
}

func (m *model) openLink(n int) tea.Cmd {
	for _, l := range m.links {
		if l.ID == n {
			return openURL(l.URL)
		}
	}
	m.setError("No link [%d] on %s", n, m.section)
	return nil
}

// openURL hands a link to the system's opener
func openURL(url string) tea.Cmd {
	return func() tea.Msg {
		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", url)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
		default:
			cmd = exec.Command("xdg-open", url)
		}
		return openedMsg{url: url, err: cmd.Start()}
	}
}

func (m *model) handleOpened(msg openedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setError("Could not open %s: %v", msg.url, msg.err)
		return m, nil
	}
	m.setStatus("Opened %s", msg.url)
	return m, nil
}
