package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zam-dot/folio/internal/content"
	"github.com/zam-dot/folio/internal/motion"
)

const (
	cardWidth = 30 // inside the border, padding included
	cardGap   = 1  // free columns either side; magnetism shifts into them
	barWidth  = 30
)

// View stacks the navigation bar, the section and the status line, then
// draws the effects over the result.
func (m *model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}
	if m.splashing {
		return m.renderSplash()
	}

	var body string
	switch {
	case m.mode == "links":
		body = m.linksList.View()
	case m.showHelp:
		body = m.placeBody(m.renderHelp())
	case m.modal != "":
		body = m.placeBody(m.renderModal(m.modal))
	default:
		body = m.viewport.View()
	}

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderNav(),
		"",
		body,
		m.renderFooter(),
	)
	if m.static {
		return view
	}
	return composite(view, m.effectMarks())
}

func (m *model) placeBody(s string) string {
	return lipgloss.Place(m.viewport.Width, m.viewport.Height, lipgloss.Center, lipgloss.Center, s)
}

// ============================================================================
// CHROME
// ============================================================================

func navLabel(i int) string {
	return fmt.Sprintf("%d %s", i+1, sectionNames[i])
}

// layoutNav measures every navigation item once; bold and plain items have
// the same width.
func layoutNav() []span {
	spans := make([]span, len(sectionNames))
	x := 0
	for i := range sectionNames {
		w := lipgloss.Width(navItemStyle.Render(navLabel(i)))
		spans[i] = span{x: x, w: w}
		x += w
	}
	return spans
}

func (m *model) renderNav() string {
	items := make([]string, len(sectionNames))
	for i := range sectionNames {
		style := navItemStyle
		if section(i) == m.section {
			style = navActiveStyle
		}
		items[i] = style.Render(navLabel(i))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

func (m *model) renderFooter() string {
	switch m.mode {
	case "command", "search":
		return m.textInput.View()
	}

	// One line only; the viewport height depends on it
	fit := func(s string) string { return ansi.Truncate(s, max(0, m.width-2), "…") }
	if m.err != "" {
		return statusErrorStyle.Width(m.width).Render(fit("✗ " + m.err))
	}
	line := m.status
	if line == "" {
		var b strings.Builder
		b.WriteString("1-6/tab sections")
		if m.history.canGoBack() || m.history.canGoForward() {
			b.WriteString(" | ←/→ history")
		}
		fmt.Fprintf(&b, " | ':' command | '/' search | 'l' links (%d) | '?' help | 'q' quit", len(m.links))
		line = b.String()
	}
	return statusStyle.Width(m.width).Render(fit(line))
}

func (m *model) renderSplash() string {
	welcome := titleStyle.Render("WELCOME☆TO☆MY☆PORTFOLIO☆")
	count := nameStyle.Render(strconv.Itoa(int(math.Round(m.splash.Value()))))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, welcome, count))
}

// ============================================================================
// PAGE BUILDER
// ============================================================================

// page accumulates a section line by line and remembers where cards,
// questions and links ended up.
type page struct {
	parts []string
	lines int
	width int // usable columns inside the page padding

	slots []slot
	rows  []int
	hits  []hit
	links []Link
	next  int // number of the next link marker
}

func (p *page) add(s string) {
	s = docStyle.Render(s)
	p.parts = append(p.parts, s)
	p.lines += lipgloss.Height(s)
}

func (p *page) String() string {
	return strings.Join(p.parts, "\n")
}

// link registers a link and returns its visible text with its marker
func (p *page) link(text, url string) string {
	id := p.next
	p.next++
	p.links = append(p.links, Link{Text: text, URL: url, ID: id})
	return linkStyle.Render(text) + fmt.Sprintf(" [%d]", id)
}

// html converts an inline HTML fragment, numbering its links on this page
func (p *page) html(fragment, baseURL string) string {
	text, links := extractText(fragment, baseURL, &p.next)
	p.links = append(p.links, links...)
	return text
}

// card is one tile of a grid
type card struct {
	id     string
	body   string
	border string
}

// grid lays cards out left to right, wrapping to fit the page width
func (m *model) grid(p *page, cards []card) {
	outer := cardWidth + 2 + 2*cardGap
	cols := max(1, p.width/outer)

	for start := 0; start < len(cards); start += cols {
		row := cards[start:min(start+cols, len(cards))]
		rendered := make([]string, len(row))
		for i, c := range row {
			rendered[i] = m.renderCard(c)
			p.slots = append(p.slots, slot{
				id: c.id,
				x:  pagePad + i*outer + cardGap,
				y:  p.lines,
				w:  cardWidth + 2,
				h:  lipgloss.Height(rendered[i]),
			})
		}
		p.add(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
}

// renderCard draws a card with its border lit by the spotlight glow and by
// its own tilt, shifted sideways by magnetism.
func (m *model) renderCard(c card) string {
	base := motion.MustHex(c.border)
	glowColor := motion.MustHex(lavender)

	// Per-side strength: top, right, bottom, left
	var sides [4]float64
	if m.engine != nil {
		glowColor = m.engine.Color()
		g := m.engine.Glow(c.id)
		if g.Intensity > 0 {
			ox := motion.Clamp01(g.OriginX / 100)
			oy := motion.Clamp01(g.OriginY / 100)
			sides = [4]float64{
				g.Intensity * (0.5 + 0.5*(1-oy)),
				g.Intensity * (0.5 + 0.5*ox),
				g.Intensity * (0.5 + 0.5*oy),
				g.Intensity * (0.5 + 0.5*(1-ox)),
			}
		}
	}

	style := cardStyle.Width(cardWidth)
	shift := 0
	if e := m.cards[c.id]; e != nil {
		tiltMax := e.Config().TiltMax
		tx, ty := e.Tilt()
		if tiltMax > 0 {
			lift := [4]float64{tx / tiltMax, ty / tiltMax, -tx / tiltMax, -ty / tiltMax}
			for i := range sides {
				sides[i] = math.Max(sides[i], motion.Clamp01(lift[i]))
			}
			if math.Max(math.Abs(tx), math.Abs(ty)) > tiltMax*0.6 {
				style = style.BorderStyle(lipgloss.ThickBorder())
			}
		}
		dx := math.Round(e.Offset().X / m.cfg.CellWidth)
		shift = int(math.Max(-cardGap, math.Min(cardGap, dx)))
	}

	return style.
		BorderTopForeground(motion.Blend(base, glowColor, sides[0])).
		BorderRightForeground(motion.Blend(base, glowColor, sides[1])).
		BorderBottomForeground(motion.Blend(base, glowColor, sides[2])).
		BorderLeftForeground(motion.Blend(base, glowColor, sides[3])).
		MarginLeft(cardGap + shift).
		MarginRight(cardGap - shift).
		Render(c.body)
}

// title renders a section heading, typed when the typewriter is running
func (m *model) title(s section, fallback string) string {
	if tw := m.titles[s]; tw != nil {
		return titleStyle.Render(tw.View())
	}
	if strs := m.sectionTitles()[s]; len(strs) > 0 {
		fallback = strs[0]
	}
	return titleStyle.Render(fallback)
}

// ============================================================================
// SECTIONS
// ============================================================================

func (m *model) renderSection() *page {
	p := &page{next: 1, width: max(cardWidth+2+2*cardGap, m.viewport.Width-2*pagePad)}
	switch m.section {
	case Home:
		m.renderHome(p)
	case About:
		m.renderAbout(p)
	case Projects:
		m.renderProjects(p)
	case Certificates:
		m.renderCertificates(p)
	case FAQ:
		m.renderFAQ(p)
	case Contact:
		m.renderContact(p)
	}
	return p
}

func (m *model) renderHome(p *page) {
	owner := m.doc.Owner
	name := nameStyle.Render(owner.Name)
	if first, last, ok := cutLast(owner.Name); ok {
		name = nameStyle.Render(first+" ") + surnameStyle.Render(last)
	}

	p.add("")
	p.add(m.title(Home, "Hello"))
	p.add(name)
	if owner.Headline != "" {
		p.add(mutedStyle.Render(owner.Headline))
	}
	if len(m.doc.Roles) > 0 {
		p.add("")
		p.add(roleStyle.Render(m.doc.Roles[m.roleIdx%len(m.doc.Roles)]))
	}
	if owner.Tagline != "" {
		p.add("")
		p.add(paragraphStyle.Width(min(p.width, 72)).Render(owner.Tagline))
	}

	p.add("")
	projects := buttonStyle.Render("3 Projects")
	contact := buttonStyle.Render("6 Contact")
	p.add(lipgloss.JoinHorizontal(lipgloss.Top, projects, " ", contact))
}

func cutLast(name string) (string, string, bool) {
	i := strings.LastIndex(name, " ")
	if i <= 0 {
		return "", "", false
	}
	return name[:i], name[i+1:], true
}

func (m *model) renderAbout(p *page) {
	p.add(titleStyle.Render("About Me"))
	if about, err := renderWithStyle(m.doc.About, p.width); err == nil {
		p.add(about)
	} else {
		p.add(paragraphStyle.Width(p.width).Render(m.doc.About))
	}

	p.add(headingStyle.Render("Experience"))
	for _, ex := range m.doc.Experience {
		head := timelineDotStyle.Render("●") + " " + strongStyle.Render(ex.Role) + " @ " + ex.Place
		p.add(head + "  " + mutedStyle.Render(ex.Period))
		body := paragraphStyle.Width(max(10, p.width-2)).Render(p.html(ex.Details, m.doc.Owner.Site))
		p.add(lipgloss.NewStyle().PaddingLeft(2).Render(body))
		if ex.Technologies != "" {
			p.add("  " + mutedStyle.Render(ex.Technologies))
		}
		p.add("")
	}

	p.add(headingStyle.Render("Skills"))
	for i, sk := range m.doc.Skills {
		p.add(skillBar(sk.Name, m.skills[i].Value()))
	}

	p.add(headingStyle.Render("Technologies"))
	chips := make([]string, len(m.doc.Technologies))
	for i, t := range m.doc.Technologies {
		chips[i] = chipStyle.BorderForeground(lipgloss.Color(t.Color)).Render(t.Name)
	}
	for _, row := range wrapRow(chips, p.width) {
		p.add(row)
	}
}

// skillBar draws a labelled progress bar for a level in 0-100
func skillBar(name string, level float64) string {
	filled := int(math.Round(motion.Clamp01(level/100) * barWidth))
	bar := barFillStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("%-20s %s %3d%%", name, bar, int(math.Round(level)))
}

// wrapRow joins blocks horizontally, starting a new row when one would
// overflow width.
func wrapRow(blocks []string, width int) []string {
	var rows []string
	var cur []string
	used := 0
	for _, b := range blocks {
		w := lipgloss.Width(b)
		if used > 0 && used+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cur...))
			cur, used = nil, 0
		}
		cur = append(cur, b)
		used += w
	}
	if len(cur) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cur...))
	}
	return rows
}

func (m *model) renderProjects(p *page) {
	p.add(m.title(Projects, "Projects"))

	inner := cardWidth - 2
	cards := make([]card, len(m.doc.Projects))
	for i, pr := range m.doc.Projects {
		var b strings.Builder
		b.WriteString(cardTitleStyle.Render(pr.Title))
		b.WriteString("\n\n")
		b.WriteString(p.html(pr.Description, m.doc.Owner.Site))
		if pr.Technologies != "" {
			b.WriteString("\n\n" + mutedStyle.Render(pr.Technologies))
		}
		if pr.URL != "" {
			b.WriteString("\n" + p.link("Visit", pr.URL))
		}
		cards[i] = card{
			id:     pr.ID,
			body:   lipgloss.NewStyle().Width(inner).Render(b.String()),
			border: pr.BorderColor,
		}
	}
	m.grid(p, cards)
}

func (m *model) renderCertificates(p *page) {
	p.add(m.title(Certificates, "Certificates"))

	certs := content.Search(m.doc.Certificates, m.search)
	if m.search != "" {
		p.add(mutedStyle.Render(fmt.Sprintf("Filter %q: %d of %d | esc clears", m.search, len(certs), len(m.doc.Certificates))))
	} else {
		p.add(mutedStyle.Render("Press / to search by title or issuer"))
	}
	if len(certs) == 0 {
		p.add("")
		p.add(paragraphStyle.Render("No certificates match."))
	}

	inner := cardWidth - 2
	for _, g := range content.GroupByCategory(certs) {
		if len(g.Certificates) == 0 {
			continue
		}
		p.add(headingStyle.Render(fmt.Sprintf("%s (%d)", g.Category, len(g.Certificates))))
		cards := make([]card, len(g.Certificates))
		for i, c := range g.Certificates {
			var b strings.Builder
			b.WriteString(cardTitleStyle.Render(c.Title))
			b.WriteString("\n" + mutedStyle.Render(c.Issuer))
			if c.Date != "" {
				b.WriteString("\n" + mutedStyle.Render(c.Date))
			}
			if c.CredentialURL != "" {
				b.WriteString("\n" + p.link("Credential", c.CredentialURL))
			}
			cards[i] = card{id: c.ID, body: lipgloss.NewStyle().Width(inner).Render(b.String()), border: cardBorder}
		}
		m.grid(p, cards)
	}

	if len(m.doc.Badges) > 0 && m.search == "" {
		p.add(headingStyle.Render("Badges"))
		cards := make([]card, len(m.doc.Badges))
		for i, bd := range m.doc.Badges {
			body := cardTitleStyle.Render(bd.Title) + "\n" + mutedStyle.Render(bd.Issuer)
			cards[i] = card{id: bd.ID, body: lipgloss.NewStyle().Width(inner).Render(body), border: cardBorder}
		}
		m.grid(p, cards)
	}
}

func (m *model) renderFAQ(p *page) {
	p.add(m.title(FAQ, "FAQ"))
	p.add(mutedStyle.Render("↑/↓ to move, enter or click to open"))
	p.add("")

	for i, item := range m.doc.FAQ {
		marker, style := "▸ ", questionStyle
		if i == m.faqOpen {
			marker = "▾ "
		}
		if i == m.faqCursor {
			style = questionActiveStyle
		}
		p.rows = append(p.rows, p.lines)
		p.add(style.Render(marker + item.Question))

		if i == m.faqOpen {
			answer, err := renderWithStyle(item.Answer, max(10, p.width-4))
			if err != nil {
				answer = paragraphStyle.Width(max(10, p.width-4)).Render(item.Answer)
			}
			p.add(lipgloss.NewStyle().PaddingLeft(2).Render(answer))
		}
		p.add("")
	}
}

func (m *model) renderContact(p *page) {
	p.add(m.title(Contact, "Contact"))
	p.add(paragraphStyle.Render("Feel free to reach out through any of these."))
	p.add("")

	x := pagePad
	buttons := make([]string, len(m.doc.Socials))
	for i, s := range m.doc.Socials {
		buttons[i] = buttonStyle.Render(p.link(s.Name, s.URL))
		w := lipgloss.Width(buttons[i])
		// The label sits on the middle line of the button
		p.hits = append(p.hits, hit{x: x, y: p.lines + 1, w: w, url: s.URL})
		x += w
	}
	p.add(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))

	if email := m.doc.Owner.Email; email != "" {
		p.add("")
		p.add("✉ " + p.link(email, "mailto:"+email))
	}
}

// ============================================================================
// OVERLAYS
// ============================================================================

// renderModal shows the details of a project, certificate or badge
func (m *model) renderModal(id string) string {
	width := min(64, max(20, m.viewport.Width-10))
	text := lipgloss.NewStyle().Width(width)
	var links int
	site := m.doc.Owner.Site

	var b strings.Builder
	if pr := findProject(m.doc, id); pr != nil {
		desc, _ := extractText(pr.Description, site, &links)
		b.WriteString(cardTitleStyle.Render(pr.Title) + "\n\n")
		b.WriteString(text.Render(desc) + "\n")
		if pr.Technologies != "" {
			b.WriteString("\n" + mutedStyle.Render(pr.Technologies))
		}
		if pr.URL != "" {
			b.WriteString("\n" + linkStyle.Render(pr.URL))
		}
	} else if c := findCertificate(m.doc, id); c != nil {
		b.WriteString(cardTitleStyle.Render(c.Title) + "\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%s | %s | %s", c.Issuer, c.Date, content.Categorize(*c))) + "\n")
		if c.Description != "" {
			desc, _ := extractText(c.Description, site, &links)
			b.WriteString("\n" + text.Render(desc) + "\n")
		}
		if c.CredentialURL != "" {
			b.WriteString("\n" + linkStyle.Render(c.CredentialURL))
		}
	} else if bd := findBadge(m.doc, id); bd != nil {
		b.WriteString(cardTitleStyle.Render(bd.Title) + "\n")
		b.WriteString(mutedStyle.Render(bd.Issuer) + "\n")
		if bd.Description != "" {
			desc, _ := extractText(bd.Description, site, &links)
			b.WriteString("\n" + text.Render(desc) + "\n")
		}
	} else {
		b.WriteString("Nothing to show")
	}
	b.WriteString("\n\n" + mutedStyle.Render("esc or click to close"))
	return modalStyle.Render(b.String())
}

func findProject(doc *content.Document, id string) *content.Project {
	for i := range doc.Projects {
		if doc.Projects[i].ID == id {
			return &doc.Projects[i]
		}
	}
	return nil
}

func findCertificate(doc *content.Document, id string) *content.Certificate {
	for i := range doc.Certificates {
		if doc.Certificates[i].ID == id {
			return &doc.Certificates[i]
		}
	}
	return nil
}

func findBadge(doc *content.Document, id string) *content.Badge {
	for i := range doc.Badges {
		if doc.Badges[i].ID == id {
			return &doc.Badges[i]
		}
	}
	return nil
}

const helpText = `# Keys

| Key | Action |
|-----|--------|
| 1-6 | Jump to a section |
| tab / shift+tab | Next / previous section |
| ← / → | Back / forward through visited sections |
| ↑ ↓ pgup pgdn | Scroll (FAQ: move between questions) |
| enter / space | Open or close a FAQ answer |
| / | Search certificates by title or issuer |
| l | List the links on this section |
| : | Command prompt |
| esc | Close details, help or the search filter |
| q | Quit |

# Commands

- **goto** <section> | fuzzy, so ` + "`goto cert`" + ` works
- **search** <term> and **clear**
- **open** <n> | open link [n] of this section
- **back**, **forward**, **help**, **quit**

# Mouse

Hover a card to release its particles and move to tilt it. Click a card for
its details. Click a navigation item to jump to it.
`

func (m *model) renderHelp() string {
	width := min(72, max(20, m.viewport.Width-8))
	out, err := renderWithStyle(helpText, width)
	if err != nil {
		return helpText
	}
	return out
}

// ============================================================================
// MARKDOWN
// ============================================================================

var (
	markdownRenderers = make(map[int]*glamour.TermRenderer)
	markdownCache     = make(map[string]string)
)

// renderWithStyle renders markdown through glamour, word-wrapped at width.
// Output is cached because sections are redrawn every frame.
func renderWithStyle(markdown string, width int) (string, error) {
	key := strconv.Itoa(width) + "\x00" + markdown
	if out, ok := markdownCache[key]; ok {
		return out, nil
	}

	r, ok := markdownRenderers[width]
	if !ok {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", fmt.Errorf("markdown renderer: %w", err)
		}
		markdownRenderers[width] = r
	}

	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	out = strings.Trim(out, "\n")
	markdownCache[key] = out
	return out, nil
}
