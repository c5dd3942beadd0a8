package main

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/zam-dot/folio/internal/motion"
	"github.com/zam-dot/folio/internal/particle"
	"github.com/zam-dot/folio/internal/spotlight"
)

// Effects work in pixels; the terminal works in cells. These helpers
// convert between the two using the configured cell size.

// pointPx returns the centre of the cell at (x, y)
func (m *model) pointPx(x, y int) motion.Vec {
	return motion.Vec{
		X: (float64(x) + 0.5) * m.cfg.CellWidth,
		Y: (float64(y) + 0.5) * m.cfg.CellHeight,
	}
}

// rectPx converts a screen cell rectangle into pixels
func (m *model) rectPx(x, y, w, h int) motion.Rect {
	return motion.Rect{
		X: float64(x) * m.cfg.CellWidth,
		Y: float64(y) * m.cfg.CellHeight,
		W: float64(w) * m.cfg.CellWidth,
		H: float64(h) * m.cfg.CellHeight,
	}
}

// cellOf converts a pixel position back into the cell containing it
func (m *model) cellOf(p motion.Vec) (int, int) {
	return int(math.Floor(p.X / m.cfg.CellWidth)), int(math.Floor(p.Y / m.cfg.CellHeight))
}

// screenY maps a content line to a screen row
func (m *model) screenY(line int) int {
	return line - m.viewport.YOffset + headerHeight
}

// slotPx is the on-screen pixel rectangle of a card
func (m *model) slotPx(sl slot) motion.Rect {
	return m.rectPx(sl.x, m.screenY(sl.y), sl.w, sl.h)
}

// sectionPx is the pixel rectangle the section is drawn in
func (m *model) sectionPx() motion.Rect {
	return m.rectPx(0, headerHeight, m.viewport.Width, m.viewport.Height)
}

func (m *model) inViewport(y int) bool {
	return y >= headerHeight && y < headerHeight+m.viewport.Height
}

func (m *model) elements() []spotlight.Element {
	elems := make([]spotlight.Element, len(m.slots))
	for i, sl := range m.slots {
		elems[i] = spotlight.Element{ID: sl.id, Bounds: m.slotPx(sl)}
	}
	return elems
}

// navPx is the pixel rectangle of the active navigation item
func (m *model) navPx() motion.Rect {
	if int(m.section) >= len(m.navSpans) {
		return motion.Rect{}
	}
	sp := m.navSpans[m.section]
	return m.rectPx(sp.x, 0, sp.w, 1)
}

// ============================================================================
// COMPOSITING
// ============================================================================

// mark is a single glyph drawn over the rendered frame
type mark struct {
	x, y  int
	glyph string
	color lipgloss.TerminalColor
}

// clip bounds the rows and columns a group of marks may land on
type clip struct {
	x0, y0, x1, y1 int
}

func (c clip) contains(x, y int) bool {
	return x >= c.x0 && x < c.x1 && y >= c.y0 && y < c.y1
}

func (c clip) intersect(o clip) clip {
	return clip{x0: max(c.x0, o.x0), y0: max(c.y0, o.y0), x1: min(c.x1, o.x1), y1: min(c.y1, o.y1)}
}

// composite draws marks over view. Each mark replaces exactly one cell;
// styling on either side of it is preserved.
func composite(view string, marks []mark) string {
	if len(marks) == 0 {
		return view
	}
	lines := strings.Split(view, "\n")
	sort.SliceStable(marks, func(i, j int) bool {
		if marks[i].y != marks[j].y {
			return marks[i].y < marks[j].y
		}
		return marks[i].x < marks[j].x
	})
	for _, mk := range marks {
		if mk.y < 0 || mk.y >= len(lines) || mk.x < 0 {
			continue
		}
		lines[mk.y] = spliceAt(lines[mk.y], mk.x, lipgloss.NewStyle().Foreground(mk.color).Render(mk.glyph))
	}
	return strings.Join(lines, "\n")
}

// spliceAt replaces the cell at column x of line with glyph, padding short
// lines with spaces.
func spliceAt(line string, x int, glyph string) string {
	w := ansi.StringWidth(line)
	if w <= x {
		return line + strings.Repeat(" ", x-w) + glyph
	}
	return ansi.Truncate(line, x, "") + glyph + ansi.TruncateLeft(line, x+1, "")
}

// particleGlyph picks a dot by how much of the particle is left
func particleGlyph(s particle.Snapshot) string {
	size := s.Scale * s.Opacity
	switch {
	case size > 0.66:
		return "●"
	case size > 0.33:
		return "•"
	default:
		return "·"
	}
}

// particleMarks places an emitter's particles around centre, dropping the
// ones that have faded out or fall outside c.
func (m *model) particleMarks(e *particle.Emitter, centre motion.Vec, c clip) []mark {
	var marks []mark
	for _, s := range e.Particles() {
		if s.Opacity < 0.05 || s.Scale <= 0.05 {
			continue
		}
		x, y := m.cellOf(centre.Add(s.Pos))
		if !c.contains(x, y) {
			continue
		}
		marks = append(marks, mark{x: x, y: y, glyph: particleGlyph(s), color: lipgloss.Color(s.Color)})
	}
	return marks
}

// rippleMarks draws each ripple as a ring of points clipped to the card.
func (m *model) rippleMarks(e *particle.Emitter, bounds motion.Rect, glow colorful.Color, within clip) []mark {
	var marks []mark
	base := motion.MustHex(pageBackground)
	x0, y0 := m.cellOf(motion.Vec{X: bounds.X, Y: bounds.Y})
	c := clip{x0: x0, y0: y0, x1: x0 + int(bounds.W/m.cfg.CellWidth), y1: y0 + int(bounds.H/m.cfg.CellHeight)}
	c = c.intersect(within)

	for _, r := range e.Ripples() {
		if r.Opacity < 0.05 || r.Radius < 1 {
			continue
		}
		origin := motion.Vec{X: bounds.X + r.Origin.X, Y: bounds.Y + r.Origin.Y}
		color := motion.Blend(base, glow, r.Opacity)
		seen := make(map[[2]int]bool)
		const points = 32
		for i := range points {
			angle := 2 * math.Pi * float64(i) / points
			p := origin.Add(motion.Vec{X: math.Cos(angle) * r.Radius, Y: math.Sin(angle) * r.Radius})
			x, y := m.cellOf(p)
			if !c.contains(x, y) || seen[[2]int{x, y}] {
				continue
			}
			seen[[2]int{x, y}] = true
			marks = append(marks, mark{x: x, y: y, glyph: "∘", color: color})
		}
	}
	return marks
}

// spotlightMarks draws the page spotlight as a small halo around the
// pointer, brighter in the middle.
func (m *model) spotlightMarks(c clip) []mark {
	if m.engine == nil {
		return nil
	}
	o, ok := m.engine.Overlay()
	if !ok || o.Opacity < 0.05 {
		return nil
	}
	base := motion.MustHex(pageBackground)
	cx, cy := m.cellOf(o.Pos)

	marks := []mark{{x: cx, y: cy, glyph: "✛", color: motion.Blend(base, o.Color, o.Opacity)}}
	halo := [][2]int{{-2, 0}, {2, 0}, {0, -1}, {0, 1}, {-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
	for _, d := range halo {
		x, y := cx+d[0], cy+d[1]
		if !c.contains(x, y) {
			continue
		}
		marks = append(marks, mark{x: x, y: y, glyph: "·", color: motion.Blend(base, o.Color, o.Opacity*0.6)})
	}
	if !c.contains(cx, cy) {
		return marks[1:]
	}
	return marks
}

// effectMarks collects everything drawn on top of the rendered frame
func (m *model) effectMarks() []mark {
	var marks []mark
	body := clip{x0: 0, y0: headerHeight, x1: m.width, y1: headerHeight + m.viewport.Height}

	if m.nav != nil {
		header := clip{x0: 0, y0: 0, x1: m.width, y1: headerHeight}
		marks = append(marks, m.particleMarks(m.nav, m.navPx().Center(), header)...)
	}
	if m.modal != "" || m.showHelp {
		return marks
	}

	glow := motion.MustHex(lavender)
	if m.engine != nil {
		glow = m.engine.Color()
	}
	for _, sl := range m.slots {
		e, ok := m.cards[sl.id]
		if !ok {
			continue
		}
		b := m.slotPx(sl)
		marks = append(marks, m.particleMarks(e, b.Center(), body)...)
		marks = append(marks, m.rippleMarks(e, b, glow, body)...)
	}
	marks = append(marks, m.spotlightMarks(body)...)
	return marks
}
