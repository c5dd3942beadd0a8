package main

import "github.com/charmbracelet/lipgloss"

// ============================================================================
// STYLING SYSTEM
// ============================================================================
// Every colour comes from the portfolio's dark palette. Effects blend on top
// of these at render time, so the static look is what you get with --static.

const (
	pagePad        = 2
	pageBackground = "#020617"
	cardBorder     = "#392e4e"
	accent         = "#92bbf4"
	lavender       = "#B19EEF"
)

var (
	// ============================================================================
	// LAYOUT
	// ============================================================================

	// docStyle keeps section content off the terminal edge
	docStyle = lipgloss.NewStyle().PaddingLeft(pagePad).PaddingRight(pagePad)

	// ============================================================================
	// NAVIGATION AND STATUS
	// ============================================================================

	navItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ededed")).
			Padding(0, 2)

	navActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color(lavender)).
			Padding(0, 2)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Dark gray text
			Background(lipgloss.Color("236")). // Dark background
			Padding(0, 1)

	statusErrorStyle = statusStyle.
				Foreground(lipgloss.Color("203"))

	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")) // Pink prompt

	// ============================================================================
	// TYPOGRAPHY
	// ============================================================================

	// titleStyle is the neon section heading
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(lavender)).
			MarginBottom(1)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8B5CF6")).
			MarginTop(1)

	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Italic(true).
			Foreground(lipgloss.Color("#ededed"))

	surnameStyle = nameStyle.
			Foreground(lipgloss.Color(accent))

	paragraphStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")) // Light gray - easy on the eyes

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))

	roleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#a0b1f9")).
			Padding(0, 1)

	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(accent)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3f50e7")).
			Padding(0, 2)

	// Inline markup inside descriptions
	linkStyle     = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color(accent))
	strongStyle   = lipgloss.NewStyle().Bold(true)
	emphasisStyle = lipgloss.NewStyle().Italic(true)
	codeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ec4899"))

	// ============================================================================
	// CARDS
	// ============================================================================

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(cardBorder)).
			Padding(0, 1)

	cardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(lavender)).
			Padding(1, 3)

	// ============================================================================
	// ABOUT
	// ============================================================================

	timelineDotStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8A2BE2"))
	barFillStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8B5CF6"))
	barEmptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	chipStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)

	// ============================================================================
	// FAQ
	// ============================================================================

	questionStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#e9d5ff"))
	questionActiveStyle = questionStyle.Bold(true).Foreground(lipgloss.Color(lavender))
)
