package runner

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rlch/graphil"
)

var (
	colorTranslated = lipgloss.Color("#10b981") // green-500
	colorMusked     = lipgloss.Color("#14b8a6") // teal-500
	colorLifted     = lipgloss.Color("#22c55e") // green-400
	colorFail       = lipgloss.Color("#ef4444") // red-500
	colorGap        = lipgloss.Color("#f59e0b") // amber-500
	colorSkip       = lipgloss.Color("#eab308") // yellow-500
	colorRunning    = lipgloss.Color("#06b6d4") // cyan-500

	colorDim    = lipgloss.Color("#6b7280") // gray-500
	colorMuted  = lipgloss.Color("#9ca3af") // gray-400
	colorBorder = lipgloss.Color("#374151") // gray-700
	colorAccent = lipgloss.Color("#3b82f6") // blue-500
)

// Styles holds the lipgloss styles of the batch TUI.
type Styles struct {
	Pass    lipgloss.Style
	Fail    lipgloss.Style
	Skip    lipgloss.Style
	Running lipgloss.Style
	Error   lipgloss.Style

	// Per translation category
	Category map[graphil.Category]lipgloss.Style

	Dim    lipgloss.Style
	Muted  lipgloss.Style
	Bold   lipgloss.Style
	Query  lipgloss.Style
	GQL    lipgloss.Style
	Source lipgloss.Style

	SymbolPass    string
	SymbolFail    string
	SymbolSkip    string
	SymbolPending string
	SymbolArrow   string

	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style

	// Width of the category column
	CategoryWidth int
}

// DefaultStyles returns the default TUI styles.
func DefaultStyles() *Styles {
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	return &Styles{
		Pass:    fg(colorTranslated).Bold(true),
		Fail:    fg(colorFail).Bold(true),
		Skip:    fg(colorSkip).Bold(true),
		Running: fg(colorRunning).Bold(true),
		Error:   fg(colorFail).Bold(true),

		Category: map[graphil.Category]lipgloss.Style{
			graphil.CategoryNotCypher:    fg(colorFail),
			graphil.CategoryCompliant:    fg(colorTranslated),
			graphil.CategoryMusked:       fg(colorMusked),
			graphil.CategoryNotSupported: fg(colorMuted),
			graphil.CategoryTranslatable: fg(colorLifted),
			graphil.CategoryNoStandard:   fg(colorGap),
		},

		Dim:    fg(colorDim),
		Muted:  fg(colorMuted),
		Bold:   lipgloss.NewStyle().Bold(true),
		Query:  fg(lipgloss.Color("#f8fafc")), // slate-50
		GQL:    fg(colorAccent),
		Source: fg(colorAccent).Bold(true),

		SymbolPass:    "✓",
		SymbolFail:    "✗",
		SymbolSkip:    "↓",
		SymbolPending: "⋯",
		SymbolArrow:   "→",

		ProgressFilled: fg(colorAccent),
		ProgressEmpty:  fg(colorBorder),

		CategoryWidth: 11,
	}
}

// CategoryStyle returns the style of c, or Muted for an unknown category.
func (s *Styles) CategoryStyle(c graphil.Category) lipgloss.Style {
	if style, ok := s.Category[c]; ok {
		return style
	}

	return s.Muted
}

// SpinnerFrames returns the braille spinner animation frames.
func SpinnerFrames() []string {
	return []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
}

// ProgressChars returns the progress bar characters.
func ProgressChars() (string, string) {
	return "█", "░"
}
