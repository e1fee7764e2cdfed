// Package tui is the presentation layer: a Bubble Tea program hosting the
// conversation lifecycle core. Clean Architecture: framework/driver layer,
// outermost circle - it translates key events into state machine calls and
// artifacts into terminal output.
package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used across the views.
type Styles struct {
	Header      lipgloss.Style
	UserLabel   lipgloss.Style
	BotLabel    lipgloss.Style
	UserText    lipgloss.Style
	Strong      lipgloss.Style
	Em          lipgloss.Style
	Citation    lipgloss.Style
	CitationBar lipgloss.Style
	ChartBar    lipgloss.Style
	ChartLabel  lipgloss.Style
	Error       lipgloss.Style
	Toast       lipgloss.Style
	FileCard    lipgloss.Style
	Help        lipgloss.Style
	Pending     lipgloss.Style
}

// DefaultStyles returns the default color scheme.
func DefaultStyles() Styles {
	return Styles{
		Header:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		UserLabel:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		BotLabel:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
		UserText:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Strong:      lipgloss.NewStyle().Bold(true),
		Em:          lipgloss.NewStyle().Italic(true),
		Citation:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		CitationBar: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		ChartBar:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		ChartLabel:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Toast:       lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("130")).Padding(0, 1),
		FileCard:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1),
		Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Pending:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
	}
}
