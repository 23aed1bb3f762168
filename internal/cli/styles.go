package cli

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	question  lipgloss.Style
	label     lipgloss.Style
	correct   lipgloss.Style
	incorrect lipgloss.Style
	ungraded  lipgloss.Style
	errorText lipgloss.Style
	muted     lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain, plain, plain}
	}
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
		question:  lipgloss.NewStyle().Bold(true),
		label:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		correct:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		incorrect: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		ungraded:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		errorText: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}
}
