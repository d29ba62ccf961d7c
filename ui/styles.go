package ui

import "github.com/charmbracelet/lipgloss"

var (
	focusedBorderColor = lipgloss.Color("212")
	blurredBorderColor = lipgloss.Color("241")

	focusedBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(focusedBorderColor)

	blurredBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(blurredBorderColor)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("111"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229"))

	// matchStyle marks every occurrence of the highlight query; the match
	// the cursor sits on gets currentMatchStyle instead.
	matchStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("22")).
			Foreground(lipgloss.Color("252"))

	currentMatchStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("208")).
				Foreground(lipgloss.Color("0")).
				Bold(true)
)

// borderStyle picks the pane border for the given focus state.
func borderStyle(focused bool) lipgloss.Style {
	if focused {
		return focusedBorderStyle
	}
	return blurredBorderStyle
}
