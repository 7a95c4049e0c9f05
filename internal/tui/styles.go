package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("205")).
			Bold(true)

	targetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("40")).
			Bold(true)

	workStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	breakStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	appointmentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	idleStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	allocationStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	overflowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	dangerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)
