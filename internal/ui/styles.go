package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135")) // violet
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))             // muted purple
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))            // gold
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	tabStyle    = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("60"))
	activeTab   = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("54"))
)
