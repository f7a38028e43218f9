package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// StyleManager encapsulates the styles of the viewer chrome
type StyleManager struct {
	Status  lipgloss.Style
	Counter lipgloss.Style
	Caption lipgloss.Style
	Error   lipgloss.Style
	Dim     lipgloss.Style
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return &StyleManager{
		Status:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")),
		Counter: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Background(lipgloss.Color("236")),
		Caption: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244")).Background(lipgloss.Color("236")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Background(lipgloss.Color("236")),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// Global style manager instance
var styles = DefaultStyles()
