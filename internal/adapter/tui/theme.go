package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ItsmeMIGUEL/sample-crud-app/internal/usecase/directory"
)

// Theme defines the color palette for the terminal UI. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Notification severities.
	SuccessText lipgloss.Color
	ErrorText   lipgloss.Color
	InfoText    lipgloss.Color

	// Dirty-form warning accents.
	WarningText lipgloss.Color
}

// DefaultTheme is the built-in palette.
func DefaultTheme() Theme {
	return Theme{
		NormalText:         lipgloss.Color("252"),
		FaintText:          lipgloss.Color("243"),
		SelectedBackground: lipgloss.Color("237"),
		SelectedForeground: lipgloss.Color("231"),
		HeaderForeground:   lipgloss.Color("39"),
		BorderColor:        lipgloss.Color("240"),
		HelpText:           lipgloss.Color("241"),
		SuccessText:        lipgloss.Color("42"),
		ErrorText:          lipgloss.Color("203"),
		InfoText:           lipgloss.Color("75"),
		WarningText:        lipgloss.Color("214"),
	}
}

// SeverityColor returns the color for a notification severity.
// Unknown severities render as normal text.
func (theme Theme) SeverityColor(severity directory.Severity) lipgloss.Color {
	switch severity {
	case directory.SeveritySuccess:
		return theme.SuccessText
	case directory.SeverityError:
		return theme.ErrorText
	case directory.SeverityInfo:
		return theme.InfoText
	default:
		return theme.NormalText
	}
}
