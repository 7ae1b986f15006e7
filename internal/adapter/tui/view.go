package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	domain "github.com/ItsmeMIGUEL/sample-crud-app/internal/domain/user"
	"github.com/ItsmeMIGUEL/sample-crud-app/internal/usecase/directory"
	"github.com/ItsmeMIGUEL/sample-crud-app/internal/usecase/form"
)

// cardWidthThreshold is the terminal width below which the table gives
// way to the stacked card layout.
const cardWidthThreshold = 80

// View renders the whole screen: header with action indicator, error
// banner, toast, then either the list or the active modal, and a help
// line.
func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	if banner := m.rec.LoadError(); banner != "" {
		sections = append(sections, m.renderBanner(banner, width))
	}
	if alert := m.rec.Alert(); alert != nil {
		sections = append(sections, m.renderAlert(alert))
	}

	switch {
	case m.form != nil && m.form.session.Phase() == form.PhaseConfirmingDiscard:
		sections = append(sections, m.renderDiscardConfirm())
	case m.form != nil:
		sections = append(sections, m.renderForm())
	case m.deleting != nil:
		sections = append(sections, m.renderDeleteConfirm())
	default:
		sections = append(sections, m.renderList(width))
	}

	sections = append(sections, m.renderHelp())
	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.theme.HeaderForeground).
		Render("User Directory")

	if text := actionText(m.rec.Action()); text != "" {
		indicator := lipgloss.NewStyle().
			Foreground(m.theme.InfoText).
			Render("⣾ " + text)
		return title + "  " + indicator
	}
	return title
}

// actionText maps the in-flight action to the header indicator text.
func actionText(a directory.Action) string {
	switch a {
	case directory.ActionLoading:
		return "Loading users..."
	case directory.ActionAdding:
		return "Adding user..."
	case directory.ActionUpdating:
		return "Updating user..."
	case directory.ActionDeleting:
		return "Deleting user..."
	default:
		return ""
	}
}

func (m Model) renderBanner(text string, width int) string {
	return lipgloss.NewStyle().
		Foreground(m.theme.ErrorText).
		Border(lipgloss.NormalBorder()).
		BorderForeground(m.theme.ErrorText).
		Padding(0, 1).
		Width(min(width-2, 60)).
		Render(text + "  (x to dismiss)")
}

func (m Model) renderAlert(alert *directory.Alert) string {
	marker := "•"
	switch alert.Severity {
	case directory.SeveritySuccess:
		marker = "✓"
	case directory.SeverityError:
		marker = "✗"
	}
	return lipgloss.NewStyle().
		Foreground(m.theme.SeverityColor(alert.Severity)).
		Render(fmt.Sprintf("%s %s", marker, alert.Message))
}

func (m Model) renderList(width int) string {
	users := m.rec.Users()
	if len(users) == 0 {
		faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)
		if m.rec.Action() == directory.ActionLoading {
			return faint.Render("Loading users...")
		}
		return faint.Render("No users yet. Press a to add one.")
	}
	if width < cardWidthThreshold {
		return m.renderCards(users)
	}
	return m.renderTable(users)
}

// Column widths of the desktop table layout. The id column fits the
// 13-digit timestamp ids assigned to locally created records.
var tableColumns = []struct {
	title string
	width int
}{
	{"ID", 14},
	{"Name", 22},
	{"Username", 14},
	{"Email", 28},
	{"Company", 20},
}

func (m Model) renderTable(users []domain.User) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.HeaderForeground)
	rowStyle := lipgloss.NewStyle().Foreground(m.theme.NormalText)
	selectedStyle := lipgloss.NewStyle().
		Foreground(m.theme.SelectedForeground).
		Background(m.theme.SelectedBackground)

	var b strings.Builder
	var header strings.Builder
	for _, col := range tableColumns {
		header.WriteString(pad(col.title, col.width))
		header.WriteString("  ")
	}
	b.WriteString(headerStyle.Render(strings.TrimRight(header.String(), " ")))
	b.WriteString("\n")

	for i, u := range users {
		cells := []string{
			fmt.Sprintf("%d", u.ID),
			u.Name,
			u.Username,
			u.Email,
			u.Company.Name,
		}
		var row strings.Builder
		for j, col := range tableColumns {
			row.WriteString(pad(cells[j], col.width))
			row.WriteString("  ")
		}
		line := strings.TrimRight(row.String(), " ")
		if i == m.cursor {
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		if i < len(users)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderCards is the narrow-terminal layout: one block of lines per
// user instead of a table row.
func (m Model) renderCards(users []domain.User) string {
	nameStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.NormalText)
	selectedNameStyle := nameStyle.
		Foreground(m.theme.SelectedForeground).
		Background(m.theme.SelectedBackground)
	faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)

	var blocks []string
	for i, u := range users {
		name := nameStyle
		if i == m.cursor {
			name = selectedNameStyle
		}
		block := name.Render(fmt.Sprintf("%s (@%s)", u.Name, u.Username)) + "\n" +
			faint.Render("  "+u.Email) + "\n" +
			faint.Render(fmt.Sprintf("  %s · id %d", u.Company.Name, u.ID))
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n")
}

func (m Model) renderForm() string {
	f := m.form
	title := "Add New User"
	subtitle := "Create a new user account"
	if f.session.IsEdit() {
		title = "Edit User"
		subtitle = "Update user information"
	}
	if f.session.Dirty() {
		title += " •"
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.HeaderForeground)
	faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)
	labelStyle := lipgloss.NewStyle().Foreground(m.theme.NormalText)
	requiredStyle := lipgloss.NewStyle().Foreground(m.theme.ErrorText)
	errorStyle := lipgloss.NewStyle().Foreground(m.theme.ErrorText)
	warnStyle := lipgloss.NewStyle().Foreground(m.theme.WarningText)

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(faint.Render(subtitle))
	b.WriteString("\n")
	if f.session.Dirty() {
		b.WriteString(warnStyle.Render("⚠ You have unsaved changes"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, field := range formFields {
		label := labelStyle.Render(field.label)
		if field.required {
			label += requiredStyle.Render(" *")
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
		if msg := f.session.FieldError(field.name); msg != "" {
			b.WriteString(errorStyle.Render(msg))
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderColor).
		Padding(0, 2).
		Render(b.String())
}

func (m Model) renderDiscardConfirm() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.WarningText)
	text := lipgloss.NewStyle().Foreground(m.theme.NormalText)
	help := lipgloss.NewStyle().Foreground(m.theme.HelpText)

	body := titleStyle.Render("Unsaved Changes") + "\n\n" +
		text.Render("Your changes will be lost if you leave without saving.") + "\n" +
		text.Render("Are you sure you want to continue?") + "\n\n" +
		help.Render("n/esc keep editing · y discard changes")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.WarningText).
		Padding(0, 2).
		Render(body)
}

func (m Model) renderDeleteConfirm() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.ErrorText)
	text := lipgloss.NewStyle().Foreground(m.theme.NormalText)
	help := lipgloss.NewStyle().Foreground(m.theme.HelpText)

	body := titleStyle.Render("Delete User") + "\n\n" +
		text.Render(fmt.Sprintf("Delete %q? This cannot be undone.", m.deleting.Name)) + "\n\n" +
		help.Render("y delete · n/esc cancel")
	if m.rec.Action() == directory.ActionDeleting {
		body += "\n" + lipgloss.NewStyle().Foreground(m.theme.InfoText).Render("Deleting user...")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.ErrorText).
		Padding(0, 2).
		Render(body)
}

func (m Model) renderHelp() string {
	help := lipgloss.NewStyle().Foreground(m.theme.HelpText)
	switch {
	case m.form != nil:
		return help.Render("tab next field · enter save · esc cancel")
	case m.deleting != nil:
		return help.Render("y confirm · n cancel")
	default:
		return help.Render("j/k move · a add · e edit · d delete · r refresh · x dismiss · q quit")
	}
}

// pad truncates or right-pads a cell to the column width.
func pad(s string, width int) string {
	return fmt.Sprintf("%-*s", width, truncate(s, width))
}

// truncate shortens a string to at most max runes, ending with an
// ellipsis when it was cut.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
