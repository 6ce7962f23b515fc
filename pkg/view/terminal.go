package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mealorders/pkg/controller"
	"mealorders/pkg/mealdb"
)

// Terminal palette, adaptive to light and dark backgrounds.
var (
	colorInfo    = lipgloss.AdaptiveColor{Light: "#399ee6", Dark: "#59c2ff"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	colorError   = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}

	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(colorInfo)
	idStyle      = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	doneStyle    = lipgloss.NewStyle().Foreground(colorSuccess)
)

// MessageStyle returns the style for a status severity.
func MessageStyle(s controller.Severity) lipgloss.Style {
	switch s {
	case controller.SeveritySuccess:
		return lipgloss.NewStyle().Foreground(colorSuccess)
	case controller.SeverityError:
		return lipgloss.NewStyle().Foreground(colorError).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(colorInfo)
	}
}

// RenderMessage writes a status line. A nil message writes nothing.
func RenderMessage(w io.Writer, m *controller.Message) error {
	if m == nil {
		return nil
	}
	_, err := fmt.Fprintln(w, MessageStyle(m.Severity).Render(m.Text))
	return err
}

// RenderTerminal writes both views. The completed section is omitted
// while it is hidden.
func RenderTerminal(w io.Writer, pending Pending, completed Completed) error {
	if err := RenderPendingTerminal(w, pending); err != nil {
		return err
	}
	if !completed.Visible {
		return nil
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	return RenderCompletedTerminal(w, completed)
}

// RenderPendingTerminal writes the pending view, or its placeholder.
func RenderPendingTerminal(w io.Writer, pending Pending) error {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Incomplete Orders"))
	b.WriteString("\n")
	if len(pending.Rows) == 0 {
		placeholder := pending.Placeholder
		if placeholder == "" {
			placeholder = PendingPlaceholder
		}
		b.WriteString("  " + mutedStyle.Render(placeholder) + "\n")
	}
	for _, r := range pending.Rows {
		fmt.Fprintf(&b, "  %s  %s  %s\n",
			idStyle.Render(fmt.Sprintf("#%d", r.ID)),
			r.Name,
			mutedStyle.Render(fmt.Sprintf("(complete: %d)", r.ID)))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderCompletedTerminal writes the completed view. Nothing is written
// while it is hidden.
func RenderCompletedTerminal(w io.Writer, completed Completed) error {
	if !completed.Visible {
		return nil
	}
	var b strings.Builder
	b.WriteString(headingStyle.Render("Completed Orders"))
	b.WriteString("\n")
	for _, r := range completed.Rows {
		fmt.Fprintf(&b, "  %s  %s\n",
			idStyle.Render(fmt.Sprintf("#%d", r.ID)),
			doneStyle.Render(r.Name))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderChoices lists search results numbered from 1.
func RenderChoices(w io.Writer, token string, meals []mealdb.Meal) error {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Meals with " + token))
	b.WriteString("\n")
	for i, m := range meals {
		fmt.Fprintf(&b, "  %s  %s\n", idStyle.Render(fmt.Sprintf("%2d.", i+1)), m.Name)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
