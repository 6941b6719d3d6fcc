package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/nehruadmin/internal/client/models"
	"github.com/dmitrijs2005/nehruadmin/internal/client/notify"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	focusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	faintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Faint(true)
	barFullStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
)

const barWidth = 30

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Nehru membership application"))
	b.WriteString("\n\n")

	for i, in := range m.inputs {
		label := "Photo (file path)"
		if i < len(m.fields) {
			label = fieldLabel(m.fields[i])
		}
		if i == m.focus {
			b.WriteString(focusStyle.Render(label))
		} else {
			b.WriteString(labelStyle.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
		if i < len(m.fields) && m.fields[i] == phoneField {
			if s := phoneStatus(m.phone, in.Value()); s != "" {
				b.WriteString("  " + s + "\n")
			}
		}
		b.WriteString("\n")
	}

	if m.submitting {
		b.WriteString(progressBar(m.progress))
		b.WriteString("\n\n")
	}

	for _, n := range m.notes {
		b.WriteString(noteLine(n))
		b.WriteString("\n")
	}
	if len(m.notes) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(faintStyle.Render("tab/shift+tab move • enter next/submit • ctrl+s submit • esc quit"))
	return b.String()
}

func fieldLabel(f string) string {
	if l, ok := labels[f]; ok {
		return l
	}
	return f
}

// phoneStatus renders the live check result for the value on screen.
func phoneStatus(st models.ValidationState, value string) string {
	if value == "" {
		return ""
	}
	switch st.State {
	case models.CheckChecking:
		return warnStyle.Render("checking…")
	case models.CheckAvailable:
		return okStyle.Render("✓ available")
	case models.CheckTaken:
		msg := "already registered"
		if st.Message != "" {
			msg = st.Message
		}
		return errStyle.Render("✗ " + msg)
	case models.CheckError:
		return faintStyle.Render("could not verify, the server will decide")
	}
	return faintStyle.Render("enter a 10-digit number")
}

func progressBar(p int) string {
	p = max(0, min(100, p))
	filled := barWidth * p / 100
	bar := barFullStyle.Render(strings.Repeat("█", filled)) + faintStyle.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("Uploading %s %3d%%", bar, p)
}

func noteLine(n notify.Notification) string {
	var s string
	switch n.Level {
	case notify.LevelSuccess:
		s = okStyle.Render("✓ " + n.Message)
	case notify.LevelWarning:
		s = warnStyle.Render("! " + n.Message)
	case notify.LevelError:
		s = errStyle.Render("✗ " + n.Message)
	default:
		s = n.Message
	}
	if n.Link != "" {
		s += " " + faintStyle.Render(n.Link)
	}
	return s
}
