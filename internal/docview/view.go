package docview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nttrung2406/readlaw-cli/internal/api"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("245"))

	activeTabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	userMsgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	assistantMsgStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255"))

	clauseTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("215"))

	contentStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.phase {
	case phaseInitializing:
		return contentStyle.Render(fmt.Sprintf("%s %s", m.spin.View(), m.labels.LoadingDocument))
	case phaseNotFound:
		// Terminal state: no tabs, pager or chat render.
		return contentStyle.Render(errorStyle.Render(m.labels.NotFound) + "\n" +
			mutedStyle.Render(m.fatalErr.Error()))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.filename))
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderTabs() string {
	names := []string{m.labels.Summary, m.labels.Clauses, m.labels.Chat}
	tabs := make([]string, len(names))
	for i, name := range names {
		if Tab(i) == m.tab {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderContent() string {
	switch m.tab {
	case TabSummary:
		return m.renderSummary()
	case TabClauses:
		return m.renderClauses()
	default:
		return m.renderChat()
	}
}

func (m Model) renderSummary() string {
	switch m.summaryPhase {
	case artifactFetching:
		return contentStyle.Render(fmt.Sprintf("%s %s", m.spin.View(), m.labels.LoadingSummary))
	case artifactFailed:
		return contentStyle.Render(errorStyle.Render(m.summaryErr.Error()) + "\n" +
			mutedStyle.Render(m.labels.RetryHint))
	case artifactReady:
		return contentStyle.Width(m.contentWidth()).Render(m.summary)
	}
	return ""
}

func (m Model) renderClauses() string {
	switch m.clausesPhase {
	case artifactFetching:
		return contentStyle.Render(fmt.Sprintf("%s %s", m.spin.View(), m.labels.LoadingClauses))
	case artifactFailed:
		return contentStyle.Render(errorStyle.Render(m.clausesErr.Error()) + "\n" +
			mutedStyle.Render(m.labels.RetryHint))
	case artifactReady:
		if len(m.clauses) == 0 {
			return contentStyle.Render(mutedStyle.Render(m.labels.NoClauses))
		}
		var b strings.Builder
		for i, clause := range m.clauses {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(clauseTitleStyle.Render("▸ " + clause.Title))
			b.WriteString("\n")
			b.WriteString(contentStyle.Width(m.contentWidth()).Render(clause.Content))
			b.WriteString("\n")
		}
		return b.String()
	}
	return ""
}

func (m Model) renderChat() string {
	var b strings.Builder

	if len(m.transcript) == 0 {
		b.WriteString(mutedStyle.Render(m.labels.EmptyTranscript))
		b.WriteString("\n")
	}
	for _, msg := range m.transcript {
		if msg.Role == api.RoleUser {
			b.WriteString(userMsgStyle.Render(m.labels.You + ": "))
		} else {
			b.WriteString(assistantMsgStyle.Render(m.labels.Assistant + ": "))
		}
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}

	if m.chatErr != nil {
		b.WriteString(errorStyle.Render(m.chatErr.Error()))
		b.WriteString("\n")
	}
	if m.chatLoading {
		b.WriteString(fmt.Sprintf("%s %s\n", m.spin.View(), m.labels.Thinking))
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	return b.String()
}

func (m Model) renderFooter() string {
	var parts []string
	if m.totalPages > 0 {
		parts = append(parts, fmt.Sprintf("%s %d %s %d", m.labels.Page, m.page, m.labels.Of, m.totalPages))
		parts = append(parts, m.labels.PagerHint)
	}
	parts = append(parts, m.labels.TabHint, m.labels.ReloadHint, m.labels.QuitHint)
	return mutedStyle.Render(strings.Join(parts, " · "))
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 78
	}
	if m.width > 4 {
		return m.width - 4
	}
	return m.width
}
