package chat

import (
	"fmt"
	"strings"
)

// View renders the chat interface.
func (m *model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder

	b.WriteString(m.buildHeader())
	b.WriteString("\n")
	b.WriteString(m.buildTips())
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.agentBusy {
		b.WriteString(m.spinner.View() + thinkingStyle.Render(" working..."))
		b.WriteString("\n")
	}

	b.WriteString(inputBoxStyle.Width(m.width - 4).Render(m.textarea.View()))
	b.WriteString("\n")
	b.WriteString(m.buildStatusBar())

	return b.String()
}

func (m *model) buildHeader() string {
	return headerStyle.Render("  loom · writing pattern assistant")
}

func (m *model) buildTips() string {
	return tipsStyle.Render("  Enter to send • Ctrl+C cancels a running turn, or exits when idle")
}

func (m *model) buildStatusBar() string {
	right := "loom"
	if m.totalTokens > 0 {
		right = fmt.Sprintf("tokens: %d in / %d out / %d total",
			m.totalPromptTokens, m.totalCompletionTokens, m.totalTokens)
	}
	return statusBarStyle.Width(m.width).Render(right)
}
