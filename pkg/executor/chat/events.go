package chat

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/loomhq/loom/pkg/types"
)

// handleAgentEvent processes events from the agent event stream and
// updates the transcript.
func (m *model) handleAgentEvent(event *types.AgentEvent) {
	switch event.Type {
	case types.EventTypeThinkingStart:
		m.isThinking = true
		m.thinkingBuffer.Reset()

	case types.EventTypeThinkingContent:
		m.handleThinkingContent(event.Content)
		return // preserve the streaming viewport update

	case types.EventTypeThinkingEnd:
		m.handleThinkingEnd()

	case types.EventTypeToolCall:
		m.content.WriteString(toolStyle.Render("🔧 "+event.ToolName) + "\n")

	case types.EventTypeToolResult:
		m.handleToolResult(event.ToolOutput)

	case types.EventTypeToolResultError:
		m.content.WriteString(errorStyle.Render(fmt.Sprintf("  ✗ %s: %v", event.ToolName, event.Error)) + "\n\n")

	case types.EventTypeMessageStart:
		m.messageBuffer.Reset()

	case types.EventTypeMessageContent:
		if m.handleMessageContent(event.Content) {
			return // preserve the streaming viewport update
		}

	case types.EventTypeMessageEnd:
		m.handleMessageEnd()

	case types.EventTypeError:
		m.content.WriteString(errorStyle.Render(fmt.Sprintf("  ❌ Error: %v", event.Error)) + "\n\n")

	case types.EventTypeUpdateBusy:
		m.agentBusy = event.IsBusy

	case types.EventTypeTurnEnd:
		m.agentBusy = false

	case types.EventTypeTokenUsage:
		if event.TokenUsage != nil {
			m.totalPromptTokens += event.TokenUsage.PromptTokens
			m.totalCompletionTokens += event.TokenUsage.CompletionTokens
			m.totalTokens += event.TokenUsage.TotalTokens
		}
	}

	m.viewport.SetContent(m.content.String())
	m.viewport.GotoBottom()
}

func (m *model) handleThinkingContent(content string) {
	if content == "" {
		return
	}
	m.thinkingBuffer.WriteString(content)
	header := thinkingStyle.Render("💭 thinking ")
	m.viewport.SetContent(m.content.String() + header + thinkingStyle.Render(m.thinkingBuffer.String()))
	m.viewport.GotoBottom()
}

func (m *model) handleThinkingEnd() {
	if m.thinkingBuffer.Len() > 0 {
		m.content.WriteString(thinkingStyle.Render("💭 thinking " + m.thinkingBuffer.String()))
		m.content.WriteString("\n\n")
	}
	m.isThinking = false
	m.thinkingBuffer.Reset()
}

func (m *model) handleToolResult(output interface{}) {
	result := fmt.Sprintf("%v", output)
	m.content.WriteString(toolResultStyle.Render("  ✓ " + result))
	m.content.WriteString("\n\n")
}

func (m *model) handleMessageContent(content string) bool {
	if content != "" && !m.hasMessageContentStarted {
		m.hasMessageContentStarted = true
	}
	m.messageBuffer.WriteString(content)

	m.viewport.SetContent(m.content.String() + lipgloss.NewStyle().Render(m.messageBuffer.String()))
	m.viewport.GotoBottom()
	return true
}

func (m *model) handleMessageEnd() {
	if m.messageBuffer.Len() > 0 && m.hasMessageContentStarted {
		m.content.WriteString(m.messageBuffer.String())
		m.content.WriteString("\n\n")
		m.hasMessageContentStarted = false
	}
	m.messageBuffer.Reset()
}
