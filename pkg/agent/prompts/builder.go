package prompts

import (
	"strings"

	"github.com/loomhq/loom/pkg/agent/tools"
	"github.com/loomhq/loom/pkg/types"
)

// PromptBuilder constructs dynamic system prompts for the agent loop
type PromptBuilder struct {
	tools              []tools.Tool
	customInstructions string
}

// NewPromptBuilder creates a new prompt builder with default settings
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{
		tools: []tools.Tool{},
	}
}

// WithTools sets the available tools for the agent
func (pb *PromptBuilder) WithTools(toolsList []tools.Tool) *PromptBuilder {
	pb.tools = toolsList
	return pb
}

// WithCustomInstructions adds task-specific instructions to the prompt.
// This is where the mode prompt (learn, create, chat) is injected.
func (pb *PromptBuilder) WithCustomInstructions(instructions string) *PromptBuilder {
	pb.customInstructions = instructions
	return pb
}

// Build constructs the complete system prompt by assembling all sections
func (pb *PromptBuilder) Build() string {
	var builder strings.Builder

	if pb.customInstructions != "" {
		builder.WriteString("<custom_instructions>\n")
		builder.WriteString(pb.customInstructions)
		builder.WriteString("\n</custom_instructions>\n\n")
	}

	builder.WriteString(SystemCapabilitiesPrompt)
	builder.WriteString("\n\n")

	builder.WriteString(AgentLoopPrompt)
	builder.WriteString("\n\n")

	builder.WriteString(ChainOfThoughtPrompt)
	builder.WriteString("\n\n")

	builder.WriteString(ToolCallingPrompt)
	builder.WriteString("\n\n")

	if len(pb.tools) > 0 {
		builder.WriteString("<available_tools>\n")
		builder.WriteString(FormatToolSchemas(pb.tools))
		builder.WriteString("</available_tools>\n\n")
	}

	builder.WriteString(ToolUseRulesPrompt)

	return builder.String()
}

// BuildMessages creates a complete message list including system prompt and conversation history
// The errorContext parameter allows passing ephemeral error messages to the agent without
// storing them in permanent memory - useful for self-healing error recovery
func BuildMessages(systemPrompt string, history []*types.Message, userMessage string, errorContext string) []*types.Message {
	messages := make([]*types.Message, 0, len(history)+3)

	messages = append(messages, types.NewSystemMessage(systemPrompt))

	// Add conversation history (skip any existing system messages to avoid duplicates)
	for _, msg := range history {
		if msg.Role != types.RoleSystem {
			messages = append(messages, msg)
		}
	}

	// Add error context as ephemeral user message if provided
	// This is NOT stored in memory - only used for this iteration
	if errorContext != "" {
		messages = append(messages, types.NewUserMessage(errorContext))
	}

	if userMessage != "" {
		messages = append(messages, types.NewUserMessage(userMessage))
	}

	return messages
}
