// Package agent provides the core agent interface and DefaultAgent
// implementation for the Loom content agent.
//
// The DefaultAgent is available directly from this package for simple usage:
//
//	import "github.com/loomhq/loom/pkg/agent"
//	ag := agent.NewDefaultAgent(provider, agent.WithCustomInstructions("..."))
//
// The package is organized with subpackages for specialized functionality:
//   - memory: Conversation history storage
//   - prompts: System prompt assembly and error recovery messages
//   - tools: Tool interface and XML tool call parsing
package agent

import (
	"context"

	"github.com/loomhq/loom/pkg/agent/tools"
	"github.com/loomhq/loom/pkg/types"
)

// Agent defines the core capabilities of a Loom agent.
// Agents are async event-driven components that process messages through
// an LLM provider and communicate via channels.
type Agent interface {
	// Start begins the agent's event loop in a goroutine.
	// The agent will listen for messages on its input channel and process them
	// asynchronously, sending responses to the event channel.
	//
	// The agent runs until:
	// - The context is canceled
	// - The shutdown channel is closed
	// - An unrecoverable error occurs
	//
	// Returns an error if the agent fails to start, otherwise returns nil
	// and continues running asynchronously.
	Start(ctx context.Context) error

	// Shutdown gracefully stops the agent.
	// Returns when the agent has fully stopped or the context is canceled.
	Shutdown(ctx context.Context) error

	// GetChannels returns the communication channels for this agent.
	// The executor uses these channels to send input and receive output.
	GetChannels() *types.AgentChannels

	// GetTool retrieves a specific tool by name from the agent's tool registry.
	// Returns nil if the tool is not found.
	GetTool(name string) tools.Tool

	// GetTools returns all tools registered with the agent.
	GetTools() []tools.Tool
}
