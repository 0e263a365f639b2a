package agent

import (
	"context"
	"fmt"
	"sync"

	"github.com/loomhq/loom/pkg/agent/memory"
	"github.com/loomhq/loom/pkg/agent/tools"
	"github.com/loomhq/loom/pkg/llm"
	"github.com/loomhq/loom/pkg/llm/tokenizer"
	"github.com/loomhq/loom/pkg/logging"
	"github.com/loomhq/loom/pkg/types"
)

var agentDebugLog *logging.Logger

func init() {
	var err error
	agentDebugLog, err = logging.NewLogger("agent")
	if err != nil {
		// Logger fell back to stderr due to initialization failure
		agentDebugLog.Warnf("Failed to initialize agent logger, using stderr fallback: %v", err)
	}
}

// consecutiveErrorLimit is the circuit breaker threshold for the agent loop.
const consecutiveErrorLimit = 5

// DefaultAgent is a basic implementation of the Agent interface.
// It processes user inputs through an LLM provider using an agent loop
// with tools, thinking, and memory management.
type DefaultAgent struct {
	provider           llm.Provider
	channels           *types.AgentChannels
	customInstructions string
	maxTurns           int
	bufferSize         int

	// Agent loop components
	tools   map[string]tools.Tool
	toolsMu sync.RWMutex
	memory  memory.Memory

	// Control channels
	cancelMu     sync.Mutex
	cancelStream context.CancelFunc

	// Running state
	running bool
	runMu   sync.Mutex

	// Error recovery state
	consecutiveErrors int

	// Token usage tracking
	tokenizer *tokenizer.Tokenizer
}

// AgentOption is a function that configures an agent
type AgentOption func(*DefaultAgent)

// WithCustomInstructions sets custom instructions for the agent.
// These carry the mode prompt (learn, create, chat) into the system prompt.
func WithCustomInstructions(instructions string) AgentOption {
	return func(a *DefaultAgent) {
		a.customInstructions = instructions
	}
}

// WithMaxTurns sets the maximum number of loop iterations per turn.
// Zero means no limit.
func WithMaxTurns(max int) AgentOption {
	return func(a *DefaultAgent) {
		a.maxTurns = max
	}
}

// WithBufferSize sets the channel buffer size
func WithBufferSize(size int) AgentOption {
	return func(a *DefaultAgent) {
		a.bufferSize = size
	}
}

// NewDefaultAgent creates a new DefaultAgent with the given provider and options.
func NewDefaultAgent(provider llm.Provider, opts ...AgentOption) *DefaultAgent {
	// Create tokenizer for client-side token counting
	tok, err := tokenizer.New()
	if err != nil {
		// Fall back to nil tokenizer if initialization fails
		tok = nil
	}

	a := &DefaultAgent{
		provider:   provider,
		bufferSize: 10, // default buffer size
		tools:      make(map[string]tools.Tool),
		memory:     memory.NewConversationMemory(),
		tokenizer:  tok,
	}

	// Register built-in tools
	a.registerDefaultTools()

	for _, opt := range opts {
		opt(a)
	}

	a.channels = types.NewAgentChannels(a.bufferSize)

	return a
}

func (a *DefaultAgent) registerDefaultTools() {
	a.tools["task_completion"] = tools.NewTaskCompletionTool()
	a.tools["converse"] = tools.NewConverseTool()
}

// Start begins the agent's event loop in a goroutine.
func (a *DefaultAgent) Start(ctx context.Context) error {
	a.runMu.Lock()
	if a.running {
		a.runMu.Unlock()
		return fmt.Errorf("agent is already running")
	}
	a.running = true
	a.runMu.Unlock()

	go a.eventLoop(ctx)

	return nil
}

// Shutdown gracefully stops the agent.
func (a *DefaultAgent) Shutdown(ctx context.Context) error {
	close(a.channels.Shutdown)

	select {
	case <-a.channels.Done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// GetChannels returns the communication channels for this agent.
func (a *DefaultAgent) GetChannels() *types.AgentChannels {
	return a.channels
}

// eventLoop is the main processing loop for the agent.
func (a *DefaultAgent) eventLoop(ctx context.Context) {
	defer a.channels.Close()
	defer func() {
		a.runMu.Lock()
		a.running = false
		a.runMu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			a.emitEvent(types.NewErrorEvent(ctx.Err()))
			return

		case <-a.channels.Shutdown:
			return

		case input := <-a.channels.Input:
			if input == nil {
				// Channel closed
				return
			}

			// Handle cancellation immediately (synchronously) so it can interrupt ongoing processing
			if input.IsCancel() {
				a.processInput(ctx, input)
				continue
			}

			// Process other inputs asynchronously so eventLoop keeps handling cancel requests
			go a.processInput(ctx, input)
		}
	}
}

// processInput handles a single input from the user.
func (a *DefaultAgent) processInput(ctx context.Context, input *types.Input) {
	if input.IsCancel() {
		a.cancelMu.Lock()
		if a.cancelStream != nil {
			a.cancelStream()
			a.cancelStream = nil
		}
		a.cancelMu.Unlock()
		return
	}

	if input.IsUserInput() {
		a.processUserInput(ctx, input.Content)
		return
	}
}

// processUserInput processes a user text input using the agent loop.
func (a *DefaultAgent) processUserInput(ctx context.Context, content string) {
	userMsg := types.NewUserMessage(content)
	a.memory.Add(userMsg)

	// Create cancellable context for this turn
	turnCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.cancelMu.Lock()
	a.cancelStream = cancel
	a.cancelMu.Unlock()

	defer func() {
		a.cancelMu.Lock()
		a.cancelStream = nil
		a.cancelMu.Unlock()
	}()

	a.emitEvent(types.NewUpdateBusyEvent(true))
	defer a.emitEvent(types.NewUpdateBusyEvent(false))

	a.runAgentLoop(turnCtx)

	a.emitEvent(types.NewTurnEndEvent())
}

// RegisterTool adds a custom tool to the agent's tool registry.
// Built-in tools (task_completion, converse) are always available
// and cannot be overridden.
func (a *DefaultAgent) RegisterTool(tool tools.Tool) error {
	if tool == nil {
		return fmt.Errorf("tool cannot be nil")
	}

	name := tool.Name()
	if name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}

	builtIns := map[string]bool{
		"task_completion": true,
		"converse":        true,
	}
	if builtIns[name] {
		return fmt.Errorf("cannot override built-in tool: %s", name)
	}

	a.toolsMu.Lock()
	defer a.toolsMu.Unlock()

	a.tools[name] = tool
	return nil
}

// GetTool retrieves a specific tool by name from the agent's tool registry.
// Returns nil if the tool is not found.
func (a *DefaultAgent) GetTool(name string) tools.Tool {
	a.toolsMu.RLock()
	defer a.toolsMu.RUnlock()

	return a.tools[name]
}

// GetTools returns all tools registered with the agent.
func (a *DefaultAgent) GetTools() []tools.Tool {
	return a.getToolsList()
}

// getToolsList returns tools as []tools.Tool for internal use
func (a *DefaultAgent) getToolsList() []tools.Tool {
	a.toolsMu.RLock()
	defer a.toolsMu.RUnlock()

	toolsList := make([]tools.Tool, 0, len(a.tools))
	for _, tool := range a.tools {
		toolsList = append(toolsList, tool)
	}
	return toolsList
}

// getTool retrieves a tool by name (thread-safe)
func (a *DefaultAgent) getTool(name string) (tools.Tool, bool) {
	a.toolsMu.RLock()
	defer a.toolsMu.RUnlock()

	tool, exists := a.tools[name]
	return tool, exists
}

// GetProvider returns the LLM provider used by this agent
func (a *DefaultAgent) GetProvider() llm.Provider {
	return a.provider
}

// SetProvider updates the LLM provider used by this agent.
// The update takes effect on the next agent iteration.
func (a *DefaultAgent) SetProvider(provider llm.Provider) error {
	if provider == nil {
		return fmt.Errorf("provider cannot be nil")
	}
	a.provider = provider
	return nil
}
