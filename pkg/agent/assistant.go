package agent

import (
	"context"
	"fmt"

	"github.com/loomhq/loom/pkg/types"
)

// runAgentLoop executes the agent loop with tools and thinking
// The loop continues until a loop-breaking tool is used or circuit breaker triggers
func (a *DefaultAgent) runAgentLoop(ctx context.Context) {
	var errorContext string
	turns := 0

	for {
		// Check if context was canceled (e.g., user interrupt)
		select {
		case <-ctx.Done():
			a.memory.Add(types.NewUserMessage("Operation stopped by user."))
			return
		default:
		}

		if a.maxTurns > 0 && turns >= a.maxTurns {
			a.emitEvent(types.NewErrorEvent(fmt.Errorf("agent loop reached maximum of %d iterations", a.maxTurns)))
			return
		}
		turns++

		// Execute one iteration with optional error context from previous iteration
		shouldContinue, nextErrorContext := a.executeIteration(ctx, errorContext)
		if !shouldContinue {
			// Loop-breaking tool was used or circuit breaker triggered
			return
		}

		errorContext = nextErrorContext
	}
}

// executeIteration performs a single iteration of the agent loop
// Returns (shouldContinue, errorContext) where:
//   - shouldContinue: false means loop should break (loop-breaking tool used or circuit breaker)
//   - errorContext: message to inject as user context for error recovery (empty if no error)
func (a *DefaultAgent) executeIteration(ctx context.Context, errorContext string) (bool, string) {
	// Step 1: Prepare the prompt from memory and error context
	pctx := a.preparePrompt(errorContext)

	// Step 2: Call LLM and get streaming response
	resp, err := a.callLLM(ctx, pctx)
	if err != nil {
		// Context cancellation - stop silently
		if ctx.Err() != nil {
			return false, ""
		}
		// LLM error already emitted in callLLM
		return false, ""
	}

	// Step 3: Record response (emit tokens, add to memory)
	a.recordResponse(pctx, resp)

	// Step 4: Process the tool call (parse, validate, execute)
	return a.processToolCall(ctx, resp.messageContent)
}

// emitEvent sends an event on the event channel.
// This is a blocking send to ensure critical events like TurnEnd are not dropped.
// It safely handles the case where the event channel may be closed during shutdown.
func (a *DefaultAgent) emitEvent(event *types.AgentEvent) {
	defer func() {
		if r := recover(); r != nil {
			// Event channel was closed during shutdown - this is expected
		}
	}()
	a.channels.Event <- event
}
