package agent

import (
	"context"
	"fmt"
	"maps"

	"github.com/loomhq/loom/pkg/agent/prompts"
	"github.com/loomhq/loom/pkg/agent/tools"
	"github.com/loomhq/loom/pkg/types"
)

// processToolCall parses the tool call out of the assistant's response and
// executes it. Returns (shouldContinue, errorContext) following the same
// pattern as executeIteration.
func (a *DefaultAgent) processToolCall(ctx context.Context, content string) (bool, string) {
	if !tools.HasToolCall(content) {
		a.emitEvent(types.NewNoToolCallEvent())
		errMsg := prompts.BuildErrorRecoveryMessage(prompts.ErrorRecoveryContext{
			Type: prompts.ErrorTypeNoToolCall,
		})
		if a.trackError() {
			a.emitEvent(types.NewErrorEvent(fmt.Errorf("circuit breaker triggered: %d consecutive responses without a tool call", consecutiveErrorLimit)))
			return false, ""
		}
		return true, errMsg
	}

	toolCall, _, err := tools.ParseToolCall(content)
	if err != nil {
		errMsg := prompts.BuildErrorRecoveryMessage(prompts.ErrorRecoveryContext{
			Type:  prompts.ErrorTypeParseFailure,
			Error: err,
		})
		if a.trackError() {
			a.emitEvent(types.NewErrorEvent(fmt.Errorf("circuit breaker triggered: %d consecutive tool call parse failures", consecutiveErrorLimit)))
			return false, ""
		}
		a.emitEvent(types.NewErrorEvent(fmt.Errorf("failed to parse tool call: %w", err)))
		return true, errMsg
	}

	return a.executeTool(ctx, *toolCall)
}

// executeTool handles tool lookup, execution, and result processing
func (a *DefaultAgent) executeTool(ctx context.Context, toolCall tools.ToolCall) (bool, string) {
	tool, shouldContinue, errCtx := a.lookupTool(toolCall.ToolName)
	if !shouldContinue || errCtx != "" {
		return shouldContinue, errCtx
	}

	result, metadata, shouldContinue, errCtx := a.executeToolCall(ctx, tool, toolCall)
	if !shouldContinue || errCtx != "" {
		return shouldContinue, errCtx
	}

	return a.processToolResult(tool, toolCall, result, metadata)
}

// lookupTool retrieves a tool by name and handles lookup errors
// Returns (tool, shouldContinue, errorContext)
func (a *DefaultAgent) lookupTool(toolName string) (tools.Tool, bool, string) {
	tool, exists := a.getTool(toolName)
	if !exists {
		errMsg := prompts.BuildErrorRecoveryMessage(prompts.ErrorRecoveryContext{
			Type:           prompts.ErrorTypeUnknownTool,
			ToolName:       toolName,
			AvailableTools: a.getToolsList(),
		})

		if a.trackError() {
			a.emitEvent(types.NewErrorEvent(fmt.Errorf("circuit breaker triggered: %d consecutive unknown tool errors", consecutiveErrorLimit)))
			return nil, false, ""
		}

		a.emitEvent(types.NewErrorEvent(fmt.Errorf("unknown tool: %s", toolName)))
		return nil, true, errMsg
	}

	return tool, true, ""
}

// executeToolCall emits events, executes the tool, and handles execution errors
// Returns (result, metadata, shouldContinue, errorContext)
func (a *DefaultAgent) executeToolCall(ctx context.Context, tool tools.Tool, toolCall tools.ToolCall) (string, map[string]interface{}, bool, string) {
	// Parse arguments to map for event emission
	argsMap, err := tools.XMLToMap(toolCall.GetArgumentsXML())
	if err != nil {
		// If parsing fails, emit empty map - the actual tool execution will handle the raw XML
		argsMap = make(map[string]interface{})
	}
	a.emitEvent(types.NewToolCallEvent(toolCall.ToolName, argsMap))

	result, metadata, toolErr := tool.Execute(ctx, toolCall.GetArgumentsXML())

	if toolErr != nil {
		a.emitEvent(types.NewToolResultErrorEvent(toolCall.ToolName, toolErr))
		errMsg := prompts.BuildErrorRecoveryMessage(prompts.ErrorRecoveryContext{
			Type:     prompts.ErrorTypeToolExecution,
			ToolName: toolCall.ToolName,
			Error:    toolErr,
		})

		if a.trackError() {
			a.emitEvent(types.NewErrorEvent(fmt.Errorf("circuit breaker triggered: %d consecutive tool execution errors", consecutiveErrorLimit)))
			return "", nil, false, ""
		}

		return "", nil, true, errMsg
	}

	return result, metadata, true, ""
}

// processToolResult handles successful tool execution results
// Returns (shouldContinue, errorContext)
func (a *DefaultAgent) processToolResult(tool tools.Tool, toolCall tools.ToolCall, result string, metadata map[string]interface{}) (bool, string) {
	event := types.NewToolResultEvent(toolCall.ToolName, result)
	if len(metadata) > 0 {
		maps.Copy(event.Metadata, metadata)
	}
	a.emitEvent(event)

	// Success resets the circuit breaker
	a.resetErrorTracking()

	// Loop-breaking tools end the turn
	if tool.IsLoopBreaking() {
		return false, ""
	}

	// For non-breaking tools, add result to memory and continue loop
	a.memory.Add(types.NewUserMessage(fmt.Sprintf("Tool '%s' result:\n%s", toolCall.ToolName, result)))
	return true, ""
}

// trackError counts a consecutive failure and reports whether the circuit
// breaker threshold has been reached.
func (a *DefaultAgent) trackError() bool {
	a.consecutiveErrors++
	return a.consecutiveErrors >= consecutiveErrorLimit
}

// resetErrorTracking clears the consecutive failure count after a success.
func (a *DefaultAgent) resetErrorTracking() {
	a.consecutiveErrors = 0
}
