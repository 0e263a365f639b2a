package prompts

import (
	"fmt"
	"strings"

	"github.com/loomhq/loom/pkg/agent/tools"
)

// ErrorType classifies a recoverable agent loop failure.
type ErrorType string

const (
	// ErrorTypeNoToolCall indicates the response contained no tool call.
	ErrorTypeNoToolCall ErrorType = "no_tool_call"

	// ErrorTypeParseFailure indicates the tool call XML did not parse.
	ErrorTypeParseFailure ErrorType = "parse_failure"

	// ErrorTypeUnknownTool indicates the named tool is not registered.
	ErrorTypeUnknownTool ErrorType = "unknown_tool"

	// ErrorTypeToolExecution indicates the tool ran and returned an error.
	ErrorTypeToolExecution ErrorType = "tool_execution"
)

// ErrorRecoveryContext carries the details needed to build a recovery message.
type ErrorRecoveryContext struct {
	Type           ErrorType
	ToolName       string
	Error          error
	AvailableTools []tools.Tool
}

// BuildErrorRecoveryMessage constructs the ephemeral user message injected into
// the next iteration so the model can self-correct. It is never stored in
// conversation memory.
func BuildErrorRecoveryMessage(ctx ErrorRecoveryContext) string {
	switch ctx.Type {
	case ErrorTypeNoToolCall:
		return "Your previous response did not include a tool call. " +
			"Every response must end with a valid XML tool call. " +
			"Please respond again with <thinking> followed by a tool call."

	case ErrorTypeParseFailure:
		return fmt.Sprintf("Your previous tool call could not be parsed: %v\n"+
			"Check the XML structure, escape special characters (& < >) or use CDATA, "+
			"and try again with a well-formed tool call.", ctx.Error)

	case ErrorTypeUnknownTool:
		names := make([]string, 0, len(ctx.AvailableTools))
		for _, t := range ctx.AvailableTools {
			names = append(names, t.Name())
		}
		return fmt.Sprintf("The tool '%s' does not exist. Available tools: %s. "+
			"Please retry with one of the available tools.",
			ctx.ToolName, strings.Join(names, ", "))

	case ErrorTypeToolExecution:
		return fmt.Sprintf("The tool '%s' failed: %v\n"+
			"Review the error, adjust your arguments or approach, and try again.",
			ctx.ToolName, ctx.Error)

	default:
		return fmt.Sprintf("An error occurred: %v. Please adjust and try again.", ctx.Error)
	}
}
