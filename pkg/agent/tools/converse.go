package tools

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
)

const converseToolName = "converse"

// ConverseTool lets the agent answer the user directly when the exchange is
// conversational. Questions about learned patterns, writing advice, or
// follow-ups on a draft end here rather than in a saved file, so the tool is
// loop-breaking.
type ConverseTool struct{}

// NewConverseTool creates the converse built-in.
func NewConverseTool() *ConverseTool {
	return &ConverseTool{}
}

func (t *ConverseTool) Name() string {
	return converseToolName
}

func (t *ConverseTool) Description() string {
	return "Reply to the user in conversation without producing a deliverable. " +
		"Use this to answer questions about learned writing patterns, give feedback on a draft, " +
		"or handle any exchange that does not end with a saved post or image. " +
		"Write the message the way a helpful writing assistant would."
}

func (t *ConverseTool) Schema() map[string]interface{} {
	return BaseToolSchema(
		map[string]interface{}{
			"message": map[string]interface{}{
				"type":        "string",
				"description": "The reply to show the user. Plain prose; no tool syntax.",
			},
		},
		[]string{"message"},
	)
}

// Execute returns the message as the turn's final output.
func (t *ConverseTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var args struct {
		XMLName xml.Name `xml:"arguments"`
		Message string   `xml:"message"`
	}

	if err := UnmarshalXMLWithFallback(argsXML, &args); err != nil {
		return "", nil, fmt.Errorf("invalid arguments for %s: %w", converseToolName, err)
	}

	message := strings.TrimSpace(args.Message)
	if message == "" {
		return "", nil, fmt.Errorf("message cannot be empty")
	}

	return message, nil, nil
}

// IsLoopBreaking reports that a conversational reply ends the turn.
func (t *ConverseTool) IsLoopBreaking() bool {
	return true
}
