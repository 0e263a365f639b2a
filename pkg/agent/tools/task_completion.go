package tools

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
)

const taskCompletionToolName = "task_completion"

// TaskCompletionTool ends a working turn once the requested deliverable
// exists. After a learn run it carries the pattern summary; after a create
// run it presents the drafted post and where it was saved.
type TaskCompletionTool struct{}

// NewTaskCompletionTool creates the task completion built-in.
func NewTaskCompletionTool() *TaskCompletionTool {
	return &TaskCompletionTool{}
}

func (t *TaskCompletionTool) Name() string {
	return taskCompletionToolName
}

func (t *TaskCompletionTool) Description() string {
	return "Signal that the requested work is finished and present the outcome. " +
		"Use this after patterns have been saved or a post has been written: summarize " +
		"what was learned or show the draft and the file it was saved to. " +
		"The result should stand on its own and not end with questions or offers of more help."
}

func (t *TaskCompletionTool) Schema() map[string]interface{} {
	return BaseToolSchema(
		map[string]interface{}{
			"result": map[string]interface{}{
				"type":        "string",
				"description": "The final outcome to show the user, including any file paths written during the turn.",
			},
		},
		[]string{"result"},
	)
}

// Execute returns the result as the turn's final output.
func (t *TaskCompletionTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var args struct {
		XMLName xml.Name `xml:"arguments"`
		Result  string   `xml:"result"`
	}

	if err := UnmarshalXMLWithFallback(argsXML, &args); err != nil {
		return "", nil, fmt.Errorf("invalid arguments for %s: %w", taskCompletionToolName, err)
	}

	result := strings.TrimSpace(args.Result)
	if result == "" {
		return "", nil, fmt.Errorf("result cannot be empty")
	}

	return result, nil, nil
}

// IsLoopBreaking reports that presenting the outcome ends the turn.
func (t *TaskCompletionTool) IsLoopBreaking() bool {
	return true
}
