package tools

import (
	"context"
	"strings"
	"testing"
)

func TestTaskCompletionTool(t *testing.T) {
	tool := NewTaskCompletionTool()

	if tool.Name() != "task_completion" {
		t.Errorf("unexpected name: %s", tool.Name())
	}
	if !tool.IsLoopBreaking() {
		t.Error("task_completion must be loop-breaking")
	}

	t.Run("ValidArguments", func(t *testing.T) {
		result, _, err := tool.Execute(context.Background(), []byte("<arguments><result>All done</result></arguments>"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result != "All done" {
			t.Errorf("expected result passthrough, got %q", result)
		}
	})

	t.Run("EmptyResult", func(t *testing.T) {
		if _, _, err := tool.Execute(context.Background(), []byte("<arguments></arguments>")); err == nil {
			t.Error("expected error for empty result")
		}
	})

	t.Run("WhitespaceOnlyResult", func(t *testing.T) {
		if _, _, err := tool.Execute(context.Background(), []byte("<arguments><result>\n  \t</result></arguments>")); err == nil {
			t.Error("expected error for whitespace-only result")
		}
	})

	t.Run("TrimsResult", func(t *testing.T) {
		result, _, err := tool.Execute(context.Background(), []byte("<arguments><result>  saved to output/post.md  </result></arguments>"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result != "saved to output/post.md" {
			t.Errorf("expected trimmed result, got %q", result)
		}
	})
}

func TestConverseTool(t *testing.T) {
	tool := NewConverseTool()

	if tool.Name() != "converse" {
		t.Errorf("unexpected name: %s", tool.Name())
	}
	if !tool.IsLoopBreaking() {
		t.Error("converse must be loop-breaking")
	}

	result, _, err := tool.Execute(context.Background(), []byte("<arguments><message>hello there</message></arguments>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "hello there" {
		t.Errorf("expected message passthrough, got %q", result)
	}

	t.Run("WhitespaceOnlyMessage", func(t *testing.T) {
		if _, _, err := tool.Execute(context.Background(), []byte("<arguments><message>   </message></arguments>")); err == nil {
			t.Error("expected error for whitespace-only message")
		}
	})
}

func TestBaseToolSchema(t *testing.T) {
	schema := BaseToolSchema(map[string]interface{}{
		"topic": map[string]interface{}{"type": "string"},
	}, []string{"topic"})

	if schema["type"] != "object" {
		t.Error("schema should be an object")
	}
	props, ok := schema["properties"].(map[string]interface{})
	if !ok || props["topic"] == nil {
		t.Error("schema should carry properties")
	}
	req, ok := schema["required"].([]string)
	if !ok || len(req) != 1 || req[0] != "topic" {
		t.Error("schema should carry required fields")
	}

	optional := BaseToolSchema(map[string]interface{}{}, nil)
	if _, exists := optional["required"]; exists {
		t.Error("schema without required fields should omit the key")
	}
}

func TestToolDescriptionsMentionUsage(t *testing.T) {
	for _, tool := range []Tool{NewTaskCompletionTool(), NewConverseTool()} {
		if strings.TrimSpace(tool.Description()) == "" {
			t.Errorf("tool %s has empty description", tool.Name())
		}
		if tool.Schema() == nil {
			t.Errorf("tool %s has nil schema", tool.Name())
		}
	}

	// The built-ins guide the model toward the assistant's actual work, so
	// their descriptions must speak in terms of patterns and posts.
	if !strings.Contains(NewConverseTool().Description(), "writing") {
		t.Error("converse description should frame the writing assistant role")
	}
	if !strings.Contains(NewTaskCompletionTool().Description(), "post") {
		t.Error("task_completion description should mention the post deliverable")
	}
}
