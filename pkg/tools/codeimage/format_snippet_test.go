package codeimage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFormatSnippetTool(t *testing.T) {
	dir := t.TempDir()
	tool := NewFormatSnippetTool(dir)

	restore := timeNow
	timeNow = func() time.Time { return time.Date(2026, 8, 24, 9, 30, 0, 0, time.UTC) }
	defer func() { timeNow = restore }()

	args := `<arguments>
<code>fmt.Println("hello")</code>
<language>go</language>
<title>Hello</title>
</arguments>`

	message, metadata, err := tool.Execute(context.Background(), []byte(args))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectedPath := filepath.Join(dir, "code_snippet_20260824_093000.md")
	if metadata["file_path"] != expectedPath {
		t.Errorf("expected %s, got %v", expectedPath, metadata["file_path"])
	}
	if metadata["language"] != "go" {
		t.Errorf("expected language go, got %v", metadata["language"])
	}

	data, err := os.ReadFile(expectedPath)
	if err != nil {
		t.Fatalf("snippet file not written: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "## Hello") {
		t.Error("snippet file should carry the title heading")
	}
	if !strings.Contains(text, "```go\nfmt.Println(\"hello\")\n```") {
		t.Errorf("snippet file should carry the fenced block, got %q", text)
	}

	// The plain-text variant drops the language tag.
	if !strings.Contains(message, "```\nfmt.Println(\"hello\")\n```") {
		t.Errorf("message should carry a plain-text variant, got %q", message)
	}
}

func TestFormatSnippetToolRequiresCode(t *testing.T) {
	tool := NewFormatSnippetTool(t.TempDir())
	if _, _, err := tool.Execute(context.Background(), []byte("<arguments><code>  </code></arguments>")); err == nil {
		t.Error("expected error for blank code")
	}
}

func TestResolveLanguage(t *testing.T) {
	if got := resolveLanguage("go", ""); got != "go" {
		t.Errorf("expected go, got %q", got)
	}
	if got := resolveLanguage("Python", ""); got != "python" {
		t.Errorf("expected python, got %q", got)
	}
	// Unknown languages pass through lowercased rather than failing.
	if got := resolveLanguage("KlingonScript", "x"); got != "klingonscript" {
		t.Errorf("expected klingonscript, got %q", got)
	}
	if got := resolveLanguage("", "plain words with no syntax"); got == "" {
		t.Error("detection fallback should never return empty")
	}
}
