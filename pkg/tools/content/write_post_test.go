package content

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWritePostTool(t *testing.T) {
	dir := t.TempDir()
	tool := NewWritePostTool(dir)

	restore := timeNow
	timeNow = func() time.Time { return time.Date(2026, 8, 24, 9, 30, 0, 0, time.UTC) }
	defer func() { timeNow = restore }()

	args := `<arguments>
<content>Shipped a thing today.

Here is what I learned.</content>
<title>Shipping Lessons</title>
</arguments>`

	message, metadata, err := tool.Execute(context.Background(), []byte(args))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectedPath := filepath.Join(dir, "shipping_lessons_20260824_093000.md")
	if metadata["file_path"] != expectedPath {
		t.Errorf("expected %s, got %v", expectedPath, metadata["file_path"])
	}
	if !strings.Contains(message, "9 words") {
		t.Errorf("message should report word count, got %q", message)
	}

	data, err := os.ReadFile(expectedPath)
	if err != nil {
		t.Fatalf("post file not written: %v", err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "---\n") {
		t.Error("post should start with front matter")
	}
	if !strings.Contains(text, "title: Shipping Lessons") {
		t.Error("front matter should carry the title")
	}
	if !strings.Contains(text, "word_count: 9") {
		t.Error("front matter should carry the word count")
	}
	if !strings.Contains(text, "Shipped a thing today.") {
		t.Error("post body should follow the front matter")
	}
}

func TestWritePostToolUntitled(t *testing.T) {
	dir := t.TempDir()
	tool := NewWritePostTool(dir)

	_, metadata, err := tool.Execute(context.Background(), []byte("<arguments><content>body</content></arguments>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	path, _ := metadata["file_path"].(string)
	if !strings.HasPrefix(filepath.Base(path), "post_") {
		t.Errorf("untitled posts should use the post_ slug, got %s", path)
	}
}

func TestWritePostToolRequiresContent(t *testing.T) {
	tool := NewWritePostTool(t.TempDir())
	if _, _, err := tool.Execute(context.Background(), []byte("<arguments><content>   </content></arguments>")); err == nil {
		t.Error("expected error for blank content")
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "post"},
		{"Shipping Lessons", "shipping_lessons"},
		{"Go 1.24: what's new?", "go_124_whats_new"},
		{"!!!", "post"},
		{"a very long title that keeps going and going forever", "a_very_long_title_that_keeps_g"},
	}
	for _, tc := range cases {
		if got := slugify(tc.in); got != tc.want {
			t.Errorf("slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
