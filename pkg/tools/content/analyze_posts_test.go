package content

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSample(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write sample %s: %v", name, err)
	}
}

func TestAnalyzePostsTool(t *testing.T) {
	dir := t.TempDir()
	writeSample(t, dir, "first.md", "Hook line.\n\nBody of the first post.")
	writeSample(t, dir, "second.txt", "Second post content.")
	writeSample(t, dir, "screenshot.png", "\x89PNG not really")
	writeSample(t, dir, "notes.json", `{"ignored": true}`)

	tool := NewAnalyzePostsTool(dir)

	result, metadata, err := tool.Execute(context.Background(), []byte("<arguments></arguments>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(result, "=== first.md ===") || !strings.Contains(result, "Body of the first post.") {
		t.Errorf("result should contain markdown post content, got %q", result)
	}
	if !strings.Contains(result, "Second post content.") {
		t.Error("result should contain text post content")
	}
	if !strings.Contains(result, "screenshot.png") {
		t.Error("result should list image files")
	}
	if strings.Contains(result, "notes.json") {
		t.Error("unrelated file types should be skipped")
	}
	if metadata["post_count"] != 2 {
		t.Errorf("expected 2 posts, got %v", metadata["post_count"])
	}
	if metadata["image_count"] != 1 {
		t.Errorf("expected 1 image, got %v", metadata["image_count"])
	}
}

func TestAnalyzePostsToolIncludeFilter(t *testing.T) {
	dir := t.TempDir()
	writeSample(t, dir, "keep.md", "Kept post.")
	writeSample(t, dir, "skip.txt", "Skipped post.")

	tool := NewAnalyzePostsTool(dir)

	result, metadata, err := tool.Execute(context.Background(), []byte("<arguments><include>*.md</include></arguments>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result, "Kept post.") {
		t.Error("matching file should be included")
	}
	if strings.Contains(result, "Skipped post.") {
		t.Error("non-matching file should be filtered out")
	}
	if metadata["post_count"] != 1 {
		t.Errorf("expected 1 post, got %v", metadata["post_count"])
	}
}

func TestAnalyzePostsToolDirectoryOverride(t *testing.T) {
	dir := t.TempDir()
	writeSample(t, dir, "post.md", "Override content.")

	tool := NewAnalyzePostsTool("does-not-exist")

	args := "<arguments><directory>" + dir + "</directory></arguments>"
	result, _, err := tool.Execute(context.Background(), []byte(args))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result, "Override content.") {
		t.Error("directory argument should override the default")
	}
}

func TestAnalyzePostsToolErrors(t *testing.T) {
	t.Run("MissingDirectory", func(t *testing.T) {
		tool := NewAnalyzePostsTool(filepath.Join(t.TempDir(), "nope"))
		if _, _, err := tool.Execute(context.Background(), []byte("<arguments></arguments>")); err == nil {
			t.Error("expected error for missing directory")
		}
	})

	t.Run("NoPosts", func(t *testing.T) {
		dir := t.TempDir()
		writeSample(t, dir, "data.json", "{}")
		tool := NewAnalyzePostsTool(dir)
		if _, _, err := tool.Execute(context.Background(), []byte("<arguments></arguments>")); err == nil {
			t.Error("expected error when no readable posts exist")
		}
	})

	t.Run("InvalidGlob", func(t *testing.T) {
		tool := NewAnalyzePostsTool(t.TempDir())
		if _, _, err := tool.Execute(context.Background(), []byte("<arguments><include>[</include></arguments>")); err == nil {
			t.Error("expected error for invalid glob pattern")
		}
	})
}
