package content

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/loomhq/loom/pkg/patterns"
)

func newTestStore(t *testing.T) *patterns.FileStore {
	t.Helper()
	return patterns.NewFileStore(filepath.Join(t.TempDir(), "patterns.json"))
}

func TestSavePatternsTool(t *testing.T) {
	store := newTestStore(t)
	tool := NewSavePatternsTool(store)

	args := `<arguments>
<patterns>{"hooks": [{"example": "Ever shipped on a Friday?", "type": "question"}], "tone": {"formality": "casual"}}</patterns>
<sources><source>first.md</source><source>second.txt</source></sources>
</arguments>`

	message, metadata, err := tool.Execute(context.Background(), []byte(args))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(message, "2 categories") {
		t.Errorf("message should report category count, got %q", message)
	}
	if metadata["source_count"] != 2 {
		t.Errorf("expected 2 sources, got %v", metadata["source_count"])
	}

	collection, err := store.Load()
	if err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	if _, ok := collection.Patterns["hooks"]; !ok {
		t.Error("hooks category should be persisted")
	}
	if len(collection.Sources) != 2 || collection.Sources[0] != "first.md" {
		t.Errorf("sources should be persisted in order, got %v", collection.Sources)
	}
}

func TestSavePatternsToolMergesAcrossCalls(t *testing.T) {
	store := newTestStore(t)
	tool := NewSavePatternsTool(store)

	first := `<arguments><patterns>{"hooks": [{"example": "A"}]}</patterns><sources><source>one.md</source></sources></arguments>`
	second := `<arguments><patterns>{"hooks": [{"example": "A"}, {"example": "B"}]}</patterns><sources><source>one.md</source></sources></arguments>`

	if _, _, err := tool.Execute(context.Background(), []byte(first)); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if _, _, err := tool.Execute(context.Background(), []byte(second)); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	collection, err := store.Load()
	if err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	hooks := collection.Patterns["hooks"]
	if len(hooks.Seq) != 2 {
		t.Errorf("re-saving the same example should not duplicate it, got %d entries", len(hooks.Seq))
	}
	if len(collection.Sources) != 1 {
		t.Errorf("sources should stay unique, got %v", collection.Sources)
	}
}

func TestSavePatternsToolErrors(t *testing.T) {
	tool := NewSavePatternsTool(newTestStore(t))

	t.Run("MissingPatterns", func(t *testing.T) {
		if _, _, err := tool.Execute(context.Background(), []byte("<arguments></arguments>")); err == nil {
			t.Error("expected error for missing patterns")
		}
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		args := `<arguments><patterns>not json</patterns></arguments>`
		if _, _, err := tool.Execute(context.Background(), []byte(args)); err == nil {
			t.Error("expected error for invalid JSON payload")
		}
	})

	t.Run("EmptyObject", func(t *testing.T) {
		args := `<arguments><patterns>{}</patterns></arguments>`
		if _, _, err := tool.Execute(context.Background(), []byte(args)); err == nil {
			t.Error("expected error for empty patterns object")
		}
	})
}

func TestLoadPatternsTool(t *testing.T) {
	store := newTestStore(t)
	loadTool := NewLoadPatternsTool(store)

	t.Run("NothingLearned", func(t *testing.T) {
		message, _, err := loadTool.Execute(context.Background(), []byte("<arguments></arguments>"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(message, "No patterns learned yet") {
			t.Errorf("empty store should report nothing learned, got %q", message)
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		saveTool := NewSavePatternsTool(store)
		args := `<arguments><patterns>{"hooks": [{"example": "Ever wondered?"}]}</patterns></arguments>`
		if _, _, err := saveTool.Execute(context.Background(), []byte(args)); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		message, metadata, err := loadTool.Execute(context.Background(), []byte("<arguments></arguments>"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(message, "Ever wondered?") {
			t.Errorf("loaded patterns should contain the saved example, got %q", message)
		}
		if metadata["category_count"] != 1 {
			t.Errorf("expected 1 category, got %v", metadata["category_count"])
		}
	})
}
