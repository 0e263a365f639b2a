package content

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/loomhq/loom/pkg/agent/tools"
	"github.com/loomhq/loom/pkg/patterns"
)

// LoadPatternsTool reads the learned patterns back out of storage so the
// agent can apply them when drafting.
type LoadPatternsTool struct {
	store patterns.Store
}

// NewLoadPatternsTool creates a new LoadPatternsTool.
func NewLoadPatternsTool(store patterns.Store) *LoadPatternsTool {
	return &LoadPatternsTool{store: store}
}

// Name returns the tool name.
func (t *LoadPatternsTool) Name() string {
	return "load_patterns"
}

// Description returns the tool description.
func (t *LoadPatternsTool) Description() string {
	return "Load previously learned writing patterns. Call this first when drafting a post so the learned voice is applied."
}

// Schema returns the JSON schema for the tool's input parameters.
func (t *LoadPatternsTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(map[string]interface{}{}, nil)
}

// Execute loads the collection and returns the patterns as JSON.
func (t *LoadPatternsTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	collection, err := t.store.Load()
	if err != nil {
		return "", nil, fmt.Errorf("failed to load patterns: %w", err)
	}

	if collection.IsEmpty() {
		return "No patterns learned yet. Run 'learn' first to analyze sample posts.", nil, nil
	}

	data, err := json.MarshalIndent(collection.Patterns, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode patterns: %w", err)
	}

	message := fmt.Sprintf("Learned patterns (updated %s):\n%s",
		collection.UpdatedAt.Format("2006-01-02"), string(data))

	metadata := map[string]interface{}{
		"category_count": len(collection.Patterns),
		"source_count":   len(collection.Sources),
		"updated_at":     collection.UpdatedAt,
	}
	return message, metadata, nil
}

// IsLoopBreaking returns false as this tool doesn't break the agent loop.
func (t *LoadPatternsTool) IsLoopBreaking() bool {
	return false
}
