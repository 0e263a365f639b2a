package content

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"

	"github.com/loomhq/loom/pkg/agent/tools"
	"github.com/loomhq/loom/pkg/patterns"
)

// SavePatternsTool merges newly extracted patterns into the persistent store.
type SavePatternsTool struct {
	store patterns.Store
}

// NewSavePatternsTool creates a new SavePatternsTool.
func NewSavePatternsTool(store patterns.Store) *SavePatternsTool {
	return &SavePatternsTool{store: store}
}

// Name returns the tool name.
func (t *SavePatternsTool) Name() string {
	return "save_patterns"
}

// Description returns the tool description.
func (t *SavePatternsTool) Description() string {
	return "Merge extracted writing patterns into persistent storage. Patterns are a JSON object keyed by category (hooks, structure, tone, ctas, topics); existing entries are kept, new ones are appended."
}

// Schema returns the JSON schema for the tool's input parameters.
func (t *SavePatternsTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"patterns": map[string]interface{}{
				"type":        "string",
				"description": "JSON object of pattern categories to merge, e.g. {\"hooks\": [{\"example\": \"...\", \"type\": \"question\"}]}. Wrap in CDATA.",
			},
			"sources": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "string",
				},
				"description": "Filenames of the posts these patterns were extracted from",
			},
		},
		[]string{"patterns"},
	)
}

// Execute parses the pattern payload and merges it into the store.
func (t *SavePatternsTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName  xml.Name `xml:"arguments"`
		Patterns string   `xml:"patterns"`
		Sources  []string `xml:"sources>source"`
	}
	if err := xml.Unmarshal(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid arguments: %w", err)
	}

	if input.Patterns == "" {
		return "", nil, fmt.Errorf("missing required parameter: patterns")
	}

	var incoming map[string]patterns.Value
	if err := json.Unmarshal([]byte(input.Patterns), &incoming); err != nil {
		return "", nil, fmt.Errorf("patterns is not a valid JSON object: %w", err)
	}
	if len(incoming) == 0 {
		return "", nil, fmt.Errorf("patterns object is empty")
	}

	collection, err := t.store.Update(incoming, input.Sources)
	if err != nil {
		return "", nil, fmt.Errorf("failed to save patterns: %w", err)
	}

	categories := make([]string, 0, len(incoming))
	for category := range incoming {
		categories = append(categories, category)
	}

	message := fmt.Sprintf("Patterns saved. %d categories updated, %d sources tracked.", len(incoming), len(collection.Sources))

	metadata := map[string]interface{}{
		"categories":   categories,
		"source_count": len(collection.Sources),
		"updated_at":   collection.UpdatedAt,
	}
	return message, metadata, nil
}

// IsLoopBreaking returns false as this tool doesn't break the agent loop.
func (t *SavePatternsTool) IsLoopBreaking() bool {
	return false
}
