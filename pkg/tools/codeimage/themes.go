package codeimage

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/loomhq/loom/pkg/agent/tools"
)

// DefaultTheme is the highlight style used when a render call does not
// name one.
const DefaultTheme = "dracula"

// ListThemesTool lists the available syntax highlight themes for
// render_code_image.
type ListThemesTool struct{}

// NewListThemesTool creates a new ListThemesTool.
func NewListThemesTool() *ListThemesTool {
	return &ListThemesTool{}
}

// Name returns the tool name.
func (t *ListThemesTool) Name() string {
	return "list_code_themes"
}

// Description returns the tool description.
func (t *ListThemesTool) Description() string {
	return "List the syntax highlight themes available for render_code_image."
}

// Schema returns the JSON schema for the tool's input parameters.
func (t *ListThemesTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(map[string]interface{}{}, nil)
}

// Execute returns the theme registry.
func (t *ListThemesTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	names := styles.Names()

	message := fmt.Sprintf("Available themes (%d):\n%s\n\nDefault: %s",
		len(names), strings.Join(names, ", "), DefaultTheme)

	metadata := map[string]interface{}{
		"theme_count": len(names),
	}
	return message, metadata, nil
}

// IsLoopBreaking returns false as this tool doesn't break the agent loop.
func (t *ListThemesTool) IsLoopBreaking() bool {
	return false
}
