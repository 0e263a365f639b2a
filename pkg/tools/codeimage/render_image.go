package codeimage

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/loomhq/loom/pkg/agent/tools"
)

// RenderImageTool renders a code snippet to a shareable PNG image.
type RenderImageTool struct {
	renderer  *Renderer
	outputDir string
}

// NewRenderImageTool creates the tool. An empty outputDir selects
// DefaultOutputDir.
func NewRenderImageTool(renderer *Renderer, outputDir string) *RenderImageTool {
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	return &RenderImageTool{renderer: renderer, outputDir: outputDir}
}

// Name returns the tool name.
func (t *RenderImageTool) Name() string {
	return "render_code_image"
}

// Description returns the tool description.
func (t *RenderImageTool) Description() string {
	return "Render a code snippet as a syntax-highlighted PNG image suitable for attaching to a post. Slower than format_snippet: launches a headless browser on first use."
}

// Schema returns the JSON schema for the tool's input parameters.
func (t *RenderImageTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"code": map[string]interface{}{
				"type":        "string",
				"description": "The code to render. Wrap in CDATA to preserve indentation.",
			},
			"language": map[string]interface{}{
				"type":        "string",
				"description": "Language for syntax highlighting (auto-detected if omitted)",
			},
			"theme": map[string]interface{}{
				"type":        "string",
				"description": fmt.Sprintf("Highlight theme (default %q, see list_code_themes)", DefaultTheme),
			},
		},
		[]string{"code"},
	)
}

// Execute renders the snippet to a PNG in the output directory.
func (t *RenderImageTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName  xml.Name `xml:"arguments"`
		Code     string   `xml:"code"`
		Language string   `xml:"language"`
		Theme    string   `xml:"theme"`
	}
	if err := xml.Unmarshal(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid arguments: %w", err)
	}

	code := strings.Trim(input.Code, "\n")
	if strings.TrimSpace(code) == "" {
		return "", nil, fmt.Errorf("missing required parameter: code")
	}

	theme := input.Theme
	if theme == "" {
		theme = DefaultTheme
	}
	language := resolveLanguage(input.Language, code)

	if err := os.MkdirAll(t.outputDir, 0o755); err != nil {
		return "", nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := fmt.Sprintf("code_image_%s.png", timeNow().Format("20060102_150405"))
	path := filepath.Join(t.outputDir, filename)

	if err := t.renderer.Render(code, language, theme, path); err != nil {
		return "", nil, fmt.Errorf("failed to render image: %w", err)
	}

	message := fmt.Sprintf("Code image saved to %s (%s, theme %s)", path, language, theme)

	metadata := map[string]interface{}{
		"file_path": path,
		"language":  language,
		"theme":     theme,
	}
	return message, metadata, nil
}

// IsLoopBreaking returns false as this tool doesn't break the agent loop.
func (t *RenderImageTool) IsLoopBreaking() bool {
	return false
}
