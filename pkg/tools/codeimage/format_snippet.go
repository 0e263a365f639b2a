package codeimage

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/loomhq/loom/pkg/agent/tools"
)

// DefaultOutputDir is where formatted snippets and rendered images land.
const DefaultOutputDir = "output"

// injected for testability
var timeNow = time.Now

// FormatSnippetTool formats a code snippet for inclusion in a post. It
// detects the language when none is given and writes a fenced markdown file
// alongside a plain-text variant for platforms without code formatting.
type FormatSnippetTool struct {
	outputDir string
}

// NewFormatSnippetTool creates the tool. An empty outputDir selects
// DefaultOutputDir.
func NewFormatSnippetTool(outputDir string) *FormatSnippetTool {
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	return &FormatSnippetTool{outputDir: outputDir}
}

// Name returns the tool name.
func (t *FormatSnippetTool) Name() string {
	return "format_snippet"
}

// Description returns the tool description.
func (t *FormatSnippetTool) Description() string {
	return "Format a code snippet for a post. Writes a fenced markdown file and returns a plain-text version for platforms that do not render code blocks. Detects the language if not specified."
}

// Schema returns the JSON schema for the tool's input parameters.
func (t *FormatSnippetTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"code": map[string]interface{}{
				"type":        "string",
				"description": "The code to format. Wrap in CDATA to preserve indentation.",
			},
			"language": map[string]interface{}{
				"type":        "string",
				"description": "Language for syntax highlighting (auto-detected if omitted)",
			},
			"title": map[string]interface{}{
				"type":        "string",
				"description": "Optional heading placed above the snippet",
			},
		},
		[]string{"code"},
	)
}

// Execute formats the snippet and writes it to the output directory.
func (t *FormatSnippetTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName  xml.Name `xml:"arguments"`
		Code     string   `xml:"code"`
		Language string   `xml:"language"`
		Title    string   `xml:"title"`
	}
	if err := xml.Unmarshal(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid arguments: %w", err)
	}

	code := strings.Trim(input.Code, "\n")
	if strings.TrimSpace(code) == "" {
		return "", nil, fmt.Errorf("missing required parameter: code")
	}

	language := resolveLanguage(input.Language, code)

	formatted := fmt.Sprintf("```%s\n%s\n```", language, code)
	plainText := fmt.Sprintf("```\n%s\n```", code)
	if input.Title != "" {
		formatted = fmt.Sprintf("## %s\n\n%s", input.Title, formatted)
		plainText = fmt.Sprintf("%s\n\n%s", input.Title, plainText)
	}

	if err := os.MkdirAll(t.outputDir, 0o755); err != nil {
		return "", nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := fmt.Sprintf("code_snippet_%s.md", timeNow().Format("20060102_150405"))
	path := filepath.Join(t.outputDir, filename)
	if err := os.WriteFile(path, []byte(formatted+"\n"), 0o644); err != nil {
		return "", nil, fmt.Errorf("failed to write snippet: %w", err)
	}

	message := fmt.Sprintf("Snippet saved to %s (%s, %d lines).\n\nPlain-text version for pasting:\n%s",
		path, language, strings.Count(code, "\n")+1, plainText)

	metadata := map[string]interface{}{
		"file_path": path,
		"language":  language,
	}
	return message, metadata, nil
}

// IsLoopBreaking returns false as this tool doesn't break the agent loop.
func (t *FormatSnippetTool) IsLoopBreaking() bool {
	return false
}

// resolveLanguage normalizes a requested language against the chroma lexer
// registry, falling back to content analysis when no language is given.
func resolveLanguage(language, code string) string {
	if language != "" {
		if lexer := lexers.Get(language); lexer != nil {
			return strings.ToLower(lexer.Config().Name)
		}
		return strings.ToLower(language)
	}
	if lexer := lexers.Analyse(code); lexer != nil {
		return strings.ToLower(lexer.Config().Name)
	}
	return "text"
}
