package content

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/loomhq/loom/pkg/agent/tools"
	"gopkg.in/yaml.v3"
)

// DefaultOutputDir is where drafted posts are written.
const DefaultOutputDir = "output"

const slugMaxLen = 30

// injected for testability
var timeNow = time.Now

// postFrontMatter is the YAML header written above each saved draft.
type postFrontMatter struct {
	Generated time.Time `yaml:"generated"`
	Title     string    `yaml:"title,omitempty"`
	WordCount int       `yaml:"word_count"`
}

// WritePostTool saves a drafted post to the output directory with YAML
// front matter, optionally copying the body to the system clipboard.
type WritePostTool struct {
	outputDir string
}

// NewWritePostTool creates the tool. An empty outputDir selects
// DefaultOutputDir.
func NewWritePostTool(outputDir string) *WritePostTool {
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	return &WritePostTool{outputDir: outputDir}
}

// Name returns the tool name.
func (t *WritePostTool) Name() string {
	return "write_post"
}

// Description returns the tool description.
func (t *WritePostTool) Description() string {
	return "Save a drafted post to the output directory as markdown with front matter. Optionally copies the post body to the clipboard for pasting."
}

// Schema returns the JSON schema for the tool's input parameters.
func (t *WritePostTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"content": map[string]interface{}{
				"type":        "string",
				"description": "The full post body. Wrap in CDATA to preserve formatting.",
			},
			"title": map[string]interface{}{
				"type":        "string",
				"description": "Optional title, used for the filename slug",
			},
			"copy_to_clipboard": map[string]interface{}{
				"type":        "boolean",
				"description": "Copy the post body to the system clipboard (default false)",
			},
		},
		[]string{"content"},
	)
}

// Execute writes the draft file.
func (t *WritePostTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName         xml.Name `xml:"arguments"`
		Content         string   `xml:"content"`
		Title           string   `xml:"title"`
		CopyToClipboard bool     `xml:"copy_to_clipboard"`
	}
	if err := xml.Unmarshal(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid arguments: %w", err)
	}

	content := strings.TrimSpace(input.Content)
	if content == "" {
		return "", nil, fmt.Errorf("missing required parameter: content")
	}

	if err := os.MkdirAll(t.outputDir, 0o755); err != nil {
		return "", nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	now := timeNow()
	wordCount := len(strings.Fields(content))
	filename := fmt.Sprintf("%s_%s.md", slugify(input.Title), now.Format("20060102_150405"))
	path := filepath.Join(t.outputDir, filename)

	header, err := yaml.Marshal(postFrontMatter{
		Generated: now,
		Title:     input.Title,
		WordCount: wordCount,
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode front matter: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(header)
	sb.WriteString("---\n\n")
	sb.WriteString(content)
	sb.WriteString("\n")

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return "", nil, fmt.Errorf("failed to write post: %w", err)
	}

	message := fmt.Sprintf("Post saved to %s (%d words)", path, wordCount)

	copied := false
	if input.CopyToClipboard {
		if err := clipboard.WriteAll(content); err != nil {
			message += fmt.Sprintf(". Clipboard copy failed: %v", err)
		} else {
			copied = true
			message += ". Copied to clipboard."
		}
	}

	metadata := map[string]interface{}{
		"file_path":  path,
		"word_count": wordCount,
		"copied":     copied,
	}
	return message, metadata, nil
}

// IsLoopBreaking returns false as this tool doesn't break the agent loop.
func (t *WritePostTool) IsLoopBreaking() bool {
	return false
}

// slugify turns a title into a filesystem-friendly filename stem.
func slugify(title string) string {
	if title == "" {
		return "post"
	}
	slug := strings.ToLower(title)
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '_'
		default:
			return -1
		}
	}, slug)
	slug = strings.Trim(slug, "_")
	if slug == "" {
		return "post"
	}
	if len(slug) > slugMaxLen {
		slug = slug[:slugMaxLen]
	}
	return slug
}
