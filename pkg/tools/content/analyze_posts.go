package content

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/ledongthuc/pdf"
	"github.com/loomhq/loom/pkg/agent/tools"
)

// DefaultSourceDir is where writing samples are read from when the tool
// call does not name a directory.
const DefaultSourceDir = "creators"

var textExtensions = map[string]bool{
	".md":       true,
	".txt":      true,
	".markdown": true,
}

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".heic": true,
}

// AnalyzePostsTool reads writing samples from a directory and returns their
// content for pattern analysis. Text and markdown files are returned inline,
// PDFs are converted to plain text, and screenshots are listed by path.
type AnalyzePostsTool struct {
	sourceDir string
}

// NewAnalyzePostsTool creates the tool. An empty sourceDir selects
// DefaultSourceDir.
func NewAnalyzePostsTool(sourceDir string) *AnalyzePostsTool {
	if sourceDir == "" {
		sourceDir = DefaultSourceDir
	}
	return &AnalyzePostsTool{sourceDir: sourceDir}
}

// Name returns the tool name.
func (t *AnalyzePostsTool) Name() string {
	return "analyze_posts"
}

// Description returns the tool description.
func (t *AnalyzePostsTool) Description() string {
	return "Read writing samples (markdown, text, and PDF files) from the samples directory and return their content for pattern analysis. Image files are listed but not read."
}

// Schema returns the JSON schema for the tool's input parameters.
func (t *AnalyzePostsTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"directory": map[string]interface{}{
				"type":        "string",
				"description": fmt.Sprintf("Directory containing sample posts (default: %q)", DefaultSourceDir),
			},
			"include": map[string]interface{}{
				"type":        "string",
				"description": "Optional glob pattern to filter filenames, e.g. \"*-2026*.md\"",
			},
		},
		nil,
	)
}

// Execute reads the sample directory and assembles the analysis input.
func (t *AnalyzePostsTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName   xml.Name `xml:"arguments"`
		Directory string   `xml:"directory"`
		Include   string   `xml:"include"`
	}
	if err := xml.Unmarshal(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid arguments: %w", err)
	}

	dir := input.Directory
	if dir == "" {
		dir = t.sourceDir
	}

	var include glob.Glob
	if input.Include != "" {
		g, err := glob.Compile(input.Include)
		if err != nil {
			return "", nil, fmt.Errorf("invalid include pattern %q: %w", input.Include, err)
		}
		include = g
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("directory not found: %s", dir)
		}
		return "", nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var sb strings.Builder
	var posts, images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return "", nil, err
		}

		name := entry.Name()
		if include != nil && !include.Match(name) {
			continue
		}

		ext := strings.ToLower(filepath.Ext(name))
		path := filepath.Join(dir, name)

		switch {
		case textExtensions[ext]:
			content, err := os.ReadFile(path)
			if err != nil {
				fmt.Fprintf(&sb, "=== %s ===\n(read error: %v)\n\n", name, err)
				continue
			}
			posts = append(posts, name)
			fmt.Fprintf(&sb, "=== %s ===\n%s\n\n", name, strings.TrimSpace(string(content)))

		case ext == ".pdf":
			text, err := extractPDFText(path)
			if err != nil {
				fmt.Fprintf(&sb, "=== %s ===\n(pdf extraction error: %v)\n\n", name, err)
				continue
			}
			posts = append(posts, name)
			fmt.Fprintf(&sb, "=== %s ===\n%s\n\n", name, strings.TrimSpace(text))

		case imageExtensions[ext]:
			images = append(images, path)
		}
	}

	if len(posts) == 0 && len(images) == 0 {
		return "", nil, fmt.Errorf("no post files found in %s; add .md, .txt, or .pdf files", dir)
	}

	if len(images) > 0 {
		fmt.Fprintf(&sb, "Screenshots (not readable as text):\n")
		for _, img := range images {
			fmt.Fprintf(&sb, "- %s\n", img)
		}
	}

	metadata := map[string]interface{}{
		"directory":   dir,
		"post_count":  len(posts),
		"image_count": len(images),
		"posts":       posts,
	}
	return sb.String(), metadata, nil
}

// IsLoopBreaking returns false as this tool doesn't break the agent loop.
func (t *AnalyzePostsTool) IsLoopBreaking() bool {
	return false
}

// extractPDFText pulls the plain text stream out of a PDF file.
func extractPDFText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	r, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	text, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(text), nil
}
