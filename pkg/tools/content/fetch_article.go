package content

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/loomhq/loom/pkg/agent/tools"
)

const (
	defaultArticleMaxLength = 20000
	fetchTimeout            = 30 * time.Second
	maxResponseBytes        = 5 << 20
)

// FetchArticleTool downloads a web page and returns its readable text, so
// the agent can reference an article while drafting a post.
type FetchArticleTool struct {
	client *http.Client
}

// NewFetchArticleTool creates a new FetchArticleTool.
func NewFetchArticleTool() *FetchArticleTool {
	return &FetchArticleTool{
		client: &http.Client{Timeout: fetchTimeout},
	}
}

// Name returns the tool name.
func (t *FetchArticleTool) Name() string {
	return "fetch_article"
}

// Description returns the tool description.
func (t *FetchArticleTool) Description() string {
	return "Fetch a web article by URL and return its readable text (scripts, navigation, and page chrome removed). Use this to reference source material while drafting."
}

// Schema returns the JSON schema for the tool's input parameters.
func (t *FetchArticleTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"url": map[string]interface{}{
				"type":        "string",
				"description": "The article URL (http or https)",
			},
			"max_length": map[string]interface{}{
				"type":        "integer",
				"description": fmt.Sprintf("Maximum characters of text to return (default %d)", defaultArticleMaxLength),
			},
		},
		[]string{"url"},
	)
}

// Execute fetches and cleans the page.
func (t *FetchArticleTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName   xml.Name `xml:"arguments"`
		URL       string   `xml:"url"`
		MaxLength int      `xml:"max_length"`
	}
	if err := xml.Unmarshal(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid arguments: %w", err)
	}

	if input.URL == "" {
		return "", nil, fmt.Errorf("missing required parameter: url")
	}
	if !strings.HasPrefix(input.URL, "http://") && !strings.HasPrefix(input.URL, "https://") {
		return "", nil, fmt.Errorf("url must start with http:// or https://")
	}
	maxLength := input.MaxLength
	if maxLength <= 0 {
		maxLength = defaultArticleMaxLength
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, input.URL, nil)
	if err != nil {
		return "", nil, fmt.Errorf("invalid url: %w", err)
	}
	req.Header.Set("User-Agent", "loom/1.0 (article fetcher)")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("fetch failed: %s returned %s", input.URL, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", nil, fmt.Errorf("failed to read response: %w", err)
	}

	article, err := extractArticle(string(body), maxLength)
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	if article.Title != "" {
		fmt.Fprintf(&sb, "Title: %s\n", article.Title)
	}
	if article.Description != "" {
		fmt.Fprintf(&sb, "Description: %s\n", article.Description)
	}
	if sb.Len() > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(article.Text)

	metadata := map[string]interface{}{
		"url":       input.URL,
		"title":     article.Title,
		"truncated": article.Truncated,
	}
	return sb.String(), metadata, nil
}

// IsLoopBreaking returns false as this tool doesn't break the agent loop.
func (t *FetchArticleTool) IsLoopBreaking() bool {
	return false
}
