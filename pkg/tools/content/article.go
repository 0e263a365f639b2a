package content

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Article is the readable view of a fetched web page.
type Article struct {
	Title       string
	Description string
	Text        string
	Truncated   bool
}

// noiseElements are removed entirely during extraction.
var noiseElements = map[string]bool{
	"head":     true,
	"script":   true,
	"style":    true,
	"noscript": true,
	"iframe":   true,
	"embed":    true,
	"object":   true,
	"svg":      true,
	"nav":      true,
	"footer":   true,
	"header":   true,
	"form":     true,
	"aside":    true,
}

// paragraphElements get a blank line after their text.
var paragraphElements = map[string]bool{
	"p":          true,
	"div":        true,
	"section":    true,
	"article":    true,
	"li":         true,
	"blockquote": true,
	"pre":        true,
	"h1":         true,
	"h2":         true,
	"h3":         true,
	"h4":         true,
	"h5":         true,
	"h6":         true,
	"br":         true,
	"tr":         true,
}

// extractArticle parses raw HTML and pulls out the readable text, dropping
// navigation, scripts, and other page chrome. Text beyond maxLength is cut.
func extractArticle(rawHTML string, maxLength int) (*Article, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	article := &Article{
		Title:       findTitle(doc),
		Description: findMetaDescription(doc),
	}

	var sb strings.Builder
	article.Truncated = collectText(doc, &sb, maxLength)
	article.Text = tidyWhitespace(sb.String())
	return article, nil
}

// collectText walks the node tree appending readable text. Returns true when
// the length budget was exhausted.
func collectText(n *html.Node, sb *strings.Builder, maxLength int) bool {
	if sb.Len() >= maxLength {
		return true
	}

	switch n.Type {
	case html.CommentNode:
		return false
	case html.ElementNode:
		if noiseElements[strings.ToLower(n.Data)] {
			return false
		}
	case html.TextNode:
		text := strings.TrimSpace(n.Data)
		if text == "" {
			return false
		}
		remaining := maxLength - sb.Len()
		if len(text) > remaining {
			sb.WriteString(text[:remaining])
			sb.WriteString("...")
			return true
		}
		sb.WriteString(text)
		sb.WriteString(" ")
		return false
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if collectText(c, sb, maxLength) {
			return true
		}
	}

	if n.Type == html.ElementNode && paragraphElements[strings.ToLower(n.Data)] {
		sb.WriteString("\n\n")
	}
	return false
}

// tidyWhitespace collapses runs of blank lines and trailing spaces left
// behind by the tree walk.
func tidyWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	var out []string
	blank := true
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// findTitle extracts the page title from the document.
func findTitle(doc *html.Node) string {
	var title string
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = strings.TrimSpace(n.FirstChild.Data)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
			if title != "" {
				return
			}
		}
	}
	traverse(doc)
	return title
}

// findMetaDescription extracts the meta description from the document.
func findMetaDescription(doc *html.Node) string {
	var description string
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			var isDescription bool
			var content string
			for _, attr := range n.Attr {
				if attr.Key == "name" && attr.Val == "description" {
					isDescription = true
				}
				if attr.Key == "content" {
					content = attr.Val
				}
			}
			if isDescription && content != "" {
				description = strings.TrimSpace(content)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
			if description != "" {
				return
			}
		}
	}
	traverse(doc)
	return description
}
