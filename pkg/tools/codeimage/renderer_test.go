package codeimage

import (
	"strings"
	"testing"
)

func TestHighlightHTML(t *testing.T) {
	doc, err := highlightHTML("package main\n\nfunc main() {}\n", "go", DefaultTheme)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	html := string(doc)
	if !strings.Contains(html, "<html>") {
		t.Error("output should be a standalone HTML document")
	}
	if !strings.Contains(html, "main") {
		t.Error("output should contain the highlighted code")
	}
}

func TestHighlightHTMLFallsBack(t *testing.T) {
	// Unknown language and theme still produce a document.
	doc, err := highlightHTML("hello world", "nonsense-lang", "nonsense-theme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(doc), "hello world") {
		t.Error("fallback lexer should pass the code through")
	}
}
