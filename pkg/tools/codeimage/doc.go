// Package codeimage provides tools for sharing code in posts: syntax-aware
// snippet formatting, highlight theme discovery, and rendering snippets to
// shareable PNG images via a headless browser.
package codeimage
