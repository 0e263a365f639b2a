// Package content provides the writing-focused tools for Loom agents:
// reading sample posts for analysis, persisting and loading learned
// patterns, saving drafted posts, and fetching reference articles.
package content
