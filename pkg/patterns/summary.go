package patterns

import (
	"fmt"
	"strings"
	"time"
)

// topicPreviewLimit caps how many topics appear in the digest line.
const topicPreviewLimit = 5

// Summarize derives a compact human-readable digest from a collection. ok is
// false when no patterns are stored. Only known categories contribute lines;
// unknown categories are omitted from the digest but remain in the stored
// collection.
func Summarize(c *Collection) (string, bool) {
	if c.IsEmpty() {
		return "", false
	}

	lines := []string{
		fmt.Sprintf("Sources: %d posts analyzed", len(c.Sources)),
		fmt.Sprintf("Last updated: %s", c.UpdatedAt.Format(time.RFC3339)),
		"",
	}

	if v, ok := c.Patterns["hooks"]; ok && v.Kind == KindSequence {
		lines = append(lines, fmt.Sprintf("Hooks: %d patterns", len(v.Seq)))
	}
	if v, ok := c.Patterns["structure"]; ok && v.Kind == KindMapping {
		lines = append(lines, fmt.Sprintf("Avg length: %s words", attrOr(v.Attrs, "avg_length", "N/A")))
	}
	if v, ok := c.Patterns["tone"]; ok && v.Kind == KindMapping {
		lines = append(lines, fmt.Sprintf("Tone: %s", attrOr(v.Attrs, "formality", "N/A")))
	}
	if v, ok := c.Patterns["ctas"]; ok && v.Kind == KindSequence {
		lines = append(lines, fmt.Sprintf("CTAs: %d patterns", len(v.Seq)))
	}
	if v, ok := c.Patterns["topics"]; ok && v.Kind == KindSequence {
		lines = append(lines, fmt.Sprintf("Topics: %s", strings.Join(topicPreview(v.Seq), ", ")))
	}

	return strings.Join(lines, "\n"), true
}

func attrOr(attrs map[string]interface{}, key, fallback string) string {
	v, ok := attrs[key]
	if !ok || v == nil {
		return fallback
	}
	return fmt.Sprintf("%v", v)
}

func topicPreview(entries []Entry) []string {
	limit := len(entries)
	if limit > topicPreviewLimit {
		limit = topicPreviewLimit
	}
	out := make([]string, 0, limit)
	for _, e := range entries[:limit] {
		if e.IsMapping() {
			out = append(out, attrOr(e.Fields, identityField, "?"))
			continue
		}
		out = append(out, fmt.Sprintf("%v", e.Scalar))
	}
	return out
}
