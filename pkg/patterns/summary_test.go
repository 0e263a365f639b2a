package patterns

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeEmptyCollection(t *testing.T) {
	_, ok := Summarize(NewCollection())
	assert.False(t, ok)
}

func TestSummarizeFullDigest(t *testing.T) {
	c := NewCollection()
	c.UpdatedAt = time.Date(2026, 8, 24, 9, 30, 0, 0, time.UTC)
	c.Sources = []string{"posts/one.md", "posts/two.md", "posts/three.md"}
	c.Patterns = map[string]Value{
		"hooks":     mustValue(t, `[{"example":"A"},{"example":"B"}]`),
		"structure": mustValue(t, `{"avg_length":180,"sections":3}`),
		"tone":      mustValue(t, `{"formality":"casual"}`),
		"ctas":      mustValue(t, `[{"example":"What do you think?"}]`),
		"topics":    mustValue(t, `["go","testing"]`),
	}

	digest, ok := Summarize(c)
	require.True(t, ok)

	lines := strings.Split(digest, "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "Sources: 3 posts analyzed", lines[0])
	assert.Equal(t, "Last updated: 2026-08-24T09:30:00Z", lines[1])
	assert.Equal(t, "", lines[2])
	assert.Equal(t, "Hooks: 2 patterns", lines[3])
	assert.Equal(t, "Avg length: 180 words", lines[4])
	assert.Equal(t, "Tone: casual", lines[5])
	assert.Equal(t, "CTAs: 1 patterns", lines[6])
	assert.Equal(t, "Topics: go, testing", lines[7])
}

func TestSummarizeOmitsAbsentCategories(t *testing.T) {
	c := NewCollection()
	c.Sources = []string{"posts/one.md"}
	c.Patterns = map[string]Value{
		"hooks": mustValue(t, `[{"example":"A"}]`),
	}

	digest, ok := Summarize(c)
	require.True(t, ok)
	assert.Contains(t, digest, "Hooks: 1 patterns")
	assert.NotContains(t, digest, "Tone:")
	assert.NotContains(t, digest, "Topics:")
	assert.NotContains(t, digest, "Avg length:")
}

func TestSummarizeSkipsMisshapenCategories(t *testing.T) {
	c := NewCollection()
	c.Sources = []string{"posts/one.md"}
	c.Patterns = map[string]Value{
		// tone is expected to be a mapping; a sequence here contributes no line.
		"tone":   mustValue(t, `["casual"]`),
		"topics": mustValue(t, `["go"]`),
	}

	digest, ok := Summarize(c)
	require.True(t, ok)
	assert.NotContains(t, digest, "Tone:")
	assert.Contains(t, digest, "Topics: go")
}

func TestSummarizeMissingAttributesFallBack(t *testing.T) {
	c := NewCollection()
	c.Patterns = map[string]Value{
		"structure": mustValue(t, `{"sections":3}`),
		"tone":      mustValue(t, `{"voice":"direct"}`),
	}

	digest, ok := Summarize(c)
	require.True(t, ok)
	assert.Contains(t, digest, "Avg length: N/A words")
	assert.Contains(t, digest, "Tone: N/A")
}

func TestSummarizeTopicPreviewLimit(t *testing.T) {
	c := NewCollection()
	c.Patterns = map[string]Value{
		"topics": mustValue(t, `["a","b","c","d","e","f","g"]`),
	}

	digest, ok := Summarize(c)
	require.True(t, ok)
	assert.Contains(t, digest, "Topics: a, b, c, d, e")
	assert.NotContains(t, digest, "f")
}

func TestSummarizeMappingTopicsUseExample(t *testing.T) {
	c := NewCollection()
	c.Patterns = map[string]Value{
		"topics": mustValue(t, `[{"example":"concurrency"},{"weight":2}]`),
	}

	digest, ok := Summarize(c)
	require.True(t, ok)
	assert.Contains(t, digest, "Topics: concurrency, ?")
}

func TestSummarizeUnknownCategoriesOmitted(t *testing.T) {
	c := NewCollection()
	c.Patterns = map[string]Value{
		"emoji_usage": mustValue(t, `{"frequency":"rare"}`),
	}

	digest, ok := Summarize(c)
	require.True(t, ok)
	assert.NotContains(t, digest, "emoji_usage")
}
