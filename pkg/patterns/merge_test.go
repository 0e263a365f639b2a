package patterns

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustValue(t *testing.T, raw string) Value {
	t.Helper()
	var v Value
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func exampleOf(t *testing.T, e Entry) string {
	t.Helper()
	require.True(t, e.IsMapping(), "expected mapping entry, got %+v", e)
	s, ok := e.Fields["example"].(string)
	require.True(t, ok, "expected string example, got %+v", e.Fields["example"])
	return s
}

func TestMergeSequencesDedup(t *testing.T) {
	first := MergePatterns(nil, map[string]Value{
		"hooks": mustValue(t, `[{"example":"A"},{"example":"B"}]`),
	})
	second := MergePatterns(first, map[string]Value{
		"hooks": mustValue(t, `[{"example":"B"},{"example":"C"}]`),
	})

	hooks := second["hooks"]
	require.Equal(t, KindSequence, hooks.Kind)
	require.Len(t, hooks.Seq, 3)

	got := []string{}
	for _, e := range hooks.Seq {
		got = append(got, exampleOf(t, e))
	}
	assert.Equal(t, []string{"A", "B", "C"}, got)
}

func TestMergeSequencesRejectsDuplicatesWithinBatch(t *testing.T) {
	merged := MergePatterns(nil, map[string]Value{
		"hooks": mustValue(t, `[{"example":"A"},{"example":"A"},"plain","plain"]`),
	})

	// Batches merge against an empty current value via the same rules.
	merged = MergePatterns(map[string]Value{"hooks": SequenceValue()}, merged)

	hooks := merged["hooks"]
	require.Len(t, hooks.Seq, 2)
	assert.Equal(t, "A", exampleOf(t, hooks.Seq[0]))
	assert.Equal(t, "plain", hooks.Seq[1].Scalar)
}

func TestMergeSequencesNeverOverwritesExistingEntries(t *testing.T) {
	current := map[string]Value{
		"hooks": mustValue(t, `[{"example":"A","type":"question"}]`),
	}
	merged := MergePatterns(current, map[string]Value{
		"hooks": mustValue(t, `[{"example":"A","type":"statistic"}]`),
	})

	hooks := merged["hooks"]
	require.Len(t, hooks.Seq, 1)
	// Only the presence decision is made; the stored entry keeps its fields.
	assert.Equal(t, "question", hooks.Seq[0].Fields["type"])
}

func TestMergeSequencesKeylessEntriesCollapse(t *testing.T) {
	merged := MergePatterns(nil, map[string]Value{
		"hooks": mustValue(t, `[{"note":"first keyless"}]`),
	})
	merged = MergePatterns(merged, map[string]Value{
		"hooks": mustValue(t, `[{"note":"second keyless"},{"example":"A"}]`),
	})

	hooks := merged["hooks"]
	require.Len(t, hooks.Seq, 2)
	assert.Equal(t, "first keyless", hooks.Seq[0].Fields["note"])
	assert.Equal(t, "A", exampleOf(t, hooks.Seq[1]))
}

func TestMergeSequencesScalarEquality(t *testing.T) {
	current := map[string]Value{"topics": mustValue(t, `["go","testing"]`)}
	merged := MergePatterns(current, map[string]Value{
		"topics": mustValue(t, `["testing","concurrency"]`),
	})

	topics := merged["topics"]
	require.Len(t, topics.Seq, 3)
	assert.Equal(t, "concurrency", topics.Seq[2].Scalar)
}

func TestMergeMappingsIncomingWins(t *testing.T) {
	current := map[string]Value{
		"tone": mustValue(t, `{"formality":"casual","person":"first"}`),
	}
	merged := MergePatterns(current, map[string]Value{
		"tone": mustValue(t, `{"formality":"professional","voice":"direct"}`),
	})

	tone := merged["tone"]
	require.Equal(t, KindMapping, tone.Kind)
	assert.Equal(t, "professional", tone.Attrs["formality"])
	assert.Equal(t, "direct", tone.Attrs["voice"])
	assert.Equal(t, "first", tone.Attrs["person"])
}

func TestMergeReplacesOnShapeMismatch(t *testing.T) {
	t.Run("mapping replaces sequence", func(t *testing.T) {
		current := map[string]Value{"topics": mustValue(t, `["x","y"]`)}
		merged := MergePatterns(current, map[string]Value{
			"topics": mustValue(t, `{"primary":"x"}`),
		})

		topics := merged["topics"]
		require.Equal(t, KindMapping, topics.Kind)
		assert.Equal(t, "x", topics.Attrs["primary"])
	})

	t.Run("sequence replaces mapping", func(t *testing.T) {
		current := map[string]Value{"topics": mustValue(t, `{"primary":"x"}`)}
		merged := MergePatterns(current, map[string]Value{
			"topics": mustValue(t, `["x","y"]`),
		})

		topics := merged["topics"]
		require.Equal(t, KindSequence, topics.Kind)
		assert.Len(t, topics.Seq, 2)
	})

	t.Run("scalar replaces sequence", func(t *testing.T) {
		current := map[string]Value{"cadence": mustValue(t, `["daily"]`)}
		merged := MergePatterns(current, map[string]Value{
			"cadence": mustValue(t, `"weekly"`),
		})

		assert.Equal(t, KindScalar, merged["cadence"].Kind)
		assert.Equal(t, "weekly", merged["cadence"].Scalar)
	})
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	current := map[string]Value{"hooks": mustValue(t, `[{"example":"A"}]`)}
	incoming := map[string]Value{"hooks": mustValue(t, `[{"example":"B"}]`)}

	_ = MergePatterns(current, incoming)

	assert.Len(t, current["hooks"].Seq, 1)
	assert.Len(t, incoming["hooks"].Seq, 1)
}
