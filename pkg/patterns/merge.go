package patterns

import "reflect"

// MergePatterns combines an incoming batch of category values into the
// current pattern mapping and returns the merged result. Inputs are not
// mutated. Dispatch is by the resolved value kinds:
//
//   - sequence into sequence: entry-level merge with identity-key dedup
//   - mapping into mapping: key union, incoming wins on collision
//   - anything else (new category or shape mismatch): whole-category replace
//
// Replacing on shape mismatch discards the previous value under that
// category; it is the documented resolution, not an error.
func MergePatterns(current, incoming map[string]Value) map[string]Value {
	merged := make(map[string]Value, len(current)+len(incoming))
	for name, v := range current {
		merged[name] = v
	}
	for name, in := range incoming {
		cur, ok := merged[name]
		if !ok {
			merged[name] = in
			continue
		}
		merged[name] = mergeValue(cur, in)
	}
	return merged
}

func mergeValue(current, incoming Value) Value {
	switch {
	case current.Kind == KindSequence && incoming.Kind == KindSequence:
		return SequenceValue(mergeSequences(current.Seq, incoming.Seq)...)
	case current.Kind == KindMapping && incoming.Kind == KindMapping:
		return MappingValue(mergeMappings(current.Attrs, incoming.Attrs))
	default:
		return incoming
	}
}

// mergeSequences appends incoming entries that are not already present.
// Mapping-shaped entries dedup by identity key; existing entries are never
// overwritten by incoming entries sharing their key, only presence is
// decided. Keyless mapping entries all share the nil key, so only one such
// entry can ever be retained per category. Scalar entries dedup by direct
// equality against the growing result, which also rejects duplicates within
// the incoming batch itself.
func mergeSequences(existing, incoming []Entry) []Entry {
	merged := make([]Entry, len(existing), len(existing)+len(incoming))
	copy(merged, existing)

	seen := make(map[interface{}]bool, len(existing))
	for _, e := range existing {
		if e.IsMapping() {
			seen[e.identityKey()] = true
		}
	}

	for _, e := range incoming {
		if e.IsMapping() {
			key := e.identityKey()
			if seen[key] {
				continue
			}
			merged = append(merged, e)
			seen[key] = true
			continue
		}
		if !containsScalar(merged, e.Scalar) {
			merged = append(merged, e)
		}
	}
	return merged
}

func containsScalar(entries []Entry, scalar interface{}) bool {
	for _, e := range entries {
		if !e.IsMapping() && reflect.DeepEqual(e.Scalar, scalar) {
			return true
		}
	}
	return false
}

// mergeMappings unions attribute keys, with incoming values winning on
// collision and current-only keys preserved.
func mergeMappings(current, incoming map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(current)+len(incoming))
	for k, v := range current {
		merged[k] = v
	}
	for k, v := range incoming {
		merged[k] = v
	}
	return merged
}
