// Package patterns provides the persistent pattern collection that learning
// passes merge into and generation reads from. It defines the on-disk JSON
// document, the tagged value variants, the merge rules, and the file-backed
// store the rest of the application depends on.
package patterns

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// FormatVersion is the format tag written into every persisted collection.
const FormatVersion = "1.0"

// identityField is the entry field used as the deduplication identity key
// within sequence-valued categories.
const identityField = "example"

// Kind identifies the shape of a category value. It is resolved once, when a
// value crosses the JSON ingestion boundary, and drives merge dispatch.
type Kind string

const (
	KindSequence Kind = "sequence"
	KindMapping  Kind = "mapping"
	KindScalar   Kind = "scalar"
)

// Entry is a single element of a sequence-valued category. It is either an
// attribute mapping (Fields non-nil) or a bare scalar.
type Entry struct {
	Fields map[string]interface{}
	Scalar interface{}
}

// MappingEntry creates an attribute-mapping entry.
func MappingEntry(fields map[string]interface{}) Entry {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	return Entry{Fields: fields}
}

// ScalarEntry creates a bare scalar entry.
func ScalarEntry(v interface{}) Entry {
	return Entry{Scalar: v}
}

// IsMapping reports whether the entry is attribute-mapping-shaped.
func (e Entry) IsMapping() bool {
	return e.Fields != nil
}

// identityKey returns the dedup key for a mapping-shaped entry. All entries
// lacking the identity field collapse to the same nil key, so at most one
// keyless entry is ever retained per sequence category.
func (e Entry) identityKey() interface{} {
	if e.Fields == nil {
		return nil
	}
	return comparableKey(e.Fields[identityField])
}

// comparableKey normalizes a decoded JSON value into something usable as a
// map key. Objects and arrays fall back to their serialized form.
func comparableKey(v interface{}) interface{} {
	switch v.(type) {
	case nil, string, bool, float64:
		return v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}

// UnmarshalJSON resolves the entry shape from the raw JSON: objects become
// attribute mappings, everything else is stored as a scalar verbatim.
func (e *Entry) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		fields := make(map[string]interface{})
		if err := json.Unmarshal(data, &fields); err != nil {
			return err
		}
		*e = Entry{Fields: fields}
		return nil
	}
	var scalar interface{}
	if err := json.Unmarshal(data, &scalar); err != nil {
		return err
	}
	*e = Entry{Scalar: scalar}
	return nil
}

// MarshalJSON writes the entry back in its natural JSON shape.
func (e Entry) MarshalJSON() ([]byte, error) {
	if e.Fields != nil {
		return json.Marshal(e.Fields)
	}
	return json.Marshal(e.Scalar)
}

// Value is a category value with an explicit shape tag. Exactly one of Seq,
// Attrs, or Scalar is meaningful, selected by Kind.
type Value struct {
	Kind   Kind
	Seq    []Entry
	Attrs  map[string]interface{}
	Scalar interface{}
}

// SequenceValue creates a sequence-shaped value.
func SequenceValue(entries ...Entry) Value {
	if entries == nil {
		entries = []Entry{}
	}
	return Value{Kind: KindSequence, Seq: entries}
}

// MappingValue creates an attribute-mapping-shaped value.
func MappingValue(attrs map[string]interface{}) Value {
	if attrs == nil {
		attrs = make(map[string]interface{})
	}
	return Value{Kind: KindMapping, Attrs: attrs}
}

// ScalarValue creates an opaque scalar value stored verbatim.
func ScalarValue(v interface{}) Value {
	return Value{Kind: KindScalar, Scalar: v}
}

// UnmarshalJSON resolves the value's shape once at the ingestion boundary:
// arrays become sequences, objects become mappings, anything else a scalar.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return fmt.Errorf("patterns: empty value")
	}
	switch trimmed[0] {
	case '[':
		var seq []Entry
		if err := json.Unmarshal(data, &seq); err != nil {
			return err
		}
		if seq == nil {
			seq = []Entry{}
		}
		*v = Value{Kind: KindSequence, Seq: seq}
	case '{':
		attrs := make(map[string]interface{})
		if err := json.Unmarshal(data, &attrs); err != nil {
			return err
		}
		*v = Value{Kind: KindMapping, Attrs: attrs}
	default:
		var scalar interface{}
		if err := json.Unmarshal(data, &scalar); err != nil {
			return err
		}
		*v = Value{Kind: KindScalar, Scalar: scalar}
	}
	return nil
}

// MarshalJSON writes the value in its natural JSON shape.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindSequence:
		if v.Seq == nil {
			return json.Marshal([]Entry{})
		}
		return json.Marshal(v.Seq)
	case KindMapping:
		if v.Attrs == nil {
			return json.Marshal(map[string]interface{}{})
		}
		return json.Marshal(v.Attrs)
	default:
		return json.Marshal(v.Scalar)
	}
}

// Collection is the persisted root document. All four data fields are always
// present on disk; Sources keeps first-seen order with no duplicates.
type Collection struct {
	Version   string           `json:"version"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Sources   []string         `json:"sources"`
	Patterns  map[string]Value `json:"patterns"`
}

// NewCollection returns an empty scaffold collection.
func NewCollection() *Collection {
	now := timeNow()
	return &Collection{
		Version:   FormatVersion,
		CreatedAt: now,
		UpdatedAt: now,
		Sources:   []string{},
		Patterns:  make(map[string]Value),
	}
}

// IsEmpty reports whether no patterns have been learned yet. Callers should
// treat an empty collection as "nothing learned", not as a failure.
func (c *Collection) IsEmpty() bool {
	return c == nil || len(c.Patterns) == 0
}

// appendSources appends identifiers to an ordered-unique source list,
// preserving first-seen order and collapsing duplicates.
func appendSources(existing []string, incoming []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, s := range existing {
		seen[s] = true
	}
	out := existing
	for _, s := range incoming {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
