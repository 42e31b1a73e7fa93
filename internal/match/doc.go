// Package match implements the predicate engine used by every record query.
//
// A Match[T] describes a condition over values of type T. It can be tested
// against a single value (Matches) or against a collection of values
// (SetMatches). The two are deliberately distinct:
//
//	condition        Matches(x)                SetMatches(S)
//	---------        ----------                -------------
//	Any              true                      true
//	EqualTo(v)       x == v                    |S| == 1 and v ∈ S
//	HasAll(V)        |V| == 1 and x ∈ V        V ⊆ S
//	HasAny(V)        x ∈ V                     S ∩ V ≠ ∅
//	HasNone(V)       x ∉ V                     S ∩ V = ∅
//	InRange(lo, hi)  lo <= x < hi              some s ∈ S with lo <= s < hi
//
// Sets are de-duplicated before cardinality is considered, so
// EqualTo(v).SetMatches([v, v]) holds.
//
// EQUALITY AND ORDER:
//
// Values are compared with their Equal(T) bool method when they have one
// (time.Time), otherwise with ==. InRange uses a Compare(T) int method when
// present (time.Time, entity.Money), byte order for uuid.UUID, and the
// natural order for types whose underlying kind is a string, integer or
// float. InRange over any other type never matches.
//
// ENCODING:
//
// A Match is written in YAML or JSON as a tagged mapping:
//
//	condition: equal_to
//	value: Earth
//
//	condition: has_any
//	values: [employed, representative]
//
//	condition: in_range
//	min: 2024-01-01T00:00:00Z
//	max: 2025-01-01T00:00:00Z
//
// An absent field decodes to Any.
package match
