package match

import (
	"errors"
	"fmt"
)

// ErrUnnecessaryConversion is returned by Map for InRange predicates. Range
// bounds do not commute with arbitrary functions; map the compared value
// instead.
var ErrUnnecessaryConversion = errors.New("unnecessary conversion: remap the compared value instead of the range")

// Condition names the kind of test a Match performs.
type Condition string

const (
	CondAny     Condition = "any"
	CondEqualTo Condition = "equal_to"
	CondHasAll  Condition = "has_all"
	CondHasAny  Condition = "has_any"
	CondHasNone Condition = "has_none"
	CondInRange Condition = "in_range"
)

// Valid reports whether c is a known condition. The empty condition is
// valid and means CondAny.
func (c Condition) Valid() bool {
	switch c {
	case "", CondAny, CondEqualTo, CondHasAll, CondHasAny, CondHasNone, CondInRange:
		return true
	}
	return false
}

// Match is a predicate over values of type T. The zero value matches
// everything.
//
// Which operand fields are meaningful depends on Condition:
//   - CondEqualTo: Value
//   - CondHasAll, CondHasAny, CondHasNone: Values
//   - CondInRange: Min (inclusive) and Max (exclusive)
type Match[T comparable] struct {
	Condition Condition
	Value     T
	Values    []T
	Min       T
	Max       T
}

// Any matches every value.
func Any[T comparable]() Match[T] {
	return Match[T]{Condition: CondAny}
}

// EqualTo matches a value equal to v.
func EqualTo[T comparable](v T) Match[T] {
	return Match[T]{Condition: CondEqualTo, Value: v}
}

// HasAll matches a collection containing every one of vs.
func HasAll[T comparable](vs ...T) Match[T] {
	return Match[T]{Condition: CondHasAll, Values: vs}
}

// HasAny matches a value in vs, or a collection sharing an element with vs.
func HasAny[T comparable](vs ...T) Match[T] {
	return Match[T]{Condition: CondHasAny, Values: vs}
}

// HasNone matches a value not in vs, or a collection disjoint from vs.
func HasNone[T comparable](vs ...T) Match[T] {
	return Match[T]{Condition: CondHasNone, Values: vs}
}

// InRange matches a value in the half-open interval [lo, hi).
func InRange[T comparable](lo, hi T) Match[T] {
	return Match[T]{Condition: CondInRange, Min: lo, Max: hi}
}

// IsAny reports whether m matches everything.
func (m Match[T]) IsAny() bool {
	return m.Condition == "" || m.Condition == CondAny
}

// IsZero lets encoders omit predicates that match everything.
func (m Match[T]) IsZero() bool {
	return m.IsAny()
}

// Matches tests a single value.
func (m Match[T]) Matches(x T) bool {
	switch m.Condition {
	case "", CondAny:
		return true
	case CondEqualTo:
		return equal(m.Value, x)
	case CondHasAll:
		required := dedup(m.Values)
		return len(required) == 1 && equal(required[0], x)
	case CondHasAny:
		return contains(m.Values, x)
	case CondHasNone:
		return !contains(m.Values, x)
	case CondInRange:
		return inRange(m.Min, m.Max, x)
	}
	return false
}

// SetMatches tests a collection of values. Duplicates in xs are ignored.
func (m Match[T]) SetMatches(xs []T) bool {
	switch m.Condition {
	case "", CondAny:
		return true
	case CondEqualTo:
		set := dedup(xs)
		return len(set) == 1 && equal(set[0], m.Value)
	case CondHasAll:
		for _, v := range m.Values {
			if !contains(xs, v) {
				return false
			}
		}
		return true
	case CondHasAny:
		for _, v := range m.Values {
			if contains(xs, v) {
				return true
			}
		}
		return false
	case CondHasNone:
		for _, v := range m.Values {
			if contains(xs, v) {
				return false
			}
		}
		return true
	case CondInRange:
		for _, x := range xs {
			if inRange(m.Min, m.Max, x) {
				return true
			}
		}
		return false
	}
	return false
}

// Validate checks that the condition is known.
func (m Match[T]) Validate() error {
	if !m.Condition.Valid() {
		return fmt.Errorf("unknown match condition %q", m.Condition)
	}
	return nil
}

// Map transforms the values carried by m with f, so a predicate written
// against one representation can be applied to another.
//
// Mapping an InRange predicate fails with ErrUnnecessaryConversion.
func Map[T, U comparable](m Match[T], f func(T) U) (Match[U], error) {
	switch m.Condition {
	case "", CondAny:
		return Match[U]{Condition: m.Condition}, nil
	case CondEqualTo:
		return Match[U]{Condition: CondEqualTo, Value: f(m.Value)}, nil
	case CondHasAll, CondHasAny, CondHasNone:
		out := Match[U]{Condition: m.Condition}
		if m.Values != nil {
			out.Values = make([]U, len(m.Values))
			for i, v := range m.Values {
				out.Values[i] = f(v)
			}
		}
		return out, nil
	case CondInRange:
		return Match[U]{}, ErrUnnecessaryConversion
	}
	return Match[U]{}, fmt.Errorf("unknown match condition %q", m.Condition)
}

func (m Match[T]) String() string {
	switch m.Condition {
	case "", CondAny:
		return "any"
	case CondEqualTo:
		return fmt.Sprintf("equal_to(%v)", m.Value)
	case CondHasAll, CondHasAny, CondHasNone:
		return fmt.Sprintf("%s%v", m.Condition, m.Values)
	case CondInRange:
		return fmt.Sprintf("in_range[%v, %v)", m.Min, m.Max)
	}
	return string(m.Condition)
}
