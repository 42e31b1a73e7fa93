package match

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// wire is the serialized shape shared by the YAML and JSON encodings.
// Pointers distinguish an absent operand from a zero one.
type wire[T comparable] struct {
	Condition Condition `yaml:"condition" json:"condition"`
	Value     *T        `yaml:"value,omitempty" json:"value,omitempty"`
	Values    *[]T      `yaml:"values,omitempty" json:"values,omitempty"`
	Min       *T        `yaml:"min,omitempty" json:"min,omitempty"`
	Max       *T        `yaml:"max,omitempty" json:"max,omitempty"`
}

func (m Match[T]) toWire() wire[T] {
	w := wire[T]{Condition: m.Condition}
	switch m.Condition {
	case "":
		w.Condition = CondAny
	case CondEqualTo:
		v := m.Value
		w.Value = &v
	case CondHasAll, CondHasAny, CondHasNone:
		vs := m.Values
		if vs == nil {
			vs = []T{}
		}
		w.Values = &vs
	case CondInRange:
		lo, hi := m.Min, m.Max
		w.Min, w.Max = &lo, &hi
	}
	return w
}

func (w wire[T]) toMatch() (Match[T], error) {
	m := Match[T]{Condition: w.Condition}
	switch w.Condition {
	case "", CondAny:
		m.Condition = CondAny
	case CondEqualTo:
		if w.Value == nil {
			return Match[T]{}, fmt.Errorf("condition %s requires a value", w.Condition)
		}
		m.Value = *w.Value
	case CondHasAll, CondHasAny, CondHasNone:
		if w.Values == nil {
			return Match[T]{}, fmt.Errorf("condition %s requires values", w.Condition)
		}
		m.Values = *w.Values
	case CondInRange:
		if w.Min == nil || w.Max == nil {
			return Match[T]{}, fmt.Errorf("condition %s requires min and max", w.Condition)
		}
		m.Min, m.Max = *w.Min, *w.Max
	default:
		return Match[T]{}, fmt.Errorf("unknown match condition %q", w.Condition)
	}
	return m, nil
}

// MarshalYAML implements yaml.Marshaler.
func (m Match[T]) MarshalYAML() (any, error) {
	return m.toWire(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Match[T]) UnmarshalYAML(node *yaml.Node) error {
	var w wire[T]
	if err := DecodeNode(node, &w); err != nil {
		return err
	}
	decoded, err := w.toMatch()
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*m = decoded
	return nil
}

// DecodeNode decodes node into out, rejecting mapping keys that out has no
// field for. yaml.Node.Decode starts a fresh decoder without the caller's
// KnownFields setting, so custom unmarshalers use this instead.
func DecodeNode(node *yaml.Node, out any) error {
	raw, err := yaml.Marshal(node)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (m Match[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.toWire())
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Match[T]) UnmarshalJSON(data []byte) error {
	var w wire[T]
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	decoded, err := w.toMatch()
	if err != nil {
		return err
	}
	*m = decoded
	return nil
}
