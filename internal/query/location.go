package query

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/roach88/clerk/internal/entity"
	"github.com/roach88/clerk/internal/match"
)

// Location matches locations.
type Location struct {
	ID    match.Match[uuid.UUID] `yaml:"id,omitempty" json:"id,omitzero"`
	Name  match.Match[string]    `yaml:"name,omitempty" json:"name,omitzero"`
	Outer OuterLocation          `yaml:"outer,omitempty" json:"outer,omitzero"`
}

// IsAny reports whether q places no constraint.
func (q Location) IsAny() bool {
	return q.ID.IsAny() && q.Name.IsAny() && q.Outer.IsAny()
}

// Matches tests a stored location. An outer sub-query only consults its ID.
func (q Location) Matches(l entity.Location) bool {
	return q.ID.Matches(l.ID) &&
		q.Name.Matches(l.Name) &&
		q.Outer.matches(l.OuterID)
}

// MatchesView tests a location view, recursing into the outer chain.
func (q Location) MatchesView(v entity.LocationView) bool {
	return q.ID.Matches(v.ID) &&
		q.Name.Matches(v.Name) &&
		q.Outer.matchesView(v.Outer)
}

// OuterType selects how an OuterLocation constrains the outer reference.
type OuterType string

const (
	// OuterAny accepts any outer reference, including none.
	OuterAny OuterType = "any"
	// OuterNone requires a location with no outer location.
	OuterNone OuterType = "none"
	// OuterSome requires an outer location matching Query.
	OuterSome OuterType = "some"
)

// OuterLocation constrains a location's outer reference. The zero value is
// OuterAny.
//
// In YAML the sub-query is written inline next to the type tag:
//
//	outer:
//	  type: some
//	  name: {condition: equal_to, value: Earth}
type OuterLocation struct {
	Type  OuterType
	Query *Location
}

// Some returns an OuterLocation requiring an outer location matching q.
func Some(q Location) OuterLocation {
	return OuterLocation{Type: OuterSome, Query: &q}
}

// None returns an OuterLocation requiring no outer location.
func None() OuterLocation {
	return OuterLocation{Type: OuterNone}
}

// IsAny reports whether o accepts every outer reference.
func (o OuterLocation) IsAny() bool {
	return o.Type == "" || o.Type == OuterAny
}

// IsZero lets encoders omit the default.
func (o OuterLocation) IsZero() bool {
	return o.IsAny()
}

func (o OuterLocation) sub() Location {
	if o.Query == nil {
		return Location{}
	}
	return *o.Query
}

func (o OuterLocation) matches(outer *uuid.UUID) bool {
	switch o.Type {
	case OuterNone:
		return outer == nil
	case OuterSome:
		return outer != nil && o.sub().ID.Matches(*outer)
	}
	return true
}

func (o OuterLocation) matchesView(outer *entity.LocationView) bool {
	switch o.Type {
	case OuterNone:
		return outer == nil
	case OuterSome:
		return outer != nil && o.sub().MatchesView(*outer)
	}
	return true
}

// MarshalYAML implements yaml.Marshaler.
func (o OuterLocation) MarshalYAML() (any, error) {
	switch o.Type {
	case OuterSome:
		type inline struct {
			Type     OuterType `yaml:"type"`
			Location `yaml:",inline"`
		}
		return inline{Type: OuterSome, Location: o.sub()}, nil
	case OuterNone:
		return map[string]OuterType{"type": OuterNone}, nil
	}
	return map[string]OuterType{"type": OuterAny}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Fields other than type are
// only accepted for OuterSome, and must be Location fields.
func (o *OuterLocation) UnmarshalYAML(node *yaml.Node) error {
	var tag struct {
		Type OuterType `yaml:"type"`
	}
	if err := node.Decode(&tag); err != nil {
		return err
	}

	switch tag.Type {
	case "", OuterAny, OuterNone:
		if err := match.DecodeNode(node, &tag); err != nil {
			return err
		}
		if tag.Type == OuterNone {
			*o = None()
		} else {
			*o = OuterLocation{Type: OuterAny}
		}
	case OuterSome:
		var inline struct {
			Type     OuterType `yaml:"type"`
			Location `yaml:",inline"`
		}
		if err := match.DecodeNode(node, &inline); err != nil {
			return err
		}
		*o = Some(inline.Location)
	default:
		return fmt.Errorf("line %d: unknown outer location type %q", node.Line, tag.Type)
	}
	return nil
}

// MarshalJSON implements json.Marshaler using the same inline shape as YAML.
func (o OuterLocation) MarshalJSON() ([]byte, error) {
	fields := map[string]json.RawMessage{}
	if o.Type == OuterSome {
		body, err := json.Marshal(o.sub())
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(body, &fields); err != nil {
			return nil, err
		}
	}

	typ := o.Type
	if typ == "" {
		typ = OuterAny
	}
	fields["type"], _ = json.Marshal(typ)
	return json.Marshal(fields)
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OuterLocation) UnmarshalJSON(data []byte) error {
	var tag struct {
		Type OuterType `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}

	switch tag.Type {
	case "", OuterAny:
		*o = OuterLocation{Type: OuterAny}
	case OuterNone:
		*o = None()
	case OuterSome:
		var q Location
		if err := json.Unmarshal(data, &q); err != nil {
			return err
		}
		*o = Some(q)
	default:
		return fmt.Errorf("unknown outer location type %q", tag.Type)
	}
	return nil
}
