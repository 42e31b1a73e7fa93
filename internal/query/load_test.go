package query

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/roach88/clerk/internal/match"
)

func TestLoad_Job(t *testing.T) {
	in := `
client:
  id:
    condition: equal_to
    value: 0191d8c0-0000-7000-8000-000000000004
  location:
    outer:
      type: some
      name: {condition: equal_to, value: USA}
date_close: {condition: equal_to, value: 0001-01-01T00:00:00Z}
timesheets:
  employee:
    title: {condition: has_any, values: [CEO of Tests]}
`
	q, err := Load[Job](strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, match.EqualTo(orgID), q.Client.ID)
	assert.Equal(t, OuterSome, q.Client.Location.Outer.Type)
	assert.True(t, q.Notes.IsAny())
	assert.True(t, q.Matches(jobView().Job()))
	assert.True(t, q.MatchesView(jobView()))
}

func TestLoad_Empty(t *testing.T) {
	q, err := Load[Location](strings.NewReader(""))
	require.NoError(t, err)
	assert.True(t, q.IsAny())
}

func TestLoad_UnknownField(t *testing.T) {
	_, err := Load[Person](strings.NewReader("nmae: {condition: any}"))
	assert.Error(t, err)
}

func TestLoad_UnknownNestedField(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"inside outer", "outer: {type: some, nmae: {condition: equal_to, value: Earth}}"},
		{"beside outer none", "outer: {type: none, name: {condition: equal_to, value: Earth}}"},
		{"inside outer outer", "outer: {type: some, outer: {type: some, nmae: {condition: any}}}"},
		{"inside match", "name: {condition: equal_to, value: Earth, vaule: Mars}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load[Location](strings.NewReader(tt.in))
			assert.Error(t, err)
		})
	}

	_, err := Load[Job](strings.NewReader("client: {location: {outer: {type: some, nmae: {condition: any}}}}"))
	assert.Error(t, err)
}

func TestLoad_BadOuterType(t *testing.T) {
	_, err := Load[Location](strings.NewReader("outer: {type: maybe}"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query.yaml")
	require.NoError(t, os.WriteFile(path, []byte("outer: {type: none}\n"), 0o644))

	q, err := LoadFile[Location](path)
	require.NoError(t, err)
	assert.Equal(t, OuterNone, q.Outer.Type)

	_, err = LoadFile[Location](filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestOuterLocation_YAMLRoundTrip(t *testing.T) {
	q := Location{Outer: Some(Location{Name: match.EqualTo("Earth"), Outer: None()})}

	out, err := yaml.Marshal(q)
	require.NoError(t, err)

	back, err := Load[Location](strings.NewReader(string(out)))
	require.NoError(t, err, string(out))
	assert.True(t, back.MatchesView(*arizonaView().Outer))
	assert.False(t, back.MatchesView(arizonaView()))
}

func TestOuterLocation_JSON(t *testing.T) {
	q := Location{Outer: Some(Location{ID: match.EqualTo(usaID)})}

	out, err := json.Marshal(q)
	require.NoError(t, err)

	var back Location
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, OuterSome, back.Outer.Type)
	assert.Equal(t, match.EqualTo(usaID), back.Outer.Query.ID)
}
