package match

import (
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroValueIsAny(t *testing.T) {
	var m Match[string]
	assert.True(t, m.IsAny())
	assert.True(t, m.Matches("anything"))
	assert.True(t, m.SetMatches(nil))
	assert.True(t, Any[int]().SetMatches([]int{1, 2}))
}

func TestMatches_Scalar(t *testing.T) {
	testCases := []struct {
		name  string
		match Match[int]
		value int
		want  bool
	}{
		{"equal_to hit", EqualTo(3), 3, true},
		{"equal_to miss", EqualTo(3), 4, false},
		{"has_all single element", HasAll(3), 3, true},
		{"has_all single element duplicated", HasAll(3, 3), 3, true},
		{"has_all two elements", HasAll(3, 4), 3, false},
		{"has_all empty", HasAll[int](), 3, false},
		{"has_any hit", HasAny(1, 3), 3, true},
		{"has_any miss", HasAny(1, 2), 3, false},
		{"has_none hit", HasNone(1, 2), 3, true},
		{"has_none miss", HasNone(1, 3), 3, false},
		{"in_range low bound inclusive", InRange(3, 5), 3, true},
		{"in_range inside", InRange(3, 5), 4, true},
		{"in_range high bound exclusive", InRange(3, 5), 5, false},
		{"in_range below", InRange(3, 5), 2, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.match.Matches(tc.value))
		})
	}
}

func TestSetMatches(t *testing.T) {
	testCases := []struct {
		name  string
		match Match[int]
		set   []int
		want  bool
	}{
		{"equal_to singleton", EqualTo(3), []int{3}, true},
		{"equal_to duplicated singleton", EqualTo(3), []int{3, 3}, true},
		{"equal_to superset", EqualTo(3), []int{3, 4}, false},
		{"equal_to empty", EqualTo(3), nil, false},
		{"has_all subset", HasAll(1, 2), []int{1, 2, 3}, true},
		{"has_all not subset", HasAll(1, 5), []int{1, 2, 3}, false},
		{"has_all empty required", HasAll[int](), nil, true},
		{"has_any overlap", HasAny(5, 3), []int{1, 2, 3}, true},
		{"has_any disjoint", HasAny(5, 6), []int{1, 2, 3}, false},
		{"has_any empty set", HasAny(5), nil, false},
		{"has_none disjoint", HasNone(5, 6), []int{1, 2, 3}, true},
		{"has_none overlap", HasNone(5, 1), []int{1, 2, 3}, false},
		{"has_none empty set", HasNone(5), nil, true},
		{"in_range some element", InRange(10, 20), []int{1, 15, 30}, true},
		{"in_range no element", InRange(10, 20), []int{1, 20, 30}, false},
		{"in_range empty set", InRange(10, 20), nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.match.SetMatches(tc.set))
		})
	}
}

func randomSet(r *rand.Rand) []int {
	n := r.IntN(5)
	out := make([]int, n)
	for i := range out {
		out[i] = r.IntN(6)
	}
	return out
}

func subset(v, s []int) bool {
	for _, x := range v {
		if !slices.Contains(s, x) {
			return false
		}
	}
	return true
}

func disjoint(v, s []int) bool {
	for _, x := range v {
		if slices.Contains(s, x) {
			return false
		}
	}
	return true
}

func TestSetMatches_Properties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 500; i++ {
		s, v := randomSet(r), randomSet(r)
		x := r.IntN(6)
		lo := r.IntN(6)
		hi := lo + r.IntN(4)

		unique := slices.Compact(slices.Sorted(slices.Values(s)))
		require.Equal(t, len(unique) == 1 && slices.Contains(s, x), EqualTo(x).SetMatches(s), "EqualTo(%d) %v", x, s)
		require.Equal(t, subset(v, s), HasAll(v...).SetMatches(s), "HasAll(%v) %v", v, s)
		require.Equal(t, !disjoint(v, s), HasAny(v...).SetMatches(s), "HasAny(%v) %v", v, s)
		require.Equal(t, disjoint(v, s), HasNone(v...).SetMatches(s), "HasNone(%v) %v", v, s)

		require.Equal(t, x == lo, EqualTo(lo).Matches(x))
		require.Equal(t, lo <= x && x < hi, InRange(lo, hi).Matches(x), "InRange(%d, %d) %d", lo, hi, x)
	}
}

func TestMatches_TimeUsesEqual(t *testing.T) {
	utc := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	local := utc.In(time.FixedZone("MST", -7*3600))

	assert.True(t, EqualTo(utc).Matches(local))
	assert.True(t, HasAny(utc).Matches(local))
	assert.True(t, EqualTo(utc).SetMatches([]time.Time{utc, local}))
	assert.True(t, InRange(utc, utc.Add(time.Hour)).Matches(local))
	assert.False(t, InRange(utc.Add(-time.Hour), utc).Matches(local))
}

func TestMatches_NamedStringOrder(t *testing.T) {
	type status string
	assert.True(t, InRange[status]("a", "m").Matches("employed"))
	assert.False(t, InRange[status]("a", "m").Matches("not_employed"))
}

func TestMatches_UUIDOrder(t *testing.T) {
	lo := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	mid := uuid.MustParse("7f000000-0000-0000-0000-000000000000")
	hi := uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")

	assert.True(t, InRange(lo, hi).Matches(mid))
	assert.False(t, InRange(mid, hi).Matches(lo))
}

func TestMatches_UnorderedTypeNeverInRange(t *testing.T) {
	assert.False(t, InRange(false, true).Matches(false))
}

func TestMap(t *testing.T) {
	double := func(x int) int { return x * 2 }

	m, err := Map(EqualTo(2), double)
	require.NoError(t, err)
	assert.Equal(t, EqualTo(4), m)

	m, err = Map(HasAny(1, 2), double)
	require.NoError(t, err)
	assert.Equal(t, HasAny(2, 4), m)

	m, err = Map(Any[int](), double)
	require.NoError(t, err)
	assert.True(t, m.IsAny())

	_, err = Map(InRange(1, 2), double)
	assert.ErrorIs(t, err, ErrUnnecessaryConversion)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Match[int]{}.Validate())
	assert.NoError(t, HasNone(1).Validate())
	assert.Error(t, Match[int]{Condition: "like"}.Validate())
	assert.False(t, Match[int]{Condition: "like"}.Matches(1))
}
