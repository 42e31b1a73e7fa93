package match

import (
	"bytes"
	"cmp"
	"reflect"

	"github.com/google/uuid"
)

type equaler[T any] interface {
	Equal(T) bool
}

type comparer[T any] interface {
	Compare(T) int
}

func equal[T comparable](a, b T) bool {
	if e, ok := any(a).(equaler[T]); ok {
		return e.Equal(b)
	}
	return a == b
}

func contains[T comparable](xs []T, x T) bool {
	for _, y := range xs {
		if equal(x, y) {
			return true
		}
	}
	return false
}

// dedup returns xs without repeated elements, preserving first occurrence.
// A slice is used rather than a map so Equal methods are honored.
func dedup[T comparable](xs []T) []T {
	out := make([]T, 0, len(xs))
	for _, x := range xs {
		if !contains(out, x) {
			out = append(out, x)
		}
	}
	return out
}

func inRange[T comparable](lo, hi, x T) bool {
	low, ok := compare(lo, x)
	if !ok || low > 0 {
		return false
	}
	high, ok := compare(x, hi)
	return ok && high < 0
}

// compare orders a and b. The second result is false when T has no order.
func compare[T comparable](a, b T) (int, bool) {
	switch x := any(a).(type) {
	case comparer[T]:
		return x.Compare(b), true
	case uuid.UUID:
		y := any(b).(uuid.UUID)
		return bytes.Compare(x[:], y[:]), true
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.String:
		return cmp.Compare(va.String(), vb.String()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(va.Int(), vb.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(va.Uint(), vb.Uint()), true
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(va.Float(), vb.Float()), true
	}
	return 0, false
}
