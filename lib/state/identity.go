package state

import "reflect"

// Identical reports whether a and b are the same value at one level.
//
// Maps, pointers and channels are identical when they share an address.
// Slices are identical when they share a backing array and length.
// Comparable values (numbers, strings, structs of those) use ==.
// Funcs are identical only when both are nil, since Go cannot compare them.
// Anything else is reported as different.
func Identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Len() == vb.Len() && va.Pointer() == vb.Pointer()
	case reflect.Func:
		return va.IsNil() && vb.IsNil()
	}

	if va.Comparable() && vb.Comparable() {
		return va.Equal(vb)
	}
	return false
}
