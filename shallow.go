package hxconnect

import "github.com/pthm/hxconnect/lib/state"

// ShallowEqual reports whether a and b are the same map, or carry the same
// keys with identical values. Nested values are compared by identity, not
// content (see state.Identical). It may report false for values it cannot
// compare, which only costs a recompute.
func ShallowEqual(a, b Props) bool {
	if state.Identical(a, b) {
		return true
	}
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || !state.Identical(va, vb) {
			return false
		}
	}
	return true
}
