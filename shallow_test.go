package hxconnect

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestShallowEqual(t *testing.T) {
	nested := map[string]any{"a": 1}
	list := []string{"x", "y"}
	fn := func() {}
	same := Props{"a": 1}

	tests := []struct {
		name   string
		a, b   Props
		expect bool
	}{
		{"same map", same, same, true},
		{"both nil", nil, nil, true},
		{"nil and empty", nil, Props{}, true},
		{"equal primitives", Props{"a": 1, "b": "x"}, Props{"a": 1, "b": "x"}, true},
		{"same nested reference", Props{"m": nested}, Props{"m": nested}, true},
		{"same slice", Props{"l": list}, Props{"l": list}, true},
		{"different primitive", Props{"a": 1}, Props{"a": 2}, false},
		{"extra key", Props{"a": 1}, Props{"a": 1, "b": 2}, false},
		{"different keys", Props{"a": 1}, Props{"b": 1}, false},
		{"equal content, new nested map", Props{"m": nested}, Props{"m": map[string]any{"a": 1}}, false},
		{"equal content, new slice", Props{"l": list}, Props{"l": []string{"x", "y"}}, false},
		{"nil value vs missing key", Props{"a": nil}, Props{"b": nil}, false},
		{"funcs", Props{"f": fn}, Props{"f": fn}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, ShallowEqual(tt.a, tt.b), tt.expect)
			assert.Equal(t, ShallowEqual(tt.b, tt.a), tt.expect)
		})
	}
}
