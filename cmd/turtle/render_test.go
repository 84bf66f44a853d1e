package main

import (
	"reflect"
	"testing"
)

func TestSplitKeys(t *testing.T) {
	tests := []struct {
		in       string
		expected []string
	}{
		{"", nil},
		{"space", []string{"space"}},
		{"space, Right ,down", []string{"space", "right", "down"}},
		{" ,left", []string{"space", "left"}},
	}

	for _, tc := range tests {
		if got := splitKeys(tc.in); !reflect.DeepEqual(got, tc.expected) {
			t.Errorf("splitKeys(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}
