package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFirstInt(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"5 available", 5, true},
		{"only 12 left", 12, true},
		{"42", 42, true},
		{"out of stock", 0, false},
		{"", 0, false},
		{"3 of 10", 3, true},
	}

	for _, tc := range cases {
		got, ok := ExtractFirstInt(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got, "input %q", tc.in)
		}
	}
}
