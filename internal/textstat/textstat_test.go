package textstat_test

import (
	"testing"

	"github.com/petasbytes/nanda-agents/internal/textstat"
)

func TestCount(t *testing.T) {
	cases := []struct {
		in   string
		want textstat.Features
	}{
		{"", textstat.Features{}},
		{"hello", textstat.Features{Bytes: 5, Runes: 5, Words: 1}},
		{"hello there", textstat.Features{Bytes: 11, Runes: 11, Words: 2}},
		{"héllo", textstat.Features{Bytes: 6, Runes: 5, Words: 1}},
		{"  spaced\tout  ", textstat.Features{Bytes: 14, Runes: 14, Words: 2}},
	}
	for _, tc := range cases {
		if got := textstat.Count(tc.in); got != tc.want {
			t.Fatalf("Count(%q): got %+v want %+v", tc.in, got, tc.want)
		}
	}
}
