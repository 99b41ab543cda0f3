package usecase

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty input", input: "", want: []string{}},
		{name: "whitespace only", input: " \t\n ", want: []string{}},
		{name: "lowercases", input: "Coffee", want: []string{"coffee"}},
		{name: "splits on runs of whitespace", input: "  Cast   Iron\tPan ", want: []string{"cast", "iron", "pan"}},
		{name: "keeps punctuation", input: "pour-over, v60", want: []string{"pour-over,", "v60"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.input)
			if got == nil {
				t.Fatal("Normalize returned nil")
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Normalize(%q) mismatch (-want +got):\n%s", tc.input, diff)
			}
		})
	}
}
