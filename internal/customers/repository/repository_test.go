package repository

import "testing"

func TestContainsPatternEscapesWildcards(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"perera", `%perera%`},
		{"_", `%\_%`},
		{"100%", `%100\%%`},
		{`a\b`, `%a\\b%`},
	}

	for _, tc := range cases {
		if got := containsPattern(tc.in); got != tc.want {
			t.Errorf("containsPattern(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
