package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0771234567", "+94771234567"},
		{"771234567", "+94771234567"},
		{" 0771234567 ", "+94771234567"},
		{"+94771234567", "+94771234567"},
		{"", ""},
		{"abc", "abc"},
	}

	for _, tc := range cases {
		if got := NormalizeE164(tc.in); got != tc.want {
			t.Errorf("NormalizeE164(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
