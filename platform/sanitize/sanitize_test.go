package sanitize

import "testing"

func TestText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Nimal   Perera ", "Nimal Perera"},
		{"<b>Kamal</b>", "Kamal"},
		{"&lt;script&gt;alert(1)&lt;/script&gt;ok", "alert(1)ok"},
		{"tom &amp; jerry", "tom & jerry"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Text(tc.in); got != tc.want {
			t.Errorf("Text(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMultiline(t *testing.T) {
	got := Multiline("fast  service\r\n\r\n<i>thanks</i>\n")
	if want := "fast service\nthanks"; got != want {
		t.Errorf("Multiline = %q, want %q", got, want)
	}
}
