package transport

import (
	"encoding/json"
	"testing"
)

func TestRatingUnmarshal(t *testing.T) {
	cases := []struct {
		in      string
		want    Rating
		wantErr bool
	}{
		{`"bad"`, 1, false},
		{`"neutral"`, 3, false},
		{`"Good"`, 5, false},
		{`4`, 4, false},
		{`"2"`, 2, false},
		{`0`, 0, true},
		{`6`, 0, true},
		{`"great"`, 0, true},
		{`3.5`, 0, true},
		{`null`, 0, false},
	}
	for _, tc := range cases {
		var r Rating
		err := json.Unmarshal([]byte(tc.in), &r)
		if (err != nil) != tc.wantErr {
			t.Errorf("%s: err = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if err == nil && r != tc.want {
			t.Errorf("%s: rating = %d, want %d", tc.in, r, tc.want)
		}
	}
}
