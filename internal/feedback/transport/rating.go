package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Faces shown on the feedback page and the rating each one stores.
var faceRatings = map[string]int{
	"bad":     1,
	"neutral": 3,
	"good":    5,
}

// Rating is a 1..5 score. In JSON it may be a number, a numeric string, or
// one of the faces "bad", "neutral", "good".
type Rating int

// ParseRating accepts a face name or a number from 1 to 5.
func ParseRating(s string) (Rating, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if v, ok := faceRatings[s]; ok {
		return Rating(v), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("rating must be bad, neutral, good or 1-5")
	}
	return checked(n)
}

func checked(n int) (Rating, error) {
	if n < 1 || n > 5 {
		return 0, fmt.Errorf("rating must be between 1 and 5")
	}
	return Rating(n), nil
}

func (r *Rating) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := ParseRating(s)
		if err != nil {
			return err
		}
		*r = v
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("rating must be bad, neutral, good or 1-5")
	}
	v, err := checked(n)
	if err != nil {
		return err
	}
	*r = v
	return nil
}
