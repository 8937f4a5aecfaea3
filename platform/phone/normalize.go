// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is the region used for numbers typed without a country code.
const DefaultRegion = "LK"

// NormalizeE164 formats a phone number to E.164. If parsing fails or the
// number is not valid for the region, it returns the trimmed input so that
// lookups still match whatever was stored.
func NormalizeE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, DefaultRegion)
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

// National formats a stored number back to the local dialling form
// ("077 123 4567"). Unparseable input is returned unchanged.
func National(input string) string {
	number, err := phonenumbers.Parse(input, DefaultRegion)
	if err != nil {
		return input
	}
	return phonenumbers.Format(number, phonenumbers.NATIONAL)
}
