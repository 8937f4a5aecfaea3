package domain

import (
	"fmt"

	"dmt_kiosk_backend/platform/apperr"
)

// ChecklistSize is the number of documents a customer must tick.
const ChecklistSize = 7

// Checklist tracks which required documents the customer has ticked.
// Index 0 is document 1.
type Checklist [ChecklistSize]bool

// Toggle flips document doc (1..7) and returns its new state.
func (c *Checklist) Toggle(doc int) (bool, error) {
	if doc < 1 || doc > ChecklistSize {
		return false, apperr.Validation(fmt.Sprintf("document must be between 1 and %d", ChecklistSize))
	}
	c[doc-1] = !c[doc-1]
	return c[doc-1], nil
}

// Checked counts the ticked documents.
func (c Checklist) Checked() int {
	n := 0
	for _, v := range c {
		if v {
			n++
		}
	}
	return n
}

// AllChecked gates the Next button.
func (c Checklist) AllChecked() bool {
	return c.Checked() == ChecklistSize
}
