package domain

const (
	// FirstStep is the step a new session starts on.
	FirstStep = 1
	// TerminalStep is the last displayed step. Completing it starts a step
	// that is never shown.
	TerminalStep = 5
)

// StepDefinition names one processing step.
type StepDefinition struct {
	ID   int    `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

var steps = []StepDefinition{
	{ID: 1, Key: "step1", Name: "Documents"},
	{ID: 2, Key: "step2", Name: "Verification"},
	{ID: 3, Key: "step3", Name: "Payment"},
	{ID: 4, Key: "step4", Name: "Processing"},
	{ID: 5, Key: "step5", Name: "Completed"},
}

// Steps returns the ordered step table.
func Steps() []StepDefinition {
	out := make([]StepDefinition, len(steps))
	copy(out, steps)
	return out
}

// StepByID looks up a displayed step.
func StepByID(id int) (StepDefinition, bool) {
	if id < FirstStep || id > TerminalStep {
		return StepDefinition{}, false
	}
	return steps[id-1], true
}

// TransferType is the vehicle class chosen on the service selection page.
type TransferType struct {
	Key     string `json:"key"`
	Enabled bool   `json:"enabled"`
}

var transferTypes = []TransferType{
	{Key: "motorbike", Enabled: true},
	{Key: "car", Enabled: true},
	{Key: "dual_purpose", Enabled: false},
	{Key: "lorry", Enabled: false},
	{Key: "three_wheeler", Enabled: false},
}

// TransferTypes lists every option in display order.
func TransferTypes() []TransferType {
	out := make([]TransferType, len(transferTypes))
	copy(out, transferTypes)
	return out
}

// LookupTransferType finds an option by key.
func LookupTransferType(key string) (TransferType, bool) {
	for _, t := range transferTypes {
		if t.Key == key {
			return t, true
		}
	}
	return TransferType{}, false
}
