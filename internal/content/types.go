package content

// Table is the full string tree for one language.
type Table struct {
	Header           Header           `yaml:"header" json:"header"`
	CustomerInfo     CustomerInfo     `yaml:"customerInfo" json:"customerInfo"`
	ServiceSelection ServiceSelection `yaml:"serviceSelection" json:"serviceSelection"`
	Documents        Documents        `yaml:"documents" json:"documents"`
	Steps            Steps            `yaml:"steps" json:"steps"`
	Feedback         Feedback         `yaml:"feedback" json:"feedback"`
}

type Header struct {
	Title    string `yaml:"title" json:"title"`
	Subtitle string `yaml:"subtitle" json:"subtitle"`
}

type CustomerInfo struct {
	Title                    string `yaml:"title" json:"title"`
	Subtitle                 string `yaml:"subtitle" json:"subtitle"`
	VehicleNumber            string `yaml:"vehicleNumber" json:"vehicleNumber"`
	VehicleNumberPlaceholder string `yaml:"vehicleNumberPlaceholder" json:"vehicleNumberPlaceholder"`
	FullName                 string `yaml:"fullName" json:"fullName"`
	FullNamePlaceholder      string `yaml:"fullNamePlaceholder" json:"fullNamePlaceholder"`
	ContactNumber            string `yaml:"contactNumber" json:"contactNumber"`
	ContactNumberPlaceholder string `yaml:"contactNumberPlaceholder" json:"contactNumberPlaceholder"`
	ServiceType              string `yaml:"serviceType" json:"serviceType"`
	SelectService            string `yaml:"selectService" json:"selectService"`
	OneDay                   string `yaml:"oneDay" json:"oneDay"`
	Normal                   string `yaml:"normal" json:"normal"`
	Continue                 string `yaml:"continue" json:"continue"`
}

type ServiceSelection struct {
	Title        string `yaml:"title" json:"title"`
	Motorbike    string `yaml:"motorbike" json:"motorbike"`
	Car          string `yaml:"car" json:"car"`
	DualPurpose  string `yaml:"dualPurpose" json:"dualPurpose"`
	Lorry        string `yaml:"lorry" json:"lorry"`
	ThreeWheeler string `yaml:"threeWheeler" json:"threeWheeler"`
	Back         string `yaml:"back" json:"back"`
	Confirm      string `yaml:"confirm" json:"confirm"`
}

type Documents struct {
	Title    string `yaml:"title" json:"title"`
	Subtitle string `yaml:"subtitle" json:"subtitle"`
	Doc1     string `yaml:"doc1" json:"doc1"`
	Doc2     string `yaml:"doc2" json:"doc2"`
	Doc3     string `yaml:"doc3" json:"doc3"`
	Doc4     string `yaml:"doc4" json:"doc4"`
	Doc5     string `yaml:"doc5" json:"doc5"`
	Doc6     string `yaml:"doc6" json:"doc6"`
	Doc7     string `yaml:"doc7" json:"doc7"`
	Next     string `yaml:"next" json:"next"`
	Back     string `yaml:"back" json:"back"`
}

// Item returns the label of checklist document n (1..7), or "" when out of range.
func (d Documents) Item(n int) string {
	items := [...]string{d.Doc1, d.Doc2, d.Doc3, d.Doc4, d.Doc5, d.Doc6, d.Doc7}
	if n < 1 || n > len(items) {
		return ""
	}
	return items[n-1]
}

// StepText is the name and instruction list for one processing step.
type StepText struct {
	Name  string   `yaml:"name" json:"name"`
	Items []string `yaml:"items" json:"items"`
}

type Steps struct {
	Title            string   `yaml:"title" json:"title"`
	CurrentStep      string   `yaml:"currentStep" json:"currentStep"`
	WhatToDo         string   `yaml:"whatToDo" json:"whatToDo"`
	MarkAsDone       string   `yaml:"markAsDone" json:"markAsDone"`
	CompleteThisStep string   `yaml:"completeThisStep" json:"completeThisStep"`
	Completed        string   `yaml:"completed" json:"completed"`
	Step1            StepText `yaml:"step1" json:"step1"`
	Step2            StepText `yaml:"step2" json:"step2"`
	Step3            StepText `yaml:"step3" json:"step3"`
	Step4            StepText `yaml:"step4" json:"step4"`
	Step5            StepText `yaml:"step5" json:"step5"`
}

// Step returns the text for step id (1..5).
func (s Steps) Step(id int) (StepText, bool) {
	switch id {
	case 1:
		return s.Step1, true
	case 2:
		return s.Step2, true
	case 3:
		return s.Step3, true
	case 4:
		return s.Step4, true
	case 5:
		return s.Step5, true
	}
	return StepText{}, false
}

type Feedback struct {
	Title       string `yaml:"title" json:"title"`
	Subtitle    string `yaml:"subtitle" json:"subtitle"`
	Placeholder string `yaml:"placeholder" json:"placeholder"`
	Submit      string `yaml:"submit" json:"submit"`
	ThankYou    string `yaml:"thankYou" json:"thankYou"`
}
