package models

// Demographics is the identity record of one source's patient, used only by
// the patient matcher. Medical record numbers legitimately differ across
// systems and are never compared.
type Demographics struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
	Gender    string `json:"gender,omitempty"`
	MRN       string `json:"mrn,omitempty"`
}

// MatchResult is the outcome of scoring two demographic records against each
// other. Conflicts lists human-readable mismatches for fields present on both
// sides that disagreed, for audit display.
type MatchResult struct {
	IsMatch    bool     `json:"isMatch"`
	Confidence float64  `json:"confidence"`
	MatchedOn  []string `json:"matchedOn"`
	Conflicts  []string `json:"conflicts"`
}
