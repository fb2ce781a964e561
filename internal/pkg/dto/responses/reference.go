package responses

// InteractionRule is the read-only view of one drug interaction table entry.
// Patterns are rendered as their regular-expression source text.
type InteractionRule struct {
	ID       string `json:"id"`
	PatternA string `json:"patternA"`
	PatternB string `json:"patternB"`
	Severity string `json:"severity"`
	Effect   string `json:"effect"`
}

// CareGapRule is the read-only view of one preventive-care rule.
type CareGapRule struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	BasePriority   string `json:"basePriority"`
	IntervalMonths int    `json:"intervalMonths"`
}

// CrossReactivityEntry is the read-only view of one allergy cross-reactivity
// class.
type CrossReactivityEntry struct {
	Class      string   `json:"class"`
	Substances []string `json:"substances"`
	Drugs      []string `json:"drugs"`
	Note       string   `json:"note"`
}
