package models

import "time"

// Allergy is one allergy or intolerance record as reported by exactly one
// source. Records whose substance text is an absence marker ("NKDA", "Not on
// File", an empty string) are not real allergies; the merge engine filters
// them into a separate absence-source bucket before matching.
type Allergy struct {
	ID           string         `json:"id"`
	Codes        []Coding       `json:"codes,omitempty"`
	Substance    string         `json:"substance"`
	Criticality  string         `json:"criticality,omitempty"`
	Reaction     string         `json:"reaction,omitempty"`
	RecordedDate *time.Time     `json:"recordedDate,omitempty"`
	Source       SourceTag      `json:"source"`
	Merge        *MergeMetadata `json:"merge,omitempty"`
}
