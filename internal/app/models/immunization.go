package models

import "time"

// Immunization is one vaccine administration as reported by exactly one source.
type Immunization struct {
	ID             string         `json:"id"`
	Codes          []Coding       `json:"codes,omitempty"`
	VaccineName    string         `json:"vaccineName"`
	Status         string         `json:"status,omitempty"`
	OccurrenceDate *time.Time     `json:"occurrenceDate,omitempty"`
	Source         SourceTag      `json:"source"`
	Merge          *MergeMetadata `json:"merge,omitempty"`
}
