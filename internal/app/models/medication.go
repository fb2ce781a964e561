package models

import "time"

// DoseSpec is the structured dose of a medication, when the source reported one.
type DoseSpec struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Medication is one medication record as reported by exactly one source.
// Records are immutable once fetched; a new fetch produces a new generation.
type Medication struct {
	ID         string         `json:"id"`
	Codes      []Coding       `json:"codes,omitempty"`
	Name       string         `json:"name"`
	Status     string         `json:"status"`
	Dose       *DoseSpec      `json:"dose,omitempty"`
	DosageText string         `json:"dosageText,omitempty"`
	Route      string         `json:"route,omitempty"`
	AuthoredOn *time.Time     `json:"authoredOn,omitempty"`
	Source     SourceTag      `json:"source"`
	Merge      *MergeMetadata `json:"merge,omitempty"`
}

const (
	MedicationStatusActive    = "active"
	MedicationStatusCompleted = "completed"
	MedicationStatusOnHold    = "on-hold"
	MedicationStatusStopped   = "stopped"
)

// IsActive reports whether the medication is currently being taken.
func (m Medication) IsActive() bool {
	return m.Status == MedicationStatusActive
}
