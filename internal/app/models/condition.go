package models

import "time"

// Condition is one problem-list entry as reported by exactly one source.
type Condition struct {
	ID             string         `json:"id"`
	Codes          []Coding       `json:"codes,omitempty"`
	Name           string         `json:"name"`
	ClinicalStatus string         `json:"clinicalStatus"`
	OnsetDate      *time.Time     `json:"onsetDate,omitempty"`
	RecordedDate   *time.Time     `json:"recordedDate,omitempty"`
	Source         SourceTag      `json:"source"`
	Merge          *MergeMetadata `json:"merge,omitempty"`

	// DuplicateIDs holds ids of same-source repeats collapsed into this record
	// before cross-source matching, so no input id is ever lost.
	DuplicateIDs []string `json:"duplicateIds,omitempty"`
}

const (
	ConditionStatusActive   = "active"
	ConditionStatusResolved = "resolved"
	ConditionStatusInactive = "inactive"
)

// IsActive reports whether the condition is on the active problem list.
func (c Condition) IsActive() bool {
	return c.ClinicalStatus == ConditionStatusActive
}

// BestDate is the date used when choosing the kept representative of a
// conflicting pair: the onset date when present, else the recorded date.
func (c Condition) BestDate() *time.Time {
	if c.OnsetDate != nil {
		return c.OnsetDate
	}
	return c.RecordedDate
}
