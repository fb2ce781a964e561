package models

import "time"

// Encounter is one visit record as reported by exactly one source. Encounters
// are never deduplicated across sources; every one is kept as single-source.
type Encounter struct {
	ID        string         `json:"id"`
	Codes     []Coding       `json:"codes,omitempty"`
	Type      string         `json:"type,omitempty"`
	Reason    string         `json:"reason,omitempty"`
	Provider  string         `json:"provider,omitempty"`
	StartTime *time.Time     `json:"startTime,omitempty"`
	EndTime   *time.Time     `json:"endTime,omitempty"`
	Source    SourceTag      `json:"source"`
	Merge     *MergeMetadata `json:"merge,omitempty"`
}
