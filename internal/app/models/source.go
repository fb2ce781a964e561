package models

import "time"

// SourceTag identifies the health-record system a clinical record came from
// and when that system's snapshot was fetched.
type SourceTag struct {
	SystemName string    `json:"systemName"`
	SystemID   string    `json:"systemId"`
	FetchedAt  time.Time `json:"fetchedAt"`
}

// Coding is one entry of a record's coded identity, e.g. an RxNorm or LOINC code.
type Coding struct {
	CodeSystem  string `json:"codeSystem"`
	CodeValue   string `json:"codeValue"`
	DisplayText string `json:"displayText,omitempty"`
}

type MergeStatus string

const (
	MergeStatusSingleSource MergeStatus = "single-source"
	MergeStatusConfirmed    MergeStatus = "confirmed"
	MergeStatusConflict     MergeStatus = "conflict"
)

// MergeMetadata is the provenance attached to every record that exits the merge
// engine. AllSources lists every contributing source exactly once and
// MergedFromIDs has one entry per contributing source, in the same order.
// It is never mutated after the engine emits it.
type MergeMetadata struct {
	AllSources    []SourceTag `json:"allSources"`
	MergedFromIDs []string    `json:"mergedFromIds"`
	Status        MergeStatus `json:"mergeStatus"`
}

// SingleSourceMetadata builds the merge metadata for a record that only one
// source reported.
func SingleSourceMetadata(source SourceTag, recordID string) *MergeMetadata {
	return &MergeMetadata{
		AllSources:    []SourceTag{source},
		MergedFromIDs: []string{recordID},
		Status:        MergeStatusSingleSource,
	}
}

// MergedMetadata builds the merge metadata for a record contributed by two
// sources, keeping AllSources and MergedFromIDs index-aligned.
func MergedMetadata(status MergeStatus, sourceA SourceTag, idA string, sourceB SourceTag, idB string) *MergeMetadata {
	return &MergeMetadata{
		AllSources:    []SourceTag{sourceA, sourceB},
		MergedFromIDs: []string{idA, idB},
		Status:        status,
	}
}
