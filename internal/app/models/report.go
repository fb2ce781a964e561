package models

import "time"

// Source inclusion states on a reconciliation report. Exclusion is always
// explicit: a secondary source that failed the identity gate is reported as
// excluded with its confidence, never silently dropped.
const (
	SourceStateIncluded = "included"
	SourceStateExcluded = "excluded"
	SourceStateFailed   = "failed"
)

// SourceStatus is the per-source outcome of one reconciliation run.
type SourceStatus struct {
	SourceID        string   `json:"sourceId" bson:"source_id"`
	SourceName      string   `json:"sourceName" bson:"source_name"`
	State           string   `json:"state" bson:"state"`
	RecordCount     int      `json:"recordCount" bson:"record_count"`
	MatchConfidence *float64 `json:"matchConfidence,omitempty" bson:"match_confidence,omitempty"`
	Detail          string   `json:"detail,omitempty" bson:"detail,omitempty"`
}

// ReconciliationReport is the complete output of one pipeline run: the unified
// record, the detected conflicts, the Tier-1 insights, and the per-source
// audit trail.
type ReconciliationReport struct {
	RunID       string         `json:"runId" bson:"run_id"`
	PatientID   string         `json:"patientId" bson:"patient_id"`
	GeneratedAt time.Time      `json:"generatedAt" bson:"generated_at"`
	Sources     []SourceStatus `json:"sources" bson:"sources"`
	Merged      MergeResult    `json:"merged" bson:"merged"`
	Conflicts   []Conflict     `json:"conflicts" bson:"conflicts"`
	Insights    InsightBundle  `json:"insights" bson:"insights"`
}

// IncludedSourceCount reports how many sources contributed records to the
// merged view.
func (r ReconciliationReport) IncludedSourceCount() int {
	count := 0
	for _, s := range r.Sources {
		if s.State == SourceStateIncluded {
			count++
		}
	}
	return count
}

// CriticalConflicts returns the conflicts of critical severity, used by the
// alert publisher.
func (r ReconciliationReport) CriticalConflicts() []Conflict {
	var out []Conflict
	for _, c := range r.Conflicts {
		if c.Severity == ConflictSeverityCritical {
			out = append(out, c)
		}
	}
	return out
}
