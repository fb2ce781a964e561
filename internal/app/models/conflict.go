package models

type ConflictType string

const (
	ConflictTypeAllergyGap             ConflictType = "allergy-gap"
	ConflictTypeAllergyPrescription    ConflictType = "allergy-prescription"
	ConflictTypeDoseMismatch           ConflictType = "dose-mismatch"
	ConflictTypeMissingCrossref        ConflictType = "missing-crossref"
	ConflictTypeContradictoryCondition ConflictType = "contradictory-condition"
)

type ConflictSeverity string

const (
	ConflictSeverityCritical ConflictSeverity = "critical"
	ConflictSeverityHigh     ConflictSeverity = "high"
	ConflictSeverityMedium   ConflictSeverity = "medium"
)

// ConflictResource points at one of the source records that produced a conflict.
type ConflictResource struct {
	Domain   string    `json:"domain"`
	RecordID string    `json:"recordId"`
	Display  string    `json:"display"`
	Source   SourceTag `json:"source"`
}

// Conflict is a derived safety alert about a cross-source disagreement, not a
// clinical fact. Conflicts are regenerated in full on every pipeline run; the
// id is sequential within one run only.
type Conflict struct {
	ID          string             `json:"id"`
	Type        ConflictType       `json:"type"`
	Severity    ConflictSeverity   `json:"severity"`
	Description string             `json:"description"`
	Resources   []ConflictResource `json:"resources"`
	SourceA     SourceTag          `json:"sourceA"`
	SourceB     SourceTag          `json:"sourceB"`
}
