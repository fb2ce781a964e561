package models

import "time"

// LabAbnormalFlag marks one lab value that falls outside its resolved
// reference range.
type LabAbnormalFlag struct {
	LabID     string   `json:"labId"`
	TestName  string   `json:"testName"`
	Value     float64  `json:"value"`
	Unit      string   `json:"unit,omitempty"`
	Status    string   `json:"status"`
	RangeLow  *float64 `json:"rangeLow,omitempty"`
	RangeHigh *float64 `json:"rangeHigh,omitempty"`
	Message   string   `json:"message"`
}

const (
	LabFlagNormal       = "normal"
	LabFlagHigh         = "high"
	LabFlagLow          = "low"
	LabFlagCriticalHigh = "critical-high"
	LabFlagCriticalLow  = "critical-low"
)

// LabTrend is the direction of one lab series across all merged readings.
type LabTrend struct {
	TestName      string    `json:"testName"`
	Code          string    `json:"code,omitempty"`
	Direction     string    `json:"direction"`
	PercentChange float64   `json:"percentChange"`
	ReadingCount  int       `json:"readingCount"`
	SpanDays      int       `json:"spanDays"`
	FirstValue    float64   `json:"firstValue"`
	LastValue     float64   `json:"lastValue"`
	LastDate      time.Time `json:"lastDate"`
	Message       string    `json:"message"`
}

const (
	TrendStable  = "stable"
	TrendRising  = "rising"
	TrendFalling = "falling"
)

// CareGap is one preventive-care action that guideline rules say is due or
// overdue for this patient.
type CareGap struct {
	RuleID      string     `json:"ruleId"`
	Name        string     `json:"name"`
	Priority    string     `json:"priority"`
	Overdue     bool       `json:"overdue"`
	LastDone    *time.Time `json:"lastDone,omitempty"`
	DueSince    *time.Time `json:"dueSince,omitempty"`
	Description string     `json:"description"`
}

// DrugInteraction is one clinically significant pairing of two active
// medications from the fixed interaction table.
type DrugInteraction struct {
	MedicationA string `json:"medicationA"`
	MedicationB string `json:"medicationB"`
	MedAID      string `json:"medAId"`
	MedBID      string `json:"medBId"`
	Severity    string `json:"severity"`
	Effect      string `json:"effect"`
}

// SourceConflictAlert is the patient-facing rendering of one detected conflict.
type SourceConflictAlert struct {
	ConflictID  string `json:"conflictId"`
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
	ActionItem  string `json:"actionItem"`
	Severity    string `json:"severity"`
}

// VitalCorrelation links a vital-sign reading to an active medication that is
// expected to influence it.
type VitalCorrelation struct {
	RuleID       string `json:"ruleId"`
	VitalID      string `json:"vitalId"`
	VitalType    string `json:"vitalType"`
	MedicationID string `json:"medicationId,omitempty"`
	Medication   string `json:"medication,omitempty"`
	Kind         string `json:"kind"`
	Significance string `json:"significance"`
	Message      string `json:"message"`
}

// InsightBundle is the combined Tier-1 output for one run.
type InsightBundle struct {
	AbnormalFlags     []LabAbnormalFlag     `json:"abnormalFlags"`
	Trends            []LabTrend            `json:"trends"`
	CareGaps          []CareGap             `json:"careGaps"`
	Interactions      []DrugInteraction     `json:"interactions"`
	ConflictAlerts    []SourceConflictAlert `json:"conflictAlerts"`
	VitalCorrelations []VitalCorrelation    `json:"vitalCorrelations"`
}
