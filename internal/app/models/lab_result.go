package models

import "time"

// ReferenceRange is the normal interval the reporting lab attached to a result.
type ReferenceRange struct {
	Low  *float64 `json:"low,omitempty"`
	High *float64 `json:"high,omitempty"`
}

// LabResult is one laboratory observation as reported by exactly one source.
type LabResult struct {
	ID            string          `json:"id"`
	Codes         []Coding        `json:"codes,omitempty"`
	TestName      string          `json:"testName"`
	Value         *float64        `json:"value,omitempty"`
	ValueText     string          `json:"valueText,omitempty"`
	Unit          string          `json:"unit,omitempty"`
	Reference     *ReferenceRange `json:"referenceRange,omitempty"`
	EffectiveDate *time.Time      `json:"effectiveDate,omitempty"`
	Source        SourceTag       `json:"source"`
	Merge         *MergeMetadata  `json:"merge,omitempty"`
}
