package models

// SourceSnapshot is the complete set of records one source reported for the
// patient at fetch time. A source that failed to respond contributes an empty
// snapshot rather than aborting the run.
type SourceSnapshot struct {
	Source        SourceTag      `json:"source"`
	Demographics  *Demographics  `json:"demographics,omitempty"`
	Medications   []Medication   `json:"medications,omitempty"`
	LabResults    []LabResult    `json:"labResults,omitempty"`
	Vitals        []Vital        `json:"vitals,omitempty"`
	Allergies     []Allergy      `json:"allergies,omitempty"`
	Conditions    []Condition    `json:"conditions,omitempty"`
	Immunizations []Immunization `json:"immunizations,omitempty"`
	Encounters    []Encounter    `json:"encounters,omitempty"`
}

// MergeResult is the unified view of all included sources, one deduplicated
// array per domain, every record carrying its merge metadata.
// AbsenceSources lists the sources whose allergy data consisted solely of
// "no known allergies" markers; it feeds only the conflict detector.
type MergeResult struct {
	Medications    []Medication   `json:"medications"`
	LabResults     []LabResult    `json:"labResults"`
	Vitals         []Vital        `json:"vitals"`
	Allergies      []Allergy      `json:"allergies"`
	Conditions     []Condition    `json:"conditions"`
	Immunizations  []Immunization `json:"immunizations"`
	Encounters     []Encounter    `json:"encounters"`
	AbsenceSources []SourceTag    `json:"allergyAbsenceSources"`
}
