package models

import "time"

// VitalComponent is one sub-reading of a compound vital, e.g. the systolic and
// diastolic components of a blood pressure.
type VitalComponent struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// Vital is one vital-sign observation as reported by exactly one source.
// Simple vitals carry Value; compound vitals carry Components instead.
type Vital struct {
	ID            string           `json:"id"`
	Type          string           `json:"type"`
	Value         *float64         `json:"value,omitempty"`
	Unit          string           `json:"unit,omitempty"`
	Components    []VitalComponent `json:"components,omitempty"`
	EffectiveDate *time.Time       `json:"effectiveDate,omitempty"`
	Source        SourceTag        `json:"source"`
	Merge         *MergeMetadata   `json:"merge,omitempty"`
}

const (
	VitalTypeBloodPressure = "blood-pressure"
	VitalTypeHeartRate     = "heart-rate"
	VitalTypeWeight        = "weight"
	VitalTypeBMI           = "bmi"
	VitalTypeTemperature   = "temperature"
	VitalTypeOxygenSat     = "oxygen-saturation"
)
