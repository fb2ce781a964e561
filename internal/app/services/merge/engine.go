package merge

import (
	"time"

	"healthbridge-service/internal/app/models"
)

// Time windows inside which two dated records from different sources may be
// considered the same event. Part of the behavioral contract.
const (
	LabVitalWindow     = 24 * time.Hour
	ImmunizationWindow = 30 * 24 * time.Hour
)

// Run combines the snapshots of every included source into one unified view
// per domain. It is pure and deterministic for a given ordered input: no I/O,
// no clock reads, no external errors. Bad or missing fields degrade to
// single-source output, never to a dropped record.
func Run(snapshots []models.SourceSnapshot) models.MergeResult {
	var meds []models.Medication
	var labs []models.LabResult
	var vitals []models.Vital
	var allergies []models.Allergy
	var conditions []models.Condition
	var immunizations []models.Immunization
	var encounters []models.Encounter

	for _, snap := range snapshots {
		meds = append(meds, snap.Medications...)
		labs = append(labs, snap.LabResults...)
		vitals = append(vitals, snap.Vitals...)
		allergies = append(allergies, snap.Allergies...)
		conditions = append(conditions, snap.Conditions...)
		immunizations = append(immunizations, snap.Immunizations...)
		encounters = append(encounters, snap.Encounters...)
	}

	mergedAllergies, absenceSources := MergeAllergies(allergies)

	return models.MergeResult{
		Medications:    MergeMedications(meds),
		LabResults:     MergeLabResults(labs),
		Vitals:         MergeVitals(vitals),
		Allergies:      mergedAllergies,
		Conditions:     MergeConditions(conditions),
		Immunizations:  MergeImmunizations(immunizations),
		Encounters:     MergeEncounters(encounters),
		AbsenceSources: absenceSources,
	}
}

// withinWindow reports whether two timestamps fall inside the given window.
// A record missing its date never matches on time; it still gets emitted as
// single-source.
func withinWindow(a, b *time.Time, window time.Duration) bool {
	if a == nil || b == nil {
		return false
	}
	diff := a.Sub(*b)
	if diff < 0 {
		diff = -diff
	}
	return diff <= window
}

// codesMatch reports whether two coded identities share at least one
// system+value pair.
func codesMatch(a, b []models.Coding) bool {
	for _, ca := range a {
		if ca.CodeValue == "" {
			continue
		}
		for _, cb := range b {
			if cb.CodeValue == "" {
				continue
			}
			if ca.CodeSystem == cb.CodeSystem && ca.CodeValue == cb.CodeValue {
				return true
			}
		}
	}
	return false
}

func sameSource(a, b models.SourceTag) bool {
	return a.SystemID == b.SystemID
}
