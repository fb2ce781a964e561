package merge

import (
	"sort"
	"strings"
	"time"

	"healthbridge-service/internal/app/models"
)

// Output ordering is part of the contract: medications and conditions list
// active entries first then alphabetical; dated domains list most recent
// first. Undated records always sort last, never first.

func sortMedications(meds []models.Medication) {
	sort.SliceStable(meds, func(i, j int) bool {
		ai, aj := meds[i].IsActive(), meds[j].IsActive()
		if ai != aj {
			return ai
		}
		return strings.ToLower(meds[i].Name) < strings.ToLower(meds[j].Name)
	})
}

func sortLabResults(labs []models.LabResult) {
	sort.SliceStable(labs, func(i, j int) bool {
		return dateAfter(labs[i].EffectiveDate, labs[j].EffectiveDate)
	})
}

func sortVitals(vitals []models.Vital) {
	sort.SliceStable(vitals, func(i, j int) bool {
		return dateAfter(vitals[i].EffectiveDate, vitals[j].EffectiveDate)
	})
}

func sortAllergies(allergies []models.Allergy) {
	sort.SliceStable(allergies, func(i, j int) bool {
		return strings.ToLower(allergies[i].Substance) < strings.ToLower(allergies[j].Substance)
	})
}

func sortConditions(conditions []models.Condition) {
	sort.SliceStable(conditions, func(i, j int) bool {
		ai, aj := conditions[i].IsActive(), conditions[j].IsActive()
		if ai != aj {
			return ai
		}
		return strings.ToLower(conditions[i].Name) < strings.ToLower(conditions[j].Name)
	})
}

func sortImmunizations(immunizations []models.Immunization) {
	sort.SliceStable(immunizations, func(i, j int) bool {
		return dateAfter(immunizations[i].OccurrenceDate, immunizations[j].OccurrenceDate)
	})
}

func sortEncounters(encounters []models.Encounter) {
	sort.SliceStable(encounters, func(i, j int) bool {
		return dateAfter(encounters[i].StartTime, encounters[j].StartTime)
	})
}

func sortSourceTags(tags []models.SourceTag) {
	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].SystemID < tags[j].SystemID
	})
}

// dateAfter orders most-recent-first with nil dates last.
func dateAfter(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.After(*b)
}
