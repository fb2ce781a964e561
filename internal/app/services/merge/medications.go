package merge

import "healthbridge-service/internal/app/models"

// MergeMedications deduplicates medication records across sources. Two records
// match when a code matches or the normalized-name heuristic holds; matched
// pairs merge as confirmed when their doses agree, otherwise they stay merged
// but flagged as a conflict. Records never match inside one source.
func MergeMedications(input []models.Medication) []models.Medication {
	consumed := make([]bool, len(input))
	out := make([]models.Medication, 0, len(input))

	for i := range input {
		if consumed[i] {
			continue
		}
		a := input[i]
		consumed[i] = true

		matched := false
		for j := i + 1; j < len(input); j++ {
			if consumed[j] || sameSource(a.Source, input[j].Source) {
				continue
			}
			b := input[j]
			if !medicationIdentityMatch(a, b) {
				continue
			}
			consumed[j] = true

			status := models.MergeStatusConfirmed
			if !dosesAgree(a, b) {
				status = models.MergeStatusConflict
			}
			merged := a
			merged.Merge = models.MergedMetadata(status, a.Source, a.ID, b.Source, b.ID)
			out = append(out, merged)
			matched = true
			break
		}

		if !matched {
			a.Merge = models.SingleSourceMetadata(a.Source, a.ID)
			out = append(out, a)
		}
	}

	sortMedications(out)
	return out
}

func medicationIdentityMatch(a, b models.Medication) bool {
	if codesMatch(a.Codes, b.Codes) {
		return true
	}
	return MedicationNamesEquivalent(a.Name, b.Name)
}

// dosesAgree compares structured doses when both sides have one, falling back
// to normalized raw dosage text otherwise.
func dosesAgree(a, b models.Medication) bool {
	if a.Dose != nil && b.Dose != nil {
		return a.Dose.Value == b.Dose.Value && a.Dose.Unit == b.Dose.Unit
	}
	return NormalizeDosageText(a.DosageText) == NormalizeDosageText(b.DosageText)
}
