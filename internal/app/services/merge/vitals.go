package merge

import "healthbridge-service/internal/app/models"

// MergeVitals deduplicates vital signs across sources. Two readings are the
// same observation when they share a vital type and fall within 24 hours.
// Like lab results, divergent values are kept apart as two single-source
// records rather than flagged.
func MergeVitals(input []models.Vital) []models.Vital {
	consumed := make([]bool, len(input))
	out := make([]models.Vital, 0, len(input))

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
			if a.Type != b.Type || !withinWindow(a.EffectiveDate, b.EffectiveDate, LabVitalWindow) {
				continue
			}
			if !vitalValuesEqual(a, b) {
				break
			}
			consumed[j] = true
			merged := a
			merged.Merge = models.MergedMetadata(models.MergeStatusConfirmed, a.Source, a.ID, b.Source, b.ID)
			out = append(out, merged)
			matched = true
			break
		}

		if !matched {
			a.Merge = models.SingleSourceMetadata(a.Source, a.ID)
			out = append(out, a)
		}
	}

	sortVitals(out)
	return out
}

// vitalValuesEqual compares every sub-component of compound vitals such as
// blood pressure; simple vitals compare the single value.
func vitalValuesEqual(a, b models.Vital) bool {
	if len(a.Components) > 0 || len(b.Components) > 0 {
		if len(a.Components) != len(b.Components) {
			return false
		}
		for i := range a.Components {
			if a.Components[i].Name != b.Components[i].Name || a.Components[i].Value != b.Components[i].Value {
				return false
			}
		}
		return true
	}
	if a.Value == nil || b.Value == nil {
		return a.Value == nil && b.Value == nil
	}
	return *a.Value == *b.Value
}
