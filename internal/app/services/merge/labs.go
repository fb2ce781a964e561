package merge

import "healthbridge-service/internal/app/models"

// MergeLabResults deduplicates lab results across sources. Two results are the
// same observation when a code matches and the effective dates fall within 24
// hours. Identical values merge as confirmed; differing values are both kept
// as separate single-source records, because two different values at the same
// time from different systems is clinically real, not an error.
func MergeLabResults(input []models.LabResult) []models.LabResult {
	consumed := make([]bool, len(input))
	out := make([]models.LabResult, 0, len(input))

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
			if !codesMatch(a.Codes, b.Codes) || !withinWindow(a.EffectiveDate, b.EffectiveDate, LabVitalWindow) {
				continue
			}
			if !labValuesEqual(a, b) {
				// Divergent values stay apart; b keeps its own turn.
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

	sortLabResults(out)
	return out
}

func labValuesEqual(a, b models.LabResult) bool {
	if a.Value != nil && b.Value != nil {
		return *a.Value == *b.Value
	}
	if a.Value == nil && b.Value == nil {
		return a.ValueText == b.ValueText
	}
	return false
}
