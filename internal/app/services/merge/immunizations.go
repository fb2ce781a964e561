package merge

import "healthbridge-service/internal/app/models"

// MergeImmunizations deduplicates vaccine administrations across sources. Two
// records are the same administration when a code or normalized vaccine name
// matches and the occurrence dates fall within 30 days; a match is always a
// confirmation.
func MergeImmunizations(input []models.Immunization) []models.Immunization {
	consumed := make([]bool, len(input))
	out := make([]models.Immunization, 0, len(input))

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
			if !immunizationIdentityMatch(a, b) {
				continue
			}
			if !withinWindow(a.OccurrenceDate, b.OccurrenceDate, ImmunizationWindow) {
				continue
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

	sortImmunizations(out)
	return out
}

func immunizationIdentityMatch(a, b models.Immunization) bool {
	if codesMatch(a.Codes, b.Codes) {
		return true
	}
	na, nb := NormalizeVaccineName(a.VaccineName), NormalizeVaccineName(b.VaccineName)
	return na != "" && na == nb
}
