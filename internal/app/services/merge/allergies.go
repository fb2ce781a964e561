package merge

import "healthbridge-service/internal/app/models"

// MergeAllergies deduplicates real allergies across sources and extracts
// absence markers into a separate source list. An identity match (code or
// normalized substance) is always a confirmation; there is no value to
// disagree on beyond the identity itself.
//
// A source appears in the returned absence list only when it reported an
// absence marker and contributed no real allergy of its own.
func MergeAllergies(input []models.Allergy) ([]models.Allergy, []models.SourceTag) {
	var real []models.Allergy
	absenceReported := map[string]models.SourceTag{}
	hasReal := map[string]bool{}

	for _, a := range input {
		if IsAbsenceMarker(a.Substance) {
			absenceReported[a.Source.SystemID] = a.Source
			continue
		}
		hasReal[a.Source.SystemID] = true
		real = append(real, a)
	}

	consumed := make([]bool, len(real))
	out := make([]models.Allergy, 0, len(real))

	for i := range real {
		if consumed[i] {
			continue
		}
		a := real[i]
		consumed[i] = true

		matched := false
		for j := i + 1; j < len(real); j++ {
			if consumed[j] || sameSource(a.Source, real[j].Source) {
				continue
			}
			b := real[j]
			if !allergyIdentityMatch(a, b) {
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

	var absenceSources []models.SourceTag
	for id, tag := range absenceReported {
		if !hasReal[id] {
			absenceSources = append(absenceSources, tag)
		}
	}
	sortSourceTags(absenceSources)

	sortAllergies(out)
	return out, absenceSources
}

func allergyIdentityMatch(a, b models.Allergy) bool {
	if codesMatch(a.Codes, b.Codes) {
		return true
	}
	na, nb := NormalizeSubstance(a.Substance), NormalizeSubstance(b.Substance)
	return na != "" && na == nb
}
