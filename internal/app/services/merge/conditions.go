package merge

import "healthbridge-service/internal/app/models"

// MergeConditions deduplicates problem-list entries across sources. Repeats
// inside one source are collapsed first; the collapsed ids ride along on the
// representative so no input id is lost. Cross-source matches with the same
// clinical status merge as confirmed; disagreeing statuses merge as a
// conflict, keeping the record with the more recent date as representative.
func MergeConditions(input []models.Condition) []models.Condition {
	deduped := collapseSameSourceRepeats(input)

	consumed := make([]bool, len(deduped))
	out := make([]models.Condition, 0, len(deduped))

	for i := range deduped {
		if consumed[i] {
			continue
		}
		a := deduped[i]
		consumed[i] = true

		matched := false
		for j := i + 1; j < len(deduped); j++ {
			if consumed[j] || sameSource(a.Source, deduped[j].Source) {
				continue
			}
			b := deduped[j]
			if !codesMatch(a.Codes, b.Codes) {
				continue
			}
			consumed[j] = true

			status := models.MergeStatusConfirmed
			representative := a
			if a.ClinicalStatus != b.ClinicalStatus {
				status = models.MergeStatusConflict
				representative = newerCondition(a, b)
			}
			merged := representative
			merged.DuplicateIDs = append(append([]string{}, a.DuplicateIDs...), b.DuplicateIDs...)
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

	sortConditions(out)
	return out
}

// collapseSameSourceRepeats keeps one representative per code within each
// source, preferring the most recently dated repeat and recording the
// collapsed ids on the representative.
func collapseSameSourceRepeats(input []models.Condition) []models.Condition {
	consumed := make([]bool, len(input))
	out := make([]models.Condition, 0, len(input))

	for i := range input {
		if consumed[i] {
			continue
		}
		keep := input[i]
		consumed[i] = true

		for j := i + 1; j < len(input); j++ {
			if consumed[j] || !sameSource(keep.Source, input[j].Source) {
				continue
			}
			if !codesMatch(keep.Codes, input[j].Codes) {
				continue
			}
			dup := input[j]
			consumed[j] = true
			if newerCondition(keep, dup).ID == dup.ID {
				dup.DuplicateIDs = append(append([]string{}, dup.DuplicateIDs...), keep.ID)
				dup.DuplicateIDs = append(dup.DuplicateIDs, keep.DuplicateIDs...)
				keep = dup
			} else {
				keep.DuplicateIDs = append(keep.DuplicateIDs, dup.ID)
				keep.DuplicateIDs = append(keep.DuplicateIDs, dup.DuplicateIDs...)
			}
		}
		out = append(out, keep)
	}
	return out
}

func newerCondition(a, b models.Condition) models.Condition {
	da, db := a.BestDate(), b.BestDate()
	if da == nil {
		return b
	}
	if db == nil {
		return a
	}
	if db.After(*da) {
		return b
	}
	return a
}
