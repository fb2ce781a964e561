package merge

import "healthbridge-service/internal/app/models"

// MergeEncounters performs no deduplication: every visit is its own event, so
// each record is kept and tagged single-source.
func MergeEncounters(input []models.Encounter) []models.Encounter {
	out := make([]models.Encounter, 0, len(input))
	for _, e := range input {
		e.Merge = models.SingleSourceMetadata(e.Source, e.ID)
		out = append(out, e)
	}
	sortEncounters(out)
	return out
}
