package conflicts

import (
	"testing"
	"time"

	"healthbridge-service/internal/app/models"

	"github.com/stretchr/testify/assert"
)

var (
	sourceA = models.SourceTag{SystemName: "General Hospital", SystemID: "gh", FetchedAt: time.Now()}
	sourceB = models.SourceTag{SystemName: "Community Clinic", SystemID: "cc", FetchedAt: time.Now()}
)

func singleSource(source models.SourceTag, id string) *models.MergeMetadata {
	return models.SingleSourceMetadata(source, id)
}

func TestDetectAllergyPrescription(t *testing.T) {
	allSources := []models.SourceTag{sourceA, sourceB}

	t.Run("Cross Source Pair Is Critical", func(t *testing.T) {
		result := models.MergeResult{
			Allergies: []models.Allergy{
				{ID: "gh-a1", Substance: "Penicillin", Criticality: "high", Source: sourceA,
					Merge: singleSource(sourceA, "gh-a1")},
			},
			Medications: []models.Medication{
				{ID: "cc-m1", Name: "Amoxicillin 500mg", Status: "active", Source: sourceB,
					Merge: singleSource(sourceB, "cc-m1")},
			},
		}

		found := Detect(result, allSources)

		var prescriptions []models.Conflict
		for _, c := range found {
			if c.Type == models.ConflictTypeAllergyPrescription {
				prescriptions = append(prescriptions, c)
			}
		}
		assert.Len(t, prescriptions, 1)
		assert.Equal(t, models.ConflictSeverityCritical, prescriptions[0].Severity)
		assert.Equal(t, "gh", prescriptions[0].SourceA.SystemID)
		assert.Equal(t, "cc", prescriptions[0].SourceB.SystemID)
	})

	t.Run("Same Source Pair Never Flagged", func(t *testing.T) {
		result := models.MergeResult{
			Allergies: []models.Allergy{
				{ID: "gh-a1", Substance: "Penicillin", Source: sourceA, Merge: singleSource(sourceA, "gh-a1")},
			},
			Medications: []models.Medication{
				{ID: "gh-m1", Name: "Amoxicillin", Status: "active", Source: sourceA,
					Merge: singleSource(sourceA, "gh-m1")},
			},
		}

		for _, c := range Detect(result, allSources) {
			assert.NotEqual(t, models.ConflictTypeAllergyPrescription, c.Type)
		}
	})

	t.Run("Inactive Medication Not Flagged", func(t *testing.T) {
		result := models.MergeResult{
			Allergies: []models.Allergy{
				{ID: "gh-a1", Substance: "Sulfa", Source: sourceA, Merge: singleSource(sourceA, "gh-a1")},
			},
			Medications: []models.Medication{
				{ID: "cc-m1", Name: "Bactrim", Status: "stopped", Source: sourceB,
					Merge: singleSource(sourceB, "cc-m1")},
			},
		}

		for _, c := range Detect(result, allSources) {
			assert.NotEqual(t, models.ConflictTypeAllergyPrescription, c.Type)
		}
	})
}

func TestDetectAllergyGap(t *testing.T) {
	allSources := []models.SourceTag{sourceA, sourceB}

	t.Run("Absence Source Produces One Critical Conflict", func(t *testing.T) {
		result := models.MergeResult{
			Allergies: []models.Allergy{
				{ID: "gh-a1", Substance: "Penicillin", Criticality: "high", Source: sourceA,
					Merge: singleSource(sourceA, "gh-a1")},
			},
			AbsenceSources: []models.SourceTag{sourceB},
		}

		found := Detect(result, allSources)

		var gaps []models.Conflict
		for _, c := range found {
			if c.Type == models.ConflictTypeAllergyGap {
				gaps = append(gaps, c)
			}
		}
		assert.Len(t, gaps, 1)
		assert.Equal(t, models.ConflictSeverityCritical, gaps[0].Severity)
		assert.Equal(t, "gh", gaps[0].SourceA.SystemID)
		assert.Equal(t, "cc", gaps[0].SourceB.SystemID)
		assert.Contains(t, gaps[0].Description, "Penicillin")
		assert.Contains(t, gaps[0].Description, "high")
	})

	t.Run("No Gap Without Real Allergies", func(t *testing.T) {
		result := models.MergeResult{AbsenceSources: []models.SourceTag{sourceB}}
		assert.Empty(t, Detect(result, allSources))
	})
}

func TestDetectMissingCrossref(t *testing.T) {
	allSources := []models.SourceTag{sourceA, sourceB}

	t.Run("High Risk Medication Is High Severity", func(t *testing.T) {
		result := models.MergeResult{
			Medications: []models.Medication{
				{ID: "gh-m1", Name: "Warfarin 5mg", Status: "active", Source: sourceA,
					Merge: singleSource(sourceA, "gh-m1")},
			},
		}

		found := Detect(result, allSources)

		assert.Len(t, found, 1)
		assert.Equal(t, models.ConflictTypeMissingCrossref, found[0].Type)
		assert.Equal(t, models.ConflictSeverityHigh, found[0].Severity)
		assert.Contains(t, found[0].Description, "Community Clinic")
	})

	t.Run("Ordinary Medication Is Medium Severity", func(t *testing.T) {
		result := models.MergeResult{
			Medications: []models.Medication{
				{ID: "gh-m1", Name: "Loratadine", Status: "active", Source: sourceA,
					Merge: singleSource(sourceA, "gh-m1")},
			},
		}

		found := Detect(result, allSources)

		assert.Len(t, found, 1)
		assert.Equal(t, models.ConflictSeverityMedium, found[0].Severity)
	})

	t.Run("Confirmed Medication Not Flagged", func(t *testing.T) {
		result := models.MergeResult{
			Medications: []models.Medication{
				{ID: "gh-m1", Name: "Warfarin", Status: "active", Source: sourceA,
					Merge: models.MergedMetadata(models.MergeStatusConfirmed, sourceA, "gh-m1", sourceB, "cc-m1")},
			},
		}

		assert.Empty(t, Detect(result, allSources))
	})
}

func TestDetectOrdering(t *testing.T) {
	allSources := []models.SourceTag{sourceA, sourceB}

	result := models.MergeResult{
		Medications: []models.Medication{
			{ID: "gh-m1", Name: "Metoprolol", Status: "active", Source: sourceA,
				Merge: models.MergedMetadata(models.MergeStatusConflict, sourceA, "gh-m1", sourceB, "cc-m1")},
			{ID: "gh-m2", Name: "Loratadine", Status: "active", Source: sourceA,
				Merge: singleSource(sourceA, "gh-m2")},
		},
		Conditions: []models.Condition{
			{ID: "gh-c1", Name: "Hypertension", ClinicalStatus: "active", Source: sourceA,
				Merge: models.MergedMetadata(models.MergeStatusConflict, sourceA, "gh-c1", sourceB, "cc-c1")},
		},
		Allergies: []models.Allergy{
			{ID: "gh-a1", Substance: "Penicillin", Source: sourceA, Merge: singleSource(sourceA, "gh-a1")},
		},
		AbsenceSources: []models.SourceTag{sourceB},
	}

	found := Detect(result, allSources)

	assert.GreaterOrEqual(t, len(found), 4)
	assert.Equal(t, models.ConflictTypeAllergyGap, found[0].Type, "critical sorts first, allergy-gap before other types")
	last := -1
	for _, c := range found {
		rank := severityRank[c.Severity]
		assert.GreaterOrEqual(t, rank, last, "severity order must be non-decreasing")
		if rank > last {
			last = rank
		}
	}
	for i, c := range found {
		assert.NotEmpty(t, c.ID)
		assert.Equal(t, i, int(c.ID[len(c.ID)-1]-'0')-1, "sequential per-run ids")
	}
}
