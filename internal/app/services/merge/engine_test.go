package merge

import (
	"testing"
	"time"

	"healthbridge-service/internal/app/models"

	"github.com/stretchr/testify/assert"
)

var (
	sourceA = models.SourceTag{SystemName: "General Hospital", SystemID: "gh", FetchedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)}
	sourceB = models.SourceTag{SystemName: "Community Clinic", SystemID: "cc", FetchedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)}
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
	return &t
}

func floatPtr(v float64) *float64 { return &v }

func TestMergeMedications(t *testing.T) {
	t.Run("Code Match Same Dose Confirmed", func(t *testing.T) {
		meds := []models.Medication{
			{ID: "gh-1", Name: "Lisinopril 10mg Tablet", Status: "active", Source: sourceA,
				Codes: []models.Coding{{CodeSystem: "rxnorm", CodeValue: "314076"}},
				Dose:  &models.DoseSpec{Value: 10, Unit: "mg"}},
			{ID: "cc-1", Name: "Lisinopril", Status: "active", Source: sourceB,
				Codes: []models.Coding{{CodeSystem: "rxnorm", CodeValue: "314076"}},
				Dose:  &models.DoseSpec{Value: 10, Unit: "mg"}},
		}

		out := MergeMedications(meds)

		assert.Len(t, out, 1)
		assert.Equal(t, models.MergeStatusConfirmed, out[0].Merge.Status)
		assert.Equal(t, []string{"gh-1", "cc-1"}, out[0].Merge.MergedFromIDs)
		assert.Len(t, out[0].Merge.AllSources, 2)
	})

	t.Run("Dose Disagreement Is Conflict", func(t *testing.T) {
		meds := []models.Medication{
			{ID: "gh-1", Name: "Warfarin", Status: "active", Source: sourceA, Dose: &models.DoseSpec{Value: 5, Unit: "mg"}},
			{ID: "cc-1", Name: "Warfarin Sodium 2.5mg", Status: "active", Source: sourceB, Dose: &models.DoseSpec{Value: 2.5, Unit: "mg"}},
		}

		out := MergeMedications(meds)

		assert.Len(t, out, 1)
		assert.Equal(t, models.MergeStatusConflict, out[0].Merge.Status)
	})

	t.Run("Name Heuristic Match", func(t *testing.T) {
		meds := []models.Medication{
			{ID: "gh-1", Name: "Metformin HCl 500 mg Extended Release", Status: "active", Source: sourceA, DosageText: "500 mg twice daily"},
			{ID: "cc-1", Name: "Metformin", Status: "active", Source: sourceB, DosageText: "500  MG twice daily"},
		}

		out := MergeMedications(meds)

		assert.Len(t, out, 1)
		assert.Equal(t, models.MergeStatusConfirmed, out[0].Merge.Status)
	})

	t.Run("Same Source Never Merges", func(t *testing.T) {
		meds := []models.Medication{
			{ID: "gh-1", Name: "Aspirin", Status: "active", Source: sourceA},
			{ID: "gh-2", Name: "Aspirin", Status: "active", Source: sourceA},
		}

		out := MergeMedications(meds)

		assert.Len(t, out, 2)
		for _, m := range out {
			assert.Equal(t, models.MergeStatusSingleSource, m.Merge.Status)
		}
	})

	t.Run("Sorted Active First Then Alphabetical", func(t *testing.T) {
		meds := []models.Medication{
			{ID: "1", Name: "Zolpidem", Status: "stopped", Source: sourceA},
			{ID: "2", Name: "Metformin", Status: "active", Source: sourceA},
			{ID: "3", Name: "Atorvastatin", Status: "active", Source: sourceB},
		}

		out := MergeMedications(meds)

		assert.Equal(t, "Atorvastatin", out[0].Name)
		assert.Equal(t, "Metformin", out[1].Name)
		assert.Equal(t, "Zolpidem", out[2].Name)
	})
}

func TestMergeLabResults(t *testing.T) {
	code := []models.Coding{{CodeSystem: "loinc", CodeValue: "2345-7"}}

	t.Run("Identical Value Within Window Confirmed", func(t *testing.T) {
		labs := []models.LabResult{
			{ID: "gh-1", Codes: code, TestName: "Glucose", Value: floatPtr(98), EffectiveDate: datePtr(2026, 7, 1), Source: sourceA},
			{ID: "cc-1", Codes: code, TestName: "Glucose", Value: floatPtr(98), EffectiveDate: datePtr(2026, 7, 1), Source: sourceB},
		}

		out := MergeLabResults(labs)

		assert.Len(t, out, 1)
		assert.Equal(t, models.MergeStatusConfirmed, out[0].Merge.Status)
	})

	t.Run("Divergent Values Keep Both", func(t *testing.T) {
		labs := []models.LabResult{
			{ID: "gh-1", Codes: code, TestName: "Glucose", Value: floatPtr(98), EffectiveDate: datePtr(2026, 7, 1), Source: sourceA},
			{ID: "cc-1", Codes: code, TestName: "Glucose", Value: floatPtr(142), EffectiveDate: datePtr(2026, 7, 1), Source: sourceB},
		}

		out := MergeLabResults(labs)

		assert.Len(t, out, 2)
		for _, lab := range out {
			assert.Equal(t, models.MergeStatusSingleSource, lab.Merge.Status)
		}
	})

	t.Run("Outside Window Not Merged", func(t *testing.T) {
		labs := []models.LabResult{
			{ID: "gh-1", Codes: code, TestName: "Glucose", Value: floatPtr(98), EffectiveDate: datePtr(2026, 7, 1), Source: sourceA},
			{ID: "cc-1", Codes: code, TestName: "Glucose", Value: floatPtr(98), EffectiveDate: datePtr(2026, 7, 4), Source: sourceB},
		}

		out := MergeLabResults(labs)

		assert.Len(t, out, 2)
	})

	t.Run("Undated Record Kept And Sorted Last", func(t *testing.T) {
		labs := []models.LabResult{
			{ID: "gh-1", Codes: code, TestName: "Glucose", Value: floatPtr(98), Source: sourceA},
			{ID: "cc-1", Codes: code, TestName: "Glucose", Value: floatPtr(98), EffectiveDate: datePtr(2026, 7, 1), Source: sourceB},
		}

		out := MergeLabResults(labs)

		assert.Len(t, out, 2)
		assert.Equal(t, "cc-1", out[0].ID)
		assert.Equal(t, "gh-1", out[1].ID)
	})
}

func TestMergeVitals(t *testing.T) {
	t.Run("Compound Vital Compares Every Component", func(t *testing.T) {
		vitals := []models.Vital{
			{ID: "gh-1", Type: models.VitalTypeBloodPressure, EffectiveDate: datePtr(2026, 7, 1), Source: sourceA,
				Components: []models.VitalComponent{{Name: "systolic", Value: 130}, {Name: "diastolic", Value: 85}}},
			{ID: "cc-1", Type: models.VitalTypeBloodPressure, EffectiveDate: datePtr(2026, 7, 1), Source: sourceB,
				Components: []models.VitalComponent{{Name: "systolic", Value: 130}, {Name: "diastolic", Value: 88}}},
		}

		out := MergeVitals(vitals)

		assert.Len(t, out, 2, "differing diastolic keeps both readings")
	})

	t.Run("Identical Reading Confirmed", func(t *testing.T) {
		vitals := []models.Vital{
			{ID: "gh-1", Type: models.VitalTypeHeartRate, Value: floatPtr(72), EffectiveDate: datePtr(2026, 7, 1), Source: sourceA},
			{ID: "cc-1", Type: models.VitalTypeHeartRate, Value: floatPtr(72), EffectiveDate: datePtr(2026, 7, 1), Source: sourceB},
		}

		out := MergeVitals(vitals)

		assert.Len(t, out, 1)
		assert.Equal(t, models.MergeStatusConfirmed, out[0].Merge.Status)
	})
}

func TestMergeConditions(t *testing.T) {
	code := []models.Coding{{CodeSystem: "icd-10", CodeValue: "E11.9"}}

	t.Run("Status Disagreement Keeps Newer Representative", func(t *testing.T) {
		conditions := []models.Condition{
			{ID: "gh-1", Codes: code, Name: "Type 2 diabetes", ClinicalStatus: "active", RecordedDate: datePtr(2025, 1, 1), Source: sourceA},
			{ID: "cc-1", Codes: code, Name: "Type 2 diabetes mellitus", ClinicalStatus: "resolved", RecordedDate: datePtr(2026, 2, 1), Source: sourceB},
		}

		out := MergeConditions(conditions)

		assert.Len(t, out, 1)
		assert.Equal(t, models.MergeStatusConflict, out[0].Merge.Status)
		assert.Equal(t, "resolved", out[0].ClinicalStatus, "newer record wins representation")
		assert.Equal(t, []string{"gh-1", "cc-1"}, out[0].Merge.MergedFromIDs)
	})

	t.Run("Same Source Repeats Collapsed First", func(t *testing.T) {
		conditions := []models.Condition{
			{ID: "gh-1", Codes: code, Name: "Type 2 diabetes", ClinicalStatus: "active", RecordedDate: datePtr(2024, 1, 1), Source: sourceA},
			{ID: "gh-2", Codes: code, Name: "Type 2 diabetes", ClinicalStatus: "active", RecordedDate: datePtr(2026, 1, 1), Source: sourceA},
			{ID: "cc-1", Codes: code, Name: "Type 2 diabetes", ClinicalStatus: "active", RecordedDate: datePtr(2026, 1, 2), Source: sourceB},
		}

		out := MergeConditions(conditions)

		assert.Len(t, out, 1)
		assert.Equal(t, models.MergeStatusConfirmed, out[0].Merge.Status)
		assert.Contains(t, out[0].DuplicateIDs, "gh-1", "collapsed repeat id must not be lost")
	})
}

func TestMergeAllergies(t *testing.T) {
	t.Run("Absence Markers Extracted", func(t *testing.T) {
		allergies := []models.Allergy{
			{ID: "gh-1", Substance: "NKDA", Source: sourceA},
			{ID: "cc-1", Substance: "Penicillin", Criticality: "high", Source: sourceB},
		}

		merged, absence := MergeAllergies(allergies)

		assert.Len(t, merged, 1)
		assert.Equal(t, "Penicillin", merged[0].Substance)
		assert.Len(t, absence, 1)
		assert.Equal(t, "gh", absence[0].SystemID)
	})

	t.Run("Source With Real Allergy Not In Absence List", func(t *testing.T) {
		allergies := []models.Allergy{
			{ID: "gh-1", Substance: "Not on File", Source: sourceA},
			{ID: "gh-2", Substance: "Sulfa", Source: sourceA},
		}

		merged, absence := MergeAllergies(allergies)

		assert.Len(t, merged, 1)
		assert.Empty(t, absence)
	})

	t.Run("Substance Name Match Confirmed", func(t *testing.T) {
		allergies := []models.Allergy{
			{ID: "gh-1", Substance: "Penicillin V-K", Source: sourceA},
			{ID: "cc-1", Substance: "penicillin v k", Source: sourceB},
		}

		merged, _ := MergeAllergies(allergies)

		assert.Len(t, merged, 1)
		assert.Equal(t, models.MergeStatusConfirmed, merged[0].Merge.Status)
	})

	t.Run("Output Alphabetical By Substance", func(t *testing.T) {
		allergies := []models.Allergy{
			{ID: "gh-1", Substance: "Sulfa", Source: sourceA},
			{ID: "cc-1", Substance: "amoxicillin", Source: sourceB},
			{ID: "gh-2", Substance: "Penicillin", Source: sourceA},
		}

		merged, _ := MergeAllergies(allergies)

		assert.Len(t, merged, 3)
		assert.Equal(t, "amoxicillin", merged[0].Substance)
		assert.Equal(t, "Penicillin", merged[1].Substance)
		assert.Equal(t, "Sulfa", merged[2].Substance)
	})
}

func TestMergeImmunizations(t *testing.T) {
	t.Run("Within Thirty Days Confirmed", func(t *testing.T) {
		shots := []models.Immunization{
			{ID: "gh-1", VaccineName: "Influenza vaccine", OccurrenceDate: datePtr(2025, 10, 1), Source: sourceA},
			{ID: "cc-1", VaccineName: "Influenza", OccurrenceDate: datePtr(2025, 10, 20), Source: sourceB},
		}

		out := MergeImmunizations(shots)

		assert.Len(t, out, 1)
		assert.Equal(t, models.MergeStatusConfirmed, out[0].Merge.Status)
	})

	t.Run("Beyond Thirty Days Kept Apart", func(t *testing.T) {
		shots := []models.Immunization{
			{ID: "gh-1", VaccineName: "Influenza", OccurrenceDate: datePtr(2024, 10, 1), Source: sourceA},
			{ID: "cc-1", VaccineName: "Influenza", OccurrenceDate: datePtr(2025, 10, 1), Source: sourceB},
		}

		out := MergeImmunizations(shots)

		assert.Len(t, out, 2)
	})
}

func TestRunInvariants(t *testing.T) {
	snapshots := []models.SourceSnapshot{
		{
			Source: sourceA,
			Medications: []models.Medication{
				{ID: "gh-m1", Name: "Warfarin 5mg", Status: "active", Source: sourceA},
			},
			Allergies: []models.Allergy{{ID: "gh-a1", Substance: "NKDA", Source: sourceA}},
		},
		{
			Source:    sourceB,
			Allergies: []models.Allergy{{ID: "cc-a1", Substance: "Ibuprofen", Criticality: "low", Source: sourceB}},
		},
	}

	t.Run("End To End Scenario", func(t *testing.T) {
		result := Run(snapshots)

		assert.Len(t, result.Medications, 1)
		assert.Equal(t, models.MergeStatusSingleSource, result.Medications[0].Merge.Status)
		assert.Len(t, result.Allergies, 1)
		assert.Len(t, result.AbsenceSources, 1)
		assert.Equal(t, "gh", result.AbsenceSources[0].SystemID)
	})

	t.Run("No Input ID Lost", func(t *testing.T) {
		result := Run(snapshots)

		seen := map[string]bool{}
		for _, m := range result.Medications {
			for _, id := range m.Merge.MergedFromIDs {
				seen[id] = true
			}
		}
		for _, a := range result.Allergies {
			for _, id := range a.Merge.MergedFromIDs {
				seen[id] = true
			}
		}
		assert.True(t, seen["gh-m1"])
		assert.True(t, seen["cc-a1"])
	})

	t.Run("Idempotent For Same Input", func(t *testing.T) {
		first := Run(snapshots)
		second := Run(snapshots)
		assert.Equal(t, first, second)
	})

	t.Run("No Merged Record Repeats A Source", func(t *testing.T) {
		result := Run(snapshots)
		for _, m := range result.Medications {
			ids := map[string]bool{}
			for _, s := range m.Merge.AllSources {
				assert.False(t, ids[s.SystemID])
				ids[s.SystemID] = true
			}
		}
	})
}
