package insights

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"healthbridge-service/internal/app/models"
)

var (
	clinicSrc   = models.SourceTag{SystemName: "Downtown Clinic", SystemID: "clinic", FetchedAt: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)}
	hospitalSrc = models.SourceTag{SystemName: "General Hospital", SystemID: "hospital", FetchedAt: time.Date(2026, 8, 1, 9, 5, 0, 0, time.UTC)}
)

func fp(v float64) *float64 { return &v }

func dp(year, month, day int) *time.Time {
	t := time.Date(year, time.Month(month), day, 10, 0, 0, 0, time.UTC)
	return &t
}

func numberedLab(name string, value float64, date *time.Time) models.LabResult {
	return models.LabResult{
		ID:            fmt.Sprintf("lab-%s-%d", name, date.Unix()),
		TestName:      name,
		Value:         fp(value),
		EffectiveDate: date,
		Source:        clinicSrc,
	}
}

func TestFlagAbnormalLabs(t *testing.T) {
	t.Run("critical threshold is one and a half times the bound", func(t *testing.T) {
		ref := &models.ReferenceRange{Low: fp(10), High: fp(100)}
		labs := []models.LabResult{
			{ID: "l1", TestName: "Glucose", Value: fp(149), Reference: ref, Source: clinicSrc},
			{ID: "l2", TestName: "Glucose", Value: fp(150), Reference: ref, Source: clinicSrc},
		}

		flags := FlagAbnormalLabs(labs, DefaultCriticalFactor)
		assert.Len(t, flags, 2)
		assert.Equal(t, models.LabFlagHigh, flags[0].Status)
		assert.Equal(t, models.LabFlagCriticalHigh, flags[1].Status)
	})

	t.Run("critical low divides the lower bound by the factor", func(t *testing.T) {
		ref := &models.ReferenceRange{Low: fp(30), High: fp(100)}
		labs := []models.LabResult{
			{ID: "l1", TestName: "Hematocrit", Value: fp(21), Reference: ref, Source: clinicSrc},
			{ID: "l2", TestName: "Hematocrit", Value: fp(20), Reference: ref, Source: clinicSrc},
		}

		flags := FlagAbnormalLabs(labs, DefaultCriticalFactor)
		assert.Len(t, flags, 2)
		assert.Equal(t, models.LabFlagLow, flags[0].Status)
		assert.Equal(t, models.LabFlagCriticalLow, flags[1].Status)
	})

	t.Run("in range value flags normal", func(t *testing.T) {
		labs := []models.LabResult{
			{ID: "l1", TestName: "Potassium", Value: fp(4.2), Source: clinicSrc},
		}

		flags := FlagAbnormalLabs(labs, 0)
		assert.Len(t, flags, 1)
		assert.Equal(t, models.LabFlagNormal, flags[0].Status)
		assert.NotNil(t, flags[0].RangeLow)
		assert.NotNil(t, flags[0].RangeHigh)
	})

	t.Run("lab supplied range wins over the standard table", func(t *testing.T) {
		labs := []models.LabResult{
			{ID: "l1", TestName: "Glucose", Value: fp(110), Reference: &models.ReferenceRange{Low: fp(60), High: fp(120)}, Source: clinicSrc},
		}

		flags := FlagAbnormalLabs(labs, DefaultCriticalFactor)
		assert.Len(t, flags, 1)
		assert.Equal(t, models.LabFlagNormal, flags[0].Status)
	})

	t.Run("no resolvable range produces no flag", func(t *testing.T) {
		labs := []models.LabResult{
			{ID: "l1", TestName: "Obscure Assay", Value: fp(9999), Source: clinicSrc},
			{ID: "l2", TestName: "Glucose", ValueText: "see attached", Source: clinicSrc},
		}

		assert.Empty(t, FlagAbnormalLabs(labs, DefaultCriticalFactor))
	})
}

func TestAnalyzeLabTrends(t *testing.T) {
	t.Run("change under five percent is stable and over is rising", func(t *testing.T) {
		labs := []models.LabResult{
			numberedLab("Creatinine", 100, dp(2026, 1, 10)),
			numberedLab("Creatinine", 104, dp(2026, 4, 10)),
			numberedLab("Glucose", 100, dp(2026, 1, 10)),
			numberedLab("Glucose", 106, dp(2026, 4, 10)),
		}

		trends := AnalyzeLabTrends(labs)
		assert.Len(t, trends, 2)

		byName := map[string]models.LabTrend{}
		for _, tr := range trends {
			byName[tr.TestName] = tr
		}
		assert.Equal(t, models.TrendStable, byName["Creatinine"].Direction)
		assert.Equal(t, models.TrendRising, byName["Glucose"].Direction)
		assert.InDelta(t, 6.0, byName["Glucose"].PercentChange, 0.001)
	})

	t.Run("falling series and largest absolute change first", func(t *testing.T) {
		labs := []models.LabResult{
			numberedLab("Hemoglobin", 14, dp(2026, 1, 5)),
			numberedLab("Hemoglobin", 10, dp(2026, 6, 5)),
			numberedLab("Sodium", 140, dp(2026, 1, 5)),
			numberedLab("Sodium", 150, dp(2026, 6, 5)),
		}

		trends := AnalyzeLabTrends(labs)
		assert.Len(t, trends, 2)
		assert.Equal(t, "Hemoglobin", trends[0].TestName)
		assert.Equal(t, models.TrendFalling, trends[0].Direction)
		assert.Equal(t, models.TrendRising, trends[1].Direction)
	})

	t.Run("series are ordered by date not input order", func(t *testing.T) {
		labs := []models.LabResult{
			numberedLab("A1c", 7.5, dp(2026, 6, 1)),
			numberedLab("A1c", 6.0, dp(2026, 1, 1)),
		}

		trends := AnalyzeLabTrends(labs)
		assert.Len(t, trends, 1)
		assert.Equal(t, models.TrendRising, trends[0].Direction)
		assert.Equal(t, 6.0, trends[0].FirstValue)
		assert.Equal(t, 7.5, trends[0].LastValue)
	})

	t.Run("code groups differently named results together", func(t *testing.T) {
		a := numberedLab("Hemoglobin A1c", 6.0, dp(2026, 1, 1))
		a.Codes = []models.Coding{{CodeSystem: "loinc", CodeValue: "4548-4"}}
		b := numberedLab("HbA1c", 7.0, dp(2026, 6, 1))
		b.Codes = []models.Coding{{CodeSystem: "loinc", CodeValue: "4548-4"}}

		trends := AnalyzeLabTrends([]models.LabResult{a, b})
		assert.Len(t, trends, 1)
		assert.Equal(t, 2, trends[0].ReadingCount)
	})

	t.Run("single readings and undated readings yield no trend", func(t *testing.T) {
		undated := models.LabResult{ID: "u1", TestName: "TSH", Value: fp(2.0), Source: clinicSrc}
		labs := []models.LabResult{
			numberedLab("TSH", 1.8, dp(2026, 3, 1)),
			undated,
			numberedLab("Ferritin", 80, dp(2026, 3, 1)),
		}

		assert.Empty(t, AnalyzeLabTrends(labs))
	})
}

func TestEvaluateCareGaps(t *testing.T) {
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	gapByID := func(gaps []models.CareGap, id string) *models.CareGap {
		for i := range gaps {
			if gaps[i].RuleID == id {
				return &gaps[i]
			}
		}
		return nil
	}

	t.Run("gap done recently reports low priority and not overdue", func(t *testing.T) {
		demo := models.Demographics{BirthDate: "1990-05-20", Gender: "male"}
		data := models.MergeResult{
			Vitals: []models.Vital{{
				ID: "v1", Type: models.VitalTypeBloodPressure,
				Components:    []models.VitalComponent{{Name: "systolic", Value: 120}, {Name: "diastolic", Value: 80}},
				EffectiveDate: dp(2026, 6, 1), Source: clinicSrc,
			}},
		}

		gaps := EvaluateCareGaps(demo, data, now)
		bp := gapByID(gaps, "annual-bp-check")
		assert.NotNil(t, bp)
		assert.False(t, bp.Overdue)
		assert.Equal(t, GapPriorityLow, bp.Priority)
		assert.NotNil(t, bp.DueSince)
	})

	t.Run("overdue gap with low base priority is floored to medium", func(t *testing.T) {
		demo := models.Demographics{BirthDate: "1990-05-20", Gender: "male"}

		gaps := EvaluateCareGaps(demo, models.MergeResult{}, now)
		bp := gapByID(gaps, "annual-bp-check")
		assert.NotNil(t, bp)
		assert.True(t, bp.Overdue)
		assert.Equal(t, GapPriorityMedium, bp.Priority)
	})

	t.Run("overdue gap keeps a high base priority", func(t *testing.T) {
		demo := models.Demographics{BirthDate: "1960-01-10", Gender: "male"}

		gaps := EvaluateCareGaps(demo, models.MergeResult{}, now)
		colo := gapByID(gaps, "colonoscopy-screening")
		assert.NotNil(t, colo)
		assert.True(t, colo.Overdue)
		assert.Equal(t, GapPriorityHigh, colo.Priority)
		assert.Nil(t, colo.LastDone)
	})

	t.Run("mammogram applies only to women of screening age", func(t *testing.T) {
		male := models.Demographics{BirthDate: "1960-01-10", Gender: "male"}
		youngFemale := models.Demographics{BirthDate: "2000-01-10", Gender: "female"}
		female := models.Demographics{BirthDate: "1960-01-10", Gender: "female"}

		assert.Nil(t, gapByID(EvaluateCareGaps(male, models.MergeResult{}, now), "mammogram-screening"))
		assert.Nil(t, gapByID(EvaluateCareGaps(youngFemale, models.MergeResult{}, now), "mammogram-screening"))
		assert.NotNil(t, gapByID(EvaluateCareGaps(female, models.MergeResult{}, now), "mammogram-screening"))
	})

	t.Run("active diabetes on the problem list enables a1c monitoring", func(t *testing.T) {
		demo := models.Demographics{BirthDate: "1980-03-01", Gender: "male"}
		data := models.MergeResult{
			Conditions: []models.Condition{
				{ID: "c1", Name: "Type 2 diabetes mellitus", ClinicalStatus: models.ConditionStatusActive, Source: clinicSrc},
			},
			LabResults: []models.LabResult{
				numberedLab("Hemoglobin A1c", 6.8, dp(2026, 7, 1)),
			},
		}

		gaps := EvaluateCareGaps(demo, data, now)
		a1c := gapByID(gaps, "a1c-monitoring")
		assert.NotNil(t, a1c)
		assert.False(t, a1c.Overdue)
		assert.Equal(t, dp(2026, 7, 1), a1c.LastDone)
	})

	t.Run("resolved diabetes does not enable a1c monitoring", func(t *testing.T) {
		demo := models.Demographics{BirthDate: "1980-03-01", Gender: "male"}
		data := models.MergeResult{
			Conditions: []models.Condition{
				{ID: "c1", Name: "Gestational diabetes", ClinicalStatus: models.ConditionStatusResolved, Source: clinicSrc},
			},
		}

		assert.Nil(t, gapByID(EvaluateCareGaps(demo, data, now), "a1c-monitoring"))
	})

	t.Run("shingles vaccine is due once ever", func(t *testing.T) {
		demo := models.Demographics{BirthDate: "1965-02-14", Gender: "male"}
		data := models.MergeResult{
			Immunizations: []models.Immunization{
				{ID: "i1", VaccineName: "Shingrix dose 2", OccurrenceDate: dp(2018, 5, 1), Source: clinicSrc},
			},
		}

		shingles := gapByID(EvaluateCareGaps(demo, data, now), "shingles-vaccine")
		assert.NotNil(t, shingles)
		assert.False(t, shingles.Overdue)
		assert.Nil(t, shingles.DueSince)
	})

	t.Run("overdue gaps are listed before satisfied ones", func(t *testing.T) {
		demo := models.Demographics{BirthDate: "1990-05-20", Gender: "male"}
		data := models.MergeResult{
			Immunizations: []models.Immunization{
				{ID: "i1", VaccineName: "Influenza, seasonal", OccurrenceDate: dp(2026, 7, 20), Source: clinicSrc},
			},
		}

		gaps := EvaluateCareGaps(demo, data, now)
		assert.NotEmpty(t, gaps)
		sawSatisfied := false
		for _, g := range gaps {
			if !g.Overdue {
				sawSatisfied = true
			}
			if sawSatisfied {
				assert.False(t, g.Overdue)
			}
		}
	})
}

func TestFindInteractions(t *testing.T) {
	med := func(id, name, status string) models.Medication {
		return models.Medication{ID: id, Name: name, Status: status, Source: clinicSrc}
	}

	t.Run("warfarin with an nsaid is critical in either order", func(t *testing.T) {
		forward := FindInteractions([]models.Medication{
			med("m1", "Warfarin 5mg tablet", models.MedicationStatusActive),
			med("m2", "Ibuprofen 400mg", models.MedicationStatusActive),
		})
		reversed := FindInteractions([]models.Medication{
			med("m2", "Ibuprofen 400mg", models.MedicationStatusActive),
			med("m1", "Warfarin 5mg tablet", models.MedicationStatusActive),
		})

		assert.Len(t, forward, 1)
		assert.Len(t, reversed, 1)
		assert.Equal(t, InteractionCritical, forward[0].Severity)
		assert.Equal(t, forward[0].Effect, reversed[0].Effect)
	})

	t.Run("stopped medications are excluded", func(t *testing.T) {
		out := FindInteractions([]models.Medication{
			med("m1", "Warfarin", models.MedicationStatusStopped),
			med("m2", "Ibuprofen", models.MedicationStatusActive),
		})
		assert.Empty(t, out)
	})

	t.Run("on hold still counts as active equivalent", func(t *testing.T) {
		out := FindInteractions([]models.Medication{
			med("m1", "Lisinopril 10mg", models.MedicationStatusOnHold),
			med("m2", "Spironolactone 25mg", models.MedicationStatusActive),
		})
		assert.Len(t, out, 1)
		assert.Equal(t, InteractionHigh, out[0].Severity)
	})

	t.Run("serotonergic pair fires exactly one rule", func(t *testing.T) {
		out := FindInteractions([]models.Medication{
			med("m1", "Sertraline 50mg", models.MedicationStatusActive),
			med("m2", "Tramadol 50mg", models.MedicationStatusActive),
		})
		assert.Len(t, out, 1)
		assert.Equal(t, InteractionHigh, out[0].Severity)
		assert.Equal(t, "m1", out[0].MedAID)
		assert.Equal(t, "m2", out[0].MedBID)
	})

	t.Run("results are ordered most severe first", func(t *testing.T) {
		out := FindInteractions([]models.Medication{
			med("m1", "Insulin glargine", models.MedicationStatusActive),
			med("m2", "Metoprolol 25mg", models.MedicationStatusActive),
			med("m3", "Oxycodone 5mg", models.MedicationStatusActive),
			med("m4", "Alprazolam 0.5mg", models.MedicationStatusActive),
		})

		assert.Len(t, out, 2)
		assert.Equal(t, InteractionCritical, out[0].Severity)
		assert.Equal(t, InteractionLow, out[1].Severity)
	})

	t.Run("unrelated medications produce nothing", func(t *testing.T) {
		out := FindInteractions([]models.Medication{
			med("m1", "Vitamin D3 1000IU", models.MedicationStatusActive),
			med("m2", "Loratadine 10mg", models.MedicationStatusActive),
		})
		assert.Empty(t, out)
	})
}

func TestCorrelateVitals(t *testing.T) {
	t.Run("blood pressure pairs with an active antihypertensive", func(t *testing.T) {
		vitals := []models.Vital{{
			ID: "v1", Type: models.VitalTypeBloodPressure,
			Components:    []models.VitalComponent{{Name: "systolic", Value: 132}, {Name: "diastolic", Value: 84}},
			EffectiveDate: dp(2026, 7, 1), Source: clinicSrc,
		}}
		meds := []models.Medication{
			{ID: "m1", Name: "Lisinopril 10mg", Status: models.MedicationStatusActive, Source: hospitalSrc},
		}

		out := CorrelateVitals(vitals, meds, nil)
		assert.Len(t, out, 1)
		assert.Equal(t, "bp-antihypertensive", out[0].RuleID)
		assert.Equal(t, CorrelationEffectiveness, out[0].Kind)
		assert.Equal(t, "v1", out[0].VitalID)
		assert.Contains(t, out[0].Message, "Lisinopril 10mg")
	})

	t.Run("only the most recent reading per type is used", func(t *testing.T) {
		vitals := []models.Vital{
			{ID: "old", Type: models.VitalTypeHeartRate, Value: fp(88), EffectiveDate: dp(2026, 1, 1), Source: clinicSrc},
			{ID: "new", Type: models.VitalTypeHeartRate, Value: fp(58), EffectiveDate: dp(2026, 7, 1), Source: clinicSrc},
		}
		meds := []models.Medication{
			{ID: "m1", Name: "Metoprolol succinate 50mg", Status: models.MedicationStatusActive, Source: clinicSrc},
		}

		out := CorrelateVitals(vitals, meds, nil)
		assert.Len(t, out, 1)
		assert.Equal(t, "new", out[0].VitalID)
	})

	t.Run("inactive medication does not correlate", func(t *testing.T) {
		vitals := []models.Vital{
			{ID: "v1", Type: models.VitalTypeWeight, Value: fp(92), EffectiveDate: dp(2026, 7, 1), Source: clinicSrc},
		}
		meds := []models.Medication{
			{ID: "m1", Name: "Prednisone 10mg", Status: models.MedicationStatusCompleted, Source: clinicSrc},
		}

		assert.Empty(t, CorrelateVitals(vitals, meds, nil))
	})

	t.Run("bmi over thirty alone is a high significance risk", func(t *testing.T) {
		vitals := []models.Vital{
			{ID: "v1", Type: models.VitalTypeBMI, Value: fp(31.2), EffectiveDate: dp(2026, 7, 1), Source: clinicSrc},
		}

		out := CorrelateVitals(vitals, nil, nil)
		assert.Len(t, out, 1)
		assert.Equal(t, "bmi-combined-risk", out[0].RuleID)
		assert.Equal(t, CorrelationRiskFactor, out[0].Kind)
		assert.Equal(t, "high", out[0].Significance)
	})

	t.Run("bmi over twenty five needs active diabetes to flag", func(t *testing.T) {
		vitals := []models.Vital{
			{ID: "v1", Type: models.VitalTypeBMI, Value: fp(27.0), EffectiveDate: dp(2026, 7, 1), Source: clinicSrc},
		}
		diabetic := []models.Condition{
			{ID: "c1", Name: "Type 2 diabetes", ClinicalStatus: models.ConditionStatusActive, Source: clinicSrc},
		}

		assert.Empty(t, CorrelateVitals(vitals, nil, nil))

		out := CorrelateVitals(vitals, nil, diabetic)
		assert.Len(t, out, 1)
		assert.Contains(t, out[0].Message, "diabetes")
	})

	t.Run("high significance results come first", func(t *testing.T) {
		vitals := []models.Vital{
			{ID: "v1", Type: models.VitalTypeBMI, Value: fp(33), EffectiveDate: dp(2026, 7, 1), Source: clinicSrc},
			{ID: "v2", Type: models.VitalTypeHeartRate, Value: fp(60), EffectiveDate: dp(2026, 7, 1), Source: clinicSrc},
		}
		meds := []models.Medication{
			{ID: "m1", Name: "Atenolol 25mg", Status: models.MedicationStatusActive, Source: clinicSrc},
		}

		out := CorrelateVitals(vitals, meds, nil)
		assert.Len(t, out, 2)
		assert.Equal(t, "high", out[0].Significance)
		assert.Equal(t, "low", out[1].Significance)
	})
}

func TestTranslateConflicts(t *testing.T) {
	t.Run("every conflict type has a patient facing template", func(t *testing.T) {
		conflicts := []models.Conflict{
			{ID: "conflict-1", Type: models.ConflictTypeAllergyGap, Severity: models.ConflictSeverityCritical, Description: "Penicillin allergy missing"},
			{ID: "conflict-2", Type: models.ConflictTypeAllergyPrescription, Severity: models.ConflictSeverityCritical, Description: "Cephalexin vs penicillin allergy"},
			{ID: "conflict-3", Type: models.ConflictTypeDoseMismatch, Severity: models.ConflictSeverityHigh, Description: "Warfarin 5mg vs 2.5mg"},
			{ID: "conflict-4", Type: models.ConflictTypeMissingCrossref, Severity: models.ConflictSeverityMedium, Description: "Metformin only at clinic"},
			{ID: "conflict-5", Type: models.ConflictTypeContradictoryCondition, Severity: models.ConflictSeverityMedium, Description: "Asthma active vs resolved"},
		}

		alerts := TranslateConflicts(conflicts)
		assert.Len(t, alerts, 5)
		for i, alert := range alerts {
			assert.Equal(t, conflicts[i].ID, alert.ConflictID)
			assert.Equal(t, conflicts[i].Description, alert.Explanation)
			assert.Equal(t, string(conflicts[i].Severity), alert.Severity)
			assert.NotEmpty(t, alert.Title)
			assert.NotEmpty(t, alert.ActionItem)
		}
	})

	t.Run("order and severity pass through unchanged", func(t *testing.T) {
		conflicts := []models.Conflict{
			{ID: "conflict-1", Type: models.ConflictTypeDoseMismatch, Severity: models.ConflictSeverityHigh, Description: "a"},
			{ID: "conflict-2", Type: models.ConflictTypeMissingCrossref, Severity: models.ConflictSeverityMedium, Description: "b"},
		}

		alerts := TranslateConflicts(conflicts)
		assert.Equal(t, "conflict-1", alerts[0].ConflictID)
		assert.Equal(t, "conflict-2", alerts[1].ConflictID)
	})
}

func TestAnalyze(t *testing.T) {
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	demo := models.Demographics{BirthDate: "1958-04-02", Gender: "female"}
	data := models.MergeResult{
		Medications: []models.Medication{
			{ID: "m1", Name: "Warfarin 5mg", Status: models.MedicationStatusActive, Source: clinicSrc},
			{ID: "m2", Name: "Ibuprofen 600mg", Status: models.MedicationStatusActive, Source: hospitalSrc},
		},
		LabResults: []models.LabResult{
			{ID: "l1", TestName: "INR", Value: fp(3.4), EffectiveDate: dp(2026, 7, 1), Source: clinicSrc},
		},
	}
	conflicts := []models.Conflict{
		{ID: "conflict-1", Type: models.ConflictTypeDoseMismatch, Severity: models.ConflictSeverityHigh, Description: "dose differs"},
	}

	bundle := Analyze(demo, data, conflicts, now)

	assert.Len(t, bundle.Interactions, 1)
	assert.Equal(t, InteractionCritical, bundle.Interactions[0].Severity)
	assert.Len(t, bundle.ConflictAlerts, 1)
	assert.NotEmpty(t, bundle.CareGaps)
	assert.Len(t, bundle.AbnormalFlags, 1)
	assert.Equal(t, models.LabFlagCriticalHigh, bundle.AbnormalFlags[0].Status)
}
