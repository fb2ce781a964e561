package insights

import (
	"time"

	"healthbridge-service/internal/app/models"
)

// Analyze runs all six deterministic analyzers over one run's merged data.
// Every analyzer is independent and pure; nothing here touches shared state,
// performs I/O, or depends on call order.
func Analyze(demographics models.Demographics, data models.MergeResult, conflicts []models.Conflict, now time.Time) models.InsightBundle {
	return models.InsightBundle{
		AbnormalFlags:     FlagAbnormalLabs(data.LabResults, DefaultCriticalFactor),
		Trends:            AnalyzeLabTrends(data.LabResults),
		CareGaps:          EvaluateCareGaps(demographics, data, now),
		Interactions:      FindInteractions(data.Medications),
		ConflictAlerts:    TranslateConflicts(conflicts),
		VitalCorrelations: CorrelateVitals(data.Vitals, data.Medications, data.Conditions),
	}
}
