package controllers

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"healthbridge-service/internal/app/services/conflicts"
	"healthbridge-service/internal/app/services/insights"
	"healthbridge-service/internal/pkg/constvars"
	"healthbridge-service/internal/pkg/dto/responses"
	"healthbridge-service/internal/pkg/exceptions"
	"healthbridge-service/internal/pkg/utils"
)

// ReferenceController serves read-only views of the versioned clinical tables
// the detectors run on, so clients can display why an alert fired.
type ReferenceController struct {
	Log *zap.Logger
}

var (
	referenceControllerInstance *ReferenceController
	onceReferenceController     sync.Once
)

func NewReferenceController(logger *zap.Logger) *ReferenceController {
	onceReferenceController.Do(func() {
		referenceControllerInstance = &ReferenceController{Log: logger}
	})
	return referenceControllerInstance
}

const (
	tableInteractions    = "interactions"
	tableCareGapRules    = "care-gap-rules"
	tableCrossReactivity = "cross-reactivity"
)

func (ctrl *ReferenceController) GetReferenceTable(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ReferenceController.GetReferenceTable requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	tableName := chi.URLParam(r, constvars.URLParamTableName)
	ctrl.Log.Info("ReferenceController.GetReferenceTable called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("table_name", tableName),
	)

	var data interface{}
	switch tableName {
	case tableInteractions:
		data = interactionRuleViews()
	case tableCareGapRules:
		data = careGapRuleViews()
	case tableCrossReactivity:
		data = crossReactivityViews()
	default:
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrUnknownReferenceTable(tableName))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReferenceTableGetSuccess, data)
}

func interactionRuleViews() []responses.InteractionRule {
	out := make([]responses.InteractionRule, 0, len(insights.InteractionTable))
	for _, rule := range insights.InteractionTable {
		out = append(out, responses.InteractionRule{
			ID:       rule.ID,
			PatternA: rule.PatternA.String(),
			PatternB: rule.PatternB.String(),
			Severity: rule.Severity,
			Effect:   rule.Effect,
		})
	}
	return out
}

func careGapRuleViews() []responses.CareGapRule {
	out := make([]responses.CareGapRule, 0, len(insights.CareGapRules))
	for _, rule := range insights.CareGapRules {
		out = append(out, responses.CareGapRule{
			ID:             rule.ID,
			Name:           rule.Name,
			Description:    rule.Description,
			BasePriority:   rule.BasePriority,
			IntervalMonths: rule.IntervalMonths,
		})
	}
	return out
}

func crossReactivityViews() []responses.CrossReactivityEntry {
	out := make([]responses.CrossReactivityEntry, 0, len(conflicts.CrossReactivityTable))
	for _, entry := range conflicts.CrossReactivityTable {
		out = append(out, responses.CrossReactivityEntry{
			Class:      entry.Class,
			Substances: entry.Substances,
			Drugs:      entry.Drugs,
			Note:       entry.Note,
		})
	}
	return out
}
