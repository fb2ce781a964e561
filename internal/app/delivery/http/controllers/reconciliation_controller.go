package controllers

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"healthbridge-service/internal/app/contracts"
	"healthbridge-service/internal/pkg/constvars"
	"healthbridge-service/internal/pkg/dto/requests"
	"healthbridge-service/internal/pkg/exceptions"
	"healthbridge-service/internal/pkg/utils"
)

type ReconciliationController struct {
	Log                   *zap.Logger
	ReconciliationUsecase contracts.ReconciliationUsecase
}

var (
	reconciliationControllerInstance *ReconciliationController
	onceReconciliationController     sync.Once
)

func NewReconciliationController(logger *zap.Logger, reconciliationUsecase contracts.ReconciliationUsecase) *ReconciliationController {
	onceReconciliationController.Do(func() {
		instance := &ReconciliationController{
			Log:                   logger,
			ReconciliationUsecase: reconciliationUsecase,
		}
		reconciliationControllerInstance = instance
	})
	return reconciliationControllerInstance
}

func (ctrl *ReconciliationController) ReconcilePatient(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ReconciliationController.ReconcilePatient requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	patientID := chi.URLParam(r, constvars.URLParamPatientID)
	ctrl.Log.Info("ReconciliationController.ReconcilePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	request := new(requests.Reconcile)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("ReconciliationController.ReconcilePatient error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("ReconciliationController.ReconcilePatient validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	report, err := ctrl.ReconciliationUsecase.Reconcile(ctx, patientID, request)
	if err != nil {
		ctrl.Log.Error("ReconciliationController.ReconcilePatient error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("ReconciliationController.ReconcilePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRunIDKey, report.RunID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReconciliationRunSuccess, report)
}

func (ctrl *ReconciliationController) GetLatestReport(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ReconciliationController.GetLatestReport requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	patientID := chi.URLParam(r, constvars.URLParamPatientID)
	ctrl.Log.Info("ReconciliationController.GetLatestReport called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	report, err := ctrl.ReconciliationUsecase.GetLatestReport(ctx, patientID)
	if err != nil {
		ctrl.Log.Error("ReconciliationController.GetLatestReport error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("ReconciliationController.GetLatestReport succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRunIDKey, report.RunID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReportGetSuccess, report)
}

func (ctrl *ReconciliationController) ListRunsByPatientID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ReconciliationController.ListRunsByPatientID requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	patientID := chi.URLParam(r, constvars.URLParamPatientID)
	ctrl.Log.Info("ReconciliationController.ListRunsByPatientID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			ctrl.Log.Error("ReconciliationController.ListRunsByPatientID invalid limit",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(err, "limit"))
			return
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	runs, err := ctrl.ReconciliationUsecase.ListRuns(ctx, patientID, limit)
	if err != nil {
		ctrl.Log.Error("ReconciliationController.ListRunsByPatientID error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("ReconciliationController.ListRunsByPatientID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RunListSuccess, runs)
}

func (ctrl *ReconciliationController) FindRunByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ReconciliationController.FindRunByID requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	runID := chi.URLParam(r, constvars.URLParamRunID)
	ctrl.Log.Info("ReconciliationController.FindRunByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRunIDKey, runID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	run, err := ctrl.ReconciliationUsecase.GetRun(ctx, runID)
	if err != nil {
		ctrl.Log.Error("ReconciliationController.FindRunByID error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("ReconciliationController.FindRunByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRunIDKey, runID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RunGetSuccess, run)
}
