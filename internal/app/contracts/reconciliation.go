package contracts

import (
	"context"
	"healthbridge-service/internal/app/models"
	"healthbridge-service/internal/pkg/dto/requests"
)

type ReconciliationUsecase interface {
	Reconcile(ctx context.Context, patientID string, request *requests.Reconcile) (*models.ReconciliationReport, error)
	GetLatestReport(ctx context.Context, patientID string) (*models.ReconciliationReport, error)
	GetRun(ctx context.Context, runID string) (*models.ReconciliationRun, error)
	ListRuns(ctx context.Context, patientID string, limit int) ([]models.ReconciliationRun, error)
}
