package contracts

import (
	"context"
	"healthbridge-service/internal/app/models"
)

type RunRepository interface {
	InsertRun(ctx context.Context, run *models.ReconciliationRun) error
	FindRunByID(ctx context.Context, runID string) (*models.ReconciliationRun, error)
	FindRunsByPatientID(ctx context.Context, patientID string, limit int) ([]models.ReconciliationRun, error)
}
