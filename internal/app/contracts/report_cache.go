package contracts

import (
	"context"
	"healthbridge-service/internal/app/models"
)

// ReportCache holds the latest report per patient. GetLatestReport returns
// (nil, nil) on a cache miss.
type ReportCache interface {
	SetLatestReport(ctx context.Context, patientID string, report *models.ReconciliationReport) error
	GetLatestReport(ctx context.Context, patientID string) (*models.ReconciliationReport, error)
}
