package contracts

import (
	"context"
	"healthbridge-service/internal/app/models"
)

type ReportArchive interface {
	EnsureBucket(ctx context.Context) error
	ArchiveReport(ctx context.Context, report *models.ReconciliationReport) (objectName string, err error)
}
