package contracts

import (
	"context"
	"healthbridge-service/internal/app/models"
)

// AlertPublisher pushes critical conflicts to the notification queue. A
// publish failure must never fail the run that produced the conflicts.
type AlertPublisher interface {
	PublishCriticalConflicts(ctx context.Context, report *models.ReconciliationReport) error
	Close() error
}
