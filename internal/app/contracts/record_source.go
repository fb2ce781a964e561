package contracts

import (
	"context"
	"healthbridge-service/internal/app/models"
)

// RecordSourceClient fetches one health-record system's normalized record
// bundle for a patient. Implementations own their outbound rate limiting.
type RecordSourceClient interface {
	SourceID() string
	SourceName() string
	FetchRecordBundle(ctx context.Context, patientID string) (*models.SourceSnapshot, error)
}
