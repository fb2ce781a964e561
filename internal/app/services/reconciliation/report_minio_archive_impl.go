package reconciliation

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"

	"healthbridge-service/internal/app/contracts"
	"healthbridge-service/internal/app/models"
	"healthbridge-service/internal/pkg/constvars"
	"healthbridge-service/internal/pkg/exceptions"
)

type reportMinioArchive struct {
	MinioClient *minio.Client
	BucketName  string
}

func NewReportMinioArchive(minioClient *minio.Client, bucketName string) contracts.ReportArchive {
	return &reportMinioArchive{
		MinioClient: minioClient,
		BucketName:  bucketName,
	}
}

func (a *reportMinioArchive) EnsureBucket(ctx context.Context) error {
	exists, err := a.MinioClient.BucketExists(ctx, a.BucketName)
	if err != nil {
		return exceptions.ErrMinioEnsureBucket(err, a.BucketName)
	}
	if exists {
		return nil
	}
	if err := a.MinioClient.MakeBucket(ctx, a.BucketName, minio.MakeBucketOptions{}); err != nil {
		return exceptions.ErrMinioEnsureBucket(err, a.BucketName)
	}
	return nil
}

func (a *reportMinioArchive) ArchiveReport(ctx context.Context, report *models.ReconciliationReport) (string, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return "", exceptions.ErrCannotMarshalJSON(err)
	}

	objectName := fmt.Sprintf(constvars.MinioReportObjectFormat, report.PatientID, report.RunID)
	_, err = a.MinioClient.PutObject(ctx, a.BucketName, objectName, bytes.NewReader(payload), int64(len(payload)), minio.PutObjectOptions{
		ContentType: constvars.MIMEApplicationJSON,
	})
	if err != nil {
		return "", exceptions.ErrMinioCreateObject(err, a.BucketName)
	}
	return objectName, nil
}
