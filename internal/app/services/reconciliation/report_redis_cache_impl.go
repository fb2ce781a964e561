package reconciliation

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"healthbridge-service/internal/app/contracts"
	"healthbridge-service/internal/app/models"
	"healthbridge-service/internal/pkg/constvars"
	"healthbridge-service/internal/pkg/exceptions"
)

type reportRedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewReportRedisCache(client *redis.Client, ttl time.Duration) contracts.ReportCache {
	return &reportRedisCache{client: client, ttl: ttl}
}

func (c *reportRedisCache) SetLatestReport(ctx context.Context, patientID string, report *models.ReconciliationReport) error {
	jsonValue, err := json.Marshal(report)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	key := fmt.Sprintf(constvars.RedisKeyLatestReportFormat, patientID)
	if err := c.client.Set(ctx, key, jsonValue, c.ttl).Err(); err != nil {
		return exceptions.ErrRedisSet(err)
	}
	return nil
}

func (c *reportRedisCache) GetLatestReport(ctx context.Context, patientID string) (*models.ReconciliationReport, error) {
	key := fmt.Sprintf(constvars.RedisKeyLatestReportFormat, patientID)
	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrRedisGet(err)
	}

	report := new(models.ReconciliationReport)
	if err := json.Unmarshal([]byte(data), report); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return report, nil
}
