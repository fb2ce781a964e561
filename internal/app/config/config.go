package config

import (
	"healthbridge-service/internal/pkg/utils"
	"strings"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "healthbridge"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
		},
		Minio: Minio{
			Port:       utils.GetEnvString("MINIO_PORT", "9000"),
			Host:       utils.GetEnvString("MINIO_HOST", "localhost"),
			Username:   utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password:   utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			BucketName: utils.GetEnvString("MINIO_BUCKET_NAME", "healthbridge-reports"),
			UseSSL:     utils.GetEnvBool("MINIO_USE_SSL", false),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:             utils.GetEnvString("APP_ENV", "development"),
			Port:            utils.GetEnvString("APP_PORT", ":8080"),
			Version:         utils.GetEnvString("APP_VERSION", "v1"),
			EndpointPrefix:  utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:     utils.GetEnvInt("APP_MAX_REQUEST", 10),
			ShutdownTimeout: utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
		},
		Reconciliation: Reconciliation{
			SourceFetchTimeoutSeconds: utils.GetEnvInt("RECONCILE_SOURCE_FETCH_TIMEOUT_SECONDS", 15),
			ReportCacheTTLMinutes:     utils.GetEnvInt("RECONCILE_REPORT_CACHE_TTL_MINUTES", 30),
			RunListDefaultLimit:       utils.GetEnvInt("RECONCILE_RUN_LIST_DEFAULT_LIMIT", 20),
		},
		Sources: parseRecordSources(
			utils.GetEnvString("RECORD_SOURCES", "clinic|Downtown Clinic|http://localhost:9001;hospital|General Hospital|http://localhost:9002"),
			utils.GetEnvFloat("RECORD_SOURCE_REQUESTS_PER_SECOND", 5),
			utils.GetEnvInt("RECORD_SOURCE_BURST", 10),
		),
	}
}

// parseRecordSources reads the RECORD_SOURCES env format:
// "id|display name|base url" entries separated by semicolons. Malformed
// entries are skipped.
func parseRecordSources(raw string, requestsPerSecond float64, burst int) []RecordSource {
	var sources []RecordSource
	for _, entry := range strings.Split(raw, ";") {
		parts := strings.Split(strings.TrimSpace(entry), "|")
		if len(parts) != 3 {
			continue
		}
		id := strings.TrimSpace(parts[0])
		name := strings.TrimSpace(parts[1])
		baseURL := strings.TrimRight(strings.TrimSpace(parts[2]), "/")
		if id == "" || name == "" || baseURL == "" {
			continue
		}
		sources = append(sources, RecordSource{
			ID:                id,
			Name:              name,
			BaseURL:           baseURL,
			RequestsPerSecond: requestsPerSecond,
			Burst:             burst,
		})
	}
	return sources
}
