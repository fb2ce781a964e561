package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":   "is required",
	"min":        "must be at least %s characters long",
	"max":        "maximum at %s characters long",
	"numeric":    "must be a number",
	"len":        "must be %s characters long",
	"oneof":      "must be one of [%s]",
	"gt":         "must be greater than %s",
	"gte":        "must be greater than or equal to %s",
	"lt":         "must be less than %s",
	"lte":        "must be less than or equal to %s",
	"url":        "must be a valid URL",
	"uuid":       "must be a valid UUID",
	"birth_date": "must be a valid date in YYYY-MM-DD format",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"len":   true,
	"gt":    true,
	"gte":   true,
	"lt":    true,
	"lte":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNoSourceData                  = "none of your record sources returned any data"
	ErrClientReportNotFound                = "no reconciliation report found for this patient"
	ErrClientRunNotFound                   = "reconciliation run not found"
	ErrClientUnknownReferenceTable         = "unknown reference table"
)

// Error messages for developers
const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevCannotParseJSON          = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON        = "cannot convert struct or other data types to JSON"
	ErrDevCannotParseDate          = "cannot parse the requested date"
	ErrDevValidationFailed         = "validation failed"
	ErrDevURLParamValidationFailed = "parameter %s validation failed"
	ErrDevServerDeadlineExceeded   = "server deadline exceeded"
	ErrDevServerProcess            = "error while processing request"
	ErrDevMissingRequestID         = "request id missing from context"

	// HTTP client messages
	ErrDevCreateHTTPRequest = "failed to create HTTP request"
	ErrDevSendHTTPRequest   = "failed to send HTTP request"

	// Source gateway messages
	ErrDevSourceFetchFailed      = "failed to fetch record bundle from source %s"
	ErrDevSourceDecodeFailed     = "failed to decode record bundle from source %s"
	ErrDevSourceBadStatus        = "source %s responded with unexpected status %d"
	ErrDevSourceRateLimited      = "outbound request to source %s rejected by rate limiter"
	ErrDevNoSourceData           = "no source returned any data for the patient"
	ErrDevUnknownSource          = "no record source configured with id %s"
	ErrDevUnknownReferenceTable  = "no reference table registered under the requested name"
	ErrDevRunNotFound            = "run document not found"
	ErrDevCachedReportNotFound   = "no cached report found for patient"

	// Database messages
	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToIterateDocuments = "failed when iterating documents from database"

	// Redis messages
	ErrDevRedisGetData = "failed to get data from redis"
	ErrDevRedisSetData = "failed to set data into redis"

	// RabbitMQ messages
	ErrDevRabbitMQPublish = "failed to publish message to queue %s"

	// Minio messages
	ErrDevMinioFailedToCreateObject = "failed to create object into minio storage with bucket name '%s'"
	ErrDevMinioFailedToEnsureBucket = "failed to ensure minio bucket '%s' exists"
)
