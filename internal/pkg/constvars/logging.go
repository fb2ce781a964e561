package constvars

const (
	LoggingRequestIDKey  = "request_id"
	LoggingPatientIDKey  = "patient_id"
	LoggingRunIDKey      = "run_id"
	LoggingSourceIDKey   = "source_id"
	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"
	LoggingDurationKey   = "duration"
	LoggingSuccessKey    = "success"
)
