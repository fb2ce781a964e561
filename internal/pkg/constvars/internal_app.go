package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	ResourcePatients      = "patients"
	ResourceRuns          = "runs"
	ResourceReference     = "reference"
	ResourceReports       = "reports"
	ResourceRecordBundles = "records"
)

const (
	URLParamPatientID = "patient_id"
	URLParamRunID     = "run_id"
	URLParamTableName = "table_name"
)

const (
	MongoCollectionRuns = "reconciliation_runs"
)

const (
	RedisKeyLatestReportFormat = "healthbridge:report:%s"
)

const (
	MinioReportObjectFormat = "reports/%s/%s.json"
)

const (
	CriticalConflictQueueName = "healthbridge_critical_conflicts"
)
