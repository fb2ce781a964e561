package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Reconciliation messages
	ReconciliationRunSuccess = "reconciliation completed successfully"
	ReportGetSuccess         = "get report successfully"
	RunGetSuccess            = "get reconciliation run successfully"
	RunListSuccess           = "get reconciliation runs successfully"
	ReferenceTableGetSuccess = "get reference table successfully"
	HealthCheckSuccess       = "service is healthy"
)
