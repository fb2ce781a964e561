package config

type (
	InternalConfig struct {
		App            App
		Reconciliation Reconciliation
		Sources        []RecordSource
	}

	App struct {
		Env             string
		Port            string
		Version         string
		EndpointPrefix  string
		MaxRequests     int
		ShutdownTimeout int
	}

	Reconciliation struct {
		SourceFetchTimeoutSeconds int
		ReportCacheTTLMinutes     int
		RunListDefaultLimit       int
	}

	// RecordSource is one configured upstream health-record system.
	RecordSource struct {
		ID                string
		Name              string
		BaseURL           string
		RequestsPerSecond float64
		Burst             int
	}
)
