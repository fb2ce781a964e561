package reconciliation

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"healthbridge-service/internal/app/config"
	"healthbridge-service/internal/app/contracts"
	"healthbridge-service/internal/app/models"
	"healthbridge-service/internal/pkg/constvars"
	"healthbridge-service/internal/pkg/exceptions"
)

type recordSourceHTTPClient struct {
	sourceID   string
	sourceName string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewRecordSourceHTTPClient builds the gateway client for one configured
// record source. Each client carries its own token-bucket limiter so one
// aggressive reconcile loop cannot hammer an upstream system.
func NewRecordSourceHTTPClient(source config.RecordSource, requestTimeout time.Duration) contracts.RecordSourceClient {
	return &recordSourceHTTPClient{
		sourceID:   source.ID,
		sourceName: source.Name,
		baseURL:    source.BaseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		limiter:    rate.NewLimiter(rate.Limit(source.RequestsPerSecond), source.Burst),
	}
}

func (c *recordSourceHTTPClient) SourceID() string {
	return c.sourceID
}

func (c *recordSourceHTTPClient) SourceName() string {
	return c.sourceName
}

func (c *recordSourceHTTPClient) FetchRecordBundle(ctx context.Context, patientID string) (*models.SourceSnapshot, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, exceptions.ErrSourceRateLimited(err, c.sourceID)
	}

	url := fmt.Sprintf("%s/%s/%s/%s", c.baseURL, constvars.ResourcePatients, patientID, constvars.ResourceRecordBundles)
	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, url, nil)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, exceptions.ErrSourceFetch(err, c.sourceID)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		return nil, exceptions.ErrSourceBadStatus(c.sourceID, resp.StatusCode)
	}

	snapshot := new(models.SourceSnapshot)
	if err := json.NewDecoder(resp.Body).Decode(snapshot); err != nil {
		return nil, exceptions.ErrSourceDecode(err, c.sourceID)
	}

	c.stampSnapshot(snapshot, time.Now().UTC())
	return snapshot, nil
}

// stampSnapshot overwrites every record's source tag with this client's
// identity. Upstream payloads are not trusted to label themselves; the
// provenance invariant depends on the tag being set here exactly once.
func (c *recordSourceHTTPClient) stampSnapshot(snapshot *models.SourceSnapshot, fetchedAt time.Time) {
	tag := models.SourceTag{
		SystemName: c.sourceName,
		SystemID:   c.sourceID,
		FetchedAt:  fetchedAt,
	}
	snapshot.Source = tag

	for i := range snapshot.Medications {
		snapshot.Medications[i].Source = tag
	}
	for i := range snapshot.LabResults {
		snapshot.LabResults[i].Source = tag
	}
	for i := range snapshot.Vitals {
		snapshot.Vitals[i].Source = tag
	}
	for i := range snapshot.Allergies {
		snapshot.Allergies[i].Source = tag
	}
	for i := range snapshot.Conditions {
		snapshot.Conditions[i].Source = tag
	}
	for i := range snapshot.Immunizations {
		snapshot.Immunizations[i].Source = tag
	}
	for i := range snapshot.Encounters {
		snapshot.Encounters[i].Source = tag
	}
}
