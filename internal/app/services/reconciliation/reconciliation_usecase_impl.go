package reconciliation

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"healthbridge-service/internal/app/config"
	"healthbridge-service/internal/app/contracts"
	"healthbridge-service/internal/app/models"
	"healthbridge-service/internal/app/services/conflicts"
	"healthbridge-service/internal/app/services/insights"
	"healthbridge-service/internal/app/services/matching"
	"healthbridge-service/internal/app/services/merge"
	"healthbridge-service/internal/pkg/constvars"
	"healthbridge-service/internal/pkg/dto/requests"
	"healthbridge-service/internal/pkg/exceptions"
	"healthbridge-service/internal/pkg/utils"
)

type reconciliationUsecase struct {
	Log            *zap.Logger
	SourceClients  []contracts.RecordSourceClient
	RunRepository  contracts.RunRepository
	ReportCache    contracts.ReportCache
	ReportArchive  contracts.ReportArchive
	AlertPublisher contracts.AlertPublisher
	InternalConfig *config.InternalConfig
}

func NewReconciliationUsecase(
	logger *zap.Logger,
	sourceClients []contracts.RecordSourceClient,
	runRepository contracts.RunRepository,
	reportCache contracts.ReportCache,
	reportArchive contracts.ReportArchive,
	alertPublisher contracts.AlertPublisher,
	internalConfig *config.InternalConfig,
) contracts.ReconciliationUsecase {
	return &reconciliationUsecase{
		Log:            logger,
		SourceClients:  sourceClients,
		RunRepository:  runRepository,
		ReportCache:    reportCache,
		ReportArchive:  reportArchive,
		AlertPublisher: alertPublisher,
		InternalConfig: internalConfig,
	}
}

// fetchResult pairs one source client with the outcome of its fetch.
type fetchResult struct {
	client   contracts.RecordSourceClient
	snapshot *models.SourceSnapshot
	err      error
}

func (uc *reconciliationUsecase) Reconcile(ctx context.Context, patientID string, request *requests.Reconcile) (*models.ReconciliationReport, error) {
	if !request.Force {
		cached, err := uc.ReportCache.GetLatestReport(ctx, patientID)
		if err != nil {
			uc.Log.Warn("reconciliationUsecase.Reconcile cache read failed",
				zap.String(constvars.LoggingPatientIDKey, patientID),
				zap.Error(err),
			)
		} else if cached != nil {
			return cached, nil
		}
	}

	clients, err := uc.selectClients(request.Sources)
	if err != nil {
		return nil, err
	}

	results := uc.fetchAll(ctx, clients, patientID)

	anchor := models.Demographics{
		FirstName: request.Demographics.FirstName,
		LastName:  request.Demographics.LastName,
		BirthDate: request.Demographics.BirthDate,
		Gender:    request.Demographics.Gender,
		MRN:       request.Demographics.MRN,
	}

	statuses, included := uc.gateResults(results, anchor, patientID)

	totalRecords := 0
	for _, status := range statuses {
		if status.State == models.SourceStateIncluded {
			totalRecords += status.RecordCount
		}
	}
	if totalRecords == 0 {
		return nil, exceptions.ErrNoSourceData()
	}

	merged := merge.Run(included)

	var includedTags []models.SourceTag
	for _, snap := range included {
		includedTags = append(includedTags, snap.Source)
	}
	detected := conflicts.Detect(merged, includedTags)

	now := time.Now().UTC()
	report := &models.ReconciliationReport{
		RunID:       utils.GenerateRunID(),
		PatientID:   patientID,
		GeneratedAt: now,
		Sources:     statuses,
		Merged:      merged,
		Conflicts:   detected,
		Insights:    insights.Analyze(anchor, merged, detected, now),
	}

	run := &models.ReconciliationRun{
		RunID:     report.RunID,
		PatientID: patientID,
		CreatedAt: now,
		Report:    *report,
	}
	if err := uc.RunRepository.InsertRun(ctx, run); err != nil {
		return nil, err
	}

	if err := uc.ReportCache.SetLatestReport(ctx, patientID, report); err != nil {
		uc.Log.Warn("reconciliationUsecase.Reconcile cache write failed",
			zap.String(constvars.LoggingRunIDKey, report.RunID),
			zap.Error(err),
		)
	}

	if objectName, err := uc.ReportArchive.ArchiveReport(ctx, report); err != nil {
		uc.Log.Warn("reconciliationUsecase.Reconcile archive failed",
			zap.String(constvars.LoggingRunIDKey, report.RunID),
			zap.Error(err),
		)
	} else {
		uc.Log.Info("reconciliationUsecase.Reconcile report archived",
			zap.String(constvars.LoggingRunIDKey, report.RunID),
			zap.String("object_name", objectName),
		)
	}

	if len(report.CriticalConflicts()) > 0 {
		if err := uc.AlertPublisher.PublishCriticalConflicts(ctx, report); err != nil {
			uc.Log.Error("reconciliationUsecase.Reconcile alert publish failed",
				zap.String(constvars.LoggingRunIDKey, report.RunID),
				zap.Error(err),
			)
		}
	}

	return report, nil
}

func (uc *reconciliationUsecase) GetLatestReport(ctx context.Context, patientID string) (*models.ReconciliationReport, error) {
	cached, err := uc.ReportCache.GetLatestReport(ctx, patientID)
	if err != nil {
		uc.Log.Warn("reconciliationUsecase.GetLatestReport cache read failed",
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
	} else if cached != nil {
		return cached, nil
	}

	runs, err := uc.RunRepository.FindRunsByPatientID(ctx, patientID, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, exceptions.ErrReportNotFound(nil)
	}
	return &runs[0].Report, nil
}

func (uc *reconciliationUsecase) GetRun(ctx context.Context, runID string) (*models.ReconciliationRun, error) {
	run, err := uc.RunRepository.FindRunByID(ctx, runID)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, exceptions.ErrRunNotFound(nil)
	}
	return run, nil
}

func (uc *reconciliationUsecase) ListRuns(ctx context.Context, patientID string, limit int) ([]models.ReconciliationRun, error) {
	if limit <= 0 {
		limit = uc.InternalConfig.Reconciliation.RunListDefaultLimit
	}
	return uc.RunRepository.FindRunsByPatientID(ctx, patientID, limit)
}

// selectClients resolves the requested source subset, or every configured
// source when the request names none. An unknown source id is a request error.
func (uc *reconciliationUsecase) selectClients(sourceIDs []string) ([]contracts.RecordSourceClient, error) {
	if len(sourceIDs) == 0 {
		return uc.SourceClients, nil
	}

	byID := map[string]contracts.RecordSourceClient{}
	for _, client := range uc.SourceClients {
		byID[client.SourceID()] = client
	}

	var selected []contracts.RecordSourceClient
	for _, id := range sourceIDs {
		client, ok := byID[id]
		if !ok {
			return nil, exceptions.ErrUnknownSource(id)
		}
		selected = append(selected, client)
	}
	return selected, nil
}

// fetchAll queries every selected source in parallel. Each fetch gets its own
// timeout; a failure becomes a result carrying the error, never a panic or an
// aborted run.
func (uc *reconciliationUsecase) fetchAll(ctx context.Context, clients []contracts.RecordSourceClient, patientID string) []fetchResult {
	timeout := time.Duration(uc.InternalConfig.Reconciliation.SourceFetchTimeoutSeconds) * time.Second

	results := make([]fetchResult, len(clients))
	var wg sync.WaitGroup
	for i, client := range clients {
		wg.Add(1)
		go func(i int, client contracts.RecordSourceClient) {
			defer wg.Done()

			fetchCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			snapshot, err := client.FetchRecordBundle(fetchCtx, patientID)
			results[i] = fetchResult{client: client, snapshot: snapshot, err: err}
		}(i, client)
	}
	wg.Wait()
	return results
}

// gateResults turns raw fetch outcomes into per-source statuses and the list
// of snapshots admitted to the merge. A source whose demographics fail the
// identity gate is excluded explicitly with its confidence on record.
func (uc *reconciliationUsecase) gateResults(results []fetchResult, anchor models.Demographics, patientID string) ([]models.SourceStatus, []models.SourceSnapshot) {
	statuses := make([]models.SourceStatus, 0, len(results))
	var included []models.SourceSnapshot

	for _, result := range results {
		status := models.SourceStatus{
			SourceID:   result.client.SourceID(),
			SourceName: result.client.SourceName(),
		}

		if result.err != nil {
			status.State = models.SourceStateFailed
			status.Detail = result.err.Error()
			uc.Log.Warn("reconciliationUsecase source fetch failed",
				zap.String(constvars.LoggingPatientIDKey, patientID),
				zap.String(constvars.LoggingSourceIDKey, status.SourceID),
				zap.Error(result.err),
			)
			statuses = append(statuses, status)
			continue
		}

		status.RecordCount = snapshotRecordCount(result.snapshot)

		if result.snapshot.Demographics != nil {
			match := matching.Match(anchor, *result.snapshot.Demographics)
			status.MatchConfidence = &match.Confidence
			if !match.IsMatch {
				status.State = models.SourceStateExcluded
				status.Detail = "identity match below threshold"
				uc.Log.Warn("reconciliationUsecase source excluded by identity gate",
					zap.String(constvars.LoggingPatientIDKey, patientID),
					zap.String(constvars.LoggingSourceIDKey, status.SourceID),
					zap.Float64("confidence", match.Confidence),
				)
				statuses = append(statuses, status)
				continue
			}
		}

		status.State = models.SourceStateIncluded
		statuses = append(statuses, status)
		included = append(included, *result.snapshot)
	}

	return statuses, included
}

func snapshotRecordCount(snapshot *models.SourceSnapshot) int {
	return len(snapshot.Medications) +
		len(snapshot.LabResults) +
		len(snapshot.Vitals) +
		len(snapshot.Allergies) +
		len(snapshot.Conditions) +
		len(snapshot.Immunizations) +
		len(snapshot.Encounters)
}
