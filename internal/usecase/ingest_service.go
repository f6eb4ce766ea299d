package usecase

import (
	"context"

	crerr "github.com/cockroachdb/errors"

	"github.com/hallenstats/handball-ingest/internal/platform/logging"
)

const defaultBatchSize = 20

// DocumentFetcher retrieves one combined match document from the upstream API.
type DocumentFetcher interface {
	FetchMatchDocument(ctx context.Context, matchID string) (MatchDocument, error)
}

// BatchStore persists one accumulated batch atomically.
type BatchStore interface {
	SaveBatch(ctx context.Context, batch *Batch) error
}

// RunResult summarizes one ingestion run.
type RunResult struct {
	Success int
	Error   int
	Total   int
}

// IngestService drives the fetch, extract and persist pipeline over a list of
// match ids. A failing match is counted and skipped; a failing flush counts
// every match of that batch as failed. The run itself only fails when the
// service has no store.
type IngestService struct {
	fetcher DocumentFetcher
	extract *ExtractService
	store   BatchStore
	logger  *logging.Logger
}

func NewIngestService(fetcher DocumentFetcher, extract *ExtractService, store BatchStore, logger *logging.Logger) *IngestService {
	if logger == nil {
		logger = logging.Default()
	}
	if extract == nil {
		extract = NewExtractService(logger)
	}
	return &IngestService{
		fetcher: fetcher,
		extract: extract,
		store:   store,
		logger:  logger,
	}
}

func (s *IngestService) Run(ctx context.Context, matchIDs []string, batchSize int) (RunResult, error) {
	ctx, span := startUsecaseSpan(ctx, "IngestService.Run")
	defer span.End()

	result := RunResult{Total: len(matchIDs)}
	if s.store == nil {
		result.Error = len(matchIDs)
		return result, crerr.Wrap(ErrConfiguration, "ingest run")
	}
	if len(matchIDs) == 0 {
		return result, nil
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	batch := NewBatch()
	for _, matchID := range matchIDs {
		extracted, err := s.ingestOne(ctx, matchID)
		if err != nil {
			result.Error++
			s.logger.WarnContext(ctx, "match skipped", "match_id", matchID, "error", err)
			continue
		}
		batch.Add(extracted)

		if batch.Len() >= batchSize {
			s.flush(ctx, batch, &result)
		}
	}
	if batch.Len() > 0 {
		s.flush(ctx, batch, &result)
	}

	s.logger.InfoContext(ctx, "ingest run finished",
		"total", result.Total,
		"success", result.Success,
		"errors", result.Error,
	)
	return result, nil
}

func (s *IngestService) ingestOne(ctx context.Context, matchID string) (ExtractionResult, error) {
	doc, err := s.fetcher.FetchMatchDocument(ctx, matchID)
	if err != nil {
		return ExtractionResult{}, crerr.Wrapf(err, "fetch match %s", matchID)
	}
	return s.extract.Extract(ctx, matchID, doc)
}

// flush persists the batch and updates the run counters. The batch is reset
// regardless of the outcome so the next window starts clean.
func (s *IngestService) flush(ctx context.Context, batch *Batch, result *RunResult) {
	size := batch.Len()
	if err := s.store.SaveBatch(ctx, batch); err != nil {
		result.Error += size
		s.logger.ErrorContext(ctx, "batch flush failed", "matches", size, "error", err)
	} else {
		result.Success += size
		s.logger.InfoContext(ctx, "batch persisted", "matches", size)
	}
	batch.Reset()
}
