package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/hallenstats/handball-ingest/external/handballnet"
	"github.com/hallenstats/handball-ingest/internal/config"
	"github.com/hallenstats/handball-ingest/internal/infrastructure/repository/postgres"
	"github.com/hallenstats/handball-ingest/internal/platform/logging"
	"github.com/hallenstats/handball-ingest/internal/platform/resilience"
	"github.com/hallenstats/handball-ingest/internal/usecase"
)

// Pipeline bundles the wired ingestion components and owns the database
// handle.
type Pipeline struct {
	DB     *sqlx.DB
	Client *handballnet.Client
	Ingest *usecase.IngestService
}

func NewPipeline(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	client := handballnet.NewClient(handballnet.ClientConfig{
		HTTPClient: &http.Client{Timeout: cfg.HandballTimeout},
		BaseURL:    cfg.HandballBaseURL,
		IDPrefix:   cfg.HandballIDPrefix,
		UserAgent:  cfg.HandballUserAgent,
		Timeout:    cfg.HandballTimeout,
		MaxRetries: cfg.HandballMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.HandballCircuitEnabled,
			FailureThreshold: cfg.HandballCircuitFailureCount,
			OpenTimeout:      cfg.HandballCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.HandballCircuitHalfOpenReq,
		},
	})

	store := postgres.NewBatchRepository(db)
	extract := usecase.NewExtractService(logger)
	ingest := usecase.NewIngestService(client, extract, store, logger)

	return &Pipeline{
		DB:     db,
		Client: client,
		Ingest: ingest,
	}, nil
}

func (p *Pipeline) Close() error {
	if p == nil || p.DB == nil {
		return nil
	}
	return p.DB.Close()
}

func openDatabase(ctx context.Context, cfg config.Config, logger *logging.Logger) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.InfoContext(ctx, "database connected", "database", dbNameFromURL(cfg.DBURL))
	return db, nil
}
