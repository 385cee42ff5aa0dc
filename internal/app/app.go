package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/dugoutlabs/dugout/external/statsapi"
	"github.com/dugoutlabs/dugout/internal/config"
	"github.com/dugoutlabs/dugout/internal/domain/boxscore"
	"github.com/dugoutlabs/dugout/internal/domain/digest"
	"github.com/dugoutlabs/dugout/internal/domain/game"
	"github.com/dugoutlabs/dugout/internal/infrastructure/repository/jsonfile"
	"github.com/dugoutlabs/dugout/internal/infrastructure/repository/postgres"
	"github.com/dugoutlabs/dugout/internal/platform/cache"
	"github.com/dugoutlabs/dugout/internal/platform/logging"
	"github.com/dugoutlabs/dugout/internal/platform/resilience"
	"github.com/dugoutlabs/dugout/internal/usecase"
)

// Application wires the stats client, the configured sink, and the
// services the command line tools run.
type Application struct {
	Config   config.Config
	Log      *logging.Logger
	StatsAPI *statsapi.Client
	Games    game.Repository
	Players  boxscore.Repository
	Digests  digest.Repository
	Ingest   *usecase.IngestService
	Digest   *usecase.DigestService
	Odds     *usecase.OddsService

	db *sqlx.DB
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Application, error) {
	if logger == nil {
		logger = logging.Default()
	}

	client := statsapi.NewClient(statsapi.ClientConfig{
		BaseURL:    cfg.StatsAPIBaseURL,
		Timeout:    cfg.StatsAPITimeout,
		MaxRetries: cfg.StatsAPIMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.StatsAPICircuitEnabled,
			FailureThreshold: cfg.StatsAPICircuitFailureCount,
			OpenTimeout:      cfg.StatsAPICircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.StatsAPICircuitHalfOpenMaxReq,
		},
	})

	// Raw payload archival always goes to disk, even when the rows
	// land in the warehouse.
	fileStore := jsonfile.NewStore(cfg.DataDir)

	app := &Application{
		Config:   cfg,
		Log:      logger,
		StatsAPI: client,
		Games:    fileStore,
		Players:  fileStore,
		Digests:  fileStore,
	}

	if cfg.OutputMode == config.OutputWarehouse {
		db, err := connectDB(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		app.db = db
		app.Games = postgres.NewGameRepository(db)
		app.Players = postgres.NewBoxscoreRepository(db)
		app.Digests = postgres.NewDigestRepository(db)
	}

	var standingsCache *cache.Store
	if cfg.CacheEnabled {
		standingsCache = cache.NewStore(cfg.CacheTTL)
	}
	app.Odds = usecase.NewOddsService(client, standingsCache, logger)

	app.Ingest = usecase.NewIngestService(client, app.Games, app.Players, fileStore, usecase.IngestOptions{
		Workers:      cfg.IngestWorkers,
		PollInterval: cfg.IngestPollInterval,
		MaxWait:      cfg.IngestMaxWait,
	}, logger)

	app.Digest = usecase.NewDigestService(app.Games, app.Players, app.Digests, app.Odds, logger)

	return app, nil
}

func (a *Application) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

func connectDB(ctx context.Context, cfg config.Config, logger *logging.Logger) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := sqlx.ConnectContext(ctx, "postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("connect warehouse db: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	logger.Info("warehouse db connected", "db_name", dbNameFromURL(cfg.DBURL))

	return db, nil
}
