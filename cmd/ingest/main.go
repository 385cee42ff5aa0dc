package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dugoutlabs/dugout/internal/app"
	"github.com/dugoutlabs/dugout/internal/config"
	"github.com/dugoutlabs/dugout/internal/observability"
	"github.com/dugoutlabs/dugout/internal/platform/logging"
	"github.com/dugoutlabs/dugout/internal/usecase"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	teamID := flag.Int64("team", 0, "MLB team id to ingest")
	date := flag.String("date", "", "game date YYYY-MM-DD (default: today)")
	wait := flag.Bool("wait", false, "poll the schedule until every game is final")
	outDir := flag.String("outdir", "", "override the output directory for json files")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if *outDir != "" {
		cfg.DataDir = *outDir
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	if *teamID <= 0 {
		logger.Error("team flag is required")
		flag.Usage()
		return 2
	}

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return 1
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("shutdown tracing", "error", err)
		}
	}()

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		return 1
	}
	defer func() {
		if err := stopProfiler(); err != nil {
			logger.Error("stop profiler", "error", err)
		}
	}()

	pprofSrv, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		logger.Error("start pprof server", "error", err)
		return 1
	}
	defer func() {
		if err := observability.StopPprofServer(pprofSrv, logger, 5*time.Second); err != nil {
			logger.Error("stop pprof server", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gameDate := *date
	if gameDate == "" {
		gameDate = todayIn(cfg.Timezone)
	}

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		return 1
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error("close app", "error", err)
		}
	}()

	result, err := application.Ingest.Run(ctx, *teamID, gameDate, *wait)
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		logger.Info("no games scheduled", "team_id", *teamID, "date", gameDate)
		return 0
	case err != nil:
		logger.Error("ingest failed", "team_id", *teamID, "date", gameDate, "error", err)
		return 1
	}

	logger.Info("ingest complete",
		"team_id", *teamID,
		"date", gameDate,
		"games", result.GamesIngested,
		"players_kept", result.PlayersKept,
		"players_dropped", result.PlayersDropped,
		"waited", result.WaitedFor.String(),
	)
	return 0
}

func todayIn(tz string) string {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	return time.Now().In(loc).Format("2006-01-02")
}
