package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dugoutlabs/dugout/internal/app"
	"github.com/dugoutlabs/dugout/internal/config"
	"github.com/dugoutlabs/dugout/internal/domain/team"
	"github.com/dugoutlabs/dugout/internal/observability"
	"github.com/dugoutlabs/dugout/internal/platform/logging"
	"github.com/dugoutlabs/dugout/internal/usecase"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	teamFlag := flag.String("team", "", "team id or full team name")
	date := flag.String("date", "", "game date YYYY-MM-DD (default: today)")
	output := flag.String("output", "", "sink override: json or warehouse")
	dataDir := flag.String("datadir", "", "override the json data directory")
	noSave := flag.Bool("no-save", false, "print the digest without persisting it")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if *output != "" {
		cfg.OutputMode = *output
		if cfg.OutputMode != config.OutputJSON && cfg.OutputMode != config.OutputWarehouse {
			panic(fmt.Errorf("invalid -output %q: valid values are %s, %s", *output, config.OutputJSON, config.OutputWarehouse))
		}
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ref, ok := team.ParseRef(*teamFlag)
	if !ok {
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

	d, err := application.Digest.Build(ctx, ref, gameDate)
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		logger.Info("no final game to digest", "team", ref.String(), "date", gameDate)
		return 0
	case err != nil:
		logger.Error("build digest failed", "team", ref.String(), "date", gameDate, "error", err)
		return 1
	}

	fmt.Println(d.Markdown)

	if *noSave {
		return 0
	}
	if err := application.Digest.Save(ctx, d); err != nil {
		logger.Error("save digest failed", "game_id", d.GamePk, "error", err)
		return 1
	}
	return 0
}

func todayIn(tz string) string {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	return time.Now().In(loc).Format("2006-01-02")
}
