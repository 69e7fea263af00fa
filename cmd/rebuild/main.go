package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/footy-tracker/internal/app"
	"github.com/riskibarqy/footy-tracker/internal/config"
	"github.com/riskibarqy/footy-tracker/internal/platform/logging"
	"github.com/riskibarqy/footy-tracker/internal/usecase"
)

func main() {
	seasonsFlag := flag.String("seasons", "", "comma separated seasons to rebuild (default: every stored season)")
	workers := flag.Int("workers", 0, "worker count (default: REBUILD_WORKERS)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewConsole(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	seasons, err := parseSeasons(*seasonsFlag)
	if err != nil {
		logger.Error("parse seasons", "error", err)
		os.Exit(2)
	}

	services, err := app.NewServices(cfg, logger)
	if err != nil {
		logger.Error("build services", "error", err)
		os.Exit(1)
	}
	defer func() { _ = services.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := services.Rebuild.RebuildAll(ctx, usecase.RebuildInput{
		Seasons:    seasons,
		MaxWorkers: *workers,
	})
	if err != nil {
		logger.Error("rebuild seasons", "error", err)
		os.Exit(1)
	}

	out, err := sonic.ConfigStd.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	if result.FailedCount > 0 {
		os.Exit(1)
	}
}

func parseSeasons(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		year, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid season %q: %w", part, err)
		}
		out = append(out, year)
	}
	return out, nil
}
