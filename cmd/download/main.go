package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"veloviz.transitdata.no/internal/config"
	"veloviz.transitdata.no/internal/logging"
	"veloviz.transitdata.no/internal/trips"
	"veloviz.transitdata.no/internal/utils"
)

func main() {
	var configPath string

	flag.StringVar(&configPath, "config", "", "Path to the pipeline config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [data-dir] [YYYY-MM]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := logging.NewStructuredLogger(os.Stdout, slog.LevelInfo)

	cfg, err := config.Load(configPath)
	if err != nil {
		logging.LogError(logger, "failed to load config", err)
		os.Exit(1)
	}

	dataDir := cfg.Trips.DataDir
	if flag.NArg() > 0 {
		dataDir = flag.Arg(0)
	}

	var filter *utils.YearMonth
	if flag.NArg() > 1 {
		ym, err := utils.ParseYearMonth(flag.Arg(1))
		if err != nil {
			logging.LogError(logger, "invalid month filter", err)
			os.Exit(1)
		}
		if !trips.InCalendar(ym) {
			logger.Error("month outside the upstream calendar",
				slog.String("month", ym.String()))
			os.Exit(1)
		}
		filter = &ym
	}

	baseURL := cfg.Trips.BaseURL
	if baseURL == "" {
		baseURL = trips.DefaultBaseURL
	}

	downloader := &trips.Downloader{
		BaseURL: baseURL,
		DataDir: dataDir,
		Logger:  logger,
	}

	// Month failures are logged per-item inside the loop; they never fail
	// the batch, only an invalid filter does.
	downloaded, failed := downloader.Run(context.Background(), filter)
	logging.LogOperation(logger, "trip download complete",
		slog.Int("downloaded", downloaded),
		slog.Int("failed", failed))
}
