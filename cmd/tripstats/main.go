package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"veloviz.transitdata.no/internal/config"
	"veloviz.transitdata.no/internal/logging"
	"veloviz.transitdata.no/internal/models"
	"veloviz.transitdata.no/internal/prepared"
	"veloviz.transitdata.no/tripdb"
)

// StatsFileName is the prepared-data artifact this command produces.
const StatsFileName = "trip_stats.json"

func main() {
	var configPath string
	var skipIngest bool

	flag.StringVar(&configPath, "config", "", "Path to the pipeline config file")
	flag.BoolVar(&skipIngest, "skip-ingest", false, "Aggregate the existing database without re-reading the dumps")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [output-dir]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := logging.NewStructuredLogger(os.Stdout, slog.LevelInfo)

	cfg, err := config.Load(configPath)
	if err != nil {
		logging.LogError(logger, "failed to load config", err)
		os.Exit(1)
	}

	preparedDir := cfg.Export.PreparedDir
	if flag.NArg() > 0 {
		preparedDir = flag.Arg(0)
	}

	start := time.Now()

	client, err := tripdb.NewClient(tripdb.Config{DBPath: cfg.Trips.DBPath})
	if err != nil {
		logging.LogError(logger, "failed to open trip database", err,
			slog.String("db_path", cfg.Trips.DBPath))
		os.Exit(1)
	}
	defer logging.SafeCloseWithLogging(client, logger, "trip database")

	if !skipIngest {
		ingested := client.IngestDataDir(cfg.Trips.DataDir, logger)
		logging.LogOperation(logger, "trip ingest complete",
			slog.Int("months", ingested))
	}

	stats, err := client.AvgTripTimeByMonth()
	if err != nil {
		logging.LogError(logger, "failed to aggregate trip stats", err)
		os.Exit(1)
	}

	outPath := filepath.Join(preparedDir, StatsFileName)
	list := models.TripStatsList{Rows: stats}
	if err := prepared.WriteWithExecutionMetadata(outPath, list, start); err != nil {
		logging.LogError(logger, "failed to write trip stats", err,
			slog.String("path", outPath))
		os.Exit(1)
	}

	logging.LogOperation(logger, "trip stats export complete",
		slog.String("path", outPath),
		slog.Int("months", len(stats)))
}
