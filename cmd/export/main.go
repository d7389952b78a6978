package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"veloviz.transitdata.no/internal/config"
	"veloviz.transitdata.no/internal/export"
	"veloviz.transitdata.no/internal/logging"
)

func main() {
	var configPath string
	var cacheDir string
	var includeMedium bool

	flag.StringVar(&configPath, "config", "", "Path to the pipeline config file")
	flag.StringVar(&cacheDir, "cache-dir", "", "Route cache directory (overrides config)")
	flag.BoolVar(&includeMedium, "medium", false, "Also write the legacy medium route format")
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

	if cacheDir == "" {
		cacheDir = cfg.Export.CacheDir
	}
	preparedDir := cfg.Export.PreparedDir
	if flag.NArg() > 0 {
		preparedDir = flag.Arg(0)
	}

	assembler := &export.Assembler{
		CacheDir:      cacheDir,
		PreparedDir:   preparedDir,
		IncludeMedium: includeMedium || cfg.Export.IncludeMedium,
		Logger:        logger,
	}

	start := time.Now()
	if err := assembler.Export(start); err != nil {
		logging.LogError(logger, "route export failed", err,
			slog.String("prepared_dir", preparedDir))
		os.Exit(1)
	}

	logging.LogOperation(logger, "route export complete",
		slog.String("prepared_dir", preparedDir),
		slog.Float64("duration_seconds", time.Since(start).Seconds()))
}
