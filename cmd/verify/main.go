// Command verify checks a running prepared-data server end to end: it loads
// the route dataset, decodes and offsets a polyline with the configured
// projection, and assembles the isochrones dataset. Deploys gate on its
// exit code.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"veloviz.transitdata.no/internal/config"
	"veloviz.transitdata.no/internal/isochrones"
	"veloviz.transitdata.no/internal/logging"
	"veloviz.transitdata.no/internal/models"
	"veloviz.transitdata.no/internal/prepared"
)

func main() {
	var configPath string
	var baseURL string
	var offsetMeters float64

	flag.StringVar(&configPath, "config", "", "Path to the pipeline config file")
	flag.StringVar(&baseURL, "base-url", "http://localhost:4000", "Prepared-data server base URL")
	flag.Float64Var(&offsetMeters, "offset", 5, "Offset in meters for the polyline render check")
	flag.Parse()

	logger := logging.NewStructuredLogger(os.Stdout, slog.LevelInfo)

	cfg, err := config.Load(configPath)
	if err != nil {
		logging.LogError(logger, "failed to load config", err)
		os.Exit(1)
	}

	ctx := context.Background()
	client := prepared.NewClient(baseURL, logger)

	env, err := prepared.LoadDataset[models.RouteList](ctx, client, "routes.json")
	if err != nil {
		logging.LogError(logger, "route dataset check failed", err)
		os.Exit(1)
	}
	logging.LogOperation(logger, "route dataset loaded",
		slog.Int("routes", len(env.Data.Routes)))

	// Run one route through the same decode-and-offset path the map client
	// uses, with the projection the config deploys.
	projection := cfg.GeoProjection()
	for _, route := range env.Data.Routes {
		if route.EncodedPolyline == nil {
			continue
		}
		points, err := projection.OffsetRoute(*route.EncodedPolyline, offsetMeters)
		if err != nil {
			logging.LogError(logger, "polyline offset check failed", err,
				slog.String("origin_id", route.OriginID),
				slog.String("dest_id", route.DestID))
			os.Exit(1)
		}
		logging.LogOperation(logger, "polyline offset check passed",
			slog.String("origin_id", route.OriginID),
			slog.Int("points", len(points)))
		break
	}

	loader := isochrones.NewLoader(client, logger)
	loader.TimeBands = cfg.Isochrones.TimeBandsMin
	ds, err := loader.Load(ctx)
	if err != nil {
		logging.LogError(logger, "isochrones check failed", err)
		os.Exit(1)
	}
	logging.LogOperation(logger, "isochrones loaded",
		slog.Int("stations", len(ds.Stations)),
		slog.Int("time_bands", len(ds.TimeBandsMin)))
}
