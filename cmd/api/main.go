package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"veloviz.transitdata.no/internal/app"
	"veloviz.transitdata.no/internal/logging"
	"veloviz.transitdata.no/internal/restapi"
)

func main() {
	var cfg app.Config

	flag.IntVar(&cfg.Port, "port", 4000, "API server port")
	flag.StringVar(&cfg.Env, "env", "development", "Environment (development|staging|production)")
	flag.StringVar(&cfg.PreparedDir, "prepared-dir", "prepared_data", "Directory holding the exported datasets")
	flag.IntVar(&cfg.RateLimit, "rate-limit", 100, "Requests per second per client (-1 disables)")
	flag.Parse()

	logger := logging.NewStructuredLogger(os.Stdout, slog.LevelInfo)

	if _, err := os.Stat(cfg.PreparedDir); err != nil {
		logger.Warn("prepared data directory is not readable yet",
			"dir", cfg.PreparedDir, "error", err)
	}

	application := &app.Application{
		Config: cfg,
		Logger: logger,
	}

	api := restapi.NewRestAPI(application)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env)
	err := srv.ListenAndServe()
	logger.Error(err.Error())
	os.Exit(1)
}
