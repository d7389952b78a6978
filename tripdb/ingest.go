package tripdb

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"veloviz.transitdata.no/internal/logging"
	"veloviz.transitdata.no/internal/utils"
)

// IngestMonthFile loads one downloaded month dump into the trips table.
// Re-ingesting a month replaces its rows.
func (c *Client) IngestMonthFile(path string, ym utils.YearMonth) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var records []TripRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	tx, err := c.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM trips WHERE year = ? AND month = ?`, ym.Year, ym.Month); err != nil {
		tx.Rollback() // nolint:errcheck
		return fmt.Errorf("error clearing month: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO trips (year, month, duration_sec, start_station_id, end_station_id)
		VALUES (?, ?, ?, ?, ?);
	`)
	if err != nil {
		tx.Rollback() // nolint:errcheck
		return fmt.Errorf("error preparing statement: %w", err)
	}
	defer stmt.Close() // nolint:errcheck

	for _, rec := range records {
		_, err := stmt.Exec(
			ym.Year, ym.Month, rec.Duration,
			utils.ToStringFallback(rec.StartStationID, ""),
			utils.ToStringFallback(rec.EndStationID, ""),
		)
		if err != nil {
			tx.Rollback() // nolint:errcheck
			return fmt.Errorf("error inserting trip: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

// IngestDataDir walks dataDir/<year>/<MM>.json and ingests every month it
// finds. Unparseable files are logged and skipped; the batch continues.
func (c *Client) IngestDataDir(dataDir string, logger *slog.Logger) (ingested int) {
	yearDirs, err := os.ReadDir(dataDir)
	if err != nil {
		logging.LogError(logger, "failed to list trip data dir", err,
			slog.String("data_dir", dataDir))
		return 0
	}

	for _, yd := range yearDirs {
		if !yd.IsDir() {
			continue
		}
		year, err := strconv.Atoi(yd.Name())
		if err != nil {
			continue
		}
		monthFiles, err := os.ReadDir(filepath.Join(dataDir, yd.Name()))
		if err != nil {
			logging.LogError(logger, "failed to list year dir", err,
				slog.String("year", yd.Name()))
			continue
		}
		for _, mf := range monthFiles {
			name := mf.Name()
			if !strings.HasSuffix(name, ".json") {
				continue
			}
			month, err := strconv.Atoi(strings.TrimSuffix(name, ".json"))
			if err != nil || month < 1 || month > 12 {
				continue
			}
			ym := utils.YearMonth{Year: year, Month: month}
			path := filepath.Join(dataDir, yd.Name(), name)
			if err := c.IngestMonthFile(path, ym); err != nil {
				logging.LogError(logger, "skipping month", err,
					slog.String("month", ym.String()))
				continue
			}
			ingested++
		}
	}
	return ingested
}
