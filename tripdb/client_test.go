package tripdb

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veloviz.transitdata.no/internal/utils"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := NewClient(Config{DBPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func writeMonthFile(t *testing.T, dir string, ym utils.YearMonth, body string) string {
	t.Helper()
	yearDir := filepath.Join(dir, "2023")
	if ym.Year != 2023 {
		yearDir = filepath.Join(dir, "2024")
	}
	require.NoError(t, os.MkdirAll(yearDir, 0o755))
	path := filepath.Join(yearDir, fmt.Sprintf("%02d.json", ym.Month))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestIngestMonthFile(t *testing.T) {
	client := newTestClient(t)
	dir := t.TempDir()

	path := writeMonthFile(t, dir, utils.YearMonth{Year: 2023, Month: 5}, `[
		{"duration": 600, "start_station_id": 387, "end_station_id": "421"},
		{"duration": 300, "start_station_id": "387", "end_station_id": 500}
	]`)

	require.NoError(t, client.IngestMonthFile(path, utils.YearMonth{Year: 2023, Month: 5}))

	var count int
	require.NoError(t, client.DB.QueryRow(`SELECT COUNT(*) FROM trips`).Scan(&count))
	assert.Equal(t, 2, count)

	// Numeric and string station ids land as the same text value.
	var fromNumeric int
	require.NoError(t, client.DB.QueryRow(
		`SELECT COUNT(*) FROM trips WHERE start_station_id = '387'`).Scan(&fromNumeric))
	assert.Equal(t, 2, fromNumeric)
}

func TestIngestMonthFileReplacesExistingMonth(t *testing.T) {
	client := newTestClient(t)
	dir := t.TempDir()
	ym := utils.YearMonth{Year: 2023, Month: 5}

	path := writeMonthFile(t, dir, ym, `[{"duration": 600, "start_station_id": 1, "end_station_id": 2}]`)
	require.NoError(t, client.IngestMonthFile(path, ym))
	require.NoError(t, client.IngestMonthFile(path, ym))

	var count int
	require.NoError(t, client.DB.QueryRow(`SELECT COUNT(*) FROM trips`).Scan(&count))
	assert.Equal(t, 1, count, "re-ingesting a month should not duplicate rows")
}

func TestIngestDataDirSkipsMalformed(t *testing.T) {
	client := newTestClient(t)
	dir := t.TempDir()

	writeMonthFile(t, dir, utils.YearMonth{Year: 2023, Month: 4}, `[{"duration": 100, "start_station_id": 1, "end_station_id": 2}]`)
	writeMonthFile(t, dir, utils.YearMonth{Year: 2023, Month: 5}, `{not json`)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ingested := client.IngestDataDir(dir, logger)
	assert.Equal(t, 1, ingested)
}

func TestAvgTripTimeByMonth(t *testing.T) {
	client := newTestClient(t)
	dir := t.TempDir()

	p1 := writeMonthFile(t, dir, utils.YearMonth{Year: 2023, Month: 4}, `[
		{"duration": 100, "start_station_id": 1, "end_station_id": 2},
		{"duration": 300, "start_station_id": 2, "end_station_id": 1}
	]`)
	require.NoError(t, client.IngestMonthFile(p1, utils.YearMonth{Year: 2023, Month: 4}))

	p2 := writeMonthFile(t, dir, utils.YearMonth{Year: 2024, Month: 1}, `[
		{"duration": 600, "start_station_id": 3, "end_station_id": 4}
	]`)
	require.NoError(t, client.IngestMonthFile(p2, utils.YearMonth{Year: 2024, Month: 1}))

	stats, err := client.AvgTripTimeByMonth()
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, 2023, stats[0].Year)
	assert.Equal(t, 4, stats[0].Month)
	assert.InDelta(t, 200.0, stats[0].AvgTripSeconds, 0.001)
	assert.Equal(t, int64(2), stats[0].TripCount)

	assert.Equal(t, 2024, stats[1].Year)
	assert.Equal(t, 1, stats[1].Month)
	assert.InDelta(t, 600.0, stats[1].AvgTripSeconds, 0.001)
	assert.Equal(t, int64(1), stats[1].TripCount)
}

func TestAvgTripTimeByMonthEmpty(t *testing.T) {
	client := newTestClient(t)
	stats, err := client.AvgTripTimeByMonth()
	require.NoError(t, err)
	assert.Empty(t, stats)
}
