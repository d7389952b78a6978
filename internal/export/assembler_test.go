package export

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veloviz.transitdata.no/internal/logging"
	"veloviz.transitdata.no/internal/models"
)

func newTestAssembler(t *testing.T, includeMedium bool) *Assembler {
	t.Helper()
	dir := t.TempDir()
	return &Assembler{
		CacheDir:      filepath.Join(dir, "routes-cache"),
		PreparedDir:   filepath.Join(dir, "prepared-data"),
		IncludeMedium: includeMedium,
		Logger:        logging.NewStructuredLogger(io.Discard, slog.LevelError),
	}
}

func writeCacheFile(t *testing.T, a *Assembler, name, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(a.CacheDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(a.CacheDir, name), []byte(body), 0o644))
}

func TestAssembleEmptyRoutesAreSkipped(t *testing.T) {
	a := newTestAssembler(t, true)
	writeCacheFile(t, a, "1_2.json", `{
		"origin_id": "1", "dest_id": "2",
		"response": {"routes": [
			{"duration": "600s", "distanceMeters": 1500, "polyline": {"encodedPolyline": "pl1"}},
			{"duration": "900s"}
		]}
	}`)
	writeCacheFile(t, a, "3_4.json", `{
		"origin_id": "3", "dest_id": "4",
		"response": {"routes": []}
	}`)

	slim, medium := a.Assemble()

	require.Len(t, slim.Routes, 1, "the pair with no routes is excluded")
	assert.Equal(t, "1", slim.Routes[0].OriginID)
	assert.Equal(t, "2", slim.Routes[0].DestID)
	require.NotNil(t, slim.Routes[0].DurationSec)
	assert.Equal(t, int64(600), *slim.Routes[0].DurationSec, "only the first route is consulted")
	assert.Len(t, medium.Routes, 1)
}

func TestAssembleMissingCacheDir(t *testing.T) {
	a := newTestAssembler(t, true)

	slim, medium := a.Assemble()

	assert.Empty(t, slim.Routes)
	assert.Empty(t, medium.Routes)
}

func TestAssembleSkipsMalformedFiles(t *testing.T) {
	a := newTestAssembler(t, false)
	writeCacheFile(t, a, "bad.json", `{not json`)
	writeCacheFile(t, a, "good.json", `{
		"origin_id": "5", "dest_id": "6",
		"response": {"routes": [{"duration": "300s"}]}
	}`)
	writeCacheFile(t, a, "notes.txt", `ignored`)

	slim, _ := a.Assemble()

	require.Len(t, slim.Routes, 1)
	assert.Equal(t, "5", slim.Routes[0].OriginID)
}

func TestExportWritesSlimEnvelope(t *testing.T) {
	a := newTestAssembler(t, false)
	writeCacheFile(t, a, "1_2.json", `{
		"origin_id": "1", "dest_id": "2",
		"response": {"routes": [{"duration": "600s"}]}
	}`)

	require.NoError(t, a.Export(time.Now()))

	raw, err := os.ReadFile(filepath.Join(a.PreparedDir, SlimFileName))
	require.NoError(t, err)

	var env models.Envelope[models.RouteList]
	require.NoError(t, json.Unmarshal(raw, &env))
	require.NotNil(t, env.LastExport)
	assert.NotEmpty(t, env.LastExport.Timestamp)
	require.Len(t, env.Data.Routes, 1)
	assert.Nil(t, env.Data.Routes[0].EncodedPolyline)
}

func TestExportMediumDisabledRemovesStaleArtifact(t *testing.T) {
	a := newTestAssembler(t, false)
	require.NoError(t, os.MkdirAll(a.PreparedDir, 0o755))
	stale := filepath.Join(a.PreparedDir, MediumFileName)
	require.NoError(t, os.WriteFile(stale, []byte(`{"data":{"routes":[]}}`), 0o644))

	require.NoError(t, a.Export(time.Time{}))

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err), "stale medium artifact must be deleted")
}

func TestExportMediumEnabledWritesArtifact(t *testing.T) {
	a := newTestAssembler(t, true)
	writeCacheFile(t, a, "1_2.json", `{
		"origin_id": "1", "dest_id": "2",
		"response": {"routes": [{
			"duration": "600s",
			"legs": [
				{"duration": "300s", "endLocation": {"latLng": {"latitude": 59.9, "longitude": 10.7}}},
				{"duration": "300s", "endLocation": {"latLng": {"latitude": 59.8, "longitude": 10.6}}}
			]
		}]}
	}`)

	require.NoError(t, a.Export(time.Now()))

	raw, err := os.ReadFile(filepath.Join(a.PreparedDir, MediumFileName))
	require.NoError(t, err)

	var env models.Envelope[models.MediumRouteList]
	require.NoError(t, json.Unmarshal(raw, &env))
	require.Len(t, env.Data.Routes, 1)
	assert.Len(t, env.Data.Routes[0].Legs, 2, "legs keep their original order")
}
