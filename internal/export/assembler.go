package export

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"veloviz.transitdata.no/internal/logging"
	"veloviz.transitdata.no/internal/models"
	"veloviz.transitdata.no/internal/prepared"
)

const (
	// SlimFileName is always written by Export.
	SlimFileName = "routes.json"
	// MediumFileName is written only when the legacy medium format is
	// enabled; a stale copy from an earlier run is deleted otherwise.
	MediumFileName = "routes_medium.json"
)

// Assembler turns a directory of per-pair cached routing responses into the
// prepared route datasets. Item-level failures are logged and skipped; the
// batch always completes.
type Assembler struct {
	CacheDir      string
	PreparedDir   string
	IncludeMedium bool
	Logger        *slog.Logger
}

// Assemble scans every cache file and builds the slim dataset, plus the
// medium dataset when enabled. A missing cache directory yields empty
// datasets: the exporter must be runnable before any route has been cached.
func (a *Assembler) Assemble() (models.RouteList, models.MediumRouteList) {
	slim := models.RouteList{Routes: []models.SlimRoute{}}
	medium := models.MediumRouteList{Routes: []models.MediumRoute{}}

	entries, err := os.ReadDir(a.CacheDir)
	if err != nil {
		if os.IsNotExist(err) {
			a.Logger.Info("routes cache not found, exporting empty datasets",
				slog.String("cache_dir", a.CacheDir))
		} else {
			logging.LogError(a.Logger, "failed to list routes cache", err,
				slog.String("cache_dir", a.CacheDir))
		}
		return slim, medium
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(a.CacheDir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			logging.LogError(a.Logger, "skipping unreadable cache record", err,
				slog.String("file", entry.Name()))
			continue
		}
		var pair cachedPair
		if err := json.Unmarshal(raw, &pair); err != nil {
			logging.LogError(a.Logger, "skipping malformed cache record", err,
				slog.String("file", entry.Name()))
			continue
		}

		n, ok := normalizeRecord(&pair)
		if !ok {
			// No routes in the response; not an error.
			continue
		}

		if len(n.route.Legs) > 1 {
			// Station-to-station hops are expected to be single-leg.
			a.Logger.Warn("route has more than one leg",
				slog.String("origin_id", n.originID),
				slog.String("dest_id", n.destID),
				slog.Int("legs", len(n.route.Legs)))
		}

		slim.Routes = append(slim.Routes, buildSlim(n))
		if a.IncludeMedium {
			medium.Routes = append(medium.Routes, buildMedium(n))
		}
	}
	return slim, medium
}

// Export runs the assembly and writes the prepared artifacts, overwriting
// any previous snapshot.
func (a *Assembler) Export(start time.Time) error {
	slim, medium := a.Assemble()

	slimPath := filepath.Join(a.PreparedDir, SlimFileName)
	if err := prepared.WriteWithExecutionMetadata(slimPath, slim, start); err != nil {
		return err
	}
	logging.LogOperation(a.Logger, "exported slim routes",
		slog.Int("count", len(slim.Routes)),
		slog.String("file", SlimFileName))

	mediumPath := filepath.Join(a.PreparedDir, MediumFileName)
	if a.IncludeMedium {
		if err := prepared.WriteWithExecutionMetadata(mediumPath, medium, start); err != nil {
			return err
		}
		logging.LogOperation(a.Logger, "exported medium routes",
			slog.Int("count", len(medium.Routes)),
			slog.String("file", MediumFileName))
		return nil
	}

	// The medium format is on its way out; make sure an artifact from an
	// earlier run does not outlive the snapshot that replaced it.
	if err := os.Remove(mediumPath); err == nil {
		a.Logger.Info("removed stale medium routes artifact",
			slog.String("file", MediumFileName))
	} else if !os.IsNotExist(err) {
		logging.LogError(a.Logger, "failed to remove stale medium artifact", err,
			slog.String("file", MediumFileName))
	}
	return nil
}
