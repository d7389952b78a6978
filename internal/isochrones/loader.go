package isochrones

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"veloviz.transitdata.no/internal/columnar"
	"veloviz.transitdata.no/internal/models"
	"veloviz.transitdata.no/internal/prepared"
	"veloviz.transitdata.no/internal/utils"
)

// Prepared-data resources the loader joins. The tables are Arrow files
// because station and polygon data outgrew plain JSON.
const (
	StationsFile = "isochrone_stations.arrow"
	PolygonsFile = "isochrones.arrow"
	MetaFile     = "isochrones_meta.json"
)

// defaultTimeBands applies only when the metadata sidecar carries no
// time_bands_min in either of its two shapes and no configured fallback
// was supplied.
var defaultTimeBands = []int{5, 10, 15, 20}

// Loader assembles the isochrones dataset from three prepared resources.
// TimeBands, when set, replaces defaultTimeBands as the fallback for a
// silent metadata sidecar.
type Loader struct {
	Client    *prepared.Client
	Decoder   *columnar.Decoder
	Logger    *slog.Logger
	TimeBands []int
}

func NewLoader(client *prepared.Client, logger *slog.Logger) *Loader {
	return &Loader{
		Client:  client,
		Decoder: &columnar.Decoder{},
		Logger:  logger,
	}
}

// Load retrieves the station table, polygon table and metadata sidecar
// concurrently, joins them, and fails fast on the first problem. Isochrone
// data is pre-generated and assumed internally consistent, so malformed
// rows are surfaced as errors rather than skipped.
func (l *Loader) Load(ctx context.Context) (*models.IsochronesDataset, error) {
	var (
		wg                                    sync.WaitGroup
		stationBytes, polygonBytes, metaBytes []byte
		stationErr, polygonErr, metaErr       error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		stationBytes, stationErr = l.Client.FetchBytes(ctx, StationsFile)
	}()
	go func() {
		defer wg.Done()
		polygonBytes, polygonErr = l.Client.FetchBytes(ctx, PolygonsFile)
	}()
	go func() {
		defer wg.Done()
		metaBytes, metaErr = l.Client.FetchBytes(ctx, MetaFile)
	}()
	wg.Wait()

	if stationErr != nil {
		return nil, fmt.Errorf("fetch %s: %w", StationsFile, stationErr)
	}
	if polygonErr != nil {
		return nil, fmt.Errorf("fetch %s: %w", PolygonsFile, polygonErr)
	}
	if metaErr != nil {
		return nil, fmt.Errorf("fetch %s: %w", MetaFile, metaErr)
	}

	stations, err := l.decodeStations(stationBytes)
	if err != nil {
		return nil, err
	}
	polygons, err := l.decodePolygons(polygonBytes)
	if err != nil {
		return nil, err
	}
	bands, err := timeBandsFromMeta(metaBytes)
	if err != nil {
		return nil, err
	}
	if len(bands) == 0 {
		bands = l.TimeBands
	}
	if len(bands) == 0 {
		bands = defaultTimeBands
	}

	l.Logger.Info("isochrones loaded",
		slog.Int("stations", len(stations)),
		slog.Int("station_polygons", len(polygons)),
		slog.Int("time_bands", len(bands)))

	return &models.IsochronesDataset{
		Stations:     stations,
		TimeBandsMin: bands,
		Polygons:     polygons,
	}, nil
}

func (l *Loader) decodeStations(buf []byte) ([]models.IsochroneStation, error) {
	rows, err := l.Decoder.DecodeTable(buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", StationsFile, err)
	}

	stations := make([]models.IsochroneStation, 0, len(rows))
	for i, row := range rows {
		id := utils.ToStringFallback(row["id"], "")
		if id == "" {
			return nil, fmt.Errorf("%s: row %d has no station id", StationsFile, i)
		}
		lat, latErr := utils.ToFloat(row["lat"])
		lon, lonErr := utils.ToFloat(row["lon"])
		if latErr != nil || lonErr != nil {
			return nil, fmt.Errorf("%s: station %s has invalid coordinates", StationsFile, id)
		}
		stations = append(stations, models.IsochroneStation{
			ID:   id,
			Name: utils.ToStringFallback(row["name"], ""),
			Lat:  lat,
			Lon:  lon,
		})
	}
	return stations, nil
}

// decodePolygons groups the polygon rows into station id → time band →
// geometry. Each geometry arrives pre-serialized as a JSON string; a parse
// failure means an upstream pipeline bug and is a hard error.
func (l *Loader) decodePolygons(buf []byte) (map[string]map[string]models.PolygonGeometry, error) {
	rows, err := l.Decoder.DecodeTable(buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", PolygonsFile, err)
	}

	polygons := make(map[string]map[string]models.PolygonGeometry)
	for i, row := range rows {
		stationID := utils.ToStringFallback(row["station_id"], "")
		if stationID == "" {
			return nil, fmt.Errorf("%s: row %d has no station id", PolygonsFile, i)
		}
		band, err := utils.ToInt(row["time_band_min"])
		if err != nil {
			return nil, fmt.Errorf("%s: station %s row has invalid time band", PolygonsFile, stationID)
		}

		geomStr, ok := row["geometry"].(string)
		if !ok {
			return nil, fmt.Errorf("%s: station %s band %d has no geometry", PolygonsFile, stationID, band)
		}
		var geom models.PolygonGeometry
		if err := json.Unmarshal([]byte(geomStr), &geom); err != nil {
			return nil, fmt.Errorf("%s: station %s band %d geometry: %w", PolygonsFile, stationID, band, err)
		}

		byBand, ok := polygons[stationID]
		if !ok {
			byBand = make(map[string]models.PolygonGeometry)
			polygons[stationID] = byBand
		}
		byBand[strconv.Itoa(band)] = geom
	}
	return polygons, nil
}

// metaSidecar accepts both sidecar shapes: time bands nested under a data
// key or at the top level. Nested takes precedence.
type metaSidecar struct {
	TimeBandsMin []int `json:"time_bands_min"`
	Data         *struct {
		TimeBandsMin []int `json:"time_bands_min"`
	} `json:"data"`
}

// timeBandsFromMeta returns the sidecar's bands, or nil when it carries
// none; the caller picks the fallback.
func timeBandsFromMeta(buf []byte) ([]int, error) {
	var meta metaSidecar
	if err := json.Unmarshal(buf, &meta); err != nil {
		return nil, fmt.Errorf("%s: %w", MetaFile, err)
	}
	if meta.Data != nil && len(meta.Data.TimeBandsMin) > 0 {
		return meta.Data.TimeBandsMin, nil
	}
	if len(meta.TimeBandsMin) > 0 {
		return meta.TimeBandsMin, nil
	}
	return nil, nil
}
