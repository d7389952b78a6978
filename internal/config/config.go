// Package config loads the pipeline configuration shared by the export,
// download and tripstats commands.
package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"veloviz.transitdata.no/internal/geo"
)

type ExportConfig struct {
	CacheDir      string `yaml:"cacheDir"`
	PreparedDir   string `yaml:"preparedDir"`
	IncludeMedium bool   `yaml:"includeMedium"`
}

type TripsConfig struct {
	BaseURL string `yaml:"baseURL" validate:"omitempty,url"`
	DataDir string `yaml:"dataDir"`
	DBPath  string `yaml:"dbPath"`
}

type ProjectionConfig struct {
	MetersPerDegLat float64 `yaml:"metersPerDegLat" validate:"gte=0"`
	MetersPerDegLon float64 `yaml:"metersPerDegLon" validate:"gte=0"`
}

type IsochronesConfig struct {
	TimeBandsMin []int `yaml:"timeBandsMin" validate:"dive,gt=0"`
}

type PipelineConfig struct {
	Export     ExportConfig     `yaml:"export"`
	Trips      TripsConfig      `yaml:"trips"`
	Projection ProjectionConfig `yaml:"projection"`
	Isochrones IsochronesConfig `yaml:"isochrones"`
}

// Load reads a YAML pipeline config. A missing path yields the defaults.
func Load(path string) (*PipelineConfig, error) {
	cfg := &PipelineConfig{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *PipelineConfig) applyDefaults() {
	if c.Export.CacheDir == "" {
		c.Export.CacheDir = "cache/routes"
	}
	if c.Export.PreparedDir == "" {
		c.Export.PreparedDir = "prepared_data"
	}
	if c.Trips.DataDir == "" {
		c.Trips.DataDir = "data/trips"
	}
	if c.Trips.DBPath == "" {
		c.Trips.DBPath = "data/trips.db"
	}
	if c.Projection.MetersPerDegLat == 0 {
		c.Projection.MetersPerDegLat = geo.OsloProjection.MetersPerDegLat
	}
	if c.Projection.MetersPerDegLon == 0 {
		c.Projection.MetersPerDegLon = geo.OsloProjection.MetersPerDegLon
	}
}

// GeoProjection returns the configured local projection constants.
func (c *PipelineConfig) GeoProjection() geo.Projection {
	return geo.Projection{
		MetersPerDegLat: c.Projection.MetersPerDegLat,
		MetersPerDegLon: c.Projection.MetersPerDegLon,
	}
}
