package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/MaluSegGar/datacube-dataset-config/ingest"
	"github.com/stretchr/testify/assert"
)

const planTestConfigYAML = `
source_type: ls7_ledaps_scene
output_type: ls7_ledaps_tiled
file_path_template: "LS7_ETM_LEDAPS_{tile_index[0]}_{tile_index[1]}_{start_time}.nc"
ingestion_bounds:
  left: 142.0
  bottom: -33.0
  right: 144.0
  top: -32.0
storage:
  crs: EPSG:4326
  tile_size:
    longitude: 1.0
    latitude: 1.0
  resolution:
    longitude: 0.00025
    latitude: -0.00025
  chunking:
    longitude: 500
    latitude: 500
    time: 1
  dimension_order: [time, latitude, longitude]
measurements:
  - name: blue
    dtype: int16
    nodata: -9999
    resampling_method: nearest
    src_varname: sr_band1
    zlib: true
`

func loadPlanTestConfig(t *testing.T) *ingest.IngestionConfig {
	cfg, err := ingest.LoadConfig(strings.NewReader(planTestConfigYAML))
	assert.Nil(t, err)
	return cfg
}

func TestNewTilePlan(t *testing.T) {
	cfg := loadPlanTestConfig(t)
	grid, err := ingest.NewTileGrid(cfg, nil)
	assert.Nil(t, err)
	startTime := time.Date(2005, 1, 7, 0, 0, 0, 0, time.UTC)

	plan, err := NewTilePlan(cfg, grid, startTime)

	assert.Nil(t, err)
	assert.Equal(t, "ls7_ledaps_scene", plan.SourceType)
	assert.Equal(t, "EPSG:4326", plan.CRS)
	assert.Len(t, plan.Measurements, 1)
	assert.Equal(t, "int16", plan.Measurements[0].DType)
	assert.Len(t, plan.Tiles, 2)
	assert.Equal(t, ingest.Tile{X: 142, Y: -33}, plan.Tiles[0].Index)
	assert.Equal(t, ingest.Tile{X: 143, Y: -33}, plan.Tiles[1].Index)
	assert.Equal(t, "LS7_ETM_LEDAPS_142_-33_2005-01-07.nc", plan.Tiles[0].OutputPath)
	assert.Equal(t, "LS7_ETM_LEDAPS_143_-33_2005-01-07.nc", plan.Tiles[1].OutputPath)
}

func TestNewTilePlan_RewindsPartiallyConsumedGrid(t *testing.T) {
	cfg := loadPlanTestConfig(t)
	grid, err := ingest.NewTileGrid(cfg, nil)
	assert.Nil(t, err)

	grid.Next() // consume one tile before planning

	plan, err := NewTilePlan(cfg, grid, time.Date(2005, 1, 7, 0, 0, 0, 0, time.UTC))

	assert.Nil(t, err)
	assert.Len(t, plan.Tiles, 2)
}

func TestNewTilePlan_TemplateErrorPropagates(t *testing.T) {
	cfg := loadPlanTestConfig(t)
	grid, err := ingest.NewTileGrid(cfg, nil)
	assert.Nil(t, err)
	cfg.FilePathTemplate = "{tile_index[0]}_{tile_index[1]}_{epoch}.nc"

	_, err = NewTilePlan(cfg, grid, time.Now())

	assert.NotNil(t, err)
	assert.IsType(t, &ingest.TemplateError{}, err)
}

func TestTilePlan_GeoJSONFeatureCollection(t *testing.T) {
	cfg := loadPlanTestConfig(t)
	grid, err := ingest.NewTileGrid(cfg, nil)
	assert.Nil(t, err)

	plan, err := NewTilePlan(cfg, grid, time.Date(2005, 1, 7, 0, 0, 0, 0, time.UTC))
	assert.Nil(t, err)

	fc, err := plan.GeoJSONFeatureCollection()
	assert.Nil(t, err)
	assert.Len(t, fc.Features, 2)
	assert.Equal(t, 142, fc.Features[0].Properties["tileX"])
	assert.Equal(t, "LS7_ETM_LEDAPS_142_-33_2005-01-07.nc", fc.Features[0].Properties["outputPath"])
	assert.NotEmpty(t, fc.Features[0].Bbox)
}

func TestTilePlan_JSONSerializable(t *testing.T) {
	cfg := loadPlanTestConfig(t)
	grid, err := ingest.NewTileGrid(cfg, nil)
	assert.Nil(t, err)

	plan, err := NewTilePlan(cfg, grid, time.Date(2005, 1, 7, 0, 0, 0, 0, time.UTC))
	assert.Nil(t, err)

	raw, err := json.Marshal(plan)
	assert.Nil(t, err)

	decoded := TilePlan{}
	assert.Nil(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, plan.Tiles, decoded.Tiles)
	assert.Equal(t, plan.Measurements, decoded.Measurements)
}
