package model

import (
	"fmt"
	"time"

	"github.com/MaluSegGar/datacube-dataset-config/ingest"
	"github.com/venicegeo/geojson-go/geojson"
)

// TileDescriptor is one planned output tile: its grid index, spatial
// footprint, rendered output path and the start time the path was rendered
// for. It is a plain serializable value so the plan can be handed to any
// downstream executor.
type TileDescriptor struct {
	Index      ingest.Tile   `json:"tile_index"`
	Bounds     ingest.Bounds `json:"bounds"`
	OutputPath string        `json:"output_path"`
	StartTime  time.Time     `json:"start_time"`
}

// GeoJSONFeature implements the GeoJSONFeatureCreator interface
func (td TileDescriptor) GeoJSONFeature() (*geojson.Feature, error) {
	footprint := geojson.NewPolygon([][][]float64{{
		{td.Bounds.Left, td.Bounds.Bottom},
		{td.Bounds.Left, td.Bounds.Top},
		{td.Bounds.Right, td.Bounds.Top},
		{td.Bounds.Right, td.Bounds.Bottom},
		{td.Bounds.Left, td.Bounds.Bottom},
	}})

	id := fmt.Sprintf("%d_%d_%s", td.Index.X, td.Index.Y, td.StartTime.Format("2006-01-02"))
	f := geojson.NewFeature(footprint, id, map[string]interface{}{
		"tileX":      td.Index.X,
		"tileY":      td.Index.Y,
		"outputPath": td.OutputPath,
		"startTime":  td.StartTime.Format(StandardTimeLayout),
	})
	f.Bbox = f.ForceBbox()
	return f, nil
}

// MeasurementParams are the per-measurement storage parameters every tile of
// a plan will use
type MeasurementParams struct {
	Name       string            `json:"name"`
	DType      string            `json:"dtype"`
	NoData     float64           `json:"nodata"`
	Resampling string            `json:"resampling_method"`
	SrcVarName string            `json:"src_varname"`
	Zlib       bool              `json:"zlib"`
	Attrs      map[string]string `json:"attrs,omitempty"`
}

// TilePlan is the planner's output for one ingestion request: the identity
// of the output product, the per-measurement storage parameters, and the
// ordered tile descriptors covering the requested bounds
type TilePlan struct {
	SourceType   string              `json:"source_type"`
	OutputType   string              `json:"output_type"`
	CRS          string              `json:"crs"`
	Bounds       ingest.Bounds       `json:"requested_bounds"`
	Measurements []MeasurementParams `json:"measurements"`
	Tiles        []TileDescriptor    `json:"tiles"`
}

// NewTilePlan computes the full plan for a config, grid and start time. The
// grid is rewound first, so a partially consumed grid may be passed in.
func NewTilePlan(cfg *ingest.IngestionConfig, grid *ingest.TileGrid, startTime time.Time) (*TilePlan, error) {
	plan := TilePlan{
		SourceType:   cfg.SourceType,
		OutputType:   cfg.OutputType,
		CRS:          cfg.Storage.CRS,
		Bounds:       grid.Bounds(),
		Measurements: make([]MeasurementParams, len(cfg.Measurements)),
		Tiles:        make([]TileDescriptor, 0, grid.Len()),
	}

	for i, m := range cfg.Measurements {
		plan.Measurements[i] = MeasurementParams{
			Name:       m.Name,
			DType:      string(m.DType),
			NoData:     m.NoData,
			Resampling: string(m.Resampling),
			SrcVarName: m.SrcVarName,
			Zlib:       m.Zlib,
			Attrs:      m.Attrs,
		}
	}

	grid.Reset()
	for tile, ok := grid.Next(); ok; tile, ok = grid.Next() {
		outputPath, err := ingest.RenderOutputPath(cfg, tile, startTime)
		if err != nil {
			return nil, err
		}
		plan.Tiles = append(plan.Tiles, TileDescriptor{
			Index:      tile,
			Bounds:     grid.Footprint(tile),
			OutputPath: outputPath,
			StartTime:  startTime,
		})
	}

	return &plan, nil
}

// GeoJSONFeatureCollection implements the GeoJSONFeatureCollectionCreator interface
func (plan TilePlan) GeoJSONFeatureCollection() (*geojson.FeatureCollection, error) {
	var err error
	features := make([]*geojson.Feature, len(plan.Tiles))
	for i, tile := range plan.Tiles {
		features[i], err = tile.GeoJSONFeature()
		if err != nil {
			return nil, err
		}
	}
	return geojson.NewFeatureCollection(features), nil
}
