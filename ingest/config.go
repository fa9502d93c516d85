package ingest

import "math"

// DType is an enum type for the recognized measurement storage types
type DType string

// Recognized storage types
const (
	Int16   DType = "int16"
	Int32   DType = "int32"
	UInt8   DType = "uint8"
	UInt16  DType = "uint16"
	Float32 DType = "float32"
	Float64 DType = "float64"
)

var dtypeRanges = map[DType][2]float64{
	Int16:  {math.MinInt16, math.MaxInt16},
	Int32:  {math.MinInt32, math.MaxInt32},
	UInt8:  {0, math.MaxUint8},
	UInt16: {0, math.MaxUint16},
}

// Known returns true if this is a recognized storage type
func (d DType) Known() bool {
	switch d {
	case Int16, Int32, UInt8, UInt16, Float32, Float64:
		return true
	}
	return false
}

// Representable returns true if the value can be stored losslessly in this
// type, which is what a nodata sentinel requires
func (d DType) Representable(value float64) bool {
	switch d {
	case Float64:
		return true
	case Float32:
		return math.IsNaN(value) || math.Abs(value) <= math.MaxFloat32
	}
	r, ok := dtypeRanges[d]
	if !ok {
		return false
	}
	return value == math.Trunc(value) && value >= r[0] && value <= r[1]
}

// Resampling is an enum type for the recognized resampling methods
type Resampling string

// Recognized resampling methods
const (
	Nearest     Resampling = "nearest"
	Bilinear    Resampling = "bilinear"
	Cubic       Resampling = "cubic"
	CubicSpline Resampling = "cubic_spline"
	Lanczos     Resampling = "lanczos"
	Average     Resampling = "average"
	Mode        Resampling = "mode"
)

// Known returns true if this is a recognized resampling method
func (r Resampling) Known() bool {
	switch r {
	case Nearest, Bilinear, Cubic, CubicSpline, Lanczos, Average, Mode:
		return true
	}
	return false
}

// Bounds is a rectangle in storage CRS units
type Bounds struct {
	Left   float64 `yaml:"left" json:"left"`
	Bottom float64 `yaml:"bottom" json:"bottom"`
	Right  float64 `yaml:"right" json:"right"`
	Top    float64 `yaml:"top" json:"top"`
}

// Contains returns true if other lies entirely within b
func (b Bounds) Contains(other Bounds) bool {
	return b.Left <= other.Left && b.Bottom <= other.Bottom &&
		b.Right >= other.Right && b.Top >= other.Top
}

// TileSize is the spatial extent of one output tile, in CRS units
type TileSize struct {
	Longitude float64 `yaml:"longitude"`
	Latitude  float64 `yaml:"latitude"`
}

// Resolution is the per-pixel step of the output grid. Latitude is negative
// by the north-up convention: row zero is the northern edge.
type Resolution struct {
	Longitude float64 `yaml:"longitude"`
	Latitude  float64 `yaml:"latitude"`
}

// Chunking is the storage chunk shape, in cells per dimension
type Chunking struct {
	Longitude int `yaml:"longitude"`
	Latitude  int `yaml:"latitude"`
	Time      int `yaml:"time"`
}

// GridOrigin anchors the tile grid at an explicit CRS coordinate. The
// default (0, 0) matches most geographic storage grids, but projected CRSes
// may want a false-origin anchor.
type GridOrigin struct {
	Longitude float64 `yaml:"longitude"`
	Latitude  float64 `yaml:"latitude"`
}

// DefaultStartTimeFormat is the Go reference layout used for the
// {start_time} placeholder when the config does not supply one
const DefaultStartTimeFormat = "2006-01-02"

// StorageSpec describes the gridded output store
type StorageSpec struct {
	CRS             string     `yaml:"crs"`
	TileSize        TileSize   `yaml:"tile_size"`
	Resolution      Resolution `yaml:"resolution"`
	Chunking        Chunking   `yaml:"chunking"`
	DimensionOrder  []string   `yaml:"dimension_order"`
	GridOrigin      GridOrigin `yaml:"grid_origin"`
	StartTimeFormat string     `yaml:"start_time_format"`
}

// MeasurementSpec describes one output variable of the data cube
type MeasurementSpec struct {
	Name       string            `yaml:"name"`
	DType      DType             `yaml:"dtype"`
	NoData     float64           `yaml:"nodata"`
	Resampling Resampling        `yaml:"resampling_method"`
	SrcVarName string            `yaml:"src_varname"`
	Zlib       bool              `yaml:"zlib"`
	Attrs      map[string]string `yaml:"attrs"`
}

// IngestionConfig is the parsed, validated ingestion configuration. It is
// loaded once per run and treated as read-only afterwards.
type IngestionConfig struct {
	SourceType       string            `yaml:"source_type"`
	OutputType       string            `yaml:"output_type"`
	FilePathTemplate string            `yaml:"file_path_template"`
	GlobalAttributes map[string]string `yaml:"global_attributes"`
	IngestionBounds  Bounds            `yaml:"ingestion_bounds"`
	Storage          StorageSpec       `yaml:"storage"`
	Measurements     []MeasurementSpec `yaml:"measurements"`

	byName map[string]*MeasurementSpec
}

func (cfg *IngestionConfig) applyDefaults() {
	if cfg.GlobalAttributes == nil {
		cfg.GlobalAttributes = map[string]string{}
	}
	if cfg.Storage.StartTimeFormat == "" {
		cfg.Storage.StartTimeFormat = DefaultStartTimeFormat
	}
}

func (cfg *IngestionConfig) buildIndex() {
	cfg.byName = make(map[string]*MeasurementSpec, len(cfg.Measurements))
	for i := range cfg.Measurements {
		cfg.byName[cfg.Measurements[i].Name] = &cfg.Measurements[i]
	}
}

// ResolveMeasurement looks up a measurement spec by its unique name
func (cfg *IngestionConfig) ResolveMeasurement(name string) (*MeasurementSpec, error) {
	if cfg.byName != nil {
		if spec, ok := cfg.byName[name]; ok {
			return spec, nil
		}
	}
	return nil, &ConfigError{Field: "measurements", Reason: "unknown measurement: " + name}
}
