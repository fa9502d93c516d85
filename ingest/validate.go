package ingest

import (
	"fmt"
	"sort"
	"strings"
)

type violationKind int

const (
	kindConfig violationKind = iota
	kindRange
)

// Violation is one semantic problem found in an ingestion configuration.
// Validation is pure and collects every violation; fail-fast callers raise
// on the first entry of a non-empty list.
type Violation struct {
	Field  string
	Reason string

	kind               violationKind
	rangeMin, rangeMax float64
}

func (v Violation) String() string {
	return v.Field + ": " + v.Reason
}

// Err converts the violation to its error value
func (v Violation) Err() error {
	if v.kind == kindRange {
		// Reported as a RangeError rather than ConfigError, so degenerate
		// bounds get the same exit code whether they come from the config
		// or from caller-supplied bounds.
		axis := "longitude"
		if strings.Contains(v.Field, "bottom") || strings.Contains(v.Field, "latitude") {
			axis = "latitude"
		}
		return &RangeError{Axis: axis, Min: v.rangeMin, Max: v.rangeMax}
	}
	return &ConfigError{Field: v.Field, Reason: v.Reason}
}

// Validate checks every invariant of the configuration and returns all
// violations found, in a deterministic order. A nil or empty result means
// the configuration is valid.
func Validate(cfg *IngestionConfig) []Violation {
	v := []Violation{}

	if cfg.SourceType == "" {
		v = append(v, Violation{Field: "source_type", Reason: "must not be empty"})
	}
	if cfg.OutputType == "" {
		v = append(v, Violation{Field: "output_type", Reason: "must not be empty"})
	}

	v = append(v, validateTemplate(cfg.FilePathTemplate)...)
	v = append(v, validateBounds(cfg.IngestionBounds)...)
	v = append(v, validateStorage(&cfg.Storage)...)
	v = append(v, validateMeasurements(cfg.Measurements)...)

	for key := range cfg.GlobalAttributes {
		if key == "" {
			v = append(v, Violation{Field: "global_attributes", Reason: "attribute keys must not be empty"})
			break
		}
	}

	return v
}

func validateTemplate(template string) []Violation {
	v := []Violation{}
	if template == "" {
		return append(v, Violation{Field: "file_path_template", Reason: "must not be empty"})
	}

	seen := map[string]bool{}
	for _, name := range listPlaceholders(template) {
		seen[name] = true
		if !knownPlaceholders[name] {
			v = append(v, Violation{
				Field:  "file_path_template",
				Reason: fmt.Sprintf("unknown placeholder {%s}", name),
			})
		}
	}

	// All three placeholders must appear, or two distinct tiles (or two
	// start times) would render to the same output path.
	missing := []string{}
	for name := range knownPlaceholders {
		if !seen[name] {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	for _, name := range missing {
		v = append(v, Violation{
			Field:  "file_path_template",
			Reason: fmt.Sprintf("missing required placeholder {%s}", name),
		})
	}

	return v
}

func validateBounds(b Bounds) []Violation {
	v := []Violation{}
	if b.Left >= b.Right {
		v = append(v, Violation{
			Field:  "ingestion_bounds.left",
			Reason: fmt.Sprintf("left (%v) must be less than right (%v)", b.Left, b.Right),
			kind:   kindRange, rangeMin: b.Left, rangeMax: b.Right,
		})
	}
	if b.Bottom >= b.Top {
		v = append(v, Violation{
			Field:  "ingestion_bounds.bottom",
			Reason: fmt.Sprintf("bottom (%v) must be less than top (%v)", b.Bottom, b.Top),
			kind:   kindRange, rangeMin: b.Bottom, rangeMax: b.Top,
		})
	}
	return v
}

func validateStorage(s *StorageSpec) []Violation {
	v := []Violation{}

	if s.CRS == "" {
		v = append(v, Violation{Field: "storage.crs", Reason: "must not be empty"})
	}
	if s.TileSize.Longitude <= 0 {
		v = append(v, Violation{Field: "storage.tile_size.longitude", Reason: "must be positive"})
	}
	if s.TileSize.Latitude <= 0 {
		v = append(v, Violation{Field: "storage.tile_size.latitude", Reason: "must be positive"})
	}
	if s.Resolution.Longitude <= 0 {
		v = append(v, Violation{Field: "storage.resolution.longitude", Reason: "must be positive"})
	}
	if s.Resolution.Latitude >= 0 {
		v = append(v, Violation{Field: "storage.resolution.latitude", Reason: "must be negative (north-up convention)"})
	}
	if s.Chunking.Longitude <= 0 {
		v = append(v, Violation{Field: "storage.chunking.longitude", Reason: "must be a positive integer"})
	}
	if s.Chunking.Latitude <= 0 {
		v = append(v, Violation{Field: "storage.chunking.latitude", Reason: "must be a positive integer"})
	}
	if s.Chunking.Time <= 0 {
		v = append(v, Violation{Field: "storage.chunking.time", Reason: "must be a positive integer"})
	}

	v = append(v, validateDimensionOrder(s.DimensionOrder)...)
	return v
}

func validateDimensionOrder(order []string) []Violation {
	counts := map[string]int{}
	for _, dim := range order {
		counts[dim]++
	}
	if len(order) != 3 || counts["time"] != 1 || counts["latitude"] != 1 || counts["longitude"] != 1 {
		return []Violation{{
			Field:  "storage.dimension_order",
			Reason: fmt.Sprintf("must be a permutation of time, latitude, longitude; got %v", order),
		}}
	}
	return nil
}

func validateMeasurements(measurements []MeasurementSpec) []Violation {
	v := []Violation{}

	if len(measurements) == 0 {
		return append(v, Violation{Field: "measurements", Reason: "at least one measurement is required"})
	}

	seen := map[string]bool{}
	for i, m := range measurements {
		field := fmt.Sprintf("measurements[%d]", i)
		if m.Name == "" {
			v = append(v, Violation{Field: field + ".name", Reason: "must not be empty"})
		} else if seen[m.Name] {
			v = append(v, Violation{Field: field + ".name", Reason: "duplicate measurement name: " + m.Name})
		}
		seen[m.Name] = true

		if !m.DType.Known() {
			v = append(v, Violation{Field: field + ".dtype", Reason: fmt.Sprintf("unknown dtype %q", string(m.DType))})
		} else if !m.DType.Representable(m.NoData) {
			v = append(v, Violation{
				Field:  field + ".nodata",
				Reason: fmt.Sprintf("nodata %v is not representable in %s", m.NoData, m.DType),
			})
		}

		if !m.Resampling.Known() {
			v = append(v, Violation{Field: field + ".resampling_method", Reason: fmt.Sprintf("unknown resampling method %q", string(m.Resampling))})
		}
		if m.SrcVarName == "" {
			v = append(v, Violation{Field: field + ".src_varname", Reason: "must not be empty"})
		}
	}

	return v
}
