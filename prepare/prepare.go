package prepare

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/MaluSegGar/datacube-dataset-config/model"
	"github.com/MaluSegGar/datacube-dataset-config/util"
	yaml "gopkg.in/yaml.v2"
)

// MetadataFileName is the dataset document written into each scene directory
const MetadataFileName = "agdc-metadata.yaml"

const sceneTimeLayout = "2006-01-02T15:04:05"

// Scene acquisition is a single pass; the window is centered on the scene
// center time
const acquisitionWindow = 24 * time.Second

var sceneIDPattern = regexp.MustCompile(`^(LC8|LE7|LT5)(\d{3})(\d{3})(\d{4})(\d{3})`)

// SceneFields are the identity fields parsed from a Landsat scene directory name
type SceneFields struct {
	Code       string
	Path       int
	Row        int
	CreationDT time.Time
	Level      string
	Type       string
}

// ParseSceneID parses a scene identifier of the form
// (LC8|LE7|LT5)PPPRRRYYYYDDD, where DDD is the Julian day of the product year
func ParseSceneID(name string) (*SceneFields, error) {
	match := sceneIDPattern.FindStringSubmatch(name)
	if match == nil {
		return nil, fmt.Errorf("unrecognized scene identifier: %q", name)
	}

	path, _ := strconv.Atoi(match[2])
	row, _ := strconv.Atoi(match[3])
	year, _ := strconv.Atoi(match[4])
	julian, _ := strconv.Atoi(match[5])

	return &SceneFields{
		Code:       match[1],
		Path:       path,
		Row:        row,
		CreationDT: time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, julian),
		Level:      "sr_refl",
		Type:       "LEDAPS",
	}, nil
}

// BandName derives the layer name from a band GeoTIFF file name: the part
// after the first underscore, with a leading B stripped from plain
// B-numbered bands
func BandName(filename string) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	position := strings.Index(stem, "_")
	if position == -1 {
		return "", fmt.Errorf("unexpected tif image in scene directory: %q", filename)
	}

	suffix := stem[position+1:]
	if matched, _ := regexp.MatchString(`^[Bb]\d+`, suffix); matched {
		return stem[position+2:], nil
	}
	return suffix, nil
}

// Coord is a lon/lat pair in the dataset document
type Coord struct {
	Lon float64 `yaml:"lon"`
	Lat float64 `yaml:"lat"`
}

// Point is an x/y pair in storage CRS units
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Band references one measurement GeoTIFF by relative path
type Band struct {
	Path string `yaml:"path"`
}

// DatasetDocument is the agdc-metadata.yaml document describing one
// prepared scene
type DatasetDocument struct {
	ID              string `yaml:"id"`
	ProcessingLevel string `yaml:"processing_level"`
	ProductType     string `yaml:"product_type"`
	CreationDT      string `yaml:"creation_dt"`
	Platform        struct {
		Code string `yaml:"code"`
	} `yaml:"platform"`
	Instrument struct {
		Name string `yaml:"name"`
	} `yaml:"instrument"`
	Acquisition struct {
		GroundStation struct {
			Name string `yaml:"name"`
			AOS  string `yaml:"aos"`
			LOS  string `yaml:"los"`
		} `yaml:"groundstation"`
	} `yaml:"acquisition"`
	Extent struct {
		FromDT   string           `yaml:"from_dt"`
		ToDT     string           `yaml:"to_dt"`
		CenterDT string           `yaml:"center_dt"`
		Coord    map[string]Coord `yaml:"coord,omitempty"`
	} `yaml:"extent"`
	Format struct {
		Name string `yaml:"name"`
	} `yaml:"format"`
	GridSpatial struct {
		Projection struct {
			Units        string           `yaml:"units,omitempty"`
			GeoRefPoints map[string]Point `yaml:"geo_ref_points,omitempty"`
		} `yaml:"projection"`
	} `yaml:"grid_spatial"`
	Image struct {
		SatelliteRefPointStart struct {
			Path int `yaml:"path"`
			Row  int `yaml:"row"`
		} `yaml:"satellite_ref_point_start"`
		SatelliteRefPointEnd struct {
			Path int `yaml:"path"`
			Row  int `yaml:"row"`
		} `yaml:"satellite_ref_point_end"`
		Bands map[string]Band `yaml:"bands"`
	} `yaml:"image"`
	Lineage struct {
		SourceDatasets map[string]string `yaml:"source_datasets"`
	} `yaml:"lineage"`
}

// PrepareDataset builds the dataset document for one Landsat LEDAPS scene
// directory
func PrepareDataset(dir string) (*DatasetDocument, error) {
	fields, err := ParseSceneID(filepath.Base(dir))
	if err != nil {
		return nil, err
	}

	metaPath, err := findMetadataFile(dir)
	if err != nil {
		return nil, err
	}
	meta, err := parseMetadataFile(metaPath)
	if err != nil {
		return nil, err
	}

	global := meta.GlobalMetadata
	centerTime := global.SceneCenterTime
	if len(centerTime) > 8 {
		centerTime = centerTime[:8]
	}
	center, err := model.ParseFlexibleTime(global.AcquisitionDate + "T" + centerTime)
	if err != nil {
		return nil, fmt.Errorf("could not parse scene center time: %v", err)
	}
	aos := center.Add(-acquisitionWindow / 2)
	los := aos.Add(acquisitionWindow)

	bands, err := collectBands(dir)
	if err != nil {
		return nil, err
	}

	id, err := util.PsuUUID()
	if err != nil {
		return nil, err
	}

	doc := DatasetDocument{
		ID:              id,
		ProcessingLevel: fields.Level,
		ProductType:     fields.Type,
		CreationDT:      fields.CreationDT.Format(sceneTimeLayout),
	}
	doc.Platform.Code = global.Satellite
	doc.Instrument.Name = global.Instrument
	doc.Acquisition.GroundStation.Name = GroundStation(stationCode(global.LPGSMetadataFile))
	doc.Acquisition.GroundStation.AOS = aos.Format(sceneTimeLayout)
	doc.Acquisition.GroundStation.LOS = los.Format(sceneTimeLayout)
	doc.Extent.FromDT = aos.Format(sceneTimeLayout)
	doc.Extent.ToDT = los.Format(sceneTimeLayout)
	doc.Extent.CenterDT = center.Format(sceneTimeLayout)
	doc.Extent.Coord = cornersToCoords(global.Corners)
	doc.Format.Name = "GeoTiff"
	doc.GridSpatial.Projection.Units = global.Projection.Units
	doc.GridSpatial.Projection.GeoRefPoints = cornerPointsToRefPoints(global.Projection.CornerPoints)
	doc.Image.SatelliteRefPointStart.Path = fields.Path
	doc.Image.SatelliteRefPointStart.Row = fields.Row
	doc.Image.SatelliteRefPointEnd.Path = fields.Path
	doc.Image.SatelliteRefPointEnd.Row = fields.Row
	doc.Image.Bands = bands
	doc.Lineage.SourceDatasets = map[string]string{}

	return &doc, nil
}

// WriteDatasetDocument prepares a scene directory and writes its
// agdc-metadata.yaml alongside the band files, returning the written path
func WriteDatasetDocument(dir string) (string, error) {
	doc, err := PrepareDataset(dir)
	if err != nil {
		return "", err
	}

	raw, err := yaml.Marshal(doc)
	if err != nil {
		return "", err
	}

	outPath := filepath.Join(dir, MetadataFileName)
	if err := ioutil.WriteFile(outPath, raw, os.FileMode(0644)); err != nil {
		return "", err
	}
	return outPath, nil
}

func collectBands(dir string) (map[string]Band, error) {
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	bands := map[string]Band{}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".tif") {
			continue
		}
		layer, err := BandName(name)
		if err != nil {
			return nil, err
		}
		bands[layer] = Band{Path: name}
	}

	if len(bands) == 0 {
		return nil, fmt.Errorf("no band GeoTIFFs found in %s", dir)
	}
	return bands, nil
}

func cornersToCoords(corners []corner) map[string]Coord {
	coords := map[string]Coord{}
	for _, c := range corners {
		switch strings.ToUpper(c.Location) {
		case "UL":
			coords["ul"] = Coord{Lon: c.Longitude, Lat: c.Latitude}
		case "LR":
			coords["lr"] = Coord{Lon: c.Longitude, Lat: c.Latitude}
		case "UR":
			coords["ur"] = Coord{Lon: c.Longitude, Lat: c.Latitude}
		case "LL":
			coords["ll"] = Coord{Lon: c.Longitude, Lat: c.Latitude}
		}
	}
	if len(coords) == 0 {
		return nil
	}
	// ESPA documents usually carry only UL and LR; synthesize the other two
	// corners of the axis-aligned box.
	if ul, ok := coords["ul"]; ok {
		if lr, ok := coords["lr"]; ok {
			coords["ur"] = Coord{Lon: lr.Lon, Lat: ul.Lat}
			coords["ll"] = Coord{Lon: ul.Lon, Lat: lr.Lat}
		}
	}
	return coords
}

func cornerPointsToRefPoints(points []cornerPoint) map[string]Point {
	refs := map[string]Point{}
	var ul, lr *cornerPoint
	for i := range points {
		switch strings.ToUpper(points[i].Location) {
		case "UL":
			ul = &points[i]
		case "LR":
			lr = &points[i]
		}
	}
	if ul == nil || lr == nil {
		return nil
	}
	refs["ul"] = Point{X: ul.X, Y: ul.Y}
	refs["ur"] = Point{X: lr.X, Y: ul.Y}
	refs["ll"] = Point{X: ul.X, Y: lr.Y}
	refs["lr"] = Point{X: lr.X, Y: lr.Y}
	return refs
}
