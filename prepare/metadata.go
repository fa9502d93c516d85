package prepare

import (
	"encoding/xml"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
)

// espaMetadata is the subset of the ESPA metadata document
// (http://espa.cr.usgs.gov/v1.2) the planner needs
type espaMetadata struct {
	XMLName        xml.Name       `xml:"espa_metadata"`
	GlobalMetadata globalMetadata `xml:"global_metadata"`
}

type globalMetadata struct {
	Satellite        string                `xml:"satellite"`
	Instrument       string                `xml:"instrument"`
	AcquisitionDate  string                `xml:"acquisition_date"`
	SceneCenterTime  string                `xml:"scene_center_time"`
	LPGSMetadataFile string                `xml:"lpgs_metadata_file"`
	Corners          []corner              `xml:"corner"`
	Projection       projectionInformation `xml:"projection_information"`
}

type corner struct {
	Location  string  `xml:"location,attr"`
	Latitude  float64 `xml:"latitude,attr"`
	Longitude float64 `xml:"longitude,attr"`
}

type projectionInformation struct {
	Units        string        `xml:"units,attr"`
	CornerPoints []cornerPoint `xml:"corner_point"`
}

type cornerPoint struct {
	Location string  `xml:"location,attr"`
	X        float64 `xml:"x,attr"`
	Y        float64 `xml:"y,attr"`
}

// findMetadataFile locates the ESPA metadata XML in a scene directory,
// skipping GDAL aux.xml sidecars
func findMetadataFile(dir string) (string, error) {
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		return "", err
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".xml") && !strings.HasSuffix(name, "aux.xml") {
			return filepath.Join(dir, name), nil
		}
	}

	return "", fmt.Errorf("no ESPA metadata XML found in %s", dir)
}

func parseMetadataFile(path string) (*espaMetadata, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	meta := espaMetadata{}
	if err := xml.NewDecoder(file).Decode(&meta); err != nil {
		return nil, fmt.Errorf("could not parse ESPA metadata %s: %v", path, err)
	}

	return &meta, nil
}

// stationCode extracts the three-digit ground station code from an LPGS
// metadata file name, e.g. LE71140732005007ASA00_MTL.txt carries it at
// offset 16
func stationCode(lpgsMetadataFile string) string {
	if len(lpgsMetadataFile) < 19 {
		return ""
	}
	return lpgsMetadataFile[16:19]
}
