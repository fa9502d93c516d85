package prepare

// groundStations maps the three-digit station code embedded in an LPGS
// metadata file name to the ground station identifier
var groundStations = map[string]string{
	"001": "AGS", "002": "ASN", "003": "BJC", "004": "BKT",
	"005": "CHM", "006": "CUB", "007": "DKI", "008": "EDC",
	"009": "GLC", "010": "GNC", "011": "HOA", "012": "HEOC",
	"013": "IKR", "014": "KIS", "015": "LGS", "016": "MGR",
	"017": "MOR", "018": "MPS", "019": "MTI", "020": "PAC",
	"021": "PFS", "022": "SGS", "023": "TKSC", "028": "COA",
	"029": "JSA", "030": "KHC", "031": "MLK", "032": "LGN",
}

// GroundStation resolves a station code, falling back to the raw code when
// it is not in the table
func GroundStation(code string) string {
	if name, ok := groundStations[code]; ok {
		return name
	}
	return code
}
