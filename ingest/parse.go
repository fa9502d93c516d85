package ingest

import (
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v2"
)

// ParseConfig reads a YAML ingestion configuration document in full and
// decodes it into an IngestionConfig, applying defaults but performing no
// semantic validation. Callers that need a validated config should use
// LoadConfig instead.
func ParseConfig(r io.Reader) (*IngestionConfig, error) {
	raw, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	cfg := IngestionConfig{}
	if err := yaml.UnmarshalStrict(raw, &cfg); err != nil {
		return nil, &ConfigError{Field: "document", Reason: err.Error()}
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadConfig parses and validates an ingestion configuration. Validation is
// fail-fast: the first violation is returned as its error value. The full
// violation list is available from Validate for callers that want a report.
func LoadConfig(r io.Reader) (*IngestionConfig, error) {
	cfg, err := ParseConfig(r)
	if err != nil {
		return nil, err
	}

	if violations := Validate(cfg); len(violations) > 0 {
		return nil, violations[0].Err()
	}

	cfg.buildIndex()
	return cfg, nil
}

// LoadConfigFile loads a validated ingestion configuration from a file path
func LoadConfigFile(path string) (*IngestionConfig, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return LoadConfig(file)
}
