package ingest

import (
	"regexp"
	"strconv"
	"time"
)

// Placeholder names usable in file_path_template
const (
	PlaceholderTileX     = "tile_index[0]"
	PlaceholderTileY     = "tile_index[1]"
	PlaceholderStartTime = "start_time"
)

var knownPlaceholders = map[string]bool{
	PlaceholderTileX:     true,
	PlaceholderTileY:     true,
	PlaceholderStartTime: true,
}

var placeholderPattern = regexp.MustCompile(`\{([^{}]*)\}`)

// listPlaceholders returns the placeholder names referenced by a template,
// in order of appearance
func listPlaceholders(template string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(template, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// RenderOutputPath fills the config's file path template for one tile and
// start time. The start time is formatted with the config-supplied layout.
// A template referencing an unknown placeholder fails with a TemplateError.
func RenderOutputPath(cfg *IngestionConfig, tile Tile, startTime time.Time) (string, error) {
	replacements := map[string]string{
		PlaceholderTileX:     strconv.Itoa(tile.X),
		PlaceholderTileY:     strconv.Itoa(tile.Y),
		PlaceholderStartTime: startTime.Format(cfg.Storage.StartTimeFormat),
	}

	unknown := ""
	rendered := placeholderPattern.ReplaceAllStringFunc(cfg.FilePathTemplate, func(match string) string {
		name := match[1 : len(match)-1]
		if value, ok := replacements[name]; ok {
			return value
		}
		if unknown == "" {
			unknown = name
		}
		return match
	})

	if unknown != "" {
		return "", &TemplateError{Template: cfg.FilePathTemplate, Placeholder: unknown}
	}
	return rendered, nil
}
