package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderOutputPath(t *testing.T) {
	cfg := loadTestConfig(t)
	startTime := time.Date(2005, 1, 7, 23, 59, 29, 0, time.UTC)

	path, err := RenderOutputPath(cfg, Tile{X: 142, Y: -33}, startTime)

	assert.Nil(t, err)
	assert.Equal(t, "LS7_ETM_LEDAPS/LS7_ETM_LEDAPS_142_-33_2005-01-07.nc", path)
}

func TestRenderOutputPath_ConfiguredTimeFormat(t *testing.T) {
	cfg := loadTestConfig(t)
	cfg.Storage.StartTimeFormat = "20060102"
	startTime := time.Date(2005, 1, 7, 0, 0, 0, 0, time.UTC)

	path, err := RenderOutputPath(cfg, Tile{X: 142, Y: -33}, startTime)

	assert.Nil(t, err)
	assert.Contains(t, path, "_20050107.nc")
}

func TestRenderOutputPath_UnknownPlaceholder(t *testing.T) {
	cfg := loadTestConfig(t)
	cfg.FilePathTemplate = "tiles/{tile_index[0]}_{tile_index[1]}_{season}.nc"

	_, err := RenderOutputPath(cfg, Tile{X: 0, Y: 0}, time.Now())

	templateErr, ok := err.(*TemplateError)
	assert.True(t, ok, "expected a TemplateError, got %T", err)
	assert.Equal(t, "season", templateErr.Placeholder)
	assert.Equal(t, ExitTemplate, ExitCodeForError(err))
}

func TestRenderOutputPath_UniquePerTileAndStartTime(t *testing.T) {
	cfg := loadTestConfig(t)
	times := []time.Time{
		time.Date(2005, 1, 7, 0, 0, 0, 0, time.UTC),
		time.Date(2005, 2, 7, 0, 0, 0, 0, time.UTC),
	}
	tiles := []Tile{{X: 142, Y: -33}, {X: 143, Y: -33}, {X: 142, Y: -32}}

	seen := map[string]bool{}
	for _, tile := range tiles {
		for _, startTime := range times {
			path, err := RenderOutputPath(cfg, tile, startTime)
			assert.Nil(t, err)
			assert.False(t, seen[path], "path collision: %s", path)
			seen[path] = true
		}
	}
}

func TestListPlaceholders(t *testing.T) {
	names := listPlaceholders("a/{tile_index[0]}/{start_time}_{tile_index[1]}")

	assert.Equal(t, []string{"tile_index[0]", "start_time", "tile_index[1]"}, names)
}
