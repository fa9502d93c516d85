package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func loadTestConfig(t *testing.T) *IngestionConfig {
	cfg, err := LoadConfig(strings.NewReader(testConfigYAML))
	assert.Nil(t, err)
	return cfg
}

func TestTileGrid_SingleUnitTile(t *testing.T) {
	cfg := loadTestConfig(t)

	grid, err := NewTileGrid(cfg, nil)

	assert.Nil(t, err)
	assert.Equal(t, 1, grid.Len())
	assert.Equal(t, []Tile{{X: 142, Y: -33}}, grid.Tiles())
}

func TestTileGrid_RowMajorLongitudeFastest(t *testing.T) {
	cfg := loadTestConfig(t)

	grid, err := NewTileGrid(cfg, &Bounds{Left: 142, Bottom: -33, Right: 144, Top: -31})

	assert.Nil(t, err)
	assert.Equal(t, []Tile{
		{X: 142, Y: -33}, {X: 143, Y: -33},
		{X: 142, Y: -32}, {X: 143, Y: -32},
	}, grid.Tiles())
}

func TestTileGrid_PartialTilesExpandToFullTiles(t *testing.T) {
	cfg := loadTestConfig(t)

	grid, err := NewTileGrid(cfg, &Bounds{Left: 142.3, Bottom: -32.7, Right: 142.8, Top: -32.1})

	assert.Nil(t, err)
	assert.Equal(t, []Tile{{X: 142, Y: -33}}, grid.Tiles())
	assert.True(t, grid.CoveredBounds().Contains(grid.Bounds()))
}

func TestTileGrid_ExactBoundaryDoesNotSpill(t *testing.T) {
	cfg := loadTestConfig(t)

	// Upper bounds landing exactly on tile boundaries must not add an
	// extra row or column.
	grid, err := NewTileGrid(cfg, &Bounds{Left: 142.0, Bottom: -33.0, Right: 143.0, Top: -32.0})

	assert.Nil(t, err)
	assert.Equal(t, 1, grid.Len())
}

func TestTileGrid_CoverageProperty(t *testing.T) {
	cfg := loadTestConfig(t)

	cases := []Bounds{
		{Left: 142, Bottom: -33, Right: 143, Top: -32},
		{Left: 141.9, Bottom: -33.1, Right: 143.2, Top: -31.8},
		{Left: -1.5, Bottom: -1.5, Right: 1.5, Top: 1.5},
		{Left: 0.001, Bottom: 0.001, Right: 0.002, Top: 0.002},
	}

	for _, bounds := range cases {
		requested := bounds
		grid, err := NewTileGrid(cfg, &requested)
		assert.Nil(t, err)

		union := grid.CoveredBounds()
		assert.True(t, union.Contains(bounds), "tiles %v do not cover %v", union, bounds)

		for _, tile := range grid.Tiles() {
			footprint := grid.Footprint(tile)
			assert.True(t, union.Contains(footprint))
		}
	}
}

func TestTileGrid_Deterministic(t *testing.T) {
	cfg := loadTestConfig(t)
	bounds := Bounds{Left: 141.2, Bottom: -34.7, Right: 143.9, Top: -31.1}

	first, err := NewTileGrid(cfg, &bounds)
	assert.Nil(t, err)
	second, err := NewTileGrid(cfg, &bounds)
	assert.Nil(t, err)

	assert.Equal(t, first.Tiles(), second.Tiles())
}

func TestTileGrid_Restartable(t *testing.T) {
	cfg := loadTestConfig(t)

	grid, err := NewTileGrid(cfg, &Bounds{Left: 142, Bottom: -33, Right: 144, Top: -32})
	assert.Nil(t, err)

	firstPass := []Tile{}
	for tile, ok := grid.Next(); ok; tile, ok = grid.Next() {
		firstPass = append(firstPass, tile)
	}

	_, ok := grid.Next()
	assert.False(t, ok, "exhausted grid must keep returning false")

	grid.Reset()
	secondPass := []Tile{}
	for tile, ok := grid.Next(); ok; tile, ok = grid.Next() {
		secondPass = append(secondPass, tile)
	}

	assert.Equal(t, firstPass, secondPass)
	assert.Len(t, firstPass, grid.Len())
}

func TestTileGrid_GridOriginShiftsIndices(t *testing.T) {
	cfg := loadTestConfig(t)
	cfg.Storage.GridOrigin = GridOrigin{Longitude: 142.0, Latitude: -33.0}

	grid, err := NewTileGrid(cfg, nil)

	assert.Nil(t, err)
	assert.Equal(t, []Tile{{X: 0, Y: 0}}, grid.Tiles())
	assert.Equal(t, Bounds{Left: 142, Bottom: -33, Right: 143, Top: -32}, grid.Footprint(Tile{X: 0, Y: 0}))
}

func TestTileGrid_FractionalTileSize(t *testing.T) {
	cfg := loadTestConfig(t)
	cfg.Storage.TileSize = TileSize{Longitude: 1.1172945, Latitude: 0.9468305}

	grid, err := NewTileGrid(cfg, nil)

	assert.Nil(t, err)
	assert.True(t, grid.CoveredBounds().Contains(cfg.IngestionBounds))
}

func TestTileGrid_DegenerateBoundsFailWithRangeError(t *testing.T) {
	cfg := loadTestConfig(t)

	_, err := NewTileGrid(cfg, &Bounds{Left: 143, Bottom: -33, Right: 142, Top: -32})
	rangeErr, ok := err.(*RangeError)
	assert.True(t, ok, "expected a RangeError, got %T", err)
	assert.Equal(t, "longitude", rangeErr.Axis)

	_, err = NewTileGrid(cfg, &Bounds{Left: 142, Bottom: -32, Right: 143, Top: -32})
	rangeErr, ok = err.(*RangeError)
	assert.True(t, ok, "expected a RangeError, got %T", err)
	assert.Equal(t, "latitude", rangeErr.Axis)
}
