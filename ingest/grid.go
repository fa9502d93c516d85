package ingest

import "math"

// Tile identifies one cell of the output tile grid by its integer indices.
// The grid is anchored at the configured grid origin; a tile's footprint
// starts at origin + index*tile_size on each axis.
type Tile struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// TileGrid is a lazy, finite, restartable sequence of tiles covering a
// requested bounding rectangle. Tiles are yielded row-major with longitude
// varying fastest, so the order is deterministic for a given config and
// bounds. The union of yielded tile footprints always contains the
// requested bounds: partial tiles at the edges are expanded, never clipped.
type TileGrid struct {
	origin GridOrigin
	size   TileSize
	bounds Bounds

	minX, maxX int
	minY, maxY int

	nextX, nextY int
	done         bool
}

// NewTileGrid plans the tile grid for the requested bounds, defaulting to
// the config's ingestion bounds when requested is nil. Degenerate bounds
// fail with a RangeError; bounds are never silently swapped.
func NewTileGrid(cfg *IngestionConfig, requested *Bounds) (*TileGrid, error) {
	bounds := cfg.IngestionBounds
	if requested != nil {
		bounds = *requested
	}

	if bounds.Left >= bounds.Right {
		return nil, &RangeError{Axis: "longitude", Min: bounds.Left, Max: bounds.Right}
	}
	if bounds.Bottom >= bounds.Top {
		return nil, &RangeError{Axis: "latitude", Min: bounds.Bottom, Max: bounds.Top}
	}

	origin := cfg.Storage.GridOrigin
	size := cfg.Storage.TileSize

	grid := &TileGrid{
		origin: origin,
		size:   size,
		bounds: bounds,
		minX:   lowTileIndex(bounds.Left, origin.Longitude, size.Longitude),
		maxX:   highTileIndex(bounds.Right, origin.Longitude, size.Longitude),
		minY:   lowTileIndex(bounds.Bottom, origin.Latitude, size.Latitude),
		maxY:   highTileIndex(bounds.Top, origin.Latitude, size.Latitude),
	}
	grid.Reset()
	return grid, nil
}

// lowTileIndex is the index of the tile containing the lower bound:
// floor((min - origin) / size)
func lowTileIndex(min, origin, size float64) int {
	return int(math.Floor((min - origin) / size))
}

// highTileIndex is the index of the last tile needed to reach the upper
// bound: ceil((max - origin) / size) - 1. An upper bound landing exactly on
// a tile boundary does not spill into the next tile.
func highTileIndex(max, origin, size float64) int {
	return int(math.Ceil((max-origin)/size)) - 1
}

// Bounds returns the requested bounds this grid was planned for
func (g *TileGrid) Bounds() Bounds {
	return g.bounds
}

// Len returns the total number of tiles in the sequence
func (g *TileGrid) Len() int {
	return (g.maxX - g.minX + 1) * (g.maxY - g.minY + 1)
}

// Reset rewinds the sequence to its first tile
func (g *TileGrid) Reset() {
	g.nextX = g.minX
	g.nextY = g.minY
	g.done = false
}

// Next yields the next tile in row-major order, longitude varying fastest.
// The second return value is false once the sequence is exhausted.
func (g *TileGrid) Next() (Tile, bool) {
	if g.done {
		return Tile{}, false
	}

	tile := Tile{X: g.nextX, Y: g.nextY}

	g.nextX++
	if g.nextX > g.maxX {
		g.nextX = g.minX
		g.nextY++
		if g.nextY > g.maxY {
			g.done = true
		}
	}

	return tile, true
}

// Tiles materializes the whole sequence. The iterator position is left
// exhausted; call Reset to reuse the grid.
func (g *TileGrid) Tiles() []Tile {
	g.Reset()
	tiles := make([]Tile, 0, g.Len())
	for tile, ok := g.Next(); ok; tile, ok = g.Next() {
		tiles = append(tiles, tile)
	}
	return tiles
}

// Footprint returns the spatial rectangle a tile covers
func (g *TileGrid) Footprint(tile Tile) Bounds {
	return Bounds{
		Left:   g.origin.Longitude + float64(tile.X)*g.size.Longitude,
		Bottom: g.origin.Latitude + float64(tile.Y)*g.size.Latitude,
		Right:  g.origin.Longitude + float64(tile.X+1)*g.size.Longitude,
		Top:    g.origin.Latitude + float64(tile.Y+1)*g.size.Latitude,
	}
}

// CoveredBounds returns the union of all tile footprints in the grid. It
// always contains the requested bounds.
func (g *TileGrid) CoveredBounds() Bounds {
	return Bounds{
		Left:   g.origin.Longitude + float64(g.minX)*g.size.Longitude,
		Bottom: g.origin.Latitude + float64(g.minY)*g.size.Latitude,
		Right:  g.origin.Longitude + float64(g.maxX+1)*g.size.Longitude,
		Top:    g.origin.Latitude + float64(g.maxY+1)*g.size.Latitude,
	}
}
