package parallel

// TileGrid divides an image into TileSize×TileSize tiles.
//
// Edge tiles have smaller dimensions when the image is not evenly divisible
// by the tile size. Tiles are stored in a flat slice in row-major order,
// accessed via index = ty * tilesX + tx.
type TileGrid struct {
	tiles  []Tile
	tilesX int
	tilesY int
	width  int
	height int
}

// NewTileGrid creates a grid covering a width×height image.
// Non-positive dimensions produce an empty grid.
func NewTileGrid(width, height int) *TileGrid {
	if width <= 0 || height <= 0 {
		return &TileGrid{}
	}

	tilesX := (width + TileSize - 1) / TileSize
	tilesY := (height + TileSize - 1) / TileSize

	g := &TileGrid{
		tiles:  make([]Tile, tilesX*tilesY),
		tilesX: tilesX,
		tilesY: tilesY,
		width:  width,
		height: height,
	}

	for ty := range tilesY {
		for tx := range tilesX {
			// Right and bottom edge tiles are truncated.
			tw := min(TileSize, width-tx*TileSize)
			th := min(TileSize, height-ty*TileSize)
			g.tiles[ty*tilesX+tx] = Tile{X: tx, Y: ty, Width: tw, Height: th}
		}
	}
	return g
}

// Index returns the flat index of tile (tx, ty), or -1 when out of bounds.
func (g *TileGrid) Index(tx, ty int) int {
	if tx < 0 || tx >= g.tilesX || ty < 0 || ty >= g.tilesY {
		return -1
	}
	return ty*g.tilesX + tx
}

// TileAt returns the tile at tile coordinates (tx, ty).
// ok is false if coordinates are out of bounds.
func (g *TileGrid) TileAt(tx, ty int) (Tile, bool) {
	i := g.Index(tx, ty)
	if i < 0 {
		return Tile{}, false
	}
	return g.tiles[i], true
}

// TileAtPixel returns the tile containing the pixel (px, py).
func (g *TileGrid) TileAtPixel(px, py int) (Tile, bool) {
	if px < 0 || px >= g.width || py < 0 || py >= g.height {
		return Tile{}, false
	}
	return g.TileAt(px/TileSize, py/TileSize)
}

// TileRange returns the inclusive tile index range touched by the pixel
// rectangle [loX,hiX]×[loY,hiY]. The rectangle must already lie inside the
// image.
func (g *TileGrid) TileRange(loX, loY, hiX, hiY float32) (tx0, ty0, tx1, ty1 int) {
	tx0 = clampIndex(int(loX)/TileSize, g.tilesX)
	ty0 = clampIndex(int(loY)/TileSize, g.tilesY)
	tx1 = clampIndex(int(hiX)/TileSize, g.tilesX)
	ty1 = clampIndex(int(hiY)/TileSize, g.tilesY)
	return tx0, ty0, tx1, ty1
}

// TileCount returns the total number of tiles in the grid.
func (g *TileGrid) TileCount() int {
	return len(g.tiles)
}

// TilesX returns the number of tiles horizontally.
func (g *TileGrid) TilesX() int {
	return g.tilesX
}

// TilesY returns the number of tiles vertically.
func (g *TileGrid) TilesY() int {
	return g.tilesY
}

// Width returns the image width in pixels.
func (g *TileGrid) Width() int {
	return g.width
}

// Height returns the image height in pixels.
func (g *TileGrid) Height() int {
	return g.height
}

// AllTiles returns all tiles in row-major order.
// The returned slice should not be modified.
func (g *TileGrid) AllTiles() []Tile {
	return g.tiles
}

// ForEach calls fn for each tile in row-major order.
func (g *TileGrid) ForEach(fn func(i int, tile Tile)) {
	for i, tile := range g.tiles {
		fn(i, tile)
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
