package domain

import "fmt"

// TileSet is the ordered, read-only sequence of tiles used in play order.
type TileSet struct {
	tiles []Tile
}

// NewTileSet returns a set holding a copy of tiles. At least one tile is required.
func NewTileSet(tiles []Tile) (*TileSet, error) {
	if len(tiles) == 0 {
		return nil, fmt.Errorf("%w: no tiles", ErrInvalidTileData)
	}
	cp := make([]Tile, len(tiles))
	copy(cp, tiles)
	return &TileSet{tiles: cp}, nil
}

// Len returns the number of tiles.
func (s *TileSet) Len() int { return len(s.tiles) }

// At returns tile i.
func (s *TileSet) At(i int) Tile { return s.tiles[i] }

// Next returns the index following i, wrapping to 0 after the last tile.
func (s *TileSet) Next(i int) int {
	if i+1 >= len(s.tiles) {
		return 0
	}
	return i + 1
}

// Tiles returns a copy of every tile in order.
func (s *TileSet) Tiles() []Tile {
	cp := make([]Tile, len(s.tiles))
	copy(cp, s.tiles)
	return cp
}
