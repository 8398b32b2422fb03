package domain

import (
	"fmt"
	"strings"
)

// TileSize is the side length of every tile.
const TileSize = 5

// tileCenter is the offset of a tile's middle cell from its top-left corner.
const tileCenter = TileSize / 2

// Symbols used in the textual form of a tile.
const (
	TileEmptySymbol  = ','
	TileActiveSymbol = '!'
)

// Tile is a square grid of cells; true marks an active cell.
// Tiles are values: rotating one yields a new Tile.
type Tile [TileSize][TileSize]bool

// Rotation is a clockwise rotation in degrees.
type Rotation int

const (
	Rot0   Rotation = 0
	Rot90  Rotation = 90
	Rot180 Rotation = 180
	Rot270 Rotation = 270
)

// Rotations lists every rotation in search order.
var Rotations = [4]Rotation{Rot0, Rot90, Rot180, Rot270}

// Valid reports whether r is one of the four supported angles.
func (r Rotation) Valid() bool {
	switch r {
	case Rot0, Rot90, Rot180, Rot270:
		return true
	}
	return false
}

// Rotate returns t turned clockwise by r. Invalid angles leave t unchanged.
func Rotate(t Tile, r Rotation) Tile {
	if !r.Valid() {
		return t
	}
	for steps := int(r) / 90; steps > 0; steps-- {
		t = rotate90(t)
	}
	return t
}

func rotate90(t Tile) Tile {
	var out Tile
	for row := 0; row < TileSize; row++ {
		for col := 0; col < TileSize; col++ {
			out[col][TileSize-1-row] = t[row][col]
		}
	}
	return out
}

// ParseTile builds a tile from TileSize lines of TileSize symbols.
func ParseTile(lines []string) (Tile, error) {
	var t Tile
	if len(lines) != TileSize {
		return t, fmt.Errorf("%w: tile has %d lines", ErrInvalidTileData, len(lines))
	}
	for row, line := range lines {
		if len(line) != TileSize {
			return t, fmt.Errorf("%w: line %d has %d cells", ErrInvalidTileData, row+1, len(line))
		}
		for col := 0; col < TileSize; col++ {
			switch line[col] {
			case TileActiveSymbol:
				t[row][col] = true
			case TileEmptySymbol:
			default:
				return t, fmt.Errorf("%w: unexpected %q", ErrInvalidTileData, line[col])
			}
		}
	}
	return t, nil
}

// Lines returns the textual rows of the tile.
func (t Tile) Lines() []string {
	lines := make([]string, TileSize)
	var sb strings.Builder
	for row := range t {
		sb.Reset()
		for _, active := range t[row] {
			if active {
				sb.WriteByte(TileActiveSymbol)
			} else {
				sb.WriteByte(TileEmptySymbol)
			}
		}
		lines[row] = sb.String()
	}
	return lines
}

func (t Tile) String() string {
	return strings.Join(t.Lines(), "\n") + "\n"
}

// offset is the position of an active cell relative to a tile's anchor.
type offset struct{ dr, dc int }

// footprint lists the anchor-relative offsets of the active cells of t.
func footprint(t Tile) []offset {
	var fp []offset
	for row := 0; row < TileSize; row++ {
		for col := 0; col < TileSize; col++ {
			if t[row][col] {
				fp = append(fp, offset{dr: row - tileCenter, dc: col - tileCenter})
			}
		}
	}
	return fp
}
