// Package tilefile reads the tile definition files the game is played with.
//
// A tile file holds one or more tiles. Each tile is five lines of five
// characters, ',' for an empty cell and '!' for an active one, and every line
// ends with a newline. Consecutive tiles are separated by one empty line.
package tilefile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jaminalder/fitz/internal/domain"
)

// ErrAccess is returned when the tile file cannot be opened or read.
var ErrAccess = errors.New("can't access tile file")

// Load reads and parses the tile file at path.
func Load(path string) (*domain.TileSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAccess, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a tile file from r.
func Parse(r io.Reader) (*domain.TileSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAccess, err)
	}
	text := string(data)
	if !strings.HasSuffix(text, "\n") {
		return nil, fmt.Errorf("%w: missing final newline", domain.ErrInvalidTileData)
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	// Every tile but the last is followed by a separator line.
	const stride = domain.TileSize + 1
	if (len(lines)+1)%stride != 0 {
		return nil, fmt.Errorf("%w: %d lines", domain.ErrInvalidTileData, len(lines))
	}

	var tiles []domain.Tile
	for start := 0; start < len(lines); start += stride {
		t, err := domain.ParseTile(lines[start : start+domain.TileSize])
		if err != nil {
			return nil, fmt.Errorf("tile %d: %w", len(tiles)+1, err)
		}
		if sep := start + domain.TileSize; sep < len(lines) && lines[sep] != "" {
			return nil, fmt.Errorf("%w: tile %d is not followed by an empty line", domain.ErrInvalidTileData, len(tiles)+1)
		}
		tiles = append(tiles, t)
	}
	return domain.NewTileSet(tiles)
}
