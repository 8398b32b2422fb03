package domain

import (
	"errors"
	"testing"
)

// mustTile parses a tile from five rows of ',' and '!'.
func mustTile(t *testing.T, rows ...string) Tile {
	t.Helper()
	tile, err := ParseTile(rows)
	if err != nil {
		t.Fatalf("ParseTile: %v", err)
	}
	return tile
}

func TestRotateMapsCellsClockwise(t *testing.T) {
	//
	// !!,,,      ,,,,!
	// ,,,,,      ,,,,!
	// ,,,,,  =>  ,,,,,
	// ,,,,,      ,,,,,
	// ,,,,!      !,,,,
	src := mustTile(t,
		"!!,,,",
		",,,,,",
		",,,,,",
		",,,,,",
		",,,,!",
	)
	want := mustTile(t,
		",,,,!",
		",,,,!",
		",,,,,",
		",,,,,",
		"!,,,,",
	)
	got := Rotate(src, Rot90)
	if got != want {
		t.Fatalf("Rotate 90:\n%s\nwant\n%s", got, want)
	}
	for r := 0; r < TileSize; r++ {
		for c := 0; c < TileSize; c++ {
			if got[c][TileSize-1-r] != src[r][c] {
				t.Fatalf("cell (%d,%d) did not move to (%d,%d)", r, c, c, TileSize-1-r)
			}
		}
	}
}

func TestRotateComposes(t *testing.T) {
	src := mustTile(t,
		",!,,,",
		",!!,,",
		",,!,,",
		",,,,,",
		"!,,,,",
	)
	if Rotate(src, Rot0) != src {
		t.Fatalf("rotation 0 should leave the tile unchanged")
	}
	if Rotate(Rotate(src, Rot90), Rot90) != Rotate(src, Rot180) {
		t.Fatalf("two quarter turns should equal 180")
	}
	if Rotate(Rotate(src, Rot180), Rot90) != Rotate(src, Rot270) {
		t.Fatalf("180 plus a quarter turn should equal 270")
	}
	full := src
	for i := 0; i < 4; i++ {
		full = Rotate(full, Rot90)
	}
	if full != src {
		t.Fatalf("four quarter turns should restore the tile")
	}
}

func TestRotateDoesNotTouchInput(t *testing.T) {
	src := mustTile(t,
		"!,,,,",
		",,,,,",
		",,,,,",
		",,,,,",
		",,,,,",
	)
	before := src
	_ = Rotate(src, Rot270)
	if src != before {
		t.Fatalf("Rotate modified its input")
	}
}

func TestParseTileRejectsBadShapes(t *testing.T) {
	cases := map[string][]string{
		"short":      {",,,,,", ",,,,,", ",,,,,", ",,,,,"},
		"narrow":     {",,,,", ",,,,,", ",,,,,", ",,,,,", ",,,,,"},
		"wide":       {",,,,,,", ",,,,,", ",,,,,", ",,,,,", ",,,,,"},
		"bad symbol": {",,,,,", ",,x,,", ",,,,,", ",,,,,", ",,,,,"},
	}
	for name, rows := range cases {
		if _, err := ParseTile(rows); !errors.Is(err, ErrInvalidTileData) {
			t.Fatalf("%s: expected ErrInvalidTileData, got %v", name, err)
		}
	}
}

func TestTileLinesRoundTrip(t *testing.T) {
	rows := []string{"!,,,,", ",!,,,", ",,!,,", ",,,!,", ",,,,!"}
	got := mustTile(t, rows...).Lines()
	for i := range rows {
		if got[i] != rows[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], rows[i])
		}
	}
}

func TestTileSetNextWraps(t *testing.T) {
	set, err := NewTileSet(make([]Tile, 3))
	if err != nil {
		t.Fatalf("NewTileSet: %v", err)
	}
	for i, want := range []int{1, 2, 0} {
		if got := set.Next(i); got != want {
			t.Fatalf("Next(%d) = %d, want %d", i, got, want)
		}
	}
	if _, err := NewTileSet(nil); !errors.Is(err, ErrInvalidTileData) {
		t.Fatalf("expected ErrInvalidTileData for an empty set, got %v", err)
	}
}
