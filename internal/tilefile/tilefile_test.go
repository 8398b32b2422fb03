package tilefile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jaminalder/fitz/internal/domain"
)

const twoTiles = `!!!!!
,,,,,
,,,,,
,,,,,
,,,,,

,,,,,
,,,,,
,,!,,
,,,,,
,,,,,
`

func TestParseTwoTiles(t *testing.T) {
	set, err := Parse(strings.NewReader(twoTiles))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if set.Len() != 2 {
		t.Fatalf("expected 2 tiles, got %d", set.Len())
	}
	if got := set.At(0).Lines()[0]; got != "!!!!!" {
		t.Fatalf("tile 1 row 1 = %q", got)
	}
	if !set.At(1)[2][2] {
		t.Fatalf("tile 2 should have its centre active")
	}
}

func TestParseRejectsMalformedFiles(t *testing.T) {
	cases := map[string]string{
		"empty":               "",
		"no final newline":    strings.TrimSuffix(twoTiles, "\n"),
		"trailing blank":      twoTiles + "\n",
		"short tile":          ",,,,,\n,,,,,\n,,,,,\n,,,,,\n",
		"long line":           ",,,,,,\n,,,,,\n,,,,,\n,,,,,\n,,,,,\n",
		"bad symbol":          ",,,,,\n,,,,,\n,,#,,\n,,,,,\n,,,,,\n",
		"missing separator":   strings.Replace(twoTiles, "\n\n", "\n", 1) + ",,,,,\n",
		"separator not blank": strings.Replace(twoTiles, "\n\n", "\n,\n", 1),
	}
	for name, text := range cases {
		if _, err := Parse(strings.NewReader(text)); !errors.Is(err, domain.ErrInvalidTileData) {
			t.Fatalf("%s: expected ErrInvalidTileData, got %v", name, err)
		}
	}
}

func TestParsePreservesTileText(t *testing.T) {
	set, err := Parse(strings.NewReader(twoTiles))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var buf bytes.Buffer
	for i, tile := range set.Tiles() {
		if i > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(tile.String())
	}
	if buf.String() != twoTiles {
		t.Fatalf("reformatted = %q", buf.String())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrAccess) {
		t.Fatalf("expected ErrAccess, got %v", err)
	}
}

func TestLoadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiles")
	if err := os.WriteFile(path, []byte(twoTiles), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	set, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if set.Len() != 2 {
		t.Fatalf("expected 2 tiles, got %d", set.Len())
	}
}
