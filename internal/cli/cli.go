// Package cli parses the fitz command line and turns fatal errors into the
// messages and exit statuses the game reports.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/jaminalder/fitz/internal/domain"
	"github.com/jaminalder/fitz/internal/save"
	"github.com/jaminalder/fitz/internal/tilefile"
)

// Mode is what a fitz invocation does.
type Mode int

const (
	ShowTiles Mode = iota
	NewGame
	LoadGame
)

// Options is a command line split into its parts. Player types and board
// dimensions stay raw until the tile file has been read, so that errors
// are reported in the same order as the game always has.
type Options struct {
	Mode       Mode
	ConfigFile string
	TileFile   string
	Players    [2]string
	Height     string
	Width      string
	SaveFile   string
}

// ErrUsage means the argument count does not match any mode.
var ErrUsage = errors.New("usage")

// Parse splits args (without the program name) by mode.
func Parse(args []string) (Options, error) {
	var o Options
	fs := flag.NewFlagSet("fitz", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&o.ConfigFile, "f", "", "the config file")
	if err := fs.Parse(args); err != nil {
		return o, ErrUsage
	}
	rest := fs.Args()

	switch len(rest) {
	case 1:
		o.Mode = ShowTiles
	case 4:
		o.Mode = LoadGame
		o.SaveFile = rest[3]
	case 5:
		o.Mode = NewGame
		o.Height, o.Width = rest[3], rest[4]
	default:
		return o, ErrUsage
	}
	o.TileFile = rest[0]
	if o.Mode != ShowTiles {
		o.Players = [2]string{rest[1], rest[2]}
	}
	return o, nil
}

// PlayerKinds validates both player types.
func (o Options) PlayerKinds() (p1, p2 domain.PlayerKind, err error) {
	if p1, err = domain.ParsePlayerKind(o.Players[0]); err != nil {
		return p1, p2, err
	}
	p2, err = domain.ParsePlayerKind(o.Players[1])
	return p1, p2, err
}

// Dimensions validates the board size of a new game; both sides must lie in
// [1, maxSize].
func (o Options) Dimensions(maxSize int) (height, width int, err error) {
	height, herr := strconv.Atoi(o.Height)
	width, werr := strconv.Atoi(o.Width)
	if herr != nil || werr != nil || height < 1 || width < 1 || height > maxSize || width > maxSize {
		return 0, 0, fmt.Errorf("%w: %s %s", domain.ErrInvalidDimensions, o.Height, o.Width)
	}
	return height, width, nil
}

// Exit statuses.
const (
	StatusOK             = 0
	StatusUsage          = 1
	StatusTileAccess     = 2
	StatusTileContents   = 3
	StatusPlayerType     = 4
	StatusDimensions     = 5
	StatusSaveAccess     = 6
	StatusSaveContents   = 7
	StatusInputExhausted = 10
	StatusUnknown        = 20
)

// ExitStatus maps a fatal error to its exit status and message.
func ExitStatus(err error) (int, string) {
	switch {
	case err == nil:
		return StatusOK, ""
	case errors.Is(err, ErrUsage):
		return StatusUsage, "Usage: fitz tilefile [p1type p2type [height width | filename]]"
	case errors.Is(err, tilefile.ErrAccess):
		return StatusTileAccess, "Can't access tile file"
	case errors.Is(err, domain.ErrInvalidTileData):
		return StatusTileContents, "Invalid tile file contents"
	case errors.Is(err, domain.ErrInvalidPlayerKind):
		return StatusPlayerType, "Invalid player type"
	case errors.Is(err, domain.ErrInvalidDimensions):
		return StatusDimensions, "Invalid dimensions"
	case errors.Is(err, save.ErrAccess):
		return StatusSaveAccess, "Can't access save file"
	case errors.Is(err, domain.ErrCorruptState):
		return StatusSaveContents, "Invalid save file contents"
	case errors.Is(err, domain.ErrInputExhausted):
		return StatusInputExhausted, "End of input"
	}
	return StatusUnknown, err.Error()
}
