// Package console renders the game on a terminal and reads human moves.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/jaminalder/fitz/internal/domain"
	"github.com/logrusorgru/aurora"
)

// Printer writes the game transcript. With colour disabled the output is
// plain text.
type Printer struct {
	w  io.Writer
	au aurora.Aurora
}

// NewPrinter returns a printer writing to w.
func NewPrinter(w io.Writer, colour bool) *Printer {
	return &Printer{w: w, au: aurora.NewAurora(colour)}
}

func (p *Printer) player(c domain.Cell) string {
	switch c {
	case domain.Player1:
		return p.au.Yellow(c.String()).String()
	case domain.Player2:
		return p.au.Cyan(c.String()).String()
	}
	return c.String()
}

// Board prints the board one row per line.
func (p *Printer) Board(b *domain.Board) {
	var sb strings.Builder
	for r := 0; r < b.Height(); r++ {
		for c := 0; c < b.Width(); c++ {
			cell := b.At(r, c)
			if cell == domain.Empty {
				sb.WriteByte(cell.Symbol())
				continue
			}
			sb.WriteString(p.player(cell))
		}
		sb.WriteByte('\n')
	}
	fmt.Fprint(p.w, sb.String())
}

func (p *Printer) tileLine(line string) string {
	return strings.ReplaceAll(line, string(domain.TileActiveSymbol), p.au.Green(string(domain.TileActiveSymbol)).String())
}

// Tile prints a single tile.
func (p *Printer) Tile(t domain.Tile) {
	for _, line := range t.Lines() {
		fmt.Fprintln(p.w, p.tileLine(line))
	}
}

// TileSet prints every tile beside its 90, 180 and 270 degree rotations,
// with an empty line between tiles.
func (p *Printer) TileSet(set *domain.TileSet) {
	for i, t := range set.Tiles() {
		if i > 0 {
			fmt.Fprintln(p.w)
		}
		var views [len(domain.Rotations)][]string
		for j, rot := range domain.Rotations {
			views[j] = domain.Rotate(t, rot).Lines()
		}
		for row := 0; row < domain.TileSize; row++ {
			parts := make([]string, len(views))
			for j := range views {
				parts[j] = p.tileLine(views[j][row])
			}
			fmt.Fprintln(p.w, strings.Join(parts, " "))
		}
	}
}

// Prompt asks player c for a move.
func (p *Printer) Prompt(c domain.Cell) {
	fmt.Fprintf(p.w, "Player %s] ", p.player(c))
}

// Turn reports a move chosen by an automatic player.
func (p *Printer) Turn(t domain.Turn) {
	fmt.Fprintf(p.w, "Player %s => %d %d rotated %d\n", p.player(t.Player), t.Move.Row, t.Move.Col, t.Move.Rotation)
}

// Winner announces the end of the game.
func (p *Printer) Winner(c domain.Cell) {
	fmt.Fprintf(p.w, "Player %s wins\n", p.player(c))
}

// Newline ends a line the input left open.
func (p *Printer) Newline() {
	fmt.Fprintln(p.w)
}
