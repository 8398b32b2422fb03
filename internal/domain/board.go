package domain

import (
	"fmt"
	"strings"
)

// Cell represents a board cell state. The non-empty values double as the
// two players.
type Cell uint8

const (
	Empty Cell = iota
	Player1
	Player2
)

// Symbol returns the character used for c on the board and in save files.
func (c Cell) Symbol() byte {
	switch c {
	case Player1:
		return '*'
	case Player2:
		return '#'
	default:
		return '.'
	}
}

// Opponent returns the other player. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return Empty
	}
}

func (c Cell) String() string { return string(c.Symbol()) }

// ParseCell maps a board symbol back to its cell.
func ParseCell(b byte) (Cell, bool) {
	switch b {
	case '.':
		return Empty, true
	case '*':
		return Player1, true
	case '#':
		return Player2, true
	}
	return Empty, false
}

// Board dimension limits.
const (
	MinBoardSize = 1
	MaxBoardSize = 999
)

// MinAnchor is the smallest anchor coordinate on either axis. A tile anchored
// there hangs two cells off the board.
const MinAnchor = -tileCenter

// Anchor is the board coordinate under a tile's centre cell.
type Anchor struct {
	Row int
	Col int
}

// Move places the current tile at an anchor after rotating it.
type Move struct {
	Anchor
	Rotation Rotation
}

func (m Move) String() string {
	return fmt.Sprintf("%d %d rotated %d", m.Row, m.Col, m.Rotation)
}

// Board is a fixed-size grid stored row-major.
type Board struct {
	height int
	width  int
	cells  []Cell
}

// NewBoard returns an empty height×width board.
func NewBoard(height, width int) (*Board, error) {
	if height < MinBoardSize || height > MaxBoardSize || width < MinBoardSize || width > MaxBoardSize {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, height, width)
	}
	return &Board{height: height, width: width, cells: make([]Cell, height*width)}, nil
}

// ParseBoard builds a board from rows of cell symbols.
func ParseBoard(height, width int, rows []string) (*Board, error) {
	b, err := NewBoard(height, width)
	if err != nil {
		return nil, err
	}
	if len(rows) != height {
		return nil, fmt.Errorf("have %d rows, want %d", len(rows), height)
	}
	for r, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d cells, want %d", r+1, len(row), width)
		}
		for c := 0; c < width; c++ {
			cell, ok := ParseCell(row[c])
			if !ok {
				return nil, fmt.Errorf("row %d: unexpected %q", r+1, row[c])
			}
			b.cells[r*width+c] = cell
		}
	}
	return b, nil
}

func (b *Board) Height() int { return b.height }
func (b *Board) Width() int  { return b.width }

// MaxRow and MaxCol are the largest anchor coordinates worth trying.
func (b *Board) MaxRow() int { return b.height - 1 + tileCenter }
func (b *Board) MaxCol() int { return b.width - 1 + tileCenter }

// At returns the cell at row r, column c. Both must be on the board.
func (b *Board) At(r, c int) Cell { return b.cells[r*b.width+c] }

func (b *Board) inBounds(r, c int) bool {
	return r >= 0 && r < b.height && c >= 0 && c < b.width
}

// IsLegal reports whether t, rotated and anchored as m says, lands every
// active cell on an empty board cell.
func (b *Board) IsLegal(t Tile, m Move) bool {
	return b.fits(footprint(Rotate(t, m.Rotation)), m.Anchor)
}

func (b *Board) fits(fp []offset, at Anchor) bool {
	for _, off := range fp {
		r, c := at.Row+off.dr, at.Col+off.dc
		if !b.inBounds(r, c) || b.At(r, c) != Empty {
			return false
		}
	}
	return true
}

// Place marks every cell covered by t for player p. It does not check
// legality; callers must have confirmed it with IsLegal.
func (b *Board) Place(t Tile, m Move, p Cell) {
	for _, off := range footprint(Rotate(t, m.Rotation)) {
		r, c := m.Row+off.dr, m.Col+off.dc
		b.cells[r*b.width+c] = p
	}
}

// HasPlacement reports whether t fits anywhere on the board in any rotation.
func (b *Board) HasPlacement(t Tile) bool {
	for _, rot := range Rotations {
		fp := footprint(Rotate(t, rot))
		for r := MinAnchor; r <= b.MaxRow(); r++ {
			for c := MinAnchor; c <= b.MaxCol(); c++ {
				if b.fits(fp, Anchor{Row: r, Col: c}) {
					return true
				}
			}
		}
	}
	return false
}

// Rows returns each board row as a string of cell symbols.
func (b *Board) Rows() []string {
	rows := make([]string, b.height)
	buf := make([]byte, b.width)
	for r := 0; r < b.height; r++ {
		for c := 0; c < b.width; c++ {
			buf[c] = b.At(r, c).Symbol()
		}
		rows[r] = string(buf)
	}
	return rows
}

func (b *Board) String() string {
	return strings.Join(b.Rows(), "\n") + "\n"
}
