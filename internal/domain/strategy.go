package domain

import (
	"fmt"
	"strings"
)

// PlayerKind says who chooses a seat's moves.
type PlayerKind byte

const (
	Human PlayerKind = 'h'
	Auto1 PlayerKind = '1'
	Auto2 PlayerKind = '2'
)

// ParsePlayerKind accepts the single-character forms h, 1 and 2.
func ParsePlayerKind(s string) (PlayerKind, error) {
	if len(s) == 1 {
		switch k := PlayerKind(s[0]); k {
		case Human, Auto1, Auto2:
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPlayerKind, s)
}

// Automatic reports whether the kind plays without input.
func (k PlayerKind) Automatic() bool { return k == Auto1 || k == Auto2 }

func (k PlayerKind) String() string {
	switch k {
	case Human:
		return "human"
	case Auto1:
		return "type-1"
	case Auto2:
		return "type-2"
	}
	return strings.ToLower(fmt.Sprintf("kind(%d)", byte(k)))
}

// Strategy picks a legal move for an automatic seat.
// last is the move most recently applied to the game by either seat.
// Implementations never modify b.
type Strategy interface {
	NextMove(b *Board, t Tile, last Move) (Move, error)
}

// NewStrategy returns the strategy for an automatic seat on board b.
func NewStrategy(kind PlayerKind, seat Cell, b *Board) (Strategy, error) {
	switch kind {
	case Auto1:
		return ContinuationScan{}, nil
	case Auto2:
		if seat == Player2 {
			return NewSweep(Backward, b), nil
		}
		return NewSweep(Forward, b), nil
	}
	return nil, fmt.Errorf("%w: %v has no strategy", ErrInvalidPlayerKind, kind)
}

// Direction is the order a sweep visits anchors in.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// step moves at one anchor along the row-major order of b, wrapping at both ends.
func step(b *Board, at Anchor, dir Direction) Anchor {
	if dir == Backward {
		at.Col--
		if at.Col < MinAnchor {
			at.Col = b.MaxCol()
			at.Row--
		}
		if at.Row < MinAnchor {
			at.Row = b.MaxRow()
		}
		return at
	}
	at.Col++
	if at.Col > b.MaxCol() {
		at.Col = MinAnchor
		at.Row++
	}
	if at.Row > b.MaxRow() {
		at.Row = MinAnchor
	}
	return at
}

// ContinuationScan is the Type-1 strategy. It owns no cursor; each search
// resumes from the anchor of the last applied move and tries each rotation in
// turn, walking forward until the walk comes back to where it began.
type ContinuationScan struct{}

func (ContinuationScan) NextMove(b *Board, t Tile, last Move) (Move, error) {
	start := clampAnchor(b, last.Anchor)
	at := start
	for _, rot := range Rotations {
		fp := footprint(Rotate(t, rot))
		for {
			if b.fits(fp, at) {
				return Move{Anchor: at, Rotation: rot}, nil
			}
			at = step(b, at, Forward)
			if at == start {
				break
			}
		}
	}
	return Move{}, ErrNoLegalMove
}

// clampAnchor pulls an anchor from outside b's anchor range onto its edge so
// a wrapped walk can return to it.
func clampAnchor(b *Board, at Anchor) Anchor {
	at.Row = min(max(at.Row, MinAnchor), b.MaxRow())
	at.Col = min(max(at.Col, MinAnchor), b.MaxCol())
	return at
}

// Sweep is the Type-2 strategy. Its cursor survives between turns: a search
// starts where the previous one succeeded and stays on the anchor it finds.
type Sweep struct {
	dir    Direction
	cursor Move
}

// NewSweep returns a sweep whose cursor starts on the first anchor of b in
// direction dir: the minimum corner going forward, the maximum going backward.
func NewSweep(dir Direction, b *Board) *Sweep {
	s := &Sweep{dir: dir}
	if dir == Backward {
		s.cursor.Anchor = Anchor{Row: b.MaxRow(), Col: b.MaxCol()}
	} else {
		s.cursor.Anchor = Anchor{Row: MinAnchor, Col: MinAnchor}
	}
	return s
}

// Cursor returns the sweep's current position.
func (s *Sweep) Cursor() Move { return s.cursor }

func (s *Sweep) NextMove(b *Board, t Tile, _ Move) (Move, error) {
	var fps [len(Rotations)][]offset
	for i, rot := range Rotations {
		fps[i] = footprint(Rotate(t, rot))
	}
	start := s.cursor.Anchor
	for {
		for i, rot := range Rotations {
			if b.fits(fps[i], s.cursor.Anchor) {
				s.cursor.Rotation = rot
				return s.cursor, nil
			}
		}
		s.cursor.Anchor = step(b, s.cursor.Anchor, s.dir)
		if s.cursor.Anchor == start {
			return Move{}, ErrNoLegalMove
		}
	}
}
