package domain

import (
	"errors"
	"fmt"
)

// Errors returned by domain operations.
var (
	ErrNoLegalMove       = errors.New("no legal move")
	ErrIllegalMove       = errors.New("illegal move")
	ErrGameOver          = errors.New("game over")
	ErrNoMoveSource      = errors.New("no move source for human seat")
	ErrInputExhausted    = errors.New("end of input")
	ErrCorruptState      = errors.New("corrupt game state")
	ErrInvalidTileData   = errors.New("invalid tile data")
	ErrInvalidPlayerKind = errors.New("invalid player type")
	ErrInvalidDimensions = errors.New("invalid dimensions")
)

// MoveSource supplies moves for human seats. It should only return moves
// that pass IsLegal for the game's current tile; the game checks anyway.
type MoveSource interface {
	NextMove(g *Game) (Move, error)
}

// MoveSourceFunc adapts a function to MoveSource.
type MoveSourceFunc func(g *Game) (Move, error)

func (f MoveSourceFunc) NextMove(g *Game) (Move, error) { return f(g) }

// Turn records one applied move.
type Turn struct {
	Player Cell
	Kind   PlayerKind
	Move   Move
	Tile   int
}

// Game holds the state of one match.
type Game struct {
	board  *Board
	tiles  *TileSet
	index  int
	turn   Cell
	kinds  [2]PlayerKind
	auto   [2]Strategy
	last   Move
	moves  int
	winner Cell
	over   bool
	// checked is set once the game-over scan has run for the current board
	// and tile; any placement clears it.
	checked bool
}

// New returns a game on an empty height×width board with Player1 to move
// and the first tile up.
func New(tiles *TileSet, p1, p2 PlayerKind, height, width int) (*Game, error) {
	b, err := NewBoard(height, width)
	if err != nil {
		return nil, err
	}
	return newGame(tiles, p1, p2, b, 0, Player1)
}

// Restore rebuilds a game from a snapshot. Any inconsistency between the
// snapshot and tiles is reported as ErrCorruptState.
func Restore(tiles *TileSet, p1, p2 PlayerKind, s Snapshot) (*Game, error) {
	if s.TileIndex < 0 || s.TileIndex >= tiles.Len() {
		return nil, fmt.Errorf("%w: tile index %d out of range [0,%d)", ErrCorruptState, s.TileIndex, tiles.Len())
	}
	var turn Cell
	switch s.Turn {
	case 0:
		turn = Player1
	case 1:
		turn = Player2
	default:
		return nil, fmt.Errorf("%w: turn %d", ErrCorruptState, s.Turn)
	}
	b, err := ParseBoard(s.Height, s.Width, s.Rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return newGame(tiles, p1, p2, b, s.TileIndex, turn)
}

func newGame(tiles *TileSet, p1, p2 PlayerKind, b *Board, index int, turn Cell) (*Game, error) {
	if tiles == nil || tiles.Len() == 0 {
		return nil, fmt.Errorf("%w: no tiles", ErrInvalidTileData)
	}
	g := &Game{
		board: b,
		tiles: tiles,
		index: index,
		turn:  turn,
		kinds: [2]PlayerKind{p1, p2},
		last:  Move{Anchor: Anchor{Row: MinAnchor, Col: MinAnchor}},
	}
	for i, seat := range [2]Cell{Player1, Player2} {
		kind := g.kinds[i]
		if kind == Human {
			continue
		}
		s, err := NewStrategy(kind, seat, b)
		if err != nil {
			return nil, err
		}
		g.auto[i] = s
	}
	return g, nil
}

func seatIndex(p Cell) int {
	if p == Player2 {
		return 1
	}
	return 0
}

// Board returns the game board. Callers must treat it as read-only.
func (g *Game) Board() *Board { return g.board }

// Tiles returns the tile set in play.
func (g *Game) Tiles() *TileSet { return g.tiles }

// TileIndex returns the index of the tile to be placed next.
func (g *Game) TileIndex() int { return g.index }

// Tile returns the tile to be placed next.
func (g *Game) Tile() Tile { return g.tiles.At(g.index) }

// Turn returns the player to move.
func (g *Game) Turn() Cell { return g.turn }

// Kind returns how seat p is played.
func (g *Game) Kind(p Cell) PlayerKind { return g.kinds[seatIndex(p)] }

// Strategy returns the automatic strategy of seat p, or nil for a human seat.
func (g *Game) Strategy(p Cell) Strategy { return g.auto[seatIndex(p)] }

// LastMove returns the most recently applied move. Before any move it is the
// minimum anchor with no rotation.
func (g *Game) LastMove() Move { return g.last }

// Moves returns the number of moves applied in this game.
func (g *Game) Moves() int { return g.moves }

// Over reports whether the game has ended. The check runs when the current
// tile has not yet been tested against the current board: the game is over
// when the tile fits nowhere, and the player not to move wins.
func (g *Game) Over() bool {
	if g.over || g.checked {
		return g.over
	}
	g.checked = true
	if !g.board.HasPlacement(g.Tile()) {
		g.finish(g.turn.Opponent())
	}
	return g.over
}

// Winner returns the winning player once the game is over.
func (g *Game) Winner() (Cell, bool) {
	return g.winner, g.over
}

func (g *Game) finish(winner Cell) {
	g.over = true
	g.winner = winner
}

// Play runs one turn for the player to move. Human seats take their move
// from src; automatic seats use their strategy. The game-over check runs
// first, so ErrGameOver means the game ended before this turn.
func (g *Game) Play(src MoveSource) (Turn, error) {
	if g.Over() {
		return Turn{}, ErrGameOver
	}
	seat := seatIndex(g.turn)
	kind := g.kinds[seat]
	tile := g.Tile()

	var m Move
	if kind == Human {
		if src == nil {
			return Turn{}, ErrNoMoveSource
		}
		var err error
		if m, err = src.NextMove(g); err != nil {
			return Turn{}, err
		}
		if !m.Rotation.Valid() || !g.board.IsLegal(tile, m) {
			return Turn{}, fmt.Errorf("%w: %v", ErrIllegalMove, m)
		}
	} else {
		var err error
		m, err = g.auto[seat].NextMove(g.board, tile, g.last)
		if errors.Is(err, ErrNoLegalMove) {
			g.finish(g.turn.Opponent())
			return Turn{}, err
		}
		if err != nil {
			return Turn{}, err
		}
	}

	t := Turn{Player: g.turn, Kind: kind, Move: m, Tile: g.index}
	g.board.Place(tile, m, g.turn)
	g.last = m
	g.moves++
	g.index = g.tiles.Next(g.index)
	g.turn = g.turn.Opponent()
	g.checked = false
	return t, nil
}

// Snapshot captures the persisted fields of the game.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		TileIndex: g.index,
		Turn:      seatIndex(g.turn),
		Height:    g.board.Height(),
		Width:     g.board.Width(),
		Rows:      g.board.Rows(),
	}
}

// Snapshot is everything needed to resume a game: the next tile, whose turn
// it is (0 for Player1, 1 for Player2), and the board.
type Snapshot struct {
	TileIndex int      `json:"tileIndex"`
	Turn      int      `json:"turn"`
	Height    int      `json:"height"`
	Width     int      `json:"width"`
	Rows      []string `json:"rows"`
}
