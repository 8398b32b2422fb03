package app

import (
	"errors"

	"github.com/jaminalder/fitz/internal/console"
	"github.com/jaminalder/fitz/internal/domain"
	"github.com/zeromicro/go-zero/core/logx"
)

// Session runs one console game.
type Session struct {
	Game  *domain.Game
	Out   *console.Printer
	Human domain.MoveSource
	// Service, when set, receives every update so spectators can follow.
	Service *Service

	id string
}

// ID returns the match id the session publishes under, or "" when it has no
// service.
func (s *Session) ID() string { return s.id }

// Run plays until someone wins and returns the winner. Human seats read from
// s.Human; a fatal error such as domain.ErrInputExhausted ends the session.
func (s *Session) Run() (domain.Cell, error) {
	g := s.Game
	if s.Service != nil && s.id == "" {
		s.id = s.Service.Track(g).ID
	}
	for {
		s.Out.Board(g.Board())
		if g.Over() {
			winner, _ := g.Winner()
			s.Out.Winner(winner)
			s.publish()
			logx.Infow("game over", logx.Field("winner", winner.String()), logx.Field("moves", g.Moves()))
			return winner, nil
		}

		human := g.Kind(g.Turn()) == domain.Human
		if human {
			s.Out.Tile(g.Tile())
		}
		turn, err := g.Play(s.Human)
		if errors.Is(err, domain.ErrIllegalMove) || errors.Is(err, domain.ErrNoLegalMove) {
			continue
		}
		if err != nil {
			return domain.Empty, err
		}
		if !human {
			s.Out.Turn(turn)
		}
		logx.Infow("move applied",
			logx.Field("player", turn.Player.String()),
			logx.Field("kind", turn.Kind.String()),
			logx.Field("move", turn.Move.String()),
			logx.Field("tile", turn.Tile),
		)
		s.publish()
	}
}

func (s *Session) publish() {
	if s.Service == nil {
		return
	}
	if _, err := s.Service.Update(s.id, s.Game); err != nil {
		logx.Errorw("publish failed", logx.Field("id", s.id), logx.Field("error", err.Error()))
	}
}
