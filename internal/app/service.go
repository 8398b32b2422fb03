package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jaminalder/fitz/internal/domain"
	"github.com/zeromicro/go-zero/core/logx"
)

// Errors exposed by the service layer.
var (
	ErrNotFound  = errors.New("match not found")
	ErrHumanSeat = errors.New("simulated matches need automatic players")
)

// MatchState is the published view of one match.
type MatchState struct {
	ID       string            `json:"id"`
	P1       domain.PlayerKind `json:"-"`
	P2       domain.PlayerKind `json:"-"`
	Players  [2]string         `json:"players"`
	Snapshot domain.Snapshot   `json:"snapshot"`
	Moves    int               `json:"moves"`
	Last     domain.Move       `json:"-"`
	LastMove string            `json:"lastMove,omitempty"`
	Over     bool              `json:"over"`
	Winner   string            `json:"winner,omitempty"`
	Created  time.Time         `json:"created"`
	Updated  time.Time         `json:"updated"`
}

// Turn returns the player to move.
func (m MatchState) Turn() domain.Cell {
	if m.Snapshot.Turn == 1 {
		return domain.Player2
	}
	return domain.Player1
}

type subscriber struct {
	ch        chan []byte
	closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service tracks matches and fans their updates out to subscribers.
type Service struct {
	mu      sync.Mutex
	tiles   *domain.TileSet
	matches map[string]*MatchState
	subs    map[string]map[*subscriber]struct{}
	render  func(MatchState) []byte
}

// NewService creates a service whose simulated matches use tiles.
func NewService(tiles *domain.TileSet) *Service { return NewServiceWithRenderer(tiles, nil) }

// NewServiceWithRenderer allows injecting a renderer for broadcast payloads.
func NewServiceWithRenderer(tiles *domain.TileSet, renderer func(MatchState) []byte) *Service {
	s := &Service{
		tiles:   tiles,
		matches: make(map[string]*MatchState),
		subs:    make(map[string]map[*subscriber]struct{}),
	}
	s.SetRenderer(renderer)
	return s
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(MatchState) []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if renderer == nil {
		s.render = func(MatchState) []byte { return nil }
		return
	}
	s.render = renderer
}

// Tiles returns the tile set simulated matches are played with.
func (s *Service) Tiles() *domain.TileSet { return s.tiles }

// Track registers g as a new match and returns its state. The caller keeps
// ownership of g and reports progress through Update.
func (s *Service) Track(g *domain.Game) MatchState {
	now := time.Now()
	st := stateOf(g)
	st.ID = uuid.NewString()
	st.Created, st.Updated = now, now

	s.mu.Lock()
	s.matches[st.ID] = &st
	s.mu.Unlock()

	logx.Infow("match tracked",
		logx.Field("id", st.ID),
		logx.Field("players", st.Players),
		logx.Field("height", st.Snapshot.Height),
		logx.Field("width", st.Snapshot.Width),
	)
	return st
}

// Update refreshes the state of match id from g and broadcasts it.
func (s *Service) Update(id string, g *domain.Game) (MatchState, error) {
	var toDrop []*subscriber

	s.mu.Lock()
	cur, ok := s.matches[id]
	if !ok {
		s.mu.Unlock()
		return MatchState{}, ErrNotFound
	}
	st := stateOf(g)
	st.ID, st.Created, st.Updated = id, cur.Created, time.Now()
	*cur = st
	subs := s.copySubsLocked(id)
	var payload []byte
	if len(subs) > 0 {
		payload = s.render(st)
	}
	s.mu.Unlock()

	// Fan-out; drop slow subscribers by closing and marking for deletion
	for sub := range subs {
		select {
		case sub.ch <- payload:
		default:
			sub.close()
			toDrop = append(toDrop, sub)
		}
	}
	if len(toDrop) > 0 {
		s.mu.Lock()
		for _, sub := range toDrop {
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
		}
		s.mu.Unlock()
		logx.Infow("dropped slow subscribers", logx.Field("id", id), logx.Field("count", len(toDrop)))
	}
	return st, nil
}

// Get returns a copy of the match state if present.
func (s *Service) Get(id string) (*MatchState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.matches[id]
	if !ok {
		return nil, false
	}
	cp := *st
	return &cp, true
}

// List returns every match, newest first.
func (s *Service) List() []MatchState {
	s.mu.Lock()
	out := make([]MatchState, 0, len(s.matches))
	for _, st := range s.matches {
		out = append(out, *st)
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Created.Equal(out[j].Created) {
			return out[i].ID < out[j].ID
		}
		return out[i].Created.After(out[j].Created)
	})
	return out
}

// Subscribe registers a subscriber for match id. The channel closes when ctx
// ends, when unsubscribe is called, or when the subscriber falls behind.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.matches[id]; !ok {
		return nil, nil, ErrNotFound
	}
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	sub := &subscriber{ch: make(chan []byte, 1)}
	set[sub] = struct{}{}

	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			s.mu.Lock()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
			s.mu.Unlock()
			sub.close()
		})
	}
	go func() {
		<-ctx.Done()
		unsub()
	}()
	return sub.ch, unsub, nil
}

// Simulate plays a fresh height×width match between two automatic players
// to the end, publishing every move.
func (s *Service) Simulate(p1, p2 domain.PlayerKind, height, width int) (MatchState, error) {
	if !p1.Automatic() || !p2.Automatic() {
		return MatchState{}, fmt.Errorf("%w: %v %v", ErrHumanSeat, p1, p2)
	}
	g, err := domain.New(s.tiles, p1, p2, height, width)
	if err != nil {
		return MatchState{}, err
	}
	st := s.Track(g)
	for !g.Over() {
		if _, err := g.Play(nil); err != nil && !errors.Is(err, domain.ErrNoLegalMove) {
			return st, err
		}
		if st, err = s.Update(st.ID, g); err != nil {
			return st, err
		}
	}
	return s.finish(st.ID, g)
}

// finish publishes the final state of a match, including the game-over
// verdict reached after the last move.
func (s *Service) finish(id string, g *domain.Game) (MatchState, error) {
	st, err := s.Update(id, g)
	if err != nil {
		return st, err
	}
	logx.Infow("match finished",
		logx.Field("id", id),
		logx.Field("winner", st.Winner),
		logx.Field("moves", st.Moves),
	)
	return st, nil
}

func stateOf(g *domain.Game) MatchState {
	st := MatchState{
		P1:       g.Kind(domain.Player1),
		P2:       g.Kind(domain.Player2),
		Snapshot: g.Snapshot(),
		Moves:    g.Moves(),
		Last:     g.LastMove(),
	}
	st.Players = [2]string{st.P1.String(), st.P2.String()}
	if st.Moves > 0 {
		st.LastMove = st.Last.String()
	}
	if w, over := g.Winner(); over {
		st.Over = true
		st.Winner = w.String()
	}
	return st
}

func (s *Service) copySubsLocked(id string) map[*subscriber]struct{} {
	out := make(map[*subscriber]struct{})
	if set, ok := s.subs[id]; ok {
		for k := range set {
			out[k] = struct{}{}
		}
	}
	return out
}
