package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jaminalder/fitz/internal/domain"
)

// minimal renderer for tests: encode moves count as bytes
func testRenderer(st MatchState) []byte { return []byte(fmt.Sprintf("moves=%d", st.Moves)) }

func testTiles(t *testing.T) *domain.TileSet {
	t.Helper()
	centre, err := domain.ParseTile([]string{",,,,,", ",,,,,", ",,!,,", ",,,,,", ",,,,,"})
	if err != nil {
		t.Fatalf("ParseTile: %v", err)
	}
	bar, err := domain.ParseTile([]string{",,,,,", ",,!,,", ",,!,,", ",,,,,", ",,,,,"})
	if err != nil {
		t.Fatalf("ParseTile: %v", err)
	}
	set, err := domain.NewTileSet([]domain.Tile{centre, bar})
	if err != nil {
		t.Fatalf("NewTileSet: %v", err)
	}
	return set
}

func newTestGame(t *testing.T, s *Service, p1, p2 domain.PlayerKind, height, width int) *domain.Game {
	t.Helper()
	g, err := domain.New(s.Tiles(), p1, p2, height, width)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestTrackAndGet(t *testing.T) {
	s := NewServiceWithRenderer(testTiles(t), testRenderer)
	g := newTestGame(t, s, domain.Human, domain.Auto2, 3, 4)
	st := s.Track(g)
	if st.ID == "" {
		t.Fatalf("expected non-empty match ID")
	}
	if st.Turn() != domain.Player1 || st.Moves != 0 || st.Over {
		t.Fatalf("unexpected initial state %+v", st)
	}
	if st.Players != [2]string{"human", "type-2"} {
		t.Fatalf("players = %v", st.Players)
	}
	if st.Created.IsZero() || st.Updated.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}
	got, ok := s.Get(st.ID)
	if !ok || got.ID != st.ID || got.Snapshot.Width != 4 {
		t.Fatalf("Get should find tracked match")
	}
	if _, ok := s.Get("missing"); ok {
		t.Fatalf("Get should not find unknown match")
	}
}

func TestUpdateUnknownMatch(t *testing.T) {
	s := NewService(testTiles(t))
	g := newTestGame(t, s, domain.Auto1, domain.Auto1, 3, 3)
	if _, err := s.Update("missing", g); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, _, err := s.Subscribe(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSimulateRejectsHumanSeats(t *testing.T) {
	s := NewService(testTiles(t))
	for _, kinds := range [][2]domain.PlayerKind{{domain.Human, domain.Auto1}, {domain.Auto2, domain.Human}} {
		if _, err := s.Simulate(kinds[0], kinds[1], 4, 4); !errors.Is(err, ErrHumanSeat) {
			t.Fatalf("%v: expected ErrHumanSeat, got %v", kinds, err)
		}
	}
	if len(s.List()) != 0 {
		t.Fatalf("rejected simulations should not be tracked")
	}
}

func TestSimulatePlaysToTheEnd(t *testing.T) {
	s := NewService(testTiles(t))
	st, err := s.Simulate(domain.Auto1, domain.Auto2, 4, 5)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if !st.Over || st.Winner == "" || st.Moves == 0 {
		t.Fatalf("expected finished match, got %+v", st)
	}
	if st.Winner != st.Turn().Opponent().String() {
		t.Fatalf("winner %s should be the player not to move (%v)", st.Winner, st.Turn())
	}
	got, _ := s.Get(st.ID)
	if !got.Over || got.Moves != st.Moves {
		t.Fatalf("stored state lags behind: %+v", got)
	}
	if _, err := s.Simulate(domain.Auto1, domain.Auto1, 0, 5); !errors.Is(err, domain.ErrInvalidDimensions) {
		t.Fatalf("expected ErrInvalidDimensions, got %v", err)
	}
}

func TestUpdateRendersOnlyForSubscribers(t *testing.T) {
	renders := 0
	s := NewServiceWithRenderer(testTiles(t), func(st MatchState) []byte {
		renders++
		return testRenderer(st)
	})
	if _, err := s.Simulate(domain.Auto2, domain.Auto2, 6, 6); err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if renders != 0 {
		t.Fatalf("rendered %d payloads with nobody listening", renders)
	}

	g := newTestGame(t, s, domain.Auto1, domain.Auto1, 3, 3)
	st := s.Track(g)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, _, err := s.Subscribe(ctx, st.ID)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if _, err := s.Update(st.ID, g); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if renders != 1 {
		t.Fatalf("expected one render for one subscriber, got %d", renders)
	}
	if b := <-ch; string(b) != "moves=0" {
		t.Fatalf("payload = %q", b)
	}
}

func TestListNewestFirst(t *testing.T) {
	s := NewService(testTiles(t))
	first := s.Track(newTestGame(t, s, domain.Auto1, domain.Auto1, 2, 2))
	time.Sleep(2 * time.Millisecond)
	second := s.Track(newTestGame(t, s, domain.Auto1, domain.Auto1, 2, 2))
	list := s.List()
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("unexpected order: %+v", list)
	}
}

func TestSubscribeAndBroadcast(t *testing.T) {
	s := NewServiceWithRenderer(testTiles(t), testRenderer)
	g := newTestGame(t, s, domain.Auto1, domain.Auto2, 3, 3)
	st := s.Track(g)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*2)
	defer cancel()
	ch, unsub, err := s.Subscribe(ctx, st.ID)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer unsub()

	if _, err := g.Play(nil); err != nil {
		t.Fatalf("play failed: %v", err)
	}
	if _, err := s.Update(st.ID, g); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	select {
	case b, ok := <-ch:
		if !ok {
			t.Fatalf("channel closed unexpectedly")
		}
		if string(b) != "moves=1" {
			t.Fatalf("unexpected broadcast payload: %q", string(b))
		}
	case <-ctx.Done():
		t.Fatalf("timed out waiting for broadcast")
	}
}

func TestDropSlowSubscriber(t *testing.T) {
	s := NewServiceWithRenderer(testTiles(t), testRenderer)
	g := newTestGame(t, s, domain.Auto1, domain.Auto2, 4, 4)
	st := s.Track(g)

	// Slow subscriber: never read until the end
	slowCh, _, _ := s.Subscribe(context.Background(), st.ID)

	ctxFast, cancelFast := context.WithTimeout(context.Background(), time.Second*2)
	defer cancelFast()
	fastCh, unsubFast, _ := s.Subscribe(ctxFast, st.ID)
	defer unsubFast()

	for i := 1; i <= 2; i++ {
		if _, err := g.Play(nil); err != nil {
			t.Fatalf("play %d: %v", i, err)
		}
		if _, err := s.Update(st.ID, g); err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
		select {
		case b := <-fastCh:
			if want := fmt.Sprintf("moves=%d", i); string(b) != want {
				t.Fatalf("fast got %q, want %q", b, want)
			}
		case <-ctxFast.Done():
			t.Fatalf("fast subscriber did not receive update %d in time", i)
		}
	}

	// The slow subscriber kept the first payload and was then closed.
	if b, ok := <-slowCh; !ok || string(b) != "moves=1" {
		t.Fatalf("slow subscriber first read = %q, %v", b, ok)
	}
	if _, ok := <-slowCh; ok {
		t.Fatalf("slow subscriber should have been dropped")
	}
}

func TestUnsubscribeOnContextDone(t *testing.T) {
	s := NewService(testTiles(t))
	st := s.Track(newTestGame(t, s, domain.Auto1, domain.Auto1, 2, 2))
	ctx, cancel := context.WithCancel(context.Background())
	ch, _, err := s.Subscribe(ctx, st.ID)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	cancel()
	select {
	case _, ok := <-ch:
		if ok {
			t.Fatalf("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatalf("channel not closed after cancel")
	}
}
