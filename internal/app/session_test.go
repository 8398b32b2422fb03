package app

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jaminalder/fitz/internal/console"
	"github.com/jaminalder/fitz/internal/domain"
)

func centreOnly(t *testing.T) *domain.TileSet {
	t.Helper()
	tile, err := domain.ParseTile([]string{",,,,,", ",,,,,", ",,!,,", ",,,,,", ",,,,,"})
	if err != nil {
		t.Fatalf("ParseTile: %v", err)
	}
	set, err := domain.NewTileSet([]domain.Tile{tile})
	if err != nil {
		t.Fatalf("NewTileSet: %v", err)
	}
	return set
}

func newSession(t *testing.T, p1, p2 domain.PlayerKind, input string, svc *Service) (*Session, *bytes.Buffer) {
	t.Helper()
	g, err := domain.New(centreOnly(t), p1, p2, 1, 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var out, errOut bytes.Buffer
	p := console.NewPrinter(&out, false)
	return &Session{
		Game:    g,
		Out:     p,
		Human:   console.NewHumanSource(strings.NewReader(input), p, &errOut),
		Service: svc,
	}, &out
}

func TestSessionTranscript(t *testing.T) {
	s, out := newSession(t, domain.Human, domain.Auto2, "0 0 0\n", nil)
	winner, err := s.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if winner != domain.Player2 {
		t.Fatalf("winner = %v", winner)
	}
	want := "..\n" +
		",,,,,\n,,,,,\n,,!,,\n,,,,,\n,,,,,\n" +
		"Player *] " +
		"*.\n" +
		"Player # => 0 1 rotated 0\n" +
		"*#\n" +
		"Player # wins\n"
	if out.String() != want {
		t.Fatalf("transcript mismatch:\n got %q\nwant %q", out.String(), want)
	}
}

func TestSessionEndOfInput(t *testing.T) {
	s, out := newSession(t, domain.Human, domain.Human, "", nil)
	if _, err := s.Run(); !errors.Is(err, domain.ErrInputExhausted) {
		t.Fatalf("expected ErrInputExhausted, got %v", err)
	}
	if !strings.HasSuffix(out.String(), "Player *] ") {
		t.Fatalf("expected a dangling prompt, got %q", out.String())
	}
}

func TestSessionPublishesToService(t *testing.T) {
	svc := NewService(centreOnly(t))
	s, _ := newSession(t, domain.Auto1, domain.Auto1, "", svc)
	if _, err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	st, ok := svc.Get(s.ID())
	if !ok {
		t.Fatalf("session not tracked")
	}
	if !st.Over || st.Winner != domain.Player2.String() || st.Moves != 2 {
		t.Fatalf("unexpected final state %+v", st)
	}
	if st.Snapshot.Rows[0] != "*#" {
		t.Fatalf("board = %q", st.Snapshot.Rows)
	}
}
