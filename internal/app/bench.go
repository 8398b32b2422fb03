package app

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jaminalder/fitz/internal/domain"
	"github.com/zeromicro/go-zero/core/logx"
)

// BenchOptions configures a batch of simulated matches.
type BenchOptions struct {
	Games   int
	P1, P2  domain.PlayerKind
	MinSize int
	MaxSize int
	// Seed drives the board sizes; zero picks one from the clock.
	Seed int64
}

// BenchResult summarises a batch of simulated matches.
type BenchResult struct {
	Games     int           `json:"games"`
	Players   [2]string     `json:"players"`
	Wins      [2]int        `json:"wins"`
	MeanMoves float64       `json:"meanMoves"`
	Seed      int64         `json:"seed"`
	Elapsed   time.Duration `json:"elapsed"`
}

func (r BenchResult) String() string {
	str, _ := sonic.MarshalString(r)
	return str
}

// Bench plays opts.Games matches on boards with random sides in
// [MinSize, MaxSize], drawing progress on progress.
func Bench(svc *Service, opts BenchOptions, progress io.Writer) (BenchResult, error) {
	if opts.Games < 1 || opts.MinSize < domain.MinBoardSize || opts.MaxSize < opts.MinSize {
		return BenchResult{}, fmt.Errorf("bench: %d games on sizes %d..%d", opts.Games, opts.MinSize, opts.MaxSize)
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(opts.Seed))
	res := BenchResult{
		Games:   opts.Games,
		Players: [2]string{opts.P1.String(), opts.P2.String()},
		Seed:    opts.Seed,
	}

	b := newBar(opts.Games, "simulating", progress)
	defer b.Close()

	start := time.Now()
	moves := 0
	span := opts.MaxSize - opts.MinSize + 1
	for i := 0; i < opts.Games; i++ {
		h, w := opts.MinSize+rng.Intn(span), opts.MinSize+rng.Intn(span)
		st, err := svc.Simulate(opts.P1, opts.P2, h, w)
		if err != nil {
			return res, err
		}
		if st.Winner == domain.Player2.String() {
			res.Wins[1]++
		} else {
			res.Wins[0]++
		}
		moves += st.Moves
		b.Add(1)
	}
	res.Elapsed = time.Since(start)
	res.MeanMoves = float64(moves) / float64(opts.Games)
	logx.Infow("bench finished", logx.Field("result", res.String()))
	return res, nil
}
