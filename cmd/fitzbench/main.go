// Command fitzbench plays many matches between automatic players and prints
// a JSON summary.
//
//	fitzbench [-f config.yaml] [-n games] tilefile
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jaminalder/fitz/internal/app"
	"github.com/jaminalder/fitz/internal/config"
	"github.com/jaminalder/fitz/internal/domain"
	"github.com/jaminalder/fitz/internal/tilefile"
	"github.com/zeromicro/go-zero/core/logx"
)

var (
	configFile = flag.String("f", "", "the config file")
	games      = flag.Int("n", 0, "number of games, overrides the config")
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: fitzbench [-f config.yaml] [-n games] tilefile")
		os.Exit(1)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg.SetupLogging(logx.NewWriter(os.Stderr))
	defer logx.Close()

	tiles, err := tilefile.Load(flag.Arg(0))
	logx.Must(err)
	p1, err := domain.ParsePlayerKind(cfg.Bench.P1)
	logx.Must(err)
	p2, err := domain.ParsePlayerKind(cfg.Bench.P2)
	logx.Must(err)

	opts := app.BenchOptions{
		Games:   cfg.Bench.Games,
		P1:      p1,
		P2:      p2,
		MinSize: cfg.Bench.MinSize,
		MaxSize: cfg.Bench.MaxSize,
		Seed:    cfg.Bench.Seed,
	}
	if *games > 0 {
		opts.Games = *games
	}
	res, err := app.Bench(app.NewService(tiles), opts, os.Stderr)
	logx.Must(err)
	fmt.Println(res)
}
