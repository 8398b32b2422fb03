// Command fitz plays the tile placement game on the console.
//
//	fitz [-f config.yaml] tilefile [p1type p2type [height width | savefile]]
package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/jaminalder/fitz/internal/app"
	"github.com/jaminalder/fitz/internal/cli"
	"github.com/jaminalder/fitz/internal/config"
	"github.com/jaminalder/fitz/internal/console"
	"github.com/jaminalder/fitz/internal/domain"
	"github.com/jaminalder/fitz/internal/save"
	"github.com/jaminalder/fitz/internal/tilefile"
	"github.com/jaminalder/fitz/internal/web"
	"github.com/zeromicro/go-zero/core/logx"
)

func main() {
	err := run(os.Args[1:])
	if status, msg := cli.ExitStatus(err); status != cli.StatusOK {
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(status)
	}
}

func run(args []string) error {
	opts, err := cli.Parse(args)
	if err != nil {
		return err
	}
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	cfg.SetupLogging(logx.NewWriter(os.Stderr))
	defer logx.Close()

	tiles, err := tilefile.Load(opts.TileFile)
	if err != nil {
		return err
	}
	out := console.NewPrinter(os.Stdout, cfg.Colour)
	if opts.Mode == cli.ShowTiles {
		out.TileSet(tiles)
		return nil
	}

	p1, p2, err := opts.PlayerKinds()
	if err != nil {
		return err
	}
	g, err := newGame(opts, cfg, tiles, p1, p2)
	if err != nil {
		return err
	}

	s := &app.Session{
		Game:  g,
		Out:   out,
		Human: console.NewHumanSource(os.Stdin, out, os.Stderr),
	}
	if addr := cfg.Spectate.ListenOn; addr != "" {
		s.Service = app.NewService(tiles)
		go spectate(addr, s.Service, cfg.MaxBoardSize)
	}
	_, err = s.Run()
	return err
}

func newGame(opts cli.Options, cfg config.Config, tiles *domain.TileSet, p1, p2 domain.PlayerKind) (*domain.Game, error) {
	if opts.Mode == cli.LoadGame {
		snap, err := save.ReadFile(opts.SaveFile)
		if err != nil {
			return nil, err
		}
		return domain.Restore(tiles, p1, p2, snap)
	}
	height, width, err := opts.Dimensions(cfg.MaxBoardSize)
	if err != nil {
		return nil, err
	}
	return domain.New(tiles, p1, p2, height, width)
}

func spectate(addr string, svc *app.Service, maxBoardSize int) {
	logx.Infow("spectator server listening", logx.Field("addr", addr))
	if err := http.ListenAndServe(addr, web.NewServer(svc, maxBoardSize)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logx.Errorw("spectator server stopped", logx.Field("error", err.Error()))
	}
}
