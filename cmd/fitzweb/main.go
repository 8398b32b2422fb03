// Command fitzweb serves simulated matches between automatic players.
//
//	fitzweb [-f config.yaml] tilefile
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/jaminalder/fitz/internal/app"
	"github.com/jaminalder/fitz/internal/config"
	"github.com/jaminalder/fitz/internal/tilefile"
	"github.com/jaminalder/fitz/internal/web"
	"github.com/zeromicro/go-zero/core/logx"
)

var configFile = flag.String("f", "", "the config file")

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: fitzweb [-f config.yaml] tilefile")
		os.Exit(1)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *configFile == "" {
		cfg.Log.Level = "info"
	}
	cfg.SetupLogging(logx.NewWriter(os.Stderr))
	defer logx.Close()

	tiles, err := tilefile.Load(flag.Arg(0))
	logx.Must(err)

	svc := app.NewService(tiles)
	logx.Infow("listening", logx.Field("addr", cfg.Web.ListenOn), logx.Field("tiles", tiles.Len()))
	logx.Must(http.ListenAndServe(cfg.Web.ListenOn, web.NewServer(svc, cfg.MaxBoardSize)))
}
