// Package config loads the optional YAML configuration shared by the fitz
// binaries.
package config

import (
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
)

type Config struct {
	Log logx.LogConf
	// Colour turns on ANSI colours in the console transcript.
	Colour bool `json:",default=false"`
	// MaxBoardSize caps the board dimensions accepted on the command line.
	MaxBoardSize int `json:",default=999,range=[1:999]"`
	Spectate     struct {
		// ListenOn, when set, makes a console game serve its board read-only.
		ListenOn string `json:",optional"`
	}
	Web   WebConf
	Bench BenchConf
}

type WebConf struct {
	ListenOn string `json:",default=:8080"`
}

type BenchConf struct {
	Games   int    `json:",default=100"`
	P1      string `json:",default=2,options=1|2"`
	P2      string `json:",default=2,options=1|2"`
	MinSize int    `json:",default=3"`
	MaxSize int    `json:",default=12"`
	Seed    int64  `json:",optional"`
}

// Load reads the YAML file at path, or returns the defaults when path is empty.
func Load(path string) (Config, error) {
	var c Config
	if path == "" {
		if err := conf.FillDefault(&c); err != nil {
			return c, err
		}
		// stdout belongs to the game transcript; without a file only
		// problems are logged.
		c.Log.Level = "error"
		c.Log.Encoding = "plain"
		return c, nil
	}
	err := conf.Load(path, &c)
	return c, err
}

// SetupLogging configures logx from c, sending every log line to w.
func (c Config) SetupLogging(w logx.Writer) {
	logx.MustSetup(c.Log)
	logx.DisableStat()
	logx.SetWriter(w)
}
