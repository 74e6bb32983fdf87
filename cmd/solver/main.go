// Command solver trains a CFR blueprint strategy for a fixed table size and
// buy-in, then persists one strategy file per player.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/cfr"
	"github.com/lox/holdem-engine/internal/game"
)

type CLI struct {
	Players    int    `short:"p" help:"Number of players at the table" default:"2"`
	BuyIn      int    `help:"Starting chip stack per player" default:"10"`
	Iterations int    `short:"i" help:"CFR training iterations" default:"1000"`
	ConfigFile string `help:"HCL file with blinds/antes configuration"`
	OutDir     string `help:"Directory to write strategy-P<n>.txt files to" default:"strategies"`
	LogLevel   string `help:"Set the log level" enum:"debug,info,warn,error" default:"info"`
}

func main() {
	var cli CLI
	kong.Parse(&cli)

	level, err := log.ParseLevel(cli.LogLevel)
	if err != nil {
		log.Fatal("invalid log level", "error", err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})

	cfg := game.DefaultNoLimitConfig()
	if cli.ConfigFile != "" {
		cfg, err = game.LoadGameConfig(cli.ConfigFile)
		if err != nil {
			log.Fatal("failed to load config", "error", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", "error", err)
	}

	s := cfr.NewSolver(cfg, cli.Players, cli.BuyIn, 0)
	logger.Info("training", "players", cli.Players, "buy_in", cli.BuyIn, "iterations", cli.Iterations)

	if err := s.Run(cli.Iterations); err != nil {
		log.Fatal("training failed", "error", err)
	}
	logger.Info("training complete", "infosets", s.Table().Size())

	if err := os.MkdirAll(cli.OutDir, 0o755); err != nil {
		log.Fatal("failed to create output directory", "error", err)
	}

	for player := 0; player < cli.Players; player++ {
		strat := cfr.ExtractStrategy(s.Table(), player)
		path := fmt.Sprintf("%s/strategy-P%d.txt", cli.OutDir, player)
		f, err := os.Create(path)
		if err != nil {
			log.Fatal("failed to create strategy file", "path", path, "error", err)
		}
		err = strat.Save(f)
		f.Close()
		if err != nil {
			log.Fatal("failed to write strategy file", "path", path, "error", err)
		}
		logger.Info("wrote strategy", "path", path)
	}
}
