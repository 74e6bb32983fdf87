// Command holdem plays a batch of hands between bot players at a single
// table and reports the resulting chip stacks, optionally dumping each hand
// to a PHH file.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/phh"
)

type CLI struct {
	Players        int    `short:"p" help:"Number of players at the table" default:"6"`
	Hands          int    `short:"n" help:"Number of hands to play" default:"100"`
	BuyIn          int    `help:"Starting chip stack per player" default:"200"`
	ConfigFile     string `help:"HCL file with blinds/antes configuration"`
	LogLevel       string `help:"Set the log level" enum:"debug,info,warn,error" default:"info"`
	HandHistoryDir string `help:"Directory to write PHH hand histories to, empty to disable"`
	Seed           *int64 `help:"Seed for the random number generator"`
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

	if cli.Players < 2 {
		log.Fatal("players must be at least 2")
	}

	seed := time.Now().UnixNano()
	if cli.Seed != nil {
		seed = *cli.Seed
	}
	rng := rand.New(rand.NewSource(seed))
	logger.Info("starting session", "players", cli.Players, "hands", cli.Hands, "seed", seed)

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

	players := make([]bot.Player, cli.Players)
	for i := range players {
		players[i] = bot.Raiser(cfg.BigBlind)
	}

	if cli.HandHistoryDir != "" {
		if err := os.MkdirAll(cli.HandHistoryDir, 0o755); err != nil {
			log.Fatal("failed to create hand history directory", "error", err)
		}
	}

	stacks := make([]int, cli.Players)
	for i := range stacks {
		stacks[i] = cli.BuyIn
	}
	button := 0

	for hand := 0; hand < cli.Hands; hand++ {
		g := game.NewGame(cfg, stacks, button, rng)
		g.HandNumber = hand
		g.InitHand()
		if g.State == game.Over {
			logger.Info("session ended early: fewer than two players hold chips", "hand", hand)
			break
		}

		for g.State == game.Running {
			mv := players[g.CurrentPlayerID].Act(g, g.CurrentPlayerID)
			if err := g.AcceptMove(mv); err != nil {
				logger.Warn("bot produced invalid move, folding instead", "player", g.CurrentPlayerID, "error", err)
				if err := g.AcceptMove(game.FoldMove()); err != nil {
					log.Fatal("forced fold rejected", "error", err)
				}
			}
		}

		for i, p := range g.Players {
			stacks[i] = p.Chips
		}

		if cli.HandHistoryDir != "" {
			writeHandHistory(logger, cli.HandHistoryDir, hand, g)
		}

		logger.Info("hand complete", "hand", hand, "stacks", fmt.Sprint(stacks))
		button = (button + 1) % cli.Players
	}

	logger.Info("session complete", "final_stacks", fmt.Sprint(stacks))
}

func writeHandHistory(logger *log.Logger, dir string, hand int, g *game.Game) {
	rec := g.History.Current()
	hh, err := phh.DumpHand(g, rec, fmt.Sprintf("hand-%05d", hand))
	if err != nil {
		logger.Warn("failed to build hand history", "hand", hand, "error", err)
		return
	}

	path := filepath.Join(dir, fmt.Sprintf("hand-%05d.phh", hand))
	f, err := os.Create(path)
	if err != nil {
		logger.Warn("failed to create hand history file", "path", path, "error", err)
		return
	}
	defer f.Close()

	if err := phh.Encode(f, hh); err != nil {
		logger.Warn("failed to encode hand history", "path", path, "error", err)
	}
}
