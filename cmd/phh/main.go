// Command holdem-phh works with PHH hand history files (spec §6): it can
// play one hand between reference bots and dump it to a .phh file, or load
// and replay an existing .phh file against the engine, failing if a recorded
// move is rejected or the hand does not finish, and printing the resulting
// chip stacks and pot winners. The file carries no final stacks, so the
// printed stacks are not compared against anything.
package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/phh"
)

var cli struct {
	Dump   DumpCmd   `cmd:"" help:"play one hand between reference bots and write it as PHH"`
	Replay ReplayCmd `cmd:"" help:"load a PHH file and replay it against the engine"`
}

type DumpCmd struct {
	Out        string `help:"path to write the .phh file" required:""`
	Players    int    `short:"p" help:"number of players at the table" default:"6"`
	BuyIn      int    `help:"starting chip stack per player" default:"200"`
	ConfigFile string `help:"HCL file with blinds/antes configuration"`
	Seed       int64  `help:"random seed" default:"0"`
}

func (cmd *DumpCmd) Run() error {
	cfg := game.DefaultNoLimitConfig()
	if cmd.ConfigFile != "" {
		var err error
		cfg, err = game.LoadGameConfig(cmd.ConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cmd.Players < 2 {
		return fmt.Errorf("players must be at least 2")
	}

	stacks := make([]int, cmd.Players)
	for i := range stacks {
		stacks[i] = cmd.BuyIn
	}
	players := make([]bot.Player, cmd.Players)
	for i := range players {
		players[i] = bot.Raiser(cfg.BigBlind)
	}

	g := game.NewGame(cfg, stacks, 0, rand.New(rand.NewSource(cmd.Seed)))
	g.InitHand()
	for g.State == game.Running {
		mv := players[g.CurrentPlayerID].Act(g, g.CurrentPlayerID)
		if err := g.AcceptMove(mv); err != nil {
			if err := g.AcceptMove(game.FoldMove()); err != nil {
				return fmt.Errorf("forced fold rejected: %w", err)
			}
		}
	}

	rec := g.History.Current()
	hh, err := phh.DumpHand(g, rec, "hand-00000")
	if err != nil {
		return fmt.Errorf("failed to build hand history: %w", err)
	}

	f, err := os.Create(cmd.Out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", cmd.Out, err)
	}
	defer f.Close()
	if err := phh.Encode(f, hh); err != nil {
		return fmt.Errorf("failed to encode hand history: %w", err)
	}

	stacksOut := make([]int, len(g.Players))
	for i, p := range g.Players {
		stacksOut[i] = p.Chips
	}
	fmt.Printf("wrote %s (%d players, final stacks %v)\n", cmd.Out, cmd.Players, stacksOut)
	return nil
}

type ReplayCmd struct {
	File string `arg:"" help:"path to a .phh hand history file" type:"existingfile"`
}

func (cmd *ReplayCmd) Run(logger *log.Logger) error {
	f, err := os.Open(cmd.File)
	if err != nil {
		return fmt.Errorf("failed to open hand history: %w", err)
	}
	defer f.Close()

	parsed, err := phh.Load(f)
	if err != nil {
		return fmt.Errorf("failed to parse hand history: %w", err)
	}
	if err := parsed.Config.Validate(); err != nil {
		return fmt.Errorf("parsed configuration is invalid: %w", err)
	}

	g := game.NewReplayGame(parsed.Config, parsed.StartingStacks, 0, parsed.HoleCards, parsed.Community)
	g.InitHand()
	if g.State != game.Running {
		return fmt.Errorf("replay game did not start (state %v)", g.State)
	}

	for _, a := range parsed.Actions {
		seat := g.SeatAtDealingIndex(a.Player)
		if seat != g.CurrentPlayerID {
			logger.Warn("recorded actor does not match replay's current actor",
				"recorded_dealing_index", a.Player, "expected_seat", seat, "actual_seat", g.CurrentPlayerID)
		}
		if err := g.AcceptMove(a.Move); err != nil {
			return fmt.Errorf("replay diverged: recorded move rejected for player %d: %w", g.CurrentPlayerID, err)
		}
		if g.State != game.Running {
			break
		}
	}
	if g.State != game.HandDone {
		return fmt.Errorf("replay did not reach a finished hand (state %v)", g.State)
	}

	fmt.Println("replay complete, final chip stacks by dealing-order seat:")
	for i, p := range g.Players {
		fmt.Printf("  p%d: %d\n", g.DealingIndexOf(i)+1, p.Chips)
	}

	rec := g.History.Current()
	for _, res := range rec.Results {
		fmt.Printf("pot %d -> winners %v\n", res.PotTotal, res.Winners)
	}
	return nil
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	ctx := kong.Parse(&cli,
		kong.Name("holdem-phh"),
		kong.Description("Dump or replay PHH hand history files"),
		kong.UsageOnError(),
		kong.Bind(logger),
	)
	if err := ctx.Run(); err != nil {
		logger.Fatal(err)
	}
}
