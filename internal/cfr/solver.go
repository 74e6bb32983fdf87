// Package cfr implements counterfactual regret minimization over the
// internal/game state machine: a full-traversal, chance-sampled tree walk
// that trains one Table of average strategies per info set (spec §4.5).
package cfr

import (
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-engine/internal/game"
)

// Solver walks the hold'em game tree and accumulates regrets into a Table
// (spec §4.5: "Setup: players count, game config. Holds an info-set table
// keyed by string").
type Solver struct {
	Config     *game.GameConfig
	NumPlayers int
	BuyIn      int
	Button     int

	table *Table
}

// NewSolver returns a solver for a symmetric table of numPlayers seats, each
// starting a trained hand with buyIn chips.
func NewSolver(cfg *game.GameConfig, numPlayers, buyIn, button int) *Solver {
	return &Solver{
		Config:     cfg,
		NumPlayers: numPlayers,
		BuyIn:      buyIn,
		Button:     button,
		table:      NewTable(),
	}
}

// Table exposes the trained info-set table.
func (s *Solver) Table() *Table { return s.table }

// Run trains for iterations rounds. Each round calls step_tree once per
// root player with a fresh deterministic deal; the per-iteration root calls
// are independent and run concurrently (spec §5: "may parallelize step_tree
// across root players").
func (s *Solver) Run(iterations int) error {
	for iter := 1; iter <= iterations; iter++ {
		seed := int64(iter)

		var grp errgroup.Group
		for p := 0; p < s.NumPlayers; p++ {
			p := p
			grp.Go(func() error {
				_, err := s.stepTree(seed, nil, p, 1, 1)
				return err
			})
		}
		if err := grp.Wait(); err != nil {
			return fmt.Errorf("cfr: iteration %d: %w", iter, err)
		}
	}
	return nil
}

// simulate replays path from a fresh hand seeded by seed, reproducing the
// exact same deal and intermediate states every time it's called with the
// same (seed, path) pair. This is what makes chance nodes deterministic
// without a separate chance-node code path in stepTree: dealing happens
// inside InitHand/AcceptMove as a side effect of replaying the path.
func (s *Solver) simulate(seed int64, path []game.Move) *game.Game {
	buyIns := make([]int, s.NumPlayers)
	for i := range buyIns {
		buyIns[i] = s.BuyIn
	}
	g := game.NewGame(s.Config, buyIns, s.Button, rand.New(rand.NewSource(seed)))
	g.InitHand()
	for _, mv := range path {
		if err := g.AcceptMove(mv); err != nil {
			panic(fmt.Sprintf("cfr: replaying a previously-legal move failed: %v", err))
		}
	}
	return g
}

// stepTree is the CFR tree walk (spec §4.5: "step_tree(h, player, p_self,
// p_others) -> expected_payoff_for_player"). Every acting player's legal
// moves are recursed into (not just target's), and chance nodes are folded
// into the deterministic replay rather than branched explicitly.
func (s *Solver) stepTree(seed int64, path []game.Move, target int, pSelf, pOthers float64) (float64, error) {
	g := s.simulate(seed, path)

	if g.State == game.HandDone {
		return float64(g.Players[target].Chips - s.BuyIn), nil
	}
	if g.State != game.Running {
		return 0, fmt.Errorf("hand in state %v mid-tree-walk", g.State)
	}

	current := g.CurrentPlayerID
	moves := g.GetMoves(current)
	if len(moves) == 0 {
		return 0, fmt.Errorf("no legal moves for player %d while Running", current)
	}

	key := InfoSetKey(g, current)
	entry := s.table.Get(key, moves)
	strategy := entry.Strategy()

	util := make([]float64, len(moves))
	nodeUtil := 0.0
	for i, mv := range moves {
		childPath := append(append([]game.Move(nil), path...), mv)

		var (
			u   float64
			err error
		)
		if current == target {
			u, err = s.stepTree(seed, childPath, target, pSelf*strategy[i], pOthers)
		} else {
			u, err = s.stepTree(seed, childPath, target, pSelf, pOthers*strategy[i])
		}
		if err != nil {
			return 0, err
		}
		util[i] = u
		nodeUtil += strategy[i] * u
	}

	if current == target {
		regrets := make([]float64, len(moves))
		for i := range moves {
			regrets[i] = (util[i] - nodeUtil) * pOthers
		}
		entry.Update(regrets, strategy, pSelf)
	}

	return nodeUtil, nil
}
