// Package bot provides the in-process Move API contract and a handful of
// reference players (spec §6: "Move API (bot-facing): a bot is a function
// from (Game, own_player_id) to (Action, optional amount)"), grounded on
// original_source/bots.py's Raiser/Checker/Folder/AllIn reference agents.
package bot

import (
	"math/rand"

	"github.com/lox/holdem-engine/internal/game"
)

// Player decides a move given the live game state and its own seat.
type Player interface {
	Act(g *game.Game, playerID int) game.Move
}

// PlayerFunc adapts a plain function to Player.
type PlayerFunc func(g *game.Game, playerID int) game.Move

// Act calls f.
func (f PlayerFunc) Act(g *game.Game, playerID int) game.Move { return f(g, playerID) }

// Folder always folds.
var Folder Player = PlayerFunc(func(g *game.Game, playerID int) game.Move {
	return game.FoldMove()
})

// Checker calls whatever is owed, checking when nothing is owed (the call
// amount is computed by the engine, so a Checker move is always CALL).
var Checker Player = PlayerFunc(func(g *game.Game, playerID int) game.Move {
	return game.CallMove()
})

// AllIn always shoves.
var AllIn Player = PlayerFunc(func(g *game.Game, playerID int) game.Move {
	return game.AllInMove()
})

// Raiser raises by at least minRaise over the current call every time it
// acts, falling back to calling when it cannot legally raise (grounded on
// original_source/bots.py's Raiser, which always bets `max(bets) -
// own_live_bet` floored at its configured minimum).
func Raiser(minRaise int) Player {
	return PlayerFunc(func(g *game.Game, playerID int) game.Move {
		for _, mv := range g.GetMoves(playerID) {
			if mv.Action == game.Raise && mv.Amount >= minRaise {
				return mv
			}
		}
		return game.CallMove()
	})
}

// Random picks uniformly among the legal moves at the current decision
// point, falling back to FOLD if somehow none are offered.
func Random(rng *rand.Rand) Player {
	return PlayerFunc(func(g *game.Game, playerID int) game.Move {
		moves := g.GetMoves(playerID)
		if len(moves) == 0 {
			return game.FoldMove()
		}
		return moves[rng.Intn(len(moves))]
	})
}
