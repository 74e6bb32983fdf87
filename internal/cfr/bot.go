package cfr

import (
	"math/rand"
	"sort"

	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/game"
)

// CFRBot plays from a trained or loaded strategy, sampling the current
// decision's average strategy and falling back to FOLD on a missing key
// (spec §4.5: "CFRBot at play time: compute the same key from live Game
// state; look up the infoset; sample next move from its average strategy
// ... If key missing, fall back to FOLD deterministically").
type CFRBot struct {
	strategy *Strategy
	rng      *rand.Rand
}

// NewCFRBot returns a bot that samples from strategy using rng.
func NewCFRBot(strategy *Strategy, rng *rand.Rand) *CFRBot {
	return &CFRBot{strategy: strategy, rng: rng}
}

var _ bot.Player = (*CFRBot)(nil)

// Act implements bot.Player.
func (b *CFRBot) Act(g *game.Game, playerID int) game.Move {
	key := InfoSetKey(g, playerID)
	dist, ok := b.strategy.ForKey(key)
	if !ok || len(dist) == 0 {
		return game.FoldMove()
	}

	legal := g.GetMoves(playerID)
	codeToMove := make(map[string]game.Move, len(legal))
	for _, mv := range legal {
		codeToMove[moveCode(mv)] = mv
	}

	codes := make([]string, 0, len(dist))
	for c := range dist {
		codes = append(codes, c)
	}
	sort.Strings(codes)

	r := b.rng.Float64()
	cum := 0.0
	for _, c := range codes {
		mv, legalHere := codeToMove[c]
		if !legalHere {
			continue
		}
		cum += dist[c]
		if r <= cum {
			return mv
		}
	}

	// Distribution didn't sum to (or past) r because the board state no
	// longer matches what the strategy was trained on; fall back to FOLD
	// rather than guess.
	return game.FoldMove()
}
