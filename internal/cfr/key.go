package cfr

import (
	"fmt"
	"strings"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/poker"
)

// moveCode renders a move using the short codes shared by the info-set key
// and the persisted strategy file (spec §4.5, §6). The PHH action log uses
// its own grammar (internal/phh).
func moveCode(m game.Move) string {
	switch m.Action {
	case game.Fold:
		return "f"
	case game.Call:
		return "c"
	case game.AllInAction:
		return "a"
	case game.Raise:
		return fmt.Sprintf("r%d", m.Amount)
	default:
		return "?"
	}
}

// parseMoveCode is the inverse of moveCode, used when loading a persisted
// strategy file back into Move-keyed probabilities.
func parseMoveCode(code string) (game.Move, error) {
	switch {
	case code == "f":
		return game.FoldMove(), nil
	case code == "c":
		return game.CallMove(), nil
	case code == "a":
		return game.AllInMove(), nil
	case strings.HasPrefix(code, "r"):
		var amt int
		if _, err := fmt.Sscanf(code, "r%d", &amt); err != nil {
			return game.Move{}, fmt.Errorf("cfr: malformed raise code %q: %w", code, err)
		}
		return game.RaiseMove(amt), nil
	default:
		return game.Move{}, fmt.Errorf("cfr: unknown move code %q", code)
	}
}

// cardsString renders cards in the same compact two-char-per-card notation
// Card.String uses, with no separator.
func cardsString(cards []poker.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.String())
	}
	return b.String()
}

// paddedCommunity renders the community cards, zero-padded to a fixed width
// of 10 characters (5 cards) so keys from different streets never alias
// (spec §4.5: "<community_padded_to_10>").
func paddedCommunity(community []poker.Card) string {
	s := cardsString(community)
	for len(s) < 10 {
		s += "0"
	}
	return s
}

// roundHistory renders the current betting round's action codes in order,
// separated by commas (spec §4.5: "betting_history_this_round").
func roundHistory(g *game.Game) string {
	rec := g.History.Current()
	var codes []string
	for _, a := range rec.Actions {
		if a.Boundary || a.Stage != g.Stage {
			continue
		}
		codes = append(codes, moveCode(a.Move))
	}
	return strings.Join(codes, ",")
}

// InfoSetKey computes the info-set key for player at g's current decision
// point (spec §4.5: `"<hole_cards>:<community_padded_to_10>:<betting_history_this_round>"`).
func InfoSetKey(g *game.Game, player int) string {
	return fmt.Sprintf("%s:%s:%s", cardsString(g.HoleCards[player]), paddedCommunity(g.Community), roundHistory(g))
}
