package phh

import (
	"fmt"
	"strings"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/poker"
)

// DumpHand converts one completed hand into the PHH TOML shape (spec §6:
// "Dump is the inverse [of parse]"). g supplies the button/blind seating that
// HandRecord itself does not carry; rec is normally g.History.Current().
func DumpHand(g *game.Game, rec *game.HandRecord, handID string) (*HandHistory, error) {
	if rec == nil {
		return nil, fmt.Errorf("phh: hand record is nil")
	}
	n := len(rec.StartingChips)

	hh := &HandHistory{
		Variant:           variantOf(g.Config),
		Antes:             antesOf(g, n),
		BlindsOrStraddles: blindsOf(g, n),
		MinBet:            g.Config.MinBet,
		StartingStacks:    append([]int(nil), rec.StartingChips...),
		Seats:             seatsOf(g, n),
		HandID:            handID,
		Actions:           dumpActions(g, rec),
	}
	if g.Config.IsFixedLimit() {
		hh.SmallBet = g.Config.SmallBet
		hh.BigBet = g.Config.BigBet
	}
	return hh, nil
}

func variantOf(cfg *game.GameConfig) string {
	if cfg.IsFixedLimit() {
		return VariantFixedLimit
	}
	return VariantNoLimit
}

func antesOf(g *game.Game, n int) []int {
	antes := make([]int, n)
	set := func(seat int) {
		if idx := g.DealingIndexOf(seat); idx >= 0 {
			antes[idx] = g.Config.AnteAmt
		}
	}
	switch g.Config.AnteTarget() {
	case game.AnteAll:
		for i := range antes {
			antes[i] = g.Config.AnteAmt
		}
	case game.AnteBBOnly:
		set(g.BBID)
	case game.AnteButtonOnly:
		set(g.ButtonID)
	}
	return antes
}

func blindsOf(g *game.Game, n int) []int {
	blinds := make([]int, n)
	if idx := g.DealingIndexOf(g.SBID); idx >= 0 {
		blinds[idx] = g.Config.SmallBlind
	}
	if idx := g.DealingIndexOf(g.BBID); idx >= 0 {
		blinds[idx] = g.Config.BigBlind
	}
	return blinds
}

// seatsOf records, for each dealing-order position (1-indexed player in the
// action log), which physical table seat held it this hand, so a reader can
// reconstruct button rotation across a session's hands.
func seatsOf(g *game.Game, n int) []int {
	seats := make([]int, n)
	for i := 0; i < n; i++ {
		seats[i] = g.SeatAtDealingIndex(i) + 1
	}
	return seats
}

// dumpActions walks a hand's action log and renders the literal PHH action
// grammar (spec §6), tracking each player's live bet level per street so
// `cbr` can report a raise-to total rather than the engine's internal
// raise-by amount. Blind postings (a.Forced) already appear in
// blinds_or_straddles, so they update the bet-level tracker but are not
// also emitted as their own p<N> line — PHH has no grammar for a forced
// action, and a replaying Game posts its own blinds during InitHand.
func dumpActions(g *game.Game, rec *game.HandRecord) []string {
	var out []string
	for i, hole := range rec.HoleCards {
		out = append(out, fmt.Sprintf("d dh p%d %s", i+1, cardsString(hole)))
	}

	dealt := 0 // community cards already emitted via `d db`
	stage := game.Preflop
	bets := map[int]int{}
	level := 0

	dealStreet := func(count int) {
		if count <= 0 || dealt+count > len(rec.Community) {
			return
		}
		out = append(out, fmt.Sprintf("d db %s", cardsString(rec.Community[dealt:dealt+count])))
		dealt += count
	}

	for _, a := range rec.Actions {
		if a.Boundary {
			continue
		}
		if a.Stage != stage {
			switch a.Stage {
			case game.Flop:
				dealStreet(3)
			case game.Turn, game.River:
				dealStreet(1)
			}
			stage = a.Stage
			bets = map[int]int{}
			level = 0
		}

		idx := g.DealingIndexOf(a.Player)
		p := fmt.Sprintf("p%d", idx+1)
		var line string
		switch a.Move.Action {
		case game.Fold:
			line = p + " f"
		case game.Call:
			bets[idx] = level
			line = p + " cc"
		case game.Raise:
			total := level + a.Move.Amount
			bets[idx] = total
			level = total
			line = fmt.Sprintf("%s cbr %d", p, total)
		case game.AllInAction:
			total := bets[idx] + a.Move.Amount
			bets[idx] = total
			if total > level {
				level = total
				line = fmt.Sprintf("%s cbr %d", p, total)
			} else {
				line = p + " cc"
			}
		}
		if !a.Forced {
			out = append(out, line)
		}
	}

	// Any community cards dealt past the last betting action (e.g. an
	// all-in run-out to showdown) still need recording.
	if dealt < len(rec.Community) {
		out = append(out, fmt.Sprintf("d db %s", cardsString(rec.Community[dealt:])))
	}

	shown := map[int]bool{}
	for _, res := range rec.Results {
		if res.WinningRank == nil {
			continue
		}
		for _, w := range res.Winners {
			idx := g.DealingIndexOf(w)
			if idx < 0 || shown[idx] {
				continue
			}
			shown[idx] = true
			out = append(out, fmt.Sprintf("p%d sm %s", idx+1, cardsString(rec.HoleCards[idx])))
		}
	}

	return out
}

func cardsString(cards []poker.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.String())
	}
	return b.String()
}
