package phh

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/poker"
)

// ParsedHand is FromPHH's output: enough of a reconstructed hand to seed a
// Game and replay it (spec §4.4's "replaying to completion reproduces the
// recorded final chip stacks"). Every index here, including ActionEntry.Player,
// is a dealing-order position (PHH's p<N>), not an absolute table seat —
// construct the replay game with NewReplayGame and use its
// Game.SeatAtDealingIndex to translate each dealing-order position to the
// seat AcceptMove expects.
type ParsedHand struct {
	Config         *game.GameConfig
	NumPlayers     int
	StartingStacks []int
	HoleCards      [][]poker.Card
	Community      []poker.Card
	Actions        []game.ActionEntry
}

// Load reads and parses one PHH document.
func Load(r io.Reader) (*ParsedHand, error) {
	var hh HandHistory
	if _, err := toml.NewDecoder(r).Decode(&hh); err != nil {
		return nil, parseErrorf("malformed TOML document: %v", err)
	}
	return FromPHH(&hh)
}

// FromPHH is Dump's inverse: it reconstructs a ParsedHand from the PHH TOML
// shape, failing fast with a *ParseError and no partially populated result
// on anything malformed (spec §7.2).
func FromPHH(hh *HandHistory) (*ParsedHand, error) {
	if hh.Variant != VariantNoLimit && hh.Variant != VariantFixedLimit {
		return nil, parseErrorf("unsupported variant %q", hh.Variant)
	}

	n := len(hh.StartingStacks)
	if n == 0 {
		return nil, parseErrorf("starting_stacks is empty")
	}

	hasAnte := false
	for _, a := range hh.Antes {
		if a != 0 {
			hasAnte = true
			break
		}
	}
	hasBlind := false
	for _, b := range hh.BlindsOrStraddles {
		if b != 0 {
			hasBlind = true
			break
		}
	}
	if hasAnte && hh.MinBet > 0 && !hasBlind {
		return nil, parseErrorf("nonzero antes with min_bet>0 but no blinds: combination is not meaningful")
	}

	cfg := &game.GameConfig{MinBet: hh.MinBet, SmallBet: hh.SmallBet, BigBet: hh.BigBet}
	// blinds_or_straddles is positional by dealing order, not by blind size,
	// so the two posted amounts are identified by value, not array index.
	var posted []int
	for _, b := range hh.BlindsOrStraddles {
		if b > 0 {
			posted = append(posted, b)
		}
	}
	sort.Ints(posted)
	switch len(posted) {
	case 0:
	case 1:
		cfg.BigBlind = posted[0]
	default:
		cfg.SmallBlind = posted[0]
		cfg.BigBlind = posted[len(posted)-1]
	}
	if hasAnte {
		cfg.AnteAmt = maxInt(hh.Antes)
		cfg.AnteTargetName = "all"
	}
	if hh.Variant == VariantFixedLimit && (cfg.SmallBet <= 0 || cfg.BigBet <= 0) {
		return nil, parseErrorf("variant FT requires small_bet and big_bet")
	}

	holeCards := make([][]poker.Card, n)
	community := make([]poker.Card, 0, 5)
	var actions []game.ActionEntry
	stage := game.Preflop
	dealtStreets := 0

	// level mirrors DumpHand's own tracker (record.go's dumpActions): the
	// preflop level starts wherever blinds_or_straddles left it, since blind
	// postings are no longer present in the action list as their own p<N>
	// lines — a replaying Game posts them itself during InitHand — and each
	// later street starts at zero, same as a fresh round of betting. Unlike
	// the encoder, the decoder never needs a per-seat bet map: it only ever
	// reconstructs RaiseMove (never AllInAction) from a `cbr` line, and
	// AcceptMove itself upgrades a raise that happens to cover a player's
	// whole stack into an all-in at replay time.
	level := 0
	for _, b := range hh.BlindsOrStraddles {
		if b > level {
			level = b
		}
	}

	for _, line := range hh.Actions {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, parseErrorf("malformed action string %q", line)
		}

		switch {
		case fields[0] == "d" && fields[1] == "dh":
			if len(fields) != 4 {
				return nil, parseErrorf("malformed deal-hole action %q", line)
			}
			seat, err := seatIndex(fields[2])
			if err != nil {
				return nil, parseErrorf("malformed deal-hole action %q: %v", line, err)
			}
			if seat >= n {
				return nil, parseErrorf("malformed deal-hole action %q: player out of range", line)
			}
			cards, err := parseCards(fields[3])
			if err != nil {
				return nil, parseErrorf("malformed deal-hole action %q: %v", line, err)
			}
			holeCards[seat] = cards

		case fields[0] == "d" && fields[1] == "db":
			if len(fields) != 3 {
				return nil, parseErrorf("malformed deal-board action %q", line)
			}
			cards, err := parseCards(fields[2])
			if err != nil {
				return nil, parseErrorf("malformed deal-board action %q: %v", line, err)
			}
			community = append(community, cards...)
			dealtStreets++
			switch dealtStreets {
			case 1:
				stage = game.Flop
			case 2:
				stage = game.Turn
			case 3:
				stage = game.River
			}
			level = 0

		case strings.HasPrefix(fields[0], "p"):
			seat, err := seatIndex(fields[0])
			if err != nil {
				return nil, parseErrorf("malformed player action %q: %v", line, err)
			}
			if seat >= n {
				return nil, parseErrorf("malformed player action %q: player out of range", line)
			}
			if len(fields) < 2 {
				return nil, parseErrorf("malformed player action %q", line)
			}
			switch fields[1] {
			case "f":
				actions = append(actions, game.ActionEntry{Stage: stage, Player: seat, Move: game.FoldMove()})
			case "cc":
				actions = append(actions, game.ActionEntry{Stage: stage, Player: seat, Move: game.CallMove()})
			case "cbr":
				if len(fields) != 3 {
					return nil, parseErrorf("malformed raise action %q", line)
				}
				total, err := strconv.Atoi(fields[2])
				if err != nil {
					return nil, parseErrorf("malformed raise amount in %q: %v", line, err)
				}
				// cbr is PHH's raise-to-total; Move.Amount means "more than the
				// current call" (move.go), never raise-to, so it is converted
				// relative to the level this street has reached so far.
				amount := total - level
				level = total
				actions = append(actions, game.ActionEntry{Stage: stage, Player: seat, Move: game.RaiseMove(amount)})
			case "sm":
				// Showdown reveal; already implied by hole cards and results.
			default:
				return nil, parseErrorf("malformed player action %q", line)
			}

		default:
			return nil, parseErrorf("malformed action string %q", line)
		}
	}

	return &ParsedHand{
		Config:         cfg,
		NumPlayers:     n,
		StartingStacks: append([]int(nil), hh.StartingStacks...),
		HoleCards:      holeCards,
		Community:      community,
		Actions:        actions,
	}, nil
}

func seatIndex(field string) (int, error) {
	if len(field) < 2 || field[0] != 'p' {
		return 0, fmt.Errorf("not a seat reference: %q", field)
	}
	n, err := strconv.Atoi(field[1:])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid seat reference: %q", field)
	}
	return n - 1, nil
}

func parseCards(s string) ([]poker.Card, error) {
	if s == "?" || strings.Trim(s, "?") == "" {
		return nil, nil
	}
	tokens := tokenizeCardRun(s)
	if len(strings.Join(tokens, "")) != len(s) {
		return nil, fmt.Errorf("truncated card run %q", s)
	}
	return poker.ParseCards(strings.Join(NormalizeCards(tokens), ""))
}

// tokenizeCardRun splits a concatenated run of card codes (e.g. "Th10cAs")
// into individual tokens, tolerating foreign PHH files that spell ten as
// "10" instead of "T".
func tokenizeCardRun(s string) []string {
	var tokens []string
	for i := 0; i < len(s); {
		if i+3 <= len(s) && s[i:i+2] == "10" {
			tokens = append(tokens, s[i:i+3])
			i += 3
			continue
		}
		if i+2 > len(s) {
			break
		}
		tokens = append(tokens, s[i:i+2])
		i += 2
	}
	return tokens
}

func maxInt(xs []int) int {
	m := 0
	for _, x := range xs {
		if x > m {
			m = x
		}
	}
	return m
}
