package phh_test

import (
	"math/rand"
	"testing"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/phh"
	"github.com/lox/holdem-engine/poker"
	"github.com/stretchr/testify/require"
)

func TestDumpHandRoundTrip(t *testing.T) {
	cfg := game.DefaultNoLimitConfig() // small_blind=1, big_blind=2
	g := game.NewGame(cfg, []int{10, 10}, 0, rand.New(rand.NewSource(7)))
	g.InitHand()
	require.NoError(t, g.AcceptMove(game.FoldMove()))
	require.Equal(t, game.HandDone, g.State)

	rec := g.History.Current()
	hh, err := phh.DumpHand(g, rec, "hand-1")
	require.NoError(t, err)

	require.Equal(t, phh.VariantNoLimit, hh.Variant)
	require.Equal(t, 2, hh.MinBet)
	require.Equal(t, []int{10, 10}, hh.StartingStacks)
	// Heads-up: button/SB is seat 0, dealt second (dealing index 1), so the
	// dealing-order-keyed blinds array lands big blind at index 0.
	require.ElementsMatch(t, []int{1, 2}, hh.BlindsOrStraddles)
	require.Contains(t, hh.Actions, "d dh p1 "+cardString(rec.HoleCards[0]))
	require.Contains(t, hh.Actions, "p2 f")

	parsed, err := phh.FromPHH(hh)
	require.NoError(t, err)
	require.Equal(t, 2, parsed.NumPlayers)
	require.Equal(t, []int{10, 10}, parsed.StartingStacks)
	require.Equal(t, rec.HoleCards[0], parsed.HoleCards[0])
	require.Equal(t, rec.HoleCards[1], parsed.HoleCards[1])
	require.Equal(t, 1, parsed.Config.SmallBlind)
	require.Equal(t, 2, parsed.Config.BigBlind)

	var foundFold bool
	for _, a := range parsed.Actions {
		if a.Move.Action == game.Fold {
			foundFold = true
		}
	}
	require.True(t, foundFold)
}

// TestReplayReproducesFinalStacks drives the fixture from
// TestDumpHandRoundTrip all the way through a fresh replay Game, guarding
// the property spec §4.4/§8 actually cares about: replaying a dumped hand
// reproduces its recorded final chip stacks, rather than just checking that
// ParsedHand's fields look right in isolation. A blind posting that leaked
// back into parsed.Actions as a voluntary action would double-post the
// blind against the replay Game's own InitHand and silently throw the
// stacks off without AcceptMove ever rejecting a move.
func TestReplayReproducesFinalStacks(t *testing.T) {
	cfg := game.DefaultNoLimitConfig()
	g := game.NewGame(cfg, []int{10, 10}, 0, rand.New(rand.NewSource(7)))
	g.InitHand()
	require.NoError(t, g.AcceptMove(game.FoldMove()))
	require.Equal(t, game.HandDone, g.State)

	rec := g.History.Current()
	hh, err := phh.DumpHand(g, rec, "hand-1")
	require.NoError(t, err)

	parsed, err := phh.FromPHH(hh)
	require.NoError(t, err)

	replay := game.NewReplayGame(parsed.Config, parsed.StartingStacks, 0, parsed.HoleCards, parsed.Community)
	replay.InitHand()
	require.Equal(t, game.Running, replay.State)

	for _, a := range parsed.Actions {
		seat := replay.SeatAtDealingIndex(a.Player)
		require.Equal(t, seat, replay.CurrentPlayerID)
		require.NoError(t, replay.AcceptMove(a.Move))
	}
	require.Equal(t, game.HandDone, replay.State)

	for i := range g.Players {
		require.Equal(t, g.Players[i].Chips, replay.Players[i].Chips)
	}
}

func TestFromPHHUnsupportedVariant(t *testing.T) {
	hh := &phh.HandHistory{Variant: "ZZ", StartingStacks: []int{10, 10}}
	_, err := phh.FromPHH(hh)
	require.Error(t, err)
	var parseErr *phh.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestFromPHHMalformedAction(t *testing.T) {
	hh := &phh.HandHistory{
		Variant:        phh.VariantNoLimit,
		StartingStacks: []int{10, 10},
		MinBet:         2,
		Actions:        []string{"p1 bogus"},
	}
	_, err := phh.FromPHH(hh)
	require.Error(t, err)
	var parseErr *phh.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestFromPHHNonsenseAntesMinBetCombo(t *testing.T) {
	hh := &phh.HandHistory{
		Variant:        phh.VariantNoLimit,
		StartingStacks: []int{10, 10},
		Antes:          []int{1, 1},
		MinBet:         2,
	}
	_, err := phh.FromPHH(hh)
	require.Error(t, err)
	var parseErr *phh.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func cardString(cards []poker.Card) string {
	var s string
	for _, c := range cards {
		s += c.String()
	}
	return s
}
