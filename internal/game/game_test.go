package game

import (
	"math/rand"
	"testing"

	"github.com/lox/holdem-engine/internal/pot"
	"github.com/lox/holdem-engine/poker"
	"github.com/stretchr/testify/require"
)

func mustCards(t *testing.T, s string) []poker.Card {
	t.Helper()
	cards, err := poker.ParseCards(s)
	require.NoError(t, err)
	return cards
}

func TestInitHandHeadsUpBlinds(t *testing.T) {
	cfg := DefaultNoLimitConfig()
	g := NewGame(cfg, []int{100, 100}, 0, rand.New(rand.NewSource(1)))
	g.InitHand()

	require.Equal(t, Running, g.State)
	require.Equal(t, Preflop, g.Stage)
	require.Equal(t, 0, g.SBID)
	require.Equal(t, 1, g.BBID)
	require.Equal(t, 99, g.Players[0].Chips)
	require.Equal(t, 98, g.Players[1].Chips)
	// Heads-up: button/SB acts first preflop.
	require.Equal(t, 0, g.CurrentPlayerID)
	require.Equal(t, 200, g.TotalChips())
}

func TestGetMovesTenEntries(t *testing.T) {
	cfg := DefaultNoLimitConfig() // big_blind=2, small_blind=1
	g := NewGame(cfg, []int{10, 10}, 0, rand.New(rand.NewSource(2)))
	g.InitHand()

	moves := g.GetMoves(g.CurrentPlayerID)
	require.Len(t, moves, 10)
	require.Equal(t, FoldMove(), moves[0])
	require.Equal(t, CallMove(), moves[1])
	for i := 0; i < 7; i++ {
		require.Equal(t, RaiseMove(i+1), moves[2+i])
	}
	require.Equal(t, AllInMove(), moves[9])
}

func TestFoldEndsHandUncontested(t *testing.T) {
	cfg := DefaultNoLimitConfig()
	g := NewGame(cfg, []int{100, 100}, 0, rand.New(rand.NewSource(3)))
	g.InitHand()

	require.NoError(t, g.AcceptMove(FoldMove()))

	require.Equal(t, HandDone, g.State)
	require.Equal(t, 200, g.TotalChips())
	// Only the blinds (1+2) were ever in the pot; player 0 folded rather
	// than calling, so it keeps the rest of its stack.
	require.Equal(t, 99, g.Players[0].Chips)
	require.Equal(t, 101, g.Players[1].Chips)

	results := g.History.Hand(0).Results
	require.Len(t, results, 1)
	require.Equal(t, []int{1}, results[0].Winners)
	require.Nil(t, results[0].WinningRank)
}

// TestThreeWayAllInTieSplitsSidePots drives three successive all-ins of
// unequal size to a community board that is itself a royal flush, so every
// player ties regardless of hole cards. This exercises side-pot splitting
// on a tie without depending on an RNG seed's dealt cards to land one.
func TestThreeWayAllInTieSplitsSidePots(t *testing.T) {
	cfg := DefaultNoLimitConfig()
	g := &Game{
		Config:     cfg,
		NumPlayers: 3,
		ButtonID:   0,
		Players: []*PlayerData{
			{Chips: 10, State: ToMove},
			{Chips: 20, State: ToMove},
			{Chips: 100, State: ToMove},
		},
		HoleCards: [][]poker.Card{
			mustCards(t, "2c3d"),
			mustCards(t, "4h5c"),
			mustCards(t, "6d7h"),
		},
		Community:       mustCards(t, "AsKsQsJsTs"),
		Pots:            []*pot.Pot{pot.New()},
		History:         NewHistory(3),
		State:           Running,
		Stage:           River,
		CurrentPlayerID: 0,
	}
	for seat := range g.Players {
		g.Pots[0].Bets[seat] = 0
	}
	g.History.StartHand([]int{10, 20, 100}, g.HoleCards)

	require.NoError(t, g.AcceptMove(AllInMove()))
	require.NoError(t, g.AcceptMove(AllInMove()))
	require.NoError(t, g.AcceptMove(AllInMove()))

	require.Equal(t, HandDone, g.State)
	require.Equal(t, 10, g.Players[0].Chips)
	require.Equal(t, 20, g.Players[1].Chips)
	require.Equal(t, 100, g.Players[2].Chips)
	require.Equal(t, 130, g.TotalChips())

	results := g.History.Current().Results
	require.Len(t, results, 3)
	// Main pot (3-way) and the middle side pot (2-way) go to an evaluated
	// showdown; the top side pot has a single contender and is awarded
	// uncontested, so it carries no winning rank.
	require.Equal(t, 30, results[0].PotTotal)
	require.Equal(t, poker.HandRank(1), *results[0].WinningRank)
	require.Equal(t, 20, results[1].PotTotal)
	require.Equal(t, poker.HandRank(1), *results[1].WinningRank)
	require.Equal(t, 80, results[2].PotTotal)
	require.Nil(t, results[2].WinningRank)
}

func TestZeroRaiseCallsAndNegativeRaiseIsRejected(t *testing.T) {
	cfg := DefaultNoLimitConfig()
	g := NewGame(cfg, []int{100, 100}, 0, rand.New(rand.NewSource(4)))
	g.InitHand()

	err := g.AcceptMove(RaiseMove(0))
	require.NoError(t, err) // amount 0 translates to CALL, always legal

	g2 := NewGame(cfg, []int{100, 100}, 0, rand.New(rand.NewSource(4)))
	g2.InitHand()
	err = g2.AcceptMove(RaiseMove(-1))
	require.Error(t, err)
	var invalid *InvalidMoveError
	require.ErrorAs(t, err, &invalid)
}

func TestAllInShortStackCappedRaiseLevel(t *testing.T) {
	cfg := DefaultNoLimitConfig() // small_blind=1, big_blind=2
	// BB only has 1 chip: can't cover the full big blind.
	g := NewGame(cfg, []int{100, 1}, 0, rand.New(rand.NewSource(5)))
	g.InitHand()

	require.Equal(t, 0, g.Players[1].Chips)
	require.Equal(t, AllIn, g.Players[1].State)
	// The floor still forces the raise level to the configured big blind.
	require.Equal(t, 2, g.Pots[0].RaiseLevel())
}
