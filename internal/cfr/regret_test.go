package cfr

import (
	"testing"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/poker"
	"github.com/stretchr/testify/require"
)

func TestRegretEntryUniformWhenNoRegrets(t *testing.T) {
	moves := []game.Move{game.FoldMove(), game.CallMove(), game.RaiseMove(2)}
	e := newRegretEntry(moves)

	strat := e.Strategy()
	require.Len(t, strat, 3)
	for _, p := range strat {
		require.InDelta(t, 1.0/3.0, p, 1e-9)
	}
}

func TestRegretEntryMatchingFavorsPositiveRegret(t *testing.T) {
	moves := []game.Move{game.FoldMove(), game.CallMove()}
	e := newRegretEntry(moves)

	e.Update([]float64{0, 10}, e.Strategy(), 1)

	strat := e.Strategy()
	require.InDelta(t, 0.0, strat[0], 1e-9)
	require.InDelta(t, 1.0, strat[1], 1e-9)
}

func TestRegretEntryAverageStrategyNormalizesAcrossUpdates(t *testing.T) {
	moves := []game.Move{game.FoldMove(), game.CallMove()}
	e := newRegretEntry(moves)

	e.Update([]float64{1, 0}, []float64{0.5, 0.5}, 1)
	e.Update([]float64{1, 0}, []float64{1, 0}, 1)

	avg := e.AverageStrategy()
	require.InDelta(t, 0.75, avg[0], 1e-9)
	require.InDelta(t, 0.25, avg[1], 1e-9)
}

func TestTableGetCreatesOnceAndReuses(t *testing.T) {
	table := NewTable()
	moves := []game.Move{game.FoldMove(), game.CallMove()}

	a := table.Get("k1", moves)
	b := table.Get("k1", moves)
	require.Same(t, a, b)

	_, ok := table.Lookup("missing")
	require.False(t, ok)

	require.Equal(t, 1, table.Size())
}

func TestMoveCodeRoundTrip(t *testing.T) {
	cases := []game.Move{
		game.FoldMove(),
		game.CallMove(),
		game.AllInMove(),
		game.RaiseMove(7),
	}
	for _, mv := range cases {
		code := moveCode(mv)
		parsed, err := parseMoveCode(code)
		require.NoError(t, err)
		require.Equal(t, mv, parsed)
	}
}

func TestPaddedCommunityAlwaysTenChars(t *testing.T) {
	require.Len(t, paddedCommunity(nil), 10)
	cards, err := poker.ParseCards("AsKsQs")
	require.NoError(t, err)
	require.Len(t, paddedCommunity(cards), 10)
}
