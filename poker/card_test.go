package poker_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/poker"
)

func TestParseCard(t *testing.T) {
	tests := []struct {
		in   string
		rank poker.Rank
		suit poker.Suit
	}{
		{"Kh", poker.King, poker.Hearts},
		{"2s", poker.Two, poker.Spades},
		{"Td", poker.Ten, poker.Diamonds},
		{"Ac", poker.Ace, poker.Clubs},
	}

	for _, tt := range tests {
		c, err := poker.ParseCard(tt.in)
		require.NoError(t, err)
		require.Equal(t, tt.rank, c.Rank())
		require.Equal(t, tt.suit, c.Suit())
		require.Equal(t, tt.in, c.String())
	}
}

func TestParseCardInvalid(t *testing.T) {
	_, err := poker.ParseCard("X")
	require.Error(t, err)
	_, err = poker.ParseCard("1h")
	require.Error(t, err)
	_, err = poker.ParseCard("Kz")
	require.Error(t, err)
}

func TestParseCards(t *testing.T) {
	cards, err := poker.ParseCards("ThJhQhKhAh")
	require.NoError(t, err)
	require.Len(t, cards, 5)
	require.Equal(t, "ThJhQhKhAh", poker.FormatCards(cards))
}

func TestParseCardsOddLength(t *testing.T) {
	_, err := poker.ParseCards("Th7")
	require.Error(t, err)
}

func TestRankPrimesAreDistinctPrimes(t *testing.T) {
	seen := map[uint32]bool{}
	for r := poker.Two; r <= poker.Ace; r++ {
		p := r.Prime()
		require.False(t, seen[p], "duplicate prime %d for rank %s", p, r)
		seen[p] = true
	}
}
