package poker_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/poker"
)

func TestNewDeckHas52UniqueCards(t *testing.T) {
	d := poker.NewDeck(rand.New(rand.NewSource(1)))
	seen := map[poker.Card]bool{}
	for len(seen) < 52 {
		c := d.DealOne()
		require.False(t, seen[c], "card %s dealt twice", c)
		seen[c] = true
	}
	require.Len(t, seen, 52)
}

func TestDealDeterministicForFixedSeed(t *testing.T) {
	a := poker.NewDeck(rand.New(rand.NewSource(42)))
	a.Shuffle()
	b := poker.NewDeck(rand.New(rand.NewSource(42)))
	b.Shuffle()

	require.Equal(t, poker.FormatCards(a.Deal(2)), poker.FormatCards(b.Deal(2)))
	require.Equal(t, poker.FormatCards(a.Deal(3)), poker.FormatCards(b.Deal(3)))
}

func TestDealFromBackRotatesToFront(t *testing.T) {
	d := poker.NewDeck(rand.New(rand.NewSource(7)))
	first := d.Deal(2)
	// after dealing, the two dealt cards sit at the front of the deck, so
	// dealing the 50 cards at the back does not return them.
	rest := d.Deal(50)
	require.Len(t, rest, 50)
	require.NotContains(t, rest, first[0])
	require.NotContains(t, rest, first[1])
}

func TestBurn(t *testing.T) {
	d := poker.NewDeck(nil)
	d.Burn(3)
	remaining := d.Deal(49)
	require.Len(t, remaining, 49)
}
