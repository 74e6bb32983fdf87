package poker

import "math/rand"

// Deck is an ordered sequence of the 52 unique cards (spec §3). Deal takes
// cards from the back of the sequence and rotates them to the front, which is
// what makes a second Deal after a Shuffle deterministic for a fixed seed
// (grounded on original_source/poker/util.py: Deck.deal).
type Deck struct {
	cards [52]Card
	rng   *rand.Rand
}

// NewDeck builds an unshuffled deck ordered by suit then rank, backed by rng
// for all future shuffles. rng is owned by the caller; a nil rng falls back
// to the package-level math/rand source.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	i := 0
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}
	return d
}

func (d *Deck) intn(n int) int {
	if d.rng != nil {
		return d.rng.Intn(n)
	}
	return rand.Intn(n)
}

// Shuffle performs an in-place Fisher-Yates shuffle using the deck's RNG.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes the last n cards from the deck and returns them in the order
// they were dealt (first dealt card first), rotating them to the front of the
// internal sequence so that a subsequent Shuffle+Deal pair from the same seed
// reproduces the same deals.
func (d *Deck) Deal(n int) []Card {
	if n <= 0 || n > len(d.cards) {
		return nil
	}
	out := make([]Card, n)
	copy(out, d.cards[len(d.cards)-n:])

	var rest [52]Card
	copy(rest[:n], out)
	copy(rest[n:], d.cards[:len(d.cards)-n])
	d.cards = rest
	return out
}

// DealOne deals a single card.
func (d *Deck) DealOne() Card {
	return d.Deal(1)[0]
}

// Burn discards n cards face down (a Deal whose result is ignored).
func (d *Deck) Burn(n int) {
	d.Deal(n)
}
