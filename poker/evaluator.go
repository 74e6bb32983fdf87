package poker

import "fmt"

// Evaluate scores a 5, 6, or 7 card hand and returns its HandRank. For 6 or
// 7 cards, every 5-card subset is scored and the strongest (lowest) rank
// wins (spec §4.1: "for 6 or 7 card hands, evaluate every 5-card subset and
// take the minimum").
//
// Evaluate panics if given fewer than 5 or more than 7 cards — an
// invariant violation by the caller, not a runtime condition (spec §7.3).
func Evaluate(cards []Card) HandRank {
	switch len(cards) {
	case 5:
		return evaluate5([5]Card{cards[0], cards[1], cards[2], cards[3], cards[4]})
	case 6, 7:
		best := HandRank(rankWorst + 1)
		combinations5(cards, func(hand [5]Card) {
			if r := evaluate5(hand); r < best {
				best = r
			}
		})
		return best
	default:
		panic(fmt.Sprintf("poker: Evaluate requires 5-7 cards, got %d", len(cards)))
	}
}

// evaluate5 scores an exact 5-card hand by keying the perfect hash tables on
// the prime product of its ranks, using the suited table when all 5 cards
// share a suit and the unsuited table otherwise (spec §4.1).
func evaluate5(cards [5]Card) HandRank {
	suit := cards[0].Suit()
	flush := true
	key := uint32(1)
	for _, c := range cards {
		key *= c.Rank().Prime()
		if c.Suit() != suit {
			flush = false
		}
	}
	if flush {
		return suitedTable.lookup(key)
	}
	return unsuitedTable.lookup(key)
}

// combinations5 calls fn once for every 5-card subset of cards, in no
// particular order.
func combinations5(cards []Card, fn func(hand [5]Card)) {
	n := len(cards)
	idx := [5]int{0, 1, 2, 3, 4}
	for {
		fn([5]Card{cards[idx[0]], cards[idx[1]], cards[idx[2]], cards[idx[3]], cards[idx[4]]})

		i := 4
		for i >= 0 && idx[i] == i+n-5 {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < 5; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
