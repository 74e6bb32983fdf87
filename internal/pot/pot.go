// Package pot implements a single pot layer: center chips plus per-player
// bets for the current betting round, and the side-pot splitting algorithm
// that keeps all-in arithmetic consistent (spec §4.2).
package pot

import "sort"

// Pot is one layer of chips: settled chips in the center, plus bets still
// live for the current round (spec §3: "Pot: center_chips, bets, raise_level").
type Pot struct {
	Center int
	Bets   map[int]int

	// Floor forces RaiseLevel to never report below this value, letting a
	// short all-in blind still set the real raise level for everyone else
	// to match (spec §4.3 step 7: "set raise_level to the big blind
	// regardless of actual amounts posted").
	Floor int
}

// New returns an empty pot with no center chips and no bets.
func New() *Pot {
	return &Pot{Bets: map[int]int{}}
}

// RaiseLevel is the highest live bet in this pot layer, or Floor if that is
// higher (spec §3: "raise_level = max(0, max(bets.values()))").
func (p *Pot) RaiseLevel() int {
	level := p.Floor
	for _, b := range p.Bets {
		if b > level {
			level = b
		}
	}
	return level
}

// Add increments player's bet by chips.
func (p *Pot) Add(player int, chips int) {
	p.Bets[player] += chips
}

// Fold moves player's bet into the center and removes them from the pot
// (spec §4.2: "fold(player): move bet to center; remove player from bets").
func (p *Pot) Fold(player int) {
	p.Center += p.Bets[player]
	delete(p.Bets, player)
}

// CollectBets moves every live bet into the center and zeroes every bet.
// Floor is left unchanged, so RaiseLevel afterwards reports Floor.
func (p *Pot) CollectBets() {
	for player, b := range p.Bets {
		p.Center += b
		p.Bets[player] = 0
	}
}

// ChipsToCall is the minimum additional chips player must add to match the
// raise level. A player with no entry in this layer counts as having bet
// zero, so they owe the full raise level.
func (p *Pot) ChipsToCall(player int) int {
	return p.RaiseLevel() - p.Bets[player]
}

// Total is the pot's full value: center chips plus every live bet.
func (p *Pot) Total() int {
	total := p.Center
	for _, b := range p.Bets {
		total += b
	}
	return total
}

// Players returns the ids of players with a live bet in this layer, sorted
// ascending for deterministic iteration.
func (p *Pot) Players() []int {
	ids := make([]int, 0, len(p.Bets))
	for id := range p.Bets {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Split partitions unequal bets into side pots, assuming the player with the
// smallest live bet is all-in. While bets are not all equal: cap every bet
// at the minimum live bet, carry the excess into a fresh layer containing
// only the over-bettors, and repeat on that fresh layer (spec §4.2). The
// returned slice excludes the receiver.
//
// Panics if called with an empty bets map — a split with nothing to split
// is a programmer invariant violation (spec §7.3).
func (p *Pot) Split() []*Pot {
	if len(p.Bets) == 0 {
		panic("pot: split called with empty bets")
	}

	var sides []*Pot
	cur := p
	for {
		if allEqual(cur.Bets) {
			break
		}

		minBet := minValue(cur.Bets)
		next := New()
		for player, bet := range cur.Bets {
			if bet == minBet {
				continue
			}
			cur.Bets[player] = minBet
			next.Bets[player] = bet - minBet
		}
		sides = append(sides, next)
		cur = next
	}
	return sides
}

func allEqual(bets map[int]int) bool {
	first := true
	var v int
	for _, b := range bets {
		if first {
			v = b
			first = false
			continue
		}
		if b != v {
			return false
		}
	}
	return true
}

func minValue(bets map[int]int) int {
	first := true
	var m int
	for _, b := range bets {
		if first || b < m {
			m = b
			first = false
		}
	}
	return m
}
