package cfr

import (
	"sync"

	"github.com/lox/holdem-engine/internal/game"
)

// RegretEntry accumulates regrets and strategy sums for one info set. Values
// are kept in slices indexed the same way as moves, the node's legal-move
// list at the time the entry was created (spec §3: "InfoSet ... regrets:
// map move→float, strategy_sum: map move→float, strategy: map move→float").
type RegretEntry struct {
	moves []game.Move

	mu          sync.Mutex
	regretSum   []float64
	strategySum []float64
	normalizing float64
}

func newRegretEntry(moves []game.Move) *RegretEntry {
	return &RegretEntry{
		moves:       moves,
		regretSum:   make([]float64, len(moves)),
		strategySum: make([]float64, len(moves)),
	}
}

// Moves returns the legal-move list this entry's slices are indexed by.
func (e *RegretEntry) Moves() []game.Move { return e.moves }

// Strategy returns the current regret-matching distribution: the positive
// part of the regrets, normalized, or uniform when every regret is
// non-positive (spec §4.5: "recompute strategy via regret-matching").
func (e *RegretEntry) Strategy() []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.strategyLocked()
}

func (e *RegretEntry) strategyLocked() []float64 {
	strat := make([]float64, len(e.regretSum))
	total := 0.0
	for i, r := range e.regretSum {
		if r > 0 {
			strat[i] = r
			total += r
		}
	}
	if total <= 0 {
		v := 1.0 / float64(len(strat))
		for i := range strat {
			strat[i] = v
		}
		return strat
	}
	for i := range strat {
		strat[i] /= total
	}
	return strat
}

// Update accumulates one iteration's regrets and strategy contribution
// (spec §4.5: "strategy_sum[a] += p_self * strategy[a]; regret[a] +=
// p_others * (payoff[a] - expected)").
func (e *RegretEntry) Update(regret []float64, strategy []float64, reachSelf float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range regret {
		e.regretSum[i] += regret[i]
		e.strategySum[i] += reachSelf * strategy[i]
	}
	e.normalizing += reachSelf
}

// AverageStrategy returns the normalized strategy_sum, the distribution a
// CFRBot samples from at inference time (spec §4.5: "CFRBot ... sample next
// move from its average strategy").
func (e *RegretEntry) AverageStrategy() []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	strat := make([]float64, len(e.strategySum))
	if e.normalizing <= 0 {
		v := 1.0 / float64(len(strat))
		for i := range strat {
			strat[i] = v
		}
		return strat
	}
	for i := range strat {
		strat[i] = e.strategySum[i] / e.normalizing
	}
	return strat
}

const shardCount = 64

type shard struct {
	mu      sync.RWMutex
	entries map[string]*RegretEntry
}

// Table is a sharded, thread-safe info-set table keyed by the string info-set
// key (spec §4.5: "Holds an info-set table keyed by string"). Sharding lets
// the parallel root-player traversals (spec §5) hit disjoint locks most of
// the time.
type Table struct {
	shards [shardCount]shard
}

// NewTable returns an empty info-set table.
func NewTable() *Table {
	t := &Table{}
	for i := range t.shards {
		t.shards[i].entries = make(map[string]*RegretEntry)
	}
	return t
}

// Get returns the entry for key, creating a fresh one scoped to moves if it
// doesn't already exist.
func (t *Table) Get(key string, moves []game.Move) *RegretEntry {
	s := &t.shards[fnv32(key)%shardCount]

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		return e
	}
	e = newRegretEntry(moves)
	s.entries[key] = e
	return e
}

// Lookup returns the entry for key without creating it, and whether it
// exists (spec §4.5: "Failure model: missing infoset at inference -> FOLD").
func (t *Table) Lookup(key string) (*RegretEntry, bool) {
	s := &t.shards[fnv32(key)%shardCount]
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	return e, ok
}

// Keys returns every key currently tracked, for serialization.
func (t *Table) Keys() []string {
	var out []string
	for i := range t.shards {
		s := &t.shards[i]
		s.mu.RLock()
		for k := range s.entries {
			out = append(out, k)
		}
		s.mu.RUnlock()
	}
	return out
}

// Size returns the number of info sets tracked.
func (t *Table) Size() int {
	total := 0
	for i := range t.shards {
		s := &t.shards[i]
		s.mu.RLock()
		total += len(s.entries)
		s.mu.RUnlock()
	}
	return total
}

func fnv32(key string) uint32 {
	const offset32 = 2166136261
	const prime32 = 16777619
	h := uint32(offset32)
	for i := 0; i < len(key); i++ {
		h ^= uint32(key[i])
		h *= prime32
	}
	return h
}
