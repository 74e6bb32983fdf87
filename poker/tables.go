package poker

import (
	"encoding/binary"
	"fmt"

	chd "github.com/opencoff/go-chd"
)

// HandRank is an integer in [1, 7462]. 1 is the strongest possible hand
// (royal flush), 7462 is the weakest (7-5-4-3-2 high card). Lower is
// stronger (spec §3: "HandRank: integer in [1, 7462] ... Lower is
// stronger").
type HandRank int

// Band boundaries, inclusive, per spec §4.1 table construction.
const (
	rankRoyalFlush    = 1
	rankStraightFlush = 2  // .. 10
	rankFourOfAKind   = 11 // .. 166
	rankFullHouse     = 167
	rankFlush         = 323
	rankStraight      = 1600
	rankThreeOfAKind  = 1610
	rankTwoPair       = 2468
	rankOnePair       = 3326
	rankHighCard      = 6186
	rankWorst         = 7462
)

// HandType is the ordered category of a hand, derived from its HandRank by
// fixed range boundaries (spec §3).
type HandType int

// Hand types, weakest to strongest.
const (
	HighCard HandType = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

func (t HandType) String() string {
	switch t {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Type returns the hand's category.
func (r HandRank) Type() HandType {
	switch {
	case r == rankRoyalFlush:
		return RoyalFlush
	case r <= rankFourOfAKind-1:
		return StraightFlush
	case r <= rankFullHouse-1:
		return FourOfAKind
	case r <= rankFlush-1:
		return FullHouse
	case r <= rankStraight-1:
		return Flush
	case r <= rankThreeOfAKind-1:
		return Straight
	case r <= rankTwoPair-1:
		return ThreeOfAKind
	case r <= rankOnePair-1:
		return TwoPair
	case r <= rankHighCard-1:
		return Pair
	default:
		return HighCard
	}
}

func (r HandRank) String() string {
	return fmt.Sprintf("%s (%d)", r.Type(), int(r))
}

// perfectHashTable is a minimal-perfect-hash-backed lookup from a
// prime-product key to a HandRank, built once at init time via the
// Compress-Hash-Displace algorithm (spec §4.1: "a perfect-hash-style lookup
// table built from combinatorial enumeration").
type perfectHashTable struct {
	h      *chd.CHD
	values []HandRank
}

func encodeKey(key uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], key)
	return b[:]
}

// buildTable constructs a perfect hash table from a key->rank assignment.
// Panics if the key set cannot be hashed perfectly, which would indicate a
// bug in the table-construction enumeration (spec §4.1: corrupt table is a
// fatal, unrecoverable condition).
func buildTable(assignments map[uint32]HandRank) *perfectHashTable {
	keys := make([]uint32, 0, len(assignments))
	for k := range assignments {
		keys = append(keys, k)
	}

	b := chd.NewBuilder()
	for _, k := range keys {
		b.Add(encodeKey(k))
	}
	h, err := b.Freeze()
	if err != nil {
		panic(fmt.Sprintf("poker: failed to build perfect hash table: %v", err))
	}

	values := make([]HandRank, len(keys))
	for _, k := range keys {
		idx := h.Find(encodeKey(k))
		values[idx] = assignments[k]
	}
	return &perfectHashTable{h: h, values: values}
}

// lookup returns the HandRank for key. It panics if the hash yields an
// out-of-range index or a slot with no rank assigned (spec §4.1: an unknown
// key for a valid 5-card hand indicates a corrupt table, a
// programmer-invariant fatal error).
func (t *perfectHashTable) lookup(key uint32) HandRank {
	idx := t.h.Find(encodeKey(key))
	if int(idx) < 0 || int(idx) >= len(t.values) {
		panic(fmt.Sprintf("poker: perfect hash table corrupt for key %d", key))
	}
	rank := t.values[idx]
	if rank == 0 {
		panic(fmt.Sprintf("poker: perfect hash table has no rank assigned for key %d", key))
	}
	return rank
}

var (
	unsuitedTable *perfectHashTable
	suitedTable   *perfectHashTable
)

func init() {
	unsuited, suited := buildAssignments()
	unsuitedTable = buildTable(unsuited)
	suitedTable = buildTable(suited)
}

// straightShape is one of the 10 straight shapes, highest to lowest, as the 5
// ranks it comprises (descending) and its prime-product key.
type straightShape struct {
	ranks [5]Rank
	key   uint32
}

func keyOf(ranks ...Rank) uint32 {
	k := uint32(1)
	for _, r := range ranks {
		k *= r.Prime()
	}
	return k
}

// straightShapes returns the 10 straight shapes in strength order: Ace-high
// (royal) down to Six-high, then the Ace-to-Five wheel last (spec §4.1: "the
// Ace-to-Five wheel uses the key 2*3*5*7*prime(Ace); all other straights use
// five consecutive primes" and "wheel straight ... is explicitly below
// 2-3-4-5-6").
func straightShapes() []straightShape {
	shapes := make([]straightShape, 0, 10)
	for high := Ace; high >= Six; high-- {
		ranks := [5]Rank{high, high - 1, high - 2, high - 3, high - 4}
		shapes = append(shapes, straightShape{ranks: ranks, key: keyOf(ranks[:]...)})
	}
	wheel := [5]Rank{Ace, Two, Three, Four, Five}
	shapes = append(shapes, straightShape{ranks: wheel, key: keyOf(Two, Three, Four, Five, Ace)})
	return shapes
}

// straightMask13 is the bit mask (bit i = rank i present) for a straight
// shape's 5 ranks, used to exclude straight shapes when enumerating the
// generic 5-distinct-rank combinations used by flush/high-card bands. The
// wheel is represented by its literal low-ace bit pattern (bits 0-3 plus bit
// 12), matching how nextBitPermutation below generates masks.
func (s straightShape) mask13() uint16 {
	var m uint16
	for _, r := range s.ranks {
		m |= 1 << uint(r)
	}
	return m
}

// nextBitPermutation returns the lexicographically next 13-bit mask with the
// same population count as bits (Gosper's hack), used to enumerate every
// 5-of-13 rank combination in ascending numeric order.
//
// Grounded on the classic Cactus Kev lookup-table generator (the same
// combinatorial technique cardrank.io's cactus.go uses to build its flush
// and high-card maps).
func nextBitPermutation(bits uint32) uint32 {
	i := (bits | (bits - 1)) + 1
	return i | (((i & -i) / (bits & -bits)) >> 1) - 1
}

// rankCombos5Descending enumerates all 1277 five-rank combinations that are
// not one of the 10 straight shapes, ordered from strongest (highest cards)
// to weakest. This ordering backs both the flush band (323..1599) and the
// high-card band (6186..7462).
func rankCombos5Descending() []uint16 {
	straightMasks := make(map[uint16]bool, 10)
	for _, s := range straightShapes() {
		straightMasks[s.mask13()] = true
	}

	var ascending []uint16
	n := uint32(0x1f)
	for i := 0; i < 1286; i++ {
		if !straightMasks[uint16(n)] {
			ascending = append(ascending, uint16(n))
		}
		n = nextBitPermutation(n)
	}
	// include the final permutation (1287th 5-of-13 combination)
	if !straightMasks[uint16(n)] {
		ascending = append(ascending, uint16(n))
	}

	descending := make([]uint16, len(ascending))
	for i, m := range ascending {
		descending[len(ascending)-1-i] = m
	}
	return descending
}

func ranksOfMask(mask uint16) []Rank {
	ranks := make([]Rank, 0, 5)
	for r := Ace; ; r-- {
		if mask&(1<<uint(r)) != 0 {
			ranks = append(ranks, r)
		}
		if r == Two {
			break
		}
	}
	return ranks
}

func keyOfMask(mask uint16) uint32 {
	k := uint32(1)
	for _, r := range ranksOfMask(mask) {
		k *= r.Prime()
	}
	return k
}

// descendingRanks returns all 13 ranks from Ace down to Two.
func descendingRanks() []Rank {
	out := make([]Rank, 13)
	for i, r := 0, Ace; ; i, r = i+1, r-1 {
		out[i] = r
		if r == Two {
			break
		}
	}
	return out
}

// without returns ranks with the given rank removed, preserving order.
func without(ranks []Rank, remove ...Rank) []Rank {
	skip := make(map[Rank]bool, len(remove))
	for _, r := range remove {
		skip[r] = true
	}
	out := make([]Rank, 0, len(ranks))
	for _, r := range ranks {
		if !skip[r] {
			out = append(out, r)
		}
	}
	return out
}

// buildAssignments enumerates, in strength order, every hand shape and
// assigns consecutive HandRank integers within each band, per spec §4.1.
func buildAssignments() (unsuited, suited map[uint32]HandRank) {
	unsuited = make(map[uint32]HandRank, 6185)
	suited = make(map[uint32]HandRank, 1610)

	// 1: royal flush. 2..10: straight flushes. 1600..1609: straights
	// (same rank shapes, unsuited table).
	for i, s := range straightShapes() {
		suited[s.key] = HandRank(rankRoyalFlush + i)
		unsuited[s.key] = HandRank(rankStraight + i)
	}

	all := descendingRanks()

	// 11..166: four of a kind. Outer: quad rank, high to low. Inner:
	// kicker, high to low over the remaining 12 ranks.
	quadRank := rankFourOfAKind
	for _, quad := range all {
		kickers := without(all, quad)
		for _, kicker := range kickers {
			unsuited[keyOf(quad, quad, quad, quad, kicker)] = HandRank(quadRank)
			quadRank++
		}
	}

	// 167..322: full house. Outer: trip rank, high to low. Inner: pair
	// rank (any other rank), high to low.
	fullRank := rankFullHouse
	for _, trip := range all {
		pairs := without(all, trip)
		for _, pair := range pairs {
			unsuited[keyOf(trip, trip, trip, pair, pair)] = HandRank(fullRank)
			fullRank++
		}
	}

	// 323..1599: flush. 6186..7462: high card. Same combinatorial
	// enumeration (strongest to weakest 5-distinct-rank hands, excluding
	// straight shapes), different table/band.
	combos := rankCombos5Descending()
	for i, mask := range combos {
		key := keyOfMask(mask)
		suited[key] = HandRank(rankFlush + i)
		unsuited[key] = HandRank(rankHighCard + i)
	}

	// 1610..2467: trips. Outer: trip rank, high to low. Inner: two
	// kickers from the remaining 12 ranks, as a descending combination
	// (not a permutation): for j < l over the kicker list.
	tripsRank := rankThreeOfAKind
	for _, trip := range all {
		kickers := without(all, trip)
		for j := 0; j < len(kickers)-1; j++ {
			for l := j + 1; l < len(kickers); l++ {
				unsuited[keyOf(trip, trip, trip, kickers[j], kickers[l])] = HandRank(tripsRank)
				tripsRank++
			}
		}
	}

	// 2468..3325: two pair. Outer: higher pair, high to low. Middle:
	// lower pair, any rank below the higher pair. Inner: kicker, the
	// highest remaining rank descending.
	twoPairRank := rankTwoPair
	for i, hi := range all {
		for _, lo := range all[i+1:] {
			kickers := without(all, hi, lo)
			for _, kicker := range kickers {
				unsuited[keyOf(hi, hi, lo, lo, kicker)] = HandRank(twoPairRank)
				twoPairRank++
			}
		}
	}

	// 3326..6185: pair. Outer: pair rank, high to low. Inner: three
	// kickers from the remaining 12 ranks as a descending combination.
	pairRank := rankOnePair
	for _, pair := range all {
		kickers := without(all, pair)
		for l := 0; l < len(kickers)-2; l++ {
			for m := l + 1; m < len(kickers)-1; m++ {
				for n := m + 1; n < len(kickers); n++ {
					unsuited[keyOf(pair, pair, kickers[l], kickers[m], kickers[n])] = HandRank(pairRank)
					pairRank++
				}
			}
		}
	}

	return unsuited, suited
}
