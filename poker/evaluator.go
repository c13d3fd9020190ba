package poker

import (
	"fmt"
	"math/bits"
)

// Rank5 returns the canonical rank of a 5-card hand.
//
// Precondition: the hand holds exactly five distinct cards. The hot path
// skips validation; use Rank5Checked when the input is untrusted.
func Rank5(h Hand) Rank {
	var counts [13]uint8
	var suitCounts [4]uint8
	var valueMask uint16
	for _, c := range h.cards[:5] {
		counts[c.Value()]++
		suitCounts[c.Suit()]++
		valueMask |= 1 << c.Value()
	}
	isFlush := suitCounts[0] == 5 || suitCounts[1] == 5 || suitCounts[2] == 5 || suitCounts[3] == 5

	// The number of distinct values pins down the count signature.
	switch bits.OnesCount16(valueMask) {
	case 5:
		top, isStraight := straightHigh(valueMask)
		switch {
		case isStraight && isFlush:
			return packRank(StraightFlush, top)
		case isFlush:
			var vs [5]Value
			descValues(valueMask, vs[:])
			return packRank(Flush, vs[0], vs[1], vs[2], vs[3], vs[4])
		case isStraight:
			return packRank(Straight, top)
		default:
			var vs [5]Value
			descValues(valueMask, vs[:])
			return packRank(HighCard, vs[0], vs[1], vs[2], vs[3], vs[4])
		}
	case 4: // signature [2,1,1,1]
		pair := valueWithCount(counts, 2)
		var ks [3]Value
		descValues(valueMask&^(1<<pair), ks[:])
		return packRank(OnePair, pair, ks[0], ks[1], ks[2])
	case 3: // signature [3,1,1] or [2,2,1]
		if trip := valueWithCount(counts, 3); trip <= Ace {
			var ks [2]Value
			descValues(valueMask&^(1<<trip), ks[:])
			return packRank(ThreeOfAKind, trip, ks[0], ks[1])
		}
		var ps [2]Value
		pairMask := countMask(counts, 2)
		descValues(pairMask, ps[:])
		kicker := Value(bits.Len16(valueMask&^pairMask) - 1)
		return packRank(TwoPair, ps[0], ps[1], kicker)
	default: // two distinct values: signature [4,1] or [3,2]
		if quad := valueWithCount(counts, 4); quad <= Ace {
			kicker := Value(bits.Len16(valueMask&^(1<<quad)) - 1)
			return packRank(FourOfAKind, quad, kicker)
		}
		trip := valueWithCount(counts, 3)
		pair := valueWithCount(counts, 2)
		return packRank(FullHouse, trip, pair)
	}
}

// Rank7 returns the rank of the best 5-card hand selectable from 7 cards.
// The result is identical to taking the maximum of Rank5 over all 21
// 5-subsets, but the selection is category-aware rather than brute force.
//
// Precondition: exactly seven distinct cards. Use Rank7Checked when the
// input is untrusted.
func Rank7(h Hand) Rank {
	var counts [13]uint8
	var suitMasks [4]uint16
	var valueMask uint16
	for _, c := range h.cards[:7] {
		counts[c.Value()]++
		suitMasks[c.Suit()] |= 1 << c.Value()
		valueMask |= 1 << c.Value()
	}

	// With seven cards at most one suit can reach five. A straight flush
	// dominates every other category, and no quads or full house can
	// coexist with a flush in seven cards, so this shortcut is exact.
	for s := range 4 {
		if bits.OnesCount16(suitMasks[s]) >= 5 {
			if top, ok := straightHigh(suitMasks[s]); ok {
				return packRank(StraightFlush, top)
			}
			var vs [5]Value
			descValues(suitMasks[s], vs[:])
			return packRank(Flush, vs[0], vs[1], vs[2], vs[3], vs[4])
		}
	}

	quad := Value(0xF)
	var trips, pairs [3]Value
	nTrips, nPairs := 0, 0
	for v := int(Ace); v >= 0; v-- {
		switch counts[v] {
		case 4:
			quad = Value(v)
		case 3:
			trips[nTrips] = Value(v)
			nTrips++
		case 2:
			pairs[nPairs] = Value(v)
			nPairs++
		}
	}

	if quad <= Ace {
		kicker := Value(bits.Len16(valueMask&^(1<<quad)) - 1)
		return packRank(FourOfAKind, quad, kicker)
	}

	if nTrips >= 1 && (nTrips >= 2 || nPairs >= 1) {
		// With two trips the lower one plays as the pair.
		pair := Value(0)
		hasPair := false
		if nTrips >= 2 {
			pair = trips[1]
			hasPair = true
		}
		if nPairs >= 1 && (!hasPair || pairs[0] > pair) {
			pair = pairs[0]
		}
		return packRank(FullHouse, trips[0], pair)
	}

	if top, ok := straightHigh(valueMask); ok {
		return packRank(Straight, top)
	}

	if nTrips == 1 {
		var ks [2]Value
		descValues(valueMask&^(1<<trips[0]), ks[:])
		return packRank(ThreeOfAKind, trips[0], ks[0], ks[1])
	}

	if nPairs >= 2 {
		rest := valueMask &^ (1 << pairs[0]) &^ (1 << pairs[1])
		kicker := Value(bits.Len16(rest) - 1)
		return packRank(TwoPair, pairs[0], pairs[1], kicker)
	}

	if nPairs == 1 {
		var ks [3]Value
		descValues(valueMask&^(1<<pairs[0]), ks[:])
		return packRank(OnePair, pairs[0], ks[0], ks[1], ks[2])
	}

	var vs [5]Value
	descValues(valueMask, vs[:])
	return packRank(HighCard, vs[0], vs[1], vs[2], vs[3], vs[4])
}

// Rank5Checked validates arity and distinctness before ranking.
func Rank5Checked(h Hand) (Rank, error) {
	if err := checkHand(h, 5); err != nil {
		return 0, err
	}
	return Rank5(h), nil
}

// Rank7Checked validates arity and distinctness before ranking.
func Rank7Checked(h Hand) (Rank, error) {
	if err := checkHand(h, 7); err != nil {
		return 0, err
	}
	return Rank7(h), nil
}

func checkHand(h Hand, want int) error {
	if h.Len() != want {
		return fmt.Errorf("%w: got %d, want %d", ErrArity, h.Len(), want)
	}
	if NewCardSet(h.Cards()).Count() != want {
		return fmt.Errorf("%w: duplicate cards in %s", ErrArity, h.String())
	}
	return nil
}

// straightHigh returns the top value of the best straight in a 13-bit value
// mask. The wheel (A-2-3-4-5) counts with a top of Five.
func straightHigh(mask uint16) (Value, bool) {
	mask &= 0x1FFF
	// Bitwise cascade finds runs of five consecutive values in one pass.
	seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4)
	if seq != 0 {
		return Value(bits.Len16(seq) - 1 + 4), true
	}
	const wheelMask = 1<<uint(Ace) | 1<<uint(Two) | 1<<uint(Three) | 1<<uint(Four) | 1<<uint(Five)
	if mask&wheelMask == wheelMask {
		return Five, true
	}
	return 0, false
}

// descValues fills dst with the values present in mask in descending order.
// When mask has more values than dst holds, the highest ones win.
func descValues(mask uint16, dst []Value) {
	for i := range dst {
		if mask == 0 {
			dst[i] = 0
			continue
		}
		v := Value(bits.Len16(mask) - 1)
		dst[i] = v
		mask &^= 1 << v
	}
}

// valueWithCount returns the highest value with the given multiplicity, or
// 0xF when none exists.
func valueWithCount(counts [13]uint8, n uint8) Value {
	for v := int(Ace); v >= 0; v-- {
		if counts[v] == n {
			return Value(v)
		}
	}
	return 0xF
}

// countMask returns the bitmask of values having the given multiplicity.
func countMask(counts [13]uint8, n uint8) uint16 {
	var mask uint16
	for v, c := range counts {
		if c == n {
			mask |= 1 << v
		}
	}
	return mask
}
