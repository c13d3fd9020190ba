package holdem

import "github.com/lox/pokercore/poker"

// Suitedness says how the suits of a starting hand relate.
type Suitedness uint8

const (
	// Any makes no promise about suits.
	Any Suitedness = iota
	// Suited means both cards share a suit.
	Suited
	// OffSuit means the cards have different suits.
	OffSuit
)

// StartingHand is a Hold'em starting-hand class: two values plus a
// suitedness, e.g. {Ace, King, Suited} for AKs. A pair ignores Suited
// (pairs cannot be suited).
type StartingHand struct {
	High, Low poker.Value
	Suited    Suitedness
}

// IsPair reports whether both values match.
func (s StartingHand) IsPair() bool {
	return s.High == s.Low
}

// String returns the class notation: "AA", "AKs", "AKo", or "AK" for Any.
func (s StartingHand) String() string {
	n := s.High.String() + s.Low.String()
	if s.IsPair() {
		return n
	}
	switch s.Suited {
	case Suited:
		return n + "s"
	case OffSuit:
		return n + "o"
	default:
		return n
	}
}

// Combos expands the class into its concrete two-card combinations: six for
// a pair, four suited, twelve offsuit, sixteen for Any non-pair.
func (s StartingHand) Combos() []Combo {
	if s.IsPair() {
		combos := make([]Combo, 0, 6)
		for s1 := poker.Spade; s1 <= poker.Diamond; s1++ {
			for s2 := s1 + 1; s2 <= poker.Diamond; s2++ {
				combos = append(combos, NewCombo(
					poker.NewCard(s.High, s1),
					poker.NewCard(s.High, s2),
				))
			}
		}
		return combos
	}

	var combos []Combo
	if s.Suited == Suited || s.Suited == Any {
		for st := poker.Spade; st <= poker.Diamond; st++ {
			combos = append(combos, NewCombo(
				poker.NewCard(s.High, st),
				poker.NewCard(s.Low, st),
			))
		}
	}
	if s.Suited == OffSuit || s.Suited == Any {
		for s1 := poker.Spade; s1 <= poker.Diamond; s1++ {
			for s2 := poker.Spade; s2 <= poker.Diamond; s2++ {
				if s1 == s2 {
					continue
				}
				combos = append(combos, NewCombo(
					poker.NewCard(s.High, s1),
					poker.NewCard(s.Low, s2),
				))
			}
		}
	}
	return combos
}

// AllStartingHands returns every distinct starting-hand class: 13 pairs,
// 78 suited and 78 offsuit non-pairs, 169 in total. Their expansions cover
// all 1,326 two-card combinations exactly once.
func AllStartingHands() []StartingHand {
	hands := make([]StartingHand, 0, 169)
	for hi := poker.Ace; ; hi-- {
		for lo := hi; ; lo-- {
			if hi == lo {
				hands = append(hands, StartingHand{High: hi, Low: lo})
			} else {
				hands = append(hands,
					StartingHand{High: hi, Low: lo, Suited: Suited},
					StartingHand{High: hi, Low: lo, Suited: OffSuit},
				)
			}
			if lo == poker.Two {
				break
			}
		}
		if hi == poker.Two {
			break
		}
	}
	return hands
}
