package poker

import (
	"fmt"
	rand "math/rand/v2"
)

// Deck is the set difference of the 52-card universe and the cards already
// dealt. Draws sample uniformly from what remains; the RNG is always an
// explicit parameter so callers control determinism.
type Deck struct {
	remaining CardSet
}

// FreshDeck returns a deck containing all 52 cards.
func FreshDeck() Deck {
	return Deck{remaining: fullDeckSet}
}

// NewDeckWithout returns a fresh deck minus the given cards. A card listed
// twice fails with ErrCardAbsent.
func NewDeckWithout(cards ...Card) (Deck, error) {
	d := FreshDeck()
	for _, c := range cards {
		if err := d.Remove(c); err != nil {
			return Deck{}, err
		}
	}
	return d, nil
}

// Remove takes a specific card out of the deck. It fails if the card has
// already been dealt or removed.
func (d *Deck) Remove(c Card) error {
	if !d.remaining.Contains(c) {
		return fmt.Errorf("%w: %s", ErrCardAbsent, c)
	}
	d.remaining.Remove(c)
	return nil
}

// Contains reports whether the card is still in the deck.
func (d *Deck) Contains(c Card) bool {
	return d.remaining.Contains(c)
}

// Draw removes and returns a uniformly random card.
func (d *Deck) Draw(rng *rand.Rand) (Card, error) {
	n := d.remaining.Count()
	if n == 0 {
		return 0, ErrDeckEmpty
	}
	c := d.remaining.nth(rng.IntN(n))
	d.remaining.Remove(c)
	return c, nil
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return d.remaining.Count()
}

// Cards returns the undealt cards in canonical (ascending index) order.
func (d *Deck) Cards() []Card {
	return d.remaining.Cards(make([]Card, 0, d.remaining.Count()))
}
