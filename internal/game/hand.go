package game

import (
	"fmt"

	"github.com/lox/bjsim/internal/deck"
)

// Hand is an ordered set of cards held by a player or the dealer, plus the
// flags the settlement needs.
//
// Card values are never stored: an ace's 11-or-1 value is resolved every time
// the hand is valued, so a card read from a hand always has its rank value.
type Hand struct {
	cards       []deck.Card
	splitHand   bool
	doubled     bool
	surrendered bool
}

// NewHand creates a hand holding the given cards
func NewHand(cards ...deck.Card) *Hand {
	h := &Hand{cards: make([]deck.Card, 0, 4)}
	h.cards = append(h.cards, cards...)
	return h
}

// Resolve returns the hand total and how many aces still count as 11. Aces
// start at 11 and are reduced to 1 one at a time, in card order, while the
// total is over 21.
func Resolve(cards []deck.Card) (total, softAces int) {
	for _, c := range cards {
		total += c.Value()
		if c.IsAce() {
			softAces++
		}
	}
	for total > 21 && softAces > 0 {
		total -= 10
		softAces--
	}
	return total, softAces
}

// Cards returns a copy of the cards in the hand
func (h *Hand) Cards() []deck.Card {
	out := make([]deck.Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// Len returns the number of cards in the hand
func (h *Hand) Len() int {
	return len(h.cards)
}

// First returns the first card; for the dealer this is the up card.
func (h *Hand) First() (deck.Card, bool) {
	if len(h.cards) == 0 {
		return deck.Card{}, false
	}
	return h.cards[0], true
}

// Add appends a card to the hand
func (h *Hand) Add(c deck.Card) {
	h.cards = append(h.cards, c)
}

// Value returns the best total for the hand
func (h *Hand) Value() int {
	total, _ := Resolve(h.cards)
	return total
}

// SoftAces returns the number of aces still counted as 11
func (h *Hand) SoftAces() int {
	_, soft := Resolve(h.cards)
	return soft
}

// Aces returns the number of aces in the hand
func (h *Hand) Aces() int {
	n := 0
	for _, c := range h.cards {
		if c.IsAce() {
			n++
		}
	}
	return n
}

// IsSoft returns true if an ace is being counted as 11
func (h *Hand) IsSoft() bool {
	return h.SoftAces() > 0
}

// IsSplitable returns true for exactly two cards of the same rank
func (h *Hand) IsSplitable() bool {
	return len(h.cards) == 2 && h.cards[0].Rank == h.cards[1].Rank
}

// IsBlackjack reports a natural: a two-card 21 that did not come from a
// split. With tripleSeven, three sevens on an unsplit hand also count.
func (h *Hand) IsBlackjack(tripleSeven bool) bool {
	if h.splitHand || h.Value() != 21 {
		return false
	}
	if tripleSeven && len(h.cards) == 3 && h.allRank(deck.Seven) {
		return true
	}
	return len(h.cards) == 2
}

func (h *Hand) allRank(r deck.Rank) bool {
	for _, c := range h.cards {
		if c.Rank != r {
			return false
		}
	}
	return true
}

// IsBusted returns true if the hand is over 21
func (h *Hand) IsBusted() bool {
	return h.Value() > 21
}

// IsSplitHand returns true if the hand was created by a split
func (h *Hand) IsSplitHand() bool {
	return h.splitHand
}

// IsDoubled returns true if the wager on the hand was doubled
func (h *Hand) IsDoubled() bool {
	return h.doubled
}

// IsSurrendered returns true if the hand was surrendered
func (h *Hand) IsSurrendered() bool {
	return h.surrendered
}

// Split moves the second card into a new hand. Both hands are marked as
// split hands.
func (h *Hand) Split() (*Hand, error) {
	if !h.IsSplitable() {
		return nil, fmt.Errorf("cannot split hand %s", h)
	}
	second := h.cards[1]
	h.cards = h.cards[:1]
	h.splitHand = true
	nh := NewHand(second)
	nh.splitHand = true
	return nh, nil
}

// String returns the cards in the hand, e.g. "A 7"
func (h *Hand) String() string {
	return deck.FormatCards(h.cards)
}
