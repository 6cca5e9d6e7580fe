package deck

import (
	"fmt"
	"strings"
)

// Rank represents a card rank. Suits play no part in blackjack so a card is
// identified by its rank alone.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Ranks lists every rank in deck order.
var Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

var rankNames = [...]string{"", "Ace", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten", "Jack", "Queen", "King"}

// String returns the short representation of a rank
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	if r >= Two && r <= Nine {
		return fmt.Sprintf("%d", int(r))
	}
	return "?"
}

// Name returns the long name of a rank (e.g. "Queen")
func (r Rank) Name() string {
	if !r.Valid() {
		return "Unknown"
	}
	return rankNames[r]
}

// Valid reports whether r is one of the thirteen ranks
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// Value returns the canonical blackjack point value. Aces are 11 here; the
// hand evaluator decides when one counts as 1.
func (r Rank) Value() int {
	switch {
	case r == Ace:
		return 11
	case r >= Ten && r <= King:
		return 10
	case r >= Two && r <= Nine:
		return int(r)
	default:
		return 0
	}
}

// IsTenValued returns true for Ten, Jack, Queen and King
func (r Rank) IsTenValued() bool {
	return r >= Ten && r <= King
}

// ParseRank parses a rank from its short form ("A", "7", "T", "10", "K")
// or its long name ("Ace", "seven").
func ParseRank(s string) (Rank, error) {
	s = strings.TrimSpace(s)
	switch strings.ToUpper(s) {
	case "A":
		return Ace, nil
	case "T", "10":
		return Ten, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	}
	if len(s) == 1 && s[0] >= '2' && s[0] <= '9' {
		return Rank(s[0] - '0'), nil
	}
	for _, r := range Ranks {
		if strings.EqualFold(s, r.Name()) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("invalid rank: %q", s)
}

// Card represents a playing card
type Card struct {
	Rank Rank
}

// NewCard creates a new card
func NewCard(rank Rank) Card {
	return Card{Rank: rank}
}

// String returns the string representation of a card
func (c Card) String() string {
	return c.Rank.String()
}

// Value returns the card's canonical point value
func (c Card) Value() int {
	return c.Rank.Value()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// ParseCards parses a whitespace or comma separated list of ranks, e.g.
// "T 7 A" or "8,8,6".
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		rank, err := ParseRank(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, NewCard(rank))
	}
	return cards, nil
}

// FormatCards joins cards with spaces ("A T 5")
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
