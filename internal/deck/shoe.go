package deck

import (
	"errors"
	"math/rand/v2"
)

// ErrEmptyShoe is returned by Deal when no cards remain. It means the shoe was
// sized too small for the rounds being played and is not recoverable.
var ErrEmptyShoe = errors.New("shoe is empty")

const (
	// CardsPerDeck is the number of cards in a single deck
	CardsPerDeck = 52

	// DefaultBufferSize is the number of cards left in place by Reshuffle
	DefaultBufferSize = 16

	// InitialCount is the running count of a fresh shoe and the value
	// ResetCount restores.
	InitialCount = 1
)

// ShoeOption configures a Shoe during creation.
type ShoeOption func(*Shoe)

// WithBufferSize sets how many cards Reshuffle leaves in place
func WithBufferSize(n int) ShoeOption {
	return func(s *Shoe) {
		if n < 0 {
			n = 0
		}
		s.bufferSize = n
	}
}

// WithCountSystem sets the running-count table
func WithCountSystem(cs CountSystem) ShoeOption {
	return func(s *Shoe) {
		s.system = cs.Clone()
	}
}

// Shoe is a pool of cards from one or more decks. Cards are dealt from the end
// of the remaining slice; dealt cards are kept so Reshuffle can return them.
// The shoe never gains or loses cards after construction.
type Shoe struct {
	remaining  []Card
	dealt      []Card
	count      int
	decks      int
	bufferSize int
	system     CountSystem
	rng        *rand.Rand
}

// NewShoe creates a shoe of decks*52 cards shuffled with rng.
func NewShoe(rng *rand.Rand, decks int, opts ...ShoeOption) *Shoe {
	if rng == nil {
		panic("rng is required for shoe creation")
	}
	if decks < 1 {
		panic("a shoe needs at least one deck")
	}

	cards := make([]Card, 0, decks*CardsPerDeck)
	for d := 0; d < decks; d++ {
		for _, rank := range Ranks {
			for i := 0; i < 4; i++ {
				cards = append(cards, NewCard(rank))
			}
		}
	}

	s := newShoe(rng, decks, cards, opts)
	rng.Shuffle(len(s.remaining), func(i, j int) {
		s.remaining[i], s.remaining[j] = s.remaining[j], s.remaining[i]
	})
	return s
}

// NewStackedShoe creates an unshuffled shoe that deals cards in exactly the
// given order. Reshuffle still uses rng. Used for replaying fixed sequences.
func NewStackedShoe(rng *rand.Rand, cards []Card, opts ...ShoeOption) *Shoe {
	if rng == nil {
		panic("rng is required for shoe creation")
	}
	stacked := make([]Card, len(cards))
	for i, c := range cards {
		stacked[len(cards)-1-i] = c
	}
	decks := (len(cards) + CardsPerDeck - 1) / CardsPerDeck
	return newShoe(rng, max(decks, 1), stacked, opts)
}

func newShoe(rng *rand.Rand, decks int, cards []Card, opts []ShoeOption) *Shoe {
	s := &Shoe{
		remaining:  cards,
		dealt:      make([]Card, 0, len(cards)),
		count:      InitialCount,
		decks:      decks,
		bufferSize: DefaultBufferSize,
		system:     DefaultCount.Clone(),
		rng:        rng,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Deal removes the next card from the shoe and adds it to the running count
func (s *Shoe) Deal() (Card, error) {
	n := len(s.remaining)
	if n == 0 {
		return Card{}, ErrEmptyShoe
	}
	card := s.remaining[n-1]
	s.remaining = s.remaining[:n-1]
	s.dealt = append(s.dealt, card)
	s.count += s.system.Increment(card.Rank)
	return card, nil
}

// Reshuffle returns the dealt cards to the shoe. The combined sequence is
// remaining followed by dealt; its first bufferSize cards keep their
// positions and the rest are shuffled. The running count is untouched.
func (s *Shoe) Reshuffle() {
	combined := make([]Card, 0, len(s.remaining)+len(s.dealt))
	combined = append(combined, s.remaining...)
	combined = append(combined, s.dealt...)

	cut := min(s.bufferSize, len(combined))
	tail := combined[cut:]
	s.rng.Shuffle(len(tail), func(i, j int) {
		tail[i], tail[j] = tail[j], tail[i]
	})

	s.remaining = combined
	s.dealt = s.dealt[:0]
}

// RunningCount returns the current running count
func (s *Shoe) RunningCount() int {
	return s.count
}

// ResetCount sets the running count back to InitialCount
func (s *Shoe) ResetCount() {
	s.count = InitialCount
}

// TrueCount returns the running count divided by the number of decks still
// to be dealt.
func (s *Shoe) TrueCount() float64 {
	decksLeft := float64(len(s.remaining)) / CardsPerDeck
	if decksLeft == 0 {
		return 0
	}
	return float64(s.count) / decksLeft
}

// Remaining returns the number of undealt cards
func (s *Shoe) Remaining() int {
	return len(s.remaining)
}

// DealtCount returns the number of cards dealt since the last reshuffle
func (s *Shoe) DealtCount() int {
	return len(s.dealt)
}

// Len returns the total number of cards owned by the shoe
func (s *Shoe) Len() int {
	return len(s.remaining) + len(s.dealt)
}

// Decks returns the number of decks the shoe was built from
func (s *Shoe) Decks() int {
	return s.decks
}

// BufferSize returns the number of cards Reshuffle leaves in place
func (s *Shoe) BufferSize() int {
	return s.bufferSize
}

// Cards returns a copy of the shoe in combined order (remaining then dealt)
func (s *Shoe) Cards() []Card {
	out := make([]Card, 0, s.Len())
	out = append(out, s.remaining...)
	return append(out, s.dealt...)
}
