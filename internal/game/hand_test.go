package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/bjsim/internal/deck"
	"github.com/lox/bjsim/internal/randutil"
)

// hand builds a hand from a rank string such as "A 7 K"
func hand(t *testing.T, s string) *Hand {
	t.Helper()
	cards, err := deck.ParseCards(s)
	require.NoError(t, err)
	return NewHand(cards...)
}

func TestHandValue(t *testing.T) {
	tests := []struct {
		cards    string
		value    int
		softAces int
		busted   bool
	}{
		{cards: "T 7", value: 17},
		{cards: "A 6", value: 17, softAces: 1},
		{cards: "A A", value: 12, softAces: 1},
		{cards: "A A A", value: 13, softAces: 1},
		{cards: "A K", value: 21, softAces: 1},
		{cards: "A 5 K", value: 16},
		{cards: "A A K", value: 12},
		{cards: "A A 9", value: 21, softAces: 1},
		{cards: "K Q 5", value: 25, busted: true},
		{cards: "A K Q 5", value: 26, busted: true},
		{cards: "A A A A A A A A A A A", value: 21, softAces: 1},
		{cards: "A A A A A A A A A A A A", value: 12},
		{cards: "", value: 0},
	}
	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			h := hand(t, tt.cards)
			assert.Equal(t, tt.value, h.Value())
			assert.Equal(t, tt.softAces, h.SoftAces())
			assert.Equal(t, tt.softAces > 0, h.IsSoft())
			assert.Equal(t, tt.busted, h.IsBusted())
		})
	}
}

func TestHandValueIsIdempotent(t *testing.T) {
	h := hand(t, "A 9")
	assert.Equal(t, 20, h.Value())
	assert.Equal(t, 20, h.Value())

	h.Add(deck.NewCard(deck.Five))
	assert.Equal(t, 15, h.Value())
	assert.False(t, h.IsSoft())
	// Card values are never rewritten by valuing the hand
	for _, c := range h.Cards() {
		assert.Equal(t, c.Rank.Value(), c.Value())
	}
}

func TestHandValueNeverOver21WithSoftAces(t *testing.T) {
	rng := randutil.New(2024)
	for i := 0; i < 5000; i++ {
		n := 2 + rng.IntN(6)
		h := NewHand()
		for j := 0; j < n; j++ {
			h.Add(deck.NewCard(deck.Ranks[rng.IntN(len(deck.Ranks))]))
		}
		if h.Value() > 21 {
			require.Zero(t, h.SoftAces(), "hand %s is over 21 with a soft ace", h)
		}
		require.LessOrEqual(t, h.SoftAces(), 1, "hand %s", h)
	}
}

func TestIsBlackjack(t *testing.T) {
	tests := []struct {
		name        string
		cards       string
		split       bool
		tripleSeven bool
		want        bool
	}{
		{name: "ace first", cards: "A K", want: true},
		{name: "ace second", cards: "Q A", want: true},
		{name: "ace ten", cards: "A T", want: true},
		{name: "three card 21", cards: "7 4 K", want: false},
		{name: "split hand 21", cards: "A K", split: true, want: false},
		{name: "two card 20", cards: "K Q", want: false},
		{name: "triple seven off", cards: "7 7 7", want: false},
		{name: "triple seven on", cards: "7 7 7", tripleSeven: true, want: true},
		{name: "triple seven split", cards: "7 7 7", split: true, tripleSeven: true, want: false},
		{name: "rule on other 21", cards: "7 7 A 6", tripleSeven: true, want: false},
		{name: "rule on two card", cards: "A K", tripleSeven: true, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := hand(t, tt.cards)
			h.splitHand = tt.split
			assert.Equal(t, tt.want, h.IsBlackjack(tt.tripleSeven))
		})
	}
}

func TestIsSplitable(t *testing.T) {
	assert.True(t, hand(t, "8 8").IsSplitable())
	assert.True(t, hand(t, "A A").IsSplitable())
	assert.False(t, hand(t, "K Q").IsSplitable(), "same value, different rank")
	assert.False(t, hand(t, "8 8 8").IsSplitable())
	assert.False(t, hand(t, "8").IsSplitable())
}

func TestSplit(t *testing.T) {
	h := hand(t, "8 8")
	nh, err := h.Split()
	require.NoError(t, err)

	assert.Equal(t, "8", h.String())
	assert.Equal(t, "8", nh.String())
	assert.True(t, h.IsSplitHand())
	assert.True(t, nh.IsSplitHand())

	h.Add(deck.NewCard(deck.Three))
	assert.Equal(t, "8", nh.String(), "hands must not share cards")

	_, err = hand(t, "8 9").Split()
	assert.Error(t, err)
}

func TestFirst(t *testing.T) {
	_, ok := NewHand().First()
	assert.False(t, ok)

	c, ok := hand(t, "9 A").First()
	require.True(t, ok)
	assert.Equal(t, deck.Nine, c.Rank)
	assert.Equal(t, 1, hand(t, "9 A").Aces())
}
