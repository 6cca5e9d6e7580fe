package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettleTable(t *testing.T) {
	const stake = 300.0

	tests := []struct {
		name        string
		player      string
		dealer      string
		surrender   bool
		split       bool
		tripleSeven bool
		outcome     Outcome
		win         float64
	}{
		{name: "surrendered", player: "T 6", dealer: "T 7", surrender: true, outcome: OutcomeSurrender, win: -0.5 * stake},
		{name: "player busted", player: "T 6 9", dealer: "6 T 8", outcome: OutcomeLost, win: -stake},
		{name: "both blackjack", player: "A K", dealer: "T A", outcome: OutcomePush, win: 0},
		{name: "player blackjack", player: "A K", dealer: "T Q", outcome: OutcomeBlackjack, win: 1.5 * stake},
		{name: "dealer busted", player: "T 2", dealer: "T 6 K", outcome: OutcomeWon, win: stake},
		{name: "player higher", player: "T 9", dealer: "T 8", outcome: OutcomeWon, win: stake},
		{name: "dealer higher", player: "T 8", dealer: "T 9", outcome: OutcomeLost, win: -stake},
		{name: "tie vs dealer blackjack", player: "7 7 7", dealer: "A K", outcome: OutcomeLost, win: -stake},
		{name: "tie", player: "T 8", dealer: "9 9", outcome: OutcomePush, win: 0},
		{name: "player 20 vs dealer blackjack", player: "K Q", dealer: "A K", outcome: OutcomeLost, win: -stake},
		{name: "split 21 vs dealer blackjack", player: "A K", split: true, dealer: "K A", outcome: OutcomeLost, win: -stake},
		{name: "split 21 vs dealer 20", player: "A K", split: true, dealer: "K Q", outcome: OutcomeWon, win: stake},
		{name: "triple seven blackjack", player: "7 7 7", dealer: "K Q", tripleSeven: true, outcome: OutcomeBlackjack, win: 1.5 * stake},
		{name: "both busted", player: "K Q 2", dealer: "K Q 5", outcome: OutcomeLost, win: -stake},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := hand(t, tt.player)
			h.surrendered = tt.surrender
			h.splitHand = tt.split
			d := hand(t, tt.dealer)

			s := Settle(h, d, stake, tt.tripleSeven)
			assert.Equal(t, tt.outcome, s.Outcome)
			assert.InDelta(t, tt.win, s.Win, 1e-9)
			assert.InDelta(t, stake, s.Bet, 1e-9)
		})
	}
}

func TestSettleDoubled(t *testing.T) {
	tests := []struct {
		name   string
		player string
		dealer string
		win    float64
	}{
		{name: "won", player: "5 6 T", dealer: "T 7", win: 2},
		{name: "lost", player: "5 6 2", dealer: "T 7", win: -2},
		{name: "push", player: "5 6 6", dealer: "T 7", win: 0},
		{name: "busted", player: "T 6 9", dealer: "T 7", win: -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := hand(t, tt.player)
			h.doubled = true
			s := Settle(h, hand(t, tt.dealer), 10, false)
			assert.InDelta(t, tt.win*10, s.Win, 1e-9)
			assert.InDelta(t, 20.0, s.Bet, 1e-9)
		})
	}
}

func TestOutcomeMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, OutcomeWon.Multiplier())
	assert.Equal(t, 1.5, OutcomeBlackjack.Multiplier())
	assert.Equal(t, 0.0, OutcomePush.Multiplier())
	assert.Equal(t, -1.0, OutcomeLost.Multiplier())
	assert.Equal(t, -0.5, OutcomeSurrender.Multiplier())
	assert.Len(t, Outcomes, 5)
}
