package game

// Rules are the table parameters that change how rounds are played and paid.
type Rules struct {
	// Players is the number of seats dealt into every round
	Players int
	// BaseStake is the wager per hand when the count is not favourable
	BaseStake float64
	// BetSpread multiplies BaseStake when the running count exceeds CountThreshold
	BetSpread float64
	// CountThreshold is the running count above which the spread is bet
	CountThreshold int
	// TripleSeven counts a non-split 7-7-7 as a blackjack
	TripleSeven bool
	// DealerHitsSoft17 makes the dealer hit a soft 17 instead of standing on
	// every 17
	DealerHitsSoft17 bool
}

// DefaultRules returns the parameters the simulator was built around
func DefaultRules() Rules {
	return Rules{
		Players:        3,
		BaseStake:      300,
		BetSpread:      1.0,
		CountThreshold: 3,
	}
}

// StakeFor returns the per-hand stake for a round that starts with the given
// running count.
func (r Rules) StakeFor(runningCount int) float64 {
	if runningCount > r.CountThreshold {
		return r.BaseStake * r.BetSpread
	}
	return r.BaseStake
}
