package game

// Outcome is the result of a hand against the dealer
type Outcome string

const (
	OutcomeWon       Outcome = "WON"
	OutcomeBlackjack Outcome = "WON 3:2"
	OutcomeLost      Outcome = "LOST"
	OutcomePush      Outcome = "PUSH"
	OutcomeSurrender Outcome = "SURRENDER"
)

// Outcomes lists every outcome in reporting order
var Outcomes = []Outcome{OutcomeBlackjack, OutcomeWon, OutcomePush, OutcomeLost, OutcomeSurrender}

// Multiplier returns the win per unit staked, before doubling
func (o Outcome) Multiplier() float64 {
	switch o {
	case OutcomeWon:
		return 1
	case OutcomeBlackjack:
		return 1.5
	case OutcomeLost:
		return -1
	case OutcomeSurrender:
		return -0.5
	default:
		return 0
	}
}

// Settlement is the money result of one hand
type Settlement struct {
	Outcome Outcome
	Win     float64 // net win, negative for a loss
	Bet     float64 // amount wagered
}

// Decide returns the outcome of hand against the dealer's final hand
func Decide(hand, dealer *Hand, tripleSeven bool) Outcome {
	if hand.IsSurrendered() {
		return OutcomeSurrender
	}
	if hand.IsBusted() {
		return OutcomeLost
	}

	dealerBlackjack := dealer.IsBlackjack(tripleSeven)
	if hand.IsBlackjack(tripleSeven) {
		if dealerBlackjack {
			return OutcomePush
		}
		return OutcomeBlackjack
	}

	hv, dv := hand.Value(), dealer.Value()
	switch {
	case dealer.IsBusted():
		return OutcomeWon
	case dv < hv:
		return OutcomeWon
	case dv > hv:
		return OutcomeLost
	case dealerBlackjack:
		// a dealer natural beats a player 21 that is not a natural
		return OutcomeLost
	default:
		return OutcomePush
	}
}

// Settle pays a hand staked at stake. A doubled hand wins or loses twice as
// much and wagers twice the stake.
func Settle(hand, dealer *Hand, stake float64, tripleSeven bool) Settlement {
	outcome := Decide(hand, dealer, tripleSeven)
	win := outcome.Multiplier()
	bet := stake
	if hand.IsDoubled() {
		win *= 2
		bet *= 2
	}
	return Settlement{
		Outcome: outcome,
		Win:     win * stake,
		Bet:     bet,
	}
}
