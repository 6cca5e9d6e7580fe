package game

import (
	"fmt"

	"github.com/lox/bjsim/internal/deck"
	"github.com/lox/bjsim/internal/strategy"
)

// GameOption configures a Game during creation.
type GameOption func(*Game)

// WithEventBus publishes round events on bus
func WithEventBus(bus EventBus) GameOption {
	return func(g *Game) {
		g.bus = bus
	}
}

// RoundResult is the money outcome of one round across every player hand
type RoundResult struct {
	Round        int
	Money        float64 // net win over all hands
	Bet          float64 // total wagered over all hands
	Hands        int     // hands settled, including hands created by splits
	Stake        float64 // per-hand stake for the round
	RunningCount int     // count the stake was sized from
	Outcomes     map[Outcome]int
}

// Game plays rounds of blackjack between a dealer and a fixed set of players
// using one shoe for its whole lifetime.
type Game struct {
	shoe    *deck.Shoe
	rules   Rules
	dealer  *Dealer
	players []*Player
	bus     EventBus
	round   int
	stake   float64
}

// NewGame creates a game that deals from shoe and plays by tables and rules.
func NewGame(shoe *deck.Shoe, tables *strategy.Tables, rules Rules, opts ...GameOption) *Game {
	if shoe == nil {
		panic("shoe is required")
	}
	if rules.Players < 1 {
		panic("at least one player is required")
	}

	g := &Game{
		shoe:  shoe,
		rules: rules,
		bus:   NewEventBus(),
		stake: rules.BaseStake,
	}
	for _, opt := range opts {
		opt(g)
	}

	g.dealer = NewDealer(rules.DealerHitsSoft17, g.bus)
	g.players = make([]*Player, rules.Players)
	for i := range g.players {
		g.players[i] = NewPlayer(fmt.Sprintf("Player%d", i+1), tables, rules, g.bus)
	}
	return g
}

// Players returns the players in seat order
func (g *Game) Players() []*Player {
	return g.players
}

// Dealer returns the dealer
func (g *Game) Dealer() *Dealer {
	return g.dealer
}

// Shoe returns the shoe the game deals from
func (g *Game) Shoe() *deck.Shoe {
	return g.shoe
}

// Stake returns the per-hand stake of the latest round
func (g *Game) Stake() float64 {
	return g.stake
}

// EventBus returns the bus round events are published on
func (g *Game) EventBus() EventBus {
	return g.bus
}

// PlayRound sizes the bet, deals, lets every player and then the dealer play,
// settles each player hand and reshuffles the shoe for the next round.
//
// The stake is sized from the count left by the previous round and the count
// is reset only afterwards, so the bet always trails the count by a round.
func (g *Game) PlayRound() (RoundResult, error) {
	g.round++
	count := g.shoe.RunningCount()
	g.stake = g.rules.StakeFor(count)
	g.shoe.ResetCount()

	g.publish(func() GameEvent {
		return RoundStartEvent{Round: g.round, RunningCount: count, Stake: g.stake}
	})

	if err := g.deal(); err != nil {
		return RoundResult{}, fmt.Errorf("round %d: deal: %w", g.round, err)
	}

	for _, p := range g.players {
		if err := p.Play(g.shoe); err != nil {
			return RoundResult{}, fmt.Errorf("round %d: %w", g.round, err)
		}
	}
	if err := g.dealer.Play(g.shoe); err != nil {
		return RoundResult{}, fmt.Errorf("round %d: dealer: %w", g.round, err)
	}

	result := g.settle()
	result.RunningCount = count
	g.shoe.Reshuffle()
	return result, nil
}

// deal gives two cards to each player in seat order, then a single card to
// the dealer. The dealer draws the rest of its hand after the players finish.
func (g *Game) deal() error {
	hands := make([]*Hand, len(g.players))
	for i := range g.players {
		first, err := g.shoe.Deal()
		if err != nil {
			return err
		}
		second, err := g.shoe.Deal()
		if err != nil {
			return err
		}
		hands[i] = NewHand(first, second)
	}

	up, err := g.shoe.Deal()
	if err != nil {
		return err
	}
	dealerHand := NewHand(up)
	g.dealer.Reset(dealerHand)
	for i, p := range g.players {
		p.Reset(hands[i], dealerHand)
	}

	g.publish(func() GameEvent {
		dealt := make(map[string]string, len(g.players))
		for _, p := range g.players {
			dealt[p.Name] = p.Hands()[0].String()
		}
		return InitialDealEvent{Round: g.round, DealerCard: up, PlayerHands: dealt}
	})
	return nil
}

func (g *Game) settle() RoundResult {
	result := RoundResult{
		Round:    g.round,
		Stake:    g.stake,
		Outcomes: make(map[Outcome]int, len(Outcomes)),
	}
	dealerHand := g.dealer.Hand()

	for _, p := range g.players {
		for i, hand := range p.Hands() {
			s := Settle(hand, dealerHand, g.stake, g.rules.TripleSeven)
			result.Money += s.Win
			result.Bet += s.Bet
			result.Hands++
			result.Outcomes[s.Outcome]++

			g.publish(func() GameEvent {
				return HandSettledEvent{
					Player:     p.Name,
					HandIndex:  i,
					Hand:       hand.String(),
					Value:      hand.Value(),
					Blackjack:  hand.IsBlackjack(g.rules.TripleSeven),
					Busted:     hand.IsBusted(),
					Soft:       hand.IsSoft(),
					Split:      hand.IsSplitHand(),
					Doubled:    hand.IsDoubled(),
					Surrender:  hand.IsSurrendered(),
					Settlement: s,
				}
			})
		}
	}

	g.publish(func() GameEvent {
		return RoundEndEvent{
			Round:       g.round,
			DealerHand:  dealerHand.String(),
			DealerValue: dealerHand.Value(),
			Money:       result.Money,
			Bet:         result.Bet,
		}
	})
	return result
}

// publish builds and sends an event only when someone is listening
func (g *Game) publish(build func() GameEvent) {
	if g.bus == nil || !g.bus.HasSubscribers() {
		return
	}
	g.bus.Publish(build())
}
