package game

import (
	"errors"
	"fmt"

	"github.com/lox/bjsim/internal/deck"
	"github.com/lox/bjsim/internal/strategy"
)

// CardSource deals cards. *deck.Shoe implements it.
type CardSource interface {
	Deal() (deck.Card, error)
}

// Player plays one or more hands per round by following strategy tables.
type Player struct {
	Name string

	hands      []*Hand
	dealerHand *Hand
	tables     *strategy.Tables
	rules      Rules
	bus        EventBus
}

// NewPlayer creates a player that decides with tables. bus may be nil.
func NewPlayer(name string, tables *strategy.Tables, rules Rules, bus EventBus) *Player {
	if tables == nil {
		panic("strategy tables are required")
	}
	return &Player{
		Name:   name,
		tables: tables,
		rules:  rules,
		bus:    bus,
	}
}

// Reset gives the player a single starting hand and the dealer hand it plays
// against. The dealer hand is only read.
func (p *Player) Reset(hand, dealerHand *Hand) {
	p.hands = []*Hand{hand}
	p.dealerHand = dealerHand
}

// Hands returns the player's hands in the order they were created
func (p *Player) Hands() []*Hand {
	return p.hands
}

// Play plays every hand to completion. Hands created by splits are queued
// behind the hand they came from, so the parent hand is always finished
// first; the order matters because it decides which cards each hand draws.
func (p *Player) Play(src CardSource) error {
	if p.dealerHand == nil {
		return errors.New("player has no dealer hand")
	}
	up, ok := p.dealerHand.First()
	if !ok {
		return errors.New("dealer has no up card")
	}

	for i := 0; i < len(p.hands); i++ {
		if err := p.playHand(i, up.Rank, src); err != nil {
			return fmt.Errorf("%s hand %d: %w", p.Name, i+1, err)
		}
	}
	return nil
}

func (p *Player) playHand(index int, up deck.Rank, src CardSource) error {
	hand := p.hands[index]

	if hand.Len() < 2 {
		if err := p.draw(index, hand, MoveSplitCard, src); err != nil {
			return err
		}
	}

	for !hand.IsBusted() && !hand.IsBlackjack(p.rules.TripleSeven) {
		action, err := p.decide(hand, up)
		if err != nil {
			return err
		}

		switch {
		case action == strategy.Double && hand.Len() != 2,
			action == strategy.Surrender && hand.Len() != 2,
			action == strategy.Split && !canSplit(hand):
			action = strategy.Hit
		}

		switch action {
		case strategy.Double:
			hand.doubled = true
			return p.draw(index, hand, MoveDouble, src)

		case strategy.Surrender:
			hand.surrendered = true
			p.emit(index, hand, MoveSurrender, nil)
			return nil

		case strategy.Hit:
			if err := p.draw(index, hand, MoveHit, src); err != nil {
				return err
			}

		case strategy.Split:
			newHand, err := hand.Split()
			if err != nil {
				return err
			}
			p.hands = append(p.hands, newHand)
			p.emit(index, hand, MoveSplit, nil)
			if err := p.draw(index, hand, MoveSplitCard, src); err != nil {
				return err
			}

		case strategy.Stand:
			p.emit(index, hand, MoveStand, nil)
			return nil

		default:
			return fmt.Errorf("unknown action %d", action)
		}
	}
	return nil
}

// decide looks the hand up in the soft table if it is soft, the pair table if
// it can be split, and the hard table otherwise.
func (p *Player) decide(hand *Hand, up deck.Rank) (strategy.Action, error) {
	switch {
	case hand.IsSoft():
		return p.tables.Soft(hand.Value(), up)
	case hand.IsSplitable():
		first, _ := hand.First()
		return p.tables.Pair(first.Value(), up)
	default:
		return p.tables.Hard(hand.Value(), up)
	}
}

// canSplit allows any pair except re-splitting aces
func canSplit(hand *Hand) bool {
	if !hand.IsSplitable() {
		return false
	}
	first, _ := hand.First()
	return !(hand.IsSplitHand() && first.IsAce())
}

func (p *Player) draw(index int, hand *Hand, move Move, src CardSource) error {
	card, err := src.Deal()
	if err != nil {
		return err
	}
	hand.Add(card)
	p.emit(index, hand, move, &card)
	return nil
}

func (p *Player) emit(index int, hand *Hand, move Move, card *deck.Card) {
	if p.bus == nil || !p.bus.HasSubscribers() {
		return
	}
	p.bus.Publish(MoveEvent{
		Player:    p.Name,
		HandIndex: index,
		Move:      move,
		Card:      card,
		Hand:      hand.String(),
		Value:     hand.Value(),
	})
}
