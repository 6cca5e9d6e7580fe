package game

import (
	"github.com/charmbracelet/log"

	"github.com/lox/bjsim/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for round events. Events only narrate what happened;
// nothing in decision making or settlement depends on them.
const (
	EventTypeRoundStart  EventType = "round_start"
	EventTypeInitialDeal EventType = "initial_deal"
	EventTypeMove        EventType = "move"
	EventTypeHandSettled EventType = "hand_settled"
	EventTypeRoundEnd    EventType = "round_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a round
type GameEvent interface {
	EventType() EventType
}

// Move names a single step taken on a hand
type Move string

const (
	MoveHit       Move = "hit"
	MoveStand     Move = "stand"
	MoveDouble    Move = "double"
	MoveSurrender Move = "surrender"
	MoveSplit     Move = "split"
	// MoveSplitCard is the second card dealt to a hand created by a split
	MoveSplitCard Move = "split_card"
	MoveDealerHit Move = "dealer_hit"
)

// RoundStartEvent is published once the stake for a round is fixed
type RoundStartEvent struct {
	Round        int
	RunningCount int // count the stake was sized from
	Stake        float64
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }

// InitialDealEvent is published after the opening cards are dealt
type InitialDealEvent struct {
	Round       int
	DealerCard  deck.Card
	PlayerHands map[string]string
}

func (e InitialDealEvent) EventType() EventType { return EventTypeInitialDeal }

// MoveEvent is published for every move on a hand. Card is the card drawn,
// if any.
type MoveEvent struct {
	Player    string // empty for the dealer
	HandIndex int
	Move      Move
	Card      *deck.Card
	Hand      string
	Value     int
}

func (e MoveEvent) EventType() EventType { return EventTypeMove }

// HandSettledEvent is published for every player hand at the end of a round
type HandSettledEvent struct {
	Player     string
	HandIndex  int
	Hand       string
	Value      int
	Blackjack  bool
	Busted     bool
	Soft       bool
	Split      bool
	Doubled    bool
	Surrender  bool
	Settlement Settlement
}

func (e HandSettledEvent) EventType() EventType { return EventTypeHandSettled }

// RoundEndEvent is published after every hand has been settled
type RoundEndEvent struct {
	Round       int
	DealerHand  string
	DealerValue int
	Money       float64
	Bet         float64
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
	HasSubscribers() bool
}

// SimpleEventBus is a basic in-memory event bus implementation
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// HasSubscribers lets publishers skip building events nobody will read
func (bus *SimpleEventBus) HasSubscribers() bool {
	return len(bus.subscribers) > 0
}

// LogSubscriber narrates rounds through a logger at debug level
type LogSubscriber struct {
	logger *log.Logger
}

// NewLogSubscriber creates a subscriber that writes to logger
func NewLogSubscriber(logger *log.Logger) *LogSubscriber {
	return &LogSubscriber{logger: logger}
}

// OnEvent implements EventSubscriber
func (s *LogSubscriber) OnEvent(event GameEvent) {
	switch e := event.(type) {
	case RoundStartEvent:
		s.logger.Debug("Start a new game", "round", e.Round, "count", e.RunningCount, "stake", e.Stake)
	case InitialDealEvent:
		s.logger.Debug("Dealt", "dealer", e.DealerCard, "players", e.PlayerHands)
	case MoveEvent:
		who := e.Player
		if who == "" {
			who = "dealer"
		}
		kv := []any{"who", who, "hand", e.Hand, "value", e.Value}
		if e.Card != nil {
			kv = append(kv, "card", e.Card.String())
		}
		s.logger.Debug(string(e.Move), kv...)
	case HandSettledEvent:
		s.logger.Debug("Settled",
			"player", e.Player,
			"hand", e.Hand,
			"value", e.Value,
			"outcome", e.Settlement.Outcome,
			"win", e.Settlement.Win,
			"bet", e.Settlement.Bet,
			"busted", e.Busted,
			"blackjack", e.Blackjack,
			"split", e.Split,
			"soft", e.Soft,
			"surrender", e.Surrender,
			"doubled", e.Doubled,
		)
	case RoundEndEvent:
		s.logger.Debug("Round finished",
			"round", e.Round,
			"dealer", e.DealerHand,
			"dealer_value", e.DealerValue,
			"win", e.Money,
			"bet", e.Bet,
		)
	}
}
