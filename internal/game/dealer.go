package game

// Dealer plays a single hand by the fixed house rule: draw below 17.
type Dealer struct {
	hand      *Hand
	hitSoft17 bool
	bus       EventBus
}

// NewDealer creates a dealer. With hitSoft17 the dealer also draws to a soft 17.
func NewDealer(hitSoft17 bool, bus EventBus) *Dealer {
	return &Dealer{hitSoft17: hitSoft17, bus: bus}
}

// Reset gives the dealer a new hand
func (d *Dealer) Reset(hand *Hand) {
	d.hand = hand
}

// Hand returns the dealer's current hand
func (d *Dealer) Hand() *Hand {
	return d.hand
}

// Play draws cards until the house rule says stand
func (d *Dealer) Play(src CardSource) error {
	for d.shouldHit() {
		card, err := src.Deal()
		if err != nil {
			return err
		}
		d.hand.Add(card)
		if d.bus != nil && d.bus.HasSubscribers() {
			d.bus.Publish(MoveEvent{
				Move:  MoveDealerHit,
				Card:  &card,
				Hand:  d.hand.String(),
				Value: d.hand.Value(),
			})
		}
	}
	return nil
}

func (d *Dealer) shouldHit() bool {
	v := d.hand.Value()
	if v < 17 {
		return true
	}
	return d.hitSoft17 && v == 17 && d.hand.IsSoft()
}
