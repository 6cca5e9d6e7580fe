// Package strategy holds the playing-strategy tables consulted by players.
//
// A strategy is three tables keyed by a hand key and the dealer's up-card
// rank: HARD (hand total), SOFT (soft hand total) and PAIR (the value of one
// card of the pair). Tables are immutable once built and safe to share
// between goroutines.
package strategy

import (
	"errors"
	"fmt"

	"github.com/lox/bjsim/internal/deck"
)

// ErrMissingEntry is wrapped by every lookup failure. A missing entry is a
// configuration error and the simulation cannot continue.
var ErrMissingEntry = errors.New("missing strategy entry")

// Kind identifies one of the three tables
type Kind string

const (
	KindHard Kind = "hard"
	KindSoft Kind = "soft"
	KindPair Kind = "pair"
)

// MissingEntryError reports the key that had no action
type MissingEntryError struct {
	Kind   Kind
	Key    int
	UpCard deck.Rank
}

func (e *MissingEntryError) Error() string {
	return fmt.Sprintf("%s: %s table has no action for %d vs dealer %s", ErrMissingEntry, e.Kind, e.Key, e.UpCard.Name())
}

func (e *MissingEntryError) Unwrap() error {
	return ErrMissingEntry
}

// Table maps a hand key and dealer up-card rank to an action
type Table map[int]map[deck.Rank]Action

// Tables is an immutable strategy: hard totals, soft totals and pairs.
type Tables struct {
	hard Table
	soft Table
	pair Table
}

// New builds Tables from the three raw tables. The input is copied so later
// changes by the caller have no effect.
func New(hard, soft, pair Table) *Tables {
	return &Tables{
		hard: hard.clone(),
		soft: soft.clone(),
		pair: pair.clone(),
	}
}

func (t Table) clone() Table {
	out := make(Table, len(t))
	for key, row := range t {
		r := make(map[deck.Rank]Action, len(row))
		for up, a := range row {
			r[up] = a
		}
		out[key] = r
	}
	return out
}

// Hard returns the action for a hard total against the dealer up card
func (t *Tables) Hard(total int, up deck.Rank) (Action, error) {
	return t.hard.lookup(KindHard, total, up)
}

// Soft returns the action for a soft total against the dealer up card
func (t *Tables) Soft(total int, up deck.Rank) (Action, error) {
	return t.soft.lookup(KindSoft, total, up)
}

// Pair returns the action for a pair whose cards are worth value each
func (t *Tables) Pair(value int, up deck.Rank) (Action, error) {
	return t.pair.lookup(KindPair, value, up)
}

func (t Table) lookup(kind Kind, key int, up deck.Rank) (Action, error) {
	if row, ok := t[key]; ok {
		if a, ok := row[up]; ok {
			return a, nil
		}
	}
	return 0, &MissingEntryError{Kind: kind, Key: key, UpCard: up}
}

// Keys for which a strategy must define every dealer up card. Hard 4 is
// always a pair of twos and a pair of aces is always soft 12, so neither
// hard 4 nor pair 11 is ever looked up.
var (
	requiredHard = keyRange(5, 21)
	requiredSoft = keyRange(12, 21)
	requiredPair = keyRange(2, 10)
)

func keyRange(lo, hi int) []int {
	keys := make([]int, 0, hi-lo+1)
	for k := lo; k <= hi; k++ {
		keys = append(keys, k)
	}
	return keys
}

// Validate checks that every reachable key has an action for every dealer up
// card, reporting all gaps at once.
func (t *Tables) Validate() error {
	var errs []error
	check := func(kind Kind, table Table, keys []int) {
		for _, key := range keys {
			for _, up := range deck.Ranks {
				if _, err := table.lookup(kind, key, up); err != nil {
					errs = append(errs, err)
				}
			}
		}
	}
	check(KindHard, t.hard, requiredHard)
	check(KindSoft, t.soft, requiredSoft)
	check(KindPair, t.pair, requiredPair)
	return errors.Join(errs...)
}
