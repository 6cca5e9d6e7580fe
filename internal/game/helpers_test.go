package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/bjsim/internal/deck"
	"github.com/lox/bjsim/internal/randutil"
	"github.com/lox/bjsim/internal/strategy"
)

// entry is a single strategy-table cell
type entry struct {
	key    int
	up     deck.Rank
	action strategy.Action
}

func e(key int, up deck.Rank, action strategy.Action) entry {
	return entry{key: key, up: up, action: action}
}

// tablesOf builds tables holding only the given cells
func tablesOf(hard, soft, pair []entry) *strategy.Tables {
	build := func(entries []entry) strategy.Table {
		t := strategy.Table{}
		for _, en := range entries {
			if t[en.key] == nil {
				t[en.key] = map[deck.Rank]strategy.Action{}
			}
			t[en.key][en.up] = en.action
		}
		return t
	}
	return strategy.New(build(hard), build(soft), build(pair))
}

// stackedShoe deals the given ranks in order
func stackedShoe(t *testing.T, cards string) *deck.Shoe {
	t.Helper()
	parsed, err := deck.ParseCards(cards)
	require.NoError(t, err)
	return deck.NewStackedShoe(randutil.New(1), parsed)
}

// recorder captures every published event
type recorder struct {
	events []GameEvent
}

func (r *recorder) OnEvent(event GameEvent) {
	r.events = append(r.events, event)
}

// moves returns "who:move" for every MoveEvent, in order
func (r *recorder) moves() []string {
	var out []string
	for _, ev := range r.events {
		if m, ok := ev.(MoveEvent); ok {
			who := m.Player
			if who == "" {
				who = "dealer"
			}
			out = append(out, who+":"+string(m.Move))
		}
	}
	return out
}
