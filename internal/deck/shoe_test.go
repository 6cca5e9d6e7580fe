package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/bjsim/internal/randutil"
)

func rankCounts(cards []Card) map[Rank]int {
	counts := make(map[Rank]int)
	for _, c := range cards {
		counts[c.Rank]++
	}
	return counts
}

func TestNewShoe(t *testing.T) {
	s := NewShoe(randutil.New(1), 6)

	assert.Equal(t, 6*CardsPerDeck, s.Len())
	assert.Equal(t, 6*CardsPerDeck, s.Remaining())
	assert.Equal(t, 0, s.DealtCount())
	assert.Equal(t, InitialCount, s.RunningCount())
	assert.Equal(t, DefaultBufferSize, s.BufferSize())

	for _, r := range Ranks {
		assert.Equal(t, 4*6, rankCounts(s.Cards())[r], r.Name())
	}
}

func TestNewShoeIsSeedable(t *testing.T) {
	a := NewShoe(randutil.New(99), 2)
	b := NewShoe(randutil.New(99), 2)
	c := NewShoe(randutil.New(100), 2)

	assert.Equal(t, a.Cards(), b.Cards())
	assert.NotEqual(t, a.Cards(), c.Cards())
}

func TestStackedShoeDealOrderAndCount(t *testing.T) {
	cards, err := ParseCards("A 5 K 7")
	require.NoError(t, err)
	s := NewStackedShoe(randutil.New(1), cards)

	want := []struct {
		rank  Rank
		count int
	}{
		{Ace, -1},  // 1 - 2
		{Five, 1},  // +2
		{King, 0},  // -1
		{Seven, 0}, // 0
	}
	for i, w := range want {
		c, err := s.Deal()
		require.NoError(t, err)
		assert.Equal(t, w.rank, c.Rank, "card %d", i)
		assert.Equal(t, w.count, s.RunningCount(), "count after card %d", i)
		assert.Equal(t, 4, s.Len())
	}

	_, err = s.Deal()
	assert.ErrorIs(t, err, ErrEmptyShoe)
	assert.Equal(t, 4, s.DealtCount())

	s.ResetCount()
	assert.Equal(t, InitialCount, s.RunningCount())
}

func TestCustomCountSystem(t *testing.T) {
	s := NewStackedShoe(randutil.New(1), []Card{{Ace}, {Two}}, WithCountSystem(HiLoCount))
	_, err := s.Deal()
	require.NoError(t, err)
	assert.Equal(t, 0, s.RunningCount())
	_, err = s.Deal()
	require.NoError(t, err)
	assert.Equal(t, 1, s.RunningCount())
}

func TestReshufflePreservesCardsAndBuffer(t *testing.T) {
	s := NewShoe(randutil.New(7), 2, WithBufferSize(16))
	for i := 0; i < 30; i++ {
		_, err := s.Deal()
		require.NoError(t, err)
	}
	countBefore := s.RunningCount()
	before := s.Cards()

	s.Reshuffle()
	after := s.Cards()

	require.Len(t, after, len(before))
	assert.Equal(t, rankCounts(before), rankCounts(after))
	assert.Equal(t, before[:16], after[:16])
	assert.Equal(t, 0, s.DealtCount())
	assert.Equal(t, len(before), s.Remaining())
	assert.Equal(t, countBefore, s.RunningCount(), "reshuffle must not touch the count")
}

func TestReshuffleReturnsDealtCards(t *testing.T) {
	cards, err := ParseCards("2 3 4 5 6 7")
	require.NoError(t, err)
	s := NewStackedShoe(randutil.New(3), cards, WithBufferSize(2))

	for i := 0; i < 6; i++ {
		_, err := s.Deal()
		require.NoError(t, err)
	}
	require.Equal(t, 0, s.Remaining())

	s.Reshuffle()
	assert.Equal(t, 6, s.Remaining())
	after := s.Cards()
	// Combined order before the shuffle was the dealt order: 2 3 4 5 6 7
	assert.Equal(t, []Card{{Two}, {Three}}, after[:2])
	assert.ElementsMatch(t, cards, after)
}

func TestBufferLargerThanShoe(t *testing.T) {
	cards, err := ParseCards("2 3 4")
	require.NoError(t, err)
	s := NewStackedShoe(randutil.New(3), cards, WithBufferSize(100))
	_, err = s.Deal()
	require.NoError(t, err)
	before := s.Cards()
	s.Reshuffle()
	assert.Equal(t, before, s.Cards())
}

func TestTrueCount(t *testing.T) {
	s := NewShoe(randutil.New(1), 1)
	assert.InDelta(t, 1.0, s.TrueCount(), 1e-9)

	empty := NewStackedShoe(randutil.New(1), nil)
	assert.Equal(t, 0.0, empty.TrueCount())
}
