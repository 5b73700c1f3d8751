package deck

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/minicasino/internal/randutil"
)

func TestStandardDeckIsComplete(t *testing.T) {
	t.Parallel()
	cards := Standard()
	require.Len(t, cards, Size)

	seen := make(map[Card]bool, Size)
	for _, c := range cards {
		assert.False(t, seen[c], "duplicate card %v", c)
		seen[c] = true
	}
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			assert.True(t, seen[NewCard(suit, rank)], "missing %v", NewCard(suit, rank))
		}
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	t.Parallel()
	for seed := int64(1); seed <= 20; seed++ {
		d := New(randutil.New(seed))
		shuffled := d.Cards()
		require.Len(t, shuffled, Size)

		sorted := sortCards(shuffled)
		assert.Equal(t, sortCards(Standard()), sorted, "seed %d", seed)
		assert.NotEqual(t, Standard(), shuffled, "seed %d left deck in order", seed)
	}
}

func TestShuffleDeterministic(t *testing.T) {
	t.Parallel()
	a := New(randutil.New(42)).Cards()
	b := New(randutil.New(42)).Cards()
	assert.Equal(t, a, b)
}

func TestShuffleCanLeaveCardInPlace(t *testing.T) {
	t.Parallel()
	// A source that always picks the top of the range swaps each card with itself.
	cards := Standard()
	Shuffle(cards, randutil.NewSequence(-1))
	assert.Equal(t, Standard(), cards)
}

func TestShuffleFirstPositionUniform(t *testing.T) {
	t.Parallel()
	const trials = 52000
	rng := randutil.New(7)
	counts := make(map[Card]int)
	for range trials {
		cards := Standard()
		Shuffle(cards, rng)
		counts[cards[0]]++
	}
	require.Len(t, counts, Size)
	for card, n := range counts {
		// expected 1000 per card; allow a generous band
		assert.InDelta(t, 1000, n, 200, "card %v", card)
	}
}

func TestDrawSequential(t *testing.T) {
	t.Parallel()
	d := NewFromCards(MustParseCards("AsKsQsJsTs")...)

	first, err := d.Draw(2)
	require.NoError(t, err)
	assert.Equal(t, MustParseCards("AsKs"), first)
	assert.Equal(t, 3, d.Remaining())

	rest, err := d.Draw(3)
	require.NoError(t, err)
	assert.Equal(t, MustParseCards("QsJsTs"), rest)
	assert.Equal(t, 0, d.Remaining())
}

func TestDrawExhausted(t *testing.T) {
	t.Parallel()
	d := NewFromCards(MustParseCards("AsKs")...)

	_, err := d.Draw(3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDeckExhausted))
	assert.Equal(t, 2, d.Remaining(), "failed draw must not consume cards")

	assert.Panics(t, func() { d.MustDraw(3) })
}

func TestDrawNeverRepeats(t *testing.T) {
	t.Parallel()
	d := New(randutil.New(99))
	seen := make(map[Card]bool)
	for d.Remaining() > 0 {
		c := d.MustDraw(1)[0]
		require.False(t, seen[c], "card %v dealt twice", c)
		seen[c] = true
	}
	assert.Len(t, seen, Size)
}

func sortCards(cards []Card) []Card {
	out := slices.Clone(cards)
	slices.SortFunc(out, func(a, b Card) int {
		if a.Suit != b.Suit {
			return int(a.Suit) - int(b.Suit)
		}
		return int(a.Rank) - int(b.Rank)
	})
	return out
}
