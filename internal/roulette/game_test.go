package roulette

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/minicasino/internal/randutil"
	"github.com/lox/minicasino/internal/wager"
)

func TestStraightUpWin(t *testing.T) {
	t.Parallel()
	wallet := wager.NewWallet(1000, nil)
	g := New(wallet, WithRNG(randutil.NewSequence(17)))

	require.NoError(t, g.PlaceBet(StraightUp{Number: 17}, 10))
	assert.Equal(t, int64(990), wallet.Balance())

	result, s, err := g.Spin()
	require.NoError(t, err)
	assert.Equal(t, Pocket(17), result.Pocket)
	require.Len(t, result.Outcomes, 1)
	assert.True(t, result.Outcomes[0].Won)
	assert.Equal(t, int64(360), result.Outcomes[0].Winnings)

	assert.Equal(t, int64(1350), wallet.Balance())
	assert.Equal(t, wager.Roulette, s.Game)
	assert.Equal(t, int64(10), s.Staked)
	assert.Equal(t, int64(360), s.Credited)
	assert.True(t, s.Won())
	assert.Empty(t, g.Bets())
	assert.Same(t, result, g.LastResult())
}

func TestClearBetsRefunds(t *testing.T) {
	t.Parallel()
	wallet := wager.NewWallet(1000, nil)
	g := New(wallet)

	require.NoError(t, g.PlaceBet(Red{}, 20))
	require.NoError(t, g.PlaceBet(Dozen{Index: 2}, 30))
	assert.Equal(t, int64(950), wallet.Balance())

	refund, err := g.ClearBets()
	require.NoError(t, err)
	assert.Equal(t, int64(50), refund)
	assert.Equal(t, int64(1000), wallet.Balance())
	assert.Empty(t, g.Bets())
	assert.Equal(t, []Action{PlaceBet}, g.Actions())
}

func TestBetsAccumulateByIdentity(t *testing.T) {
	t.Parallel()
	g := New(wager.NewWallet(1000, nil))

	require.NoError(t, g.PlaceBet(StraightUp{Number: 5}, 10))
	require.NoError(t, g.PlaceBet(StraightUp{Number: 6}, 10))
	require.NoError(t, g.PlaceBet(StraightUp{Number: 5}, 15))
	require.NoError(t, g.PlaceBet(Red{}, 10))
	require.NoError(t, g.PlaceBet(Red{}, 10))
	require.NoError(t, g.PlaceBet(Column{Index: 1}, 10))
	require.NoError(t, g.PlaceBet(Column{Index: 2}, 10))

	assert.Equal(t, []PlacedBet{
		{Selection: StraightUp{Number: 5}, Amount: 25},
		{Selection: StraightUp{Number: 6}, Amount: 10},
		{Selection: Red{}, Amount: 20},
		{Selection: Column{Index: 1}, Amount: 10},
		{Selection: Column{Index: 2}, Amount: 10},
	}, g.Bets())
	assert.Equal(t, int64(75), g.TotalStaked())
}

func TestPlaceBetRejections(t *testing.T) {
	t.Parallel()
	wallet := wager.NewWallet(50, nil)
	g := New(wallet)

	tests := []struct {
		name   string
		sel    Selection
		amount int64
		want   error
	}{
		{"zero amount", Red{}, 0, wager.ErrInvalidBet},
		{"negative amount", Red{}, -5, wager.ErrInvalidBet},
		{"over balance", Red{}, 51, wager.ErrInsufficientFunds},
		{"number too high", StraightUp{Number: 37}, 10, wager.ErrInvalidBet},
		{"negative number", StraightUp{Number: -1}, 10, wager.ErrInvalidBet},
		{"dozen zero", Dozen{Index: 0}, 10, wager.ErrInvalidBet},
		{"column four", Column{Index: 4}, 10, wager.ErrInvalidBet},
		{"nil selection", nil, 10, wager.ErrInvalidBet},
	}
	for _, tt := range tests {
		err := g.PlaceBet(tt.sel, tt.amount)
		assert.True(t, errors.Is(err, tt.want), "%s: got %v", tt.name, err)
	}
	assert.Equal(t, int64(50), wallet.Balance())
	assert.Empty(t, g.Bets())
}

func TestSpinWithoutBets(t *testing.T) {
	t.Parallel()
	g := New(wager.NewWallet(100, nil))
	_, _, err := g.Spin()
	assert.ErrorIs(t, err, wager.ErrIllegalTransition)
}

func TestResolveLosingAndMixed(t *testing.T) {
	t.Parallel()
	wallet := wager.NewWallet(1000, nil)
	g := New(wallet)

	require.NoError(t, g.PlaceBet(Red{}, 10))
	require.NoError(t, g.PlaceBet(Odd{}, 10))
	require.NoError(t, g.PlaceBet(Dozen{Index: 1}, 10))
	require.NoError(t, g.PlaceBet(StraightUp{Number: 0}, 10))

	// 0 loses every outside bet but pays the straight.
	result, s, err := g.Resolve(0)
	require.NoError(t, err)
	assert.Equal(t, ColorGreen, result.Pocket.Color())
	assert.Equal(t, int64(360), s.Credited)
	assert.Equal(t, int64(40), s.Staked)
	assert.Equal(t, int64(320), s.Net())
	assert.Equal(t, int64(1320), wallet.Balance())

	require.NoError(t, g.PlaceBet(Black{}, 10))
	result, s, err = g.Resolve(1)
	require.NoError(t, err)
	assert.False(t, result.Outcomes[0].Won)
	assert.Equal(t, int64(0), s.Credited)
	assert.False(t, s.Won())
	assert.Equal(t, int64(1310), wallet.Balance())
}

func TestResolveRejectsPocketsOffTheWheel(t *testing.T) {
	t.Parallel()

	for _, pocket := range []Pocket{MaxPocket + 1, -1, -2} {
		wallet := wager.NewWallet(1000, nil)
		g := New(wallet)
		require.NoError(t, g.PlaceBet(Black{}, 10))
		require.NoError(t, g.PlaceBet(Even{}, 10))

		result, s, err := g.Resolve(pocket)
		require.ErrorIs(t, err, wager.ErrInvalidBet, "pocket %d", pocket)
		assert.Nil(t, result)
		assert.Nil(t, s)
		assert.Equal(t, int64(980), wallet.Balance())
		assert.Len(t, g.Bets(), 2, "bets stay on the table")
	}
}

func TestResolveWithoutBets(t *testing.T) {
	t.Parallel()
	wallet := wager.NewWallet(1000, nil)
	g := New(wallet)

	result, s, err := g.Resolve(17)
	require.ErrorIs(t, err, wager.ErrIllegalTransition)
	assert.Nil(t, result)
	assert.Nil(t, s)
	assert.Nil(t, g.LastResult())
	assert.Equal(t, int64(1000), wallet.Balance())
}

func TestMultiplierTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sel    Selection
		pocket Pocket
		mult   int64
		won    bool
	}{
		{StraightUp{Number: 17}, 17, 35, true},
		{StraightUp{Number: 17}, 18, 35, false},
		{StraightUp{Number: 0}, 0, 35, true},
		{Red{}, 1, 1, true},
		{Red{}, 2, 1, false},
		{Red{}, 0, 1, false},
		{Black{}, 2, 1, true},
		{Black{}, 0, 1, false},
		{Odd{}, 35, 1, true},
		{Odd{}, 0, 1, false},
		{Even{}, 36, 1, true},
		{Even{}, 0, 1, false},
		{Low{}, 1, 1, true},
		{Low{}, 18, 1, true},
		{Low{}, 19, 1, false},
		{Low{}, 0, 1, false},
		{High{}, 19, 1, true},
		{High{}, 36, 1, true},
		{High{}, 18, 1, false},
		{Dozen{Index: 1}, 12, 2, true},
		{Dozen{Index: 2}, 13, 2, true},
		{Dozen{Index: 2}, 24, 2, true},
		{Dozen{Index: 3}, 25, 2, true},
		{Dozen{Index: 3}, 24, 2, false},
		{Dozen{Index: 1}, 0, 2, false},
		{Column{Index: 1}, 34, 2, true},
		{Column{Index: 2}, 35, 2, true},
		{Column{Index: 3}, 36, 2, true},
		{Column{Index: 3}, 0, 2, false},
		{Column{Index: 1}, 36, 2, false},
	}
	for _, tt := range tests {
		m, won := Multiplier(tt.sel, tt.pocket)
		assert.Equal(t, tt.won, won, "%s on %d", tt.sel.Name(), tt.pocket)
		if won {
			assert.Equal(t, tt.mult, m, "%s on %d", tt.sel.Name(), tt.pocket)
		}
	}
}

func TestWheelColors(t *testing.T) {
	t.Parallel()
	var red, black int
	for p := Pocket(0); p <= MaxPocket; p++ {
		switch p.Color() {
		case ColorRed:
			red++
		case ColorBlack:
			black++
		}
	}
	assert.Equal(t, 18, red)
	assert.Equal(t, 18, black)
	assert.Equal(t, ColorGreen, Pocket(0).Color())
	assert.Equal(t, ColorRed, Pocket(32).Color())
	assert.Equal(t, ColorBlack, Pocket(33).Color())
}

func TestSpinWheelCoversAllPockets(t *testing.T) {
	t.Parallel()
	rng := randutil.New(99)
	seen := make(map[Pocket]int)
	for i := 0; i < 10000; i++ {
		p := SpinWheel(rng)
		require.GreaterOrEqual(t, int(p), 0)
		require.LessOrEqual(t, int(p), MaxPocket)
		seen[p]++
	}
	assert.Len(t, seen, MaxPocket+1)
}

func TestSelectionNames(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Number 17", StraightUp{Number: 17}.Name())
	assert.Equal(t, "Red", Red{}.Name())
	assert.Equal(t, "1-18", Low{}.Name())
	assert.Equal(t, "19-36", High{}.Name())
	assert.Equal(t, "2nd Dozen", Dozen{Index: 2}.Name())
	assert.Equal(t, "Column 3", Column{Index: 3}.Name())
}

func TestParseSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Selection
	}{
		{"17", StraightUp{Number: 17}},
		{"0", StraightUp{Number: 0}},
		{"RED", Red{}},
		{" black ", Black{}},
		{"odd", Odd{}},
		{"even", Even{}},
		{"1-18", Low{}},
		{"high", High{}},
		{"dozen2", Dozen{Index: 2}},
		{"column3", Column{Index: 3}},
	}
	for _, tt := range tests {
		got, err := ParseSelection(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "purple", "37", "-1", "dozen4", "column", "dozenx"} {
		_, err := ParseSelection(bad)
		assert.ErrorIs(t, err, wager.ErrInvalidBet, bad)
	}
}
