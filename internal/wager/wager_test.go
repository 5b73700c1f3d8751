package wager

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletDebitCredit(t *testing.T) {
	t.Parallel()
	w := NewWallet(100, nil)

	require.True(t, w.TryDebit(40))
	assert.Equal(t, int64(60), w.Balance())

	assert.False(t, w.TryDebit(61), "overdraw must fail")
	assert.Equal(t, int64(60), w.Balance(), "failed debit leaves balance unchanged")

	assert.False(t, w.TryDebit(0))
	assert.False(t, w.TryDebit(-5))

	w.Credit(15)
	assert.Equal(t, int64(75), w.Balance())
	w.Credit(-10)
	assert.Equal(t, int64(75), w.Balance())

	require.True(t, w.TryDebit(75))
	assert.Equal(t, int64(0), w.Balance())

	w.Reset()
	assert.Equal(t, int64(100), w.Balance())
}

func TestWalletConcurrentDebitsNeverOverdraw(t *testing.T) {
	t.Parallel()
	w := NewWallet(1000, nil)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for range 200 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if w.TryDebit(10) {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, succeeded)
	assert.Equal(t, int64(0), w.Balance())
}

func TestScale(t *testing.T) {
	tests := []struct {
		amount int64
		mult   string
		want   int64
	}{
		{50, "2.5", 125},
		{25, "2.5", 62},
		{10, "2", 20},
		{0, "2.5", 0},
	}
	for _, tt := range tests {
		got := Scale(tt.amount, decimal.RequireFromString(tt.mult))
		assert.Equal(t, tt.want, got, "%d × %s", tt.amount, tt.mult)
	}
}

func TestSettlementNet(t *testing.T) {
	id := uuid.New()
	win := NewSettlement(id, Roulette, "win", 10, 360)
	assert.Equal(t, int64(350), win.Net())
	assert.True(t, win.Won())

	push := NewSettlement(id, Blackjack, "push", 50, 50)
	assert.Zero(t, push.Net())
	assert.False(t, push.Won())

	loss := NewSettlement(id, Slots, "no win", 50, 0)
	assert.Equal(t, int64(-50), loss.Net())
}

func TestParseGame(t *testing.T) {
	for _, g := range Games {
		parsed, err := ParseGame(g.String())
		require.NoError(t, err)
		assert.Equal(t, g, parsed)
	}
	_, err := ParseGame("baccarat")
	assert.Error(t, err)
}

type stateName string

func (s stateName) String() string { return string(s) }

func TestIllegalTransition(t *testing.T) {
	err := IllegalTransition("hit", stateName("finished"))
	assert.True(t, errors.Is(err, ErrIllegalTransition))
	assert.Contains(t, err.Error(), "cannot hit while finished")
}

func TestLimitsCheck(t *testing.T) {
	t.Parallel()
	l := Limits{Min: 10, Max: 100}
	assert.NoError(t, l.Check(10))
	assert.NoError(t, l.Check(100))
	assert.ErrorIs(t, l.Check(9), ErrInvalidBet)
	assert.ErrorIs(t, l.Check(101), ErrInvalidBet)
	assert.NoError(t, Limits{Min: 1}.Check(1_000_000))
}
