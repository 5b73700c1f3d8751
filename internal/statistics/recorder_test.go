package statistics

import (
	"sync"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/minicasino/internal/wager"
)

func TestRecorderStreaks(t *testing.T) {
	t.Parallel()
	r := NewRecorder()

	r.RecordRound(wager.Slots, true, 10)
	r.RecordRound(wager.Slots, true, 10)
	r.RecordRound(wager.Blackjack, false, -10)
	r.RecordRound(wager.Roulette, true, 35)
	r.RecordRound(wager.Roulette, true, 5)
	r.RecordRound(wager.Roulette, true, 5)

	snap := r.Snapshot()
	assert.Equal(t, 6, snap.GamesPlayed)
	assert.Equal(t, 5, snap.TotalWins)
	assert.Equal(t, 3, snap.CurrentStreak)
	assert.Equal(t, 3, snap.BestStreak)
	assert.Equal(t, int64(45), snap.TotalNet)
	assert.Equal(t, map[wager.Game]int{wager.Slots: 2, wager.Blackjack: 1, wager.Roulette: 3}, snap.PlayCounts)
	assert.True(t, snap.HasFavourite)
	assert.Equal(t, wager.Roulette, snap.Favourite)
	assert.InDelta(t, 5.0/6.0, snap.WinRate(), 1e-9)

	r.RecordRound(wager.Poker, false, 0)
	snap = r.Snapshot()
	assert.Equal(t, 0, snap.CurrentStreak)
	assert.Equal(t, 3, snap.BestStreak)
}

func TestRecorderFavouriteTieUsesGameOrder(t *testing.T) {
	t.Parallel()
	r := NewRecorder()

	r.RecordRound(wager.Roulette, false, -10)
	r.RecordRound(wager.Blackjack, false, -10)

	snap := r.Snapshot()
	assert.Equal(t, wager.Blackjack, snap.Favourite)
}

func TestRecorderEmpty(t *testing.T) {
	t.Parallel()
	snap := NewRecorder().Snapshot()
	assert.False(t, snap.HasFavourite)
	assert.Zero(t, snap.GamesPlayed)
	assert.Zero(t, snap.WinRate())
}

func TestRecorderHistory(t *testing.T) {
	t.Parallel()
	clock := quartz.NewMock(t)
	start := clock.Now()
	r := NewRecorder(WithClock(clock))

	for i := 0; i < HistoryLimit+5; i++ {
		r.RecordRound(wager.Slots, false, int64(-i))
		clock.Advance(time.Minute)
	}

	h := r.History()
	require.Len(t, h, HistoryLimit)
	assert.Equal(t, int64(-(HistoryLimit + 4)), h[0].Net)
	assert.Equal(t, int64(-5), h[HistoryLimit-1].Net)
	assert.Equal(t, start.Add(time.Duration(HistoryLimit+4)*time.Minute), h[0].At)
}

func TestRecordSettlement(t *testing.T) {
	t.Parallel()
	r := NewRecorder()
	id := uuid.New()

	r.RecordSettlement(wager.NewSettlement(id, wager.Poker, "You win with Flush", 20, 140))

	h := r.History()
	require.Len(t, h, 1)
	assert.Equal(t, id, h[0].RoundID)
	assert.Equal(t, "You win with Flush", h[0].Outcome)
	assert.True(t, h[0].Won)
	assert.Equal(t, int64(120), h[0].Net)

	sum := r.Summary(wager.Poker)
	assert.Equal(t, 1, sum.Rounds)
	assert.Equal(t, int64(20), sum.Staked)
	assert.Zero(t, r.Summary(wager.Slots).Rounds)
	assert.Empty(t, sum.Values, "values are only kept on request")
}

func TestRecorderWithValues(t *testing.T) {
	t.Parallel()
	r := NewRecorder(WithValues())

	r.RecordRound(wager.Slots, true, 30)
	r.RecordRound(wager.Slots, false, -10)
	r.RecordRound(wager.Slots, false, -10)

	sum := r.Summary(wager.Slots)
	assert.True(t, sum.KeepValues)
	assert.Equal(t, []float64{30, -10, -10}, sum.Values)
	assert.Equal(t, -10.0, sum.Median())
	require.NoError(t, sum.Validate())
}

func TestRecorderConcurrent(t *testing.T) {
	t.Parallel()
	r := NewRecorder()

	var wg sync.WaitGroup
	for _, g := range wager.Games {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				r.RecordRound(g, i%2 == 0, 1)
			}
		}()
	}
	wg.Wait()

	snap := r.Snapshot()
	assert.Equal(t, 400, snap.GamesPlayed)
	assert.Equal(t, 200, snap.TotalWins)
	assert.Len(t, r.History(), HistoryLimit)
}
