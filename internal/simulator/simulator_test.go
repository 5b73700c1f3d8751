package simulator

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/minicasino/internal/wager"
)

func TestNewDefaults(t *testing.T) {
	t.Parallel()
	sim := New(Config{Rounds: 10})
	assert.Equal(t, int64(10), sim.config.Bet)
	assert.Equal(t, int64(1000), sim.config.StartingChips)
	assert.Equal(t, wager.Games[:], sim.config.Games)
	assert.NotNil(t, sim.config.Logger)
}

func TestRunAllGames(t *testing.T) {
	t.Parallel()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})

	report, err := New(Config{Rounds: 200, Seed: 12345, Logger: logger}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Games, len(wager.Games))

	for i, gr := range report.Games {
		assert.Equal(t, wager.Games[i], gr.Game)
		assert.Equal(t, 200, gr.Summary.Rounds, gr.Game.String())
		assert.NoError(t, gr.Summary.Validate())
		assert.Len(t, gr.Summary.Values, 200, gr.Game.String())
		assert.Positive(t, gr.Summary.Staked, gr.Game.String())
	}
	total := report.Total()
	assert.Equal(t, 800, total.Rounds)
	assert.Len(t, total.Values, 800)
}

func TestRunIsDeterministic(t *testing.T) {
	t.Parallel()
	cfg := Config{Rounds: 100, Seed: 99, Games: []wager.Game{wager.Blackjack, wager.Roulette}}

	a, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	b, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	for i := range a.Games {
		assert.Equal(t, a.Games[i].Summary.Values, b.Games[i].Summary.Values)
		assert.Equal(t, a.Games[i].Rebuys, b.Games[i].Rebuys)
	}
}

func TestRunRebuysWhenBroke(t *testing.T) {
	t.Parallel()
	report, err := New(Config{
		Rounds:        500,
		Bet:           50,
		StartingChips: 100,
		Seed:          7,
		Games:         []wager.Game{wager.Roulette},
	}).Run(context.Background())
	require.NoError(t, err)
	assert.Positive(t, report.Games[0].Rebuys)
	assert.Equal(t, 500, report.Games[0].Summary.Rounds)
}

func TestRunRejectsZeroRounds(t *testing.T) {
	t.Parallel()
	_, err := New(Config{}).Run(context.Background())
	assert.ErrorContains(t, err, "rounds must be positive")
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(Config{Rounds: 10, Seed: 1}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
