// Package simulator plays many automated rounds of each game with fixed
// strategies and reports the per-game results.
package simulator

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/minicasino/internal/randutil"
	"github.com/lox/minicasino/internal/roulette"
	"github.com/lox/minicasino/internal/session"
	"github.com/lox/minicasino/internal/statistics"
	"github.com/lox/minicasino/internal/wager"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds        int
	Bet           int64
	Seed          int64
	StartingChips int64
	Games         []wager.Game
	Logger        *log.Logger
}

// GameReport is the outcome of simulating one game.
type GameReport struct {
	Game    wager.Game
	Summary statistics.Summary
	Rebuys  int
	Elapsed time.Duration
}

// Report collects every simulated game in the order they were requested.
type Report struct {
	Games []GameReport
}

// Total merges every game's summary.
func (r *Report) Total() statistics.Summary {
	total := statistics.Summary{KeepValues: true}
	for _, g := range r.Games {
		total.Merge(&g.Summary)
	}
	return total
}

// Simulator runs automated sessions
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Bet <= 0 {
		config.Bet = 10
	}
	if config.StartingChips <= 0 {
		config.StartingChips = 1000
	}
	if len(config.Games) == 0 {
		config.Games = wager.Games[:]
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config}
}

// Run plays every configured game concurrently, each in its own session
// with an independent seed derived from the configured one.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	if s.config.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive: %d", s.config.Rounds)
	}

	master := randutil.NewFromConfig(s.config.Seed)
	seeds := make([]int64, len(s.config.Games))
	for i := range seeds {
		seeds[i] = master.Int64()
	}

	report := &Report{Games: make([]GameReport, len(s.config.Games))}
	g, ctx := errgroup.WithContext(ctx)
	for i, game := range s.config.Games {
		g.Go(func() error {
			gr, err := s.runGame(ctx, game, seeds[i])
			if err != nil {
				return fmt.Errorf("%s: %w", game, err)
			}
			report.Games[i] = gr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, gr := range report.Games {
		if err := gr.Summary.Validate(); err != nil {
			return nil, fmt.Errorf("statistics validation failed for %s: %w", gr.Game, err)
		}
	}
	return report, nil
}

func (s *Simulator) runGame(ctx context.Context, game wager.Game, seed int64) (GameReport, error) {
	start := time.Now()
	logger := s.config.Logger.With("game", game)
	sess := session.New(session.Config{
		StartingChips: s.config.StartingChips,
		RNG:           randutil.New(seed),
		Logger:        s.config.Logger,
		KeepValues:    true,
	})

	// Poker can stake twice the bet before settling.
	need := 2 * s.config.Bet
	rebuys := 0
	for round := 0; round < s.config.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return GameReport{}, err
		}
		if sess.Balance() < need {
			sess.ResetChips()
			rebuys++
		}
		if err := playRound(sess, game, s.config.Bet); err != nil {
			return GameReport{}, fmt.Errorf("round %d: %w", round+1, err)
		}
	}

	gr := GameReport{
		Game:    game,
		Summary: sess.Recorder().Summary(game),
		Rebuys:  rebuys,
		Elapsed: time.Since(start),
	}
	logger.Info("Simulation finished",
		"rounds", gr.Summary.Rounds,
		"mean", fmt.Sprintf("%.3f", gr.Summary.Mean()),
		"rebuys", rebuys)
	return gr, nil
}

// playRound plays one complete round of game with its fixed strategy.
func playRound(sess *session.Session, game wager.Game, bet int64) error {
	switch game {
	case wager.Blackjack:
		return playBlackjack(sess, bet)
	case wager.Poker:
		return playPoker(sess, bet)
	case wager.Roulette:
		return playRoulette(sess, bet)
	case wager.Slots:
		_, _, err := sess.SpinSlots(bet)
		return err
	default:
		return fmt.Errorf("unknown game %v", game)
	}
}

// playBlackjack hits below 17 and stands otherwise.
func playBlackjack(sess *session.Session, bet int64) error {
	settlement, err := sess.DealBlackjack(bet)
	for err == nil && settlement == nil {
		if sess.Blackjack().PlayerScore() < 17 {
			settlement, err = sess.Hit()
		} else {
			settlement, err = sess.Stand()
		}
	}
	if err != nil {
		return err
	}
	return sess.NewBlackjackRound()
}

// playPoker calls every street through to showdown.
func playPoker(sess *session.Session, bet int64) error {
	if err := sess.DealPoker(bet); err != nil {
		return err
	}
	for {
		settlement, err := sess.AdvancePoker()
		if err != nil {
			return err
		}
		if settlement != nil {
			return sess.NewPokerRound()
		}
	}
}

// playRoulette always backs red.
func playRoulette(sess *session.Session, bet int64) error {
	if err := sess.PlaceRouletteBet(roulette.Red{}, bet); err != nil {
		return err
	}
	_, _, err := sess.SpinRoulette()
	return err
}
