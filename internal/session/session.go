// Package session ties one player's wallet, outcome recorder and daily
// bonus to the four games. Every settled round passes through the session
// exactly once on its way to the recorder.
package session

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/minicasino/internal/blackjack"
	"github.com/lox/minicasino/internal/bonus"
	"github.com/lox/minicasino/internal/poker"
	"github.com/lox/minicasino/internal/randutil"
	"github.com/lox/minicasino/internal/roulette"
	"github.com/lox/minicasino/internal/slots"
	"github.com/lox/minicasino/internal/statistics"
	"github.com/lox/minicasino/internal/wager"
)

// Config holds session construction parameters. Zero values fall back to
// sensible defaults.
type Config struct {
	StartingChips int64
	Seed          int64 // 0 seeds from the current time
	RNG           randutil.Source
	Limits        map[wager.Game]wager.Limits
	BonusAmount   int64
	BonusCooldown time.Duration
	Clock         quartz.Clock
	Logger        *log.Logger

	// KeepValues records every round's net for percentile statistics.
	KeepValues bool
}

// Session is a single player's casino visit. Like the games it drives, it
// expects one caller at a time.
type Session struct {
	limits map[wager.Game]wager.Limits
	logger *log.Logger

	wallet   *wager.Wallet
	recorder *statistics.Recorder
	bonus    *bonus.Bonus

	blackjack *blackjack.Game
	poker     *poker.Game
	roulette  *roulette.Game
	slots     *slots.Machine
}

// New creates a session with a fresh wallet and all four games.
func New(cfg Config) *Session {
	if cfg.StartingChips <= 0 {
		cfg.StartingChips = 1000
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.RNG == nil {
		cfg.RNG = randutil.NewFromConfig(cfg.Seed)
	}

	wallet := wager.NewWallet(cfg.StartingChips, cfg.Logger)
	s := &Session{
		limits:   cfg.Limits,
		logger:   cfg.Logger.WithPrefix("session"),
		wallet:   wallet,
		recorder: newRecorder(cfg),
		bonus: bonus.New(bonus.Config{
			Amount:   cfg.BonusAmount,
			Cooldown: cfg.BonusCooldown,
			Clock:    cfg.Clock,
			Logger:   cfg.Logger,
		}),
		blackjack: blackjack.New(wallet, blackjack.WithRNG(cfg.RNG), blackjack.WithLogger(cfg.Logger)),
		poker:     poker.New(wallet, poker.WithRNG(cfg.RNG), poker.WithLogger(cfg.Logger)),
		roulette:  roulette.New(wallet, roulette.WithRNG(cfg.RNG), roulette.WithLogger(cfg.Logger)),
		slots:     slots.New(wallet, slots.WithRNG(cfg.RNG), slots.WithLogger(cfg.Logger)),
	}
	return s
}

// Balance is the current chip count.
func (s *Session) Balance() int64 { return s.wallet.Balance() }

// Recorder exposes the outcome statistics.
func (s *Session) Recorder() *statistics.Recorder { return s.recorder }

// Bonus exposes the daily bonus state.
func (s *Session) Bonus() *bonus.Bonus { return s.bonus }

// Limits returns the table limits for game; the zero value means unlimited.
func (s *Session) Limits(game wager.Game) wager.Limits { return s.limits[game] }

// Blackjack returns the blackjack table for inspecting hands and state.
func (s *Session) Blackjack() *blackjack.Game { return s.blackjack }

// Poker returns the poker table for inspecting cards and street.
func (s *Session) Poker() *poker.Game { return s.poker }

// Roulette returns the roulette table for inspecting bets and results.
func (s *Session) Roulette() *roulette.Game { return s.roulette }

// Slots returns the slot machine.
func (s *Session) Slots() *slots.Machine { return s.slots }

// ClaimBonus credits the daily bonus if it is available.
func (s *Session) ClaimBonus() (int64, error) {
	return s.bonus.Claim(s.wallet)
}

// ResetChips restores the starting balance. Statistics are kept.
func (s *Session) ResetChips() {
	s.wallet.Reset()
}

func (s *Session) checkLimits(game wager.Game, amount int64) error {
	limits, ok := s.limits[game]
	if !ok {
		return nil
	}
	return limits.Check(amount)
}

// settle records a terminal settlement and passes the call's result through.
func (s *Session) settle(settlement *wager.Settlement, err error) (*wager.Settlement, error) {
	if err != nil || settlement == nil {
		return settlement, err
	}
	s.recorder.RecordSettlement(settlement)
	s.logger.Debug("Round recorded",
		"game", settlement.Game,
		"outcome", settlement.Outcome,
		"net", settlement.Net(),
		"balance", s.wallet.Balance())
	return settlement, nil
}

func newRecorder(cfg Config) *statistics.Recorder {
	opts := []statistics.Option{statistics.WithClock(cfg.Clock)}
	if cfg.KeepValues {
		opts = append(opts, statistics.WithValues())
	}
	return statistics.NewRecorder(opts...)
}
