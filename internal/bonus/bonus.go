// Package bonus implements the daily chip bonus: a fixed credit that can be
// claimed once per cooldown period.
package bonus

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/minicasino/internal/wager"
)

// Defaults for the daily bonus.
const (
	DefaultAmount   int64 = 250
	DefaultCooldown       = 24 * time.Hour
)

// ErrCooldown is returned when claiming before the cooldown has elapsed.
var ErrCooldown = errors.New("bonus not available yet")

// Config controls the bonus amount and how often it can be claimed.
type Config struct {
	Amount   int64
	Cooldown time.Duration
	Clock    quartz.Clock
	Logger   *log.Logger
}

// Bonus tracks when the bonus was last claimed.
type Bonus struct {
	mu          sync.Mutex
	amount      int64
	cooldown    time.Duration
	clock       quartz.Clock
	logger      *log.Logger
	lastClaimed time.Time
	claimed     bool
}

// New returns a bonus that is immediately claimable.
func New(cfg Config) *Bonus {
	if cfg.Amount <= 0 {
		cfg.Amount = DefaultAmount
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = DefaultCooldown
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	return &Bonus{
		amount:   cfg.Amount,
		cooldown: cfg.Cooldown,
		clock:    cfg.Clock,
		logger:   cfg.Logger.WithPrefix("bonus"),
	}
}

// Amount is the credit paid per claim.
func (b *Bonus) Amount() int64 { return b.amount }

// Available reports whether Claim would succeed now.
func (b *Bonus) Available() bool {
	return b.Remaining() == 0
}

// Remaining is the time left until the next claim, zero when available.
func (b *Bonus) Remaining() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.remaining()
}

func (b *Bonus) remaining() time.Duration {
	if !b.claimed {
		return 0
	}
	left := b.cooldown - b.clock.Since(b.lastClaimed)
	if left < 0 {
		return 0
	}
	return left
}

// Claim credits the bonus to ledger and starts the cooldown.
func (b *Bonus) Claim(ledger wager.Ledger) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if left := b.remaining(); left > 0 {
		return 0, fmt.Errorf("%w: %s remaining", ErrCooldown, left.Round(time.Second))
	}
	ledger.Credit(b.amount)
	b.lastClaimed = b.clock.Now()
	b.claimed = true
	b.logger.Info("Bonus claimed", "amount", b.amount, "next", b.lastClaimed.Add(b.cooldown))
	return b.amount, nil
}
