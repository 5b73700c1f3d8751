package wager

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Game identifies one of the casino games.
type Game int

const (
	Slots Game = iota
	Blackjack
	Poker
	Roulette
)

// Games lists every game in display order.
var Games = [...]Game{Slots, Blackjack, Poker, Roulette}

func (g Game) String() string {
	switch g {
	case Slots:
		return "slots"
	case Blackjack:
		return "blackjack"
	case Poker:
		return "poker"
	case Roulette:
		return "roulette"
	default:
		return "unknown"
	}
}

// Label is the human-readable game name.
func (g Game) Label() string {
	switch g {
	case Slots:
		return "Slots"
	case Blackjack:
		return "Blackjack"
	case Poker:
		return "Poker"
	case Roulette:
		return "Roulette"
	default:
		return "Unknown"
	}
}

// ParseGame maps a game name to its Game.
func ParseGame(s string) (Game, error) {
	for _, g := range Games {
		if g.String() == s {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown game %q", s)
}

// Settlement is what a game returns on a terminal transition. The ledger has
// already been credited with Credited by the time the caller sees it.
type Settlement struct {
	RoundID  uuid.UUID
	Game     Game
	Outcome  string
	Staked   int64
	Credited int64
}

// NewSettlement stamps a settlement with the round's id.
func NewSettlement(roundID uuid.UUID, game Game, outcome string, staked, credited int64) *Settlement {
	return &Settlement{
		RoundID:  roundID,
		Game:     game,
		Outcome:  outcome,
		Staked:   staked,
		Credited: credited,
	}
}

// Net is the round's profit (negative for a loss, zero for a push).
func (s *Settlement) Net() int64 {
	return s.Credited - s.Staked
}

// Won reports whether the player came out ahead.
func (s *Settlement) Won() bool {
	return s.Credited > s.Staked
}

func (s *Settlement) String() string {
	return fmt.Sprintf("%s %s: staked %d, credited %d (net %+d)", s.Game, s.Outcome, s.Staked, s.Credited, s.Net())
}

// Scale multiplies amount by a decimal multiplier and floors to whole chips.
func Scale(amount int64, multiplier decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(multiplier).Floor().IntPart()
}

// WinningsWithStake is amount returned plus amount×multiplier.
func WinningsWithStake(amount, multiplier int64) int64 {
	return amount + amount*multiplier
}

// Limits bounds a single stake at a table. A zero Max means no upper limit.
type Limits struct {
	Min int64
	Max int64
}

// Check rejects an amount outside the limits with ErrInvalidBet.
func (l Limits) Check(amount int64) error {
	if amount < l.Min {
		return fmt.Errorf("%w: %d below table minimum %d", ErrInvalidBet, amount, l.Min)
	}
	if l.Max > 0 && amount > l.Max {
		return fmt.Errorf("%w: %d above table maximum %d", ErrInvalidBet, amount, l.Max)
	}
	return nil
}
