// Package roulette implements a single-zero roulette table with several
// simultaneous bets per spin.
package roulette

import (
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/minicasino/internal/randutil"
	"github.com/lox/minicasino/internal/wager"
)

// PlacedBet is the total staked on one selection this round.
type PlacedBet struct {
	Selection Selection
	Amount    int64
}

// BetOutcome is one placed bet's result after a spin.
type BetOutcome struct {
	PlacedBet
	Won      bool
	Winnings int64
}

// SpinResult is the drawn pocket and how every bet fared.
type SpinResult struct {
	Pocket   Pocket
	Outcomes []BetOutcome
}

// Action is a table decision.
type Action string

const (
	PlaceBet  Action = "bet"
	ClearBets Action = "clear"
	Spin      Action = "spin"
)

// Outcome labels for settlements.
const (
	OutcomeWin  = "Winner"
	OutcomeLoss = "No win"
)

// Option configures a Game during creation.
type Option func(*Game)

// WithRNG sets the wheel's random source.
func WithRNG(rng randutil.Source) Option {
	return func(g *Game) { g.rng = rng }
}

// WithLogger sets the logger used for bets and settlements.
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) { g.logger = logger.WithPrefix("roulette") }
}

// Game is a roulette table for one player. It is driven by a single caller
// and is not safe for concurrent use.
type Game struct {
	ledger wager.Ledger
	rng    randutil.Source
	logger *log.Logger

	bets     []PlacedBet
	index    map[Selection]int
	spinning bool
	last     *SpinResult
}

// New creates a table that stakes and pays through ledger.
func New(ledger wager.Ledger, opts ...Option) *Game {
	if ledger == nil {
		panic("ledger is required")
	}
	g := &Game{
		ledger: ledger,
		rng:    randutil.NewFromConfig(0),
		logger: log.New(io.Discard),
		index:  make(map[Selection]int),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Bets returns the bets placed this round in placement order.
func (g *Game) Bets() []PlacedBet { return slices.Clone(g.bets) }

// TotalStaked is the sum of all placed amounts.
func (g *Game) TotalStaked() int64 {
	var total int64
	for _, b := range g.bets {
		total += b.Amount
	}
	return total
}

// LastResult returns the most recent spin, or nil.
func (g *Game) LastResult() *SpinResult { return g.last }

// Actions lists what is legal now. Spin and ClearBets need at least one bet.
func (g *Game) Actions() []Action {
	if g.spinning {
		return nil
	}
	if len(g.bets) == 0 {
		return []Action{PlaceBet}
	}
	return []Action{PlaceBet, ClearBets, Spin}
}

// PlaceBet stakes amount on sel. Repeated placements on the same selection
// accumulate into one bet.
func (g *Game) PlaceBet(sel Selection, amount int64) error {
	if g.spinning {
		return wager.IllegalTransition("place bet", stateName("spinning"))
	}
	if sel == nil {
		return fmt.Errorf("%w: no selection", wager.ErrInvalidBet)
	}
	if err := sel.Validate(); err != nil {
		return err
	}
	if amount <= 0 {
		return wager.ErrInvalidBet
	}
	if !g.ledger.TryDebit(amount) {
		g.logger.Warn("Bet rejected", "selection", sel.Name(), "amount", amount, "error", wager.ErrInsufficientFunds)
		return wager.ErrInsufficientFunds
	}

	if i, ok := g.index[sel]; ok {
		g.bets[i].Amount += amount
	} else {
		g.index[sel] = len(g.bets)
		g.bets = append(g.bets, PlacedBet{Selection: sel, Amount: amount})
	}
	g.logger.Debug("Bet placed", "selection", sel.Name(), "amount", amount, "total", g.TotalStaked())
	return nil
}

// ClearBets refunds every placed bet in full and empties the table.
func (g *Game) ClearBets() (int64, error) {
	if g.spinning {
		return 0, wager.IllegalTransition("clear bets", stateName("spinning"))
	}
	refund := g.TotalStaked()
	g.ledger.Credit(refund)
	g.reset()
	g.logger.Debug("Bets cleared", "refund", refund)
	return refund, nil
}

// Spin draws a pocket and resolves every bet against it.
func (g *Game) Spin() (*SpinResult, *wager.Settlement, error) {
	if g.spinning {
		return nil, nil, wager.IllegalTransition("spin", stateName("spinning"))
	}
	if len(g.bets) == 0 {
		return nil, nil, wager.IllegalTransition("spin", stateName("without bets"))
	}
	g.spinning = true
	defer func() { g.spinning = false }()

	return g.Resolve(SpinWheel(g.rng))
}

// Resolve settles every placed bet against pocket, credits the total
// winnings and clears the table. Winning bets pay amount + amount × multiplier.
// The pocket must be on the wheel and at least one bet must be down.
func (g *Game) Resolve(pocket Pocket) (*SpinResult, *wager.Settlement, error) {
	if pocket < 0 || pocket > MaxPocket {
		return nil, nil, fmt.Errorf("%w: pocket %d is not on the wheel", wager.ErrInvalidBet, pocket)
	}
	if len(g.bets) == 0 {
		return nil, nil, wager.IllegalTransition("resolve", stateName("without bets"))
	}

	result := &SpinResult{Pocket: pocket}
	staked := g.TotalStaked()

	var total int64
	for _, b := range g.bets {
		m, won := Multiplier(b.Selection, pocket)
		out := BetOutcome{PlacedBet: b, Won: won}
		if won {
			out.Winnings = wager.WinningsWithStake(b.Amount, m)
			total += out.Winnings
		}
		result.Outcomes = append(result.Outcomes, out)
	}

	g.ledger.Credit(total)
	g.reset()
	g.last = result

	outcome := OutcomeLoss
	if total > 0 {
		outcome = OutcomeWin
	}
	settlement := wager.NewSettlement(uuid.New(), wager.Roulette,
		fmt.Sprintf("%s on %d %s", outcome, pocket, pocket.Color()), staked, total)

	g.logger.Info("Spin settled",
		"round", settlement.RoundID,
		"pocket", int(pocket),
		"color", pocket.Color(),
		"staked", staked,
		"credited", total)
	return result, settlement, nil
}

func (g *Game) reset() {
	g.bets = nil
	g.index = make(map[Selection]int)
}

type stateName string

func (s stateName) String() string { return string(s) }
