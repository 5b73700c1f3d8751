// Package slots implements a four-reel slot machine over a fixed eight
// symbol alphabet.
package slots

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/minicasino/internal/deck"
	"github.com/lox/minicasino/internal/randutil"
	"github.com/lox/minicasino/internal/wager"
)

// Reels is the number of reels on the machine.
const Reels = 4

// Symbols is the reel alphabet. Matching is by rank only, so the suit on
// each symbol is decoration.
var Symbols = [...]deck.Card{
	deck.NewCard(deck.Spades, deck.Ace),
	deck.NewCard(deck.Hearts, deck.King),
	deck.NewCard(deck.Diamonds, deck.Queen),
	deck.NewCard(deck.Clubs, deck.Jack),
	deck.NewCard(deck.Spades, deck.Ten),
	deck.NewCard(deck.Hearts, deck.Nine),
	deck.NewCard(deck.Diamonds, deck.Eight),
	deck.NewCard(deck.Clubs, deck.Seven),
}

// Win labels.
const (
	Jackpot = "JACKPOT!"
	BigWin  = "BIG WIN!"
	Winner  = "WINNER!"
	NoWin   = "No win"
)

// Payout is the evaluated value of one line of reels.
type Payout struct {
	Label      string
	Multiplier int64
	Matches    int
}

// Line is the symbols showing after a spin, one per reel.
type Line [Reels]deck.Card

func (l Line) String() string {
	parts := make([]string, len(l))
	for i, c := range l {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Evaluate scores a line by its largest group of matching symbols.
func Evaluate(line Line) Payout {
	var counts [deck.Ace + 1]int
	matches := 0
	for _, c := range line {
		counts[c.Rank]++
		matches = max(matches, counts[c.Rank])
	}

	switch matches {
	case 4:
		return Payout{Label: Jackpot, Multiplier: 10, Matches: matches}
	case 3:
		return Payout{Label: BigWin, Multiplier: 5, Matches: matches}
	case 2:
		return Payout{Label: Winner, Multiplier: 2, Matches: matches}
	default:
		return Payout{Label: NoWin, Multiplier: 0, Matches: matches}
	}
}

// Option configures a Machine during creation.
type Option func(*Machine)

// WithRNG sets the reel random source.
func WithRNG(rng randutil.Source) Option {
	return func(m *Machine) { m.rng = rng }
}

// WithLogger sets the logger used for spins.
func WithLogger(logger *log.Logger) Option {
	return func(m *Machine) { m.logger = logger.WithPrefix("slots") }
}

// Result is one completed spin.
type Result struct {
	Line   Line
	Payout Payout
}

// Machine is a slot machine staking through a shared ledger.
type Machine struct {
	ledger wager.Ledger
	rng    randutil.Source
	logger *log.Logger

	last *Result
}

// New creates a machine that stakes and pays through ledger.
func New(ledger wager.Ledger, opts ...Option) *Machine {
	if ledger == nil {
		panic("ledger is required")
	}
	m := &Machine{
		ledger: ledger,
		rng:    randutil.NewFromConfig(0),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Action is a machine decision.
type Action string

// SpinReels is the machine's only action.
const SpinReels Action = "spin"

// Actions lists what is legal now; a machine can always be spun.
func (m *Machine) Actions() []Action { return []Action{SpinReels} }

// LastResult returns the most recent spin, or nil.
func (m *Machine) LastResult() *Result { return m.last }

// Spin debits bet, draws every reel independently and credits
// bet × multiplier on a win.
func (m *Machine) Spin(bet int64) (*Result, *wager.Settlement, error) {
	if bet <= 0 {
		return nil, nil, wager.ErrInvalidBet
	}
	if !m.ledger.TryDebit(bet) {
		m.logger.Warn("Spin rejected", "bet", bet, "error", wager.ErrInsufficientFunds)
		return nil, nil, wager.ErrInsufficientFunds
	}

	var line Line
	for i := range line {
		line[i] = Symbols[m.rng.IntN(len(Symbols))]
	}

	payout := Evaluate(line)
	credit := bet * payout.Multiplier
	if credit > 0 {
		m.ledger.Credit(credit)
	}

	res := &Result{Line: line, Payout: payout}
	m.last = res

	settlement := wager.NewSettlement(uuid.New(), wager.Slots, payout.Label, bet, credit)
	m.logger.Info("Spin settled",
		"round", settlement.RoundID,
		"line", line,
		"outcome", payout.Label,
		"bet", bet,
		"credited", credit)
	return res, settlement, nil
}
