// Package poker implements heads-up hold'em against a dealer with fixed-size
// bets, and the category-only hand evaluator it settles with.
package poker

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/minicasino/internal/deck"
	"github.com/lox/minicasino/internal/randutil"
	"github.com/lox/minicasino/internal/wager"
)

// Street is the phase of a poker round.
type Street int

const (
	Betting Street = iota
	PreFlop
	Flop
	Turn
	River
	Showdown
	Result
)

func (s Street) String() string {
	switch s {
	case Betting:
		return "betting"
	case PreFlop:
		return "pre-flop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Showdown:
		return "showdown"
	case Result:
		return "result"
	default:
		return "unknown"
	}
}

// Action is a player decision.
type Action string

const (
	Deal      Action = "deal"
	Call      Action = "call"
	Check     Action = "check"
	ShowCards Action = "showdown"
	Fold      Action = "fold"
	NewGame   Action = "new"
)

// Outcome labels for settlements.
const (
	OutcomePlayerWins = "You win"
	OutcomeDealerWins = "Dealer wins"
	OutcomePush       = "Push"
	OutcomeFolded     = "Folded"
)

// ShowdownResult holds both evaluated hands once the river has been played out.
type ShowdownResult struct {
	Player HandRank
	Dealer HandRank
}

// Game is one heads-up poker seat. It is driven by a single caller and is
// not safe for concurrent use.
type Game struct {
	ledger  wager.Ledger
	newDeck func() *deck.Deck
	logger  *log.Logger

	street     Street
	deck       *deck.Deck
	bet        int64
	pot        int64
	player     []deck.Card
	dealer     []deck.Card
	community  []deck.Card
	roundID    uuid.UUID
	showdown   *ShowdownResult
	settlement *wager.Settlement
}

// New creates a game that stakes and pays through ledger.
func New(ledger wager.Ledger, opts ...Option) *Game {
	if ledger == nil {
		panic("ledger is required")
	}

	g := &Game{
		ledger: ledger,
		logger: log.New(io.Discard),
	}
	rng := randutil.NewFromConfig(0)
	g.newDeck = func() *deck.Deck { return deck.New(rng) }

	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Street returns the current phase.
func (g *Game) Street() Street { return g.street }

// Bet is the per-street stake chosen on the deal.
func (g *Game) Bet() int64 { return g.bet }

// Pot is the total staked this round.
func (g *Game) Pot() int64 { return g.pot }

// RoundID identifies the current round.
func (g *Game) RoundID() uuid.UUID { return g.roundID }

// PlayerCards returns the player's hole cards.
func (g *Game) PlayerCards() []deck.Card { return slices.Clone(g.player) }

// DealerCards returns the dealer's hole cards.
func (g *Game) DealerCards() []deck.Card { return slices.Clone(g.dealer) }

// Community returns the board dealt so far.
func (g *Game) Community() []deck.Card { return slices.Clone(g.community) }

// ShowdownResult returns both evaluated hands, or nil if the round has not
// reached a showdown.
func (g *Game) ShowdownResult() *ShowdownResult { return g.showdown }

// Settlement returns the last round's settlement.
func (g *Game) Settlement() *wager.Settlement { return g.settlement }

// Actions lists the actions legal on the current street.
func (g *Game) Actions() []Action {
	switch g.street {
	case Betting:
		return []Action{Deal}
	case PreFlop:
		return []Action{Call, Fold}
	case Flop, Turn:
		return []Action{Check, Fold}
	case River:
		return []Action{ShowCards, Fold}
	case Result:
		return []Action{NewGame}
	default:
		return nil
	}
}

// Deal stakes bet and deals two hole cards each from a fresh deck.
func (g *Game) Deal(bet int64) error {
	if g.street != Betting {
		return g.reject(Deal)
	}
	if bet <= 0 {
		return wager.ErrInvalidBet
	}
	if !g.ledger.TryDebit(bet) {
		g.logger.Warn("Deal rejected", "bet", bet, "error", wager.ErrInsufficientFunds)
		return wager.ErrInsufficientFunds
	}

	g.roundID = uuid.New()
	g.bet = bet
	g.pot = bet
	g.deck = g.newDeck()
	g.community = nil
	g.showdown = nil
	g.settlement = nil

	g.player = g.deck.MustDraw(2)
	g.dealer = g.deck.MustDraw(2)
	g.street = PreFlop

	g.logger.Debug("Dealt", "round", g.roundID, "bet", bet, "player", g.player)
	return nil
}

// Advance moves to the next street. Pre-flop it calls (staking the bet
// again) and deals the flop; on the flop and turn it checks and deals one
// card; on the river it goes to showdown and settles.
func (g *Game) Advance() (*wager.Settlement, error) {
	switch g.street {
	case PreFlop:
		if !g.ledger.TryDebit(g.bet) {
			g.logger.Warn("Call rejected", "bet", g.bet, "error", wager.ErrInsufficientFunds)
			return nil, wager.ErrInsufficientFunds
		}
		g.pot += g.bet
		g.community = append(g.community, g.deck.MustDraw(3)...)
		g.street = Flop
	case Flop:
		g.community = append(g.community, g.deck.MustDraw(1)...)
		g.street = Turn
	case Turn:
		g.community = append(g.community, g.deck.MustDraw(1)...)
		g.street = River
	case River:
		g.street = Showdown
		return g.settleShowdown(), nil
	default:
		return nil, g.reject(Call)
	}

	g.logger.Debug("Street dealt", "street", g.street, "board", g.community, "pot", g.pot)
	return nil, nil
}

// Fold forfeits the pot.
func (g *Game) Fold() (*wager.Settlement, error) {
	switch g.street {
	case PreFlop, Flop, Turn, River:
		return g.finish(OutcomeFolded, 0), nil
	default:
		return nil, g.reject(Fold)
	}
}

// NewGame clears the table after a settled round.
func (g *Game) NewGame() error {
	if g.street != Result {
		return g.reject(NewGame)
	}
	g.street = Betting
	g.bet = 0
	g.pot = 0
	g.deck = nil
	g.player = nil
	g.dealer = nil
	g.community = nil
	g.showdown = nil
	return nil
}

func (g *Game) settleShowdown() *wager.Settlement {
	playerRank, err := Evaluate7(append(slices.Clone(g.player), g.community...))
	if err != nil {
		panic(err)
	}
	dealerRank, err := Evaluate7(append(slices.Clone(g.dealer), g.community...))
	if err != nil {
		panic(err)
	}
	g.showdown = &ShowdownResult{Player: playerRank, Dealer: dealerRank}

	switch playerRank.Compare(dealerRank) {
	case 1:
		return g.finish(OutcomePlayerWins+" with "+playerRank.String(), Winnings(g.pot, playerRank))
	case -1:
		return g.finish(OutcomeDealerWins+" with "+dealerRank.String(), 0)
	default:
		return g.finish(OutcomePush, g.pot)
	}
}

// Winnings is the credit for beating the dealer with rank: the pot back plus
// pot × multiplier, or double the pot when the category pays nothing.
func Winnings(pot int64, rank HandRank) int64 {
	if m := rank.Multiplier(); m > 0 {
		return wager.WinningsWithStake(pot, m)
	}
	return pot * 2
}

func (g *Game) finish(outcome string, credit int64) *wager.Settlement {
	g.ledger.Credit(credit)
	g.street = Result
	g.settlement = wager.NewSettlement(g.roundID, wager.Poker, outcome, g.pot, credit)

	g.logger.Info("Round settled",
		"round", g.roundID,
		"outcome", outcome,
		"pot", g.pot,
		"credited", credit)
	return g.settlement
}

func (g *Game) reject(action Action) error {
	err := wager.IllegalTransition(string(action), g.street)
	g.logger.Warn("Action rejected", "action", action, "street", g.street)
	return err
}
