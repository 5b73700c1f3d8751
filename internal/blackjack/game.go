// Package blackjack implements a single-player blackjack round against a
// fixed-policy dealer.
package blackjack

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lox/minicasino/internal/deck"
	"github.com/lox/minicasino/internal/randutil"
	"github.com/lox/minicasino/internal/wager"
)

// State is the phase of a blackjack round.
type State int

const (
	Betting State = iota
	Playing
	DealerTurn
	Finished
)

func (s State) String() string {
	switch s {
	case Betting:
		return "betting"
	case Playing:
		return "playing"
	case DealerTurn:
		return "dealer-turn"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Action is a player decision.
type Action string

const (
	Deal       Action = "deal"
	Hit        Action = "hit"
	Stand      Action = "stand"
	DoubleDown Action = "double"
	NewGame    Action = "new"
)

// Outcome labels for settlements.
const (
	OutcomePlayerBust = "Bust! Dealer wins"
	OutcomeDealerBust = "Dealer busts! You win!"
	OutcomeNatural    = "Blackjack!"
	OutcomeWin        = "You win!"
	OutcomeLoss       = "Dealer wins"
	OutcomePush       = "Push"
)

var naturalPayout = decimal.RequireFromString("2.5")

// Game is one blackjack seat. It is driven by a single caller and is not
// safe for concurrent use.
type Game struct {
	ledger  wager.Ledger
	newDeck func() *deck.Deck
	logger  *log.Logger

	state      State
	deck       *deck.Deck
	player     []deck.Card
	dealer     []deck.Card
	bet        int64
	roundID    uuid.UUID
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

// State returns the current phase.
func (g *Game) State() State { return g.state }

// Bet returns the chips staked this round, including any double down.
func (g *Game) Bet() int64 { return g.bet }

// RoundID identifies the current round; it is zero before the first deal.
func (g *Game) RoundID() uuid.UUID { return g.roundID }

// PlayerHand returns a copy of the player's cards.
func (g *Game) PlayerHand() []deck.Card { return slices.Clone(g.player) }

// DealerHand returns a copy of all dealer cards, including the hole card.
func (g *Game) DealerHand() []deck.Card { return slices.Clone(g.dealer) }

// PlayerScore is the player's current score.
func (g *Game) PlayerScore() int { return Score(g.player) }

// DealerScore is the dealer's full score.
func (g *Game) DealerScore() int { return Score(g.dealer) }

// VisibleDealerScore is what the player may see: only the up card while
// the player is still acting, the full hand otherwise.
func (g *Game) VisibleDealerScore() int {
	if g.state == Playing && len(g.dealer) == 2 {
		return g.dealer[1].BlackjackValue()
	}
	return Score(g.dealer)
}

// Settlement returns the last round's settlement, or nil before one exists.
func (g *Game) Settlement() *wager.Settlement { return g.settlement }

// Actions lists the actions legal in the current state. DoubleDown is
// always listed while Playing; the ledger decides whether it goes through.
func (g *Game) Actions() []Action {
	switch g.state {
	case Betting:
		return []Action{Deal}
	case Playing:
		return []Action{Hit, Stand, DoubleDown}
	case Finished:
		return []Action{NewGame}
	default:
		return nil
	}
}

// Deal stakes bet and deals player, dealer, player, dealer from a fresh deck.
// A natural goes straight to the dealer's turn, which settles the round.
func (g *Game) Deal(bet int64) (*wager.Settlement, error) {
	if g.state != Betting {
		return nil, g.reject(Deal)
	}
	if bet <= 0 {
		return nil, wager.ErrInvalidBet
	}
	if !g.ledger.TryDebit(bet) {
		g.logger.Warn("Deal rejected", "bet", bet, "error", wager.ErrInsufficientFunds)
		return nil, wager.ErrInsufficientFunds
	}

	g.roundID = uuid.New()
	g.bet = bet
	g.settlement = nil
	g.deck = g.newDeck()

	cards := g.deck.MustDraw(4)
	g.player = []deck.Card{cards[0], cards[2]}
	g.dealer = []deck.Card{cards[1], cards[3]}

	g.logger.Debug("Dealt", "round", g.roundID, "bet", bet, "player", g.player, "dealer_up", g.dealer[1])

	if Score(g.player) == Blackjack {
		g.state = DealerTurn
		return g.playDealer(), nil
	}
	g.state = Playing
	return nil, nil
}

// Hit draws one card for the player. Busting finishes the round.
func (g *Game) Hit() (*wager.Settlement, error) {
	if g.state != Playing {
		return nil, g.reject(Hit)
	}
	return g.hit(), nil
}

// Stand ends the player's turn; the dealer plays out and the round settles.
func (g *Game) Stand() (*wager.Settlement, error) {
	if g.state != Playing {
		return nil, g.reject(Stand)
	}
	g.state = DealerTurn
	return g.playDealer(), nil
}

// DoubleDown stakes the current bet again, takes exactly one card and stands.
func (g *Game) DoubleDown() (*wager.Settlement, error) {
	if g.state != Playing {
		return nil, g.reject(DoubleDown)
	}
	if !g.ledger.TryDebit(g.bet) {
		g.logger.Warn("Double down rejected", "bet", g.bet, "error", wager.ErrInsufficientFunds)
		return nil, wager.ErrInsufficientFunds
	}
	g.bet *= 2

	if s := g.hit(); s != nil {
		return s, nil
	}
	g.state = DealerTurn
	return g.playDealer(), nil
}

// NewGame clears the table after a finished round.
func (g *Game) NewGame() error {
	if g.state != Finished {
		return g.reject(NewGame)
	}
	g.state = Betting
	g.player = nil
	g.dealer = nil
	g.deck = nil
	g.bet = 0
	return nil
}

// hit draws from the round's deck; the same deck instance serves every draw
// of the round so no card can be dealt twice.
func (g *Game) hit() *wager.Settlement {
	g.player = append(g.player, g.deck.MustDraw(1)...)
	g.logger.Debug("Player draws", "card", g.player[len(g.player)-1], "score", Score(g.player))

	if IsBust(g.player) {
		return g.finish(OutcomePlayerBust, 0)
	}
	return nil
}

// playDealer draws while the dealer is under 17 and settles.
func (g *Game) playDealer() *wager.Settlement {
	for Score(g.dealer) < DealerStandsOn {
		g.dealer = append(g.dealer, g.deck.MustDraw(1)...)
	}

	d, p := Score(g.dealer), Score(g.player)
	switch {
	case d > Blackjack:
		return g.finish(OutcomeDealerBust, 2*g.bet)
	case p == Blackjack && len(g.player) == 2 && d != Blackjack:
		return g.finish(OutcomeNatural, wager.Scale(g.bet, naturalPayout))
	case p > d:
		return g.finish(OutcomeWin, 2*g.bet)
	case p < d:
		return g.finish(OutcomeLoss, 0)
	default:
		return g.finish(OutcomePush, g.bet)
	}
}

func (g *Game) finish(outcome string, credit int64) *wager.Settlement {
	g.ledger.Credit(credit)
	g.state = Finished
	g.settlement = wager.NewSettlement(g.roundID, wager.Blackjack, outcome, g.bet, credit)

	g.logger.Info("Round settled",
		"round", g.roundID,
		"outcome", outcome,
		"player", Score(g.player),
		"dealer", Score(g.dealer),
		"bet", g.bet,
		"credited", credit)
	return g.settlement
}

func (g *Game) reject(action Action) error {
	err := wager.IllegalTransition(string(action), g.state)
	g.logger.Warn("Action rejected", "action", action, "state", g.state)
	return err
}
