package poker

import (
	"github.com/charmbracelet/log"

	"github.com/lox/minicasino/internal/deck"
	"github.com/lox/minicasino/internal/randutil"
)

// Option configures a Game during creation.
type Option func(*Game)

// WithRNG shuffles each round's fresh deck with rng.
func WithRNG(rng randutil.Source) Option {
	return func(g *Game) {
		g.newDeck = func() *deck.Deck { return deck.New(rng) }
	}
}

// WithDeckSource supplies each round's deck, overriding WithRNG.
func WithDeckSource(fn func() *deck.Deck) Option {
	return func(g *Game) {
		g.newDeck = fn
	}
}

// WithLogger sets the logger used for transitions and settlements.
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) {
		g.logger = logger.WithPrefix("poker")
	}
}
