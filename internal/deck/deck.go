package deck

import (
	"errors"
	"fmt"

	"github.com/lox/minicasino/internal/randutil"
)

// Size is the number of cards in a standard deck.
const Size = 52

// ErrDeckExhausted is returned when more cards are requested than remain.
// Decks are never silently refilled mid-round.
var ErrDeckExhausted = errors.New("deck exhausted")

// Deck represents a deck of playing cards, consumed front to back.
type Deck struct {
	cards []Card
}

// Standard returns all 52 cards in suit-major enumeration order.
func Standard() []Card {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// New builds a standard 52-card deck and shuffles it with rng.
func New(rng randutil.Source) *Deck {
	cards := Standard()
	Shuffle(cards, rng)
	return &Deck{cards: cards}
}

// NewFromCards returns a deck that deals exactly the given cards in order.
// Useful for replays and stacked decks in tests.
func NewFromCards(cards ...Card) *Deck {
	return &Deck{cards: append([]Card(nil), cards...)}
}

// Shuffle permutes cards in place using Fisher-Yates. Every index i swaps
// with a uniformly chosen j in [0, i], including i itself.
func Shuffle(cards []Card, rng randutil.Source) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Draw removes and returns the first n cards.
func (d *Deck) Draw(n int) ([]Card, error) {
	if n < 0 {
		return nil, fmt.Errorf("cannot draw %d cards", n)
	}
	if n > len(d.cards) {
		return nil, fmt.Errorf("%w: wanted %d, %d remaining", ErrDeckExhausted, n, len(d.cards))
	}

	drawn := make([]Card, n)
	copy(drawn, d.cards[:n])
	d.cards = d.cards[n:]
	return drawn, nil
}

// MustDraw is Draw for engines whose rounds are sized to fit a full deck.
// Exhaustion there is a programming error and panics rather than being papered over.
func (d *Deck) MustDraw(n int) []Card {
	cards, err := d.Draw(n)
	if err != nil {
		panic(err)
	}
	return cards
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Cards returns a copy of the undealt cards in deal order.
func (d *Deck) Cards() []Card {
	return append([]Card(nil), d.cards...)
}
