package poker

import (
	"errors"
	"fmt"
	"math/bits"
	"slices"

	"github.com/lox/minicasino/internal/deck"
)

// Category is a hand class ordinal: 1 (Royal Flush, best) to 10 (High Card, worst).
type Category uint8

const (
	RoyalFlush Category = iota + 1
	StraightFlush
	FourOfAKind
	FullHouse
	Flush
	Straight
	ThreeOfAKind
	TwoPair
	JacksOrBetter
	HighCard
)

// Categories lists every category from best to worst.
var Categories = [...]Category{
	RoyalFlush, StraightFlush, FourOfAKind, FullHouse, Flush,
	Straight, ThreeOfAKind, TwoPair, JacksOrBetter, HighCard,
}

var categoryNames = map[Category]string{
	RoyalFlush:    "Royal Flush",
	StraightFlush: "Straight Flush",
	FourOfAKind:   "Four of a Kind",
	FullHouse:     "Full House",
	Flush:         "Flush",
	Straight:      "Straight",
	ThreeOfAKind:  "Three of a Kind",
	TwoPair:       "Two Pair",
	JacksOrBetter: "Pair of Jacks+",
	HighCard:      "High Card",
}

var categoryMultipliers = map[Category]int64{
	RoyalFlush:    250,
	StraightFlush: 50,
	FourOfAKind:   25,
	FullHouse:     9,
	Flush:         6,
	Straight:      4,
	ThreeOfAKind:  3,
	TwoPair:       2,
	JacksOrBetter: 1,
	HighCard:      0,
}

// String returns the display name of the category.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Unknown"
}

// Multiplier is the payout multiplier for winning with this category.
func (c Category) Multiplier() int64 {
	return categoryMultipliers[c]
}

// ErrCardCount is returned when an evaluator receives the wrong number of cards.
var ErrCardCount = errors.New("wrong number of cards")

// HandRank is an evaluated hand: its category and the five cards that made it.
// Values are only produced by the evaluator; the zero value is not a valid rank.
type HandRank struct {
	category Category
	cards    [5]deck.Card
}

// Category returns the hand class.
func (r HandRank) Category() Category { return r.category }

// Ordinal is the category ordinal, 1 best to 10 worst.
func (r HandRank) Ordinal() int { return int(r.category) }

// Multiplier is the payout multiplier for the hand's category.
func (r HandRank) Multiplier() int64 { return r.category.Multiplier() }

// Cards returns the five cards the rank was made from.
func (r HandRank) Cards() []deck.Card { return slices.Clone(r.cards[:]) }

// Valid reports whether r came from the evaluator.
func (r HandRank) Valid() bool { return r.category >= RoyalFlush && r.category <= HighCard }

// String returns a human-readable hand description.
func (r HandRank) String() string { return r.category.String() }

// Compare returns 1 if r beats other, -1 if other beats r and 0 when both
// share a category. Only categories are compared; there are no kickers.
func (r HandRank) Compare(other HandRank) int {
	switch {
	case r.category < other.category:
		return 1
	case r.category > other.category:
		return -1
	default:
		return 0
	}
}

const wheelMask = 1<<14 | 1<<5 | 1<<4 | 1<<3 | 1<<2

// Evaluate5 classifies exactly five cards.
func Evaluate5(cards []deck.Card) (HandRank, error) {
	if len(cards) != 5 {
		return HandRank{}, fmt.Errorf("%w: evaluate5 needs 5, got %d", ErrCardCount, len(cards))
	}
	var hand [5]deck.Card
	copy(hand[:], cards)
	return HandRank{category: classify(hand), cards: hand}, nil
}

// Evaluate7 returns the best rank over all 21 five-card subsets of seven cards.
func Evaluate7(cards []deck.Card) (HandRank, error) {
	if len(cards) != 7 {
		return HandRank{}, fmt.Errorf("%w: evaluate7 needs 7, got %d", ErrCardCount, len(cards))
	}
	return best(cards), nil
}

// EvaluateBest ranks any pool of five to seven cards by its best five.
func EvaluateBest(cards []deck.Card) (HandRank, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return HandRank{}, fmt.Errorf("%w: need 5 to 7, got %d", ErrCardCount, len(cards))
	}
	return best(cards), nil
}

// best enumerates every five-card subset by choosing which cards to leave out.
// The first subset of the best category wins; equal categories are interchangeable.
func best(cards []deck.Card) HandRank {
	var result HandRank
	forEachFive(cards, func(hand [5]deck.Card) {
		c := classify(hand)
		if !result.Valid() || c < result.category {
			result = HandRank{category: c, cards: hand}
		}
	})
	return result
}

func forEachFive(cards []deck.Card, fn func([5]deck.Card)) {
	n := len(cards)
	var hand [5]deck.Card
	var pick func(start, depth int)
	pick = func(start, depth int) {
		if depth == 5 {
			fn(hand)
			return
		}
		for i := start; i <= n-(5-depth); i++ {
			hand[depth] = cards[i]
			pick(i+1, depth+1)
		}
	}
	pick(0, 0)
}

func classify(hand [5]deck.Card) Category {
	var counts [15]uint8
	var rankMask uint16
	flush := true
	for i, c := range hand {
		counts[c.PokerValue()]++
		rankMask |= 1 << c.PokerValue()
		if i > 0 && c.Suit != hand[0].Suit {
			flush = false
		}
	}

	high, straight := straightHigh(rankMask)

	switch {
	case flush && straight && high == int(deck.Ace):
		return RoyalFlush
	case flush && straight:
		return StraightFlush
	}

	quads := findNOfAKind(counts, 4)
	trips := findNOfAKind(counts, 3)
	pair := findNOfAKind(counts, 2)

	switch {
	case quads >= 0:
		return FourOfAKind
	case trips >= 0 && pair >= 0:
		return FullHouse
	case flush:
		return Flush
	case straight:
		return Straight
	case trips >= 0:
		return ThreeOfAKind
	case pair >= 0 && findNOfAKindExcept(counts, 2, pair) >= 0:
		return TwoPair
	case pair >= int(deck.Jack):
		return JacksOrBetter
	default:
		return HighCard
	}
}

// straightHigh reports whether five distinct ranks are consecutive and the
// straight's top card. The wheel (A-2-3-4-5) is five-high.
func straightHigh(rankMask uint16) (int, bool) {
	if bits.OnesCount16(rankMask) != 5 {
		return 0, false
	}
	if rankMask == wheelMask {
		return int(deck.Five), true
	}
	low := bits.TrailingZeros16(rankMask)
	if rankMask == 0x1F<<low {
		return low + 4, true
	}
	return 0, false
}

// findNOfAKind finds the highest rank with exactly n cards
func findNOfAKind(counts [15]uint8, n uint8) int {
	for rank := int(deck.Ace); rank >= int(deck.Two); rank-- {
		if counts[rank] == n {
			return rank
		}
	}
	return -1
}

// findNOfAKindExcept finds the highest rank with exactly n cards, excluding a specific rank
func findNOfAKindExcept(counts [15]uint8, n uint8, except int) int {
	for rank := int(deck.Ace); rank >= int(deck.Two); rank-- {
		if rank != except && counts[rank] == n {
			return rank
		}
	}
	return -1
}
