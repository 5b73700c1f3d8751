package blackjack

import "github.com/lox/minicasino/internal/deck"

// Blackjack is the target score.
const Blackjack = 21

// DealerStandsOn is the score at which the dealer stops drawing.
const DealerStandsOn = 17

// Score sums the hand with aces as 11, demoting one ace at a time to 1
// while the total is over 21.
func Score(hand []deck.Card) int {
	score, aces := 0, 0
	for _, c := range hand {
		if c.IsAce() {
			aces++
		}
		score += c.BlackjackValue()
	}
	for score > Blackjack && aces > 0 {
		score -= 10
		aces--
	}
	return score
}

// IsBust reports whether the hand's score exceeds 21.
func IsBust(hand []deck.Card) bool {
	return Score(hand) > Blackjack
}

// IsNatural reports a two-card 21.
func IsNatural(hand []deck.Card) bool {
	return len(hand) == 2 && Score(hand) == Blackjack
}
