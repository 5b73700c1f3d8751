package session

import (
	"github.com/lox/minicasino/internal/roulette"
	"github.com/lox/minicasino/internal/slots"
	"github.com/lox/minicasino/internal/wager"
)

// DealBlackjack starts a blackjack round. A natural settles immediately.
func (s *Session) DealBlackjack(bet int64) (*wager.Settlement, error) {
	if err := s.checkLimits(wager.Blackjack, bet); err != nil {
		return nil, err
	}
	return s.settle(s.blackjack.Deal(bet))
}

// Hit draws a blackjack card.
func (s *Session) Hit() (*wager.Settlement, error) {
	return s.settle(s.blackjack.Hit())
}

// Stand ends the player's blackjack turn.
func (s *Session) Stand() (*wager.Settlement, error) {
	return s.settle(s.blackjack.Stand())
}

// DoubleDown doubles the blackjack stake for exactly one more card.
func (s *Session) DoubleDown() (*wager.Settlement, error) {
	return s.settle(s.blackjack.DoubleDown())
}

// NewBlackjackRound resets a finished blackjack table.
func (s *Session) NewBlackjackRound() error {
	return s.blackjack.NewGame()
}

// DealPoker starts a poker round.
func (s *Session) DealPoker(bet int64) error {
	if err := s.checkLimits(wager.Poker, bet); err != nil {
		return err
	}
	return s.poker.Deal(bet)
}

// AdvancePoker calls or checks to the next street, settling after the river.
func (s *Session) AdvancePoker() (*wager.Settlement, error) {
	return s.settle(s.poker.Advance())
}

// FoldPoker forfeits the pot.
func (s *Session) FoldPoker() (*wager.Settlement, error) {
	return s.settle(s.poker.Fold())
}

// NewPokerRound resets a finished poker table.
func (s *Session) NewPokerRound() error {
	return s.poker.NewGame()
}

// PlaceRouletteBet stakes amount on sel. Limits apply to each placement.
func (s *Session) PlaceRouletteBet(sel roulette.Selection, amount int64) error {
	if err := s.checkLimits(wager.Roulette, amount); err != nil {
		return err
	}
	return s.roulette.PlaceBet(sel, amount)
}

// ClearRouletteBets refunds every placed bet.
func (s *Session) ClearRouletteBets() (int64, error) {
	return s.roulette.ClearBets()
}

// SpinRoulette spins the wheel and settles all bets.
func (s *Session) SpinRoulette() (*roulette.SpinResult, *wager.Settlement, error) {
	result, settlement, err := s.roulette.Spin()
	if _, err := s.settle(settlement, err); err != nil {
		return nil, nil, err
	}
	return result, settlement, nil
}

// SpinSlots plays one slot spin.
func (s *Session) SpinSlots(bet int64) (*slots.Result, *wager.Settlement, error) {
	if err := s.checkLimits(wager.Slots, bet); err != nil {
		return nil, nil, err
	}
	result, settlement, err := s.slots.Spin(bet)
	if _, err := s.settle(settlement, err); err != nil {
		return nil, nil, err
	}
	return result, settlement, nil
}
