package wager

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientFunds is returned when a debit-guarded action exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrIllegalTransition is returned when an action is invoked outside the
	// state that permits it.
	ErrIllegalTransition = errors.New("illegal transition")

	// ErrInvalidBet is returned for non-positive amounts and malformed selections.
	ErrInvalidBet = errors.New("invalid bet")
)

// IllegalTransition wraps ErrIllegalTransition with the rejected action and current state.
func IllegalTransition(action string, state fmt.Stringer) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrIllegalTransition, action, state)
}
