package wager

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Ledger is the chip balance shared by every game. Games never read or
// mutate the balance directly.
type Ledger interface {
	// TryDebit deducts amount if the balance covers it. It returns false and
	// leaves the balance untouched otherwise.
	TryDebit(amount int64) bool
	// Credit adds amount to the balance.
	Credit(amount int64)
}

// Wallet is an in-memory Ledger. Debits check and deduct under one lock, so
// the balance never goes negative even when actions are chained back to back.
type Wallet struct {
	mu      sync.Mutex
	balance int64
	initial int64
	logger  *log.Logger
}

// NewWallet returns a wallet holding initial chips.
func NewWallet(initial int64, logger *log.Logger) *Wallet {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Wallet{
		balance: initial,
		initial: initial,
		logger:  logger.WithPrefix("wallet"),
	}
}

// Balance returns the current chip count.
func (w *Wallet) Balance() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.balance
}

// TryDebit implements Ledger.
func (w *Wallet) TryDebit(amount int64) bool {
	if amount <= 0 {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if amount > w.balance {
		w.logger.Debug("Debit rejected", "amount", amount, "balance", w.balance)
		return false
	}
	w.balance -= amount
	w.logger.Debug("Debited", "amount", amount, "balance", w.balance)
	return true
}

// Credit implements Ledger. Non-positive amounts are ignored.
func (w *Wallet) Credit(amount int64) {
	if amount <= 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.balance += amount
	w.logger.Debug("Credited", "amount", amount, "balance", w.balance)
}

// Reset restores the starting balance.
func (w *Wallet) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.balance = w.initial
	w.logger.Info("Chips reset", "balance", w.balance)
}
