// Package bank provides an in-memory asset ledger implementing the transfer
// capability the engine consumes. The simulator and the test suites run
// against it; production hosts supply their own ledger.
package bank

import (
	"sync"

	"cosmossdk.io/math"

	"github.com/lunex-dex/lunex/x/amm/types"
)

// Ledger is a concurrency-safe denom/holder balance table.
type Ledger struct {
	mu       sync.RWMutex
	balances map[string]map[string]math.Int
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{balances: make(map[string]map[string]math.Int)}
}

// Mint credits freshly created units of denom to a holder.
func (l *Ledger) Mint(denom, holder string, amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInsufficientFunds.Wrapf("cannot mint %s %s", amount, denom)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.credit(denom, holder, amount)
	return nil
}

// Transfer moves amount of denom between holders.
func (l *Ledger) Transfer(denom, from, to string, amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInsufficientFunds.Wrapf("cannot transfer %s %s", amount, denom)
	}
	if amount.IsZero() {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	fromBalance := l.balanceLocked(denom, from)
	if fromBalance.LT(amount) {
		return types.ErrInsufficientFunds.Wrapf(
			"%s holds %s %s, needs %s", from, fromBalance, denom, amount,
		)
	}
	l.setLocked(denom, from, fromBalance.Sub(amount))
	l.credit(denom, to, amount)
	return nil
}

// BalanceOf returns the holder's balance of denom, zero if unknown.
func (l *Ledger) BalanceOf(denom, holder string) math.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balanceLocked(denom, holder)
}

func (l *Ledger) balanceLocked(denom, holder string) math.Int {
	if holders, ok := l.balances[denom]; ok {
		if bal, ok := holders[holder]; ok {
			return bal
		}
	}
	return math.ZeroInt()
}

func (l *Ledger) credit(denom, holder string, amount math.Int) {
	l.setLocked(denom, holder, l.balanceLocked(denom, holder).Add(amount))
}

func (l *Ledger) setLocked(denom, holder string, amount math.Int) {
	holders, ok := l.balances[denom]
	if !ok {
		holders = make(map[string]math.Int)
		l.balances[denom] = holders
	}
	if amount.IsZero() {
		delete(holders, holder)
		return
	}
	holders[holder] = amount
}
