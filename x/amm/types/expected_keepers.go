package types

import (
	"cosmossdk.io/math"
)

// BankKeeper is the asset-transfer capability the engine consumes. The hosting
// environment supplies the implementation; the engine never holds assets
// itself, it only moves and reads the balances of the pool account.
//
// Transfer failures abort the whole operation; the engine performs a
// compensating transfer if an earlier leg of the same operation already moved
// funds.
type BankKeeper interface {
	// Transfer moves amount of denom from one holder to another.
	Transfer(denom, from, to string, amount math.Int) error

	// BalanceOf returns the current balance of a holder.
	BalanceOf(denom, holder string) math.Int
}

// FeeRouter is the fee-notification capability. The engine reports the nominal
// portion of each swap fee owed to a non-LP recipient; settlement of those
// portions is the collaborator's concern. An error aborts the swap before any
// state is committed.
type FeeRouter interface {
	NotifyFee(role FeeRole, denom string, amount math.Int) error
}
