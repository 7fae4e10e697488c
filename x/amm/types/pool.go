package types

import (
	"sync/atomic"

	"cosmossdk.io/math"
)

// Pool is the reserve ledger of one trading pair: the two recorded reserves,
// the liquidity-share supply with its per-holder balances, and the cumulative
// price counters sampled by oracle consumers.
//
// A Pool is created once by the external registry and afterwards mutated only
// by the keeper while the reentrancy lock is held. Pools are independent; no
// cross-pool synchronization exists.
type Pool struct {
	// Address identifies the pool's own account with the asset ledger.
	// Deposits are credited to it before Mint/Swap, shares to be redeemed
	// are transferred to it before Burn.
	Address string

	// Token0 < Token1, fixed at creation.
	Token0 string
	Token1 string

	Reserve0    math.Int
	Reserve1    math.Int
	ShareSupply math.Int

	// LastUpdateTime is the unix timestamp of the last reserve commit.
	LastUpdateTime int64

	// UQ112-scaled monotone price integrals.
	PriceCumulative0 math.Int
	PriceCumulative1 math.Int

	// Nominal fee portions accrued for the non-LP recipients. The assets
	// themselves stay in the reserves; these counters are what the treasury
	// and rewards collaborators settle against.
	AccruedProtocolFees0 math.Int
	AccruedProtocolFees1 math.Int
	AccruedRewardsFees0  math.Int
	AccruedRewardsFees1  math.Int

	shareBalances map[string]math.Int
	locked        atomic.Bool
}

// NewPool creates an empty pool for a canonically ordered pair. Identical or
// empty token identifiers are rejected; out-of-order tokens are swapped so the
// stored pair is always Token0 < Token1.
func NewPool(address, token0, token1 string) (*Pool, error) {
	if address == "" {
		return nil, ErrInvalidPoolState.Wrap("pool address cannot be empty")
	}
	if token0 == "" || token1 == "" {
		return nil, ErrInvalidTokenPair.Wrap("token identifiers cannot be empty")
	}
	if token0 == token1 {
		return nil, ErrInvalidTokenPair.Wrapf("identical tokens %s", token0)
	}
	if token0 > token1 {
		token0, token1 = token1, token0
	}

	return &Pool{
		Address:              address,
		Token0:               token0,
		Token1:               token1,
		Reserve0:             math.ZeroInt(),
		Reserve1:             math.ZeroInt(),
		ShareSupply:          math.ZeroInt(),
		PriceCumulative0:     math.ZeroInt(),
		PriceCumulative1:     math.ZeroInt(),
		AccruedProtocolFees0: math.ZeroInt(),
		AccruedProtocolFees1: math.ZeroInt(),
		AccruedRewardsFees0:  math.ZeroInt(),
		AccruedRewardsFees1:  math.ZeroInt(),
		shareBalances:        make(map[string]math.Int),
	}, nil
}

// GetReserves returns the recorded reserves and the timestamp of the last
// reserve commit.
func (p *Pool) GetReserves() (math.Int, math.Int, int64) {
	return p.Reserve0, p.Reserve1, p.LastUpdateTime
}

// GetCumulativePrices returns the UQ112-scaled price integrals. Oracle
// consumers sample this twice and divide the deltas by the elapsed time.
func (p *Pool) GetCumulativePrices() (math.Int, math.Int) {
	return p.PriceCumulative0, p.PriceCumulative1
}

// ShareBalanceOf returns the liquidity-share balance of a holder.
func (p *Pool) ShareBalanceOf(holder string) math.Int {
	bal, ok := p.shareBalances[holder]
	if !ok {
		return math.ZeroInt()
	}
	return bal
}

// SetShareBalance records a holder's share balance, dropping the entry when it
// reaches zero. Callers are responsible for keeping the sum of all balances
// equal to ShareSupply.
func (p *Pool) SetShareBalance(holder string, shares math.Int) {
	if shares.IsZero() {
		delete(p.shareBalances, holder)
		return
	}
	p.shareBalances[holder] = shares
}

// TryLock atomically acquires the reentrancy lock. Returns false if the lock
// is already held.
func (p *Pool) TryLock() bool {
	return p.locked.CompareAndSwap(false, true)
}

// Unlock releases the reentrancy lock unconditionally.
func (p *Pool) Unlock() {
	p.locked.Store(false)
}
