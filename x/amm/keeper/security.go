package keeper

import (
	"github.com/lunex-dex/lunex/x/amm/types"
)

// lockPool acquires the pool's reentrancy lock. Every state-changing entry
// point takes the lock before reading balances and releases it on all paths,
// so a collaborator that calls back into the same pool is rejected instead of
// observing half-updated state.
func (k *Keeper) lockPool(pool *types.Pool) error {
	if !pool.TryLock() {
		return types.ErrReentrancy.Wrapf("pool %s is locked", k.pairLabel(pool))
	}
	return nil
}

// validatePoolState checks the structural invariants of a pool before an
// operation runs against it.
func (k *Keeper) validatePoolState(pool *types.Pool) error {
	if pool == nil {
		return types.ErrInvalidPoolState.Wrap("pool is nil")
	}
	if pool.Reserve0.IsNil() || pool.Reserve1.IsNil() || pool.ShareSupply.IsNil() {
		return types.ErrInvalidPoolState.Wrap("uninitialized pool fields")
	}
	if pool.Reserve0.IsNegative() || pool.Reserve1.IsNegative() {
		return types.ErrInvalidPoolState.Wrapf(
			"negative reserves %s/%s", pool.Reserve0, pool.Reserve1,
		)
	}
	if pool.ShareSupply.IsNegative() {
		return types.ErrInvalidPoolState.Wrapf("negative share supply %s", pool.ShareSupply)
	}

	// Funded pools carry the locked minimum, emptied pools carry nothing.
	if pool.ShareSupply.IsPositive() && pool.ShareSupply.LT(k.params.MinimumLiquidity) {
		return types.ErrInvalidPoolState.Wrapf(
			"share supply %s below locked minimum %s",
			pool.ShareSupply, k.params.MinimumLiquidity,
		)
	}
	if pool.ShareSupply.IsZero() && (pool.Reserve0.IsPositive() || pool.Reserve1.IsPositive()) {
		return types.ErrInvalidPoolState.Wrap("reserves recorded without share supply")
	}
	return nil
}
