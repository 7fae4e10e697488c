package keeper

import (
	"cosmossdk.io/math"

	"github.com/lunex-dex/lunex/x/amm/types"
)

// Mint issues liquidity shares against tokens already deposited to the pool
// account. The deposit amounts are measured as the difference between the
// actual balances and the recorded reserves, so callers transfer first and
// mint second.
//
// The first mint of a pool prices the deposit at sqrt(amount0*amount1) and
// permanently locks MinimumLiquidity of it with the sink holder. Later mints
// issue the smaller of the two proportional entitlements, which makes
// one-sided deposits strictly unprofitable.
func (k *Keeper) Mint(pool *types.Pool, to string) (math.Int, error) {
	zero := math.ZeroInt()
	if to == "" || to == types.SinkAddress {
		return zero, types.ErrInvalidRecipient.Wrapf("cannot mint shares to %q", to)
	}
	if err := k.lockPool(pool); err != nil {
		return zero, err
	}
	defer pool.Unlock()

	if err := k.validatePoolState(pool); err != nil {
		return zero, err
	}

	balance0 := k.bank.BalanceOf(pool.Token0, pool.Address)
	balance1 := k.bank.BalanceOf(pool.Token1, pool.Address)
	amount0, err := SafeSub(balance0, pool.Reserve0)
	if err != nil {
		return zero, types.ErrInvalidPoolState.Wrapf("%s balance below recorded reserve", pool.Token0)
	}
	amount1, err := SafeSub(balance1, pool.Reserve1)
	if err != nil {
		return zero, types.ErrInvalidPoolState.Wrapf("%s balance below recorded reserve", pool.Token1)
	}

	commit, err := k.stageCommit(pool, balance0, balance1)
	if err != nil {
		return zero, err
	}

	// Stage every ledger write before mutating anything.
	var shares, newSupply, sinkShares math.Int
	genesis := pool.ShareSupply.IsZero()
	if genesis {
		product, err := SafeMul(amount0, amount1)
		if err != nil {
			return zero, err
		}
		root, err := SafeSqrt(product)
		if err != nil {
			return zero, err
		}
		if !root.GT(k.params.MinimumLiquidity) {
			return zero, types.ErrInsufficientInitialLiquidity.Wrapf(
				"sqrt(%s*%s) = %s, need more than %s",
				amount0, amount1, root, k.params.MinimumLiquidity,
			)
		}
		shares = root.Sub(k.params.MinimumLiquidity)
		newSupply = root
		sinkShares, err = SafeAdd(pool.ShareBalanceOf(types.SinkAddress), k.params.MinimumLiquidity)
		if err != nil {
			return zero, err
		}
	} else {
		entitlement0, err := SafeMulDiv(amount0, pool.ShareSupply, pool.Reserve0)
		if err != nil {
			return zero, err
		}
		entitlement1, err := SafeMulDiv(amount1, pool.ShareSupply, pool.Reserve1)
		if err != nil {
			return zero, err
		}
		shares = math.MinInt(entitlement0, entitlement1)
		if !shares.IsPositive() {
			return zero, types.ErrInsufficientLiquidityMinted.Wrapf(
				"deposit %s/%s rounds to zero shares", amount0, amount1,
			)
		}
		newSupply, err = SafeAdd(pool.ShareSupply, shares)
		if err != nil {
			return zero, err
		}
	}

	recipientShares, err := SafeAdd(pool.ShareBalanceOf(to), shares)
	if err != nil {
		return zero, err
	}

	if genesis {
		pool.SetShareBalance(types.SinkAddress, sinkShares)
	}
	pool.SetShareBalance(to, recipientShares)
	pool.ShareSupply = newSupply
	k.applyCommit(pool, commit)

	k.events.EmitEvent(types.NewEvent(types.EventTypeMint,
		types.NewAttribute(types.AttributeKeyPool, pool.Address),
		types.NewAttribute(types.AttributeKeyRecipient, to),
		types.NewAttribute(types.AttributeKeyAmount0, amount0.String()),
		types.NewAttribute(types.AttributeKeyAmount1, amount1.String()),
		types.NewAttribute(types.AttributeKeyShares, shares.String()),
	))
	if k.metrics != nil {
		k.metrics.MintsTotal.WithLabelValues(k.pairLabel(pool), "success").Inc()
	}
	k.logger.Info("liquidity minted",
		"pool", pool.Address,
		"recipient", to,
		"amount0", amount0,
		"amount1", amount1,
		"shares", shares,
	)
	return shares, nil
}

// Burn redeems the shares held by the pool account itself for a proportional
// cut of both actual balances. Callers transfer the shares to the pool first,
// then burn; the assets go to the given recipient.
//
// The sink holder's shares are never at the pool account, so the supply can
// never fall back below MinimumLiquidity.
func (k *Keeper) Burn(pool *types.Pool, to string) (math.Int, math.Int, error) {
	zero := math.ZeroInt()
	if to == "" || to == pool.Address {
		return zero, zero, types.ErrInvalidRecipient.Wrapf("cannot burn to %q", to)
	}
	if err := k.lockPool(pool); err != nil {
		return zero, zero, err
	}
	defer pool.Unlock()

	if err := k.validatePoolState(pool); err != nil {
		return zero, zero, err
	}

	shares := pool.ShareBalanceOf(pool.Address)
	if !shares.IsPositive() || pool.ShareSupply.IsZero() {
		return zero, zero, types.ErrInsufficientLiquidityBurned.Wrap("no shares held by the pool")
	}

	balance0 := k.bank.BalanceOf(pool.Token0, pool.Address)
	balance1 := k.bank.BalanceOf(pool.Token1, pool.Address)

	amount0, err := SafeMulDiv(shares, balance0, pool.ShareSupply)
	if err != nil {
		return zero, zero, err
	}
	amount1, err := SafeMulDiv(shares, balance1, pool.ShareSupply)
	if err != nil {
		return zero, zero, err
	}
	if !amount0.IsPositive() || !amount1.IsPositive() {
		return zero, zero, types.ErrInsufficientLiquidityBurned.Wrapf(
			"%s shares redeem to %s/%s", shares, amount0, amount1,
		)
	}

	remaining0, err := SafeSub(balance0, amount0)
	if err != nil {
		return zero, zero, err
	}
	remaining1, err := SafeSub(balance1, amount1)
	if err != nil {
		return zero, zero, err
	}
	newSupply, err := SafeSub(pool.ShareSupply, shares)
	if err != nil {
		return zero, zero, err
	}

	commit, err := k.stageCommit(pool, remaining0, remaining1)
	if err != nil {
		return zero, zero, err
	}

	// Release the assets before committing. If the second leg fails the first
	// is compensated so the abort leaves balances untouched.
	if err := k.bank.Transfer(pool.Token0, pool.Address, to, amount0); err != nil {
		return zero, zero, types.ErrTransferFailed.Wrapf("burn %s: %v", pool.Token0, err)
	}
	if err := k.bank.Transfer(pool.Token1, pool.Address, to, amount1); err != nil {
		if revertErr := k.bank.Transfer(pool.Token0, to, pool.Address, amount0); revertErr != nil {
			k.logger.Error("burn compensation failed",
				"pool", pool.Address,
				"denom", pool.Token0,
				"amount", amount0,
				"error", revertErr,
			)
		}
		return zero, zero, types.ErrTransferFailed.Wrapf("burn %s: %v", pool.Token1, err)
	}

	pool.SetShareBalance(pool.Address, zero)
	pool.ShareSupply = newSupply
	k.applyCommit(pool, commit)

	k.events.EmitEvent(types.NewEvent(types.EventTypeBurn,
		types.NewAttribute(types.AttributeKeyPool, pool.Address),
		types.NewAttribute(types.AttributeKeyRecipient, to),
		types.NewAttribute(types.AttributeKeyAmount0, amount0.String()),
		types.NewAttribute(types.AttributeKeyAmount1, amount1.String()),
		types.NewAttribute(types.AttributeKeyShares, shares.String()),
	))
	if k.metrics != nil {
		k.metrics.BurnsTotal.WithLabelValues(k.pairLabel(pool), "success").Inc()
	}
	k.logger.Info("liquidity burned",
		"pool", pool.Address,
		"recipient", to,
		"amount0", amount0,
		"amount1", amount1,
		"shares", shares,
	)
	return amount0, amount1, nil
}

// TransferShares moves liquidity shares between holders inside one pool.
// Moving shares to the pool account is how holders queue them for Burn.
func (k *Keeper) TransferShares(pool *types.Pool, from, to string, shares math.Int) error {
	if shares.IsNil() || !shares.IsPositive() {
		return types.ErrInsufficientShares.Wrap("transfer amount must be positive")
	}
	if to == "" {
		return types.ErrInvalidRecipient.Wrap("recipient cannot be empty")
	}
	if from == "" || from == types.SinkAddress {
		return types.ErrInvalidRecipient.Wrapf("cannot transfer shares from %q", from)
	}
	if from == to {
		return types.ErrInvalidRecipient.Wrap("sender and recipient are identical")
	}
	if err := k.lockPool(pool); err != nil {
		return err
	}
	defer pool.Unlock()

	fromShares := pool.ShareBalanceOf(from)
	if fromShares.LT(shares) {
		return types.ErrInsufficientShares.Wrapf("holder %s has %s, needs %s", from, fromShares, shares)
	}
	toShares, err := SafeAdd(pool.ShareBalanceOf(to), shares)
	if err != nil {
		return err
	}

	pool.SetShareBalance(from, fromShares.Sub(shares))
	pool.SetShareBalance(to, toShares)
	return nil
}
