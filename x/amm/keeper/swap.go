package keeper

import (
	"cosmossdk.io/math"

	"github.com/lunex-dex/lunex/x/amm/types"
)

// Swap sends the requested output amounts to the recipient against whatever
// inputs were deposited to the pool account before the call. Inputs are
// inferred, not declared: any balance above the recorded reserve counts.
//
// The pricing check is the fee-adjusted constant product. Each input side is
// discounted by the fee fraction and the adjusted product of the would-be new
// balances must not fall below the product of the old reserves at the same
// scale. Everything else about the trade shape is the caller's business,
// including flash-style swaps that borrow output and repay within the call.
func (k *Keeper) Swap(pool *types.Pool, amount0Out, amount1Out math.Int, to string) error {
	if amount0Out.IsNil() || amount1Out.IsNil() || amount0Out.IsNegative() || amount1Out.IsNegative() {
		return types.ErrInsufficientOutputAmount.Wrap("output amounts cannot be negative")
	}
	if to == "" || to == pool.Address {
		return types.ErrInvalidRecipient.Wrapf("cannot swap to %q", to)
	}
	if err := k.lockPool(pool); err != nil {
		return err
	}
	defer pool.Unlock()

	status := "failed"
	defer func() {
		if k.metrics != nil {
			k.metrics.SwapsTotal.WithLabelValues(k.pairLabel(pool), status).Inc()
		}
	}()

	if err := k.validatePoolState(pool); err != nil {
		return err
	}
	if amount0Out.IsZero() && amount1Out.IsZero() {
		return types.ErrInsufficientOutputAmount.Wrap("both output amounts are zero")
	}
	if amount0Out.GTE(pool.Reserve0) || amount1Out.GTE(pool.Reserve1) {
		return types.ErrInsufficientLiquidity.Wrapf(
			"requested %s/%s against reserves %s/%s",
			amount0Out, amount1Out, pool.Reserve0, pool.Reserve1,
		)
	}

	balance0 := k.bank.BalanceOf(pool.Token0, pool.Address)
	balance1 := k.bank.BalanceOf(pool.Token1, pool.Address)

	// Anything above the recorded reserve was deposited for this trade. The
	// outputs have not left yet, so they cancel out of the comparison.
	amount0In := math.ZeroInt()
	if balance0.GT(pool.Reserve0) {
		amount0In = balance0.Sub(pool.Reserve0)
	}
	amount1In := math.ZeroInt()
	if balance1.GT(pool.Reserve1) {
		amount1In = balance1.Sub(pool.Reserve1)
	}
	if amount0In.IsZero() && amount1In.IsZero() {
		return types.ErrInsufficientInputAmount.Wrap("no input deposited")
	}

	if balance0.LT(amount0Out) || balance1.LT(amount1Out) {
		return types.ErrInsufficientLiquidity.Wrapf(
			"pool balances %s/%s cannot cover outputs %s/%s",
			balance0, balance1, amount0Out, amount1Out,
		)
	}
	after0 := balance0.Sub(amount0Out)
	after1 := balance1.Sub(amount1Out)

	if err := k.checkInvariant(pool, after0, after1, amount0In, amount1In); err != nil {
		return err
	}

	commit, err := k.stageCommit(pool, after0, after1)
	if err != nil {
		return err
	}
	fees, err := k.stageFees(pool, amount0In, amount1In)
	if err != nil {
		return err
	}

	// External effects run before any pool mutation so a failure unwinds to
	// exactly the pre-call state.
	if amount0Out.IsPositive() {
		if err := k.bank.Transfer(pool.Token0, pool.Address, to, amount0Out); err != nil {
			return types.ErrTransferFailed.Wrapf("swap %s: %v", pool.Token0, err)
		}
	}
	if amount1Out.IsPositive() {
		if err := k.bank.Transfer(pool.Token1, pool.Address, to, amount1Out); err != nil {
			k.compensate(pool, to, pool.Token0, amount0Out)
			return types.ErrTransferFailed.Wrapf("swap %s: %v", pool.Token1, err)
		}
	}
	if err := k.notifyFees(pool, fees); err != nil {
		k.compensate(pool, to, pool.Token0, amount0Out)
		k.compensate(pool, to, pool.Token1, amount1Out)
		return types.ErrTransferFailed.Wrapf("fee notification: %v", err)
	}

	k.applyFees(pool, fees)
	k.applyCommit(pool, commit)
	status = "success"

	k.events.EmitEvent(types.NewEvent(types.EventTypeSwap,
		types.NewAttribute(types.AttributeKeyPool, pool.Address),
		types.NewAttribute(types.AttributeKeyRecipient, to),
		types.NewAttribute(types.AttributeKeyAmount0In, amount0In.String()),
		types.NewAttribute(types.AttributeKeyAmount1In, amount1In.String()),
		types.NewAttribute(types.AttributeKeyAmount0Out, amount0Out.String()),
		types.NewAttribute(types.AttributeKeyAmount1Out, amount1Out.String()),
	))
	k.emitFeeEvents(pool, fees)

	if k.metrics != nil {
		pair := k.pairLabel(pool)
		if amount0In.IsPositive() {
			k.metrics.SwapVolume.WithLabelValues(pair, pool.Token0).Add(metricValue(amount0In))
		}
		if amount1In.IsPositive() {
			k.metrics.SwapVolume.WithLabelValues(pair, pool.Token1).Add(metricValue(amount1In))
		}
	}
	k.logger.Info("swap executed",
		"pool", pool.Address,
		"recipient", to,
		"amount0_in", amount0In,
		"amount1_in", amount1In,
		"amount0_out", amount0Out,
		"amount1_out", amount1Out,
	)
	return nil
}

// checkInvariant verifies the fee-adjusted constant product. Both sides of
// the comparison are scaled by the fee denominator squared so the discount
// stays in integer arithmetic.
func (k *Keeper) checkInvariant(pool *types.Pool, after0, after1, amount0In, amount1In math.Int) error {
	feeFraction := k.params.FeeDenominator.Sub(k.params.FeeNumerator)

	adjust := func(balance, amountIn math.Int) (math.Int, error) {
		scaled, err := SafeMul(balance, k.params.FeeDenominator)
		if err != nil {
			return math.ZeroInt(), err
		}
		discount, err := SafeMul(amountIn, feeFraction)
		if err != nil {
			return math.ZeroInt(), err
		}
		return SafeSub(scaled, discount)
	}

	adjusted0, err := adjust(after0, amount0In)
	if err != nil {
		return err
	}
	adjusted1, err := adjust(after1, amount1In)
	if err != nil {
		return err
	}
	newProduct, err := SafeMul(adjusted0, adjusted1)
	if err != nil {
		return err
	}

	scaled0, err := SafeMul(pool.Reserve0, k.params.FeeDenominator)
	if err != nil {
		return err
	}
	scaled1, err := SafeMul(pool.Reserve1, k.params.FeeDenominator)
	if err != nil {
		return err
	}
	oldProduct, err := SafeMul(scaled0, scaled1)
	if err != nil {
		return err
	}

	if newProduct.LT(oldProduct) {
		return types.ErrKInvariantViolated.Wrapf(
			"adjusted product %s below %s", newProduct, oldProduct,
		)
	}
	return nil
}

// compensate returns an already-sent output to the pool after a later step
// failed. Best effort; an unwinding failure is logged, not returned, because
// the original error is the one the caller needs.
func (k *Keeper) compensate(pool *types.Pool, from, denom string, amount math.Int) {
	if !amount.IsPositive() {
		return
	}
	if err := k.bank.Transfer(denom, from, pool.Address, amount); err != nil {
		k.logger.Error("swap compensation failed",
			"pool", pool.Address,
			"denom", denom,
			"amount", amount,
			"error", err,
		)
	}
}
