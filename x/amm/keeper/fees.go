package keeper

import (
	"cosmossdk.io/math"

	"github.com/lunex-dex/lunex/x/amm/types"
)

// feeAccrual is the staged outcome of the fee split for one swap: the
// portions cut for each non-LP role per denom, and the counter totals that
// will be written at commit time. The LP portion needs no bookkeeping, it
// simply stays in the reserves.
type feeAccrual struct {
	cutProtocol0 math.Int
	cutProtocol1 math.Int
	cutRewards0  math.Int
	cutRewards1  math.Int

	totalProtocol0 math.Int
	totalProtocol1 math.Int
	totalRewards0  math.Int
	totalRewards1  math.Int
}

// stageFees computes the nominal fee retained from each input side and splits
// it across the configured roles, all floor rounded. Inputs too small to
// produce a fee contribute nothing.
func (k *Keeper) stageFees(pool *types.Pool, amount0In, amount1In math.Int) (feeAccrual, error) {
	feeFraction := k.params.FeeDenominator.Sub(k.params.FeeNumerator)
	totalBp := math.NewInt(types.TotalShareBp)

	split := func(amountIn math.Int) (protocol, rewards math.Int, err error) {
		fee, err := SafeMulDiv(amountIn, feeFraction, k.params.FeeDenominator)
		if err != nil {
			return math.ZeroInt(), math.ZeroInt(), err
		}
		protocol, err = SafeMulDiv(fee, k.params.ProtocolShareBp, totalBp)
		if err != nil {
			return math.ZeroInt(), math.ZeroInt(), err
		}
		rewards, err = SafeMulDiv(fee, k.params.RewardsShareBp, totalBp)
		if err != nil {
			return math.ZeroInt(), math.ZeroInt(), err
		}
		return protocol, rewards, nil
	}

	var acc feeAccrual
	var err error
	if acc.cutProtocol0, acc.cutRewards0, err = split(amount0In); err != nil {
		return feeAccrual{}, err
	}
	if acc.cutProtocol1, acc.cutRewards1, err = split(amount1In); err != nil {
		return feeAccrual{}, err
	}

	if acc.totalProtocol0, err = SafeAdd(pool.AccruedProtocolFees0, acc.cutProtocol0); err != nil {
		return feeAccrual{}, err
	}
	if acc.totalProtocol1, err = SafeAdd(pool.AccruedProtocolFees1, acc.cutProtocol1); err != nil {
		return feeAccrual{}, err
	}
	if acc.totalRewards0, err = SafeAdd(pool.AccruedRewardsFees0, acc.cutRewards0); err != nil {
		return feeAccrual{}, err
	}
	if acc.totalRewards1, err = SafeAdd(pool.AccruedRewardsFees1, acc.cutRewards1); err != nil {
		return feeAccrual{}, err
	}
	return acc, nil
}

// notifyFees reports each nonzero portion to the fee collaborator. An error
// aborts the swap; the caller unwinds any transfers already made.
func (k *Keeper) notifyFees(pool *types.Pool, acc feeAccrual) error {
	notify := func(role types.FeeRole, denom string, amount math.Int) error {
		if !amount.IsPositive() {
			return nil
		}
		return k.fees.NotifyFee(role, denom, amount)
	}

	if err := notify(types.FeeRoleProtocol, pool.Token0, acc.cutProtocol0); err != nil {
		return err
	}
	if err := notify(types.FeeRoleProtocol, pool.Token1, acc.cutProtocol1); err != nil {
		return err
	}
	if err := notify(types.FeeRoleRewards, pool.Token0, acc.cutRewards0); err != nil {
		return err
	}
	if err := notify(types.FeeRoleRewards, pool.Token1, acc.cutRewards1); err != nil {
		return err
	}
	return nil
}

// applyFees writes the staged counter totals into the pool. Infallible.
func (k *Keeper) applyFees(pool *types.Pool, acc feeAccrual) {
	pool.AccruedProtocolFees0 = acc.totalProtocol0
	pool.AccruedProtocolFees1 = acc.totalProtocol1
	pool.AccruedRewardsFees0 = acc.totalRewards0
	pool.AccruedRewardsFees1 = acc.totalRewards1
}

// emitFeeEvents announces each nonzero accrued portion.
func (k *Keeper) emitFeeEvents(pool *types.Pool, acc feeAccrual) {
	emit := func(role types.FeeRole, denom string, amount math.Int) {
		if !amount.IsPositive() {
			return
		}
		k.events.EmitEvent(types.NewEvent(types.EventTypeFees,
			types.NewAttribute(types.AttributeKeyPool, pool.Address),
			types.NewAttribute(types.AttributeKeyFeeRole, string(role)),
			types.NewAttribute(types.AttributeKeyFeeDenom, denom),
			types.NewAttribute(types.AttributeKeyFeeAmount, amount.String()),
		))
		if k.metrics != nil {
			k.metrics.FeesAccrued.WithLabelValues(k.pairLabel(pool), string(role)).Add(metricValue(amount))
		}
	}

	emit(types.FeeRoleProtocol, pool.Token0, acc.cutProtocol0)
	emit(types.FeeRoleProtocol, pool.Token1, acc.cutProtocol1)
	emit(types.FeeRoleRewards, pool.Token0, acc.cutRewards0)
	emit(types.FeeRoleRewards, pool.Token1, acc.cutRewards1)
}
