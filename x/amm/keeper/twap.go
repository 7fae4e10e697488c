package keeper

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/lunex-dex/lunex/x/amm/types"
)

// priceScale is the UQ112 fixed-point scale of the cumulative price counters.
// Scaling before the division keeps precision for pairs whose instantaneous
// price is far below one.
var priceScale = math.NewIntFromBigInt(new(big.Int).Lsh(big.NewInt(1), 112))

// reserveCommit is the staged outcome of an operation: the balances that will
// become the new reserves and the advanced price integrals. Nothing here has
// touched the pool yet, so an abort after staging leaves no trace.
type reserveCommit struct {
	balance0  math.Int
	balance1  math.Int
	cum0      math.Int
	cum1      math.Int
	timestamp int64
}

// stageCommit integrates the current marginal price over the time elapsed
// since the last commit and pairs the result with the balances to be recorded.
// The integration uses the reserves as they were before this operation, so an
// operation's own effect on the price is only observable from the next commit
// onward.
//
// No time elapsed, or an empty pool, advances nothing.
func (k *Keeper) stageCommit(pool *types.Pool, balance0, balance1 math.Int) (reserveCommit, error) {
	now := k.now().Unix()
	commit := reserveCommit{
		balance0:  balance0,
		balance1:  balance1,
		cum0:      pool.PriceCumulative0,
		cum1:      pool.PriceCumulative1,
		timestamp: now,
	}

	if now <= pool.LastUpdateTime || pool.Reserve0.IsZero() || pool.Reserve1.IsZero() {
		return commit, nil
	}
	elapsed := math.NewInt(now - pool.LastUpdateTime)

	price0, err := SafeMulDiv(pool.Reserve1, priceScale, pool.Reserve0)
	if err != nil {
		return reserveCommit{}, err
	}
	delta0, err := SafeMul(price0, elapsed)
	if err != nil {
		return reserveCommit{}, err
	}
	commit.cum0, err = SafeAdd(pool.PriceCumulative0, delta0)
	if err != nil {
		return reserveCommit{}, err
	}

	price1, err := SafeMulDiv(pool.Reserve0, priceScale, pool.Reserve1)
	if err != nil {
		return reserveCommit{}, err
	}
	delta1, err := SafeMul(price1, elapsed)
	if err != nil {
		return reserveCommit{}, err
	}
	commit.cum1, err = SafeAdd(pool.PriceCumulative1, delta1)
	if err != nil {
		return reserveCommit{}, err
	}

	return commit, nil
}

// applyCommit writes a staged commit into the pool and announces the new
// reserve state. Infallible; callers run it only after every fallible step of
// the operation has succeeded.
func (k *Keeper) applyCommit(pool *types.Pool, commit reserveCommit) {
	pool.Reserve0 = commit.balance0
	pool.Reserve1 = commit.balance1
	pool.PriceCumulative0 = commit.cum0
	pool.PriceCumulative1 = commit.cum1
	pool.LastUpdateTime = commit.timestamp

	k.events.EmitEvent(types.NewEvent(types.EventTypeSync,
		types.NewAttribute(types.AttributeKeyPool, pool.Address),
		types.NewAttribute(types.AttributeKeyReserve0, pool.Reserve0.String()),
		types.NewAttribute(types.AttributeKeyReserve1, pool.Reserve1.String()),
	))

	if k.metrics != nil {
		pair := k.pairLabel(pool)
		k.metrics.PoolReserves.WithLabelValues(pair, pool.Token0).Set(metricValue(pool.Reserve0))
		k.metrics.PoolReserves.WithLabelValues(pair, pool.Token1).Set(metricValue(pool.Reserve1))
		k.metrics.ShareSupply.WithLabelValues(pair).Set(metricValue(pool.ShareSupply))
		k.metrics.SyncsTotal.Inc()
	}
}

// Sync force-matches the recorded reserves to the pool's actual balances.
// Used to absorb donations sent directly to the pool account.
func (k *Keeper) Sync(pool *types.Pool) error {
	if err := k.lockPool(pool); err != nil {
		return err
	}
	defer pool.Unlock()

	if err := k.validatePoolState(pool); err != nil {
		return err
	}
	// An unfunded pool has nothing to reconcile; deposits made before the
	// genesis mint are counted by the mint itself.
	if pool.ShareSupply.IsZero() {
		return nil
	}

	commit, err := k.stageCommit(pool,
		k.bank.BalanceOf(pool.Token0, pool.Address),
		k.bank.BalanceOf(pool.Token1, pool.Address),
	)
	if err != nil {
		return err
	}

	k.applyCommit(pool, commit)
	k.logger.Debug("reserves synced",
		"pool", pool.Address,
		"reserve0", pool.Reserve0,
		"reserve1", pool.Reserve1,
	)
	return nil
}

// Skim transfers any balance in excess of the recorded reserves to the given
// recipient. The mirror of Sync: reserves stay put, the surplus leaves.
func (k *Keeper) Skim(pool *types.Pool, to string) error {
	if to == "" || to == pool.Address {
		return types.ErrInvalidRecipient.Wrapf("cannot skim to %q", to)
	}
	if err := k.lockPool(pool); err != nil {
		return err
	}
	defer pool.Unlock()

	if err := k.validatePoolState(pool); err != nil {
		return err
	}

	excess0 := math.ZeroInt()
	if balance0 := k.bank.BalanceOf(pool.Token0, pool.Address); balance0.GT(pool.Reserve0) {
		excess0 = balance0.Sub(pool.Reserve0)
	}
	excess1 := math.ZeroInt()
	if balance1 := k.bank.BalanceOf(pool.Token1, pool.Address); balance1.GT(pool.Reserve1) {
		excess1 = balance1.Sub(pool.Reserve1)
	}

	if excess0.IsPositive() {
		if err := k.bank.Transfer(pool.Token0, pool.Address, to, excess0); err != nil {
			return types.ErrTransferFailed.Wrapf("skim %s: %v", pool.Token0, err)
		}
	}
	if excess1.IsPositive() {
		if err := k.bank.Transfer(pool.Token1, pool.Address, to, excess1); err != nil {
			if excess0.IsPositive() {
				if revertErr := k.bank.Transfer(pool.Token0, to, pool.Address, excess0); revertErr != nil {
					k.logger.Error("skim compensation failed",
						"pool", pool.Address,
						"denom", pool.Token0,
						"amount", excess0,
						"error", revertErr,
					)
				}
			}
			return types.ErrTransferFailed.Wrapf("skim %s: %v", pool.Token1, err)
		}
	}

	k.logger.Debug("pool skimmed",
		"pool", pool.Address,
		"recipient", to,
		"amount0", excess0,
		"amount1", excess1,
	)
	return nil
}
