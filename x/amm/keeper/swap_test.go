package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/lunex-dex/lunex/x/amm/bank"
	"github.com/lunex-dex/lunex/x/amm/keeper"
	"github.com/lunex-dex/lunex/x/amm/types"
)

// TestSwap_Valid trades deposited usdc for atom and leaves the adjusted
// product at or above its pre-trade value.
func TestSwap_Valid(t *testing.T) {
	f := setupKeeper(t)
	pool := seedPool(t, f)
	f.fund(t, bob, "usdc", 10_000)
	f.deposit(t, pool, bob, "usdc", 2_000)

	require.NoError(t, f.keeper.Swap(pool, math.NewInt(900), math.ZeroInt(), bob))

	reserve0, reserve1, _ := pool.GetReserves()
	require.Equal(t, math.NewInt(9_100), reserve0)
	require.Equal(t, math.NewInt(22_000), reserve1)
	require.Equal(t, math.NewInt(900), f.ledger.BalanceOf("atom", bob))
}

// TestSwap_AccruesFees splits the nominal fee of the input side across the
// protocol and rewards counters and notifies the router.
func TestSwap_AccruesFees(t *testing.T) {
	f := setupKeeper(t)
	pool := seedPool(t, f)
	f.fund(t, bob, "usdc", 10_000)
	f.deposit(t, pool, bob, "usdc", 2_000)

	require.NoError(t, f.keeper.Swap(pool, math.NewInt(900), math.ZeroInt(), bob))

	// fee = 2000*5/1000 = 10, split 20%/20%
	require.Equal(t, math.NewInt(2), pool.AccruedProtocolFees1)
	require.Equal(t, math.NewInt(2), pool.AccruedRewardsFees1)
	require.True(t, pool.AccruedProtocolFees0.IsZero())

	require.Len(t, f.fees.notified, 2)
	require.Equal(t, types.FeeRoleProtocol, f.fees.notified[0].role)
	require.Equal(t, "usdc", f.fees.notified[0].denom)
	require.Equal(t, math.NewInt(2), f.fees.notified[0].amount)
	require.Equal(t, types.FeeRoleRewards, f.fees.notified[1].role)
}

// TestSwap_KInvariantViolation rejects a trade whose input is too small for
// the requested output.
func TestSwap_KInvariantViolation(t *testing.T) {
	f := setupKeeper(t)
	pool := seedPool(t, f)
	f.fund(t, bob, "usdc", 10_000)
	f.deposit(t, pool, bob, "usdc", 100)

	err := f.keeper.Swap(pool, math.NewInt(1_000), math.ZeroInt(), bob)
	require.ErrorIs(t, err, types.ErrKInvariantViolated)

	// reserves untouched, deposit still absorbed by the next sync
	reserve0, reserve1, _ := pool.GetReserves()
	require.Equal(t, math.NewInt(10_000), reserve0)
	require.Equal(t, math.NewInt(20_000), reserve1)
	require.True(t, f.ledger.BalanceOf("atom", bob).IsZero())
}

// TestSwap_ZeroOutputs rejects a swap requesting nothing.
func TestSwap_ZeroOutputs(t *testing.T) {
	f := setupKeeper(t)
	pool := seedPool(t, f)

	err := f.keeper.Swap(pool, math.ZeroInt(), math.ZeroInt(), bob)
	require.ErrorIs(t, err, types.ErrInsufficientOutputAmount)
}

// TestSwap_NegativeOutput rejects negative output amounts.
func TestSwap_NegativeOutput(t *testing.T) {
	f := setupKeeper(t)
	pool := seedPool(t, f)

	err := f.keeper.Swap(pool, math.NewInt(-1), math.ZeroInt(), bob)
	require.ErrorIs(t, err, types.ErrInsufficientOutputAmount)
}

// TestSwap_OutputExceedsReserves rejects outputs at or above the reserve.
func TestSwap_OutputExceedsReserves(t *testing.T) {
	f := setupKeeper(t)
	pool := seedPool(t, f)
	f.fund(t, bob, "usdc", 100_000)
	f.deposit(t, pool, bob, "usdc", 50_000)

	err := f.keeper.Swap(pool, math.NewInt(10_000), math.ZeroInt(), bob)
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
}

// TestSwap_NoInput rejects a swap with no deposit to pay for it.
func TestSwap_NoInput(t *testing.T) {
	f := setupKeeper(t)
	pool := seedPool(t, f)

	err := f.keeper.Swap(pool, math.NewInt(100), math.ZeroInt(), bob)
	require.ErrorIs(t, err, types.ErrInsufficientInputAmount)
}

// TestSwap_InvalidRecipient rejects empty recipients and the pool itself.
func TestSwap_InvalidRecipient(t *testing.T) {
	f := setupKeeper(t)
	pool := seedPool(t, f)

	require.ErrorIs(t, f.keeper.Swap(pool, math.NewInt(1), math.ZeroInt(), ""), types.ErrInvalidRecipient)
	require.ErrorIs(t, f.keeper.Swap(pool, math.NewInt(1), math.ZeroInt(), pool.Address), types.ErrInvalidRecipient)
}

// TestSwap_BothDirections accepts inputs on both sides at once.
func TestSwap_BothDirections(t *testing.T) {
	f := setupKeeper(t)
	pool := seedPool(t, f)
	f.fund(t, bob, "atom", 10_000)
	f.fund(t, bob, "usdc", 10_000)
	f.deposit(t, pool, bob, "atom", 1_000)
	f.deposit(t, pool, bob, "usdc", 2_000)

	require.NoError(t, f.keeper.Swap(pool, math.NewInt(500), math.NewInt(1_000), bob))

	reserve0, reserve1, _ := pool.GetReserves()
	require.Equal(t, math.NewInt(10_500), reserve0)
	require.Equal(t, math.NewInt(21_000), reserve1)
}

// TestSwap_FeeRouterFailure unwinds the sent outputs and commits nothing.
func TestSwap_FeeRouterFailure(t *testing.T) {
	f := setupKeeper(t)
	pool := seedPool(t, f)
	f.fees.fail = true
	f.fund(t, bob, "usdc", 10_000)
	f.deposit(t, pool, bob, "usdc", 2_000)

	err := f.keeper.Swap(pool, math.NewInt(900), math.ZeroInt(), bob)
	require.ErrorIs(t, err, types.ErrTransferFailed)

	reserve0, reserve1, _ := pool.GetReserves()
	require.Equal(t, math.NewInt(10_000), reserve0)
	require.Equal(t, math.NewInt(20_000), reserve1)
	require.True(t, f.ledger.BalanceOf("atom", bob).IsZero())
	require.Equal(t, math.NewInt(10_000), f.ledger.BalanceOf("atom", poolAddr))
	require.True(t, pool.AccruedProtocolFees1.IsZero())
}

// TestSwap_TransferFailure aborts cleanly when the output leg cannot be
// delivered.
func TestSwap_TransferFailure(t *testing.T) {
	ledger := bank.NewLedger()
	failing := &failingBank{Ledger: ledger, failDenom: "atom", failFrom: poolAddr}

	k, err := keeper.NewKeeper(failing)
	require.NoError(t, err)

	pool := newTestPool(t)
	require.NoError(t, ledger.Mint("atom", alice, math.NewInt(100_000)))
	require.NoError(t, ledger.Mint("usdc", alice, math.NewInt(200_000)))
	require.NoError(t, ledger.Transfer("atom", alice, pool.Address, math.NewInt(10_000)))
	require.NoError(t, ledger.Transfer("usdc", alice, pool.Address, math.NewInt(20_000)))
	_, err = k.Mint(pool, alice)
	require.NoError(t, err)

	require.NoError(t, ledger.Mint("usdc", bob, math.NewInt(10_000)))
	require.NoError(t, ledger.Transfer("usdc", bob, pool.Address, math.NewInt(2_000)))

	err = k.Swap(pool, math.NewInt(900), math.ZeroInt(), bob)
	require.ErrorIs(t, err, types.ErrTransferFailed)

	reserve0, reserve1, _ := pool.GetReserves()
	require.Equal(t, math.NewInt(10_000), reserve0)
	require.Equal(t, math.NewInt(20_000), reserve1)
	require.True(t, ledger.BalanceOf("atom", bob).IsZero())
}

// TestSwap_KNeverDecreases replays a run of trades and checks the raw
// product of the reserves is monotone.
func TestSwap_KNeverDecreases(t *testing.T) {
	f := setupKeeper(t)
	pool := seedPool(t, f)
	f.fund(t, bob, "atom", 100_000)
	f.fund(t, bob, "usdc", 100_000)

	product := func() math.Int {
		reserve0, reserve1, _ := pool.GetReserves()
		return reserve0.Mul(reserve1)
	}

	last := product()
	trades := []struct {
		denom      string
		amountIn   int64
		amount0Out int64
		amount1Out int64
	}{
		{"usdc", 2_000, 900, 0},
		{"atom", 500, 0, 1_000},
		{"usdc", 5_000, 1_500, 0},
		{"atom", 2_000, 0, 4_000},
	}
	for _, trade := range trades {
		f.deposit(t, pool, bob, trade.denom, trade.amountIn)
		err := f.keeper.Swap(pool, math.NewInt(trade.amount0Out), math.NewInt(trade.amount1Out), bob)
		require.NoError(t, err)

		current := product()
		require.True(t, current.GTE(last), "product decreased: %s -> %s", last, current)
		last = current
	}
}

// TestSwap_EmitsEvent announces inferred inputs and requested outputs.
func TestSwap_EmitsEvent(t *testing.T) {
	f := setupKeeper(t)
	pool := seedPool(t, f)
	f.fund(t, bob, "usdc", 10_000)
	f.deposit(t, pool, bob, "usdc", 2_000)

	require.NoError(t, f.keeper.Swap(pool, math.NewInt(900), math.ZeroInt(), bob))

	var swap *types.Event
	for i := range f.events.Events {
		if f.events.Events[i].Type == types.EventTypeSwap {
			swap = &f.events.Events[i]
		}
	}
	require.NotNil(t, swap)

	in1, _ := swap.Attribute(types.AttributeKeyAmount1In)
	require.Equal(t, "2000", in1)
	out0, _ := swap.Attribute(types.AttributeKeyAmount0Out)
	require.Equal(t, "900", out0)
}
