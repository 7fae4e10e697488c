package types

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func TestNewPool_OrdersTokens(t *testing.T) {
	pool, err := NewPool("pool/1", "usdc", "atom")
	require.NoError(t, err)
	require.Equal(t, "atom", pool.Token0)
	require.Equal(t, "usdc", pool.Token1)
}

func TestNewPool_Validation(t *testing.T) {
	tests := []struct {
		name     string
		address  string
		token0   string
		token1   string
		expected error
	}{
		{"empty address", "", "atom", "usdc", ErrInvalidPoolState},
		{"empty token0", "pool/1", "", "usdc", ErrInvalidTokenPair},
		{"empty token1", "pool/1", "atom", "", ErrInvalidTokenPair},
		{"identical tokens", "pool/1", "atom", "atom", ErrInvalidTokenPair},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPool(tc.address, tc.token0, tc.token1)
			require.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestNewPool_StartsEmpty(t *testing.T) {
	pool, err := NewPool("pool/1", "atom", "usdc")
	require.NoError(t, err)

	reserve0, reserve1, updatedAt := pool.GetReserves()
	require.True(t, reserve0.IsZero())
	require.True(t, reserve1.IsZero())
	require.Zero(t, updatedAt)
	require.True(t, pool.ShareSupply.IsZero())

	cum0, cum1 := pool.GetCumulativePrices()
	require.True(t, cum0.IsZero())
	require.True(t, cum1.IsZero())
}

func TestPool_ShareBalances(t *testing.T) {
	pool, err := NewPool("pool/1", "atom", "usdc")
	require.NoError(t, err)

	require.True(t, pool.ShareBalanceOf("alice").IsZero())

	pool.SetShareBalance("alice", math.NewInt(500))
	require.Equal(t, math.NewInt(500), pool.ShareBalanceOf("alice"))

	// zero balances drop the entry
	pool.SetShareBalance("alice", math.ZeroInt())
	require.True(t, pool.ShareBalanceOf("alice").IsZero())
}

func TestPool_TryLock(t *testing.T) {
	pool, err := NewPool("pool/1", "atom", "usdc")
	require.NoError(t, err)

	require.True(t, pool.TryLock())
	require.False(t, pool.TryLock())

	pool.Unlock()
	require.True(t, pool.TryLock())
	pool.Unlock()
}
