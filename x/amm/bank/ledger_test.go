package bank

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/lunex-dex/lunex/x/amm/types"
)

func TestLedger_MintAndBalance(t *testing.T) {
	ledger := NewLedger()
	require.True(t, ledger.BalanceOf("atom", "alice").IsZero())

	require.NoError(t, ledger.Mint("atom", "alice", math.NewInt(100)))
	require.Equal(t, math.NewInt(100), ledger.BalanceOf("atom", "alice"))

	require.NoError(t, ledger.Mint("atom", "alice", math.NewInt(50)))
	require.Equal(t, math.NewInt(150), ledger.BalanceOf("atom", "alice"))
}

func TestLedger_MintRejectsNegative(t *testing.T) {
	ledger := NewLedger()
	require.ErrorIs(t, ledger.Mint("atom", "alice", math.NewInt(-1)), types.ErrInsufficientFunds)
}

func TestLedger_Transfer(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.Mint("atom", "alice", math.NewInt(100)))

	require.NoError(t, ledger.Transfer("atom", "alice", "bob", math.NewInt(40)))
	require.Equal(t, math.NewInt(60), ledger.BalanceOf("atom", "alice"))
	require.Equal(t, math.NewInt(40), ledger.BalanceOf("atom", "bob"))
}

func TestLedger_TransferInsufficient(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.Mint("atom", "alice", math.NewInt(10)))

	err := ledger.Transfer("atom", "alice", "bob", math.NewInt(11))
	require.ErrorIs(t, err, types.ErrInsufficientFunds)
	require.Equal(t, math.NewInt(10), ledger.BalanceOf("atom", "alice"))
}

func TestLedger_TransferZeroIsNoop(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.Transfer("atom", "alice", "bob", math.ZeroInt()))
	require.True(t, ledger.BalanceOf("atom", "bob").IsZero())
}

func TestLedger_DenomsAreIndependent(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.Mint("atom", "alice", math.NewInt(100)))
	require.True(t, ledger.BalanceOf("usdc", "alice").IsZero())

	err := ledger.Transfer("usdc", "alice", "bob", math.NewInt(1))
	require.ErrorIs(t, err, types.ErrInsufficientFunds)
}
