package types

const (
	// ModuleName defines the module name
	ModuleName = "amm"

	// SinkAddress is the non-redeemable holder that permanently carries the
	// minimum-liquidity shares locked at the genesis mint of every pool.
	// Nothing ever debits this account.
	SinkAddress = "amm/minimum-liquidity-sink"

	// Event types
	EventTypeMint = "amm_mint"
	EventTypeBurn = "amm_burn"
	EventTypeSwap = "amm_swap"
	EventTypeSync = "amm_sync"
	EventTypeFees = "amm_fees_accrued"

	// Event attribute keys
	AttributeKeyPool       = "pool"
	AttributeKeyToken0     = "token0"
	AttributeKeyToken1     = "token1"
	AttributeKeyAmount0    = "amount0"
	AttributeKeyAmount1    = "amount1"
	AttributeKeyAmount0In  = "amount0_in"
	AttributeKeyAmount1In  = "amount1_in"
	AttributeKeyAmount0Out = "amount0_out"
	AttributeKeyAmount1Out = "amount1_out"
	AttributeKeyShares     = "shares"
	AttributeKeyRecipient  = "recipient"
	AttributeKeyReserve0   = "reserve0"
	AttributeKeyReserve1   = "reserve1"
	AttributeKeyFeeRole    = "fee_role"
	AttributeKeyFeeAmount  = "fee_amount"
	AttributeKeyFeeDenom   = "fee_denom"
)

// FeeRole identifies a non-LP recipient of a swap-fee portion. The LP portion
// is never routed anywhere: it stays in the pool reserves.
type FeeRole string

const (
	FeeRoleProtocol FeeRole = "protocol"
	FeeRoleRewards  FeeRole = "rewards"
)
