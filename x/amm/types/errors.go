package types

import (
	"cosmossdk.io/errors"
)

// AMM engine sentinel errors
var (
	ErrInvalidTokenPair             = errors.Register(ModuleName, 1, "invalid token pair")
	ErrInvalidPoolState             = errors.Register(ModuleName, 2, "invalid pool state")
	ErrInsufficientInitialLiquidity = errors.Register(ModuleName, 3, "initial liquidity below minimum lock")
	ErrInsufficientLiquidityMinted  = errors.Register(ModuleName, 4, "insufficient liquidity minted")
	ErrInsufficientLiquidityBurned  = errors.Register(ModuleName, 5, "insufficient liquidity burned")
	ErrInsufficientOutputAmount     = errors.Register(ModuleName, 6, "insufficient output amount")
	ErrInsufficientInputAmount      = errors.Register(ModuleName, 7, "insufficient input amount")
	ErrInsufficientLiquidity        = errors.Register(ModuleName, 8, "insufficient liquidity in pool")
	ErrKInvariantViolated           = errors.Register(ModuleName, 9, "constant product invariant violated")
	ErrOverflow                     = errors.Register(ModuleName, 10, "arithmetic overflow")
	ErrReentrancy                   = errors.Register(ModuleName, 11, "pool is locked")
	ErrInsufficientShares           = errors.Register(ModuleName, 12, "insufficient liquidity shares")
	ErrInsufficientFunds            = errors.Register(ModuleName, 13, "insufficient funds")
	ErrInvalidRecipient             = errors.Register(ModuleName, 14, "invalid recipient")
	ErrInvalidFeeParams             = errors.Register(ModuleName, 15, "invalid fee parameters")
	ErrTransferFailed               = errors.Register(ModuleName, 16, "asset transfer failed")
)
