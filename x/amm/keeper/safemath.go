package keeper

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/lunex-dex/lunex/x/amm/types"
)

// All pool arithmetic is bounded at 2^256 so a 512-bit intermediate product
// cannot silently wrap. Every helper returns ErrOverflow instead of panicking;
// callers abort the operation before any state was touched.
var maxValue = new(big.Int).Exp(big.NewInt(2), big.NewInt(256), nil)

// SafeAdd returns a+b, rejecting results at or above 2^256.
func SafeAdd(a, b math.Int) (math.Int, error) {
	result := new(big.Int).Add(a.BigInt(), b.BigInt())
	if result.Cmp(maxValue) >= 0 {
		return math.ZeroInt(), types.ErrOverflow.Wrapf("addition overflow: %s + %s", a, b)
	}
	return math.NewIntFromBigInt(result), nil
}

// SafeSub returns a-b, rejecting negative results.
func SafeSub(a, b math.Int) (math.Int, error) {
	if a.LT(b) {
		return math.ZeroInt(), types.ErrOverflow.Wrapf("subtraction underflow: %s - %s", a, b)
	}
	return a.Sub(b), nil
}

// SafeMul returns a*b, rejecting results at or above 2^256.
func SafeMul(a, b math.Int) (math.Int, error) {
	result := new(big.Int).Mul(a.BigInt(), b.BigInt())
	if result.Cmp(maxValue) >= 0 {
		return math.ZeroInt(), types.ErrOverflow.Wrapf("multiplication overflow: %s * %s", a, b)
	}
	return math.NewIntFromBigInt(result), nil
}

// SafeQuo returns a/b with floor rounding.
func SafeQuo(a, b math.Int) (math.Int, error) {
	if b.IsZero() {
		return math.ZeroInt(), types.ErrOverflow.Wrap("division by zero")
	}
	return math.NewIntFromBigInt(new(big.Int).Quo(a.BigInt(), b.BigInt())), nil
}

// SafeMulDiv returns a*b/c with floor rounding. The intermediate product is
// kept as a big.Int so a*b may exceed 2^256 as long as the quotient fits.
func SafeMulDiv(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.ZeroInt(), types.ErrOverflow.Wrap("division by zero")
	}
	product := new(big.Int).Mul(a.BigInt(), b.BigInt())
	result := product.Quo(product, c.BigInt())
	if result.Cmp(maxValue) >= 0 {
		return math.ZeroInt(), types.ErrOverflow.Wrapf("muldiv overflow: %s * %s / %s", a, b, c)
	}
	return math.NewIntFromBigInt(result), nil
}

// SafeSqrt returns the integer square root of a, floor rounded.
func SafeSqrt(a math.Int) (math.Int, error) {
	if a.IsNegative() {
		return math.ZeroInt(), types.ErrOverflow.Wrapf("square root of negative value %s", a)
	}
	return math.NewIntFromBigInt(new(big.Int).Sqrt(a.BigInt())), nil
}
