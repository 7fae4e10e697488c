package types

import (
	"cosmossdk.io/math"
)

// TotalShareBp is the denominator of the basis-point fee split.
const TotalShareBp = 10_000

// Params carries the fee schedule and the minimum-liquidity lock of a keeper.
// The fee schedule is attached at construction rather than compiled in, so
// hosts can run pools with different schedules side by side.
type Params struct {
	// FeeNumerator/FeeDenominator discount the input side of a swap. The
	// default 995/1000 keeps 0.5% of every input amount in the pool.
	FeeNumerator   math.Int
	FeeDenominator math.Int

	// Basis-point split of the swap fee. LpShareBp stays implicit in the
	// reserves; the other two are routed through the fee collaborator.
	// The three must sum to TotalShareBp.
	LpShareBp       math.Int
	ProtocolShareBp math.Int
	RewardsShareBp  math.Int

	// MinimumLiquidity is burned to the sink holder at the genesis mint.
	MinimumLiquidity math.Int
}

// DefaultParams returns the production fee schedule: 0.5% total swap fee,
// split 60% LP / 20% protocol treasury / 20% trading rewards.
func DefaultParams() Params {
	return Params{
		FeeNumerator:     math.NewInt(995),
		FeeDenominator:   math.NewInt(1000),
		LpShareBp:        math.NewInt(6000),
		ProtocolShareBp:  math.NewInt(2000),
		RewardsShareBp:   math.NewInt(2000),
		MinimumLiquidity: math.NewInt(100),
	}
}

// Validate checks the parameter set for internal consistency.
func (p Params) Validate() error {
	for _, v := range []math.Int{
		p.FeeNumerator, p.FeeDenominator,
		p.LpShareBp, p.ProtocolShareBp, p.RewardsShareBp,
		p.MinimumLiquidity,
	} {
		if v.IsNil() {
			return ErrInvalidFeeParams.Wrap("uninitialized parameter")
		}
	}

	if !p.FeeDenominator.IsPositive() {
		return ErrInvalidFeeParams.Wrap("fee denominator must be positive")
	}
	if !p.FeeNumerator.IsPositive() {
		return ErrInvalidFeeParams.Wrap("fee numerator must be positive")
	}
	if p.FeeNumerator.GT(p.FeeDenominator) {
		return ErrInvalidFeeParams.Wrapf(
			"fee numerator %s exceeds denominator %s",
			p.FeeNumerator, p.FeeDenominator,
		)
	}

	if p.LpShareBp.IsNegative() || p.ProtocolShareBp.IsNegative() || p.RewardsShareBp.IsNegative() {
		return ErrInvalidFeeParams.Wrap("fee shares cannot be negative")
	}
	sum := p.LpShareBp.Add(p.ProtocolShareBp).Add(p.RewardsShareBp)
	if !sum.Equal(math.NewInt(TotalShareBp)) {
		return ErrInvalidFeeParams.Wrapf("fee shares sum to %s, want %d", sum, TotalShareBp)
	}

	if !p.MinimumLiquidity.IsPositive() {
		return ErrInvalidFeeParams.Wrap("minimum liquidity must be positive")
	}
	return nil
}
