package cmd

import (
	"fmt"
	"os"

	"cosmossdk.io/math"
	"gopkg.in/yaml.v3"

	"github.com/lunex-dex/lunex/x/amm/types"
)

// Scenario is a scripted pool session. Amounts are plain integers in the
// token's base unit.
type Scenario struct {
	Pool     PoolSpec      `yaml:"pool"`
	Params   *ParamsSpec   `yaml:"params,omitempty"`
	Accounts []AccountSpec `yaml:"accounts"`
	Steps    []StepSpec    `yaml:"steps"`
}

type PoolSpec struct {
	Address string `yaml:"address"`
	Token0  string `yaml:"token0"`
	Token1  string `yaml:"token1"`
}

// ParamsSpec overrides the default fee schedule. Zero-valued fields keep
// their defaults.
type ParamsSpec struct {
	FeeNumerator     int64 `yaml:"fee_numerator"`
	FeeDenominator   int64 `yaml:"fee_denominator"`
	LpShareBp        int64 `yaml:"lp_share_bp"`
	ProtocolShareBp  int64 `yaml:"protocol_share_bp"`
	RewardsShareBp   int64 `yaml:"rewards_share_bp"`
	MinimumLiquidity int64 `yaml:"minimum_liquidity"`
}

type AccountSpec struct {
	Name     string           `yaml:"name"`
	Balances map[string]int64 `yaml:"balances"`
}

// StepSpec is one scripted action. Exactly one field must be set.
type StepSpec struct {
	Advance        int64               `yaml:"advance,omitempty"`
	Deposit        *DepositSpec        `yaml:"deposit,omitempty"`
	Mint           *MintSpec           `yaml:"mint,omitempty"`
	Swap           *SwapSpec           `yaml:"swap,omitempty"`
	TransferShares *TransferSharesSpec `yaml:"transfer_shares,omitempty"`
	Burn           *BurnSpec           `yaml:"burn,omitempty"`
	Sync           bool                `yaml:"sync,omitempty"`
	Skim           *SkimSpec           `yaml:"skim,omitempty"`
}

type DepositSpec struct {
	From   string `yaml:"from"`
	Denom  string `yaml:"denom"`
	Amount int64  `yaml:"amount"`
}

type MintSpec struct {
	To string `yaml:"to"`
}

type SwapSpec struct {
	Amount0Out int64  `yaml:"amount0_out"`
	Amount1Out int64  `yaml:"amount1_out"`
	To         string `yaml:"to"`
}

type TransferSharesSpec struct {
	From   string `yaml:"from"`
	To     string `yaml:"to"`
	Shares int64  `yaml:"shares"`
}

type BurnSpec struct {
	To string `yaml:"to"`
}

type SkimSpec struct {
	To string `yaml:"to"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	if s.Pool.Address == "" || s.Pool.Token0 == "" || s.Pool.Token1 == "" {
		return nil, fmt.Errorf("scenario: pool address and both tokens are required")
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("scenario: no steps")
	}
	return &s, nil
}

// EngineParams converts the override block into a validated parameter set.
func (s *Scenario) EngineParams() types.Params {
	params := types.DefaultParams()
	if s.Params == nil {
		return params
	}
	if s.Params.FeeNumerator > 0 {
		params.FeeNumerator = math.NewInt(s.Params.FeeNumerator)
	}
	if s.Params.FeeDenominator > 0 {
		params.FeeDenominator = math.NewInt(s.Params.FeeDenominator)
	}
	if s.Params.LpShareBp > 0 || s.Params.ProtocolShareBp > 0 || s.Params.RewardsShareBp > 0 {
		params.LpShareBp = math.NewInt(s.Params.LpShareBp)
		params.ProtocolShareBp = math.NewInt(s.Params.ProtocolShareBp)
		params.RewardsShareBp = math.NewInt(s.Params.RewardsShareBp)
	}
	if s.Params.MinimumLiquidity > 0 {
		params.MinimumLiquidity = math.NewInt(s.Params.MinimumLiquidity)
	}
	return params
}
