package keeper

import (
	"fmt"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"

	"github.com/lunex-dex/lunex/x/amm/types"
)

// Keeper is the constant-product engine. It owns no pools; the external
// registry creates them and passes the instance into every operation. All
// collaborator interaction goes through the injected capabilities.
type Keeper struct {
	bank    types.BankKeeper
	fees    types.FeeRouter
	events  types.EventEmitter
	logger  log.Logger
	metrics *Metrics
	params  types.Params
	now     func() time.Time
}

// Option configures a Keeper at construction.
type Option func(*Keeper)

// WithParams replaces the default fee schedule.
func WithParams(params types.Params) Option {
	return func(k *Keeper) { k.params = params }
}

// WithFeeRouter wires the fee-notification collaborator.
func WithFeeRouter(fees types.FeeRouter) Option {
	return func(k *Keeper) { k.fees = fees }
}

// WithEventEmitter wires the notification sink.
func WithEventEmitter(events types.EventEmitter) Option {
	return func(k *Keeper) { k.events = events }
}

// WithLogger wires structured logging.
func WithLogger(logger log.Logger) Option {
	return func(k *Keeper) { k.logger = logger }
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(metrics *Metrics) Option {
	return func(k *Keeper) { k.metrics = metrics }
}

// WithClock overrides the time source. Used by the simulator and tests.
func WithClock(now func() time.Time) Option {
	return func(k *Keeper) { k.now = now }
}

// NewKeeper creates an engine instance around the asset-transfer capability.
// The parameter set is validated; an invalid fee schedule is refused here
// rather than surfacing mid-swap.
func NewKeeper(bank types.BankKeeper, opts ...Option) (*Keeper, error) {
	if bank == nil {
		return nil, fmt.Errorf("amm: bank keeper is required")
	}

	k := &Keeper{
		bank:   bank,
		fees:   nopFeeRouter{},
		events: types.NopEmitter{},
		logger: log.NewNopLogger(),
		params: types.DefaultParams(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(k)
	}

	if err := k.params.Validate(); err != nil {
		return nil, err
	}
	return k, nil
}

// Params returns the keeper's fee schedule.
func (k *Keeper) Params() types.Params {
	return k.params
}

func (k *Keeper) pairLabel(pool *types.Pool) string {
	return pool.Token0 + "/" + pool.Token1
}

type nopFeeRouter struct{}

func (nopFeeRouter) NotifyFee(types.FeeRole, string, math.Int) error { return nil }
