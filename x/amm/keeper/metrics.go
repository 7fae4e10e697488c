package keeper

import (
	"sync"

	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments of the engine. A nil *Metrics
// disables instrumentation; every call site checks before recording.
type Metrics struct {
	MintsTotal   *prometheus.CounterVec
	BurnsTotal   *prometheus.CounterVec
	SwapsTotal   *prometheus.CounterVec
	SwapVolume   *prometheus.CounterVec
	FeesAccrued  *prometheus.CounterVec
	PoolReserves *prometheus.GaugeVec
	ShareSupply  *prometheus.GaugeVec
	SyncsTotal   prometheus.Counter
}

var (
	metricsOnce     sync.Once
	metricsInstance *Metrics
)

// NewMetrics registers the engine collectors on the default registry. promauto
// panics on duplicate registration, so the instance is process-wide.
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metricsInstance = &Metrics{
			MintsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "lunex",
				Subsystem: "amm",
				Name:      "mints_total",
				Help:      "Liquidity mints by pair and status.",
			}, []string{"pair", "status"}),
			BurnsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "lunex",
				Subsystem: "amm",
				Name:      "burns_total",
				Help:      "Liquidity burns by pair and status.",
			}, []string{"pair", "status"}),
			SwapsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "lunex",
				Subsystem: "amm",
				Name:      "swaps_total",
				Help:      "Swaps by pair and status.",
			}, []string{"pair", "status"}),
			SwapVolume: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "lunex",
				Subsystem: "amm",
				Name:      "swap_volume",
				Help:      "Cumulative swap input volume by pair and denom.",
			}, []string{"pair", "denom"}),
			FeesAccrued: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "lunex",
				Subsystem: "amm",
				Name:      "fees_accrued",
				Help:      "Nominal fee portions accrued by pair and role.",
			}, []string{"pair", "role"}),
			PoolReserves: promauto.NewGaugeVec(prometheus.GaugeOpts{
				Namespace: "lunex",
				Subsystem: "amm",
				Name:      "pool_reserves",
				Help:      "Recorded pool reserves by pair and denom.",
			}, []string{"pair", "denom"}),
			ShareSupply: promauto.NewGaugeVec(prometheus.GaugeOpts{
				Namespace: "lunex",
				Subsystem: "amm",
				Name:      "share_supply",
				Help:      "Outstanding liquidity shares by pair.",
			}, []string{"pair"}),
			SyncsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "lunex",
				Subsystem: "amm",
				Name:      "syncs_total",
				Help:      "Reserve commits across all pairs.",
			}),
		}
	})
	return metricsInstance
}

// metricValue converts an amount for gauge/counter recording. Amounts beyond
// int64 are clamped rather than panicking inside an instrumentation path.
func metricValue(v math.Int) float64 {
	if !v.IsInt64() {
		return float64(int64(^uint64(0) >> 1))
	}
	return float64(v.Int64())
}
