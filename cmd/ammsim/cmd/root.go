// Package cmd implements the ammsim command line. The simulator loads a YAML
// scenario, replays it against a fresh engine instance backed by the
// in-memory ledger, and prints the resulting pool state.
package cmd

import (
	"net/http"
	"os"

	"cosmossdk.io/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd builds the ammsim root command.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "ammsim",
		Short: "Replay constant-product pool scenarios",
		Long: `ammsim replays a scripted sequence of deposits, mints, swaps and burns
against a constant-product pool and reports the resulting reserves, share
balances and cumulative prices. Time is simulated; the price accumulator
advances only through explicit "advance" steps.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("log-level", "info", "log level (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().String("metrics-addr", "", "serve Prometheus metrics on this address, empty disables")
	_ = v.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("metrics-addr", rootCmd.PersistentFlags().Lookup("metrics-addr"))
	v.SetEnvPrefix("AMMSIM")
	v.AutomaticEnv()

	rootCmd.AddCommand(newRunCmd(v))
	return rootCmd
}

func newLogger(v *viper.Viper) (log.Logger, error) {
	filter, err := log.ParseLogLevel(v.GetString("log-level"))
	if err != nil {
		return nil, err
	}
	return log.NewLogger(os.Stderr, log.FilterOption(filter)), nil
}

func serveMetrics(addr string, logger log.Logger) {
	if addr == "" {
		return
	}
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error("metrics server stopped", "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", addr)
}
