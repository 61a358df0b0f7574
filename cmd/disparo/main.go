// disparo - synthetic campaign CSV generator and simulated benchmark.
//
// Running disparo without arguments generates sample files for each configured
// size, reports sleep-based throughput numbers, and prints the static
// optimization summary. The numbers are a demonstration, not a measurement.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/disparo/disparo/internal/logging"
	"github.com/disparo/disparo/pkg/bench"
	"github.com/disparo/disparo/pkg/config"
	derrors "github.com/disparo/disparo/pkg/errors"
	"github.com/disparo/disparo/pkg/generators"
	"github.com/disparo/disparo/pkg/tui"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

// CLI flags
var (
	verbose    bool
	configFile string
	tempDir    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, err, verbose)
		os.Exit(1)
	}
}

// reportError prints err; verbose adds the error code and, for coded
// errors, the stack where it was raised.
func reportError(w io.Writer, err error, verbose bool) {
	fmt.Fprintln(w, err)
	if !verbose {
		return
	}

	fmt.Fprintf(w, "code: %s\n", derrors.GetCode(err))
	var dErr *derrors.DisparoError
	if errors.As(err, &dErr) {
		fmt.Fprint(w, dErr.FormatStack())
	}
}

var rootCmd = &cobra.Command{
	Use:   "disparo",
	Short: "disparo - synthetic campaign CSV benchmark demo",
	Long: `disparo generates synthetic campaign dispatch CSV files and prints
simulated processing throughput for a fixed set of sample sizes.

The timings come from a sleep proportional to the sample size, not from real
processing. Do not use them for capacity planning.

Run without arguments to execute the benchmark followed by the summary.`,
	Version:       fmt.Sprintf("%s (%s)", version, commit),
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAll,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Additional config file (yaml)")
	rootCmd.PersistentFlags().StringVar(&tempDir, "temp-dir", "", "Directory for generated sample files (default: OS temp dir)")
}

// env bundles what every command needs.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
}

func setup() (*env, error) {
	mgr := config.NewManager()
	if err := mgr.Load(configFile); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := mgr.Get()
	if tempDir != "" {
		cfg.Benchmark.TempDir = tempDir
	}

	logger, err := logging.New(cfg.Log.Level, verbose)
	if err != nil {
		return nil, err
	}
	logger.Debug("configuration loaded", zap.Strings("paths", mgr.GetPaths()))

	return &env{cfg: cfg, logger: logger}, nil
}

func (e *env) generator() *generators.CampaignGenerator {
	gen := generators.NewCampaignGenerator()
	gen.Delimiter = e.cfg.DelimiterRune()
	gen.UseCRLF = e.cfg.UseCRLF()
	return gen
}

func (e *env) harness(out io.Writer) *bench.Harness {
	cfg := bench.Config{
		Sizes:              e.cfg.Benchmark.Sizes,
		SimulatedPerRecord: e.cfg.SimulatedPerRecord(),
		BaselinePerRecord:  e.cfg.BaselinePerRecord(),
		TempDir:            e.cfg.Benchmark.TempDir,
	}
	return bench.New(cfg, e.generator(), out, e.logger)
}

// signalContext returns a context canceled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func runAll(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	ctx, cancel := signalContext()
	defer cancel()

	out := cmd.OutOrStdout()
	tui.PrintBanner(out, "🔧 PROCESSOR PERFORMANCE TEST", 50)
	fmt.Fprintln(out)

	if _, err := e.harness(out).Run(ctx); err != nil {
		return fmt.Errorf("benchmark failed: %w", err)
	}

	bench.PrintSummary(out, bench.DefaultSummary())
	return nil
}
