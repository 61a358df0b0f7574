package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/disparo/disparo/pkg/bench"
	"github.com/disparo/disparo/pkg/config"
	"github.com/disparo/disparo/pkg/tui"
)

var (
	genRows     int
	genOutput   string
	genProgress bool

	benchSizes string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write one synthetic campaign CSV file",
	Long: `Write a semicolon-delimited campaign CSV with the fixed 19-column header
and the requested number of rows. Each row is derived from its index only.

Examples:
  disparo generate --rows 1000                 # temp file, path printed
  disparo generate --rows 50000 -o sample.csv`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Run the simulated benchmark only",
	Long: `Run the sleep-based benchmark for each sample size without the summary.

Examples:
  disparo benchmark
  disparo benchmark --sizes 100,200`,
	Args: cobra.NoArgs,
	RunE: runBenchmark,
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the static optimization summary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		bench.PrintSummary(cmd.OutOrStdout(), bench.DefaultSummary())
		return nil
	},
}

func init() {
	generateCmd.Flags().IntVarP(&genRows, "rows", "n", 10000, "Number of data rows")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Output path (default: new temp file)")
	generateCmd.Flags().BoolVar(&genProgress, "progress", true, "Show a progress bar")

	benchmarkCmd.Flags().StringVar(&benchSizes, "sizes", "", "Comma-separated sample sizes (default from config)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(benchmarkCmd)
	rootCmd.AddCommand(summaryCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	gen := e.generator()
	if genProgress && genRows > 0 {
		bar := tui.ShowProgress(os.Stderr, int64(genRows), "Generating rows")
		gen.OnProgress = func(rows int) { bar.Set(rows) }
		defer bar.Finish()
	}

	path := genOutput
	if path == "" {
		path, err = gen.CreateTemp(e.cfg.Benchmark.TempDir, genRows)
	} else {
		err = gen.WriteFile(path, genRows)
	}
	if err != nil {
		return fmt.Errorf("failed to generate file: %w", err)
	}

	e.logger.Info("generated campaign file", zap.String("path", path), zap.Int("rows", genRows))
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	if benchSizes != "" {
		sizes, err := config.ParseSizes(benchSizes)
		if err != nil {
			return err
		}
		e.cfg.Benchmark.Sizes = sizes
	}

	ctx, cancel := signalContext()
	defer cancel()

	if _, err := e.harness(cmd.OutOrStdout()).Run(ctx); err != nil {
		return fmt.Errorf("benchmark failed: %w", err)
	}
	return nil
}
