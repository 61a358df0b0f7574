// Package bench runs the simulated campaign-processing benchmark.
//
// Nothing here processes the generated files. Each iteration sleeps for a
// duration proportional to the sample size and derives its throughput and
// improvement numbers from fixed per-record constants. The output is a
// demonstration, not a measurement, and must not be used for capacity planning.
package bench

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	derrors "github.com/disparo/disparo/pkg/errors"
	"github.com/disparo/disparo/pkg/tui"
)

// Config controls a benchmark run.
type Config struct {
	Sizes              []int
	SimulatedPerRecord time.Duration
	BaselinePerRecord  time.Duration
	TempDir            string
}

// DefaultConfig returns the stock sample sizes and per-record constants.
func DefaultConfig() Config {
	return Config{
		Sizes:              []int{1000, 5000, 10000},
		SimulatedPerRecord: 100 * time.Microsecond,
		BaselinePerRecord:  time.Millisecond,
	}
}

// Result holds the numbers reported for one sample size.
type Result struct {
	RunID            string
	Size             int
	Path             string
	Elapsed          time.Duration
	RecordsPerSecond float64
	BaselineTime     time.Duration
	Improvement      float64
}

// Generator creates the file for one iteration.
type Generator interface {
	CreateTemp(dir string, n int) (string, error)
}

// Harness runs the benchmark iterations.
type Harness struct {
	cfg    Config
	gen    Generator
	out    io.Writer
	logger *zap.Logger

	now    func() time.Time
	sleep  func(ctx context.Context, d time.Duration) error
	remove func(path string) error
}

// Option configures a Harness.
type Option func(*Harness)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(h *Harness) {
		h.now = now
	}
}

// WithSleeper replaces the context-aware sleep.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(h *Harness) {
		h.sleep = sleep
	}
}

// WithRemover replaces os.Remove for the per-iteration cleanup.
func WithRemover(remove func(path string) error) Option {
	return func(h *Harness) {
		h.remove = remove
	}
}

// New creates a harness. A nil logger disables logging.
func New(cfg Config, gen Generator, out io.Writer, logger *zap.Logger, opts ...Option) *Harness {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Harness{
		cfg:    cfg,
		gen:    gen,
		out:    out,
		logger: logger,
		now:    time.Now,
		sleep:  sleepContext,
		remove: os.Remove,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes one iteration per sample size, in order. The first error
// aborts the run; results gathered so far are returned with it.
func (h *Harness) Run(ctx context.Context) ([]Result, error) {
	runID := uuid.NewString()
	logger := h.logger.With(zap.String("run_id", runID))

	fmt.Fprintln(h.out, tui.AccentStyle.Render("🚀 Starting benchmark of the optimized processor..."))
	fmt.Fprintln(h.out, tui.MutedStyle.Render("   (simulated: sleep-based timing, no records are processed)"))

	results := make([]Result, 0, len(h.cfg.Sizes))
	for _, size := range h.cfg.Sizes {
		res, err := h.runOne(ctx, logger, size)
		if err != nil {
			logger.Error("benchmark iteration failed", zap.Int("size", size), zap.Error(err))
			return results, err
		}
		res.RunID = runID
		results = append(results, res)
	}

	logger.Debug("benchmark finished", zap.Int("iterations", len(results)))
	return results, nil
}

// runOne performs a single iteration. The generated file is removed on every
// return path; a removal failure is joined with any earlier error.
func (h *Harness) runOne(ctx context.Context, logger *zap.Logger, size int) (res Result, err error) {
	fmt.Fprintf(h.out, "\n📊 Testing with %s records...\n", tui.FormatThousands(int64(size)))

	path, err := h.gen.CreateTemp(h.cfg.TempDir, size)
	if err != nil {
		return Result{}, err
	}
	logger.Debug("generated sample file", zap.String("path", path), zap.Int("size", size))

	defer func() {
		if rerr := h.cleanup(path); rerr != nil {
			err = stderrors.Join(err, rerr)
			return
		}
		logger.Debug("removed sample file", zap.String("path", path))
	}()

	start := h.now()
	if err := h.sleep(ctx, time.Duration(size)*h.cfg.SimulatedPerRecord); err != nil {
		return Result{}, derrors.ContextCanceled("simulated processing", err).WithContext("size", size)
	}
	elapsed := h.now().Sub(start)

	baseline := time.Duration(size) * h.cfg.BaselinePerRecord
	res = Result{
		Size:             size,
		Path:             path,
		Elapsed:          elapsed,
		RecordsPerSecond: Throughput(size, elapsed),
		BaselineTime:     baseline,
		Improvement:      Improvement(baseline, elapsed),
	}

	h.printResult(res)
	return res, nil
}

func (h *Harness) cleanup(path string) error {
	if err := h.remove(path); err != nil && !os.IsNotExist(err) {
		return derrors.FileRemove(path, err)
	}
	return nil
}

func (h *Harness) printResult(res Result) {
	fmt.Fprintf(h.out, "  %s Processed %s records in %s\n",
		tui.SuccessStyle.Render("✅"),
		tui.FormatThousands(int64(res.Size)),
		tui.FormatSeconds(res.Elapsed))
	fmt.Fprintf(h.out, "  📈 Throughput: %s records/second\n", tui.FormatRate(res.RecordsPerSecond))
	fmt.Fprintf(h.out, "  🎯 Estimated improvement: %.1fx faster\n", res.Improvement)
}

// Throughput returns size/elapsed in records per second, or +Inf when
// elapsed is zero.
func Throughput(size int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return math.Inf(1)
	}
	return float64(size) / elapsed.Seconds()
}

// Improvement returns baseline/elapsed, or 1 when elapsed is zero.
func Improvement(baseline, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 1
	}
	return baseline.Seconds() / elapsed.Seconds()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
