// Package config provides hierarchical configuration management.
// Priority: defaults < system < user < project < explicit file < env < flags
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	derrors "github.com/disparo/disparo/pkg/errors"
)

// Config holds all disparo configuration.
type Config struct {
	Version int `yaml:"version"`

	Benchmark BenchmarkConfig `yaml:"benchmark"`
	Generator GeneratorConfig `yaml:"generator"`
	Log       LogConfig       `yaml:"log"`
}

// BenchmarkConfig controls the simulated benchmark.
type BenchmarkConfig struct {
	Sizes              []int          `yaml:"sizes"`
	SimulatedPerRecord *time.Duration `yaml:"simulated_per_record"`
	BaselinePerRecord  *time.Duration `yaml:"baseline_per_record"`
	TempDir            string         `yaml:"temp_dir"` // empty = OS temp dir
}

// GeneratorConfig controls the synthetic CSV format.
type GeneratorConfig struct {
	Delimiter string `yaml:"delimiter"`
	CRLF      *bool  `yaml:"crlf"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug | info | warn | error
}

// Default returns the default configuration.
func Default() *Config {
	crlf := true
	simulated := 100 * time.Microsecond
	baseline := time.Millisecond
	return &Config{
		Version: 1,
		Benchmark: BenchmarkConfig{
			Sizes:              []int{1000, 5000, 10000},
			SimulatedPerRecord: &simulated,
			BaselinePerRecord:  &baseline,
		},
		Generator: GeneratorConfig{
			Delimiter: ";",
			CRLF:      &crlf,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate rejects values the benchmark cannot run with.
func (c *Config) Validate() error {
	if len(c.Benchmark.Sizes) == 0 {
		return derrors.InvalidConfig("benchmark.sizes", c.Benchmark.Sizes)
	}
	for _, size := range c.Benchmark.Sizes {
		if size <= 0 {
			return derrors.InvalidConfig("benchmark.sizes", size)
		}
	}
	if d := c.SimulatedPerRecord(); d < 0 {
		return derrors.InvalidConfig("benchmark.simulated_per_record", d)
	}
	if d := c.BaselinePerRecord(); d < 0 {
		return derrors.InvalidConfig("benchmark.baseline_per_record", d)
	}
	if len([]rune(c.Generator.Delimiter)) != 1 {
		return derrors.InvalidConfig("generator.delimiter", c.Generator.Delimiter)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return derrors.InvalidConfig("log.level", c.Log.Level)
	}
	return nil
}

// DelimiterRune returns the configured delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	for _, r := range c.Generator.Delimiter {
		return r
	}
	return ';'
}

// SimulatedPerRecord returns the sleep charged per record. Zero is allowed.
func (c *Config) SimulatedPerRecord() time.Duration {
	if c.Benchmark.SimulatedPerRecord == nil {
		return 0
	}
	return *c.Benchmark.SimulatedPerRecord
}

// BaselinePerRecord returns the per-record cost of the unoptimized processor.
func (c *Config) BaselinePerRecord() time.Duration {
	if c.Benchmark.BaselinePerRecord == nil {
		return 0
	}
	return *c.Benchmark.BaselinePerRecord
}

// UseCRLF reports whether generated lines end in \r\n.
func (c *Config) UseCRLF() bool {
	return c.Generator.CRLF == nil || *c.Generator.CRLF
}

// Manager handles configuration loading and merging.
type Manager struct {
	mu     sync.RWMutex
	config *Config
	paths  []string // Paths that were loaded

	// searchPaths overrides the default lookup locations when non-nil.
	searchPaths []string
	getenv      func(string) string
}

// NewManager creates a new configuration manager.
func NewManager() *Manager {
	return &Manager{
		config: Default(),
		getenv: os.Getenv,
	}
}

// Load loads configuration from all sources in priority order. extra, when
// not empty, is loaded after the standard locations and must exist.
func (m *Manager) Load(extra string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.config = Default()
	m.paths = nil

	for _, path := range m.getConfigPaths() {
		if err := m.loadFile(path); err != nil {
			// Ignore missing files
			if !os.IsNotExist(err) {
				return err
			}
		} else {
			m.paths = append(m.paths, path)
		}
	}

	if extra != "" {
		if err := m.loadFile(extra); err != nil {
			return err
		}
		m.paths = append(m.paths, extra)
	}

	if err := m.loadEnv(); err != nil {
		return err
	}

	return m.config.Validate()
}

// getConfigPaths returns config file paths in priority order.
func (m *Manager) getConfigPaths() []string {
	if m.searchPaths != nil {
		return m.searchPaths
	}

	var paths []string

	// System config
	if runtime.GOOS != "windows" {
		paths = append(paths, "/etc/disparo/config.yaml")
	}

	// User config
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".disparo", "config.yaml"))
	}

	// Project config (current directory)
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".disparo.yaml"))
	}

	return paths
}

// loadFile loads a single config file and merges it.
func (m *Manager) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var partial Config
	if err := yaml.Unmarshal(data, &partial); err != nil {
		return derrors.Wrap(err, derrors.CodeInvalidConfig, "failed to parse config file").
			WithContext("path", path)
	}

	m.merge(&partial)
	return nil
}

// merge merges set values from src into config. Pointer fields distinguish
// an explicit zero from an absent key.
func (m *Manager) merge(src *Config) {
	if src.Version != 0 {
		m.config.Version = src.Version
	}

	// Benchmark
	if len(src.Benchmark.Sizes) > 0 {
		m.config.Benchmark.Sizes = src.Benchmark.Sizes
	}
	if src.Benchmark.SimulatedPerRecord != nil {
		m.config.Benchmark.SimulatedPerRecord = src.Benchmark.SimulatedPerRecord
	}
	if src.Benchmark.BaselinePerRecord != nil {
		m.config.Benchmark.BaselinePerRecord = src.Benchmark.BaselinePerRecord
	}
	if src.Benchmark.TempDir != "" {
		m.config.Benchmark.TempDir = src.Benchmark.TempDir
	}

	// Generator
	if src.Generator.Delimiter != "" {
		m.config.Generator.Delimiter = src.Generator.Delimiter
	}
	if src.Generator.CRLF != nil {
		m.config.Generator.CRLF = src.Generator.CRLF
	}

	// Log
	if src.Log.Level != "" {
		m.config.Log.Level = src.Log.Level
	}
}

// loadEnv loads configuration from environment variables.
func (m *Manager) loadEnv() error {
	// DISPARO_SIZES=1000,5000
	if v := m.getenv("DISPARO_SIZES"); v != "" {
		sizes, err := ParseSizes(v)
		if err != nil {
			return err
		}
		m.config.Benchmark.Sizes = sizes
	}

	// DISPARO_TEMP_DIR
	if v := m.getenv("DISPARO_TEMP_DIR"); v != "" {
		m.config.Benchmark.TempDir = v
	}

	// DISPARO_LOG_LEVEL
	if v := m.getenv("DISPARO_LOG_LEVEL"); v != "" {
		m.config.Log.Level = strings.ToLower(v)
	}

	return nil
}

// ParseSizes parses a comma-separated list of positive row counts.
func ParseSizes(s string) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, derrors.Wrapf(err, derrors.CodeInvalidConfig, "invalid sample size %q", part)
		}
		if n <= 0 {
			return nil, derrors.InvalidConfig("benchmark.sizes", n)
		}
		sizes = append(sizes, n)
	}
	if len(sizes) == 0 {
		return nil, derrors.InvalidConfig("benchmark.sizes", s)
	}
	return sizes, nil
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// GetPaths returns the paths that were loaded.
func (m *Manager) GetPaths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.paths
}
