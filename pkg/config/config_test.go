package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	derrors "github.com/disparo/disparo/pkg/errors"
)

func newTestManager(paths []string, env map[string]string) *Manager {
	m := NewManager()
	m.searchPaths = paths
	m.getenv = func(key string) string { return env[key] }
	return m
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func durationPtr(d time.Duration) *time.Duration {
	return &d
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if !reflect.DeepEqual(cfg.Benchmark.Sizes, []int{1000, 5000, 10000}) {
		t.Errorf("Unexpected default sizes: %v", cfg.Benchmark.Sizes)
	}
	if cfg.SimulatedPerRecord() != 100*time.Microsecond {
		t.Errorf("Unexpected simulated per record: %v", cfg.SimulatedPerRecord())
	}
	if cfg.BaselinePerRecord() != time.Millisecond {
		t.Errorf("Unexpected baseline per record: %v", cfg.BaselinePerRecord())
	}
	if cfg.DelimiterRune() != ';' {
		t.Errorf("Unexpected delimiter: %q", cfg.DelimiterRune())
	}
	if !cfg.UseCRLF() {
		t.Error("Expected CRLF by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestManager_LoadNoFiles(t *testing.T) {
	dir := t.TempDir()
	m := newTestManager([]string{filepath.Join(dir, "missing.yaml")}, nil)

	if err := m.Load(""); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(m.Get(), Default()) {
		t.Errorf("Expected defaults, got %+v", m.Get())
	}
	if len(m.GetPaths()) != 0 {
		t.Errorf("Expected no loaded paths, got %v", m.GetPaths())
	}
}

func TestManager_LoadMergesInOrder(t *testing.T) {
	dir := t.TempDir()
	user := writeFile(t, dir, "user.yaml", `
benchmark:
  sizes: [10, 20]
  simulated_per_record: 1ms
log:
  level: debug
`)
	project := writeFile(t, dir, "project.yaml", `
benchmark:
  temp_dir: /tmp/project
generator:
  crlf: false
`)

	m := newTestManager([]string{user, project}, nil)
	if err := m.Load(""); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cfg := m.Get()
	if !reflect.DeepEqual(cfg.Benchmark.Sizes, []int{10, 20}) {
		t.Errorf("Sizes = %v, want [10 20]", cfg.Benchmark.Sizes)
	}
	if cfg.SimulatedPerRecord() != time.Millisecond {
		t.Errorf("SimulatedPerRecord = %v, want 1ms", cfg.SimulatedPerRecord())
	}
	if cfg.BaselinePerRecord() != time.Millisecond {
		t.Errorf("BaselinePerRecord should keep default, got %v", cfg.BaselinePerRecord())
	}
	if cfg.Benchmark.TempDir != "/tmp/project" {
		t.Errorf("TempDir = %q", cfg.Benchmark.TempDir)
	}
	if cfg.UseCRLF() {
		t.Error("Expected crlf=false from project file")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if !reflect.DeepEqual(m.GetPaths(), []string{user, project}) {
		t.Errorf("GetPaths() = %v", m.GetPaths())
	}
}

func TestManager_ZeroDurationOverridesDefault(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "zero.yaml", `
benchmark:
  simulated_per_record: 0s
`)

	m := newTestManager([]string{file}, nil)
	if err := m.Load(""); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cfg := m.Get()
	if cfg.SimulatedPerRecord() != 0 {
		t.Errorf("SimulatedPerRecord = %v, want 0", cfg.SimulatedPerRecord())
	}
	if cfg.BaselinePerRecord() != time.Millisecond {
		t.Errorf("BaselinePerRecord should keep default, got %v", cfg.BaselinePerRecord())
	}
}

func TestManager_EnvOverridesFiles(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "c.yaml", "benchmark:\n  sizes: [1, 2]\n")

	m := newTestManager([]string{file}, map[string]string{
		"DISPARO_SIZES":     "7, 8",
		"DISPARO_TEMP_DIR":  "/scratch",
		"DISPARO_LOG_LEVEL": "WARN",
	})
	if err := m.Load(""); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cfg := m.Get()
	if !reflect.DeepEqual(cfg.Benchmark.Sizes, []int{7, 8}) {
		t.Errorf("Sizes = %v, want [7 8]", cfg.Benchmark.Sizes)
	}
	if cfg.Benchmark.TempDir != "/scratch" {
		t.Errorf("TempDir = %q", cfg.Benchmark.TempDir)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
}

func TestManager_ExtraFileMustExist(t *testing.T) {
	m := newTestManager([]string{}, nil)
	err := m.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !os.IsNotExist(err) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

func TestManager_ParseError(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.yaml", "benchmark: [unterminated")

	m := newTestManager([]string{bad}, nil)
	err := m.Load("")
	if !derrors.IsCode(err, derrors.CodeInvalidConfig) {
		t.Errorf("Expected %s, got %v", derrors.CodeInvalidConfig, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero size", func(c *Config) { c.Benchmark.Sizes = []int{1000, 0} }},
		{"no sizes", func(c *Config) { c.Benchmark.Sizes = nil }},
		{"negative simulated", func(c *Config) { c.Benchmark.SimulatedPerRecord = durationPtr(-time.Nanosecond) }},
		{"negative baseline", func(c *Config) { c.Benchmark.BaselinePerRecord = durationPtr(-time.Nanosecond) }},
		{"long delimiter", func(c *Config) { c.Generator.Delimiter = ";;" }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !derrors.IsCode(err, derrors.CodeInvalidConfig) {
				t.Errorf("Expected %s, got %v", derrors.CodeInvalidConfig, err)
			}
		})
	}
}

func TestParseSizes(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"1000,5000,10000", []int{1000, 5000, 10000}, false},
		{" 10 , 20 ,", []int{10, 20}, false},
		{"abc", nil, true},
		{"10,-1", nil, true},
		{",", nil, true},
	}

	for _, tt := range tests {
		got, err := ParseSizes(tt.in)
		if tt.in == "abc" && (err == nil || !strings.Contains(err.Error(), `invalid sample size "abc"`)) {
			t.Errorf("ParseSizes(%q) error should name the bad value, got %v", tt.in, err)
		}
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSizes(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseSizes(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
