package testsupport

import (
	"path/filepath"
	"testing"

	"filmimport/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The reference directory receives a flat basis table so reference loading
// succeeds out of the box.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.OutputDir = filepath.Join(base, "profiles")
	cfgVal.Paths.LogDir = ""
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Reference.Dir = filepath.Join(base, "reference")
	cfgVal.Ledger.Path = filepath.Join(base, "state", "ledger.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	WriteCSV(t, cfgVal.BasisPath(), FlatBasisRows(cfgVal.Reference.Shape.Start, cfgVal.Reference.Shape.End)...)

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithLedger enables the SQLite ledger on the test config.
func WithLedger() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Ledger.Enabled = true
	}
}

// WithDonorStock overrides the donor stock folder name.
func WithDonorStock(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Import.DonorStock = name
	}
}

// WithoutBasis removes the generated basis table so reference loading fails.
func WithoutBasis() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Reference.BasisFile = filepath.Join(b.baseDir, "reference", "absent.csv")
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
