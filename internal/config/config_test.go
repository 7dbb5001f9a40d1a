package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"filmimport/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv(config.ConfigEnvVar, "")
	t.Setenv(config.ReferenceDirEnvVar, "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "share", "filmimport")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if !filepath.IsAbs(cfg.Paths.OutputDir) || filepath.Base(cfg.Paths.OutputDir) != "profiles" {
		t.Fatalf("unexpected output dir: %q", cfg.Paths.OutputDir)
	}
	wantReference := filepath.Join(tempHome, ".local", "share", "filmimport", "reference")
	if cfg.Reference.Dir != wantReference {
		t.Fatalf("unexpected reference dir: got %q want %q", cfg.Reference.Dir, wantReference)
	}
	if cfg.BasisPath() != filepath.Join(wantReference, "mallett2019_basis.csv") {
		t.Fatalf("unexpected basis path: %q", cfg.BasisPath())
	}
	if cfg.IlluminantPath() != "" {
		t.Fatalf("expected built-in illuminant, got path %q", cfg.IlluminantPath())
	}
	if cfg.Reference.Illuminant != "D65" {
		t.Fatalf("unexpected illuminant: %q", cfg.Reference.Illuminant)
	}
	if cfg.Import.DonorStock != "kodak_vision3_500t" {
		t.Fatalf("unexpected donor stock: %q", cfg.Import.DonorStock)
	}
	if cfg.Import.SensitivitySentinel != -100 {
		t.Fatalf("unexpected sentinel: %v", cfg.Import.SensitivitySentinel)
	}
	if cfg.Ledger.Enabled {
		t.Fatal("expected ledger disabled by default")
	}
	if cfg.Ledger.Path != filepath.Join(wantState, "ledger.db") {
		t.Fatalf("unexpected ledger path: %q", cfg.Ledger.Path)
	}
	if cfg.LockPath() != filepath.Join(wantState, "filmimport.lock") {
		t.Fatalf("unexpected lock path: %q", cfg.LockPath())
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.OutputDir, cfg.Paths.StateDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "filmimport.toml")

	type payload struct {
		Paths struct {
			OutputDir string `toml:"output_dir"`
			StateDir  string `toml:"state_dir"`
		} `toml:"paths"`
		Reference struct {
			Dir            string `toml:"dir"`
			IlluminantFile string `toml:"illuminant_file"`
		} `toml:"reference"`
		Import struct {
			DonorStock string `toml:"donor_stock"`
		} `toml:"import"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.OutputDir = filepath.Join(tempDir, "out")
	custom.Paths.StateDir = filepath.Join(tempDir, "state")
	custom.Reference.Dir = filepath.Join(tempDir, "ref")
	custom.Reference.IlluminantFile = "d55.csv"
	custom.Import.DonorStock = "fujifilm_eterna_500"
	custom.Logging.Format = " JSON "

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected config %q to be used, got %q exists=%v", configPath, resolved, exists)
	}
	if cfg.Paths.OutputDir != custom.Paths.OutputDir {
		t.Fatalf("unexpected output dir: %q", cfg.Paths.OutputDir)
	}
	if cfg.IlluminantPath() != filepath.Join(tempDir, "ref", "d55.csv") {
		t.Fatalf("unexpected illuminant path: %q", cfg.IlluminantPath())
	}
	if cfg.Import.DonorStock != "fujifilm_eterna_500" {
		t.Fatalf("unexpected donor stock: %q", cfg.Import.DonorStock)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected normalized json format, got %q", cfg.Logging.Format)
	}
	if want := filepath.Join(custom.Paths.StateDir, "ledger.db"); cfg.Ledger.Path != want {
		t.Fatalf("ledger path should follow state_dir: got %q want %q", cfg.Ledger.Path, want)
	}
}

func TestLoadHonoursConfigEnvVar(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "env.toml")
	body := "[import]\ndonor_stock = \"kodak_vision3_250d\"\n"
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(config.ConfigEnvVar, configPath)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected env config, got %q exists=%v", resolved, exists)
	}
	if cfg.Import.DonorStock != "kodak_vision3_250d" {
		t.Fatalf("unexpected donor stock: %q", cfg.Import.DonorStock)
	}
}

func TestReferenceDirEnvFallback(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	refDir := t.TempDir()
	t.Setenv(config.ReferenceDirEnvVar, refDir)

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Reference.Dir != refDir {
		t.Fatalf("expected reference dir from env %q, got %q", refDir, cfg.Reference.Dir)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:    "non-positive interval",
			mutate:  func(c *config.Config) { c.Reference.Shape.Interval = 0 },
			wantErr: "reference.shape.interval",
		},
		{
			name: "inverted shape",
			mutate: func(c *config.Config) {
				c.Reference.Shape.Start = 700
				c.Reference.Shape.End = 400
			},
			wantErr: "reference.shape.end",
		},
		{
			name:    "unknown illuminant",
			mutate:  func(c *config.Config) { c.Reference.Illuminant = "F2" },
			wantErr: "reference.illuminant",
		},
		{
			name:    "donor path",
			mutate:  func(c *config.Config) { c.Import.DonorStock = "../elsewhere" },
			wantErr: "import.donor_stock",
		},
		{
			name: "ledger without path",
			mutate: func(c *config.Config) {
				c.Ledger.Enabled = true
				c.Ledger.Path = ""
			},
			wantErr: "ledger.path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestSetOutputDir(t *testing.T) {
	cfg := config.Default()
	target := filepath.Join(t.TempDir(), "profiles")
	if err := cfg.SetOutputDir(target); err != nil {
		t.Fatalf("SetOutputDir: %v", err)
	}
	if cfg.Paths.OutputDir != target {
		t.Fatalf("unexpected output dir %q", cfg.Paths.OutputDir)
	}
	if err := cfg.SetOutputDir("  "); err == nil {
		t.Fatal("expected error for empty output dir")
	}
}

func TestSampleConfigIsLoadable(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	target, err := filepath.Abs("sample_config.toml")
	if err != nil {
		t.Fatal(err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Reference.Shape.Interval != 5 {
		t.Fatalf("unexpected sample interval %v", cfg.Reference.Shape.Interval)
	}
	if want := filepath.Join(cfg.Paths.StateDir, "ledger.db"); cfg.Ledger.Path != want {
		t.Fatalf("unexpected sample ledger path %q", cfg.Ledger.Path)
	}
}
