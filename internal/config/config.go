package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ConfigEnvVar names the environment variable that points at an explicit config file.
const ConfigEnvVar = "FILMIMPORT_CONFIG"

// ReferenceDirEnvVar names the environment fallback for reference.dir.
const ReferenceDirEnvVar = "FILMIMPORT_REFERENCE_DIR"

// Paths contains output and working directory configuration.
type Paths struct {
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
	StateDir  string `toml:"state_dir"`
}

// Shape describes the reference wavelength grid in nanometres.
type Shape struct {
	Start    float64 `toml:"start"`
	End      float64 `toml:"end"`
	Interval float64 `toml:"interval"`
}

// Reference locates the spectral reference data that every matrix is computed against.
type Reference struct {
	Dir string `toml:"dir"`
	// BasisFile is a CSV of wavelength followed by three basis function columns.
	// Relative values resolve against Dir.
	BasisFile string `toml:"basis_file"`
	// Illuminant selects a built-in illuminant table ("D65"). Ignored when
	// IlluminantFile is set.
	Illuminant string `toml:"illuminant"`
	// IlluminantFile is an optional CSV of wavelength,value pairs.
	IlluminantFile string `toml:"illuminant_file"`
	Shape          Shape  `toml:"shape"`
}

// Import contains knobs for stock discovery and profile assembly.
type Import struct {
	DonorStock          string  `toml:"donor_stock"`
	MarkerSuffix        string  `toml:"marker_suffix"`
	SensitivitySentinel float64 `toml:"sensitivity_sentinel"`
}

// Ledger controls the optional SQLite run history.
type Ledger struct {
	Enabled bool   `toml:"enabled"` // Default: false
	Path    string `toml:"path"`    // Default: <state_dir>/ledger.db
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for filmimport.
//
// Configuration sections:
//   - Paths: output, log, and state directories
//   - Reference: spectral grid, basis functions, and illuminant
//   - Import: donor stock, marker file suffix, sensitivity sentinel
//   - Ledger: optional SQLite record of past runs
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Reference Reference `toml:"reference"`
	Import    Import    `toml:"import"`
	Ledger    Ledger    `toml:"ledger"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/filmimport/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		if value, ok := os.LookupEnv(ConfigEnvVar); ok {
			path = strings.TrimSpace(value)
		}
	}
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("filmimport.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories an import run writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.OutputDir, c.Paths.StateDir}
	if strings.TrimSpace(c.Paths.LogDir) != "" {
		dirs = append(dirs, c.Paths.LogDir)
	}
	if c.Ledger.Enabled {
		dirs = append(dirs, filepath.Dir(c.Ledger.Path))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// SetOutputDir overrides paths.output_dir, expanding the value the same way
// the loader does.
func (c *Config) SetOutputDir(dir string) error {
	expanded, err := expandPath(strings.TrimSpace(dir))
	if err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if expanded == "" {
		return errors.New("paths.output_dir must be set")
	}
	c.Paths.OutputDir = expanded
	return nil
}

// BasisPath returns the absolute path of the basis function CSV.
func (c *Config) BasisPath() string {
	return resolveAgainst(c.Reference.Dir, c.Reference.BasisFile)
}

// IlluminantPath returns the absolute path of the illuminant CSV, or "" when a
// built-in illuminant is configured.
func (c *Config) IlluminantPath() string {
	if strings.TrimSpace(c.Reference.IlluminantFile) == "" {
		return ""
	}
	return resolveAgainst(c.Reference.Dir, c.Reference.IlluminantFile)
}

// LockPath returns the run lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "filmimport.lock")
}

func resolveAgainst(dir, name string) string {
	name = strings.TrimSpace(name)
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
