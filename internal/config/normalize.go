package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeReference(); err != nil {
		return err
	}
	c.normalizeImport()
	if err := c.normalizeLedger(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	// An empty log_dir disables the log file.
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeReference() error {
	c.Reference.Dir = strings.TrimSpace(c.Reference.Dir)
	if c.Reference.Dir == "" {
		if value, ok := os.LookupEnv(ReferenceDirEnvVar); ok && strings.TrimSpace(value) != "" {
			c.Reference.Dir = strings.TrimSpace(value)
		} else {
			c.Reference.Dir = defaultReferenceDir
		}
	}
	var err error
	if c.Reference.Dir, err = expandPath(c.Reference.Dir); err != nil {
		return fmt.Errorf("reference.dir: %w", err)
	}

	c.Reference.BasisFile = strings.TrimSpace(c.Reference.BasisFile)
	if c.Reference.BasisFile == "" {
		c.Reference.BasisFile = defaultBasisFile
	}
	if strings.HasPrefix(c.Reference.BasisFile, "~") {
		if c.Reference.BasisFile, err = expandPath(c.Reference.BasisFile); err != nil {
			return fmt.Errorf("reference.basis_file: %w", err)
		}
	}

	c.Reference.IlluminantFile = strings.TrimSpace(c.Reference.IlluminantFile)
	if strings.HasPrefix(c.Reference.IlluminantFile, "~") {
		if c.Reference.IlluminantFile, err = expandPath(c.Reference.IlluminantFile); err != nil {
			return fmt.Errorf("reference.illuminant_file: %w", err)
		}
	}

	c.Reference.Illuminant = strings.ToUpper(strings.TrimSpace(c.Reference.Illuminant))
	if c.Reference.Illuminant == "" {
		c.Reference.Illuminant = defaultIlluminant
	}
	return nil
}

func (c *Config) normalizeImport() {
	c.Import.DonorStock = strings.TrimSpace(c.Import.DonorStock)
	if c.Import.DonorStock == "" {
		c.Import.DonorStock = defaultDonorStock
	}
	c.Import.MarkerSuffix = strings.TrimSpace(c.Import.MarkerSuffix)
	if c.Import.MarkerSuffix == "" {
		c.Import.MarkerSuffix = defaultMarkerSuffix
	}
	if c.Import.SensitivitySentinel == 0 {
		c.Import.SensitivitySentinel = defaultSensitivitySentinel
	}
}

func (c *Config) normalizeLedger() error {
	c.Ledger.Path = strings.TrimSpace(c.Ledger.Path)
	if c.Ledger.Path == "" {
		c.Ledger.Path = filepath.Join(c.Paths.StateDir, "ledger.db")
	}
	var err error
	if c.Ledger.Path, err = expandPath(c.Ledger.Path); err != nil {
		return fmt.Errorf("ledger.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
