package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// builtinIlluminants lists the illuminant names the spectral package ships tables for.
var builtinIlluminants = map[string]struct{}{
	"D65": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateReference(); err != nil {
		return err
	}
	if err := c.validateImport(); err != nil {
		return err
	}
	if err := c.validateLedger(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		return errors.New("paths.state_dir must be set")
	}
	return nil
}

func (c *Config) validateReference() error {
	shape := c.Reference.Shape
	if shape.Interval <= 0 {
		return errors.New("reference.shape.interval must be positive")
	}
	if shape.End < shape.Start {
		return fmt.Errorf("reference.shape.end (%g) must not be less than reference.shape.start (%g)", shape.End, shape.Start)
	}
	if strings.TrimSpace(c.Reference.BasisFile) == "" {
		return errors.New("reference.basis_file must be set")
	}
	if c.Reference.IlluminantFile == "" {
		if _, ok := builtinIlluminants[c.Reference.Illuminant]; !ok {
			return fmt.Errorf("reference.illuminant %q is not built in; set reference.illuminant_file to load a table", c.Reference.Illuminant)
		}
	}
	return nil
}

func (c *Config) validateImport() error {
	donor := c.Import.DonorStock
	if donor == "" {
		return errors.New("import.donor_stock must be set")
	}
	if donor != filepath.Base(donor) || donor == "." || donor == ".." {
		return fmt.Errorf("import.donor_stock %q must be a folder name, not a path", donor)
	}
	if c.Import.MarkerSuffix == "" {
		return errors.New("import.marker_suffix must be set")
	}
	return nil
}

func (c *Config) validateLedger() error {
	if c.Ledger.Enabled && strings.TrimSpace(c.Ledger.Path) == "" {
		return errors.New("ledger.path must be set when ledger.enabled is true")
	}
	return nil
}
