// Package config loads, normalizes, and validates filmimport configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// FILMIMPORT_CONFIG and FILMIMPORT_REFERENCE_DIR. The Config type centralizes
// every knob the importer needs: output and state directories, the location of
// the spectral reference data, the donor stock used for dye fallbacks, the
// optional run ledger, and log formatting.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
