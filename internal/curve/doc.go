// Package curve reads measured film curves from CSV files and resamples them
// onto a fixed wavelength grid.
//
// A Curve is an ordered list of (x, y) points exactly as they appear in the
// source file. Reading is forgiving: a missing file is an empty curve, rows
// that do not hold two finite numbers are skipped, and unexpected I/O errors
// are logged and treated as empty. Resample performs piecewise-linear
// interpolation with either a Clamp or a Sentinel boundary policy.
package curve
