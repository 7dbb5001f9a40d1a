// Package spectral holds the fixed reference data every film matrix is
// computed against: the wavelength grid, three spectral basis functions
// aligned to that grid, and a standard illuminant spectrum.
//
// A Reference is built once at startup and is read-only afterwards; callers
// pass it explicitly to the sensitivity and dye density code. The CIE D65
// illuminant ships embedded (5 nm, 380-780 nm). Basis functions are external
// data and must be supplied as a CSV file; failing to load them is fatal for
// the run.
package spectral
