// Package dyedensity assembles the spectral dye density table of a film
// stock: cyan, magenta and yellow dye curves plus the base (minimum) density,
// all resampled onto the reference grid.
//
// Stocks often ship without their own dye measurements. Each curve is
// therefore resolved through an ordered list of strategies and the first one
// that produces data wins:
//
//	cyan/magenta/yellow: local file, donor stock file, combined "mid" file, zeros
//	base:                local min file, donor min file, zeros
//
// The donor is a sibling folder of the stock (kodak_vision3_500t by default).
// Base density consults the donor on its own, regardless of where the dye
// curves came from.
package dyedensity
