package spectral

import (
	"errors"
	"fmt"
	"slices"
)

// ErrReferenceUnavailable marks failures to assemble the reference data set.
var ErrReferenceUnavailable = errors.New("spectral reference data unavailable")

// Reference is the immutable spectral reference set. All slices are aligned
// 1:1 with the grid.
type Reference struct {
	grid       []float64
	basis      [][3]float64
	illuminant []float64
}

// NewReference validates and copies the supplied tables.
func NewReference(grid []float64, basis [][3]float64, illuminant []float64) (*Reference, error) {
	if len(grid) == 0 {
		return nil, fmt.Errorf("%w: empty wavelength grid", ErrReferenceUnavailable)
	}
	for i := 1; i < len(grid); i++ {
		if grid[i] <= grid[i-1] {
			return nil, fmt.Errorf("%w: wavelength grid must be strictly increasing (index %d)", ErrReferenceUnavailable, i)
		}
	}
	if len(basis) != len(grid) {
		return nil, fmt.Errorf("%w: basis has %d samples, grid has %d", ErrReferenceUnavailable, len(basis), len(grid))
	}
	if len(illuminant) != len(grid) {
		return nil, fmt.Errorf("%w: illuminant has %d samples, grid has %d", ErrReferenceUnavailable, len(illuminant), len(grid))
	}
	return &Reference{
		grid:       slices.Clone(grid),
		basis:      slices.Clone(basis),
		illuminant: slices.Clone(illuminant),
	}, nil
}

// Len returns the number of grid samples.
func (r *Reference) Len() int {
	return len(r.grid)
}

// Grid returns a copy of the wavelength grid.
func (r *Reference) Grid() []float64 {
	return slices.Clone(r.grid)
}

// Wavelength returns grid sample i.
func (r *Reference) Wavelength(i int) float64 {
	return r.grid[i]
}

// Basis returns the three basis function values at grid sample i.
func (r *Reference) Basis(i int) [3]float64 {
	return r.basis[i]
}

// Illuminant returns the illuminant power at grid sample i.
func (r *Reference) Illuminant(i int) float64 {
	return r.illuminant[i]
}
