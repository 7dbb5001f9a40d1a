package spectral

import (
	"fmt"
	"math"
)

// Shape describes an evenly spaced wavelength range in nanometres, both ends inclusive.
type Shape struct {
	Start    float64
	End      float64
	Interval float64
}

// DefaultShape matches the 380-780 nm, 5 nm grid used by the film models.
var DefaultShape = Shape{Start: 380, End: 780, Interval: 5}

// Wavelengths expands the shape into its grid points.
func (s Shape) Wavelengths() ([]float64, error) {
	if s.Interval <= 0 || math.IsNaN(s.Interval) || math.IsInf(s.Interval, 0) {
		return nil, fmt.Errorf("spectral shape interval must be positive, got %g", s.Interval)
	}
	if s.End < s.Start {
		return nil, fmt.Errorf("spectral shape end %g is below start %g", s.End, s.Start)
	}
	// The epsilon keeps 380..780 step 5 at 81 samples despite float rounding.
	n := int(math.Floor((s.End-s.Start)/s.Interval+1e-9)) + 1
	grid := make([]float64, n)
	for i := range grid {
		grid[i] = s.Start + float64(i)*s.Interval
	}
	return grid, nil
}

func (s Shape) String() string {
	return fmt.Sprintf("%g-%g/%g nm", s.Start, s.End, s.Interval)
}
