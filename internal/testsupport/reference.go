package testsupport

import (
	"testing"

	"filmimport/internal/spectral"
)

// FlatBasisRows returns basis CSV rows with every function equal to 1 across [start, end].
func FlatBasisRows(start, end float64) [][]float64 {
	return [][]float64{{start, 1, 1, 1}, {end, 1, 1, 1}}
}

// Reference builds a small reference set on the given grid with basis
// function c equal to 1 only in the c-th third of the grid and a flat
// illuminant of the given power.
func Reference(t testing.TB, grid []float64, power float64) *spectral.Reference {
	t.Helper()

	basis := make([][3]float64, len(grid))
	for i := range grid {
		band := i * 3 / len(grid)
		basis[i][band] = 1
	}
	illuminant := make([]float64, len(grid))
	for i := range illuminant {
		illuminant[i] = power
	}
	ref, err := spectral.NewReference(grid, basis, illuminant)
	if err != nil {
		t.Fatalf("build reference: %v", err)
	}
	return ref
}

// Grid returns an evenly spaced grid or fails the test.
func Grid(t testing.TB, start, end, interval float64) []float64 {
	t.Helper()

	grid, err := spectral.Shape{Start: start, End: end, Interval: interval}.Wavelengths()
	if err != nil {
		t.Fatalf("build grid: %v", err)
	}
	return grid
}
