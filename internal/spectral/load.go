package spectral

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"filmimport/internal/curve"
)

//go:embed data/cie_d65.csv
var cieD65 string

var builtinIlluminants = map[string]string{
	"D65": cieD65,
}

// LoadOptions locates the reference tables.
type LoadOptions struct {
	Shape Shape
	// BasisPath is a CSV of wavelength,b0,b1,b2 rows.
	BasisPath string
	// Illuminant names a built-in table; used when IlluminantPath is empty.
	Illuminant string
	// IlluminantPath is an optional CSV of wavelength,value rows.
	IlluminantPath string
}

// Load assembles a Reference from the configured tables. Every table is
// aligned to the grid with clamped linear interpolation. Any failure wraps
// ErrReferenceUnavailable.
func Load(opts LoadOptions) (*Reference, error) {
	grid, err := opts.Shape.Wavelengths()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReferenceUnavailable, err)
	}

	basis, err := loadBasis(opts.BasisPath, grid)
	if err != nil {
		return nil, err
	}

	illuminant, err := loadIlluminant(opts, grid)
	if err != nil {
		return nil, err
	}

	return NewReference(grid, basis, illuminant)
}

func loadBasis(path string, grid []float64) ([][3]float64, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: basis path not configured", ErrReferenceUnavailable)
	}
	rows, err := readTable(path)
	if err != nil {
		return nil, fmt.Errorf("%w: basis functions: %v", ErrReferenceUnavailable, err)
	}
	if len(rows) == 0 || len(rows[0]) < 4 {
		return nil, fmt.Errorf("%w: basis functions %s need rows of wavelength plus three values", ErrReferenceUnavailable, path)
	}

	basis := make([][3]float64, len(grid))
	for c := range 3 {
		aligned := curve.Resample(grid, curve.Column(rows, c+1), curve.Clamp())
		for i, v := range aligned {
			basis[i][c] = v
		}
	}
	return basis, nil
}

func loadIlluminant(opts LoadOptions, grid []float64) ([]float64, error) {
	var (
		rows [][]float64
		err  error
		name string
	)
	if path := strings.TrimSpace(opts.IlluminantPath); path != "" {
		name = path
		rows, err = readTable(path)
	} else {
		name = strings.ToUpper(strings.TrimSpace(opts.Illuminant))
		table, ok := builtinIlluminants[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown illuminant %q", ErrReferenceUnavailable, opts.Illuminant)
		}
		rows, err = curve.ParseColumns(strings.NewReader(table))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: illuminant %s: %v", ErrReferenceUnavailable, name, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: illuminant %s has no samples", ErrReferenceUnavailable, name)
	}
	return curve.Resample(grid, curve.Column(rows, 1), curve.Clamp()), nil
}

func readTable(path string) ([][]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return curve.ParseColumns(file)
}
