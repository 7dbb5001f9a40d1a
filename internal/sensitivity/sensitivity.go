// Package sensitivity derives the RGB-to-raw matrix of a film stock from its
// measured log spectral sensitivity curves.
package sensitivity

import (
	"log/slog"
	"math"
	"path/filepath"

	"filmimport/internal/curve"
	"filmimport/internal/logging"
	"filmimport/internal/spectral"
)

// DefaultSentinel is the log10 sensitivity assigned outside a measured curve.
const DefaultSentinel = -100.0

// Channels lists the layer suffixes in matrix column order.
var Channels = [3]string{"r", "g", "b"}

// Matrix3 maps basis-space RGB (rows) to raw layer response (columns).
type Matrix3 [3][3]float64

// Identity returns the 3x3 identity matrix.
func Identity() Matrix3 {
	return Matrix3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// FileName returns the log sensitivity CSV name for channel ("r", "g" or "b").
func FileName(channel string) string {
	return "log_sensitivity_" + channel + ".csv"
}

// Computer turns log sensitivity files into a matrix against a fixed reference.
type Computer struct {
	ref      *spectral.Reference
	reader   *curve.Reader
	sentinel float64
	logger   *slog.Logger
}

// NewComputer builds a Computer. A zero sentinel selects DefaultSentinel.
func NewComputer(ref *spectral.Reference, reader *curve.Reader, sentinel float64, logger *slog.Logger) *Computer {
	if sentinel == 0 {
		sentinel = DefaultSentinel
	}
	if reader == nil {
		reader = curve.NewReader(logger)
	}
	return &Computer{
		ref:      ref,
		reader:   reader,
		sentinel: sentinel,
		logger:   logging.NewComponentLogger(logger, "sensitivity"),
	}
}

// Compute reads log_sensitivity_{r,g,b}.csv from dir and returns the contracted
// matrix. When any of the three files is missing it returns the identity.
func (c *Computer) Compute(dir string) Matrix3 {
	for _, ch := range Channels {
		path := filepath.Join(dir, FileName(ch))
		if !curve.Exists(path) {
			c.logger.Debug("sensitivity file missing, using identity matrix",
				logging.String(logging.FieldPath, path))
			return Identity()
		}
	}

	grid := c.ref.Grid()
	sens := make([][3]float64, len(grid))
	for k, ch := range Channels {
		logSens := curve.Resample(grid, c.reader.Points(filepath.Join(dir, FileName(ch))), curve.Sentinel(c.sentinel))
		for i, v := range logSens {
			sens[i][k] = linear(v)
		}
	}
	return Contract(c.ref, sens)
}

// Contract computes M[c][k] = sum over l of basis[l][c] * illuminant[l] * sens[l][k].
// sens must be aligned with the reference grid.
func Contract(ref *spectral.Reference, sens [][3]float64) Matrix3 {
	var m Matrix3
	n := min(ref.Len(), len(sens))
	for l := range n {
		basis := ref.Basis(l)
		power := ref.Illuminant(l)
		for c := range 3 {
			weight := basis[c] * power
			for k := range 3 {
				m[c][k] += weight * sens[l][k]
			}
		}
	}
	return m
}

// linear converts a log10 sensitivity to linear, mapping non-finite results to zero.
func linear(logValue float64) float64 {
	v := math.Pow(10, logValue)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
