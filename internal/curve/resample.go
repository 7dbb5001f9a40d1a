package curve

import (
	"cmp"
	"slices"
	"sort"
)

type boundaryKind int

const (
	boundaryClamp boundaryKind = iota
	boundarySentinel
)

// Policy decides the value of grid points that fall outside a curve's x range.
type Policy struct {
	kind  boundaryKind
	value float64
}

// Clamp holds the nearest edge value outside the source range.
func Clamp() Policy {
	return Policy{kind: boundaryClamp}
}

// Sentinel maps every out-of-range grid point to value.
func Sentinel(value float64) Policy {
	return Policy{kind: boundarySentinel, value: value}
}

func (p Policy) String() string {
	if p.kind == boundarySentinel {
		return "sentinel"
	}
	return "clamp"
}

// Resample evaluates c at every grid point by linear interpolation. Points are
// sorted by x first; samples sharing an x collapse to the last one in file
// order. An empty curve yields zeros under Clamp and the sentinel under
// Sentinel.
func Resample(grid []float64, c Curve, policy Policy) []float64 {
	out := make([]float64, len(grid))
	xs, ys := prepare(c)

	if len(xs) == 0 {
		if policy.kind == boundarySentinel {
			for i := range out {
				out[i] = policy.value
			}
		}
		return out
	}

	first, last := 0, len(xs)-1
	for i, x := range grid {
		switch {
		case x < xs[first]:
			out[i] = policy.edge(ys[first])
		case x > xs[last]:
			out[i] = policy.edge(ys[last])
		default:
			out[i] = lerpAt(xs, ys, x)
		}
	}
	return out
}

func (p Policy) edge(y float64) float64 {
	if p.kind == boundarySentinel {
		return p.value
	}
	return y
}

// lerpAt interpolates inside [xs[0], xs[n-1]]; xs must be strictly increasing.
func lerpAt(xs, ys []float64, x float64) float64 {
	j := sort.SearchFloat64s(xs, x)
	if j < len(xs) && xs[j] == x {
		return ys[j]
	}
	lo, hi := j-1, j
	t := (x - xs[lo]) / (xs[hi] - xs[lo])
	return ys[lo] + t*(ys[hi]-ys[lo])
}

func prepare(c Curve) ([]float64, []float64) {
	if len(c) == 0 {
		return nil, nil
	}
	sorted := slices.Clone(c)
	slices.SortStableFunc(sorted, func(a, b Point) int { return cmp.Compare(a.X, b.X) })

	xs := make([]float64, 0, len(sorted))
	ys := make([]float64, 0, len(sorted))
	for _, p := range sorted {
		if n := len(xs); n > 0 && xs[n-1] == p.X {
			ys[n-1] = p.Y
			continue
		}
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
	}
	return xs, ys
}

// Column builds a curve from column col of a multi-column table, using the
// first column as x. Rows too narrow for col are skipped.
func Column(rows [][]float64, col int) Curve {
	out := Curve{}
	for _, row := range rows {
		if col <= 0 || col >= len(row) {
			continue
		}
		out = append(out, Point{X: row[0], Y: row[col]})
	}
	return out
}
