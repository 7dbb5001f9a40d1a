package curve

// Point is a single measured sample. X is usually a wavelength in nm or a log
// exposure value; Y is the measured density or log sensitivity.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Curve is an ordered sequence of points in file row order.
type Curve []Point

// Empty reports whether the curve holds no points.
func (c Curve) Empty() bool {
	return len(c) == 0
}

// NonNil returns c, or an empty non-nil curve when c is nil, so JSON encodes
// it as [] rather than null.
func NonNil(c Curve) Curve {
	if c == nil {
		return Curve{}
	}
	return c
}
