package profile

import (
	"bytes"
	"encoding/json"

	"filmimport/internal/curve"
	"filmimport/internal/dyedensity"
	"filmimport/internal/sensitivity"
)

// Profile is the document written as <id>.json. Field order is the output key order.
type Profile struct {
	ID           string   `json:"id"`
	Meta         Meta     `json:"meta"`
	Physics      Physics  `json:"physics"`
	Sensitometry Channels `json:"sensitometry"`
	Spectral     Channels `json:"spectral"`
}

type Meta struct {
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
	Process      string `json:"process"`
	ISO          int    `json:"iso"`
}

type Physics struct {
	RGBToRawMatrix sensitivity.Matrix3 `json:"rgb_to_raw_matrix"`
	DyeDensity     dyedensity.Table    `json:"dye_density"`
}

// Channels holds one curve per colour record.
type Channels struct {
	Red   curve.Curve `json:"red"`
	Green curve.Curve `json:"green"`
	Blue  curve.Curve `json:"blue"`
}

// MarshalJSON keeps absent curves as [] rather than null.
func (c Channels) MarshalJSON() ([]byte, error) {
	type plain Channels
	return json.Marshal(plain{
		Red:   curve.NonNil(c.Red),
		Green: curve.NonNil(c.Green),
		Blue:  curve.NonNil(c.Blue),
	})
}

// Encode renders p with two-space indentation and a trailing newline.
func Encode(p *Profile) ([]byte, error) {
	if p.Physics.DyeDensity == nil {
		p.Physics.DyeDensity = dyedensity.Table{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
