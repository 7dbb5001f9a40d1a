package profile

import (
	"strings"

	"filmimport/internal/textutil"
)

// Rule maps any of its keywords, matched as substrings of the lower-cased
// slug, to a value.
type Rule[T any] struct {
	Keywords []string
	Value    T
}

// Infer walks rules in order and returns the value of the first rule with a
// matching keyword, or fallback.
func Infer[T any](rules []Rule[T], fallback T, slug string) T {
	lowered := strings.ToLower(slug)
	for _, rule := range rules {
		if _, ok := textutil.ContainsAny(lowered, rule.Keywords...); ok {
			return rule.Value
		}
	}
	return fallback
}

const (
	UnknownManufacturer = "Unknown"
	DefaultISO          = 100
	ProcessC41          = "C-41"
	ProcessBW           = "BW"
)

// ManufacturerRules is evaluated in order; "kodak" wins over "fuji".
var ManufacturerRules = []Rule[string]{
	{Keywords: []string{"kodak"}, Value: "Kodak"},
	{Keywords: []string{"fuji"}, Value: "Fujifilm"},
	{Keywords: []string{"ilford"}, Value: "Ilford"},
}

// ISORules is ordered so that "400" is tested before "50" and "160".
var ISORules = []Rule[int]{
	{Keywords: []string{"400"}, Value: 400},
	{Keywords: []string{"800"}, Value: 800},
	{Keywords: []string{"160"}, Value: 160},
	{Keywords: []string{"50"}, Value: 50},
}

var ProcessRules = []Rule[string]{
	{Keywords: []string{"ilford", "tmax", "tri-x"}, Value: ProcessBW},
}

// InferMeta derives the display metadata for slug.
func InferMeta(slug string) Meta {
	return Meta{
		Name:         textutil.DisplayName(slug),
		Manufacturer: Infer(ManufacturerRules, UnknownManufacturer, slug),
		Process:      Infer(ProcessRules, ProcessC41, slug),
		ISO:          Infer(ISORules, DefaultISO, slug),
	}
}
