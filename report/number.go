// SPDX-License-Identifier: MIT

package report

import (
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Number is a float rounded to a fixed number of decimal places. It renders
// identically in text and YAML and never prints a negative zero.
type Number struct {
	d      decimal.Decimal
	places int32
}

// Fixed rounds v to places decimal places.
func Fixed(v float64, places int32) Number {
	return Number{d: decimal.NewFromFloat(v).Round(places), places: places}
}

// String implements fmt.Stringer.
func (n Number) String() string { return n.d.StringFixed(n.places) }

// Float returns the rounded value.
func (n Number) Float() float64 {
	f, _ := n.d.Float64()

	return f
}

// MarshalYAML emits an untagged float scalar so readers see a number, not a
// quoted string.
func (n Number) MarshalYAML() (interface{}, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: n.String()}, nil
}

func fixedSlice(vs []float64, places int32) []Number {
	out := make([]Number, len(vs))
	for i, v := range vs {
		out[i] = Fixed(v, places)
	}

	return out
}
