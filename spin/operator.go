// SPDX-License-Identifier: MIT

package spin

import (
	"fmt"
	"math"

	"github.com/koehnlab/gtensor/matrix"
)

// Standard is the textbook spin-operator provider. The zero value is ready
// to use.
type Standard struct{}

// Operator implements the provider contract for Standard.
func (Standard) Operator(s Spin, c Component) (*matrix.Dense, error) {
	return Operator(s, c)
}

// Operator returns S_c for spin s as a (2S+1)×(2S+1) Hermitian matrix.
//
// Implementation:
//   - S_z is diagonal with entries m_s = S, S−1, …, −S.
//   - The raising operator has S₊[k−1,k] = sqrt(S(S+1) − m(m+1)) with m = S − k.
//   - S_x = (S₊ + S₋)/2 and S_y = (S₊ − S₋)/(2i), S₋ = S₊ᴴ.
//
// Errors:
//   - ErrUnknownComponent for labels outside {X, Y, Z}.
//
// Complexity:
//   - Time O((2S+1)²), Space O((2S+1)²).
func Operator(s Spin, c Component) (*matrix.Dense, error) {
	if c != X && c != Y && c != Z {
		return nil, fmt.Errorf("Operator(%s): %w", c, ErrUnknownComponent)
	}

	dim := s.Multiplicity()
	out, err := matrix.NewDense(dim, dim)
	if err != nil {
		return nil, fmt.Errorf("Operator(%s,%s): %w", s, c, err)
	}
	S := s.Value()

	if c == Z {
		for k := 0; k < dim; k++ {
			if err = out.Set(k, k, complex(S-float64(k), 0)); err != nil {
				return nil, err
			}
		}

		return out, nil
	}

	for k := 1; k < dim; k++ {
		m := S - float64(k)
		up := math.Sqrt(S*(S+1) - m*(m+1)) // <m+1|S₊|m>
		var upper, lower complex128
		if c == X {
			upper, lower = complex(up/2, 0), complex(up/2, 0)
		} else {
			upper, lower = complex(0, -up/2), complex(0, up/2)
		}
		if err = out.Set(k-1, k, upper); err != nil {
			return nil, err
		}
		if err = out.Set(k, k-1, lower); err != nil {
			return nil, err
		}
	}

	return out, nil
}
