// SPDX-License-Identifier: MIT

// Package matrix: conversions between flat real arrays, as persisted by
// quantum-chemistry outputs, and complex Dense matrices.
//
// Two layouts are understood:
//   - (r, c):    a real matrix, row-major.
//   - (2, r, c): real part stacked on top of the imaginary part; element
//     (i,j) is data[i*c+j] + i·data[r*c+i*c+j].
package matrix

import (
	"fmt"
	"math"
)

// FromStacked rebuilds a complex matrix from a flat real buffer and its shape.
//
// Errors:
//   - ErrBadLayout when shape is neither (r,c) nor (2,r,c).
//   - ErrInvalidDimensions for non-positive r or c.
//   - ErrDimensionMismatch when len(data) disagrees with shape.
//   - ErrNaNInf on non-finite input.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func FromStacked(shape []int, data []float64) (*Dense, error) {
	var rows, cols, planes int
	switch {
	case len(shape) == 2:
		planes, rows, cols = 1, shape[0], shape[1]
	case len(shape) == 3 && shape[0] == 2:
		planes, rows, cols = 2, shape[1], shape[2]
	default:
		return nil, matrixErrorf(opFromStacked, fmt.Errorf("shape %v: %w", shape, ErrBadLayout))
	}

	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opFromStacked, err)
	}
	if len(data) != planes*rows*cols {
		return nil, matrixErrorf(opFromStacked, fmt.Errorf("len %d for shape %v: %w", len(data), shape, ErrDimensionMismatch))
	}
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, matrixErrorf(opFromStacked, ErrNaNInf)
		}
	}

	plane := rows * cols
	for idx := 0; idx < plane; idx++ {
		if planes == 2 {
			m.data[idx] = complex(data[idx], data[plane+idx])
		} else {
			m.data[idx] = complex(data[idx], 0)
		}
	}

	return m, nil
}

// ToStacked flattens m into the (2, r, c) real/imaginary layout accepted by
// FromStacked. The returned buffers are freshly allocated.
func ToStacked(m *Dense) ([]int, []float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, nil, matrixErrorf("ToStacked", err)
	}
	plane := m.r * m.c
	data := make([]float64, 2*plane)
	for idx, v := range m.data {
		data[idx] = real(v)
		data[plane+idx] = imag(v)
	}

	return []int{2, m.r, m.c}, data, nil
}
