// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major complex buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Support copy-based window extraction (Slice) and block placement (SetBlock),
//     the two primitives composite-basis assembly is built from.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); Slice: O(r'*c'); SetBlock: O(r'*c').

package matrix

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt       = "At"       // method tag used in error wrappers
	ctxSet      = "Set"      // method tag used in error wrappers
	ctxSlice    = "Slice"    // method tag for Dense.Slice
	ctxSetBlock = "SetBlock" // method tag for Dense.SetBlock
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// The sentinel is preserved via %w so callers keep matching with errors.Is.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major complex matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int          // row and column counts (> 0)
	data []complex128 // contiguous row-major storage (len == r*c)
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Dense)(nil)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	// Validate shape.
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	// make() zero-fills deterministically.
	return &Dense{r: rows, c: cols, data: make([]complex128, rows*cols)}, nil
}

// NewDenseFrom creates an r×c matrix holding a copy of data (row-major).
// Returns ErrInvalidDimensions for non-positive shapes and
// ErrDimensionMismatch when len(data) != rows*cols.
func NewDenseFrom(rows, cols int, data []complex128) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("NewDenseFrom: len %d for %dx%d: %w", len(data), rows, cols, ErrDimensionMismatch)
	}
	copy(m.data, data)

	return m, nil
}

// Identity returns the n×n identity matrix.
func Identity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}

	return m, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange
// wrapped with the caller's method tag.
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Errors: ErrOutOfRange for invalid indices.
// Complexity: O(1).
func (m *Dense) At(row, col int) (complex128, error) {
	idx, err := m.indexOf(ctxAt, row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns v at (row, col).
// Errors: ErrOutOfRange for invalid indices, ErrNaNInf for non-finite parts.
// Complexity: O(1).
func (m *Dense) Set(row, col int, v complex128) error {
	idx, err := m.indexOf(ctxSet, row, col)
	if err != nil {
		return err
	}
	if cmplx.IsNaN(v) || cmplx.IsInf(v) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[idx] = v

	return nil
}

// Clone returns a deep copy of the matrix.
// Complexity: O(r*c) time and memory.
func (m *Dense) Clone() *Dense {
	buf := make([]complex128, len(m.data))
	copy(buf, m.data)

	return &Dense{r: m.r, c: m.c, data: buf}
}

// Slice materializes the half-open window [r0,r1)×[c0,c1) as a new Dense.
// The result is independent of m.
//
// Errors:
//   - ErrOutOfRange when the window leaves the matrix or is empty.
//
// Complexity:
//   - Time O((r1-r0)*(c1-c0)).
func (m *Dense) Slice(r0, r1, c0, c1 int) (*Dense, error) {
	if r0 < 0 || c0 < 0 || r1 > m.r || c1 > m.c || r0 >= r1 || c0 >= c1 {
		return nil, denseErrorf(ctxSlice, r0, c0, ErrOutOfRange)
	}
	h, w := r1-r0, c1-c0
	out := &Dense{r: h, c: w, data: make([]complex128, h*w)}
	for i := 0; i < h; i++ {
		copy(out.data[i*w:(i+1)*w], m.data[(r0+i)*m.c+c0:(r0+i)*m.c+c1])
	}

	return out, nil
}

// SetBlock copies block into m with its top-left corner at (r0, c0).
// The block must fit entirely; nothing is written otherwise.
//
// Errors:
//   - ErrNilMatrix when block is nil.
//   - ErrDimensionMismatch when the block overflows m.
//
// Complexity:
//   - Time O(block.r*block.c).
func (m *Dense) SetBlock(r0, c0 int, block *Dense) error {
	if block == nil {
		return denseErrorf(ctxSetBlock, r0, c0, ErrNilMatrix)
	}
	if r0 < 0 || c0 < 0 || r0+block.r > m.r || c0+block.c > m.c {
		return denseErrorf(ctxSetBlock, r0, c0, ErrDimensionMismatch)
	}
	for i := 0; i < block.r; i++ {
		copy(m.data[(r0+i)*m.c+c0:(r0+i)*m.c+c0+block.c], block.data[i*block.c:(i+1)*block.c])
	}

	return nil
}

// MaxAbs returns the largest element modulus, 0 for an all-zero matrix.
func (m *Dense) MaxAbs() float64 {
	var best float64
	for _, v := range m.data {
		best = math.Max(best, cmplx.Abs(v))
	}

	return best
}

// String implements fmt.Stringer for easy debugging.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j := 0; j < m.c; j++ {
			sb.WriteString(fmt.Sprintf("%g", m.data[i*m.c+j]))
			if j < m.c-1 {
				sb.WriteString(_fmtSep)
			}
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}
