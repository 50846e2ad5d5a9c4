package tensor

// chunkSize is the fixed unroll width of FusedAddScaled's innermost loop,
// chosen to let the compiler's auto-vectorizer emit SIMD across the
// distinct-utility axis without relying on build-specific intrinsics.
const chunkSize = 4

// Tensor3 is a row-major 3-D tensor of float64 values, shaped
// (dim1, dim2, dim3), backed by a single flat slice. dim3 is the fastest-
// varying index, matching the boundary-set tensor B's layout (k, position,
// distinct-utility) so the e-axis recurrence is a contiguous vector op.
type Tensor3 struct {
	dim1, dim2, dim3 int
	buffer           []float64
}

// NewTensor3 allocates a dim1 x dim2 x dim3 tensor initialized to zero.
func NewTensor3(dim1, dim2, dim3 int) (*Tensor3, error) {
	return NewTensor3WithCapacity(dim1, dim2, dim3, dim1*dim2*dim3)
}

// NewTensor3WithCapacity allocates a buffer of the given capacity (at least
// dim1*dim2*dim3) and sets the logical shape, so a caller can later ReuseAs
// a smaller-or-equal shape without reallocating.
func NewTensor3WithCapacity(dim1, dim2, dim3, capacity int) (*Tensor3, error) {
	if dim1 <= 0 || dim2 <= 0 || dim3 <= 0 {
		return nil, ErrInvalidShape
	}
	if capacity < dim1*dim2*dim3 {
		return nil, ErrCapacityTooSmall
	}

	return &Tensor3{dim1: dim1, dim2: dim2, dim3: dim3, buffer: make([]float64, capacity)}, nil
}

// Dim1, Dim2, Dim3 return the current logical shape.
func (t *Tensor3) Dim1() int { return t.dim1 }
func (t *Tensor3) Dim2() int { return t.dim2 }
func (t *Tensor3) Dim3() int { return t.dim3 }

// ReuseAs changes the logical shape without reallocating or zeroing the
// backing buffer; see Dense.ReuseAs for the reuse contract this mirrors.
func (t *Tensor3) ReuseAs(dim1, dim2, dim3 int) error {
	if dim1 <= 0 || dim2 <= 0 || dim3 <= 0 {
		return ErrInvalidShape
	}
	if len(t.buffer) < dim1*dim2*dim3 {
		return ErrCapacityTooSmall
	}
	t.dim1, t.dim2, t.dim3 = dim1, dim2, dim3

	return nil
}

func (t *Tensor3) offset(d1, d2 int) int {
	return d1*t.dim2*t.dim3 + d2*t.dim3
}

// At retrieves the element at (d1, d2, d3), bounds-checked.
func (t *Tensor3) At(d1, d2, d3 int) (float64, error) {
	if d1 < 0 || d1 >= t.dim1 || d2 < 0 || d2 >= t.dim2 || d3 < 0 || d3 >= t.dim3 {
		return 0, ErrOutOfRange
	}

	return t.buffer[t.offset(d1, d2)+d3], nil
}

// Set assigns v at (d1, d2, d3), bounds-checked.
func (t *Tensor3) Set(d1, d2, d3 int, v float64) error {
	if d1 < 0 || d1 >= t.dim1 || d2 < 0 || d2 >= t.dim2 || d3 < 0 || d3 >= t.dim3 {
		return ErrOutOfRange
	}
	t.buffer[t.offset(d1, d2)+d3] = v

	return nil
}

// AtUnchecked reads (d1, d2, d3) without a bounds check in release builds;
// see Dense.AtUnchecked.
func (t *Tensor3) AtUnchecked(d1, d2, d3 int) float64 {
	debugCheck3("AtUnchecked", d1, d2, d3, t.dim1, t.dim2, t.dim3)

	return t.buffer[t.offset(d1, d2)+d3]
}

// SetUnchecked writes v at (d1, d2, d3) without a bounds check in release
// builds; see Dense.SetUnchecked.
func (t *Tensor3) SetUnchecked(d1, d2, d3 int, v float64) {
	debugCheck3("SetUnchecked", d1, d2, d3, t.dim1, t.dim2, t.dim3)
	t.buffer[t.offset(d1, d2)+d3] = v
}

// ZeroRow zeroes every e in [0,dim3) at (d1, d2), the shape of the base-case
// zeroing the boundary-set recurrence needs before each call (e.g. B[0][i][:]
// and B[k][M+1][:] in mle/prob.go's computeBoundary).
func (t *Tensor3) ZeroRow(d1, d2 int) {
	off := t.offset(d1, d2)
	row := t.buffer[off : off+t.dim3]
	for i := range row {
		row[i] = 0
	}
}

// ViewBuffer exposes the raw backing slice for test comparisons against
// reference dumps.
func (t *Tensor3) ViewBuffer() []float64 {
	return t.buffer
}

// FusedAddScaled computes y[yD1,yD2,:] = alpha1*x1[x1D1,x1D2,:] + alpha2*x2[x2D1,x2D2,:],
// a fused multiply-add over the dim3 axis. It is the vectorizable core of
// computeBoundary's k>=2 recurrence:
//
//	B[k][i][:] = (1-p[i-1])*B[k][i+1][:] + p[i-1]*B[k-1][i+1][:]
//
// The three dim3-slices must be pairwise disjoint; under raglab_debug this
// is checked and returns ErrAliasedBuffers, since the inner loop reads both
// sources and writes the destination within the same chunk without
// re-checking per element.
//
// The loop walks dim3 in fixed-width chunks of four plus a scalar tail, so
// a vectorizing compiler can emit SIMD across the chunk without unsafe
// pointer arithmetic.
func (t *Tensor3) FusedAddScaled(yD1, yD2 int, x1D1, x1D2 int, alpha1 float64, x2D1, x2D2 int, alpha2 float64) error {
	if aliasCheckEnabled {
		yOff, x1Off, x2Off := t.offset(yD1, yD2), t.offset(x1D1, x1D2), t.offset(x2D1, x2D2)
		if rangesOverlap(yOff, t.dim3, x1Off, t.dim3) || rangesOverlap(yOff, t.dim3, x2Off, t.dim3) {
			return ErrAliasedBuffers
		}
	}

	n := t.dim3
	yOff, x1Off, x2Off := t.offset(yD1, yD2), t.offset(x1D1, x1D2), t.offset(x2D1, x2D2)

	full := n - n%chunkSize
	i := 0
	for ; i < full; i += chunkSize {
		for j := 0; j < chunkSize; j++ {
			t.buffer[yOff+i+j] = t.buffer[x1Off+i+j]*alpha1 + t.buffer[x2Off+i+j]*alpha2
		}
	}
	for ; i < n; i++ {
		t.buffer[yOff+i] = t.buffer[x1Off+i]*alpha1 + t.buffer[x2Off+i]*alpha2
	}

	return nil
}

func rangesOverlap(aStart, aLen, bStart, bLen int) bool {
	aEnd, bEnd := aStart+aLen, bStart+bLen

	return aStart < bEnd && bStart < aEnd
}
