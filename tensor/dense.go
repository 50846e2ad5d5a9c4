package tensor

import "fmt"

// Dense is a row-major matrix of float64 values, backed by a single flat
// slice. rows and cols describe the current logical shape; buffer may be
// larger than rows*cols when the matrix was allocated with spare capacity
// for later ReuseAs calls.
type Dense struct {
	rows, cols int
	buffer     []float64
}

// denseErrorf wraps an underlying error with method context, mirroring the
// matrix package's denseErrorf helper.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// NewDense allocates a rows x cols matrix initialized to zero.
// Complexity: O(rows*cols) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	return NewDenseWithCapacity(rows, cols, rows*cols)
}

// NewDenseWithCapacity allocates a buffer of the given capacity (which must
// be at least rows*cols) and sets the logical shape to rows x cols. The
// extra capacity lets a caller later ReuseAs a larger shape without
// reallocating, which is how mle's Pool sizes IP/RP/B once per worker and
// reuses them across queries of varying M and E.
func NewDenseWithCapacity(rows, cols, capacity int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidShape
	}
	if capacity < rows*cols {
		return nil, ErrCapacityTooSmall
	}

	return &Dense{rows: rows, cols: cols, buffer: make([]float64, capacity)}, nil
}

// Rows returns the current logical row count.
func (m *Dense) Rows() int { return m.rows }

// Cols returns the current logical column count.
func (m *Dense) Cols() int { return m.cols }

// ReuseAs changes the logical shape to rows x cols without reallocating the
// backing buffer and without zeroing it. Cells outside the new extent (or
// left over from a previous, larger shape) retain whatever they held
// before; callers that depend on zeroed base cells must zero them
// explicitly (see mle/prob.go's computeProb for the cells this recurrence
// requires).
func (m *Dense) ReuseAs(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return ErrInvalidShape
	}
	if len(m.buffer) < rows*cols {
		return ErrCapacityTooSmall
	}
	m.rows, m.cols = rows, cols

	return nil
}

// indexOf computes the flat offset for (row, col), checked.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return 0, denseErrorf("At", row, col, ErrOutOfRange)
	}

	return row*m.cols + col, nil
}

// At retrieves the element at (row, col), bounds-checked.
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return 0, err
	}

	return m.buffer[idx], nil
}

// Set assigns v at (row, col), bounds-checked.
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return err
	}
	m.buffer[idx] = v

	return nil
}

// AtUnchecked reads (row, col) without a bounds check in release builds;
// under the raglab_debug build tag it panics on an out-of-range index. Used
// only by mle's inner recurrences, which validate K and M once per query
// via ReuseAs rather than on every cell access.
func (m *Dense) AtUnchecked(row, col int) float64 {
	debugCheck2("AtUnchecked", row, col, m.rows, m.cols)

	return m.buffer[row*m.cols+col]
}

// SetUnchecked writes v at (row, col) without a bounds check in release
// builds; see AtUnchecked.
func (m *Dense) SetUnchecked(row, col int, v float64) {
	debugCheck2("SetUnchecked", row, col, m.rows, m.cols)
	m.buffer[row*m.cols+col] = v
}

// Clone returns a deep copy of the matrix, copying only the logical extent
// (not any spare capacity).
func (m *Dense) Clone() *Dense {
	data := make([]float64, m.rows*m.cols)
	for r := 0; r < m.rows; r++ {
		copy(data[r*m.cols:(r+1)*m.cols], m.buffer[r*m.cols:r*m.cols+m.cols])
	}

	return &Dense{rows: m.rows, cols: m.cols, buffer: data}
}

// ViewBuffer exposes the raw backing slice for test comparisons against
// reference dumps; it is not meant for general use.
func (m *Dense) ViewBuffer() []float64 {
	return m.buffer
}

// String implements fmt.Stringer for debugging.
func (m *Dense) String() string {
	s := ""
	for r := 0; r < m.rows; r++ {
		s += "["
		for c := 0; c < m.cols; c++ {
			s += fmt.Sprintf("%g", m.buffer[r*m.cols+c])
			if c < m.cols-1 {
				s += ", "
			}
		}
		s += "]\n"
	}

	return s
}
