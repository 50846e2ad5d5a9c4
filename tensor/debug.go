//go:build raglab_debug

package tensor

import "fmt"

// aliasCheckEnabled gates FusedAddScaled's overlap check; enabled only in
// debug builds since the check itself costs time proportional to the
// number of calls, not the vector length, but the hot path still prefers to
// skip it in release builds.
const aliasCheckEnabled = true

// debugCheck2 panics if (row, col) falls outside [0,rows)x[0,cols). It is
// compiled in only under the raglab_debug build tag, so the unchecked hot
// path (AtUnchecked/SetUnchecked) pays for bounds checking solely in debug
// builds, matching the "checked at debug build time only" contract.
func debugCheck2(op string, row, col, rows, cols int) {
	if row < 0 || row >= rows || col < 0 || col >= cols {
		panic(fmt.Sprintf("tensor: %s(%d,%d) out of bounds for shape (%d,%d)", op, row, col, rows, cols))
	}
}

// debugCheck3 panics if (d1, d2, d3) falls outside the tensor's logical shape.
func debugCheck3(op string, d1, d2, d3, dim1, dim2, dim3 int) {
	if d1 < 0 || d1 >= dim1 || d2 < 0 || d2 >= dim2 || d3 < 0 || d3 >= dim3 {
		panic(fmt.Sprintf("tensor: %s(%d,%d,%d) out of bounds for shape (%d,%d,%d)", op, d1, d2, d3, dim1, dim2, dim3))
	}
}
