//go:build !raglab_debug

package tensor

// aliasCheckEnabled is false in release builds; see debug.go.
const aliasCheckEnabled = false

// debugCheck2 is a no-op in release builds; AtUnchecked/SetUnchecked trade
// bounds safety for speed and rely on callers having validated indices once
// per query instead of once per cell.
func debugCheck2(op string, row, col, rows, cols int) {}

// debugCheck3 is a no-op in release builds, mirroring debugCheck2 for the
// 3-D tensor.
func debugCheck3(op string, d1, d2, d3, dim1, dim2, dim3 int) {}
