// Package tensor provides dense, reusable row-major storage for the
// numeric kernels in package mle: a 2-D matrix (Dense) and a 3-D tensor
// (Tensor3), both backed by a single contiguous []float64 buffer.
//
// Both types support allocating extra buffer capacity up front and later
// changing the logical shape without reallocating or zeroing (ReuseAs),
// so a caller can allocate once per worker and reuse the same buffer for
// every query of varying size. Tensor3 additionally exposes a fused
// multiply-add kernel over its innermost axis for the boundary-set
// recurrence in mle/prob.go.
//
// Indexing is zero-based. At/Set are always bounds-checked; AtUnchecked/
// SetUnchecked skip the check and are only safe to call once the caller
// has validated the index range itself (the hot loops in package mle do
// this once per query rather than once per cell).
package tensor
