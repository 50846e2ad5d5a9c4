// Package tensor: sentinel error set.
//
// Every message is prefixed with "tensor: ..." for consistency and easy
// grepping across logs. Callers match these via errors.Is, never via
// string comparison.
package tensor

import "errors"

var (
	// ErrInvalidShape is returned when requested dimensions are non-positive.
	ErrInvalidShape = errors.New("tensor: shape dimensions must be > 0")

	// ErrOutOfRange indicates a checked index fell outside the logical shape.
	ErrOutOfRange = errors.New("tensor: index out of range")

	// ErrCapacityTooSmall is returned by ReuseAs when the requested shape
	// would not fit in the buffer allocated at construction time.
	ErrCapacityTooSmall = errors.New("tensor: requested shape exceeds buffer capacity")

	// ErrAliasedBuffers is returned by FusedAddScaled when the destination
	// slice overlaps either source slice; the kernel requires disjoint
	// memory so it can assume no read-after-write hazards inside a chunk.
	ErrAliasedBuffers = errors.New("tensor: fused kernel operands must not alias")
)
