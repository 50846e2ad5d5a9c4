package mle

// DefaultQuantizationScale is the multiplier applied to a utility
// contribution before truncating it to an integer when estimating how many
// distinct values a query has, which sizes the Pool's boundary-set tensors
// up front; the recurrence itself compares the unscaled values. The reference implementation hardcodes this to 100; here it
// is a tunable default so callers with coarser or finer utility scales
// can adjust it without forking the optimizer.
const DefaultQuantizationScale = 100

// Option mutates optimizerOptions. Safe to apply in any order; later
// options win over earlier ones for the same field.
type Option func(*optimizerOptions)

type optimizerOptions struct {
	quantizationScale int
}

func defaultOptimizerOptions() optimizerOptions {
	return optimizerOptions{quantizationScale: DefaultQuantizationScale}
}

// WithQuantizationScale overrides the multiplier used to discretize utility
// contributions when counting distinct values per query. Panics if scale is
// not positive; a zero scale would make every contribution collapse to the
// same bucket.
func WithQuantizationScale(scale int) Option {
	if scale <= 0 {
		panic("mle: WithQuantizationScale: scale must be > 0")
	}

	return func(o *optimizerOptions) { o.quantizationScale = scale }
}

func gatherOptions(opts ...Option) optimizerOptions {
	o := defaultOptimizerOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
