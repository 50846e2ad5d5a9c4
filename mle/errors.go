// Package mle: sentinel error set.
//
// Every message is prefixed with "mle: ..." for consistency and easy
// grepping across logs. Precondition violations at API boundaries
// (NewRetrieval, NewGrouping, MLEImportance) always return one of these via
// errors.Is; the inner recurrences (computeProb, computeBoundary,
// gradientForQuery) assume their caller already validated shapes and trust
// the unchecked tensor accessors, per spec.
package mle

import "errors"

var (
	// ErrLengthMismatch indicates two position-paired sequences (retrieved
	// ids and utility contributions, or a grouping's assignments and the
	// corpus) have different lengths.
	ErrLengthMismatch = errors.New("mle: length mismatch between paired sequences")

	// ErrInvalidK indicates k is not a positive integer.
	ErrInvalidK = errors.New("mle: k must be > 0")

	// ErrInvalidEpochs indicates numEpochs is negative.
	ErrInvalidEpochs = errors.New("mle: numEpochs must be >= 0")

	// ErrInvalidWorkers indicates nJobs is non-positive.
	ErrInvalidWorkers = errors.New("mle: nJobs must be >= 1")

	// ErrGroupOutOfRange indicates a group assignment is >= numGroups.
	ErrGroupOutOfRange = errors.New("mle: group assignment out of range")

	// ErrNegativeCorpusSize indicates corpusSize is negative.
	ErrNegativeCorpusSize = errors.New("mle: corpusSize must be >= 0")

	// ErrRetrievedOutOfRange indicates a retrieved id is >= corpusSize.
	ErrRetrievedOutOfRange = errors.New("mle: retrieved id out of range for corpus size")

	// ErrShapeTooSmall indicates a tensor's logical shape is not exactly the
	// shape a recurrence requires (computeProb, computeBoundary).
	ErrShapeTooSmall = errors.New("mle: tensor shape too small for requested computation")
)
