package mle

// MLEImportance learns per-corpus-item existence probabilities v by
// projected gradient ascent on the expected top-k utility of retrievals,
// starting from v_i = 0.5 for every item.
//
// For each epoch, the full validation set's gradient is computed via a
// Pool built once before the loop (not per epoch, since IP/RP/B only need
// to grow to fit the largest query ever seen, not be rebuilt every time),
// then v is updated in place with the learning rate, clipped to [0, 1],
// and — if grouping is non-nil — projected so every item in a group shares
// its group's mean value. nJobs controls how many workers the pool uses;
// nJobs == 1 still goes through the same worker-pool code path with a
// single worker rather than a separate sequential implementation.
func MLEImportance(retrievals []Retrieval, corpusSize int, grouping *Grouping, k int, learningRate float64, numEpochs int, nJobs int, opts ...Option) ([]float64, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if numEpochs < 0 {
		return nil, ErrInvalidEpochs
	}
	if nJobs <= 0 {
		return nil, ErrInvalidWorkers
	}
	if corpusSize < 0 {
		return nil, ErrNegativeCorpusSize
	}
	for _, r := range retrievals {
		for _, id := range r.Retrieved() {
			if id < 0 || id >= corpusSize {
				return nil, ErrRetrievedOutOfRange
			}
		}
	}
	if grouping != nil && len(grouping.Assignments()) != corpusSize {
		return nil, ErrLengthMismatch
	}

	options := gatherOptions(opts...)

	v := make([]float64, corpusSize)
	for i := range v {
		v[i] = 0.5
	}

	if len(retrievals) == 0 || numEpochs == 0 {
		if grouping != nil {
			applyGroupProjection(v, *grouping)
		}

		return v, nil
	}

	mMax := maxDistinctRetrieved(retrievals)
	eMax := maxDistinctUtilityContributions(retrievals, options.quantizationScale)

	pool, err := NewPool(k, corpusSize, nJobs, mMax, eMax)
	if err != nil {
		return nil, err
	}

	for epoch := 0; epoch < numEpochs; epoch++ {
		g, err := pool.GradientAll(retrievals, v)
		if err != nil {
			return nil, err
		}

		for i := range v {
			v[i] += learningRate * g[i]
			if v[i] > 1.0 {
				v[i] = 1.0
			} else if v[i] < 0.0 {
				v[i] = 0.0
			}
		}

		if grouping != nil {
			applyGroupProjection(v, *grouping)
		}
	}

	return v, nil
}

// applyGroupProjection overwrites every v[id] with its group's mean, so all
// items sharing a group end the epoch with identical existence
// probabilities.
func applyGroupProjection(v []float64, grouping Grouping) {
	means := grouping.GroupMeans(v)
	for id := range v {
		v[id] = means[grouping.GroupOf(id)]
	}
}

func maxDistinctRetrieved(retrievals []Retrieval) int {
	max := 0
	for _, r := range retrievals {
		if r.Len() > max {
			max = r.Len()
		}
	}

	return max
}

// maxDistinctUtilityContributions estimates, across all queries, the
// largest number of distinct utility values any single query has — after
// discretizing each value by scale, since unscaled floats are rarely
// exactly equal across independently-computed contributions. This is only
// used to size the gradient Pool's initial B tensors; gradientForQuery
// itself always compares undiscretized utility values exactly, so an
// under-estimate here costs a tensor regrowth, never an incorrect result.
func maxDistinctUtilityContributions(retrievals []Retrieval, scale int) int {
	max := 0
	for _, r := range retrievals {
		seen := make(map[int64]struct{}, len(r.UtilityContributions()))
		for _, c := range r.UtilityContributions() {
			seen[int64(c*float64(scale))] = struct{}{}
		}
		if len(seen) > max {
			max = len(seen)
		}
	}

	return max
}
