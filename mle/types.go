package mle

// Retrieval is an immutable validation example: an ordered sequence of
// retrieved corpus-item ids paired position-wise with a utility
// contribution per position. Position i means "the i-th retrieved item".
// Neither sequence is mutated after construction.
type Retrieval struct {
	retrieved            []int
	utilityContributions []float64
}

// NewRetrieval validates that retrieved and utilityContributions have equal
// length and copies both so the returned Retrieval is independent of the
// caller's backing arrays.
func NewRetrieval(retrieved []int, utilityContributions []float64) (Retrieval, error) {
	if len(retrieved) != len(utilityContributions) {
		return Retrieval{}, ErrLengthMismatch
	}

	retrievedCopy := make([]int, len(retrieved))
	copy(retrievedCopy, retrieved)
	utilityCopy := make([]float64, len(utilityContributions))
	copy(utilityCopy, utilityContributions)

	return Retrieval{retrieved: retrievedCopy, utilityContributions: utilityCopy}, nil
}

// Retrieved returns a read-only view of the retrieved corpus-item ids.
func (r Retrieval) Retrieved() []int { return r.retrieved }

// UtilityContributions returns a read-only view of the per-position utility
// contributions.
func (r Retrieval) UtilityContributions() []float64 { return r.utilityContributions }

// Len returns M, the number of retrieved positions in this query.
func (r Retrieval) Len() int { return len(r.retrieved) }

// ExistenceProbabilities derives p_i = v[retrieved[i]] for every retrieved
// position, writing into dst if it has enough capacity and allocating a
// fresh slice otherwise. The caller owns v for the duration of the call;
// v is never mutated.
func (r Retrieval) ExistenceProbabilities(v []float64, dst []float64) []float64 {
	if cap(dst) < len(r.retrieved) {
		dst = make([]float64, len(r.retrieved))
	}
	dst = dst[:len(r.retrieved)]
	for i, id := range r.retrieved {
		dst[i] = v[id]
	}

	return dst
}

// Grouping is an immutable mapping from corpus-item id to a dense 0-based
// group id, plus the group count. Used only for post-step projection in
// MLEImportance.
type Grouping struct {
	numGroups   int
	assignments []int
}

// NewGrouping validates that every assignment is < numGroups and copies the
// assignments slice so the returned Grouping is independent of the
// caller's backing array.
func NewGrouping(numGroups int, assignments []int) (Grouping, error) {
	for _, g := range assignments {
		if g < 0 || g >= numGroups {
			return Grouping{}, ErrGroupOutOfRange
		}
	}

	assignmentsCopy := make([]int, len(assignments))
	copy(assignmentsCopy, assignments)

	return Grouping{numGroups: numGroups, assignments: assignmentsCopy}, nil
}

// NumGroups returns G, the number of distinct groups.
func (g Grouping) NumGroups() int { return g.numGroups }

// Assignments returns a read-only view of the per-corpus-item group ids.
func (g Grouping) Assignments() []int { return g.assignments }

// GroupOf returns the group id assigned to corpus item id.
func (g Grouping) GroupOf(id int) int { return g.assignments[id] }

// GroupMeans returns, for each group, the arithmetic mean of v over the
// corpus items assigned to it. v must have the same length as
// g.Assignments().
func (g Grouping) GroupMeans(v []float64) []float64 {
	sums := make([]float64, g.numGroups)
	counts := make([]float64, g.numGroups)
	for id, group := range g.assignments {
		sums[group] += v[id]
		counts[group]++
	}

	means := make([]float64, g.numGroups)
	for group := range means {
		means[group] = sums[group] / counts[group]
	}

	return means
}
