package mle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// The Turing-award toy query: six sources are retrieved for a question
// with two correct answers. Wikipedia, Bing, Google, and DuckduckGo give a
// correct answer; Fakepedia and Liepedia do not.
func turingAwardRetrieval(t *testing.T) Retrieval {
	t.Helper()
	sources := []int{0, 1, 2, 3, 4, 5} // wikipedia, bing, fakepedia, google, duckduckgo, liepedia
	utilities := []float64{1.0, 1.0, 0.0, 1.0, 1.0, 0.0}
	r, err := NewRetrieval(sources, utilities)
	require.NoError(t, err)

	return r
}

func TestMLEImportanceTuringAwardToy(t *testing.T) {
	retrievals := []Retrieval{turingAwardRetrieval(t)}

	v, err := MLEImportance(retrievals, 6, nil, 3, 0.1, 3, 1)
	require.NoError(t, err)
	require.Len(t, v, 6)

	require.Greater(t, v[0], 0.5) // wikipedia
	require.Greater(t, v[1], 0.5) // bing
	require.Less(t, v[2], 0.5)    // fakepedia gives the wrong answer
	require.Greater(t, v[3], 0.5) // google
	require.Greater(t, v[4], 0.5) // duckduckgo
	require.LessOrEqual(t, v[5], 0.5) // liepedia gives the wrong answer but is ranked last, so nothing after it is displaced and its gradient is zero
}

func TestMLEImportanceTuringAwardToyWithGroups(t *testing.T) {
	retrievals := []Retrieval{turingAwardRetrieval(t)}

	groupAssignments := []int{
		0, // wikipedia
		1, // bing
		2, // fakepedia
		1, // google
		0, // duckduckgo
		2, // liepedia
	}
	grouping, err := NewGrouping(3, groupAssignments)
	require.NoError(t, err)

	v, err := MLEImportance(retrievals, 6, &grouping, 3, 0.1, 3, 1)
	require.NoError(t, err)
	require.Len(t, v, 6)

	require.Greater(t, v[0], 0.5)
	require.Greater(t, v[1], 0.5)
	require.Less(t, v[2], 0.5)
	require.Greater(t, v[3], 0.5)
	require.Greater(t, v[4], 0.5)
	require.Less(t, v[5], 0.5)

	means := grouping.GroupMeans(v)
	require.Len(t, means, 3)
	require.Greater(t, means[0], 0.5)
	require.Greater(t, means[1], 0.5)
	require.Less(t, means[2], 0.5)

	// Every item within a group must share that group's mean after projection.
	for id, g := range groupAssignments {
		require.InDelta(t, means[g], v[id], 1e-12)
	}
}

func TestMLEImportanceEmptyRetrievalsReturnsUniformPrior(t *testing.T) {
	v, err := MLEImportance(nil, 4, nil, 3, 0.1, 10, 1)
	require.NoError(t, err)
	for _, p := range v {
		require.Equal(t, 0.5, p)
	}
}

func TestMLEImportanceZeroEpochsReturnsUniformPrior(t *testing.T) {
	retrievals := []Retrieval{turingAwardRetrieval(t)}
	v, err := MLEImportance(retrievals, 6, nil, 3, 0.1, 0, 1)
	require.NoError(t, err)
	for _, p := range v {
		require.Equal(t, 0.5, p)
	}
}

func TestMLEImportanceInvalidK(t *testing.T) {
	_, err := MLEImportance(nil, 4, nil, 0, 0.1, 1, 1)
	require.ErrorIs(t, err, ErrInvalidK)
}

func TestMLEImportanceInvalidEpochs(t *testing.T) {
	_, err := MLEImportance(nil, 4, nil, 1, 0.1, -1, 1)
	require.ErrorIs(t, err, ErrInvalidEpochs)
}

func TestMLEImportanceInvalidWorkers(t *testing.T) {
	_, err := MLEImportance(nil, 4, nil, 1, 0.1, 1, 0)
	require.ErrorIs(t, err, ErrInvalidWorkers)
}

func TestMLEImportanceRetrievedOutOfRange(t *testing.T) {
	r, err := NewRetrieval([]int{0, 1, 9}, []float64{1.0, 0.0, 1.0})
	require.NoError(t, err)
	_, err = MLEImportance([]Retrieval{r}, 4, nil, 1, 0.1, 1, 1)
	require.ErrorIs(t, err, ErrRetrievedOutOfRange)
}

func TestMLEImportanceGroupingLengthMismatch(t *testing.T) {
	grouping, err := NewGrouping(2, []int{0, 1})
	require.NoError(t, err)
	_, err = MLEImportance(nil, 4, &grouping, 1, 0.1, 1, 1)
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestMLEImportanceConcurrencyAgreesWithSequential(t *testing.T) {
	retrievals := []Retrieval{
		turingAwardRetrieval(t),
		turingAwardRetrieval(t),
		turingAwardRetrieval(t),
	}

	seq, err := MLEImportance(retrievals, 6, nil, 3, 0.1, 5, 1)
	require.NoError(t, err)

	par, err := MLEImportance(retrievals, 6, nil, 3, 0.1, 5, 3)
	require.NoError(t, err)

	for i := range seq {
		require.InDelta(t, seq[i], par[i], 1e-7)
	}
}

func TestMLEImportanceWithQuantizationScaleOption(t *testing.T) {
	retrievals := []Retrieval{turingAwardRetrieval(t)}
	v, err := MLEImportance(retrievals, 6, nil, 3, 0.1, 2, 1, WithQuantizationScale(10))
	require.NoError(t, err)
	require.Len(t, v, 6)
}
