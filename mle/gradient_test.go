package mle

import (
	"testing"

	"github.com/amsterdata/ragbooster/tensor"
	"github.com/stretchr/testify/require"
)

func newScratchTensors(t *testing.T, k, mCap, eCap int) (*tensor.Dense, *tensor.Dense, *tensor.Tensor3) {
	t.Helper()
	ip, err := tensor.NewDenseWithCapacity(k+1, mCap+2, (k+1)*(mCap+2))
	require.NoError(t, err)
	rp, err := tensor.NewDenseWithCapacity(k+1, mCap+2, (k+1)*(mCap+2))
	require.NoError(t, err)
	b, err := tensor.NewTensor3WithCapacity(k+1, mCap+2, eCap, (k+1)*(mCap+2)*eCap)
	require.NoError(t, err)

	return ip, rp, b
}

func TestGradientForQueryEmptyRetrieval(t *testing.T) {
	ip, rp, b := newScratchTensors(t, 2, 1, 1)
	s, err := gradientForQuery(nil, nil, 2, 5, ip, rp, b)
	require.NoError(t, err)
	require.Empty(t, s)
}

func TestGradientForQueryLengthMismatch(t *testing.T) {
	ip, rp, b := newScratchTensors(t, 2, 4, 4)
	_, err := gradientForQuery([]float64{1.0}, []float64{0.5, 0.5}, 2, 5, ip, rp, b)
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestGradientForQueryPositiveContributionPullsUp(t *testing.T) {
	// A single item retrieved alone with a positive utility and existence
	// probability below 1 should receive a positive gradient: raising its
	// probability only ever helps, since there's no other item competing
	// for the top-k slot.
	ip, rp, b := newScratchTensors(t, 1, 4, 4)
	s, err := gradientForQuery([]float64{1.0}, []float64{0.5}, 1, 1, ip, rp, b)
	require.NoError(t, err)
	require.Len(t, s, 1)
	require.Greater(t, s[0], 0.0)
}

func TestGradientForQueryZeroContributionIsInert(t *testing.T) {
	ip, rp, b := newScratchTensors(t, 1, 4, 4)
	s, err := gradientForQuery([]float64{0.0}, []float64{0.5}, 1, 1, ip, rp, b)
	require.NoError(t, err)
	require.Len(t, s, 1)
	require.Equal(t, 0.0, s[0])
}

func TestGradientForQueryRejectsTensorsTooSmall(t *testing.T) {
	ip, rp, b := newScratchTensors(t, 1, 1, 1)
	_, err := gradientForQuery([]float64{1.0, 0.0, 1.0}, []float64{0.4, 0.5, 0.6}, 1, 1, ip, rp, b)
	require.ErrorIs(t, err, tensor.ErrCapacityTooSmall)
}
