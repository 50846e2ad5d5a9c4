package mle

import (
	"testing"

	"github.com/amsterdata/ragbooster/tensor"
	"github.com/stretchr/testify/require"
)

func TestComputeProbSingleItem(t *testing.T) {
	ip, err := tensor.NewDense(2, 3)
	require.NoError(t, err)
	rp, err := tensor.NewDense(2, 3)
	require.NoError(t, err)

	require.NoError(t, computeProb([]float64{0.6}, 1, 1, ip, rp))

	v, _ := ip.At(0, 0)
	require.Equal(t, 1.0, v)
	v, _ = ip.At(0, 1)
	require.InDelta(t, 0.4, v, 1e-12)
	v, _ = ip.At(1, 0)
	require.Equal(t, 0.0, v)
	v, _ = ip.At(1, 1)
	require.InDelta(t, 0.6, v, 1e-12)

	v, _ = rp.At(0, 2)
	require.Equal(t, 1.0, v)
	v, _ = rp.At(0, 1)
	require.InDelta(t, 0.4, v, 1e-12)
	v, _ = rp.At(1, 2)
	require.Equal(t, 0.0, v)
	v, _ = rp.At(1, 1)
	require.InDelta(t, 0.6, v, 1e-12)
}

func TestComputeProbUniformTwoItems(t *testing.T) {
	ip, err := tensor.NewDense(2, 4)
	require.NoError(t, err)
	rp, err := tensor.NewDense(2, 4)
	require.NoError(t, err)

	require.NoError(t, computeProb([]float64{0.5, 0.5}, 1, 2, ip, rp))

	ip00, _ := ip.At(0, 0)
	ip01, _ := ip.At(0, 1)
	ip02, _ := ip.At(0, 2)
	ip10, _ := ip.At(1, 0)
	ip11, _ := ip.At(1, 1)
	ip12, _ := ip.At(1, 2)

	require.Equal(t, 1.0, ip00)
	require.InDelta(t, 0.5, ip01, 1e-12)
	require.InDelta(t, 0.25, ip02, 1e-12)
	require.Equal(t, 0.0, ip10)
	require.InDelta(t, 0.5, ip11, 1e-12)
	require.InDelta(t, 0.5, ip12, 1e-12)

	// p is uniform, so RP mirrors IP around the query's midpoint.
	rp3, _ := rp.At(0, 3)
	rp2, _ := rp.At(0, 2)
	rp1, _ := rp.At(0, 1)
	require.Equal(t, 1.0, rp3)
	require.InDelta(t, 0.5, rp2, 1e-12)
	require.InDelta(t, 0.25, rp1, 1e-12)
}

func TestComputeProbShapeMismatch(t *testing.T) {
	ip, _ := tensor.NewDense(2, 2)
	rp, _ := tensor.NewDense(2, 3)
	require.ErrorIs(t, computeProb([]float64{0.5}, 1, 1, ip, rp), ErrShapeTooSmall)
}

func TestComputeBoundarySingleItem(t *testing.T) {
	b, err := tensor.NewTensor3(2, 3, 2)
	require.NoError(t, err)

	err = computeBoundary([]float64{1.0}, []float64{0.0, 1.0}, []float64{0.6}, 1, 1, b)
	require.NoError(t, err)

	v, _ := b.At(0, 1, 0)
	require.Equal(t, 0.0, v)
	v, _ = b.At(0, 1, 1)
	require.Equal(t, 0.0, v)
	v, _ = b.At(0, 2, 0)
	require.Equal(t, 0.0, v)
	v, _ = b.At(1, 2, 0)
	require.Equal(t, 0.0, v)
	v, _ = b.At(1, 1, 0)
	require.Equal(t, 0.0, v)
	v, _ = b.At(1, 1, 1)
	require.InDelta(t, 0.6, v, 1e-12)
}

func TestComputeBoundaryShapeMismatch(t *testing.T) {
	b, _ := tensor.NewTensor3(2, 3, 2)
	err := computeBoundary([]float64{1.0}, []float64{0.0}, []float64{0.6}, 1, 1, b)
	require.ErrorIs(t, err, ErrShapeTooSmall)
}

func TestDistinctUtilitiesPreservesFirstAppearanceOrder(t *testing.T) {
	got := distinctUtilities([]float64{1.0, 0.0, 1.0, 1.0, 0.0, 2.0}, nil)
	require.Equal(t, []float64{1.0, 0.0, 2.0}, got)
}

func TestDistinctUtilitiesReusesScratch(t *testing.T) {
	scratch := make([]float64, 0, 8)
	got := distinctUtilities([]float64{5.0, 5.0, 5.0}, scratch)
	require.Equal(t, []float64{5.0}, got)
}
