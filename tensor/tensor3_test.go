package tensor_test

import (
	"testing"

	"github.com/amsterdata/ragbooster/tensor"
	"github.com/stretchr/testify/require"
)

func TestNewTensor3InvalidShape(t *testing.T) {
	_, err := tensor.NewTensor3(0, 1, 1)
	require.ErrorIs(t, err, tensor.ErrInvalidShape)
}

func TestTensor3SetGet(t *testing.T) {
	tt, err := tensor.NewTensor3(4, 3, 2)
	require.NoError(t, err)

	require.NoError(t, tt.Set(1, 2, 1, 9.5))
	v, err := tt.At(1, 2, 1)
	require.NoError(t, err)
	require.Equal(t, 9.5, v)
}

func TestTensor3ReuseAsTooSmallBuffer(t *testing.T) {
	tt, err := tensor.NewTensor3(2, 2, 2)
	require.NoError(t, err)

	err = tt.ReuseAs(100, 100, 100)
	require.ErrorIs(t, err, tensor.ErrCapacityTooSmall)
}

func TestTensor3ZeroRow(t *testing.T) {
	tt, err := tensor.NewTensor3(2, 2, 3)
	require.NoError(t, err)

	require.NoError(t, tt.Set(0, 0, 0, 1))
	require.NoError(t, tt.Set(0, 0, 1, 2))
	require.NoError(t, tt.Set(0, 0, 2, 3))

	tt.ZeroRow(0, 0)

	for e := 0; e < 3; e++ {
		v, err := tt.At(0, 0, e)
		require.NoError(t, err)
		require.Zero(t, v)
	}
}

// TestFusedAddScaled mirrors the reference fixture from
// original_source/src/mle/tensors.rs's set_y_to_x1_a1_plus_x2_a2 test:
// writing y = 0.1*x1 + 0.2*x2 across a 5-wide e-axis (exercising both the
// chunked and scalar-tail branches of FusedAddScaled).
func TestFusedAddScaled(t *testing.T) {
	tt, err := tensor.NewTensor3(20, 10, 5)
	require.NoError(t, err)

	x1 := []float64{1.0, 2.0, 3.0, 4.0, 5.0}
	x2 := []float64{1.0, 2.0, 3.0, 4.0, 5.0}
	for e, v := range x1 {
		require.NoError(t, tt.Set(3, 2, e, v))
	}
	for e, v := range x2 {
		require.NoError(t, tt.Set(19, 9, e, v))
	}

	require.NoError(t, tt.FusedAddScaled(0, 0, 3, 2, 0.1, 19, 9, 0.2))

	expected := []float64{0.3, 0.6, 0.9, 1.2, 1.5}
	const epsilon = 1e-8
	for e, want := range expected {
		got, err := tt.At(0, 0, e)
		require.NoError(t, err)
		require.InDelta(t, want, got, epsilon)
	}
}

func TestFusedAddScaledOddLength(t *testing.T) {
	// dim3=7 exercises one full chunk of 4 plus a 3-element scalar tail.
	tt, err := tensor.NewTensor3(3, 1, 7)
	require.NoError(t, err)

	for e := 0; e < 7; e++ {
		require.NoError(t, tt.Set(1, 0, e, float64(e+1)))
		require.NoError(t, tt.Set(2, 0, e, float64(e+1)))
	}

	require.NoError(t, tt.FusedAddScaled(0, 0, 1, 0, 1.0, 2, 0, 1.0))

	for e := 0; e < 7; e++ {
		got, err := tt.At(0, 0, e)
		require.NoError(t, err)
		require.InDelta(t, float64(2*(e+1)), got, 1e-12)
	}
}
