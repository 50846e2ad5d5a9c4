package mle

import "github.com/amsterdata/ragbooster/tensor"

// computeProb fills ip and rp with the inclusion-prefix and inclusion-
// suffix tables for existence probabilities p over a query of length M,
// counting up to K present items.
//
// Preconditions: ip and rp must already have been ReuseAs'd to exactly
// (K+1)x(M+2) by the caller (gradientForQuery), and len(p) must equal M.
// This function does not resize the tensors itself, since the caller is
// better positioned to amortize that call across the other tensor it is
// also resizing for the same query.
//
// Because ip/rp's buffers are reused across queries without zeroing (see
// tensor.Dense.ReuseAs), this function explicitly zeroes every base cell a
// stale larger shape could have left non-zero before filling the
// recurrence: IP[k][0] for k=1..K, IP[0][j] for j=1..M-1 (j=M is
// overwritten by the forward sweep below), and RP[k][M+1] for k=1..K.
//
//	IP[0][0] = 1
//	IP[0][j] = IP[0][j-1]*(1-p[j-1])
//	IP[k][j] = IP[k][j-1]*(1-p[j-1]) + IP[k-1][j-1]*p[j-1]
//
//	RP[0][M+1] = 1
//	RP[0][j] = RP[0][j+1]*(1-p[j-1])
//	RP[k][j] = RP[k][j+1]*(1-p[j-1]) + RP[k-1][j+1]*p[j-1]
//
// Complexity: O(K*M) time, no allocation.
func computeProb(p []float64, K, M int, ip, rp *tensor.Dense) error {
	if ip.Rows() != K+1 || ip.Cols() != M+2 || rp.Rows() != K+1 || rp.Cols() != M+2 {
		return ErrShapeTooSmall
	}

	ip.SetUnchecked(0, 0, 1.0)
	rp.SetUnchecked(0, M+1, 1.0)

	// Required because the buffer may carry residue from a larger shape.
	for k := 1; k <= K; k++ {
		ip.SetUnchecked(k, 0, 0.0)
		rp.SetUnchecked(k, M+1, 0.0)
	}
	for j := 1; j < M; j++ {
		ip.SetUnchecked(0, j, 0.0)
	}

	for j := 1; j <= M; j++ {
		pj := p[j-1]
		ip.SetUnchecked(0, j, ip.AtUnchecked(0, j-1)*(1-pj))
		for k := 1; k <= K; k++ {
			v := ip.AtUnchecked(k, j-1)*(1-pj) + ip.AtUnchecked(k-1, j-1)*pj
			ip.SetUnchecked(k, j, v)
		}
	}

	for j := M; j >= 1; j-- {
		pj := p[j-1]
		rp.SetUnchecked(0, j, rp.AtUnchecked(0, j+1)*(1-pj))
		for k := 1; k <= K; k++ {
			v := rp.AtUnchecked(k, j+1)*(1-pj) + rp.AtUnchecked(k-1, j+1)*pj
			rp.SetUnchecked(k, j, v)
		}
	}

	return nil
}

// computeBoundary fills b with the boundary-set probabilities: b[k][i][e]
// is the probability that, among positions i..M, exactly k are present and
// the highest-priority present position has utility equal to
// distinctUtilities[e]. retrievedUtilities holds the query's utility
// contribution per position (length M); distinctUtilities is its
// deduplicated, first-appearance-ordered value list (length E).
//
// Preconditions: b must already have been ReuseAs'd to exactly
// (K+1)x(M+2)xE by the caller, and len(retrievedUtilities) must equal M.
//
// Zeroing policy (see computeProb's doc comment for why this is needed):
// b[0][i][e] for i=1..M+1 and all e; b[k][M+1][e] for k=1..K and all e.
//
// For each i from M down to 1, the k=1 row is filled scalar-wise (it needs
// the per-e equality indicator against retrievedUtilities[i-1]); k=2..K are
// filled with tensor.Tensor3.FusedAddScaled, a single vectorizable pass
// across the whole e-axis:
//
//	b[1][i][e] = b[1][i+1][e]*(1-p[i-1]) + b[0][i+1][e]*p[i-1] + p[i-1]*[distinctUtilities[e] == retrievedUtilities[i-1]]
//	b[k][i][e] = b[k][i+1][e]*(1-p[i-1]) + b[k-1][i+1][e]*p[i-1]   (k >= 2)
//
// Complexity: O(K*M*E) time, no allocation.
func computeBoundary(retrievedUtilities, distinctUtilities, p []float64, K, M int, b *tensor.Tensor3) error {
	E := len(distinctUtilities)
	if b.Dim1() != K+1 || b.Dim2() != M+2 || b.Dim3() != E {
		return ErrShapeTooSmall
	}

	for i := 1; i <= M+1; i++ {
		b.ZeroRow(0, i)
	}
	for k := 1; k <= K; k++ {
		b.ZeroRow(k, M+1)
	}

	for i := M; i >= 1; i-- {
		pim1 := p[i-1]
		retrievedU := retrievedUtilities[i-1]

		if K >= 1 {
			for e := 0; e < E; e++ {
				match := 0.0
				if distinctUtilities[e] == retrievedU {
					match = 1.0
				}
				v := b.AtUnchecked(1, i+1, e)*(1-pim1) + b.AtUnchecked(0, i+1, e)*pim1 + match*pim1
				b.SetUnchecked(1, i, e, v)
			}
		}

		for k := 2; k <= K; k++ {
			if err := b.FusedAddScaled(k, i, k, i+1, 1-pim1, k-1, i+1, pim1); err != nil {
				return err
			}
		}
	}

	return nil
}

// distinctUtilities writes the first-appearance-ordered deduplicated
// values of utilities into dst, truncating it to length zero first (so the
// caller may reuse its backing array across queries to avoid allocating),
// and returns the resulting slice.
func distinctUtilities(utilities []float64, dst []float64) []float64 {
	dst = dst[:0]
	for _, u := range utilities {
		found := false
		for _, seen := range dst {
			if seen == u {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, u)
		}
	}

	return dst
}
