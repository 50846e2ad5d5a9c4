package mle

import "github.com/amsterdata/ragbooster/tensor"

// gradientForQuery computes the per-position gradient contribution s for a
// single validation query: utilities holds its utility contribution per
// retrieved position, p its existence probabilities (p[i] = v[retrieved[i]],
// already resolved by the caller via Retrieval.ExistenceProbabilities), K
// the classifier's neighbor count, and N the size of the validation set the
// query belongs to (used to normalize the gradient's scale).
//
// ip, rp, and b are caller-owned scratch tensors, reused across queries in
// the same worker: this call resizes them to the exact shape this query
// needs via ReuseAs before filling them, so no allocation happens here
// beyond the returned gradient slice and the query's distinct-utility list
// (mirroring the reference implementation, which defers reuse of those two
// to future work).
//
//	s[i-1] = G1(i) + G2(i)
//
//	G1(i) = (utilities[i-1]/K/N) * sum_{k=0}^{K-1} sum_{j=0}^{k} IP[j][i-1] * RP[k-j][i+1]   (skipped when utilities[i-1] == 0)
//	G2(i) = sum_e ((utilities[i-1]-distinct[e])/K/N) * sum_{j=0}^{K-1} IP[j][i-1] * B[K-j][i+1][e]   (skipped per e when the difference is 0)
func gradientForQuery(utilities, p []float64, K, N int, ip, rp *tensor.Dense, b *tensor.Tensor3) ([]float64, error) {
	M := len(p)
	if len(utilities) != M {
		return nil, ErrLengthMismatch
	}
	if M == 0 {
		return []float64{}, nil
	}

	if err := ip.ReuseAs(K+1, M+2); err != nil {
		return nil, err
	}
	if err := rp.ReuseAs(K+1, M+2); err != nil {
		return nil, err
	}
	if err := computeProb(p, K, M, ip, rp); err != nil {
		return nil, err
	}

	distinct := distinctUtilities(utilities, nil)

	if err := b.ReuseAs(K+1, M+2, len(distinct)); err != nil {
		return nil, err
	}
	if err := computeBoundary(utilities, distinct, p, K, M, b); err != nil {
		return nil, err
	}

	s := make([]float64, M)
	kf, nf := float64(K), float64(N)

	for i := 1; i <= M; i++ {
		c := utilities[i-1]

		if c != 0 {
			mu1 := (c / kf) / nf
			for k := 0; k < K; k++ {
				for j := 0; j <= k; j++ {
					s[i-1] += mu1 * ip.AtUnchecked(j, i-1) * rp.AtUnchecked(k-j, i+1)
				}
			}
		}

		for e, d := range distinct {
			diff := c - d
			if diff == 0 {
				continue
			}
			mu2 := (diff / kf) / nf
			for j := 0; j < K; j++ {
				s[i-1] += mu2 * ip.AtUnchecked(j, i-1) * b.AtUnchecked(K-j, i+1, e)
			}
		}
	}

	return s, nil
}
