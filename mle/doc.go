// Package mle learns per-corpus-item existence probabilities for a
// retrieval-augmented kNN classifier by projected gradient ascent on the
// expected top-k utility.
//
// Given a validation set of Retrieval values — a ranked list of retrieved
// corpus item ids paired with a utility contribution per position — MLE
// Importance treats each item i as "present" with probability v_i and
// learns v to maximize the expected utility of the top-k present items.
//
// The gradient of this objective at one query decomposes into two terms
// computed from three dynamic-programming tables built per query:
//
//   - IP, an inclusion-prefix table: IP[k][j] is the probability that
//     exactly k of the first j retrieved items are present.
//   - RP, an inclusion-suffix table, mirroring IP from the right.
//   - B, a boundary-set tensor: B[k][i][e] is the probability that, among
//     positions i..M, exactly k are present and the highest-priority
//     present position has the e-th distinct utility value in the query.
//
// computeProb and computeBoundary (prob.go) build IP/RP and B into
// caller-owned, reusable tensor.Dense/tensor.Tensor3 buffers.
// gradientForQuery (gradient.go) combines them into a per-position
// gradient slice. Pool (parallel.go) fans queries out across a fixed
// worker count, each worker owning its own tensors and accumulator so no
// synchronization is needed mid-epoch. MLEImportance (optimizer.go) folds
// this gradient over epochs with clipping and optional per-group
// projection.
package mle
