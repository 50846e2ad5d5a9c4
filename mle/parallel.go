package mle

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/amsterdata/ragbooster/tensor"
)

// workerState is one worker's persistent scratch: its own IP/RP/B tensors,
// sized to the pool's initial bounds or, after a regrowth, to the query
// that triggered it (see growTo), and a gradient
// accumulator spanning the whole corpus. None of this is shared across
// workers, so a worker never synchronizes until the pool's final reduction.
type workerState struct {
	ip    *tensor.Dense
	rp    *tensor.Dense
	b     *tensor.Tensor3
	accum []float64
}

// growTo reallocates ip, rp, and b to fit a query with m retrieved
// positions and up to e distinct utility values, discarding the old
// buffers. Called only when a query outgrows the worker's current
// tensors; e is always bounded above by m, so this is also the fallback
// used when the caller cannot cheaply tell which of IP/RP/B was too small.
func (w *workerState) growTo(k, m, e int) error {
	ip, err := tensor.NewDenseWithCapacity(k+1, m+2, (k+1)*(m+2))
	if err != nil {
		return err
	}
	rp, err := tensor.NewDenseWithCapacity(k+1, m+2, (k+1)*(m+2))
	if err != nil {
		return err
	}
	b, err := tensor.NewTensor3WithCapacity(k+1, m+2, e, (k+1)*(m+2)*e)
	if err != nil {
		return err
	}

	w.ip, w.rp, w.b = ip, rp, b

	return nil
}

// Pool fans the gradient computation for a validation set out across a
// fixed number of workers, each with its own persistent tensors and
// accumulator. Building a Pool once and calling GradientAll for every
// epoch (rather than rebuilding workers per epoch) avoids reallocating
// IP/RP/B on every call to MLEImportance's training loop.
type Pool struct {
	k          int
	corpusSize int
	numWorkers int
	workers    []*workerState
}

// NewPool allocates numWorkers workers, each pre-sized for queries up to
// initialMaxRetrieved retrieved positions and initialMaxDistinctUtilities
// distinct utility values. Workers grow past these bounds on demand (see
// workerState.growTo), so the initial values only need to be a reasonable
// guess to avoid early reallocation, not an exact upper bound.
func NewPool(k, corpusSize, numWorkers, initialMaxRetrieved, initialMaxDistinctUtilities int) (*Pool, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if corpusSize < 0 {
		return nil, ErrNegativeCorpusSize
	}
	if numWorkers <= 0 {
		return nil, ErrInvalidWorkers
	}
	if initialMaxRetrieved <= 0 {
		initialMaxRetrieved = 1
	}
	if initialMaxDistinctUtilities <= 0 {
		initialMaxDistinctUtilities = 1
	}

	workers := make([]*workerState, numWorkers)
	for i := range workers {
		ip, err := tensor.NewDenseWithCapacity(k+1, initialMaxRetrieved+2, (k+1)*(initialMaxRetrieved+2))
		if err != nil {
			return nil, err
		}
		rp, err := tensor.NewDenseWithCapacity(k+1, initialMaxRetrieved+2, (k+1)*(initialMaxRetrieved+2))
		if err != nil {
			return nil, err
		}
		b, err := tensor.NewTensor3WithCapacity(k+1, initialMaxRetrieved+2, initialMaxDistinctUtilities,
			(k+1)*(initialMaxRetrieved+2)*initialMaxDistinctUtilities)
		if err != nil {
			return nil, err
		}

		workers[i] = &workerState{ip: ip, rp: rp, b: b, accum: make([]float64, corpusSize)}
	}

	return &Pool{k: k, corpusSize: corpusSize, numWorkers: numWorkers, workers: workers}, nil
}

// GradientAll computes the summed gradient contribution of every query in
// queries against the existence probabilities v, partitioning queries into
// numWorkers contiguous chunks of ceil(len(queries)/numWorkers) queries
// each. Each worker processes its chunk
// sequentially against its own tensors and accumulator; no cross-worker
// synchronization happens until every worker has finished, after which
// accumulators are summed in ascending worker-id order so the result is
// deterministic regardless of goroutine scheduling. Floating-point
// non-associativity means the result can differ by up to roughly 1e-7 in
// L2 norm across different values of numWorkers for the same queries and v.
func (p *Pool) GradientAll(queries []Retrieval, v []float64) ([]float64, error) {
	if len(v) != p.corpusSize {
		return nil, ErrLengthMismatch
	}
	N := len(queries)

	chunkSize := (len(queries) + p.numWorkers - 1) / p.numWorkers

	var wg sync.WaitGroup
	errs := make([]error, p.numWorkers)

	for w := 0; w < p.numWorkers; w++ {
		ws := p.workers[w]
		for i := range ws.accum {
			ws.accum[i] = 0
		}

		start := w * chunkSize
		if start >= len(queries) {
			continue
		}
		end := start + chunkSize
		if end > len(queries) {
			end = len(queries)
		}
		chunk := queries[start:end]

		wg.Add(1)
		go func(w int, ws *workerState, chunk []Retrieval) {
			defer wg.Done()
			errs[w] = processChunk(chunk, v, p.k, N, ws)
		}(w, ws, chunk)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	g := make([]float64, p.corpusSize)
	for w := 0; w < p.numWorkers; w++ {
		accum := p.workers[w].accum
		for i, v := range accum {
			g[i] += v
		}
	}

	return g, nil
}

func processChunk(chunk []Retrieval, v []float64, k, N int, ws *workerState) error {
	for _, retrieval := range chunk {
		p := retrieval.ExistenceProbabilities(v, nil)

		s, err := gradientForQuery(retrieval.UtilityContributions(), p, k, N, ws.ip, ws.rp, ws.b)
		if errors.Is(err, tensor.ErrCapacityTooSmall) {
			m := retrieval.Len()
			slog.Warn("mle: worker tensors too small for query, growing", "retrieved", m)
			if growErr := ws.growTo(k, m, m); growErr != nil {
				return growErr
			}
			s, err = gradientForQuery(retrieval.UtilityContributions(), p, k, N, ws.ip, ws.rp, ws.b)
		}
		if err != nil {
			return err
		}

		for i, id := range retrieval.Retrieved() {
			ws.accum[id] += s[i]
		}
	}

	return nil
}
