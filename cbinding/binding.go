// Package cbinding implements the JSON request/response contract used by
// the exported C ABI in cmd/libragbooster, mirroring the parameter set the
// reference implementation exposes through its Python binding. Keeping the
// marshaling logic in a plain Go package (as opposed to the cgo-only
// cmd/libragbooster/main.go) lets it be exercised by ordinary Go tests.
package cbinding

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/amsterdata/ragbooster/mle"
)

// retrievalRequest mirrors one retrieval dict as passed across the Python
// binding: a ranked list of retrieved corpus item ids and a matching list
// of per-position utility contributions.
type retrievalRequest struct {
	Retrieved            []int     `json:"retrieved"`
	UtilityContributions []float64 `json:"utility_contributions"`
}

// LearnImportanceRequest is the top-level JSON request accepted by
// ragbooster_learn_importance. NJobs <= 0 means "use every available CPU",
// matching the reference binding's Option<isize> contract where a negative
// or absent value means the same thing.
type LearnImportanceRequest struct {
	Retrievals       []retrievalRequest `json:"retrievals"`
	K                int                `json:"k"`
	LearningRate     float64            `json:"learning_rate"`
	NumEpochs        int                `json:"num_epochs"`
	NJobs            int                `json:"n_jobs"`
	GroupAssignments []int              `json:"group_assignments,omitempty"`
}

// LearnImportanceResponse is the top-level JSON response: the learned
// existence probability per corpus item, in ascending id order.
type LearnImportanceResponse struct {
	V []float64 `json:"v"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// LearnImportance decodes requestJSON, runs mle.MLEImportance, and encodes
// the result as JSON. Decode and validation errors are returned as a JSON
// object shaped like errorResponse rather than a Go error, since the
// caller on the far side of the C ABI has no way to inspect a Go error
// value — it can only read the string this function returns.
func LearnImportance(requestJSON string) string {
	var req LearnImportanceRequest
	if err := json.Unmarshal([]byte(requestJSON), &req); err != nil {
		return mustMarshalError(fmt.Errorf("cbinding: invalid request: %w", err))
	}

	corpusSize := 0
	for _, r := range req.Retrievals {
		for _, id := range r.Retrieved {
			if id+1 > corpusSize {
				corpusSize = id + 1
			}
		}
	}

	retrievals := make([]mle.Retrieval, 0, len(req.Retrievals))
	for _, r := range req.Retrievals {
		retrieval, err := mle.NewRetrieval(r.Retrieved, r.UtilityContributions)
		if err != nil {
			return mustMarshalError(err)
		}
		retrievals = append(retrievals, retrieval)
	}

	var groupingPtr *mle.Grouping
	if req.GroupAssignments != nil {
		numGroups := 0
		for _, g := range req.GroupAssignments {
			if g+1 > numGroups {
				numGroups = g + 1
			}
		}
		grouping, err := mle.NewGrouping(numGroups, req.GroupAssignments)
		if err != nil {
			return mustMarshalError(err)
		}
		groupingPtr = &grouping
	}

	nJobs := req.NJobs
	if nJobs <= 0 {
		nJobs = runtime.NumCPU()
	}

	v, err := mle.MLEImportance(retrievals, corpusSize, groupingPtr, req.K, req.LearningRate, req.NumEpochs, nJobs)
	if err != nil {
		return mustMarshalError(err)
	}

	out, err := json.Marshal(LearnImportanceResponse{V: v})
	if err != nil {
		return mustMarshalError(err)
	}

	return string(out)
}

func mustMarshalError(err error) string {
	out, marshalErr := json.Marshal(errorResponse{Error: err.Error()})
	if marshalErr != nil {
		return `{"error":"cbinding: failed to marshal error response"}`
	}

	return string(out)
}
