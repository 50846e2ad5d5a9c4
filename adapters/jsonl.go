// Package adapters ingests newline-delimited JSON validation data into
// mle.Retrieval and mle.Grouping values, indexing the corpus items and
// group names it observes into dense 0-based ids along the way.
package adapters

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/amsterdata/ragbooster/mle"
)

// questionAnswering is one line of a questions JSONL file: a question, its
// set of correct answers, and the ranked list of (website, answer) pairs a
// retrieval model returned for it.
type questionAnswering struct {
	Question          string   `json:"question"`
	CorrectAnswers    []string `json:"correct_answers"`
	RetrievedWebsites []string `json:"retrieved_websites"`
	RetrievedAnswers  []string `json:"retrieved_answers"`
}

// group is one line of a groups JSONL file: a named group and the corpus
// element names assigned to it.
type group struct {
	Name     string   `json:"name"`
	Elements []string `json:"elements"`
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}

	return false
}

// ReadQuestionsJSONL reads a questions file and returns one mle.Retrieval
// per line, plus the StringIndexer that assigned corpus item ids to the
// retrieved website names (needed by ReadGroupsJSONL and for reporting
// results back in terms of the original names). A retrieved answer counts
// as a utility contribution of 1.0 if it appears in that line's correct
// answers, 0.0 otherwise.
func ReadQuestionsJSONL(path string) ([]mle.Retrieval, *StringIndexer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	var records []questionAnswering
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for lineNum := 0; scanner.Scan(); lineNum++ {
		var rec questionAnswering
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return nil, nil, fmt.Errorf("adapters: line %d: %w", lineNum, err)
		}
		if len(rec.CorrectAnswers) == 0 {
			return nil, nil, fmt.Errorf("adapters: line %d: %w", lineNum, ErrEmptyCorrectAnswers)
		}
		if len(rec.RetrievedWebsites) == 0 {
			return nil, nil, fmt.Errorf("adapters: line %d: %w", lineNum, ErrEmptyRetrievedWebsites)
		}
		if len(rec.RetrievedWebsites) != len(rec.RetrievedAnswers) {
			return nil, nil, fmt.Errorf("adapters: line %d: %w", lineNum, ErrRetrievedLengthMismatch)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	websiteIndexer := NewStringIndexer()
	for _, rec := range records {
		websiteIndexer.ObserveAll(rec.RetrievedWebsites)
	}
	websiteIndex := websiteIndexer.CreateIndex()

	retrievals := make([]mle.Retrieval, 0, len(records))
	for _, rec := range records {
		ids := make([]int, len(rec.RetrievedWebsites))
		utilities := make([]float64, len(rec.RetrievedAnswers))
		for i, website := range rec.RetrievedWebsites {
			ids[i] = websiteIndex[website]
			if contains(rec.CorrectAnswers, rec.RetrievedAnswers[i]) {
				utilities[i] = 1.0
			}
		}

		retrieval, err := mle.NewRetrieval(ids, utilities)
		if err != nil {
			return nil, nil, err
		}
		retrievals = append(retrievals, retrieval)
	}

	return retrievals, websiteIndexer, nil
}

// ReadGroupsJSONL reads a groups file and returns an mle.Grouping over the
// corpus ids assigned by elementIndex, plus the StringIndexer that
// assigned ids to the group names. Every element id elementIndex knows
// about must appear in at least one group, or this returns
// ErrGroupCoverageIncomplete; an element listed in several groups is
// assigned to the last of them.
func ReadGroupsJSONL(path string, elementIndex map[string]int) (mle.Grouping, *StringIndexer, error) {
	file, err := os.Open(path)
	if err != nil {
		return mle.Grouping{}, nil, err
	}
	defer file.Close()

	var groups []group
	groupNameIndexer := NewStringIndexer()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for lineNum := 0; scanner.Scan(); lineNum++ {
		var g group
		if err := json.Unmarshal(scanner.Bytes(), &g); err != nil {
			return mle.Grouping{}, nil, fmt.Errorf("adapters: line %d: %w", lineNum, err)
		}
		groupNameIndexer.Observe(g.Name)
		groups = append(groups, g)
	}
	if err := scanner.Err(); err != nil {
		return mle.Grouping{}, nil, err
	}

	groupNameIndex := groupNameIndexer.CreateIndex()
	assignments := make([]int, len(elementIndex))
	mapped := make([]bool, len(elementIndex))

	for _, g := range groups {
		groupID := groupNameIndex[g.Name]
		for _, element := range g.Elements {
			elementID, ok := elementIndex[element]
			if !ok {
				return mle.Grouping{}, nil, fmt.Errorf("adapters: group %q: %w", g.Name, ErrGroupElementUnknown)
			}
			assignments[elementID] = groupID
			mapped[elementID] = true
		}
	}

	for _, ok := range mapped {
		if !ok {
			return mle.Grouping{}, nil, ErrGroupCoverageIncomplete
		}
	}

	grouping, err := mle.NewGrouping(groupNameIndexer.NumObservedStrings(), assignments)
	if err != nil {
		return mle.Grouping{}, nil, err
	}

	return grouping, groupNameIndexer, nil
}
