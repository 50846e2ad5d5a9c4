package adapters

import "sort"

// StringIndexer assigns a dense, 0-based id to every distinct string it
// observes, ordered lexicographically — the Go stand-in for a sorted set,
// since the standard library has no ordered-set container. Ids are only
// stable once CreateIndex/CreateReverseIndex are called; further calls to
// Observe after that point are not reflected in a previously created index.
type StringIndexer struct {
	distinct map[string]struct{}
}

// NewStringIndexer returns an empty indexer.
func NewStringIndexer() *StringIndexer {
	return &StringIndexer{distinct: make(map[string]struct{})}
}

// Observe records a single string.
func (s *StringIndexer) Observe(str string) {
	s.distinct[str] = struct{}{}
}

// ObserveAll records every string in strs.
func (s *StringIndexer) ObserveAll(strs []string) {
	for _, str := range strs {
		s.Observe(str)
	}
}

// NumObservedStrings returns the number of distinct strings seen so far.
func (s *StringIndexer) NumObservedStrings() int {
	return len(s.distinct)
}

func (s *StringIndexer) sortedStrings() []string {
	sorted := make([]string, 0, len(s.distinct))
	for str := range s.distinct {
		sorted = append(sorted, str)
	}
	sort.Strings(sorted)

	return sorted
}

// CreateIndex returns a string-to-id map assigning ids 0..n-1 in
// lexicographic order of the observed strings.
func (s *StringIndexer) CreateIndex() map[string]int {
	sorted := s.sortedStrings()
	index := make(map[string]int, len(sorted))
	for id, str := range sorted {
		index[str] = id
	}

	return index
}

// CreateReverseIndex returns the id-to-string inverse of CreateIndex.
func (s *StringIndexer) CreateReverseIndex() map[int]string {
	sorted := s.sortedStrings()
	index := make(map[int]string, len(sorted))
	for id, str := range sorted {
		index[id] = str
	}

	return index
}
