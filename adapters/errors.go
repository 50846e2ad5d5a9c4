// Package adapters: sentinel error set.
//
// Every message is prefixed with "adapters: ..." for consistency and easy
// grepping across logs.
package adapters

import "errors"

var (
	// ErrEmptyCorrectAnswers indicates a question record has no correct answers.
	ErrEmptyCorrectAnswers = errors.New("adapters: record has no correct answers")

	// ErrEmptyRetrievedWebsites indicates a question record retrieved nothing.
	ErrEmptyRetrievedWebsites = errors.New("adapters: record retrieved nothing")

	// ErrRetrievedLengthMismatch indicates a record's retrieved sources and
	// retrieved answers lists have different lengths.
	ErrRetrievedLengthMismatch = errors.New("adapters: retrieved sources and answers length mismatch")

	// ErrGroupElementUnknown indicates a group references an element id that
	// was never observed by the indexer it is being resolved against.
	ErrGroupElementUnknown = errors.New("adapters: group element was never observed")

	// ErrGroupCoverageIncomplete indicates at least one observed element id
	// was not assigned to any group.
	ErrGroupCoverageIncomplete = errors.New("adapters: group assignment does not cover every observed element")
)
