// Package ragbooster learns per-corpus-item existence-probability weights
// for a retrieval-augmented kNN classifier.
//
// Given a validation set of queries, each with a list of retrieved corpus
// items and the utility each item contributed to the downstream answer,
// ragbooster runs projected gradient ascent on a weight vector v in
// [0, 1]^corpus, starting from v_i = 0.5 for every item. Each v_i converges
// toward 1 when retrieving item i tends to help the classifier and toward 0
// when it tends to hurt, without ever touching the classifier itself: the
// gradient is derived in closed form from dynamic-programming tables over
// the possible subsets of a query's retrieved items.
//
// Everything is organized under subpackages:
//
//	tensor/   — row-major dense storage with buffer-reuse and a fused
//	            multiply-add kernel, used by the dynamic-programming tables
//	mle/      — the gradient math, the worker pool that parallelizes it
//	            across validation queries, and the public optimizer entry
//	            point MLEImportance
//	adapters/ — JSON-Lines ingestion of questions and group files
//	cbinding/ — a JSON-in/JSON-out function for embedding ragbooster in a
//	            foreign-language caller
//
// and two commands:
//
//	cmd/ragbooster/    — a CLI with train and bench subcommands
//	cmd/libragbooster/ — a C shared library wrapping cbinding
package ragbooster
