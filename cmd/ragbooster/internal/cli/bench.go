package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/amsterdata/ragbooster/adapters"
	"github.com/amsterdata/ragbooster/mle"
)

type benchOptions struct {
	questionsPath string
	k             int
	learningRate  float64
	numEpochs     int
	jobCounts     []int
	repetitions   int
}

func newBenchCmd() *cobra.Command {
	opts := &benchOptions{}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure training wall-clock time across worker counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(opts)
		},
	}

	cmd.Flags().StringVar(&opts.questionsPath, "questions", "", "path to a questions JSONL file (required)")
	cmd.Flags().IntVar(&opts.k, "k", 10, "number of neighbors the downstream classifier uses")
	cmd.Flags().Float64Var(&opts.learningRate, "learning-rate", 0.1, "gradient ascent step size")
	cmd.Flags().IntVar(&opts.numEpochs, "epochs", 10, "number of gradient ascent epochs")
	cmd.Flags().IntSliceVar(&opts.jobCounts, "jobs", []int{1, 2, 4}, "worker counts to sweep")
	cmd.Flags().IntVar(&opts.repetitions, "repetitions", 7, "repetitions per worker count")
	_ = cmd.MarkFlagRequired("questions")

	return cmd
}

func runBench(opts *benchOptions) error {
	retrievals, indexer, err := adapters.ReadQuestionsJSONL(opts.questionsPath)
	if err != nil {
		return fmt.Errorf("ragbooster: reading questions: %w", err)
	}
	corpusSize := indexer.NumObservedStrings()

	fmt.Println("file,jobs,duration_ms")
	for _, nJobs := range opts.jobCounts {
		for rep := 0; rep < opts.repetitions; rep++ {
			start := time.Now()
			_, err := mle.MLEImportance(retrievals, corpusSize, nil, opts.k, opts.learningRate, opts.numEpochs, nJobs)
			if err != nil {
				return fmt.Errorf("ragbooster: learning importance: %w", err)
			}
			duration := time.Since(start)
			slog.Debug("bench repetition finished", "jobs", nJobs, "repetition", rep, "duration", duration)
			fmt.Printf("%s,%d,%d\n", opts.questionsPath, nJobs, duration.Milliseconds())
		}
	}

	return nil
}
