package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/amsterdata/ragbooster/adapters"
	"github.com/amsterdata/ragbooster/mle"
)

type trainOptions struct {
	questionsPath string
	groupsPath    string
	outputPath    string
	k             int
	learningRate  float64
	numEpochs     int
	nJobs         int
}

func newTrainCmd() *cobra.Command {
	opts := &trainOptions{}

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Learn existence probabilities from a questions JSONL file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrain(opts)
		},
	}

	cmd.Flags().StringVar(&opts.questionsPath, "questions", "", "path to a questions JSONL file (required)")
	cmd.Flags().StringVar(&opts.groupsPath, "groups", "", "path to an optional groups JSONL file")
	cmd.Flags().StringVar(&opts.outputPath, "output", "", "path to write the learned weights as JSON (defaults to stdout)")
	cmd.Flags().IntVar(&opts.k, "k", 10, "number of neighbors the downstream classifier uses")
	cmd.Flags().Float64Var(&opts.learningRate, "learning-rate", 0.1, "gradient ascent step size")
	cmd.Flags().IntVar(&opts.numEpochs, "epochs", 100, "number of gradient ascent epochs")
	cmd.Flags().IntVar(&opts.nJobs, "jobs", 1, "number of worker goroutines")
	_ = cmd.MarkFlagRequired("questions")

	return cmd
}

type trainResult struct {
	Websites []string  `json:"websites"`
	V        []float64 `json:"v"`
}

func runTrain(opts *trainOptions) error {
	retrievals, indexer, err := adapters.ReadQuestionsJSONL(opts.questionsPath)
	if err != nil {
		return fmt.Errorf("ragbooster: reading questions: %w", err)
	}
	corpusSize := indexer.NumObservedStrings()

	var grouping *mle.Grouping
	if opts.groupsPath != "" {
		g, _, err := adapters.ReadGroupsJSONL(opts.groupsPath, indexer.CreateIndex())
		if err != nil {
			return fmt.Errorf("ragbooster: reading groups: %w", err)
		}
		grouping = &g
	}

	slog.Info("learning existence probabilities",
		"questions", len(retrievals), "corpus_size", corpusSize, "k", opts.k, "epochs", opts.numEpochs, "jobs", opts.nJobs)

	start := time.Now()
	v, err := mle.MLEImportance(retrievals, corpusSize, grouping, opts.k, opts.learningRate, opts.numEpochs, opts.nJobs)
	if err != nil {
		return fmt.Errorf("ragbooster: learning importance: %w", err)
	}
	slog.Info("finished learning existence probabilities", "duration", time.Since(start))

	reverseIndex := indexer.CreateReverseIndex()
	websites := make([]string, len(v))
	for id := range v {
		websites[id] = reverseIndex[id]
	}

	out, err := json.MarshalIndent(trainResult{Websites: websites, V: v}, "", "  ")
	if err != nil {
		return err
	}

	if opts.outputPath == "" {
		fmt.Println(string(out))
		return nil
	}

	return os.WriteFile(opts.outputPath, out, 0o644)
}
