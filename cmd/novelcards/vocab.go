package main

import (
	"context"
	"fmt"
	"io"

	"github.com/abdulachik/novelcards/internal/app"
	"github.com/abdulachik/novelcards/internal/config"
	"github.com/abdulachik/novelcards/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	vocabCET4   string
	vocabCET6   string
	vocabOutput string
	vocabDryRun bool
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Parse the CET-4/CET-6 word lists and generate a TypeScript module",
	Long: `Parse the CET-4 and CET-6 word lists and write them as an exported
VocabularyData mapping of Word records.

Lines that are not "word [pronunciation] translation" entries are skipped.

Examples:
  novelcards vocab
  novelcards vocab --cet4 CET4_edited.txt --cet6 CET6_edited.txt --output data/mockWords.ts`,
	RunE: runVocab,
}

func init() {
	vocabCmd.Flags().StringVar(&vocabCET4, "cet4", "", "CET-4 word list (default CET4_PATH)")
	vocabCmd.Flags().StringVar(&vocabCET6, "cet6", "", "CET-6 word list (default CET6_PATH)")
	vocabCmd.Flags().StringVar(&vocabOutput, "output", "", "Generated module path (default VOCAB_OUTPUT)")
	vocabCmd.Flags().BoolVar(&vocabDryRun, "dry-run", false, "Do not write the output file")
	rootCmd.AddCommand(vocabCmd)
}

func runVocab(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	overrideString(&cfg.CET4Path, vocabCET4)
	overrideString(&cfg.CET6Path, vocabCET6)
	overrideString(&cfg.VocabOutput, vocabOutput)

	if err := cfg.ValidateForVocab(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	a, err := app.New(ctx, cfg, app.Options{DryRun: vocabDryRun})
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	report, err := a.Runner.Vocabulary(ctx, pipeline.VocabJob{
		Sources:    pipeline.DefaultVocabSources(cfg.CET4Path, cfg.CET6Path),
		OutputPath: cfg.VocabOutput,
	})
	if err != nil {
		return err
	}

	printVocabReport(cmd.OutOrStdout(), report)
	return nil
}

func printVocabReport(w io.Writer, report *pipeline.VocabReport) {
	printOutput(w, report.Output)
	for _, set := range report.Sets {
		fmt.Fprintf(w, "%s words: %d\n", set.Key, len(set.Entries))
	}
	fmt.Fprintln(w, "Done!")
}
