package main

import (
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/abdulachik/novelcards/internal/app"
	"github.com/abdulachik/novelcards/internal/config"
	"github.com/abdulachik/novelcards/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	chaptersInput  string
	chaptersOutput string
	chaptersExport string
	chaptersDryRun bool
)

var chaptersCmd = &cobra.Command{
	Use:   "chapters",
	Short: "Split the novel into chapters and generate a TypeScript module",
	Long: `Split the novel text into chapters and write them as an exported
string[] of template literals.

Examples:
  novelcards chapters                                # Use NOVEL_PATH and CHAPTERS_OUTPUT
  novelcards chapters --input books/jane-eyre.txt --output data/janeEyre.ts
  novelcards chapters --dry-run                      # Parse and report, write nothing`,
	RunE: runChapters,
}

func init() {
	chaptersCmd.Flags().StringVar(&chaptersInput, "input", "", "Novel text file (default NOVEL_PATH)")
	chaptersCmd.Flags().StringVar(&chaptersOutput, "output", "", "Generated module path (default CHAPTERS_OUTPUT)")
	chaptersCmd.Flags().StringVar(&chaptersExport, "export", "", "Exported constant name (default CHAPTERS_EXPORT)")
	chaptersCmd.Flags().BoolVar(&chaptersDryRun, "dry-run", false, "Do not write the output file")
	rootCmd.AddCommand(chaptersCmd)
}

func runChapters(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	overrideString(&cfg.NovelPath, chaptersInput)
	overrideString(&cfg.ChaptersOutput, chaptersOutput)
	overrideString(&cfg.ChaptersExport, chaptersExport)

	if err := cfg.ValidateForChapters(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	a, err := app.New(ctx, cfg, app.Options{DryRun: chaptersDryRun})
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "Parsing %s...\n", cfg.NovelPath)

	report, err := a.Runner.Chapters(ctx, pipeline.ChaptersJob{
		InputPath:  cfg.NovelPath,
		OutputPath: cfg.ChaptersOutput,
		ExportName: cfg.ChaptersExport,
	})
	if err != nil {
		return err
	}

	printChaptersReport(cmd.OutOrStdout(), report)
	return nil
}

func printChaptersReport(w io.Writer, report *pipeline.ChaptersReport) {
	result := report.Result
	fmt.Fprintf(w, "Found %d chapters\n", result.HeadingsFound)
	fmt.Fprintf(w, "Extracted %d chapters\n", len(result.Chapters))
	if !result.EndMarkerFound {
		fmt.Fprintln(w, "Warning: could not find end marker, used full content")
	}

	printOutput(w, report.Output)
	fmt.Fprintf(w, "Total chapters: %d\n", len(result.Chapters))
	for _, ch := range result.Chapters {
		fmt.Fprintf(w, "  Chapter %d: %d characters\n", ch.Index, utf8.RuneCountInString(ch.Text))
	}

	fmt.Fprintln(w, "Done!")
}

func overrideString(dst *string, flag string) {
	if flag != "" {
		*dst = flag
	}
}

func printOutput(w io.Writer, out pipeline.Output) {
	if out.Written {
		fmt.Fprintf(w, "Generated %s (%d bytes)\n", out.Path, out.Bytes)
	} else {
		fmt.Fprintf(w, "Dry run: would generate %s (%d bytes)\n", out.Path, out.Bytes)
	}
}
