package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abdulachik/novelcards/internal/textio"
	"github.com/abdulachik/novelcards/internal/tsgen"
	"github.com/abdulachik/novelcards/internal/wordlist"
)

// VocabSource is one word-list file and the dialect it is written in.
type VocabSource struct {
	// Key is the Vocabulary enum member in the generated module.
	Key     string
	Path    string
	Dialect wordlist.Dialect
}

// DefaultVocabSources returns the CET4 and CET6 sources in output order.
func DefaultVocabSources(cet4Path, cet6Path string) []VocabSource {
	return []VocabSource{
		{Key: "CET4", Path: cet4Path, Dialect: wordlist.CET4},
		{Key: "CET6", Path: cet6Path, Dialect: wordlist.CET6},
	}
}

// VocabJob names the files of one vocabulary pipeline run.
type VocabJob struct {
	Sources    []VocabSource
	OutputPath string
}

// VocabReport is the outcome of a vocabulary pipeline run.
type VocabReport struct {
	Sets   []wordlist.Set
	Output Output
}

// Total returns the number of entries across all sets.
func (v *VocabReport) Total() int {
	total := 0
	for _, set := range v.Sets {
		total += len(set.Entries)
	}
	return total
}

// ParseFile reads the word list at path and parses every line with parse.
func ParseFile(path, encoding string, parse wordlist.LineParser) ([]wordlist.Entry, error) {
	text, err := textio.ReadFile(path, encoding)
	if err != nil {
		return nil, err
	}
	return wordlist.ParseLines(text, parse), nil
}

// Vocabulary parses every source and writes them as one TypeScript mapping.
func (r *Runner) Vocabulary(ctx context.Context, job VocabJob) (report *VocabReport, err error) {
	inputs := make([]string, len(job.Sources))
	for i, src := range job.Sources {
		inputs[i] = src.Path
	}

	run := r.beginRun(ctx, NameVocab, inputs, job.OutputPath)
	defer func() {
		if err != nil {
			run.fail(ctx, err)
		}
	}()

	sets := make([]wordlist.Set, 0, len(job.Sources))
	for _, src := range job.Sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		slog.Info("parsing word list", "set", src.Key, "file", src.Path)

		entries, err := ParseFile(src.Path, r.encoding, src.Dialect.Parse)
		if err != nil {
			return nil, fmt.Errorf("parse %s list: %w", src.Key, err)
		}

		slog.Info("parsed word list", "set", src.Key, "words", len(entries))
		sets = append(sets, wordlist.Set{Key: src.Key, Entries: entries})
	}

	out, err := r.emit(job.OutputPath, tsgen.VocabularyModule(sets))
	if err != nil {
		return nil, err
	}

	report = &VocabReport{Sets: sets, Output: out}
	for _, set := range sets {
		run.count(ctx, set.Key, len(set.Entries))
	}
	run.complete(ctx, report.Total(), out)

	return report, nil
}
