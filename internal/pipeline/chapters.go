package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abdulachik/novelcards/internal/segmenter"
	"github.com/abdulachik/novelcards/internal/textio"
	"github.com/abdulachik/novelcards/internal/tsgen"
)

// ChaptersJob names the files of one novel pipeline run.
type ChaptersJob struct {
	InputPath  string
	OutputPath string
	ExportName string
}

// ChaptersReport is the outcome of a novel pipeline run.
type ChaptersReport struct {
	Result *segmenter.Result
	Output Output
}

// Chapters splits the novel at job.InputPath into chapters and writes them
// as a TypeScript string list. Nothing is written when segmentation fails.
func (r *Runner) Chapters(ctx context.Context, job ChaptersJob) (report *ChaptersReport, err error) {
	run := r.beginRun(ctx, NameChapters, []string{job.InputPath}, job.OutputPath)
	defer func() {
		if err != nil {
			run.fail(ctx, err)
		}
	}()

	slog.Info("parsing novel", "file", job.InputPath)

	text, err := textio.ReadFile(job.InputPath, r.encoding)
	if err != nil {
		return nil, fmt.Errorf("read novel: %w", err)
	}

	result, err := segmenter.Segment(text)
	if err != nil {
		return nil, fmt.Errorf("segment %s: %w", job.InputPath, err)
	}

	slog.Info("segmented novel",
		"headings", result.HeadingsFound,
		"chapters", len(result.Chapters),
		"end_marker", result.EndMarkerFound,
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := r.emit(job.OutputPath, tsgen.ChaptersModule(job.ExportName, result.Texts()))
	if err != nil {
		return nil, err
	}

	run.count(ctx, "headings", result.HeadingsFound)
	run.count(ctx, "chapters", len(result.Chapters))
	run.complete(ctx, len(result.Chapters), out)

	return &ChaptersReport{Result: result, Output: out}, nil
}
