package pipeline

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abdulachik/novelcards/internal/db"
	"github.com/abdulachik/novelcards/internal/textio"
)

// Pipeline names recorded in the run ledger.
const (
	NameChapters = "chapters"
	NameVocab    = "vocab"
)

// Config holds configuration for the runner.
type Config struct {
	// Store records runs; nil disables recording.
	Store *db.Store
	// Encoding is the input text encoding label.
	Encoding string
	// DryRun skips writing output files.
	DryRun bool
}

// Runner executes the generation pipelines.
type Runner struct {
	store    *db.Store
	encoding string
	dryRun   bool
}

// New creates a new Runner.
func New(cfg Config) *Runner {
	encoding := cfg.Encoding
	if encoding == "" {
		encoding = textio.DefaultEncoding
	}
	return &Runner{
		store:    cfg.Store,
		encoding: encoding,
		dryRun:   cfg.DryRun,
	}
}

// Output describes a generated module.
type Output struct {
	Path    string
	Bytes   int
	SHA256  string
	Written bool
}

// emit writes content to path unless this is a dry run.
func (r *Runner) emit(path string, content []byte) (Output, error) {
	sum := sha256.Sum256(content)
	out := Output{
		Path:   path,
		Bytes:  len(content),
		SHA256: hex.EncodeToString(sum[:]),
	}

	if r.dryRun {
		slog.Info("dry run, not writing output", "path", path, "bytes", out.Bytes)
		return out, nil
	}

	if err := textio.WriteFile(path, content); err != nil {
		return out, fmt.Errorf("write output: %w", err)
	}
	out.Written = true
	return out, nil
}

// ledgerRun tracks one run in the store. All methods are no-ops when the
// runner has no store.
type ledgerRun struct {
	store *db.Store
	id    int64
}

func (r *Runner) beginRun(ctx context.Context, pipeline string, inputs []string, output string) *ledgerRun {
	if r.store == nil {
		return &ledgerRun{}
	}

	run, err := r.store.CreateRun(ctx, db.CreateRunParams{
		Pipeline:   pipeline,
		InputPaths: strings.Join(inputs, ","),
		OutputPath: output,
	})
	if err != nil {
		slog.Warn("failed to record run start", "pipeline", pipeline, "error", err)
		return &ledgerRun{}
	}
	return &ledgerRun{store: r.store, id: run.ID}
}

func (l *ledgerRun) count(ctx context.Context, label string, n int) {
	if l.store == nil {
		return
	}
	err := l.store.AddRunCount(ctx, db.AddRunCountParams{RunID: l.id, Label: label, Count: int64(n)})
	if err != nil {
		slog.Warn("failed to record run count", "run", l.id, "label", label, "error", err)
	}
}

func (l *ledgerRun) complete(ctx context.Context, records int, out Output) {
	if l.store == nil {
		return
	}
	err := l.store.CompleteRun(ctx, db.CompleteRunParams{
		ID:           l.id,
		RecordCount:  int64(records),
		OutputSha256: sql.NullString{String: out.SHA256, Valid: out.Written},
	})
	if err != nil {
		slog.Warn("failed to record run completion", "run", l.id, "error", err)
	}
}

func (l *ledgerRun) fail(ctx context.Context, cause error) {
	if l.store == nil {
		return
	}
	err := l.store.FailRun(ctx, db.FailRunParams{
		ID:           l.id,
		ErrorMessage: sql.NullString{String: cause.Error(), Valid: true},
	})
	if err != nil {
		slog.Warn("failed to record run failure", "run", l.id, "error", err)
	}
}
