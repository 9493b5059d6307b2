// Package differ walks a file-change list, dispatches each file to its
// parser plugin and aggregates the matcher's output into a DiffResult.
package differ

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"sem/internal/gitbridge"
	"sem/internal/matcher"
	"sem/internal/model"
	"sem/internal/parser"
	"sem/internal/semerr"
)

// Options carries the optional inputs of a diff run.
type Options struct {
	// CommitSha and Author are stamped onto every change.
	CommitSha string
	Author    string

	// Workers caps the per-file fan-out; 0 means one worker per CPU.
	Workers int

	// Logger receives progress records; nil discards them.
	Logger *slog.Logger
}

// ComputeSemanticDiff diffs every file change and returns the aggregate
// result. Files are processed in parallel but the output preserves input
// file order, then the matcher's phase order within a file. A parse failure
// on one file never affects its siblings; cancellation aborts the run with
// no partial result.
func ComputeSemanticDiff(ctx context.Context, files []gitbridge.FileChange, registry *parser.Registry, opts Options) (*model.DiffResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	runID := uuid.NewString()
	logger.Debug("starting semantic diff", "run", runID, "files", len(files), "workers", workers)

	perFile := make([][]model.Change, len(files))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i := range files {
		if err := groupCtx.Err(); err != nil {
			break
		}
		idx := i
		file := files[i]
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return semerr.New(semerr.Cancelled, "diff cancelled", err)
			}
			perFile[idx] = diffOneFile(file, registry, opts)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	// Wait always cancels groupCtx; the caller's ctx tells whether the run
	// itself was cancelled.
	if err := ctx.Err(); err != nil {
		return nil, semerr.New(semerr.Cancelled, "diff cancelled", err)
	}

	var changes []model.Change
	for _, fileChanges := range perFile {
		changes = append(changes, fileChanges...)
	}
	if changes == nil {
		changes = []model.Change{}
	}

	summary := model.Count(changes)
	logger.Debug("semantic diff finished", "run", runID,
		"changes", summary.Total, "files", summary.FileCount)

	return &model.DiffResult{Summary: summary, Changes: changes}, nil
}

// diffOneFile extracts both sides and runs the matcher. When the file was
// renamed in the VCS the before side is extracted under its old path, so the
// matcher sees path-differing pairs and classifies survivors as moved.
func diffOneFile(file gitbridge.FileChange, registry *parser.Registry, opts Options) []model.Change {
	plugin := registry.GetPlugin(file.FilePath)
	if plugin == nil {
		return nil
	}

	beforePath := file.FilePath
	if file.OldFilePath != "" {
		beforePath = file.OldFilePath
	}

	var before, after []model.Entity
	if file.BeforeContent != nil {
		before = safeExtract(plugin, *file.BeforeContent, beforePath)
	}
	if file.AfterContent != nil {
		after = safeExtract(plugin, *file.AfterContent, file.FilePath)
	}

	return matcher.MatchEntities(before, after, file.FilePath, matcher.Options{
		Similarity: parser.SimilarityFor(plugin),
		CommitSha:  opts.CommitSha,
		Author:     opts.Author,
	})
}

// safeExtract shields the orchestrator from plugin panics: a crashing parser
// is a parse failure, and a parse failure is an empty entity list.
func safeExtract(plugin parser.Plugin, content, filePath string) (entities []model.Entity) {
	defer func() {
		if r := recover(); r != nil {
			entities = nil
		}
	}()
	return plugin.ExtractEntities(content, filePath)
}
