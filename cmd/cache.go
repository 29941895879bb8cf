package main

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/cloudflix/flixctl/internal/tasks"
)

// CacheSync mirrors remote watch history and catalog pages into the local database.
func (r *Runner) CacheSync(ctx context.Context, cmd *cli.Command) error {
	if err := r.guard.Require(); err != nil {
		return err
	}

	engine, db, err := r.openEngine()
	if err != nil {
		return err
	}
	defer db.Close()

	opts := tasks.SyncOpts{
		PageSize:     int(cmd.Int("size")),
		NumWorkers:   int(cmd.Int("workers")),
		RateLimit:    cmd.Float("rate"),
		FetchDetails: cmd.Bool("details"),
	}

	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase.String(), "step", update.Step, "total", update.Total)
		}
	}()

	var failed []int64

	if cmd.Bool("history") {
		result, err := engine.SyncHistory(ctx, progress, opts)
		if err != nil {
			close(progress)
			<-done
			return err
		}
		r.writePlain("✓ History synced: %d entries\n", result.HistoryEntries)
		if result.VideosCached > 0 {
			r.writePlain("  Videos cached: %d\n", result.VideosCached)
		}
		failed = append(failed, result.FailedDetails...)
	}

	if cmd.Bool("catalog") {
		result, err := engine.SyncCatalog(ctx, progress, opts)
		if err != nil {
			close(progress)
			<-done
			return err
		}
		r.writePlain("✓ Catalog synced: %d videos\n", result.VideosCached)
		failed = append(failed, result.FailedDetails...)
	}

	close(progress)
	<-done

	if len(failed) > 0 {
		r.logger.Warn("some video details could not be fetched", "count", len(failed))
	}
	return nil
}

// CacheExport writes the cached history and catalog to files.
func (r *Runner) CacheExport(ctx context.Context, cmd *cli.Command) error {
	engine, db, err := r.openEngine()
	if err != nil {
		return err
	}
	defer db.Close()

	opts := tasks.ExportOpts{
		Format:    cmd.String("format"),
		OutputDir: cmd.String("output"),
	}
	if opts.Format == "" {
		opts.Format = r.config.Export.Format
	}
	if opts.OutputDir == "" && r.config.Export.OutputDir != "" {
		opts.OutputDir = r.config.Export.OutputDir
	}

	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase.String())
		}
	}()

	result, err := engine.Export(progress, opts)
	close(progress)
	<-done
	if err != nil {
		return err
	}

	if len(result.Files) == 0 {
		return r.writePlain("Nothing to export; run 'flixctl cache sync' first.\n")
	}

	r.writePlain("✓ Exported to %s\n", result.OutputDirectory)
	r.writePlain("  Files: %s\n", strings.Join(result.Files, ", "))
	if result.HistoryEntries > 0 {
		r.writePlain("  History entries: %d\n", result.HistoryEntries)
	}
	if result.Videos > 0 {
		r.writePlain("  Videos: %d\n", result.Videos)
	}
	return nil
}
