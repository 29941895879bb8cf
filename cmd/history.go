package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/cloudflix/flixctl/internal/models"
)

// HistoryList prints the user's watch history.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	if err := r.guard.Require(); err != nil {
		return err
	}

	page, err := r.history.UserHistory(ctx, int(cmd.Int("page")), int(cmd.Int("size")))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}

	if len(page.Content) == 0 {
		return r.writePlain("No watch history.\n")
	}

	for _, entry := range page.Content {
		marker := " "
		if entry.Completed {
			marker = "✓"
		}
		r.writePlain("[%s] %-40s %4ds  %s\n", marker, entry.VideoTitle, entry.ResumePositionSeconds, entry.WatchedAt)
	}
	return r.writePlain("Page %d of %d (%d total)\n", page.Number+1, page.TotalPages, page.TotalElements)
}

// HistoryRecord reports playback progress for a video.
func (r *Runner) HistoryRecord(ctx context.Context, cmd *cli.Command) error {
	if err := r.guard.Require(); err != nil {
		return err
	}

	id, err := parseIDArg(cmd, "id")
	if err != nil {
		return err
	}

	progress := models.WatchProgress{
		ResumePositionSeconds: int(cmd.Int("position")),
		Completed:             cmd.Bool("completed"),
	}

	if err := r.history.RecordProgress(ctx, id, progress); err != nil {
		return err
	}
	return r.writePlain("✓ Progress recorded at %ds\n", progress.ResumePositionSeconds)
}

// HistoryComplete marks a video as fully watched.
func (r *Runner) HistoryComplete(ctx context.Context, cmd *cli.Command) error {
	if err := r.guard.Require(); err != nil {
		return err
	}

	id, err := parseIDArg(cmd, "id")
	if err != nil {
		return err
	}

	if err := r.history.MarkCompleted(ctx, id); err != nil {
		return err
	}
	return r.writePlain("✓ Marked as completed\n")
}

// HistoryDelete removes one history entry.
func (r *Runner) HistoryDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.guard.Require(); err != nil {
		return err
	}

	id, err := parseIDArg(cmd, "id")
	if err != nil {
		return err
	}

	if err := r.history.DeleteEntry(ctx, id); err != nil {
		return err
	}
	return r.writePlain("✓ Entry deleted\n")
}

// HistoryClear deletes the entire watch history.
func (r *Runner) HistoryClear(ctx context.Context, cmd *cli.Command) error {
	if err := r.guard.Require(); err != nil {
		return err
	}

	if err := r.history.ClearAll(ctx); err != nil {
		return err
	}
	return r.writePlain("✓ Watch history cleared\n")
}
