package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/cloudflix/flixctl/internal/models"
	"github.com/cloudflix/flixctl/internal/shared"
)

// Upload sends a video file and its metadata as one multipart request.
func (r *Runner) Upload(ctx context.Context, cmd *cli.Command) error {
	if err := r.guard.Require(); err != nil {
		return err
	}

	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: file path is required", shared.ErrMissingArgument)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: cannot open %s: %v", shared.ErrInvalidArgument, path, err)
	}
	defer file.Close()

	metadata := models.UploadMetadata{
		Title:       cmd.String("title"),
		Description: cmd.String("description"),
		Genre:       cmd.String("genre"),
		Tags:        cmd.StringSlice("tag"),
	}

	r.logger.Info("uploading video", "file", path, "title", metadata.Title)

	resp, err := r.videos.Upload(ctx, filepath.Base(path), file, metadata)
	if err != nil {
		return err
	}

	message := resp.Message
	if message == "" {
		message = "upload accepted"
	}
	return r.writePlain("✓ %s\n", message)
}
