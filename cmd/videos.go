package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/cloudflix/flixctl/internal/models"
	"github.com/cloudflix/flixctl/internal/shared"
)

func parseIDArg(cmd *cli.Command, name string) (int64, error) {
	raw := cmd.StringArg(name)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", shared.ErrMissingArgument, name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be numeric", shared.ErrInvalidArgument, name)
	}
	return id, nil
}

// VideosList lists catalog videos, optionally filtered by genre or tag.
func (r *Runner) VideosList(ctx context.Context, cmd *cli.Command) error {
	genre := cmd.String("genre")
	tag := cmd.String("tag")
	if genre != "" && tag != "" {
		return fmt.Errorf("%w: cannot filter by both genre and tag", shared.ErrInvalidFlag)
	}

	var page *models.Page[models.Video]
	var err error

	switch {
	case genre != "":
		page, err = r.videos.ByGenre(ctx, genre, int(cmd.Int("page")), int(cmd.Int("size")))
	case tag != "":
		page, err = r.videos.ByTag(ctx, tag, int(cmd.Int("page")), int(cmd.Int("size")))
	default:
		page, err = r.videos.List(ctx, int(cmd.Int("page")), int(cmd.Int("size")), cmd.String("sort"))
	}
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}
	return r.printVideoPage(page)
}

// VideosSearch searches the catalog by title.
func (r *Runner) VideosSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query is required", shared.ErrMissingArgument)
	}

	page, err := r.videos.Search(ctx, query, int(cmd.Int("page")), int(cmd.Int("size")))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}
	return r.printVideoPage(page)
}

// VideosGenres lists the catalog's genres.
func (r *Runner) VideosGenres(ctx context.Context, cmd *cli.Command) error {
	genres, err := r.videos.Genres(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(genres, cmd.Bool("pretty"))
	}

	for _, genre := range genres {
		r.writePlain("%s\n", genre)
	}
	return nil
}

// VideosShow prints one video's details.
func (r *Runner) VideosShow(ctx context.Context, cmd *cli.Command) error {
	id, err := parseIDArg(cmd, "id")
	if err != nil {
		return err
	}

	video, err := r.videos.Get(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(video, cmd.Bool("pretty"))
	}

	r.writePlainHeader(video.Title)
	if video.Genre != "" {
		r.writePlain("Genre: %s\n", video.Genre)
	}
	r.writePlain("Duration: %ds\n", video.DurationSeconds)
	if len(video.Tags) > 0 {
		r.writePlain("Tags: %s\n", strings.Join(video.Tags, ", "))
	}
	if video.Description != "" {
		r.writePlain("\n%s\n", video.Description)
	}
	return nil
}

// VideosStream fetches the short-lived playback URL for a video.
func (r *Runner) VideosStream(ctx context.Context, cmd *cli.Command) error {
	if err := r.guard.Require(); err != nil {
		return err
	}

	id, err := parseIDArg(cmd, "id")
	if err != nil {
		return err
	}

	stream, err := r.videos.StreamURL(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(stream, cmd.Bool("pretty"))
	}
	return r.writePlain("%s\n", stream.URL)
}

func (r *Runner) printVideoPage(page *models.Page[models.Video]) error {
	if len(page.Content) == 0 {
		return r.writePlain("No videos found.\n")
	}

	for _, video := range page.Content {
		r.writePlain("%6d  %-40s %s\n", video.ID, video.Title, video.Genre)
	}
	return r.writePlain("Page %d of %d (%d total)\n", page.Number+1, page.TotalPages, page.TotalElements)
}
