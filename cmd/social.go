package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/cloudflix/flixctl/internal/models"
)

// CommentsList prints a video's top-level comments.
func (r *Runner) CommentsList(ctx context.Context, cmd *cli.Command) error {
	videoID, err := parseIDArg(cmd, "video-id")
	if err != nil {
		return err
	}

	page, err := r.social.Comments(ctx, videoID, int(cmd.Int("page")), int(cmd.Int("size")))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}
	return r.printCommentPage(page)
}

// CommentsReplies prints the replies to one comment.
func (r *Runner) CommentsReplies(ctx context.Context, cmd *cli.Command) error {
	commentID, err := parseIDArg(cmd, "comment-id")
	if err != nil {
		return err
	}

	page, err := r.social.Replies(ctx, commentID, int(cmd.Int("page")), int(cmd.Int("size")))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}
	return r.printCommentPage(page)
}

// CommentsAdd posts a comment or reply on a video.
func (r *Runner) CommentsAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.guard.Require(); err != nil {
		return err
	}

	videoID, err := parseIDArg(cmd, "video-id")
	if err != nil {
		return err
	}

	var parentID *int64
	if cmd.Int("reply-to") != 0 {
		id := int64(cmd.Int("reply-to"))
		parentID = &id
	}

	comment, err := r.social.CreateComment(ctx, videoID, cmd.String("text"), parentID)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Comment %d posted\n", comment.ID)
}

// CommentsEdit updates one of the user's comments.
func (r *Runner) CommentsEdit(ctx context.Context, cmd *cli.Command) error {
	if err := r.guard.Require(); err != nil {
		return err
	}

	commentID, err := parseIDArg(cmd, "comment-id")
	if err != nil {
		return err
	}

	if _, err := r.social.UpdateComment(ctx, commentID, cmd.String("text")); err != nil {
		return err
	}
	return r.writePlain("✓ Comment updated\n")
}

// CommentsDelete removes one of the user's comments.
func (r *Runner) CommentsDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.guard.Require(); err != nil {
		return err
	}

	commentID, err := parseIDArg(cmd, "comment-id")
	if err != nil {
		return err
	}

	if err := r.social.DeleteComment(ctx, commentID); err != nil {
		return err
	}
	return r.writePlain("✓ Comment deleted\n")
}

// RatingsSet rates a video from 1 to 5 stars.
func (r *Runner) RatingsSet(ctx context.Context, cmd *cli.Command) error {
	if err := r.guard.Require(); err != nil {
		return err
	}

	videoID, err := parseIDArg(cmd, "video-id")
	if err != nil {
		return err
	}

	stars := int(cmd.Int("stars"))
	if err := r.social.Rate(ctx, videoID, stars); err != nil {
		return err
	}
	return r.writePlain("✓ Rated %d/5\n", stars)
}

// RatingsShow prints a video's rating summary and the user's own rating.
func (r *Runner) RatingsShow(ctx context.Context, cmd *cli.Command) error {
	videoID, err := parseIDArg(cmd, "video-id")
	if err != nil {
		return err
	}

	summary, err := r.social.RatingSummary(ctx, videoID)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(summary, cmd.Bool("pretty"))
	}

	r.writePlain("Average: %.1f (%d ratings)\n", summary.AverageRating, summary.RatingCount)

	if r.sess.Current() != nil {
		mine, err := r.social.MyRating(ctx, videoID)
		if err != nil {
			r.logger.Debug("no personal rating", "error", err)
		} else if mine != nil {
			r.writePlain("Yours:   %d/5\n", mine.RatingValue)
		}
	}
	return nil
}

// RatingsDelete removes the user's rating from a video.
func (r *Runner) RatingsDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.guard.Require(); err != nil {
		return err
	}

	videoID, err := parseIDArg(cmd, "video-id")
	if err != nil {
		return err
	}

	if err := r.social.DeleteRating(ctx, videoID); err != nil {
		return err
	}
	return r.writePlain("✓ Rating removed\n")
}

func (r *Runner) printCommentPage(page *models.Page[models.Comment]) error {
	if len(page.Content) == 0 {
		return r.writePlain("No comments.\n")
	}

	for _, comment := range page.Content {
		r.writePlain("#%d %s: %s\n", comment.ID, comment.AuthorName, comment.Text)
		if comment.ReplyCount > 0 {
			r.writePlain("    (%d replies)\n", comment.ReplyCount)
		}
	}
	return r.writePlain("Page %d of %d (%d total)\n", page.Number+1, page.TotalPages, page.TotalElements)
}
