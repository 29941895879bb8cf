package services

import (
	"context"
	"fmt"

	"github.com/cloudflix/flixctl/internal/api"
	"github.com/cloudflix/flixctl/internal/models"
)

// SocialService manages comments and ratings attached to videos.
type SocialService struct {
	client *api.Client
}

// NewSocialService creates a social service over the request pipeline.
func NewSocialService(client *api.Client) *SocialService {
	return &SocialService{client: client}
}

type commentRequest struct {
	Text            string `json:"text"`
	ParentCommentID *int64 `json:"parentCommentId"`
}

// CreateComment posts a top-level comment, or a reply when parentID is non-nil.
func (s *SocialService) CreateComment(ctx context.Context, videoID int64, text string, parentID *int64) (*models.Comment, error) {
	resp, err := s.client.Post(ctx, fmt.Sprintf("/videos/%d/comments", videoID), commentRequest{Text: text, ParentCommentID: parentID})
	if err != nil {
		return nil, err
	}

	var comment models.Comment
	if err := resp.Decode(&comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// Comments retrieves top-level comments for a video, newest first.
func (s *SocialService) Comments(ctx context.Context, videoID int64, page, size int) (*models.Page[models.Comment], error) {
	if size <= 0 {
		size = 10
	}

	resp, err := s.client.GetQuery(ctx, fmt.Sprintf("/videos/%d/comments", videoID), pageParams(page, size, "createdAt,desc"))
	if err != nil {
		return nil, err
	}

	var result models.Page[models.Comment]
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Replies retrieves replies to a parent comment, oldest first.
func (s *SocialService) Replies(ctx context.Context, parentCommentID int64, page, size int) (*models.Page[models.Comment], error) {
	if size <= 0 {
		size = 5
	}

	resp, err := s.client.GetQuery(ctx, fmt.Sprintf("/comments/%d/replies", parentCommentID), pageParams(page, size, "createdAt,asc"))
	if err != nil {
		return nil, err
	}

	var result models.Page[models.Comment]
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateComment edits an existing comment's text.
func (s *SocialService) UpdateComment(ctx context.Context, commentID int64, text string) (*models.Comment, error) {
	resp, err := s.client.Put(ctx, fmt.Sprintf("/comments/%d", commentID), map[string]string{"text": text})
	if err != nil {
		return nil, err
	}

	var comment models.Comment
	if err := resp.Decode(&comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment.
func (s *SocialService) DeleteComment(ctx context.Context, commentID int64) error {
	_, err := s.client.Delete(ctx, fmt.Sprintf("/comments/%d", commentID))
	return err
}

type ratingRequest struct {
	RatingValue int `json:"ratingValue"`
}

// Rate adds or updates the caller's rating (1-5) for a video.
func (s *SocialService) Rate(ctx context.Context, videoID int64, value int) error {
	if value < 1 || value > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", value)
	}
	_, err := s.client.Put(ctx, fmt.Sprintf("/videos/%d/ratings", videoID), ratingRequest{RatingValue: value})
	return err
}

// MyRating retrieves the caller's rating for a video.
func (s *SocialService) MyRating(ctx context.Context, videoID int64) (*models.Rating, error) {
	resp, err := s.client.Get(ctx, fmt.Sprintf("/videos/%d/ratings/my-rating", videoID))
	if err != nil {
		return nil, err
	}

	var rating models.Rating
	if err := resp.Decode(&rating); err != nil {
		return nil, err
	}
	return &rating, nil
}

// RatingSummary retrieves the average rating and count for a video.
func (s *SocialService) RatingSummary(ctx context.Context, videoID int64) (*models.RatingSummary, error) {
	resp, err := s.client.Get(ctx, fmt.Sprintf("/videos/%d/ratings/summary", videoID))
	if err != nil {
		return nil, err
	}

	var summary models.RatingSummary
	if err := resp.Decode(&summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// DeleteRating removes the caller's rating for a video.
func (s *SocialService) DeleteRating(ctx context.Context, videoID int64) error {
	_, err := s.client.Delete(ctx, fmt.Sprintf("/videos/%d/ratings", videoID))
	return err
}
