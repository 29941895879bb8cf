package services

import (
	"context"
	"fmt"

	"github.com/cloudflix/flixctl/internal/api"
	"github.com/cloudflix/flixctl/internal/models"
)

const historyPath = "/history"

// HistoryService records and queries watch history for the current user.
type HistoryService struct {
	client *api.Client
}

// NewHistoryService creates a history service over the request pipeline.
func NewHistoryService(client *api.Client) *HistoryService {
	return &HistoryService{client: client}
}

// RecordProgress reports the current playback position for a video.
func (s *HistoryService) RecordProgress(ctx context.Context, videoID int64, progress models.WatchProgress) error {
	_, err := s.client.Put(ctx, fmt.Sprintf("%s/video/%d", historyPath, videoID), progress)
	return err
}

// UserHistory retrieves the caller's watch history, most recent first.
func (s *HistoryService) UserHistory(ctx context.Context, page, size int) (*models.Page[models.HistoryEntry], error) {
	if size <= 0 {
		size = 12
	}

	resp, err := s.client.GetQuery(ctx, historyPath+"/user", pageParams(page, size, "watchedAt,desc"))
	if err != nil {
		return nil, err
	}

	var result models.Page[models.HistoryEntry]
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Progress retrieves the resume state for one video.
func (s *HistoryService) Progress(ctx context.Context, videoID int64) (*models.WatchProgress, error) {
	resp, err := s.client.Get(ctx, fmt.Sprintf("%s/video/%d/progress", historyPath, videoID))
	if err != nil {
		return nil, err
	}

	var progress models.WatchProgress
	if err := resp.Decode(&progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

// MarkCompleted flags a video as fully watched.
func (s *HistoryService) MarkCompleted(ctx context.Context, videoID int64) error {
	_, err := s.client.Post(ctx, fmt.Sprintf("%s/video/%d/complete", historyPath, videoID), nil)
	return err
}

// DeleteEntry removes a single watch-history entry.
func (s *HistoryService) DeleteEntry(ctx context.Context, entryID int64) error {
	_, err := s.client.Delete(ctx, fmt.Sprintf("%s/%d", historyPath, entryID))
	return err
}

// ClearAll removes the caller's entire watch history.
func (s *HistoryService) ClearAll(ctx context.Context) error {
	_, err := s.client.Delete(ctx, historyPath+"/user/clear")
	return err
}
