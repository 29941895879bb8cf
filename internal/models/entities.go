package models

import (
	"fmt"
	"time"
)

// base carries the lifecycle fields shared by all persistent entities.
type base struct {
	id        string
	sequence  int
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

func (b *base) ID() string                 { return b.id }
func (b *base) Sequence() int              { return b.sequence }
func (b *base) CreatedAt() time.Time       { return b.createdAt }
func (b *base) UpdatedAt() time.Time       { return b.updatedAt }
func (b *base) DeletedAt() *time.Time      { return b.deletedAt }
func (b *base) SetID(id string)            { b.id = id }
func (b *base) SetUpdatedAt(t time.Time)   { b.updatedAt = t }
func (b *base) SetDeletedAt(t *time.Time)  { b.deletedAt = t }
func (b *base) SetCreatedAt(t time.Time)   { b.createdAt = t }

// CachedVideo is a locally cached catalog entry, keyed by the remote video ID.
type CachedVideo struct {
	base
	remoteID        int64
	title           string
	genre           string
	durationSeconds int
	thumbnailURL    string
}

// NewCachedVideo creates a cache row for a remote catalog entry.
func NewCachedVideo(sequence int, remoteID int64, title, genre string, durationSeconds int, thumbnailURL string) *CachedVideo {
	now := time.Now()
	return &CachedVideo{
		base:            base{sequence: sequence, createdAt: now, updatedAt: now},
		remoteID:        remoteID,
		title:           title,
		genre:           genre,
		durationSeconds: durationSeconds,
		thumbnailURL:    thumbnailURL,
	}
}

func (v *CachedVideo) RemoteID() int64      { return v.remoteID }
func (v *CachedVideo) Title() string        { return v.title }
func (v *CachedVideo) Genre() string        { return v.genre }
func (v *CachedVideo) DurationSeconds() int { return v.durationSeconds }
func (v *CachedVideo) ThumbnailURL() string { return v.thumbnailURL }

func (v *CachedVideo) Validate() error {
	if v.remoteID <= 0 {
		return fmt.Errorf("cached video requires a remote ID")
	}
	if v.title == "" {
		return fmt.Errorf("cached video requires a title")
	}
	return nil
}

// WatchEntry is a locally cached watch-history row, keyed by the remote entry ID.
type WatchEntry struct {
	base
	remoteID              int64
	videoID               int64
	videoTitle            string
	resumePositionSeconds int
	completed             bool
	watchedAt             string
}

// NewWatchEntry creates a cache row for a remote history entry.
func NewWatchEntry(sequence int, remoteID, videoID int64, videoTitle string, resumePositionSeconds int, completed bool, watchedAt string) *WatchEntry {
	now := time.Now()
	return &WatchEntry{
		base:                  base{sequence: sequence, createdAt: now, updatedAt: now},
		remoteID:              remoteID,
		videoID:               videoID,
		videoTitle:            videoTitle,
		resumePositionSeconds: resumePositionSeconds,
		completed:             completed,
		watchedAt:             watchedAt,
	}
}

func (w *WatchEntry) RemoteID() int64            { return w.remoteID }
func (w *WatchEntry) VideoID() int64             { return w.videoID }
func (w *WatchEntry) VideoTitle() string         { return w.videoTitle }
func (w *WatchEntry) ResumePositionSeconds() int { return w.resumePositionSeconds }
func (w *WatchEntry) Completed() bool            { return w.completed }
func (w *WatchEntry) WatchedAt() string          { return w.watchedAt }

func (w *WatchEntry) SetProgress(resumePositionSeconds int, completed bool) {
	w.resumePositionSeconds = resumePositionSeconds
	w.completed = completed
}

func (w *WatchEntry) Validate() error {
	if w.remoteID <= 0 {
		return fmt.Errorf("watch entry requires a remote ID")
	}
	if w.videoID <= 0 {
		return fmt.Errorf("watch entry requires a video ID")
	}
	if w.resumePositionSeconds < 0 {
		return fmt.Errorf("resume position cannot be negative")
	}
	return nil
}
