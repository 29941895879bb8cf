package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cloudflix/flixctl/internal/models"
	"github.com/cloudflix/flixctl/internal/shared"
)

// VideoRepository implements [models.Repository] for cached catalog entries.
type VideoRepository struct {
	db *sql.DB
}

// NewVideoRepository creates a new [VideoRepository] with the given database connection
func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create inserts a new cached video with generated ID and sequence
func (r *VideoRepository) Create(video *models.CachedVideo) error {
	sequence, err := NextSequence(r.db, "videos")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	video.SetID(id)

	if err := video.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO videos (id, sequence, remote_id, title, genre, duration_seconds, thumbnail_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, id, sequence, video.RemoteID(), video.Title(), video.Genre(),
		video.DurationSeconds(), video.ThumbnailURL(), video.CreatedAt(), video.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert video: %w", err)
	}

	return nil
}

// Get retrieves a cached video by ID, excluding soft-deleted rows
func (r *VideoRepository) Get(id string) (*models.CachedVideo, error) {
	query := `
		SELECT id, sequence, remote_id, title, genre, duration_seconds, thumbnail_url, created_at, updated_at, deleted_at
		FROM videos
		WHERE id = ? AND deleted_at IS NULL
	`
	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByRemoteID retrieves a cached video by its remote catalog ID
func (r *VideoRepository) GetByRemoteID(remoteID int64) (*models.CachedVideo, error) {
	query := `
		SELECT id, sequence, remote_id, title, genre, duration_seconds, thumbnail_url, created_at, updated_at, deleted_at
		FROM videos
		WHERE remote_id = ? AND deleted_at IS NULL
	`
	return r.scanOne(r.db.QueryRow(query, remoteID))
}

// Update modifies an existing cached video
func (r *VideoRepository) Update(video *models.CachedVideo) error {
	if err := video.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	video.SetUpdatedAt(now)

	query := `
		UPDATE videos
		SET title = ?, genre = ?, duration_seconds = ?, thumbnail_url = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, video.Title(), video.Genre(), video.DurationSeconds(),
		video.ThumbnailURL(), now, video.ID())
	if err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("video not found: %s", video.ID())
	}

	return nil
}

// Delete soft-deletes a cached video by setting deleted_at
func (r *VideoRepository) Delete(id string) error {
	query := `UPDATE videos SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("video not found: %s", id)
	}

	return nil
}

// List returns all cached videos ordered by sequence
func (r *VideoRepository) List() ([]*models.CachedVideo, error) {
	query := `
		SELECT id, sequence, remote_id, title, genre, duration_seconds, thumbnail_url, created_at, updated_at, deleted_at
		FROM videos
		WHERE deleted_at IS NULL
		ORDER BY sequence
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	var videos []*models.CachedVideo
	for rows.Next() {
		video, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}

	return videos, rows.Err()
}

// Upsert creates the cache row for a remote video or refreshes the existing one
func (r *VideoRepository) Upsert(remoteID int64, title, genre string, durationSeconds int, thumbnailURL string) error {
	existing, err := r.GetByRemoteID(remoteID)
	if err != nil {
		video := models.NewCachedVideo(0, remoteID, title, genre, durationSeconds, thumbnailURL)
		return r.Create(video)
	}

	query := `
		UPDATE videos
		SET title = ?, genre = ?, duration_seconds = ?, thumbnail_url = ?, updated_at = ?
		WHERE id = ?
	`
	_, err = r.db.Exec(query, title, genre, durationSeconds, thumbnailURL, time.Now(), existing.ID())
	if err != nil {
		return fmt.Errorf("failed to refresh video: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *VideoRepository) scanOne(row *sql.Row) (*models.CachedVideo, error) {
	video, err := r.scanRow(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("video not found")
	}
	return video, err
}

func (r *VideoRepository) scanRow(row rowScanner) (*models.CachedVideo, error) {
	var (
		id              string
		sequence        int
		remoteID        int64
		title           string
		genre           sql.NullString
		durationSeconds int
		thumbnailURL    sql.NullString
		createdAt       time.Time
		updatedAt       time.Time
		deletedAt       sql.NullTime
	)

	err := row.Scan(&id, &sequence, &remoteID, &title, &genre, &durationSeconds, &thumbnailURL, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan video: %w", err)
	}

	video := models.NewCachedVideo(sequence, remoteID, title, genre.String, durationSeconds, thumbnailURL.String)
	video.SetID(id)
	video.SetCreatedAt(createdAt)
	video.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		video.SetDeletedAt(&deletedAt.Time)
	}

	return video, nil
}
