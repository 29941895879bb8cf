package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cloudflix/flixctl/internal/models"
	"github.com/cloudflix/flixctl/internal/shared"
)

// WatchEntryRepository implements [models.Repository] for cached watch-history rows.
type WatchEntryRepository struct {
	db *sql.DB
}

// NewWatchEntryRepository creates a new [WatchEntryRepository] with the given database connection
func NewWatchEntryRepository(db *sql.DB) *WatchEntryRepository {
	return &WatchEntryRepository{db: db}
}

// Create inserts a new watch entry with generated ID and sequence
func (r *WatchEntryRepository) Create(entry *models.WatchEntry) error {
	sequence, err := NextSequence(r.db, "watch_entries")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	entry.SetID(id)

	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO watch_entries (id, sequence, remote_id, video_id, video_title, resume_position_seconds, completed, watched_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, id, sequence, entry.RemoteID(), entry.VideoID(), entry.VideoTitle(),
		entry.ResumePositionSeconds(), entry.Completed(), entry.WatchedAt(), entry.CreatedAt(), entry.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert watch entry: %w", err)
	}

	return nil
}

// Get retrieves a watch entry by ID, excluding soft-deleted rows
func (r *WatchEntryRepository) Get(id string) (*models.WatchEntry, error) {
	query := `
		SELECT id, sequence, remote_id, video_id, video_title, resume_position_seconds, completed, watched_at, created_at, updated_at, deleted_at
		FROM watch_entries
		WHERE id = ? AND deleted_at IS NULL
	`

	entry, err := r.scanRow(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("watch entry not found: %s", id)
	}
	return entry, err
}

// GetByRemoteID retrieves a watch entry by its remote history ID
func (r *WatchEntryRepository) GetByRemoteID(remoteID int64) (*models.WatchEntry, error) {
	query := `
		SELECT id, sequence, remote_id, video_id, video_title, resume_position_seconds, completed, watched_at, created_at, updated_at, deleted_at
		FROM watch_entries
		WHERE remote_id = ? AND deleted_at IS NULL
	`

	entry, err := r.scanRow(r.db.QueryRow(query, remoteID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("watch entry not found: remote %d", remoteID)
	}
	return entry, err
}

// Update modifies an existing watch entry
func (r *WatchEntryRepository) Update(entry *models.WatchEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	entry.SetUpdatedAt(now)

	query := `
		UPDATE watch_entries
		SET video_title = ?, resume_position_seconds = ?, completed = ?, watched_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, entry.VideoTitle(), entry.ResumePositionSeconds(), entry.Completed(),
		entry.WatchedAt(), now, entry.ID())
	if err != nil {
		return fmt.Errorf("failed to update watch entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("watch entry not found: %s", entry.ID())
	}

	return nil
}

// Delete soft-deletes a watch entry by setting deleted_at
func (r *WatchEntryRepository) Delete(id string) error {
	query := `UPDATE watch_entries SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete watch entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("watch entry not found: %s", id)
	}

	return nil
}

// DeleteAll soft-deletes every cached watch entry
func (r *WatchEntryRepository) DeleteAll() error {
	_, err := r.db.Exec(`UPDATE watch_entries SET deleted_at = ? WHERE deleted_at IS NULL`, time.Now())
	if err != nil {
		return fmt.Errorf("failed to clear watch entries: %w", err)
	}
	return nil
}

// List returns all watch entries ordered by watched_at descending
func (r *WatchEntryRepository) List() ([]*models.WatchEntry, error) {
	query := `
		SELECT id, sequence, remote_id, video_id, video_title, resume_position_seconds, completed, watched_at, created_at, updated_at, deleted_at
		FROM watch_entries
		WHERE deleted_at IS NULL
		ORDER BY watched_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query watch entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.WatchEntry
	for rows.Next() {
		entry, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Upsert creates the cache row for a remote history entry or refreshes the existing one
func (r *WatchEntryRepository) Upsert(remoteID, videoID int64, videoTitle string, resumePositionSeconds int, completed bool, watchedAt string) error {
	existing, err := r.GetByRemoteID(remoteID)
	if err != nil {
		entry := models.NewWatchEntry(0, remoteID, videoID, videoTitle, resumePositionSeconds, completed, watchedAt)
		return r.Create(entry)
	}

	existing.SetProgress(resumePositionSeconds, completed)
	query := `
		UPDATE watch_entries
		SET video_title = ?, resume_position_seconds = ?, completed = ?, watched_at = ?, updated_at = ?
		WHERE id = ?
	`
	_, err = r.db.Exec(query, videoTitle, resumePositionSeconds, completed, watchedAt, time.Now(), existing.ID())
	if err != nil {
		return fmt.Errorf("failed to refresh watch entry: %w", err)
	}
	return nil
}

func (r *WatchEntryRepository) scanRow(row rowScanner) (*models.WatchEntry, error) {
	var (
		id                    string
		sequence              int
		remoteID              int64
		videoID               int64
		videoTitle            sql.NullString
		resumePositionSeconds int
		completed             bool
		watchedAt             sql.NullString
		createdAt             time.Time
		updatedAt             time.Time
		deletedAt             sql.NullTime
	)

	err := row.Scan(&id, &sequence, &remoteID, &videoID, &videoTitle, &resumePositionSeconds, &completed, &watchedAt, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan watch entry: %w", err)
	}

	entry := models.NewWatchEntry(sequence, remoteID, videoID, videoTitle.String, resumePositionSeconds, completed, watchedAt.String)
	entry.SetID(id)
	entry.SetCreatedAt(createdAt)
	entry.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		entry.SetDeletedAt(&deletedAt.Time)
	}

	return entry, nil
}
