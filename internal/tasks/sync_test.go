package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/cloudflix/flixctl/internal/models"
	"github.com/cloudflix/flixctl/internal/repositories"
	"github.com/cloudflix/flixctl/internal/shared"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// fakeHistoryAPI serves fixed pages of watch history.
type fakeHistoryAPI struct {
	pages [][]models.HistoryEntry
	err   error
}

func (f *fakeHistoryAPI) UserHistory(ctx context.Context, page, size int) (*models.Page[models.HistoryEntry], error) {
	if f.err != nil {
		return nil, f.err
	}
	if page >= len(f.pages) {
		return &models.Page[models.HistoryEntry]{TotalPages: len(f.pages)}, nil
	}
	return &models.Page[models.HistoryEntry]{
		Content:    f.pages[page],
		Number:     page,
		TotalPages: len(f.pages),
	}, nil
}

// fakeCatalogAPI serves fixed pages of videos plus per-ID details.
type fakeCatalogAPI struct {
	mu      sync.Mutex
	pages   [][]models.Video
	details map[int64]*models.Video
	failIDs map[int64]bool

	getCalls int
}

func (f *fakeCatalogAPI) List(ctx context.Context, page, size int, sort string) (*models.Page[models.Video], error) {
	if page >= len(f.pages) {
		return &models.Page[models.Video]{TotalPages: len(f.pages)}, nil
	}
	return &models.Page[models.Video]{
		Content:    f.pages[page],
		Number:     page,
		TotalPages: len(f.pages),
	}, nil
}

func (f *fakeCatalogAPI) Get(ctx context.Context, videoID int64) (*models.Video, error) {
	f.mu.Lock()
	f.getCalls++
	f.mu.Unlock()
	if f.failIDs[videoID] {
		return nil, fmt.Errorf("detail fetch failed for %d", videoID)
	}
	if video, ok := f.details[videoID]; ok {
		return video, nil
	}
	return nil, fmt.Errorf("unknown video %d", videoID)
}

func newTestEngine(t *testing.T, history HistoryAPI, catalog CatalogAPI) *SyncEngine {
	t.Helper()
	db := setupTestDB(t)
	return NewSyncEngine(history, catalog,
		repositories.NewVideoRepository(db),
		repositories.NewWatchEntryRepository(db))
}

func TestSyncHistory(t *testing.T) {
	t.Run("mirrors every page into the cache", func(t *testing.T) {
		history := &fakeHistoryAPI{pages: [][]models.HistoryEntry{
			{
				{ID: 1, VideoID: 10, VideoTitle: "First", ResumePositionSeconds: 5, WatchedAt: "2026-08-01T00:00:00Z"},
				{ID: 2, VideoID: 11, VideoTitle: "Second", Completed: true, WatchedAt: "2026-08-02T00:00:00Z"},
			},
			{
				{ID: 3, VideoID: 12, VideoTitle: "Third", WatchedAt: "2026-08-03T00:00:00Z"},
			},
		}}
		engine := newTestEngine(t, history, &fakeCatalogAPI{})

		result, err := engine.SyncHistory(context.Background(), nil, SyncOpts{RateLimit: 1000})
		if err != nil {
			t.Fatalf("sync failed: %v", err)
		}
		if result.HistoryEntries != 3 {
			t.Errorf("expected 3 entries, got %d", result.HistoryEntries)
		}

		entries, err := engine.entries.List()
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(entries) != 3 {
			t.Errorf("expected 3 cached rows, got %d", len(entries))
		}
	})

	t.Run("re-running refreshes instead of duplicating", func(t *testing.T) {
		history := &fakeHistoryAPI{pages: [][]models.HistoryEntry{
			{{ID: 1, VideoID: 10, VideoTitle: "First", ResumePositionSeconds: 5, WatchedAt: "2026-08-01T00:00:00Z"}},
		}}
		engine := newTestEngine(t, history, &fakeCatalogAPI{})

		if _, err := engine.SyncHistory(context.Background(), nil, SyncOpts{RateLimit: 1000}); err != nil {
			t.Fatalf("first sync failed: %v", err)
		}

		history.pages[0][0].ResumePositionSeconds = 99
		if _, err := engine.SyncHistory(context.Background(), nil, SyncOpts{RateLimit: 1000}); err != nil {
			t.Fatalf("second sync failed: %v", err)
		}

		entries, _ := engine.entries.List()
		if len(entries) != 1 {
			t.Fatalf("expected 1 row, got %d", len(entries))
		}
		if entries[0].ResumePositionSeconds() != 99 {
			t.Errorf("expected refreshed progress 99, got %d", entries[0].ResumePositionSeconds())
		}
	})

	t.Run("fetches video details with a worker pool", func(t *testing.T) {
		history := &fakeHistoryAPI{pages: [][]models.HistoryEntry{
			{
				{ID: 1, VideoID: 10, VideoTitle: "First", WatchedAt: "2026-08-01T00:00:00Z"},
				{ID: 2, VideoID: 11, VideoTitle: "Second", WatchedAt: "2026-08-02T00:00:00Z"},
			},
		}}
		catalog := &fakeCatalogAPI{
			details: map[int64]*models.Video{
				10: {ID: 10, Title: "First", Genre: "Drama", DurationSeconds: 100},
			},
			failIDs: map[int64]bool{11: true},
		}
		engine := newTestEngine(t, history, catalog)

		result, err := engine.SyncHistory(context.Background(), nil, SyncOpts{RateLimit: 1000, FetchDetails: true, NumWorkers: 2})
		if err != nil {
			t.Fatalf("sync failed: %v", err)
		}

		if result.VideosCached != 1 {
			t.Errorf("expected 1 cached video, got %d", result.VideosCached)
		}
		if len(result.FailedDetails) != 1 || result.FailedDetails[0] != 11 {
			t.Errorf("expected video 11 in failures, got %v", result.FailedDetails)
		}
		if catalog.getCalls != 2 {
			t.Errorf("expected 2 detail fetches, got %d", catalog.getCalls)
		}

		videos, _ := engine.videos.List()
		if len(videos) != 1 || videos[0].RemoteID() != 10 {
			t.Errorf("expected video 10 cached, got %v", videos)
		}
	})

	t.Run("progress updates never block", func(t *testing.T) {
		history := &fakeHistoryAPI{pages: [][]models.HistoryEntry{
			{{ID: 1, VideoID: 10, VideoTitle: "First", WatchedAt: "2026-08-01T00:00:00Z"}},
		}}
		engine := newTestEngine(t, history, &fakeCatalogAPI{})

		// Unbuffered channel with no reader; sends must be dropped, not deadlock.
		progress := make(chan ProgressUpdate)
		if _, err := engine.SyncHistory(context.Background(), progress, SyncOpts{RateLimit: 1000}); err != nil {
			t.Fatalf("sync failed: %v", err)
		}
	})

	t.Run("propagates fetch failures", func(t *testing.T) {
		history := &fakeHistoryAPI{err: errors.New("boom")}
		engine := newTestEngine(t, history, &fakeCatalogAPI{})

		if _, err := engine.SyncHistory(context.Background(), nil, SyncOpts{RateLimit: 1000}); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("nil history service is rejected", func(t *testing.T) {
		engine := newTestEngine(t, nil, &fakeCatalogAPI{})

		if _, err := engine.SyncHistory(context.Background(), nil, SyncOpts{}); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestSyncCatalog(t *testing.T) {
	t.Run("mirrors catalog pages", func(t *testing.T) {
		catalog := &fakeCatalogAPI{pages: [][]models.Video{
			{
				{ID: 10, Title: "First", Genre: "Drama", DurationSeconds: 100},
				{ID: 11, Title: "Second", Genre: "Comedy", DurationSeconds: 200},
			},
		}}
		engine := newTestEngine(t, &fakeHistoryAPI{}, catalog)

		result, err := engine.SyncCatalog(context.Background(), nil, SyncOpts{RateLimit: 1000})
		if err != nil {
			t.Fatalf("sync failed: %v", err)
		}
		if result.VideosCached != 2 {
			t.Errorf("expected 2 videos, got %d", result.VideosCached)
		}

		videos, _ := engine.videos.List()
		if len(videos) != 2 {
			t.Errorf("expected 2 cached rows, got %d", len(videos))
		}
	})

	t.Run("empty catalog is not an error", func(t *testing.T) {
		engine := newTestEngine(t, &fakeHistoryAPI{}, &fakeCatalogAPI{})

		result, err := engine.SyncCatalog(context.Background(), nil, SyncOpts{RateLimit: 1000})
		if err != nil {
			t.Fatalf("sync failed: %v", err)
		}
		if result.VideosCached != 0 {
			t.Errorf("expected 0 videos, got %d", result.VideosCached)
		}
	})

	t.Run("nil catalog service is rejected", func(t *testing.T) {
		engine := newTestEngine(t, &fakeHistoryAPI{}, nil)

		if _, err := engine.SyncCatalog(context.Background(), nil, SyncOpts{}); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestNormalizeOpts(t *testing.T) {
	opts := SyncOpts{}
	normalizeOpts(&opts)

	if opts.PageSize != 20 || opts.NumWorkers != 4 || opts.RateLimit != 5.0 {
		t.Errorf("unexpected defaults: %+v", opts)
	}

	capped := SyncOpts{NumWorkers: 50}
	normalizeOpts(&capped)
	if capped.NumWorkers != 8 {
		t.Errorf("expected worker cap of 8, got %d", capped.NumWorkers)
	}
}
