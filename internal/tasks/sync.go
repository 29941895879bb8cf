// package tasks implements long-running client operations: mirroring watch
// history and catalog pages into the local SQLite cache, and exporting the
// cache to files.
//
// Operations emit progress updates via channels for non-blocking status
// reporting to CLI/UI layers, and pace their API calls with a rate limiter
// so a full sync stays polite to the server.
package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudflix/flixctl/internal/models"
	"github.com/cloudflix/flixctl/internal/repositories"
	"github.com/cloudflix/flixctl/internal/shared"
	"golang.org/x/time/rate"
)

// HistoryAPI is the slice of the history service the engine needs.
type HistoryAPI interface {
	UserHistory(ctx context.Context, page, size int) (*models.Page[models.HistoryEntry], error)
}

// CatalogAPI is the slice of the video service the engine needs.
type CatalogAPI interface {
	List(ctx context.Context, page, size int, sort string) (*models.Page[models.Video], error)
	Get(ctx context.Context, videoID int64) (*models.Video, error)
}

// SyncOpts contains configuration for cache sync runs.
type SyncOpts struct {
	PageSize     int     // Entries per API page (default 20)
	NumWorkers   int     // Concurrent video-detail fetchers (default 4, max 8)
	RateLimit    float64 // Requests per second (default 5)
	FetchDetails bool    // Also fetch and cache per-video metadata
}

// SyncResult summarizes one sync run.
type SyncResult struct {
	HistoryEntries int     // History rows written to the cache
	VideosCached   int     // Video rows written to the cache
	FailedDetails  []int64 // Video IDs whose detail fetch failed
}

// SyncEngine mirrors remote state into the local cache.
type SyncEngine struct {
	history HistoryAPI
	catalog CatalogAPI
	videos  *repositories.VideoRepository
	entries *repositories.WatchEntryRepository
}

// NewSyncEngine creates a SyncEngine over the given services and repositories.
func NewSyncEngine(history HistoryAPI, catalog CatalogAPI, videos *repositories.VideoRepository, entries *repositories.WatchEntryRepository) *SyncEngine {
	return &SyncEngine{
		history: history,
		catalog: catalog,
		videos:  videos,
		entries: entries,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *SyncEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func normalizeOpts(opts *SyncOpts) {
	if opts.PageSize <= 0 {
		opts.PageSize = 20
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}
}

// SyncHistory pages through the user's watch history and mirrors it into the
// cache. With FetchDetails set, a bounded worker pool also fetches each
// referenced video's metadata.
func (e *SyncEngine) SyncHistory(ctx context.Context, progress chan<- ProgressUpdate, opts SyncOpts) (*SyncResult, error) {
	if e.history == nil {
		return nil, fmt.Errorf("%w: history service not initialized", shared.ErrServiceUnavailable)
	}

	normalizeOpts(&opts)
	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	result := &SyncResult{}

	videoIDs := make(map[int64]string)
	page := 0
	totalPages := 1

	for page < totalPages {
		if err := limiter.Wait(ctx); err != nil {
			return result, err
		}

		e.sendProgress(progress, fetchHistoryUpdate(page+1, totalPages))

		entries, err := e.history.UserHistory(ctx, page, opts.PageSize)
		if err != nil {
			return result, fmt.Errorf("%w: failed to fetch history page %d: %v", shared.ErrAPIRequest, page, err)
		}

		totalPages = entries.TotalPages
		if totalPages == 0 {
			break
		}

		e.sendProgress(progress, writeCacheUpdate(page+1, totalPages))
		for _, entry := range entries.Content {
			if err := e.entries.Upsert(entry.ID, entry.VideoID, entry.VideoTitle, entry.ResumePositionSeconds, entry.Completed, entry.WatchedAt); err != nil {
				return result, fmt.Errorf("failed to cache history entry %d: %w", entry.ID, err)
			}
			result.HistoryEntries++
			videoIDs[entry.VideoID] = entry.VideoTitle
		}

		page++
	}

	if opts.FetchDetails && len(videoIDs) > 0 {
		cached, failed := e.fetchVideoDetails(ctx, progress, limiter, opts.NumWorkers, videoIDs)
		result.VideosCached = cached
		result.FailedDetails = failed
	}

	return result, nil
}

// SyncCatalog pages through the available catalog and mirrors it into the cache.
func (e *SyncEngine) SyncCatalog(ctx context.Context, progress chan<- ProgressUpdate, opts SyncOpts) (*SyncResult, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: video service not initialized", shared.ErrServiceUnavailable)
	}

	normalizeOpts(&opts)
	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	result := &SyncResult{}

	page := 0
	totalPages := 1

	for page < totalPages {
		if err := limiter.Wait(ctx); err != nil {
			return result, err
		}

		e.sendProgress(progress, fetchCatalogUpdate(page+1, totalPages))

		videos, err := e.catalog.List(ctx, page, opts.PageSize, "")
		if err != nil {
			return result, fmt.Errorf("%w: failed to fetch catalog page %d: %v", shared.ErrAPIRequest, page, err)
		}

		totalPages = videos.TotalPages
		if totalPages == 0 {
			break
		}

		e.sendProgress(progress, writeCacheUpdate(page+1, totalPages))
		for _, video := range videos.Content {
			if err := e.videos.Upsert(video.ID, video.Title, video.Genre, video.DurationSeconds, video.ThumbnailURL); err != nil {
				return result, fmt.Errorf("failed to cache video %d: %w", video.ID, err)
			}
			result.VideosCached++
		}

		page++
	}

	return result, nil
}

type detailResult struct {
	videoID int64
	video   *models.Video
	err     error
}

// fetchVideoDetails runs a bounded worker pool over the given video IDs,
// caching each fetched record. Partial failures are collected, not fatal.
func (e *SyncEngine) fetchVideoDetails(ctx context.Context, progress chan<- ProgressUpdate, limiter *rate.Limiter, numWorkers int, videoIDs map[int64]string) (int, []int64) {
	jobs := make(chan int64, len(videoIDs))
	results := make(chan detailResult, len(videoIDs))

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for videoID := range jobs {
				if err := limiter.Wait(ctx); err != nil {
					results <- detailResult{videoID: videoID, err: err}
					continue
				}
				video, err := e.catalog.Get(ctx, videoID)
				results <- detailResult{videoID: videoID, video: video, err: err}
			}
		}()
	}

	for videoID := range videoIDs {
		jobs <- videoID
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	total := len(videoIDs)
	step := 0
	cached := 0
	var failed []int64

	for res := range results {
		step++
		if res.err != nil {
			failed = append(failed, res.videoID)
			e.sendProgress(progress, fetchVideoDetailsUpdate(step, total, ""))
			continue
		}

		if err := e.videos.Upsert(res.video.ID, res.video.Title, res.video.Genre, res.video.DurationSeconds, res.video.ThumbnailURL); err != nil {
			failed = append(failed, res.videoID)
			continue
		}

		cached++
		e.sendProgress(progress, fetchVideoDetailsUpdate(step, total, res.video.Title))
	}

	return cached, failed
}
