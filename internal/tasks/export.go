package tasks

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cloudflix/flixctl/internal/formatter"
)

// ExportOpts contains configuration for cache exports.
type ExportOpts struct {
	Format    string // Export format: csv, markdown, txt
	OutputDir string // Base output directory (default: flix_export_{epoch})
}

// ExportResult summarizes an export run.
type ExportResult struct {
	OutputDirectory string
	Files           []string
	HistoryEntries  int
	Videos          int
}

// Export writes the cached watch history and catalog to files in the
// requested format. Either dataset being empty skips its file rather than
// failing the run.
func (e *SyncEngine) Export(progress chan<- ProgressUpdate, opts ExportOpts) (*ExportResult, error) {
	if opts.Format == "" {
		opts.Format = formatter.FormatCSV
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("flix_export_%d", time.Now().Unix())
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &ExportResult{OutputDirectory: opts.OutputDir}
	ext := formatter.Extension(opts.Format)

	entries, err := e.entries.List()
	if err != nil {
		return nil, fmt.Errorf("failed to read cached history: %w", err)
	}
	if len(entries) > 0 {
		data, err := formatter.HistoryTo(opts.Format, entries)
		if err != nil {
			e.sendProgress(progress, exportFailedUpdate(1, 2, "history", err))
			return nil, err
		}

		path := filepath.Join(opts.OutputDir, "history"+ext)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write history export: %w", err)
		}

		result.Files = append(result.Files, path)
		result.HistoryEntries = len(entries)
		e.sendProgress(progress, exportCompletedUpdate(1, 2, path))
	}

	videos, err := e.videos.List()
	if err != nil {
		return nil, fmt.Errorf("failed to read cached catalog: %w", err)
	}
	if len(videos) > 0 {
		data, err := formatter.VideosTo(opts.Format, videos)
		if err != nil {
			e.sendProgress(progress, exportFailedUpdate(2, 2, "catalog", err))
			return nil, err
		}

		path := filepath.Join(opts.OutputDir, "catalog"+ext)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write catalog export: %w", err)
		}

		result.Files = append(result.Files, path)
		result.Videos = len(videos)
		e.sendProgress(progress, exportCompletedUpdate(2, 2, path))
	}

	return result, nil
}
