package tasks

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cloudflix/flixctl/internal/models"
)

func syncedEngine(t *testing.T) *SyncEngine {
	t.Helper()

	history := &fakeHistoryAPI{pages: [][]models.HistoryEntry{
		{{ID: 1, VideoID: 10, VideoTitle: "Dune", ResumePositionSeconds: 120, WatchedAt: "2026-08-30T20:00:00Z"}},
	}}
	catalog := &fakeCatalogAPI{pages: [][]models.Video{
		{{ID: 10, Title: "Dune", Genre: "Sci-Fi", DurationSeconds: 9000}},
	}}

	engine := newTestEngine(t, history, catalog)
	if _, err := engine.SyncHistory(context.Background(), nil, SyncOpts{RateLimit: 1000}); err != nil {
		t.Fatalf("history sync failed: %v", err)
	}
	if _, err := engine.SyncCatalog(context.Background(), nil, SyncOpts{RateLimit: 1000}); err != nil {
		t.Fatalf("catalog sync failed: %v", err)
	}
	return engine
}

func TestExport(t *testing.T) {
	t.Run("writes history and catalog files", func(t *testing.T) {
		engine := syncedEngine(t)
		outputDir := filepath.Join(t.TempDir(), "export")

		result, err := engine.Export(nil, ExportOpts{Format: "csv", OutputDir: outputDir})
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}

		if result.HistoryEntries != 1 || result.Videos != 1 {
			t.Errorf("unexpected counts: %+v", result)
		}
		if len(result.Files) != 2 {
			t.Fatalf("expected 2 files, got %v", result.Files)
		}

		historyData, err := os.ReadFile(filepath.Join(outputDir, "history.csv"))
		if err != nil {
			t.Fatalf("history file missing: %v", err)
		}
		if !strings.Contains(string(historyData), "Dune") {
			t.Errorf("history export missing data: %s", historyData)
		}

		catalogData, err := os.ReadFile(filepath.Join(outputDir, "catalog.csv"))
		if err != nil {
			t.Fatalf("catalog file missing: %v", err)
		}
		if !strings.Contains(string(catalogData), "Sci-Fi") {
			t.Errorf("catalog export missing data: %s", catalogData)
		}
	})

	t.Run("markdown format uses the md extension", func(t *testing.T) {
		engine := syncedEngine(t)
		outputDir := filepath.Join(t.TempDir(), "export")

		result, err := engine.Export(nil, ExportOpts{Format: "markdown", OutputDir: outputDir})
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}

		for _, file := range result.Files {
			if !strings.HasSuffix(file, ".md") {
				t.Errorf("expected .md extension, got %s", file)
			}
		}
	})

	t.Run("empty cache skips files instead of failing", func(t *testing.T) {
		engine := newTestEngine(t, &fakeHistoryAPI{}, &fakeCatalogAPI{})
		outputDir := filepath.Join(t.TempDir(), "export")

		result, err := engine.Export(nil, ExportOpts{Format: "csv", OutputDir: outputDir})
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}
		if len(result.Files) != 0 {
			t.Errorf("expected no files, got %v", result.Files)
		}
	})

	t.Run("unknown format fails", func(t *testing.T) {
		engine := syncedEngine(t)

		if _, err := engine.Export(nil, ExportOpts{Format: "yaml", OutputDir: t.TempDir()}); err == nil {
			t.Error("expected an error for an unsupported format")
		}
	})
}
