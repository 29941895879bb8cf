package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchHistory Phase = iota
	FetchCatalog
	FetchVideoDetails
	WriteCache
	ExportFiles
)

func (p Phase) String() string {
	switch p {
	case FetchHistory:
		return "fetch_history"
	case FetchCatalog:
		return "fetch_catalog"
	case FetchVideoDetails:
		return "fetch_video_details"
	case WriteCache:
		return "write_cache"
	case ExportFiles:
		return "export_files"
	default:
		return ""
	}
}

func fetchHistoryUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchHistory,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching watch history page %d/%d...", step, total),
	}
}

func fetchCatalogUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchCatalog,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching catalog page %d/%d...", step, total),
	}
}

func fetchVideoDetailsUpdate(step, total int, title string) ProgressUpdate {
	if title == "" {
		return ProgressUpdate{
			Phase:   FetchVideoDetails,
			Step:    step,
			Total:   total,
			Message: "Fetching video details...",
		}
	}
	return ProgressUpdate{
		Phase:   FetchVideoDetails,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, title),
	}
}

func writeCacheUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteCache,
		Step:    step,
		Total:   total,
		Message: "Writing entries to the local cache...",
	}
}

func exportCompletedUpdate(step, total int, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportFiles,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, path),
	}
}

func exportFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportFiles,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}
