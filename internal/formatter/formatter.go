// package formatter provides functions to export cached catalog and
// watch-history data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/cloudflix/flixctl/internal/models"
)

// Supported export formats.
const (
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "txt"
)

// HistoryTo renders watch entries in the named format.
func HistoryTo(format string, entries []*models.WatchEntry) ([]byte, error) {
	switch format {
	case FormatCSV:
		return HistoryToCSV(entries)
	case FormatMarkdown:
		return HistoryToMarkdown(entries)
	case FormatText:
		return HistoryToText(entries)
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// VideosTo renders cached videos in the named format.
func VideosTo(format string, videos []*models.CachedVideo) ([]byte, error) {
	switch format {
	case FormatCSV:
		return VideosToCSV(videos)
	case FormatMarkdown:
		return VideosToMarkdown(videos)
	case FormatText:
		return VideosToText(videos)
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// HistoryToCSV converts watch entries to CSV with columns: VideoID, Title, Resume, Completed, WatchedAt
func HistoryToCSV(entries []*models.WatchEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"VideoID", "Title", "ResumeSeconds", "Completed", "WatchedAt"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range entries {
		record := []string{
			strconv.FormatInt(entry.VideoID(), 10),
			entry.VideoTitle(),
			strconv.Itoa(entry.ResumePositionSeconds()),
			strconv.FormatBool(entry.Completed()),
			entry.WatchedAt(),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// HistoryToMarkdown converts watch entries to a Markdown table
func HistoryToMarkdown(entries []*models.WatchEntry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Watch History\n\n")
	buf.WriteString(fmt.Sprintf("%d entries\n\n", len(entries)))
	buf.WriteString("| Video | Resume | Completed | Watched At |\n")
	buf.WriteString("|-------|--------|-----------|------------|\n")

	for _, entry := range entries {
		buf.WriteString(fmt.Sprintf("| %s | %s | %v | %s |\n",
			entry.VideoTitle(), formatDuration(entry.ResumePositionSeconds()), entry.Completed(), entry.WatchedAt()))
	}

	return buf.Bytes(), nil
}

// HistoryToText converts watch entries to aligned plain text
func HistoryToText(entries []*models.WatchEntry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Watch History (%d entries)\n\n", len(entries)))

	for i, entry := range entries {
		status := " "
		if entry.Completed() {
			status = "✓"
		}
		buf.WriteString(fmt.Sprintf("%3d. [%s] %s (%s) %s\n",
			i+1, status, entry.VideoTitle(), formatDuration(entry.ResumePositionSeconds()), entry.WatchedAt()))
	}

	return buf.Bytes(), nil
}

// VideosToCSV converts cached videos to CSV with columns: ID, Title, Genre, Duration
func VideosToCSV(videos []*models.CachedVideo) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Genre", "DurationSeconds"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, video := range videos {
		record := []string{
			strconv.FormatInt(video.RemoteID(), 10),
			video.Title(),
			video.Genre(),
			strconv.Itoa(video.DurationSeconds()),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// VideosToMarkdown converts cached videos to a Markdown table
func VideosToMarkdown(videos []*models.CachedVideo) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Catalog\n\n")
	buf.WriteString(fmt.Sprintf("%d videos\n\n", len(videos)))
	buf.WriteString("| Title | Genre | Duration |\n")
	buf.WriteString("|-------|-------|----------|\n")

	for _, video := range videos {
		buf.WriteString(fmt.Sprintf("| %s | %s | %s |\n",
			video.Title(), video.Genre(), formatDuration(video.DurationSeconds())))
	}

	return buf.Bytes(), nil
}

// VideosToText converts cached videos to aligned plain text
func VideosToText(videos []*models.CachedVideo) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Catalog (%d videos)\n\n", len(videos)))

	for i, video := range videos {
		buf.WriteString(fmt.Sprintf("%3d. %s | %s (%s)\n",
			i+1, video.Title(), video.Genre(), formatDuration(video.DurationSeconds())))
	}

	return buf.Bytes(), nil
}

// Extension returns the file extension for the named format.
func Extension(format string) string {
	switch format {
	case FormatMarkdown:
		return ".md"
	case FormatText:
		return ".txt"
	default:
		return "." + format
	}
}

func formatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
