package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"github.com/cloudflix/flixctl/internal/models"
)

// videoItem adapts a catalog entry to [list.Item].
type videoItem struct {
	video models.Video
}

func (i videoItem) Title() string { return i.video.Title }

func (i videoItem) Description() string {
	if i.video.Genre == "" {
		return formatRuntime(i.video.DurationSeconds)
	}
	return fmt.Sprintf("%s · %s", i.video.Genre, formatRuntime(i.video.DurationSeconds))
}

func (i videoItem) FilterValue() string { return i.video.Title }

// historyItem adapts a watch-history row to [list.Item].
type historyItem struct {
	entry models.HistoryEntry
}

func (i historyItem) Title() string { return i.entry.VideoTitle }

func (i historyItem) Description() string {
	if i.entry.Completed {
		return fmt.Sprintf("watched %s", i.entry.WatchedAt)
	}
	return fmt.Sprintf("resume at %s", formatRuntime(i.entry.ResumePositionSeconds))
}

func (i historyItem) FilterValue() string { return i.entry.VideoTitle }

func newListModel(title string, width, height int) list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), width, height)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = lipgloss.NewStyle().Bold(true)
	return l
}

func videoItems(videos []models.Video) []list.Item {
	items := make([]list.Item, 0, len(videos))
	for _, v := range videos {
		items = append(items, videoItem{video: v})
	}
	return items
}

func historyItems(entries []models.HistoryEntry) []list.Item {
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, historyItem{entry: e})
	}
	return items
}

func formatRuntime(seconds int) string {
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
