package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mixtape/internal/models"
)

// searchResultsMsg carries the outcome of a catalog search.
type searchResultsMsg struct {
	query  string
	tracks []*models.Track
	err    error
}

// playbackTickMsg refreshes the status line while a track is streaming.
type playbackTickMsg time.Time

func playbackTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return playbackTickMsg(t)
	})
}
