package models

import "fmt"

// Track is a catalog record referenced by playlists. The core treats tracks as
// immutable: fields are read on display and playback but never rewritten.
type Track struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	StreamURL string `json:"stream_url"`
	Duration  int    `json:"duration_seconds"`
}

// Label returns a short human-readable form used in undo descriptions and logs.
func (t *Track) Label() string {
	if t.Artist == "" {
		return t.Title
	}
	return fmt.Sprintf("%s • %s", t.Title, t.Artist)
}
