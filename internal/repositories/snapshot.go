package repositories

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/shared"
)

// SnapshotKey is the fixed key the playlist collection is stored under.
// PrevSnapshotKey holds the value SnapshotKey had before the latest save,
// giving CLI invocations one level of cross-process undo.
const (
	SnapshotKey     = "playlists"
	PrevSnapshotKey = "playlists.prev"
)

var _ models.Persister = (*PlaylistSink)(nil)

// PlaylistSink implements [models.Persister] over a [SnapshotStore]: every
// save serializes the entire collection to one JSON value. Save failures are
// logged and swallowed; a mutation never fails because a snapshot did.
type PlaylistSink struct {
	store  *SnapshotStore
	logger *log.Logger
}

// NewPlaylistSink creates a PlaylistSink writing through store.
func NewPlaylistSink(store *SnapshotStore, logger *log.Logger) *PlaylistSink {
	if logger == nil {
		logger = log.Default()
	}
	return &PlaylistSink{store: store, logger: logger}
}

// trackSnapshot mirrors [models.Track] in the persisted JSON.
type trackSnapshot struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	StreamURL string `json:"stream_url"`
	Duration  int    `json:"duration_seconds"`
}

type playlistSnapshot struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Tracks      []trackSnapshot `json:"tracks"`
}

type setSnapshot struct {
	Playlists []playlistSnapshot `json:"playlists"`
}

// Save writes the whole collection under [SnapshotKey].
func (k *PlaylistSink) Save(set *models.Set) {
	snap := setSnapshot{Playlists: make([]playlistSnapshot, 0, set.Len())}

	for _, p := range set.Playlists() {
		ps := playlistSnapshot{
			ID:          p.ID(),
			Title:       p.Title(),
			Description: p.Description(),
			Tracks:      make([]trackSnapshot, 0, p.TrackCount()),
		}
		for _, t := range p.Tracks() {
			ps.Tracks = append(ps.Tracks, trackSnapshot{
				ID:        t.ID,
				Title:     t.Title,
				Artist:    t.Artist,
				StreamURL: t.StreamURL,
				Duration:  t.Duration,
			})
		}
		snap.Playlists = append(snap.Playlists, ps)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		k.logger.Error("failed to serialize playlist snapshot", "error", err)
		return
	}

	if prev, found, err := k.store.Get(SnapshotKey); err == nil && found {
		if err := k.store.Put(PrevSnapshotKey, prev); err != nil {
			k.logger.Error("failed to rotate previous snapshot", "error", err)
		}
	}

	if err := k.store.Put(SnapshotKey, string(data)); err != nil {
		k.logger.Error("failed to persist playlist snapshot", "error", err)
	}
}

// Restore repopulates set from the stored snapshot. A missing snapshot leaves
// the collection empty, which is the first-run case, not an error. Restored
// tracks are opaque records; notification hooks come back unset.
func (k *PlaylistSink) Restore(set *models.Set) error {
	value, found, err := k.store.Get(SnapshotKey)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	if !found {
		return nil
	}
	return k.restoreValue(set, value)
}

// RestorePrevious swaps the current and previous snapshots and repopulates set
// from what was the previous one. Running it twice toggles back. Returns
// [shared.ErrSnapshotNotFound] when no previous snapshot exists.
func (k *PlaylistSink) RestorePrevious(set *models.Set) error {
	prev, found, err := k.store.Get(PrevSnapshotKey)
	if err != nil {
		return fmt.Errorf("failed to load previous snapshot: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: no previous snapshot", shared.ErrSnapshotNotFound)
	}

	current, haveCurrent, err := k.store.Get(SnapshotKey)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	if err := k.store.Put(SnapshotKey, prev); err != nil {
		return fmt.Errorf("failed to persist playlist snapshot: %w", err)
	}
	if haveCurrent {
		if err := k.store.Put(PrevSnapshotKey, current); err != nil {
			return fmt.Errorf("failed to rotate previous snapshot: %w", err)
		}
	}

	return k.restoreValue(set, prev)
}

func (k *PlaylistSink) restoreValue(set *models.Set, value string) error {
	var snap setSnapshot
	if err := json.Unmarshal([]byte(value), &snap); err != nil {
		return fmt.Errorf("failed to decode snapshot: %w", err)
	}

	playlists := make([]*models.Playlist, 0, len(snap.Playlists))
	for _, ps := range snap.Playlists {
		tracks := make([]*models.Track, 0, len(ps.Tracks))
		for _, ts := range ps.Tracks {
			tracks = append(tracks, &models.Track{
				ID:        ts.ID,
				Title:     ts.Title,
				Artist:    ts.Artist,
				StreamURL: ts.StreamURL,
				Duration:  ts.Duration,
			})
		}
		playlists = append(playlists, models.RestorePlaylist(ps.ID, ps.Title, ps.Description, tracks))
	}

	set.Restore(playlists)
	return nil
}
