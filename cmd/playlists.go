package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/shared"
	"github.com/urfave/cli/v3"
)

// playlistRow is the JSON shape for list output.
type playlistRow struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	TrackCount  int    `json:"track_count"`
}

func playlistRows(playlists []*models.Playlist) []playlistRow {
	rows := make([]playlistRow, 0, len(playlists))
	for _, p := range playlists {
		rows = append(rows, playlistRow{
			ID:          p.ID(),
			Title:       p.Title(),
			Description: p.Description(),
			TrackCount:  p.TrackCount(),
		})
	}
	return rows
}

// List prints every playlist in the collection.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	playlists := sess.set.Playlists()
	if cmd.Bool("json") {
		return r.writeJSON(playlistRows(playlists), cmd.Bool("pretty"))
	}

	if len(playlists) == 0 {
		return r.writePlain("No playlists yet. Create one with 'mixtape create'.\n")
	}
	for _, p := range playlists {
		line := fmt.Sprintf("%s  %s (%d tracks)", p.ID(), p.Title(), p.TrackCount())
		if p.Description() != "" {
			line = fmt.Sprintf("%s - %s", line, p.Description())
		}
		r.writePlain("%s\n", line)
	}
	return nil
}

// Create adds a playlist, generating an unused title when none is given.
func (r *Runner) Create(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	title := cmd.StringArg("title")
	if title == "" {
		if title, err = sess.set.UniqueTitle(); err != nil {
			return fmt.Errorf("failed to generate playlist title: %w", err)
		}
	}

	p := models.NewPlaylist(title, cmd.String("description"))
	sess.set.AddPlaylist(p)

	r.logger.Info("playlist created", "id", p.ID(), "title", p.Title())
	return r.writePlain("✓ Created playlist %q (%s)\n", p.Title(), p.ID())
}

// Delete removes a playlist by ID or title.
func (r *Runner) Delete(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	p, err := findPlaylist(sess.set, cmd.StringArg("playlist"))
	if err != nil {
		return err
	}
	if err := sess.set.DeletePlaylist(p); err != nil {
		return err
	}

	return r.writePlain("✓ Deleted playlist %q\n", p.Title())
}

// Rename retitles a playlist.
func (r *Runner) Rename(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	title := cmd.StringArg("title")
	if title == "" {
		return fmt.Errorf("%w: new title required", shared.ErrMissingArgument)
	}

	p, err := findPlaylist(sess.set, cmd.StringArg("playlist"))
	if err != nil {
		return err
	}

	previous := p.Title()
	p.SetTitle(title)
	return r.writePlain("✓ Renamed %q to %q\n", previous, title)
}

// Describe replaces a playlist's description.
func (r *Runner) Describe(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	p, err := findPlaylist(sess.set, cmd.StringArg("playlist"))
	if err != nil {
		return err
	}

	p.SetDescription(cmd.StringArg("description"))
	return r.writePlain("✓ Updated description for %q\n", p.Title())
}

// Undo restores the collection snapshot taken before the last edit. The
// in-memory history stack only lives for one process, so cross-invocation
// undo goes through the snapshot store instead.
func (r *Runner) Undo(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	restored := models.NewSet(sess.set.History(), nil)
	if err := sess.sink.RestorePrevious(restored); err != nil {
		if errors.Is(err, shared.ErrSnapshotNotFound) {
			return r.writePlain("Nothing to undo.\n")
		}
		return err
	}

	return r.writePlain("✓ Reverted to the previous state (%d playlists)\n", restored.Len())
}
