package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/desertthunder/mixtape/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search queries the catalog and prints the results.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query required", shared.ErrMissingArgument)
	}
	if r.catalog == nil {
		return fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}

	if err := r.catalog.Authenticate(ctx); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	tracks, err := r.catalog.SearchTracks(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, cmd.Bool("pretty"))
	}

	if len(tracks) == 0 {
		return r.writePlain("No tracks found for %q\n", query)
	}
	for i, t := range tracks {
		r.writePlain("%2d. %s [%s] %s\n", i+1, t.Label(), shared.FormatDuration(t.Duration), t.ID)
	}
	return nil
}

// Add searches the catalog and appends the first match to a playlist.
func (r *Runner) Add(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query required", shared.ErrMissingArgument)
	}
	if r.catalog == nil {
		return fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}

	sess, err := r.openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	p, err := findPlaylist(sess.set, cmd.StringArg("playlist"))
	if err != nil {
		return err
	}

	if err := r.catalog.Authenticate(ctx); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	tracks, err := r.catalog.SearchTracks(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(tracks) == 0 {
		return fmt.Errorf("%w: no match for %q", shared.ErrTrackNotFound, query)
	}

	track := tracks[0]
	p.AddTrack(track)

	r.logger.Info("track added", "playlist", p.Title(), "track", track.Label())
	return r.writePlain("✓ Added %s to %q (position %d)\n", track.Label(), p.Title(), p.TrackCount())
}

// Remove deletes the track at a 1-based position.
func (r *Runner) Remove(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	p, err := findPlaylist(sess.set, cmd.StringArg("playlist"))
	if err != nil {
		return err
	}

	position, err := parsePosition(cmd.StringArg("position"))
	if err != nil {
		return err
	}
	track := p.TrackAt(position - 1)
	if track == nil {
		return fmt.Errorf("%w: position %d in %q (%d tracks)", shared.ErrInvalidPosition, position, p.Title(), p.TrackCount())
	}

	if err := p.DeleteTrack(track); err != nil {
		return err
	}
	return r.writePlain("✓ Removed %s from %q\n", track.Label(), p.Title())
}

// Move reorders a track between 1-based positions.
func (r *Runner) Move(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	p, err := findPlaylist(sess.set, cmd.StringArg("playlist"))
	if err != nil {
		return err
	}

	from, err := parsePosition(cmd.StringArg("from"))
	if err != nil {
		return err
	}
	to, err := parsePosition(cmd.StringArg("to"))
	if err != nil {
		return err
	}

	if err := p.MoveTrack(from-1, to-1); err != nil {
		return err
	}
	return r.writePlain("✓ Moved track %d to %d in %q\n", from, to, p.Title())
}

// parsePosition parses a 1-based track position argument.
func parsePosition(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: position %q is not a number", shared.ErrInvalidArgument, arg)
	}
	return n, nil
}
