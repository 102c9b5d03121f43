package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/mixtape/internal/player"
	"github.com/desertthunder/mixtape/internal/shared"
	"github.com/urfave/cli/v3"
)

// Play streams a playlist from its first track, advancing until the end of
// the sequence or an interrupt.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
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
	if p.TrackCount() == 0 {
		return r.writePlain("Playlist %q is empty, nothing to play.\n", p.Title())
	}

	if err := r.catalog.Authenticate(ctx); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session := player.New(ctx, p, r.catalog, player.Opts{
		Preload: r.config.Player.Preload && !cmd.Bool("no-preload"),
		Logger:  r.logger,
		OnStall: func(err error) {
			r.writePlain("✗ playback stalled: %v\n", err)
		},
	})
	defer session.Close()

	r.writePlain("▶ Playing %q (%d tracks)\n", p.Title(), p.TrackCount())
	session.Play()

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	lastIndex := -1
	for {
		select {
		case <-ctx.Done():
			r.writePlain("Stopped.\n")
			return nil
		case <-ticker.C:
			if session.State() == player.Idle {
				r.writePlain("■ End of playlist.\n")
				return nil
			}
			if idx := session.Index(); idx != lastIndex {
				lastIndex = idx
				if track := p.TrackAt(idx); track != nil {
					r.writePlain("  %d/%d %s [%s]\n", idx+1, p.TrackCount(), track.Label(), shared.FormatDuration(track.Duration))
				}
			}
		}
	}
}
