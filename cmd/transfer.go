package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/mixtape/internal/formatter"
	"github.com/desertthunder/mixtape/internal/shared"
	"github.com/desertthunder/mixtape/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export writes one playlist, or the whole collection with --all, to disk.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	format := cmd.String("format")

	if cmd.Bool("all") {
		return r.exportAll(ctx, sess, format, cmd.String("output"))
	}

	ref := cmd.StringArg("playlist")
	if ref == "" {
		return fmt.Errorf("%w: playlist ID or title required (or use --all)", shared.ErrMissingArgument)
	}

	p, err := findPlaylist(sess.set, ref)
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if output == "" {
		output = fmt.Sprintf("%s.%s", p.ID(), formatter.Extension(format))
	}

	if err := formatter.WriteExport(p, format, output); err != nil {
		return err
	}
	return r.writePlain("✓ Exported %q to %s\n", p.Title(), output)
}

// exportAll runs the worker-pool export over every playlist, streaming
// progress lines as they arrive.
func (r *Runner) exportAll(ctx context.Context, sess *session, format, outputDir string) error {
	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := r.engine.BulkExport(ctx, progress, sess.set.Playlists(), tasks.BulkExportOpts{
		Format:    format,
		OutputDir: outputDir,
	})
	close(progress)
	<-done

	if err != nil {
		return err
	}

	r.writePlainln("Exported %d/%d playlists to %s", result.SuccessfulExports, result.TotalPlaylists, result.OutputDirectory)
	r.writePlain("Manifest: %s\n", result.ManifestPath)
	if result.FailedExports > 0 {
		r.writePlain("%d playlists failed, see the manifest for details\n", result.FailedExports)
	}
	return nil
}

// Import builds a playlist from a text file of search queries, one per line.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: query file required", shared.ErrMissingArgument)
	}
	if r.catalog == nil {
		return fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read query file: %w", err)
	}
	queries := tasks.ParseQueryLines(string(content))
	if len(queries) == 0 {
		return fmt.Errorf("%w: no queries in %s", shared.ErrInvalidInput, path)
	}

	sess, err := r.openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	if err := r.catalog.Authenticate(ctx); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := r.engine.ImportFromQueries(ctx, progress, queries, tasks.ImportOpts{
		Title:     cmd.String("title"),
		RateLimit: r.config.Catalog.RateLimit,
	})
	close(progress)
	<-done

	if err != nil {
		return err
	}

	sess.set.AddPlaylist(result.Playlist)

	r.writePlainln("✓ Imported %q: %d/%d queries matched (%.1f%%)",
		result.Playlist.Title(), result.SuccessCount, result.TotalQueries, result.MatchPercentage)
	for _, match := range result.Matches {
		if match.Matched == nil {
			r.writePlain("  ✗ %s\n", match.Query)
		}
	}
	return nil
}
