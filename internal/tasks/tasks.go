package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/services"
	"github.com/desertthunder/mixtape/internal/shared"
	"golang.org/x/time/rate"
)

// QueryMatchResult represents the result of resolving a single search query.
type QueryMatchResult struct {
	Query   string        // Original query line
	Matched *models.Track // Matched track (nil if not found)
	Error   error         // Error if the search failed
}

// ImportRunResult contains all data from an import operation.
type ImportRunResult struct {
	Playlist        *models.Playlist   // Populated playlist, not yet owned by a set
	Matches         []QueryMatchResult // Individual query match results
	SuccessCount    int                // Number of queries that produced a track
	FailedCount     int                // Number of queries with no match
	TotalQueries    int                // Total queries processed
	MatchPercentage float64            // Success rate as percentage
}

// ImportOpts contains configuration for query-file imports.
type ImportOpts struct {
	Title     string  // Playlist title (required)
	RateLimit float64 // Searches per second (default: 5)
}

// Engine defines long-running playlist operations.
type Engine interface {
	// ImportFromQueries builds a playlist by searching the catalog once per query line.
	ImportFromQueries(ctx context.Context, progress chan<- ProgressUpdate, queries []string, opts ImportOpts) (*ImportRunResult, error)

	// BulkExport writes each playlist to a file in the requested format using a worker pool.
	BulkExport(ctx context.Context, progress chan<- ProgressUpdate, playlists []*models.Playlist, opts BulkExportOpts) (*BulkExportResult, error)
}

// PlaylistEngine implements Engine for playlist operations.
type PlaylistEngine struct {
	catalog services.Catalog
}

// NewPlaylistEngine creates a new PlaylistEngine backed by the provided catalog.
func NewPlaylistEngine(catalog services.Catalog) *PlaylistEngine {
	return &PlaylistEngine{catalog: catalog}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *PlaylistEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// ParseQueryLines splits raw query-file content into usable query lines.
// Blank lines and lines starting with '#' are skipped.
func ParseQueryLines(content string) []string {
	var queries []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	return queries
}

// ImportFromQueries builds a playlist from search queries, one catalog search per query.
// Queries resolving to the same track (by normalized title/artist) contribute a single entry.
//
// The returned playlist is fully populated but not attached to a set, so the
// caller can add it as a single undoable operation.
func (e *PlaylistEngine) ImportFromQueries(ctx context.Context, progress chan<- ProgressUpdate, queries []string, opts ImportOpts) (*ImportRunResult, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}
	if opts.Title == "" {
		return nil, fmt.Errorf("%w: playlist title required", shared.ErrMissingArgument)
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	total := len(queries)
	result := &ImportRunResult{
		TotalQueries: total,
		Matches:      make([]QueryMatchResult, 0, total),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	e.sendProgress(progress, searchTracksUpdate(0, total, ""))

	for i, query := range queries {
		if err := limiter.Wait(ctx); err != nil {
			return result, fmt.Errorf("import interrupted: %w", err)
		}

		e.sendProgress(progress, searchTracksUpdate(i+1, total, query))

		tracks, err := e.catalog.SearchTracks(ctx, query)
		match := QueryMatchResult{Query: query, Error: err}
		if err == nil && len(tracks) > 0 {
			match.Matched = tracks[0]
			result.SuccessCount++
		} else {
			result.FailedCount++
		}
		result.Matches = append(result.Matches, match)
	}

	if result.TotalQueries > 0 {
		result.MatchPercentage = float64(result.SuccessCount) / float64(result.TotalQueries) * 100
	}

	if result.SuccessCount == 0 {
		return result, fmt.Errorf("no queries matched - cannot create empty playlist")
	}

	e.sendProgress(progress, buildPlaylistUpdate(opts.Title, result.SuccessCount))

	playlist := models.NewPlaylist(opts.Title, fmt.Sprintf("Imported from %d queries", total))
	seen := make(map[string]bool, result.SuccessCount)
	for _, match := range result.Matches {
		if match.Matched == nil {
			continue
		}
		key := shared.NormalizeTrackKey(match.Matched.Title, match.Matched.Artist)
		if seen[key] {
			continue
		}
		seen[key] = true
		playlist.AddTrack(match.Matched)
	}

	result.Playlist = playlist
	e.sendProgress(progress, playlistBuiltUpdate(playlist))
	return result, nil
}
