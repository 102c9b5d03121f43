package tasks

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/player"
	"github.com/desertthunder/mixtape/internal/shared"
)

type mockCatalog struct {
	name          string
	searchResults map[string][]*models.Track
	searchErr     error
	searchCalls   []string
}

func (m *mockCatalog) Name() string {
	return m.name
}

func (m *mockCatalog) Authenticate(ctx context.Context) error {
	return nil
}

func (m *mockCatalog) SearchTracks(ctx context.Context, query string) ([]*models.Track, error) {
	m.searchCalls = append(m.searchCalls, query)
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if tracks, ok := m.searchResults[query]; ok {
		return tracks, nil
	}
	return nil, nil
}

func (m *mockCatalog) Stream(ctx context.Context, trackID string) (player.Handle, error) {
	return nil, fmt.Errorf("%w: mock catalog does not stream", shared.ErrStreamUnavailable)
}

func TestParseQueryLines(t *testing.T) {
	content := "daft punk around the world\n\n# a comment\n  boards of canada roygbiv  \n"

	queries := ParseQueryLines(content)

	if len(queries) != 2 {
		t.Fatalf("expected 2 queries, got %d: %v", len(queries), queries)
	}
	if queries[0] != "daft punk around the world" {
		t.Errorf("unexpected first query: %q", queries[0])
	}
	if queries[1] != "boards of canada roygbiv" {
		t.Errorf("whitespace should be trimmed, got %q", queries[1])
	}
}

func TestPlaylistEngine_ImportFromQueries(t *testing.T) {
	tests := []struct {
		name        string
		queries     []string
		catalog     *mockCatalog
		opts        ImportOpts
		wantErr     bool
		wantSuccess int
		wantFailed  int
	}{
		{
			name:    "all queries matched",
			queries: []string{"query a", "query b"},
			catalog: &mockCatalog{
				name: "streambox",
				searchResults: map[string][]*models.Track{
					"query a": {{ID: "a1", Title: "A", Artist: "Alpha"}},
					"query b": {{ID: "b1", Title: "B", Artist: "Beta"}, {ID: "b2", Title: "B2", Artist: "Beta"}},
				},
			},
			opts:        ImportOpts{Title: "Imported", RateLimit: 1000},
			wantSuccess: 2,
			wantFailed:  0,
		},
		{
			name:    "partial matches keep the matched tracks",
			queries: []string{"query a", "nothing here"},
			catalog: &mockCatalog{
				name: "streambox",
				searchResults: map[string][]*models.Track{
					"query a": {{ID: "a1", Title: "A", Artist: "Alpha"}},
				},
			},
			opts:        ImportOpts{Title: "Imported", RateLimit: 1000},
			wantSuccess: 1,
			wantFailed:  1,
		},
		{
			name:        "no matches is an error",
			queries:     []string{"nothing here"},
			catalog:     &mockCatalog{name: "streambox"},
			opts:        ImportOpts{Title: "Imported", RateLimit: 1000},
			wantErr:     true,
			wantSuccess: 0,
			wantFailed:  1,
		},
		{
			name:        "search errors count as failures",
			queries:     []string{"query a"},
			catalog:     &mockCatalog{name: "streambox", searchErr: errors.New("upstream down")},
			opts:        ImportOpts{Title: "Imported", RateLimit: 1000},
			wantErr:     true,
			wantSuccess: 0,
			wantFailed:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewPlaylistEngine(tt.catalog)
			progress := make(chan ProgressUpdate, 32)

			result, err := engine.ImportFromQueries(context.Background(), progress, tt.queries, tt.opts)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if result.SuccessCount != tt.wantSuccess {
				t.Errorf("SuccessCount = %d, want %d", result.SuccessCount, tt.wantSuccess)
			}
			if result.FailedCount != tt.wantFailed {
				t.Errorf("FailedCount = %d, want %d", result.FailedCount, tt.wantFailed)
			}

			if !tt.wantErr {
				if result.Playlist == nil {
					t.Fatal("expected a populated playlist")
				}
				if result.Playlist.Title() != tt.opts.Title {
					t.Errorf("playlist title = %q, want %q", result.Playlist.Title(), tt.opts.Title)
				}
				if result.Playlist.TrackCount() != tt.wantSuccess {
					t.Errorf("playlist has %d tracks, want %d", result.Playlist.TrackCount(), tt.wantSuccess)
				}
			}

			if len(tt.catalog.searchCalls) != len(tt.queries) {
				t.Errorf("expected %d searches, got %d", len(tt.queries), len(tt.catalog.searchCalls))
			}
		})
	}
}

func TestPlaylistEngine_ImportFromQueries_Duplicates(t *testing.T) {
	catalog := &mockCatalog{
		name: "streambox",
		searchResults: map[string][]*models.Track{
			"around the world":           {{ID: "a1", Title: "Around the World", Artist: "Daft Punk"}},
			"daft punk around the world": {{ID: "a2", Title: "  Around  The World ", Artist: "DAFT PUNK"}},
		},
	}
	engine := NewPlaylistEngine(catalog)

	result, err := engine.ImportFromQueries(context.Background(), nil, []string{"around the world", "daft punk around the world"}, ImportOpts{Title: "X", RateLimit: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.SuccessCount != 2 {
		t.Errorf("SuccessCount = %d, want 2", result.SuccessCount)
	}
	if result.Playlist.TrackCount() != 1 {
		t.Errorf("playlist has %d tracks, want 1 after deduplication", result.Playlist.TrackCount())
	}
}

func TestPlaylistEngine_ImportFromQueries_Validation(t *testing.T) {
	t.Run("nil catalog", func(t *testing.T) {
		engine := NewPlaylistEngine(nil)
		_, err := engine.ImportFromQueries(context.Background(), nil, []string{"q"}, ImportOpts{Title: "X"})
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("missing title", func(t *testing.T) {
		engine := NewPlaylistEngine(&mockCatalog{name: "streambox"})
		_, err := engine.ImportFromQueries(context.Background(), nil, []string{"q"}, ImportOpts{})
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("cancelled context stops the run", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		engine := NewPlaylistEngine(&mockCatalog{name: "streambox"})
		_, err := engine.ImportFromQueries(ctx, nil, []string{"q"}, ImportOpts{Title: "X", RateLimit: 0.001})
		if err == nil {
			t.Error("expected error from cancelled context")
		}
	})
}

func TestPlaylistEngine_ImportFromQueries_Progress(t *testing.T) {
	catalog := &mockCatalog{
		name: "streambox",
		searchResults: map[string][]*models.Track{
			"query a": {{ID: "a1", Title: "A", Artist: "Alpha"}},
		},
	}
	engine := NewPlaylistEngine(catalog)
	progress := make(chan ProgressUpdate, 32)

	if _, err := engine.ImportFromQueries(context.Background(), progress, []string{"query a"}, ImportOpts{Title: "X", RateLimit: 1000}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	close(progress)

	var phases []Phase
	for update := range progress {
		phases = append(phases, update.Phase)
	}

	if len(phases) == 0 {
		t.Fatal("expected progress updates")
	}
	if phases[0] != SearchTracks {
		t.Errorf("first phase = %s, want %s", phases[0], SearchTracks)
	}
	if phases[len(phases)-1] != BuildPlaylist {
		t.Errorf("last phase = %s, want %s", phases[len(phases)-1], BuildPlaylist)
	}
}
