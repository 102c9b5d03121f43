// package services defines interface Catalog for the external streaming
// service: public track search and playable stream handles.
package services

import (
	"context"

	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/player"
)

// Catalog is the streaming/search collaborator the core consumes. Both
// operations are black boxes to the caller: no retry or timeout handling
// beyond the context.
type Catalog interface {
	// Authenticate obtains API credentials for subsequent requests.
	// Returns an error if authentication fails.
	Authenticate(ctx context.Context) error

	// SearchTracks retrieves public tracks matching the query.
	SearchTracks(ctx context.Context, query string) ([]*models.Track, error)

	// Stream obtains a playable handle for a track id. A failed fetch is
	// reported as an error with no handle delivered.
	Stream(ctx context.Context, trackID string) (player.Handle, error)

	// Name returns the name of the catalog service.
	Name() string
}
