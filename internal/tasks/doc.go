// Package tasks orchestrates long-running playlist operations with real-time progress reporting.
//
// # Core Operations
//
// The [Engine] interface defines two operations:
//
//  1. [Engine.ImportFromQueries] : Build a playlist from search queries
//     - Runs one catalog search per query through a rate limiter
//     - Collects the first match for each query into a new playlist
//     - Returns detailed results including failed matches
//
//  2. [Engine.BulkExport] : Export playlists to files concurrently
//     - Dispatches playlists to a worker pool
//     - Writes one file per playlist in the requested format
//     - Generates a manifest file summarizing the run
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Implementation
//
// [PlaylistEngine] implements [Engine] with a dependency on [services.Catalog]
// for track searches. Export operations work on in-memory playlists and need
// no catalog access.
package tasks
