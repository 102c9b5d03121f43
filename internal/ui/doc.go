// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for playlist management:
//  1. [PlaylistListView] : Browse, create, and delete playlists
//  2. [TrackListView] : Reorder, remove, and play tracks
//  3. [SearchView] : Enter a catalog search query
//  4. [ResultsView] : Pick a search result to add to the focused playlist
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via typed message structs.
// The model subscribes to playlist notification slots and keeps the returned disposers, releasing them when focus moves to another playlist.
// An undo hint in the footer comes from the history stack's next record description.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, /, u, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
