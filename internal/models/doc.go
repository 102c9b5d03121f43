// Package models defines the playlist domain: tracks, playlists, and the
// playlist collection, together with the change-notification and undo
// bookkeeping their mutators perform.
//
// The package contains three categories of types:
//
//  1. [Track] : An opaque catalog record. The core never mutates a track, it
//     only references it by identity; the same *Track may legitimately sit at
//     several positions of one playlist.
//  2. [Playlist] and [Set] : Mutable models. Every mutator follows one fixed
//     template: capture inverse state, mutate, fire the single relevant
//     notification hook, log the inverse operation to the undo stack, persist
//     the whole collection through a [Persister].
//  3. [Hook] : A single-subscriber callback slot. Each model exposes a fixed,
//     enumerated set of hooks; registering a new callback replaces the old one.
//
// Models are not safe for concurrent use. All mutations are expected to run on
// a single goroutine (the CLI or TUI event loop), mirroring a single-threaded
// host. Notification callbacks fire synchronously inside the mutator call.
package models
