package models

import (
	"fmt"
	"slices"

	"github.com/desertthunder/mixtape/internal/history"
	"github.com/desertthunder/mixtape/internal/shared"
)

// uniqueTitleLimit bounds the numbers tried by [Set.UniqueTitle].
const uniqueTitleLimit = 1000

// Persister stores a full snapshot of the collection. Mutators call it at the
// end of every accepted mutation; implementations log failures rather than
// surface them, a snapshot overwrite either lands or the next one will.
type Persister interface {
	Save(*Set)
}

// Set is the collection of a user's playlists. It owns every contained
// playlist exclusively and is the single instance of its kind per application
// context.
type Set struct {
	playlists []*Playlist
	history   *history.Stack
	persister Persister

	PlaylistAdded   Hook[*Playlist]
	PlaylistDeleted Hook[*Playlist]
	// Restored fires once after the collection is repopulated from a snapshot.
	Restored Hook[struct{}]
}

// NewSet creates an empty collection wired to the given undo stack and
// persister. persister may be nil for collections that never touch storage
// (tests, dry runs).
func NewSet(hist *history.Stack, persister Persister) *Set {
	return &Set{history: hist, persister: persister}
}

// History exposes the undo stack the collection logs to.
func (s *Set) History() *history.Stack { return s.history }

// Playlists returns a copy of the playlist sequence in display order.
func (s *Set) Playlists() []*Playlist {
	return slices.Clone(s.playlists)
}

// Len returns the number of playlists.
func (s *Set) Len() int { return len(s.playlists) }

// Find returns the playlist with the given ID, or nil.
func (s *Set) Find(id string) *Playlist {
	for _, p := range s.playlists {
		if p.id == id {
			return p
		}
	}
	return nil
}

// FindByTitle returns the first playlist with the given title, or nil.
func (s *Set) FindByTitle(title string) *Playlist {
	for _, p := range s.playlists {
		if p.title == title {
			return p
		}
	}
	return nil
}

// AddPlaylist appends p to the collection and takes ownership of it.
func (s *Set) AddPlaylist(p *Playlist) {
	s.playlists = append(s.playlists, p)
	p.owner = s

	s.PlaylistAdded.emit(p)
	s.log(fmt.Sprintf("create playlist %q", p.title), func() { _ = s.DeletePlaylist(p) })
	s.save()
}

// DeletePlaylist removes p, matched by identity. Returns
// [shared.ErrPlaylistNotFound] when p is not part of the collection.
//
// The logged inverse re-appends the playlist at the end of the collection,
// not at its original position.
func (s *Set) DeletePlaylist(p *Playlist) error {
	idx := slices.Index(s.playlists, p)
	if idx < 0 {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, p.title)
	}

	s.playlists = slices.Delete(s.playlists, idx, idx+1)
	p.owner = nil

	s.PlaylistDeleted.emit(p)
	s.log(fmt.Sprintf("delete playlist %q", p.title), func() { s.AddPlaylist(p) })
	s.save()
	return nil
}

// UniqueTitle returns "Playlist N" for the smallest N not used by any playlist
// in the collection. Returns [shared.ErrTitlesExhausted] when every candidate
// below the limit is taken.
func (s *Set) UniqueTitle() (string, error) {
	taken := make(map[string]bool, len(s.playlists))
	for _, p := range s.playlists {
		taken[p.title] = true
	}

	for n := 1; n < uniqueTitleLimit; n++ {
		title := fmt.Sprintf("Playlist %d", n)
		if !taken[title] {
			return title, nil
		}
	}

	return "", shared.ErrTitlesExhausted
}

// Restore replaces the collection's contents from a persisted snapshot without
// logging history or re-persisting. Hooks on restored playlists are unset.
func (s *Set) Restore(playlists []*Playlist) {
	s.playlists = slices.Clone(playlists)
	for _, p := range s.playlists {
		p.owner = s
	}

	s.Restored.emit(struct{}{})
}

// ClearHooks empties the collection's notification slots.
func (s *Set) ClearHooks() {
	s.PlaylistAdded.Clear()
	s.PlaylistDeleted.Clear()
	s.Restored.Clear()
}

func (s *Set) log(description string, revert func()) {
	if s.history != nil {
		s.history.Log(description, revert)
	}
}

func (s *Set) save() {
	if s.persister != nil {
		s.persister.Save(s)
	}
}
