package models

import (
	"fmt"
	"slices"

	"github.com/desertthunder/mixtape/internal/shared"
)

// TrackMove describes a reorder within a playlist's track sequence.
type TrackMove struct {
	From int
	To   int
}

// Playlist is one user playlist: a title, a description, and an ordered track
// sequence. Insertion order is playback and display order; the sequence has no
// uniqueness constraint. A playlist is owned exclusively by one [Set].
type Playlist struct {
	id          string
	title       string
	description string
	tracks      []*Track

	// Notification hooks. Each fires at most one callback, synchronously,
	// inside the mutator. TracksChanging is the exception to the
	// after-mutation rule: it fires before any change to the track sequence
	// so a player can stop itself while its indices are still valid.
	TitleChanged       Hook[string]
	DescriptionChanged Hook[string]
	TrackAdded         Hook[*Track]
	TrackDeleted       Hook[*Track]
	TrackMoved         Hook[TrackMove]
	TracksChanging     Hook[struct{}]

	owner *Set
}

// NewPlaylist creates an unowned playlist with a generated ID. It only becomes
// part of the model graph once added to a [Set].
func NewPlaylist(title, description string) *Playlist {
	return &Playlist{
		id:          shared.GenerateID(),
		title:       title,
		description: description,
	}
}

// RestorePlaylist rebuilds a playlist from persisted snapshot values, keeping
// its original ID. Notification hooks are left unset.
func RestorePlaylist(id, title, description string, tracks []*Track) *Playlist {
	return &Playlist{
		id:          id,
		title:       title,
		description: description,
		tracks:      slices.Clone(tracks),
	}
}

// ID returns the playlist's stable identifier.
func (p *Playlist) ID() string { return p.id }

// Title returns the playlist's title.
func (p *Playlist) Title() string { return p.title }

// Description returns the playlist's description.
func (p *Playlist) Description() string { return p.description }

// Tracks returns a copy of the track sequence in playback order.
func (p *Playlist) Tracks() []*Track {
	return slices.Clone(p.tracks)
}

// TrackCount returns the number of playlist positions (duplicates included).
func (p *Playlist) TrackCount() int { return len(p.tracks) }

// TrackAt returns the track at position i, or nil when i is out of range.
func (p *Playlist) TrackAt(i int) *Track {
	if i < 0 || i >= len(p.tracks) {
		return nil
	}
	return p.tracks[i]
}

// SetTitle replaces the playlist title.
func (p *Playlist) SetTitle(title string) {
	old := p.title
	p.title = title

	p.TitleChanged.emit(title)
	p.log(fmt.Sprintf("rename %q to %q", old, title), func() { p.SetTitle(old) })
	p.save()
}

// SetDescription replaces the playlist description.
func (p *Playlist) SetDescription(description string) {
	old := p.description
	p.description = description

	p.DescriptionChanged.emit(description)
	p.log(fmt.Sprintf("edit description of %q", p.title), func() { p.SetDescription(old) })
	p.save()
}

// AddTrack appends a track to the playlist. The same track may be added more
// than once; each call occupies a new position.
func (p *Playlist) AddTrack(t *Track) {
	p.TracksChanging.emit(struct{}{})
	p.tracks = append(p.tracks, t)

	p.TrackAdded.emit(t)
	p.log(fmt.Sprintf("add %s to %q", t.Label(), p.title), func() { _ = p.DeleteTrack(t) })
	p.save()
}

// DeleteTrack removes the first position holding t, matched by identity.
// Returns [shared.ErrTrackNotFound] when the playlist holds no such track; the
// failed call mutates nothing and logs nothing.
//
// The logged inverse re-appends the track at the end of the sequence, not at
// its original position.
func (p *Playlist) DeleteTrack(t *Track) error {
	idx := slices.Index(p.tracks, t)
	if idx < 0 {
		return fmt.Errorf("%w: %s", shared.ErrTrackNotFound, t.Label())
	}

	p.TracksChanging.emit(struct{}{})
	p.tracks = slices.Delete(p.tracks, idx, idx+1)

	p.TrackDeleted.emit(t)
	p.log(fmt.Sprintf("remove %s from %q", t.Label(), p.title), func() { p.AddTrack(t) })
	p.save()
	return nil
}

// MoveTrack removes the track at from and re-inserts it at to. Both positions
// address the sequence before the move. Returns [shared.ErrInvalidPosition]
// when either index is out of range.
func (p *Playlist) MoveTrack(from, to int) error {
	if from < 0 || from >= len(p.tracks) {
		return fmt.Errorf("%w: from=%d", shared.ErrInvalidPosition, from)
	}
	if to < 0 || to >= len(p.tracks) {
		return fmt.Errorf("%w: to=%d", shared.ErrInvalidPosition, to)
	}

	p.TracksChanging.emit(struct{}{})
	t := p.tracks[from]
	p.tracks = slices.Delete(p.tracks, from, from+1)
	p.tracks = slices.Insert(p.tracks, to, t)

	p.TrackMoved.emit(TrackMove{From: from, To: to})
	p.log(fmt.Sprintf("move %s in %q", t.Label(), p.title), func() { _ = p.MoveTrack(to, from) })
	p.save()
	return nil
}

// ClearHooks empties every notification slot. A view that stops observing the
// playlist must call this (or dispose each subscription) to avoid retaining
// the discarded observer.
func (p *Playlist) ClearHooks() {
	p.TitleChanged.Clear()
	p.DescriptionChanged.Clear()
	p.TrackAdded.Clear()
	p.TrackDeleted.Clear()
	p.TrackMoved.Clear()
	p.TracksChanging.Clear()
}

func (p *Playlist) log(description string, revert func()) {
	if p.owner != nil {
		p.owner.log(description, revert)
	}
}

func (p *Playlist) save() {
	if p.owner != nil {
		p.owner.save()
	}
}
