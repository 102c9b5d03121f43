package models

import (
	"errors"
	"testing"

	"github.com/desertthunder/mixtape/internal/history"
	"github.com/desertthunder/mixtape/internal/shared"
)

// countingPersister records how many snapshots were requested.
type countingPersister struct {
	saves int
}

func (c *countingPersister) Save(*Set) { c.saves++ }

// newTestPlaylist returns a playlist owned by a fresh set, plus the set's
// collaborators for assertions.
func newTestPlaylist(t *testing.T) (*Playlist, *history.Stack, *countingPersister) {
	t.Helper()

	hist := history.New(50)
	persister := &countingPersister{}
	set := NewSet(hist, persister)

	p := NewPlaylist("Road Trip", "windows down")
	set.AddPlaylist(p)
	persister.saves = 0

	return p, hist, persister
}

func track(id, title string) *Track {
	return &Track{ID: id, Title: title, Artist: "Tester", Duration: 180}
}

func TestPlaylistMutators(t *testing.T) {
	t.Run("SetTitle Notifies Logs Persists", func(t *testing.T) {
		p, hist, persister := newTestPlaylist(t)
		depth := hist.Len()

		var notified string
		p.TitleChanged.Subscribe(func(title string) { notified = title })

		p.SetTitle("Night Drive")

		if p.Title() != "Night Drive" {
			t.Errorf("expected title Night Drive, got %s", p.Title())
		}
		if notified != "Night Drive" {
			t.Errorf("expected notification with new title, got %q", notified)
		}
		if hist.Len() != depth+1 {
			t.Errorf("expected one new history record, depth went %d to %d", depth, hist.Len())
		}
		if persister.saves == 0 {
			t.Error("expected a snapshot save after mutation")
		}
	})

	t.Run("SetTitle Undo", func(t *testing.T) {
		p, hist, _ := newTestPlaylist(t)

		p.SetTitle("Night Drive")
		hist.Undo()

		if p.Title() != "Road Trip" {
			t.Errorf("expected title restored to Road Trip, got %s", p.Title())
		}
	})

	t.Run("SetDescription Undo", func(t *testing.T) {
		p, hist, _ := newTestPlaylist(t)

		p.SetDescription("rain on the windshield")
		hist.Undo()

		if p.Description() != "windows down" {
			t.Errorf("expected description restored, got %s", p.Description())
		}
	})

	t.Run("AddTrack Then Undo", func(t *testing.T) {
		p, hist, _ := newTestPlaylist(t)
		t1 := track("t1", "First")
		t2 := track("t2", "Second")

		p.AddTrack(t1)
		p.AddTrack(t2)
		hist.Undo()

		tracks := p.Tracks()
		if len(tracks) != 1 || tracks[0] != t1 {
			t.Errorf("expected tracks [First] after undo, got %d tracks", len(tracks))
		}
	})

	t.Run("AddTrack Allows Duplicates", func(t *testing.T) {
		p, _, _ := newTestPlaylist(t)
		t1 := track("t1", "First")

		p.AddTrack(t1)
		p.AddTrack(t1)

		if p.TrackCount() != 2 {
			t.Errorf("expected the same track at two positions, got %d", p.TrackCount())
		}
	})

	t.Run("DeleteTrack Removes First Match", func(t *testing.T) {
		p, _, _ := newTestPlaylist(t)
		t1 := track("t1", "First")
		t2 := track("t2", "Second")

		p.AddTrack(t1)
		p.AddTrack(t2)
		p.AddTrack(t1)

		if err := p.DeleteTrack(t1); err != nil {
			t.Fatalf("delete failed: %v", err)
		}

		tracks := p.Tracks()
		if len(tracks) != 2 || tracks[0] != t2 || tracks[1] != t1 {
			t.Errorf("expected [Second First], got %d tracks", len(tracks))
		}
	})

	t.Run("DeleteTrack Undo Appends At End", func(t *testing.T) {
		p, hist, _ := newTestPlaylist(t)
		t1 := track("t1", "First")
		t2 := track("t2", "Second")
		t3 := track("t3", "Third")

		p.AddTrack(t1)
		p.AddTrack(t2)
		p.AddTrack(t3)

		if err := p.DeleteTrack(t1); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		hist.Undo()

		// Undoing a deletion re-inserts at the end, not the original position.
		tracks := p.Tracks()
		if len(tracks) != 3 || tracks[2] != t1 {
			t.Errorf("expected deleted track re-appended at end, got %v", titles(tracks))
		}
	})

	t.Run("DeleteTrack NotFound", func(t *testing.T) {
		p, hist, persister := newTestPlaylist(t)
		depth := hist.Len()
		saves := persister.saves

		fired := false
		p.TracksChanging.Subscribe(func(struct{}) { fired = true })

		err := p.DeleteTrack(track("ghost", "Ghost"))

		if !errors.Is(err, shared.ErrTrackNotFound) {
			t.Errorf("expected ErrTrackNotFound, got %v", err)
		}
		if fired {
			t.Error("failed delete should not notify")
		}
		if hist.Len() != depth || persister.saves != saves {
			t.Error("failed delete should not log or persist")
		}
	})

	t.Run("MoveTrack And Undo", func(t *testing.T) {
		p, hist, _ := newTestPlaylist(t)
		a, b, c, d := track("a", "A"), track("b", "B"), track("c", "C"), track("d", "D")
		for _, tr := range []*Track{a, b, c, d} {
			p.AddTrack(tr)
		}

		if err := p.MoveTrack(0, 2); err != nil {
			t.Fatalf("move failed: %v", err)
		}

		if got := titles(p.Tracks()); got != "B C A D" {
			t.Errorf("expected B C A D, got %s", got)
		}

		hist.Undo()

		if got := titles(p.Tracks()); got != "A B C D" {
			t.Errorf("expected A B C D after undo, got %s", got)
		}
	})

	t.Run("MoveTrack OutOfRange", func(t *testing.T) {
		p, _, _ := newTestPlaylist(t)
		p.AddTrack(track("a", "A"))

		if err := p.MoveTrack(0, 5); !errors.Is(err, shared.ErrInvalidPosition) {
			t.Errorf("expected ErrInvalidPosition, got %v", err)
		}
		if err := p.MoveTrack(-1, 0); !errors.Is(err, shared.ErrInvalidPosition) {
			t.Errorf("expected ErrInvalidPosition, got %v", err)
		}
	})

	t.Run("TracksChanging Fires Before Mutation", func(t *testing.T) {
		p, _, _ := newTestPlaylist(t)
		p.AddTrack(track("a", "A"))

		lenAtNotify := -1
		p.TracksChanging.Subscribe(func(struct{}) { lenAtNotify = p.TrackCount() })

		p.AddTrack(track("b", "B"))

		if lenAtNotify != 1 {
			t.Errorf("pre-mutation hook should see the old sequence, saw length %d", lenAtNotify)
		}
	})

	t.Run("Notification Fires Before Logging", func(t *testing.T) {
		p, hist, _ := newTestPlaylist(t)
		depth := hist.Len()

		depthAtNotify := -1
		p.TitleChanged.Subscribe(func(string) { depthAtNotify = hist.Len() })

		p.SetTitle("Reordered")

		if depthAtNotify != depth {
			t.Errorf("notification should fire before history logging, saw depth %d want %d", depthAtNotify, depth)
		}
	})

	t.Run("ClearHooks", func(t *testing.T) {
		p, _, _ := newTestPlaylist(t)

		fired := false
		p.TitleChanged.Subscribe(func(string) { fired = true })
		p.ClearHooks()

		p.SetTitle("Silent")

		if fired {
			t.Error("cleared hook should not fire")
		}
	})
}

func titles(tracks []*Track) string {
	out := ""
	for i, tr := range tracks {
		if i > 0 {
			out += " "
		}
		out += tr.Title
	}
	return out
}
