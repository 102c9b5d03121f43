package player

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/mixtape/internal/history"
	"github.com/desertthunder/mixtape/internal/models"
)

// fakeHandle is a scripted playable handle; tests drive completion by hand.
type fakeHandle struct {
	mu         sync.Mutex
	trackID    string
	onComplete func()
	stopped    bool
}

func (h *fakeHandle) Play(onComplete func()) {
	h.mu.Lock()
	h.onComplete = onComplete
	h.mu.Unlock()
}

func (h *fakeHandle) Stop() {
	h.mu.Lock()
	h.stopped = true
	h.mu.Unlock()
}

func (h *fakeHandle) complete() {
	h.mu.Lock()
	fn := h.onComplete
	h.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (h *fakeHandle) isStopped() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopped
}

// fakeStreamer returns a fresh handle per request, optionally blocking
// specific track IDs until released.
type fakeStreamer struct {
	mu       sync.Mutex
	requests []string
	created  []*fakeHandle
	errs     map[string]error
	hold     map[string]chan struct{}
}

func newFakeStreamer() *fakeStreamer {
	return &fakeStreamer{errs: map[string]error{}, hold: map[string]chan struct{}{}}
}

func (s *fakeStreamer) Stream(_ context.Context, trackID string) (Handle, error) {
	s.mu.Lock()
	s.requests = append(s.requests, trackID)
	gate := s.hold[trackID]
	err := s.errs[trackID]
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}

	h := &fakeHandle{trackID: trackID}
	s.mu.Lock()
	s.created = append(s.created, h)
	s.mu.Unlock()
	return h, nil
}

func (s *fakeStreamer) requestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *fakeStreamer) handleFor(trackID string) *fakeHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.created {
		if h.trackID == trackID {
			return h
		}
	}
	return nil
}

func newTestPlaylist(trackIDs ...string) *models.Playlist {
	set := models.NewSet(history.New(10), nil)
	p := models.NewPlaylist("Session", "")
	set.AddPlaylist(p)
	for _, id := range trackIDs {
		p.AddTrack(&models.Track{ID: id, Title: id, Duration: 200})
	}
	return p
}

// waitUntil polls cond; playback deliveries arrive on other goroutines.
func waitUntil(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestPlayer(t *testing.T) {
	t.Run("Play Empty Playlist Stays Idle", func(t *testing.T) {
		streamer := newFakeStreamer()
		p := New(context.Background(), newTestPlaylist(), streamer, Opts{})
		defer p.Close()

		p.Play()

		if p.State() != Idle {
			t.Errorf("expected idle, got %s", p.State())
		}
		if streamer.requestCount() != 0 {
			t.Error("empty playlist should request no handles")
		}
	})

	t.Run("Stop While Idle Is NoOp", func(t *testing.T) {
		streamer := newFakeStreamer()
		p := New(context.Background(), newTestPlaylist("a"), streamer, Opts{})
		defer p.Close()

		p.Stop()

		if p.State() != Idle || p.Index() != -1 {
			t.Error("stop while idle should leave the player untouched")
		}
	})

	t.Run("Chained Advance", func(t *testing.T) {
		streamer := newFakeStreamer()
		p := New(context.Background(), newTestPlaylist("a", "b"), streamer, Opts{})
		defer p.Close()

		p.Play()

		if p.State() != Playing || p.Index() != 0 {
			t.Fatalf("expected playing at 0, got %s at %d", p.State(), p.Index())
		}

		streamer.handleFor("a").complete()

		if p.Index() != 1 {
			t.Errorf("completing track 0 should advance to 1, got %d", p.Index())
		}

		streamer.handleFor("b").complete()

		if p.State() != Idle || p.Index() != -1 {
			t.Errorf("completing the last track should stop, got %s at %d", p.State(), p.Index())
		}
	})

	t.Run("Play While Playing Is NoOp", func(t *testing.T) {
		streamer := newFakeStreamer()
		p := New(context.Background(), newTestPlaylist("a", "b"), streamer, Opts{})
		defer p.Close()

		p.Play()
		p.Play()

		if streamer.requestCount() != 1 {
			t.Errorf("second Play should not refetch, got %d requests", streamer.requestCount())
		}
	})

	t.Run("Preloaded Handle Is Reused", func(t *testing.T) {
		streamer := newFakeStreamer()
		p := New(context.Background(), newTestPlaylist("a", "b"), streamer, Opts{Preload: true})
		defer p.Close()

		p.Play()

		// Preload for b runs on another goroutine right after a starts; wait
		// for the handle to land in the preload slot before completing a.
		waitUntil(t, func() bool {
			p.mu.Lock()
			defer p.mu.Unlock()
			return p.preloaded != nil
		})

		streamer.handleFor("a").complete()

		if p.Index() != 1 {
			t.Fatalf("expected advance to 1, got %d", p.Index())
		}
		if streamer.requestCount() != 2 {
			t.Errorf("advance should reuse the preloaded handle, got %d requests", streamer.requestCount())
		}
	})

	t.Run("Stale Preload Is Discarded", func(t *testing.T) {
		streamer := newFakeStreamer()
		gate := make(chan struct{})
		streamer.hold["b"] = gate

		p := New(context.Background(), newTestPlaylist("a", "b"), streamer, Opts{Preload: true})
		defer p.Close()

		p.Play()
		waitUntil(t, func() bool { return streamer.requestCount() == 2 })

		// Stop before the preload delivery lands.
		p.Stop()
		close(gate)

		waitUntil(t, func() bool { return streamer.handleFor("b") != nil })
		waitUntil(t, func() bool { return streamer.handleFor("b").isStopped() })
	})

	t.Run("Tracks Change Stops Playback", func(t *testing.T) {
		streamer := newFakeStreamer()
		playlist := newTestPlaylist("a", "b")
		p := New(context.Background(), playlist, streamer, Opts{})
		defer p.Close()

		p.Play()

		if p.State() != Playing {
			t.Fatal("expected playing")
		}

		playlist.AddTrack(&models.Track{ID: "c", Title: "c"})

		if p.State() != Idle || p.Index() != -1 {
			t.Error("mutating the track sequence should stop the player")
		}
		if !streamer.handleFor("a").isStopped() {
			t.Error("the playing handle should be released on stop")
		}
	})

	t.Run("Fetch Failure Stalls", func(t *testing.T) {
		streamer := newFakeStreamer()
		streamErr := errors.New("upstream 503")
		streamer.errs["b"] = streamErr

		var stalled error
		p := New(context.Background(), newTestPlaylist("a", "b"), streamer, Opts{
			OnStall: func(err error) { stalled = err },
		})
		defer p.Close()

		p.Play()
		streamer.handleFor("a").complete()

		if !errors.Is(stalled, streamErr) {
			t.Errorf("expected stall callback with stream error, got %v", stalled)
		}
		if p.State() != Playing {
			t.Error("a stalled player stays in playing state at the failed position")
		}
		if p.Index() != 1 {
			t.Errorf("expected index at the failed position, got %d", p.Index())
		}
	})

	t.Run("Close Releases Subscription", func(t *testing.T) {
		streamer := newFakeStreamer()
		playlist := newTestPlaylist("a")
		p := New(context.Background(), playlist, streamer, Opts{})

		p.Play()
		p.Close()

		// After Close the playlist mutation no longer reaches the player.
		playlist.AddTrack(&models.Track{ID: "b", Title: "b"})

		if p.State() != Idle {
			t.Error("close should stop playback")
		}
	})

	t.Run("Restart After Stop", func(t *testing.T) {
		streamer := newFakeStreamer()
		p := New(context.Background(), newTestPlaylist("a", "b"), streamer, Opts{})
		defer p.Close()

		p.Play()
		p.Stop()
		p.Play()

		if p.State() != Playing || p.Index() != 0 {
			t.Errorf("restart should play from the first track, got %s at %d", p.State(), p.Index())
		}
	})
}
