package services

import (
	"sync"
	"time"

	"github.com/desertthunder/mixtape/internal/player"
)

var _ player.Handle = (*streamHandle)(nil)

// streamHandle is a playable handle over a resolved stream URL. Audio output
// belongs to the host audio engine; the handle's contract is scheduling the
// completion callback once the track's duration elapses, and honoring Stop.
type streamHandle struct {
	mu       sync.Mutex
	url      string
	duration time.Duration
	timer    *time.Timer
	stopped  bool
}

func newStreamHandle(url string, duration time.Duration) *streamHandle {
	return &streamHandle{url: url, duration: duration}
}

// URL returns the resolved stream location.
func (h *streamHandle) URL() string {
	return h.url
}

// Play schedules onComplete for the end of the track. A handle that was
// already stopped does nothing.
func (h *streamHandle) Play(onComplete func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopped {
		return
	}
	h.timer = time.AfterFunc(h.duration, onComplete)
}

// Stop cancels the pending completion and releases the handle.
func (h *streamHandle) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.stopped = true
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
}
