// Package player implements sequential playback over one playlist's tracks
// with one-track-ahead preloading.
//
// Advancing to the next track is chained: when the current handle reports
// completion the player moves to the following position without user input.
// While track i plays, the handle for track i+1 is requested in the
// background; a preloaded handle that arrives after it stopped being relevant
// is discarded by generation and index checks rather than stored.
package player

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mixtape/internal/models"
)

// Handle is a playable stream obtained from the catalog. Play begins playback
// and arranges for onComplete to run exactly once when the track ends
// naturally. Stop releases the handle; a stopped handle never reports
// completion.
type Handle interface {
	Play(onComplete func())
	Stop()
}

// Streamer obtains a playable handle for a track. Implementations block until
// the handle is ready or the context is done; the player calls Stream from
// whatever goroutine is advancing and from the preload goroutine.
type Streamer interface {
	Stream(ctx context.Context, trackID string) (Handle, error)
}

// Player plays one playlist front to back. It watches the playlist's
// pre-mutation hook and stops itself before any change to the track sequence,
// so its indices never dangle.
//
// Unlike the models, the player is safe for concurrent use: completion
// callbacks and preload deliveries arrive on other goroutines.
type Player struct {
	mu sync.Mutex

	ctx      context.Context
	playlist *models.Playlist
	streamer Streamer
	logger   *log.Logger

	state      State
	index      int
	current    Handle
	preloaded  Handle
	preloadIdx int

	// gen invalidates in-flight fetches and completions. Every Stop and Play
	// bumps it; a delivery tagged with an old generation is discarded.
	gen uint64

	preload bool
	onStall func(error)

	unsubscribe func()
}

// Opts configures a Player.
type Opts struct {
	// Preload requests the next track's handle while the current one plays.
	Preload bool
	// OnStall is invoked when fetching a track's handle fails and playback
	// cannot continue past the current position. May be nil.
	OnStall func(error)
	Logger  *log.Logger
}

// New creates a player bound to playlist. The player subscribes to the
// playlist's TracksChanging hook and must be released with Close.
func New(ctx context.Context, playlist *models.Playlist, streamer Streamer, opts Opts) *Player {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	p := &Player{
		ctx:      ctx,
		playlist: playlist,
		streamer: streamer,
		logger:   opts.Logger,
		state:    Idle,
		index:    -1,
		preload:  opts.Preload,
		onStall:  opts.OnStall,
	}

	p.unsubscribe = playlist.TracksChanging.Subscribe(func(struct{}) { p.Stop() })

	return p
}

// Close stops playback and releases the playlist subscription.
func (p *Player) Close() {
	p.Stop()
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
}

// State returns the current playback state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Index returns the position currently playing, or -1 when idle.
func (p *Player) Index() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index
}

// Play starts playback from the first track. It is a no-op while already
// playing. An empty playlist leaves the player idle without requesting any
// handle.
func (p *Player) Play() {
	p.mu.Lock()
	if p.state == Playing {
		p.mu.Unlock()
		return
	}
	if p.playlist.TrackCount() == 0 {
		p.mu.Unlock()
		return
	}

	p.state = Playing
	p.index = -1
	p.gen++
	p.mu.Unlock()

	p.advance()
}

// Stop halts playback, releases the current and any preloaded handle, and
// resets the position. Calling Stop while idle is a no-op.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == Idle {
		return
	}
	p.stopLocked()
}

func (p *Player) stopLocked() {
	if p.current != nil {
		p.current.Stop()
		p.current = nil
	}
	if p.preloaded != nil {
		p.preloaded.Stop()
		p.preloaded = nil
	}

	p.state = Idle
	p.index = -1
	p.gen++
}

// advance moves to the next position: plays the preloaded handle when one is
// waiting for that position, otherwise fetches a fresh one. Past the last
// track it stops.
func (p *Player) advance() {
	p.mu.Lock()
	if p.state != Playing {
		p.mu.Unlock()
		return
	}

	p.index++
	if p.index >= p.playlist.TrackCount() {
		p.stopLocked()
		p.mu.Unlock()
		return
	}

	idx := p.index
	gen := p.gen

	if p.preloaded != nil && p.preloadIdx == idx {
		handle := p.preloaded
		p.preloaded = nil
		p.startLocked(handle, idx, gen)
		return
	}
	if p.preloaded != nil {
		// Preloaded for a position we skipped past; release it.
		p.preloaded.Stop()
		p.preloaded = nil
	}

	track := p.playlist.TrackAt(idx)
	p.mu.Unlock()

	handle, err := p.streamer.Stream(p.ctx, track.ID)

	p.mu.Lock()
	if p.gen != gen || p.state != Playing || p.index != idx {
		p.mu.Unlock()
		if handle != nil {
			handle.Stop()
		}
		return
	}
	if err != nil {
		p.mu.Unlock()
		p.logger.Error("stream fetch failed, playback stalled", "track", track.Label(), "error", err)
		if p.onStall != nil {
			p.onStall(err)
		}
		return
	}

	p.startLocked(handle, idx, gen)
}

// startLocked begins playback of handle at position idx and kicks off the
// preload for idx+1. Called with the mutex held; releases it.
func (p *Player) startLocked(handle Handle, idx int, gen uint64) {
	p.current = handle
	next := p.playlist.TrackAt(idx + 1)
	p.mu.Unlock()

	handle.Play(func() { p.completed(gen, idx) })

	if p.preload && next != nil {
		go p.preloadNext(gen, idx+1, next)
	}
}

// preloadNext fetches the handle for the upcoming position. The result is
// stored only while it is still the player's next expectation; anything else
// is released immediately.
func (p *Player) preloadNext(gen uint64, target int, track *models.Track) {
	handle, err := p.streamer.Stream(p.ctx, track.ID)
	if err != nil {
		// Not fatal: the advance to this position will fetch directly.
		p.logger.Debug("preload failed", "track", track.Label(), "error", err)
		return
	}

	p.mu.Lock()
	if p.gen != gen || p.state != Playing || target != p.index+1 {
		p.mu.Unlock()
		handle.Stop()
		return
	}

	p.preloaded = handle
	p.preloadIdx = target
	p.mu.Unlock()
}

// completed handles a track finishing naturally.
func (p *Player) completed(gen uint64, idx int) {
	p.mu.Lock()
	if p.gen != gen || p.state != Playing || p.index != idx {
		p.mu.Unlock()
		return
	}
	p.current = nil
	p.mu.Unlock()

	p.advance()
}
