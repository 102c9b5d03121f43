// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/player"
)

// MockCatalog is a configurable test double for [services.Catalog]
type MockCatalog struct {
	CatalogName     string
	SearchResults   map[string][]*models.Track
	AuthenticateErr error
	SearchErr       error
	StreamErr       error

	mu          sync.Mutex
	searchCalls []string
	streamCalls []string
	handles     []*ScriptedHandle
}

func (m *MockCatalog) Name() string {
	if m.CatalogName == "" {
		return "mock"
	}
	return m.CatalogName
}

func (m *MockCatalog) Authenticate(ctx context.Context) error {
	return m.AuthenticateErr
}

func (m *MockCatalog) SearchTracks(ctx context.Context, query string) ([]*models.Track, error) {
	m.mu.Lock()
	m.searchCalls = append(m.searchCalls, query)
	m.mu.Unlock()

	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return m.SearchResults[query], nil
}

func (m *MockCatalog) Stream(ctx context.Context, trackID string) (player.Handle, error) {
	m.mu.Lock()
	m.streamCalls = append(m.streamCalls, trackID)
	m.mu.Unlock()

	if m.StreamErr != nil {
		return nil, m.StreamErr
	}

	h := &ScriptedHandle{TrackID: trackID}
	m.mu.Lock()
	m.handles = append(m.handles, h)
	m.mu.Unlock()
	return h, nil
}

// SearchCalls returns the queries passed to SearchTracks so far.
func (m *MockCatalog) SearchCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.searchCalls...)
}

// StreamCalls returns the track IDs passed to Stream so far.
func (m *MockCatalog) StreamCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.streamCalls...)
}

// Handles returns every handle created by Stream so far.
func (m *MockCatalog) Handles() []*ScriptedHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*ScriptedHandle(nil), m.handles...)
}

// ScriptedHandle is a [player.Handle] whose completion is driven by the test.
type ScriptedHandle struct {
	TrackID string

	mu         sync.Mutex
	onComplete func()
	stopped    bool
}

func (h *ScriptedHandle) Play(onComplete func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return
	}
	h.onComplete = onComplete
}

func (h *ScriptedHandle) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopped = true
	h.onComplete = nil
}

// Complete fires the completion callback as if the track finished streaming.
func (h *ScriptedHandle) Complete() {
	h.mu.Lock()
	fn := h.onComplete
	h.onComplete = nil
	h.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Stopped reports whether Stop has been called.
func (h *ScriptedHandle) Stopped() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopped
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
