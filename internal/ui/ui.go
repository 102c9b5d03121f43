package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/player"
	"github.com/desertthunder/mixtape/internal/services"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PlaylistListView ViewState = iota
	TrackListView
	SearchView
	ResultsView
)

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	set     *models.Set
	catalog services.Catalog
	logger  *log.Logger

	width  int
	height int

	playlistList list.Model
	trackList    list.Model
	searchInput  textinput.Model
	resultsList  list.Model

	focused        *models.Playlist
	disposers      []func()
	focusDisposers []func()
	player         *player.Player

	err  error
	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, set *models.Set, catalog services.Catalog, logger *log.Logger) *Model {
	input := textinput.New()
	input.Placeholder = "artist or title..."
	input.CharLimit = 128

	m := &Model{
		ctx:         ctx,
		view:        PlaylistListView,
		set:         set,
		catalog:     catalog,
		logger:      logger,
		searchInput: input,
		help:        help.New(),
		keys:        newKeyMap(),
	}

	m.playlistList = list.New(playlistItems(set.Playlists()), list.NewDefaultDelegate(), 0, 0)
	m.playlistList.Title = "Playlists"

	m.disposers = append(m.disposers,
		set.PlaylistAdded.Subscribe(func(*models.Playlist) { m.refreshPlaylists() }),
		set.PlaylistDeleted.Subscribe(func(*models.Playlist) { m.refreshPlaylists() }),
		set.Restored.Subscribe(func(struct{}) { m.refreshPlaylists() }),
	)
	return m
}

// Close releases notification subscriptions and stops playback.
func (m *Model) Close() {
	m.clearFocus()
	for _, dispose := range m.disposers {
		dispose()
	}
	m.disposers = nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.playlistList.SetSize(msg.Width-4, msg.Height-8)
		m.trackList.SetSize(msg.Width-4, msg.Height-8)
		m.resultsList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case PlaylistListView:
			return m.handlePlaylistListKeys(msg)
		case TrackListView:
			return m.handleTrackListKeys(msg)
		case SearchView:
			return m.handleSearchKeys(msg)
		case ResultsView:
			return m.handleResultsKeys(msg)
		}

	case searchResultsMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = TrackListView
			return m, nil
		}
		m.resultsList = list.New(trackItems(msg.tracks), list.NewDefaultDelegate(), 0, 0)
		m.resultsList.Title = fmt.Sprintf("Results for %q", msg.query)
		m.resultsList.SetSize(m.width-4, m.height-8)
		m.view = ResultsView
		return m, nil

	case playbackTickMsg:
		if m.player != nil && m.player.State() == player.Playing {
			return m, playbackTick()
		}
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case PlaylistListView:
		body = m.renderPlaylistList()
	case TrackListView:
		body = m.renderTrackList()
	case SearchView:
		body = m.renderSearch()
	case ResultsView:
		body = m.renderResults()
	}
	return fmt.Sprintf("%s\n%s", body, m.renderFooter())
}

func (m *Model) handlePlaylistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.enter):
		if p, ok := m.selectedPlaylist(); ok {
			m.setFocus(p)
			m.view = TrackListView
		}
		return m, nil

	case key.Matches(msg, m.keys.create):
		title, err := m.set.UniqueTitle()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.set.AddPlaylist(models.NewPlaylist(title, ""))
		return m, nil

	case key.Matches(msg, m.keys.remove):
		if p, ok := m.selectedPlaylist(); ok {
			m.err = m.set.DeletePlaylist(p)
		}
		return m, nil

	case key.Matches(msg, m.keys.undo):
		m.undo()
		return m, nil
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleTrackListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.back):
		m.clearFocus()
		m.view = PlaylistListView
		return m, nil

	case key.Matches(msg, m.keys.search):
		m.searchInput.SetValue("")
		m.view = SearchView
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.remove):
		if t, ok := m.selectedTrack(); ok {
			m.err = m.focused.DeleteTrack(t)
		}
		return m, nil

	case key.Matches(msg, m.keys.moveUp):
		idx := m.trackList.Index()
		if idx > 0 {
			m.err = m.focused.MoveTrack(idx, idx-1)
			m.trackList.Select(idx - 1)
		}
		return m, nil

	case key.Matches(msg, m.keys.moveDown):
		idx := m.trackList.Index()
		if idx < m.focused.TrackCount()-1 {
			m.err = m.focused.MoveTrack(idx, idx+1)
			m.trackList.Select(idx + 1)
		}
		return m, nil

	case key.Matches(msg, m.keys.play):
		if m.player != nil {
			m.player.Play()
			return m, playbackTick()
		}
		return m, nil

	case key.Matches(msg, m.keys.stop):
		if m.player != nil {
			m.player.Stop()
		}
		return m, nil

	case key.Matches(msg, m.keys.undo):
		m.undo()
		return m, nil
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchInput.Blur()
		m.view = TrackListView
		return m, nil
	case "enter":
		query := m.searchInput.Value()
		if query == "" {
			return m, nil
		}
		m.searchInput.Blur()
		return m, m.search(query)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.back):
		m.view = TrackListView
		return m, nil

	case key.Matches(msg, m.keys.enter):
		if item, ok := m.resultsList.SelectedItem().(trackItem); ok {
			m.focused.AddTrack(item.track)
			m.view = TrackListView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.resultsList, cmd = m.resultsList.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case PlaylistListView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	case TrackListView:
		m.trackList, cmd = m.trackList.Update(msg)
	case SearchView:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case ResultsView:
		m.resultsList, cmd = m.resultsList.Update(msg)
	}
	return m, cmd
}

// setFocus points the track view and player at one playlist, subscribing to
// its notification slots. Disposers are kept so clearFocus can release the
// slots for other subscribers.
func (m *Model) setFocus(p *models.Playlist) {
	m.clearFocus()
	m.focused = p

	m.trackList = list.New(trackItems(p.Tracks()), list.NewDefaultDelegate(), 0, 0)
	m.trackList.Title = p.Title()
	m.trackList.SetSize(m.width-4, m.height-8)

	refresh := func() { m.refreshTracks() }
	m.focusDisposers = append(m.focusDisposers,
		p.TrackAdded.Subscribe(func(*models.Track) { refresh() }),
		p.TrackDeleted.Subscribe(func(*models.Track) { refresh() }),
		p.TrackMoved.Subscribe(func(models.TrackMove) { refresh() }),
		p.TitleChanged.Subscribe(func(title string) { m.trackList.Title = title }),
	)

	if m.catalog != nil {
		m.player = player.New(m.ctx, p, m.catalog, player.Opts{
			Preload: true,
			Logger:  m.logger,
			OnStall: func(err error) { m.logger.Error("playback stalled", "error", err) },
		})
	}
}

func (m *Model) clearFocus() {
	for _, dispose := range m.focusDisposers {
		dispose()
	}
	m.focusDisposers = nil
	if m.player != nil {
		m.player.Close()
		m.player = nil
	}
	m.focused = nil
}

func (m *Model) refreshPlaylists() {
	m.playlistList.SetItems(playlistItems(m.set.Playlists()))
}

func (m *Model) refreshTracks() {
	if m.focused != nil {
		m.trackList.SetItems(trackItems(m.focused.Tracks()))
	}
}

func (m *Model) undo() {
	if !m.set.History().Undo() {
		return
	}
	m.err = nil
}

func (m *Model) selectedPlaylist() (*models.Playlist, bool) {
	item, ok := m.playlistList.SelectedItem().(playlistItem)
	if !ok {
		return nil, false
	}
	return item.playlist, true
}

func (m *Model) selectedTrack() (*models.Track, bool) {
	item, ok := m.trackList.SelectedItem().(trackItem)
	if !ok {
		return nil, false
	}
	return item.track, true
}

func (m *Model) search(query string) tea.Cmd {
	return func() tea.Msg {
		tracks, err := m.catalog.SearchTracks(m.ctx, query)
		return searchResultsMsg{query: query, tracks: tracks, err: err}
	}
}

func (m *Model) renderPlaylistList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.create, m.keys.remove, m.keys.undo, m.keys.quit}
	return fmt.Sprintf("%s\n\n%s", m.playlistList.View(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderTrackList() string {
	helpKeys := []key.Binding{m.keys.search, m.keys.remove, m.keys.moveUp, m.keys.moveDown, m.keys.play, m.keys.stop, m.keys.undo, m.keys.back}
	return fmt.Sprintf("%s\n%s\n\n%s", m.trackList.View(), m.renderStatus(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderSearch() string {
	title := styles.title.Render("Search the catalog")
	return fmt.Sprintf("%s\n%s\n\n%s", title, m.searchInput.View(), styles.help.Render("enter: search • esc: back"))
}

func (m *Model) renderResults() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s\n\n%s", m.resultsList.View(), m.help.ShortHelpView(helpKeys))
}

// renderStatus is the playback status line for the focused playlist.
func (m *Model) renderStatus() string {
	if m.player == nil || m.player.State() != player.Playing {
		return styles.help.Render("stopped")
	}

	idx := m.player.Index()
	track := m.focused.TrackAt(idx)
	if track == nil {
		return styles.ok.Render("▶ playing")
	}
	return styles.ok.Render(fmt.Sprintf("▶ %d/%d %s", idx+1, m.focused.TrackCount(), track.Label()))
}

// renderFooter shows the last error and the undo hint.
func (m *Model) renderFooter() string {
	var footer string
	if m.err != nil {
		footer = styles.err.Render(fmt.Sprintf("error: %v", m.err))
	}
	if desc, ok := m.set.History().NextDescription(); ok {
		hint := styles.help.Render(fmt.Sprintf("u: undo %s", desc))
		if footer != "" {
			return fmt.Sprintf("%s\n%s", footer, hint)
		}
		return hint
	}
	return footer
}
