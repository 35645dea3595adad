package app

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/llehouerou/jamwaves/internal/catalog"
	"github.com/llehouerou/jamwaves/internal/favorites"
	"github.com/llehouerou/jamwaves/internal/icons"
	"github.com/llehouerou/jamwaves/internal/playback"
	"github.com/llehouerou/jamwaves/internal/player"
	"github.com/llehouerou/jamwaves/internal/state"
)

type stubCatalog struct {
	mu        sync.Mutex
	trending  []catalog.Track
	playlists []catalog.Playlist
	lists     map[string][]catalog.Track
	tracks    map[string]catalog.Track
	searches  []string
}

func (c *stubCatalog) FetchTrending(_ context.Context, limit, offset int) []catalog.Track {
	if offset >= len(c.trending) {
		return []catalog.Track{}
	}
	return c.trending[offset:min(offset+limit, len(c.trending))]
}

func (c *stubCatalog) FetchPlaylists(context.Context, int) []catalog.Playlist {
	return c.playlists
}

func (c *stubCatalog) FetchPlaylistTracks(_ context.Context, id string, _ int) []catalog.Track {
	return c.lists[id]
}

func (c *stubCatalog) Search(_ context.Context, q string, _ int) []catalog.Track {
	c.mu.Lock()
	c.searches = append(c.searches, q)
	c.mu.Unlock()
	var out []catalog.Track
	for _, t := range c.trending {
		if strings.Contains(strings.ToLower(t.Name), strings.ToLower(q)) {
			out = append(out, t)
		}
	}
	return out
}

func (c *stubCatalog) FetchTrackByID(_ context.Context, id string) (catalog.Track, bool) {
	t, ok := c.tracks[id]
	return t, ok
}

func testTracks() []catalog.Track {
	return []catalog.Track{
		{ID: "1", Name: "Night Drive", ArtistName: "Lumen", Duration: 200 * time.Second, Audio: "https://a/1.mp3"},
		{ID: "2", Name: "Rock Steady", ArtistName: "Basalt", Duration: 180 * time.Second, Audio: "https://a/2.mp3"},
		{ID: "3", Name: "Quiet Rock", ArtistName: "Moss", Duration: 240 * time.Second, Audio: "https://a/3.mp3"},
	}
}

type fixture struct {
	catalog   *stubCatalog
	favorites *favorites.Store
	player    *player.Mock
	engine    *playback.Engine
}

func newFixture(t *testing.T) (*fixture, Model) {
	t.Helper()
	icons.Init("none")

	tracks := testTracks()
	f := &fixture{
		catalog: &stubCatalog{
			trending: tracks,
			playlists: []catalog.Playlist{
				{ID: "p1", Name: "Evening", UserName: "ana", CreatedAt: time.Now().Add(-48 * time.Hour), Tracks: tracks[:1]},
			},
			lists:  map[string][]catalog.Track{"p1": tracks[1:]},
			tracks: map[string]catalog.Track{},
		},
		favorites: favorites.Open(state.NewMock(), zap.NewNop()),
		player:    player.NewMock(),
	}
	f.engine = playback.New(f.player, playback.Options{Favorites: f.favorites})
	t.Cleanup(func() { _ = f.engine.Close() })

	m := New(context.Background(), Options{
		Catalog:   f.catalog,
		Favorites: f.favorites,
		Playback:  f.engine,
		Limits:    Limits{Trending: 2},
	})
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 24})
	m = send(t, m, FetchTrendingCmd(m.ctx, f.catalog, 3, 0)())
	m = send(t, m, FetchPlaylistsCmd(m.ctx, f.catalog, 10)())
	return f, m
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	m, _ = sendCmd(t, m, msg)
	return m
}

func sendCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok, "Update must return app.Model")
	return nm, cmd
}

func key(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestNew(t *testing.T) {
	f := &stubCatalog{}
	engine := playback.New(player.NewMock(), playback.Options{})
	defer engine.Close()

	m := New(context.Background(), Options{Catalog: f, Playback: engine})

	assert.Equal(t, ViewHome, m.view)
	assert.Equal(t, 2, m.pending)
	assert.Equal(t, catalog.DefaultTrendingLimit, m.limits.Trending)
	assert.Equal(t, catalog.DefaultSearchLimit, m.limits.Search)
	assert.NotNil(t, m.Init())
	assert.Empty(t, m.View(), "no output before the first WindowSizeMsg")
}

func TestInitialLoads(t *testing.T) {
	_, m := newFixture(t)

	assert.Equal(t, 0, m.pending)
	assert.Equal(t, 3, m.trending.Len())
	assert.Equal(t, 1, m.playlists.Len())
}

func TestLoadMoreAppendsAndDedupes(t *testing.T) {
	f, m := newFixture(t)
	m = send(t, m, TrendingLoadedMsg{Offset: 0, Tracks: f.catalog.trending[:2]})

	m, cmd := sendCmd(t, m, key("m"))
	require.NotNil(t, cmd)
	assert.Equal(t, 1, m.pending)

	m = send(t, m, TrendingLoadedMsg{Offset: 2, Tracks: f.catalog.trending[1:]})
	assert.Equal(t, 3, m.trending.Len())
	assert.Equal(t, 0, m.pending)
}

func TestLoadMoreIgnoresStalePage(t *testing.T) {
	f, m := newFixture(t)

	m = send(t, m, TrendingLoadedMsg{Offset: 10, Tracks: f.catalog.trending})
	assert.Equal(t, 3, m.trending.Len())
}

func TestLoadMoreEmptyPageReportsStatus(t *testing.T) {
	_, m := newFixture(t)

	m = send(t, m, TrendingLoadedMsg{Offset: 3, Tracks: []catalog.Track{}})
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "no more tracks")
}

func TestSelectPlaysWithListAsQueue(t *testing.T) {
	f, m := newFixture(t)

	m = send(t, m, key("j"))
	m = send(t, m, key("enter"))

	st := f.engine.State()
	require.NotNil(t, st.CurrentTrack)
	assert.Equal(t, "2", st.CurrentTrack.ID)
	assert.Len(t, st.Queue, 3)
	assert.Equal(t, 1, st.CurrentIndex)
	assert.Equal(t, []string{"https://a/2.mp3"}, f.player.Loads())
	assert.Equal(t, "2", m.rows.playingID)
}

func TestPlayPauseStartsSelectionThenToggles(t *testing.T) {
	f, m := newFixture(t)

	m = send(t, m, key(" "))
	assert.True(t, f.engine.IsPlaying())
	assert.Equal(t, "1", f.engine.CurrentTrack().ID)

	m = send(t, m, key(" "))
	assert.False(t, f.engine.IsPlaying())
	assert.False(t, m.state.IsPlaying)
}

func TestTransportKeys(t *testing.T) {
	f, m := newFixture(t)
	m = send(t, m, key("enter"))

	m = send(t, m, key("n"))
	assert.Equal(t, "2", f.engine.CurrentTrack().ID)

	m = send(t, m, key("p"))
	assert.Equal(t, "1", f.engine.CurrentTrack().ID)

	before := f.engine.State().Volume
	m = send(t, m, key("+"))
	assert.InDelta(t, before+volumeStep, f.engine.State().Volume, 1e-9)

	m = send(t, m, key("l"))
	assert.Equal(t, seekStep, f.engine.State().Position)

	m = send(t, m, key("S"))
	assert.True(t, f.engine.State().Shuffle)
	assert.Equal(t, "Shuffle on", m.status)

	m = send(t, m, key("R"))
	assert.True(t, m.state.Repeat)

	level := f.engine.State().Volume
	m = send(t, m, key("M"))
	assert.Zero(t, m.state.Volume)
	assert.Equal(t, "Mute on", m.status)

	m = send(t, m, key("M"))
	assert.InDelta(t, level, m.state.Volume, 1e-9)
	assert.Equal(t, "Mute off", m.status)
}

func TestToggleFavorite(t *testing.T) {
	f, m := newFixture(t)

	m = send(t, m, key("f"))
	assert.True(t, f.favorites.ContainsID("1"))
	assert.Contains(t, m.status, "Added")
	assert.Equal(t, 1, m.favs.Len())

	m = send(t, m, key("3"))
	assert.Equal(t, ViewFavorites, m.view)
	assert.Contains(t, ansi.Strip(m.View()), "Night Drive")

	m = send(t, m, key("f"))
	assert.False(t, f.favorites.ContainsID("1"))
	assert.Contains(t, m.status, "Removed")
	assert.Equal(t, 0, m.favs.Len())
}

func TestOpenPlaylist(t *testing.T) {
	f, m := newFixture(t)

	m = send(t, m, key("tab"))
	assert.Equal(t, FocusPlaylists, m.focus)

	m, cmd := sendCmd(t, m, key("enter"))
	require.NotNil(t, cmd)
	require.NotNil(t, m.openPlaylist)
	assert.Equal(t, 1, m.playlistTracks.Len(), "preview tracks shown while loading")

	m = send(t, m, FetchPlaylistTracksCmd(m.ctx, f.catalog, *m.openPlaylist, 20)())
	assert.Equal(t, 2, m.playlistTracks.Len())

	m = send(t, m, key("enter"))
	assert.Equal(t, "2", f.engine.CurrentTrack().ID)
	assert.Len(t, f.engine.State().Queue, 2)

	m = send(t, m, key("esc"))
	assert.Nil(t, m.openPlaylist)
}

func TestPlaylistTracksForClosedPlaylistIgnored(t *testing.T) {
	f, m := newFixture(t)

	m = send(t, m, PlaylistTracksLoadedMsg{Playlist: f.catalog.playlists[0], Tracks: f.catalog.trending})
	assert.Equal(t, 0, m.playlistTracks.Len())
}

func TestSearch(t *testing.T) {
	f, m := newFixture(t)

	m = send(t, m, key("/"))
	assert.Equal(t, ViewSearch, m.view)
	assert.True(t, m.searching)

	m = send(t, m, key("rock"))
	assert.Equal(t, "rock", m.search.Value())

	m, cmd := sendCmd(t, m, key("enter"))
	require.NotNil(t, cmd)
	assert.False(t, m.searching)
	assert.Equal(t, "rock", m.lastQuery)

	m = send(t, m, SearchCmd(m.ctx, f.catalog, m.lastQuery, 20)())
	assert.Equal(t, 2, m.results.Len())
	assert.Contains(t, m.results.Title(), "rock")

	m = send(t, m, SearchResultMsg{Query: "old", Tracks: nil})
	assert.Equal(t, 2, m.results.Len(), "stale results are dropped")

	m = send(t, m, key("enter"))
	assert.Equal(t, "2", f.engine.CurrentTrack().ID)
}

func TestSearchEmptyQueryIgnored(t *testing.T) {
	_, m := newFixture(t)

	m = send(t, m, key("/"))
	m, cmd := sendCmd(t, m, key("enter"))
	assert.Nil(t, cmd)
	assert.True(t, m.searching)
}

func TestTrackDetails(t *testing.T) {
	f, m := newFixture(t)

	m, cmd := sendCmd(t, m, key("i"))
	require.NotNil(t, cmd)
	assert.Equal(t, ViewTrack, m.view)
	require.NotNil(t, m.detail)
	assert.Equal(t, "1", m.detailID)
	assert.Contains(t, ansi.Strip(m.View()), "Lumen")

	m = send(t, m, TrackLoadedMsg{ID: "1", Found: false})
	assert.True(t, m.statusErr)
	assert.Equal(t, "Failed to load track '1': track not found", m.status)

	fresh := f.catalog.trending[0]
	fresh.AlbumName = "Coast"
	m = send(t, m, TrackLoadedMsg{ID: "1", Track: fresh, Found: true})
	assert.Equal(t, "Coast", m.detail.AlbumName)

	m = send(t, m, key("enter"))
	assert.Equal(t, "1", f.engine.CurrentTrack().ID)
	assert.Len(t, f.engine.State().Queue, 1)

	m = send(t, m, key("esc"))
	assert.Equal(t, ViewHome, m.view)
	assert.Nil(t, m.detail)
}

func TestServiceErrorShowsStatus(t *testing.T) {
	_, m := newFixture(t)

	m = send(t, m, ServiceErrorMsg{Operation: "load", TrackID: "1", Err: assert.AnError})
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "Failed to load audio '1'")
}

func TestStatusClearsOnlyLatestVersion(t *testing.T) {
	_, m := newFixture(t)

	m = send(t, m, key("S"))
	m = send(t, m, key("S"))
	m = send(t, m, clearStatusMsg{Version: m.statusVers - 1})
	assert.NotEmpty(t, m.status)

	m = send(t, m, clearStatusMsg{Version: m.statusVers})
	assert.Empty(t, m.status)
}

func TestStateChangedStartsTicking(t *testing.T) {
	_, m := newFixture(t)

	m, cmd := sendCmd(t, m, ServiceStateChangedMsg{Previous: playback.StatusEmpty, Current: playback.StatusPlaying})
	assert.NotNil(t, cmd)
	assert.True(t, m.ticking)

	m = send(t, m, TickMsg(time.Now()))
	assert.False(t, m.ticking, "ticking stops once nothing plays")
}

func TestWatchServiceEvents(t *testing.T) {
	engine := playback.New(player.NewMock(), playback.Options{})
	sub := engine.Subscribe()

	engine.SetVolume(0.3)
	msg := WatchServiceEvents(sub)()
	assert.Equal(t, ServiceVolumeChangedMsg{Volume: 0.3}, msg)

	require.NoError(t, engine.Close())
	assert.Equal(t, ServiceClosedMsg{}, WatchServiceEvents(sub)())

	assert.Nil(t, WatchServiceEvents(nil))
}

func TestHelpOverlay(t *testing.T) {
	_, m := newFixture(t)

	m = send(t, m, key("?"))
	assert.True(t, m.showHelp)
	assert.Contains(t, ansi.Strip(m.View()), "Help")

	m = send(t, m, key("j"))
	assert.True(t, m.showHelp)

	m = send(t, m, key("?"))
	assert.False(t, m.showHelp)
}

func TestQuit(t *testing.T) {
	_, m := newFixture(t)

	_, cmd := sendCmd(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestViewLayout(t *testing.T) {
	_, m := newFixture(t)

	out := m.View()
	assert.Equal(t, 24, lipgloss.Height(out))

	plain := ansi.Strip(out)
	assert.Contains(t, plain, "jamwaves")
	assert.Contains(t, plain, "Trending")
	assert.Contains(t, plain, "Evening by ana")
	assert.Contains(t, plain, "2 days ago")
	assert.Contains(t, plain, "Nothing playing")
	assert.Contains(t, plain, "?:help")
}

func TestViewLayoutNarrowStacksPanels(t *testing.T) {
	_, m := newFixture(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 70, Height: 24})

	out := m.View()
	assert.Equal(t, 24, lipgloss.Height(out))
	assert.Equal(t, 70, lipgloss.Width(out))

	plain := ansi.Strip(out)
	assert.Less(t, strings.Index(plain, "Trending"), strings.Index(plain, "Playlists"))
}
