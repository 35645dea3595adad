package app

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/jamwaves/internal/catalog"
	"github.com/llehouerou/jamwaves/internal/keymap"
	"github.com/llehouerou/jamwaves/internal/playback"
	"github.com/llehouerou/jamwaves/internal/ui/helpbindings"
	"github.com/llehouerou/jamwaves/internal/ui/list"
	"github.com/llehouerou/jamwaves/internal/ui/styles"
)

// ViewMode is the top-level screen.
type ViewMode string

const (
	ViewHome      ViewMode = "home"
	ViewSearch    ViewMode = "search"
	ViewFavorites ViewMode = "favorites"
	ViewTrack     ViewMode = "track"
)

// FocusTarget is the focused panel on the home view.
type FocusTarget int

const (
	FocusTrending FocusTarget = iota
	FocusPlaylists
)

// Favorites is the read side of the favorites store.
type Favorites interface {
	List() []catalog.Track
	ContainsID(id string) bool
}

// Limits are the page sizes for catalog loads.
type Limits struct {
	Trending       int
	Playlists      int
	Search         int
	PlaylistTracks int
}

// Options wires the UI to the long-lived services.
type Options struct {
	Catalog   catalog.Interface
	Favorites Favorites
	Playback  playback.Service
	Limits    Limits
	Logger    *zap.Logger
}

// rowInfo is shared by every copy of the model so list rows can mark the
// playing track and favorites.
type rowInfo struct {
	playingID string
	favorites Favorites
}

// Model is the root application model.
type Model struct {
	ctx       context.Context
	catalog   catalog.Interface
	favorites Favorites
	playback  playback.Service
	sub       *playback.Subscription
	limits    Limits
	log       *zap.Logger
	keys      *keymap.Resolver
	rows      *rowInfo

	view       ViewMode
	returnView ViewMode
	focus      FocusTarget

	trending       list.Model[catalog.Track]
	playlists      list.Model[catalog.Playlist]
	playlistTracks list.Model[catalog.Track]
	openPlaylist   *catalog.Playlist

	search     textinput.Model
	searching  bool // search input has focus
	lastQuery  string
	results    list.Model[catalog.Track]
	favs       list.Model[catalog.Track]
	detail     *catalog.Track
	detailID   string
	help       helpbindings.Model
	showHelp   bool
	spinner    spinner.Model
	pending    int
	state      playback.State
	ticking    bool
	status     string
	statusErr  bool
	statusVers int

	width, height int
}

// New creates the model and subscribes to the engine.
func New(ctx context.Context, o Options) Model {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Limits.Trending <= 0 {
		o.Limits.Trending = catalog.DefaultTrendingLimit
	}
	if o.Limits.Playlists <= 0 {
		o.Limits.Playlists = catalog.DefaultPlaylistLimit
	}
	if o.Limits.Search <= 0 {
		o.Limits.Search = catalog.DefaultSearchLimit
	}
	if o.Limits.PlaylistTracks <= 0 {
		o.Limits.PlaylistTracks = catalog.DefaultTrendingLimit
	}

	rows := &rowInfo{favorites: o.Favorites}

	ti := textinput.New()
	ti.Prompt = "Search: "
	ti.Placeholder = "track name"
	ti.CharLimit = 120
	ti.PromptStyle = styles.T().S().Accent

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styles.T().S().Accent

	m := Model{
		ctx:            ctx,
		catalog:        o.Catalog,
		favorites:      o.Favorites,
		playback:       o.Playback,
		sub:            o.Playback.Subscribe(),
		limits:         o.Limits,
		log:            o.Logger,
		keys:           keymap.NewResolver(keymap.Bindings),
		rows:           rows,
		view:           ViewHome,
		returnView:     ViewHome,
		trending:       list.New("Trending", "No tracks. ctrl+r to reload", trackRow(rows)),
		playlists:      list.New("Playlists", "No playlists. ctrl+r to reload", playlistRow),
		playlistTracks: list.New("", "This playlist is empty", trackRow(rows)),
		search:         ti,
		results:        list.New("Results", "Type a query and press enter", trackRow(rows)),
		favs:           list.New("Favorites", "No favorites yet. f adds the selected track", trackRow(rows)),
		help:           helpbindings.New(),
		spinner:        sp,
		pending:        2, // Init loads trending and playlists
	}
	m.trending.SetFocused(true)
	m.refreshState()
	if o.Favorites != nil {
		m.favs.SetItems(o.Favorites.List(), true)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		WatchServiceEvents(m.sub),
		FetchTrendingCmd(m.ctx, m.catalog, m.limits.Trending, 0),
		FetchPlaylistsCmd(m.ctx, m.catalog, m.limits.Playlists),
		m.spinner.Tick,
	)
}

// Run starts the UI and blocks until the user quits or ctx is done.
func Run(ctx context.Context, o Options) error {
	p := tea.NewProgram(New(ctx, o), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// refreshState takes a fresh engine snapshot.
func (m *Model) refreshState() {
	m.state = m.playback.State()
	m.rows.playingID = ""
	if t := m.state.CurrentTrack; t != nil {
		m.rows.playingID = t.ID
	}
}
