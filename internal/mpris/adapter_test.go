package mpris

import (
	"testing"
	"time"

	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/jamwaves/internal/catalog"
	"github.com/llehouerou/jamwaves/internal/playback"
	"github.com/llehouerou/jamwaves/internal/player"
)

func newTestAdapter(t *testing.T) (*playerAdapter, *playback.Engine, *player.Mock) {
	t.Helper()
	backend := player.NewMock()
	engine := playback.New(backend, playback.Options{})
	t.Cleanup(func() { _ = engine.Close() })
	return &playerAdapter{service: engine}, engine, backend
}

func testTrack(id string) catalog.Track {
	return catalog.Track{
		ID:         id,
		Name:       "Song " + id,
		ArtistName: "Artist",
		AlbumName:  "Album",
		Duration:   3 * time.Minute,
		Audio:      "https://example.com/" + id + ".mp3",
		Image:      "https://example.com/" + id + ".jpg",
		Position:   2,
	}
}

func TestPlaybackStatus(t *testing.T) {
	p, engine, _ := newTestAdapter(t)

	status, err := p.PlaybackStatus()
	require.NoError(t, err)
	assert.Equal(t, types.PlaybackStatusStopped, status)

	require.NoError(t, engine.PlayTrack(testTrack("1")))
	status, _ = p.PlaybackStatus()
	assert.Equal(t, types.PlaybackStatusPlaying, status)

	require.NoError(t, p.Pause())
	status, _ = p.PlaybackStatus()
	assert.Equal(t, types.PlaybackStatusPaused, status)

	require.NoError(t, p.Pause())
	status, _ = p.PlaybackStatus()
	assert.Equal(t, types.PlaybackStatusPaused, status, "Pause is idempotent")

	require.NoError(t, p.Play())
	status, _ = p.PlaybackStatus()
	assert.Equal(t, types.PlaybackStatusPlaying, status)
}

func TestMetadata(t *testing.T) {
	p, engine, _ := newTestAdapter(t)

	meta, err := p.Metadata()
	require.NoError(t, err)
	assert.Empty(t, meta.Title)

	require.NoError(t, engine.PlayTrack(testTrack("7")))
	meta, err = p.Metadata()
	require.NoError(t, err)
	assert.Equal(t, "Song 7", meta.Title)
	assert.Equal(t, []string{"Artist"}, meta.Artist)
	assert.Equal(t, "Album", meta.Album)
	assert.Equal(t, "https://example.com/7.jpg", meta.ArtUrl)
	assert.Equal(t, types.Microseconds((3 * time.Minute).Microseconds()), meta.Length)
	assert.Equal(t, formatTrackID("7"), string(meta.TrackId))
}

func TestSeekAndSetPosition(t *testing.T) {
	p, engine, backend := newTestAdapter(t)
	require.NoError(t, engine.PlayTrack(testTrack("1")))

	require.NoError(t, p.Seek(types.Microseconds(10*time.Second/time.Microsecond)))
	assert.Equal(t, 10*time.Second, engine.State().Position)

	require.NoError(t, p.SetPosition(formatTrackID("1"), types.Microseconds(30*time.Second/time.Microsecond)))
	assert.Equal(t, 30*time.Second, engine.State().Position)

	require.NoError(t, p.SetPosition(formatTrackID("other"), 0))
	assert.Equal(t, 30*time.Second, engine.State().Position, "stale track id is ignored")

	pos, err := p.Position()
	require.NoError(t, err)
	assert.Equal(t, (30 * time.Second).Microseconds(), pos)
	assert.Equal(t, []time.Duration{10 * time.Second, 30 * time.Second}, backend.SeekCalls())
}

func TestLoopStatusAndShuffle(t *testing.T) {
	p, engine, _ := newTestAdapter(t)

	require.NoError(t, p.SetLoopStatus(types.LoopStatusTrack))
	assert.True(t, engine.State().Repeat)
	loop, _ := p.LoopStatus()
	assert.Equal(t, types.LoopStatusTrack, loop)

	require.NoError(t, p.SetLoopStatus(types.LoopStatusTrack))
	assert.True(t, engine.State().Repeat, "setting the same status keeps it")

	require.NoError(t, p.SetLoopStatus(types.LoopStatusNone))
	assert.False(t, engine.State().Repeat)

	require.NoError(t, p.SetShuffle(true))
	shuffle, _ := p.Shuffle()
	assert.True(t, shuffle)
	require.NoError(t, p.SetShuffle(true))
	assert.True(t, engine.State().Shuffle)
}

func TestVolume(t *testing.T) {
	p, _, backend := newTestAdapter(t)

	require.NoError(t, p.SetVolume(0.25))
	v, err := p.Volume()
	require.NoError(t, err)
	assert.InDelta(t, 0.25, v, 1e-9)

	require.NoError(t, p.SetVolume(3))
	v, _ = p.Volume()
	assert.InDelta(t, 1.0, v, 1e-9)
	assert.NotEmpty(t, backend.VolumeCalls())
}

func TestNavigation(t *testing.T) {
	p, engine, _ := newTestAdapter(t)

	can, _ := p.CanGoNext()
	assert.False(t, can)

	a, b := testTrack("a"), testTrack("b")
	require.NoError(t, engine.PlayTrack(a, a, b))

	can, _ = p.CanGoNext()
	assert.True(t, can)
	require.NoError(t, p.Next())
	assert.Equal(t, "b", engine.CurrentTrack().ID)
	require.NoError(t, p.Next())
	assert.Equal(t, "a", engine.CurrentTrack().ID)
	require.NoError(t, p.Previous())
	assert.Equal(t, "b", engine.CurrentTrack().ID)
}

func TestRootAdapter(t *testing.T) {
	r := &rootAdapter{}
	name, err := r.Identity()
	require.NoError(t, err)
	assert.Equal(t, "jamwaves", name)

	schemes, _ := r.SupportedUriSchemes()
	assert.Equal(t, []string{"https"}, schemes)
}
