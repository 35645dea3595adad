package playerbar

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/jamwaves/internal/catalog"
	"github.com/llehouerou/jamwaves/internal/icons"
	"github.com/llehouerou/jamwaves/internal/playback"
)

func testState() playback.State {
	track := catalog.Track{ID: "1", Name: "Night Drive", ArtistName: "Lumen", AlbumName: "Coast", Duration: 200 * time.Second}
	return playback.State{
		CurrentTrack: &track,
		IsPlaying:    true,
		Position:     50 * time.Second,
		Duration:     200 * time.Second,
		Volume:       0.7,
		Queue:        []catalog.Track{track, {ID: "2"}, {ID: "3"}},
		CurrentIndex: 0,
		Shuffle:      true,
	}
}

func TestNewState(t *testing.T) {
	s := NewState(testState(), true, ModeCompact)

	assert.Equal(t, playback.StatusPlaying, s.Status)
	assert.Equal(t, "Night Drive", s.Title)
	assert.Equal(t, "Lumen", s.Artist)
	assert.Equal(t, "Coast", s.Album)
	assert.Equal(t, 3, s.QueueLen)
	assert.True(t, s.Favorite)
	assert.True(t, s.Shuffle)
	assert.False(t, s.Repeat)
}

func TestNewState_Empty(t *testing.T) {
	s := NewState(playback.State{Volume: 0.5}, false, ModeCompact)
	assert.Equal(t, playback.StatusEmpty, s.Status)
	assert.Empty(t, s.Title)
}

func TestRender_Compact(t *testing.T) {
	icons.Init("none")
	out := ansi.Strip(Render(NewState(testState(), true, ModeCompact), 140))

	assert.Equal(t, Height(ModeCompact), lipgloss.Height(out))
	assert.Contains(t, out, "Night Drive")
	assert.Contains(t, out, "Lumen · Coast")
	assert.Contains(t, out, "1/3")
	assert.Contains(t, out, "0:50 / 3:20")
	assert.Contains(t, out, "[S]")
	assert.Contains(t, out, "*")
	assert.Contains(t, out, "70%")
	assert.NotContains(t, out, "[R]")
}

func TestRender_CompactNarrowTruncatesTitle(t *testing.T) {
	icons.Init("none")
	st := NewState(testState(), false, ModeCompact)
	st.Title = strings.Repeat("Long title ", 20)

	out := Render(st, 80)
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 80)
	}
}

func TestRender_Paused(t *testing.T) {
	icons.Init("none")
	ps := testState()
	ps.IsPlaying = false

	out := ansi.Strip(Render(NewState(ps, false, ModeCompact), 140))
	assert.Contains(t, out, "||")
}

func TestRender_Idle(t *testing.T) {
	icons.Init("none")
	out := ansi.Strip(Render(NewState(playback.State{}, false, ModeCompact), 60))
	assert.Contains(t, out, "Nothing playing")
}

func TestRender_Expanded(t *testing.T) {
	icons.Init("none")
	ps := testState()
	ps.Repeat = true

	out := ansi.Strip(Render(NewState(ps, false, ModeExpanded), 100))
	assert.Equal(t, Height(ModeExpanded), lipgloss.Height(out))
	assert.Contains(t, out, "Night Drive")
	assert.Contains(t, out, "[R]")
	assert.Contains(t, out, "0:50")
	assert.Contains(t, out, "3:20")
}

func TestRenderProgressBar(t *testing.T) {
	icons.Init("none")

	bar := ansi.Strip(RenderProgressBar(30*time.Second, 60*time.Second, 41, true))
	assert.True(t, strings.HasPrefix(bar, ">  0:30"))
	assert.True(t, strings.HasSuffix(bar, "1:00"))
	assert.Equal(t, strings.Count(bar, filledBlock), strings.Count(bar, emptyBlock))

	narrow := ansi.Strip(RenderProgressBar(30*time.Second, 60*time.Second, 10, false))
	assert.Equal(t, "||  0:30 / 1:00", narrow)
}

func TestRenderVolumeCompact(t *testing.T) {
	icons.Init("none")
	assert.Equal(t, "vol  70%", ansi.Strip(RenderVolumeCompact(0.7)))
	assert.Equal(t, "mute   0%", ansi.Strip(RenderVolumeCompact(0)))
}
