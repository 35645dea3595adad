// Package playerbar renders the now-playing bar at the bottom of the TUI.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/jamwaves/internal/icons"
	"github.com/llehouerou/jamwaves/internal/playback"
	"github.com/llehouerou/jamwaves/internal/ui/render"
)

// DisplayMode controls the player bar appearance.
type DisplayMode int

const (
	ModeCompact  DisplayMode = iota // Single-line view
	ModeExpanded                    // Detailed view with metadata
)

// State holds everything needed to render the player bar.
type State struct {
	Status      playback.Status
	Title       string
	Artist      string
	Album       string
	Position    time.Duration
	Duration    time.Duration
	Volume      float64
	Shuffle     bool
	Repeat      bool
	Favorite    bool
	Index       int // zero-based queue position
	QueueLen    int
	DisplayMode DisplayMode
}

// Height returns the total height of the player bar for the given mode.
func Height(mode DisplayMode) int {
	if mode == ModeExpanded {
		return 6 // 4 content rows + 2 border rows
	}
	return 3 // top border + content + bottom border
}

// NewState builds a render state from an engine snapshot.
func NewState(s playback.State, favorite bool, mode DisplayMode) State {
	st := State{
		Status:      s.Status(),
		Position:    s.Position,
		Duration:    s.Duration,
		Volume:      s.Volume,
		Shuffle:     s.Shuffle,
		Repeat:      s.Repeat,
		Favorite:    favorite,
		Index:       s.CurrentIndex,
		QueueLen:    len(s.Queue),
		DisplayMode: mode,
	}
	if t := s.CurrentTrack; t != nil {
		st.Title = t.Name
		st.Artist = t.ArtistName
		st.Album = t.AlbumName
	}
	return st
}

// Render returns the player bar string for the given width.
func Render(s State, width int) string {
	if s.Status == playback.StatusEmpty {
		return renderIdle(width)
	}
	if s.DisplayMode == ModeExpanded {
		return RenderExpanded(s, width)
	}
	return renderCompact(s, width)
}

func renderIdle(width int) string {
	msg := mutedStyle().Render(icons.Stop() + "  Nothing playing")
	return barStyle().Padding(0, 2).Width(max(width-2, 0)).Render(msg)
}

func statusIcon(s State) string {
	if s.Status == playback.StatusPlaying {
		return icons.Play()
	}
	return icons.Pause()
}

func titleOf(s State) string {
	if s.Title == "" {
		return "Unknown Track"
	}
	return render.Sanitize(s.Title)
}

func infoOf(s State) string {
	var parts []string
	if s.Artist != "" {
		parts = append(parts, render.Sanitize(s.Artist))
	}
	if s.Album != "" {
		parts = append(parts, render.Sanitize(s.Album))
	}
	return strings.Join(parts, " · ")
}

func queuePos(s State) string {
	if s.QueueLen <= 1 {
		return ""
	}
	return fmt.Sprintf("%d/%d", s.Index+1, s.QueueLen)
}

// indicators renders the favorite, shuffle, repeat and volume markers.
func indicators(s State) string {
	var parts []string
	if s.Favorite {
		parts = append(parts, favoriteStyle().Render(icons.Favorite()))
	}
	if s.Shuffle {
		parts = append(parts, activeStyle().Render(icons.Shuffle()))
	}
	if s.Repeat {
		parts = append(parts, activeStyle().Render(icons.Repeat()))
	}
	parts = append(parts, RenderVolumeCompact(s.Volume))
	return strings.Join(parts, " ")
}

func renderCompact(s State, width int) string {
	innerWidth := max(width-6, 0)

	title := titleOf(s)
	info := infoOf(s)
	pos := queuePos(s)
	timeStr := fmt.Sprintf("%s / %s", render.Clock(s.Position), render.Clock(s.Duration))
	status := statusIcon(s)
	marks := indicators(s)

	separator := "   "
	sepWidth := lipgloss.Width(separator)
	timeWidth := lipgloss.Width(timeStr)
	statusWidth := lipgloss.Width(status + "  ")
	marksWidth := lipgloss.Width(marks) + sepWidth
	posSpace := 0
	if pos != "" {
		posSpace = lipgloss.Width(pos) + sepWidth
	}

	titleWidth := lipgloss.Width(title)
	infoWidth := lipgloss.Width(info)

	minBarWidth := 10
	available := innerWidth - statusWidth - timeWidth - sepWidth*2 - minBarWidth - posSpace - marksWidth

	var styledTitle, styledInfo string
	var used int
	switch {
	case titleWidth+sepWidth+infoWidth <= available:
		styledTitle = titleStyle().Render(title)
		styledInfo = artistStyle().Render(info)
		used = titleWidth + sepWidth + infoWidth
	case titleWidth+sepWidth <= available && info != "":
		maxInfo := available - titleWidth - sepWidth
		styledTitle = titleStyle().Render(title)
		styledInfo = artistStyle().Render(render.TruncateEllipsis(info, maxInfo))
		used = titleWidth + sepWidth + maxInfo
	default:
		maxTitle := max(available, 10)
		styledTitle = titleStyle().Render(render.TruncateEllipsis(title, maxTitle))
		used = min(titleWidth, maxTitle)
	}

	barWidth := max(innerWidth-used-posSpace-marksWidth-statusWidth-timeWidth-sepWidth*2, 5)
	filled := min(int(float64(barWidth)*progress(s)), barWidth)

	// Title   Artist · Album   3/12   ▶  ━━━───   1:23 / 3:58   ♥ vol  70%
	var b strings.Builder
	b.WriteString(styledTitle)
	if styledInfo != "" {
		b.WriteString(separator)
		b.WriteString(styledInfo)
	}
	if pos != "" {
		b.WriteString(separator)
		b.WriteString(metaStyle().Render(pos))
	}
	b.WriteString(separator)
	b.WriteString(status)
	b.WriteString("  ")
	b.WriteString(progressBarFilled().Render(strings.Repeat("━", filled)))
	b.WriteString(progressBarEmpty().Render(strings.Repeat("─", barWidth-filled)))
	b.WriteString(separator)
	b.WriteString(progressTimeStyle().Render(timeStr))
	b.WriteString(separator)
	b.WriteString(marks)

	return barStyle().Padding(0, 2).Width(max(width-2, 0)).Render(b.String())
}

// RenderExpanded renders the four-line view: title, artist and album,
// progress, then the mode indicators.
func RenderExpanded(s State, width int) string {
	innerWidth := max(width-6, 0)
	if innerWidth < 30 {
		return renderCompact(s, width)
	}

	info := infoOf(s)
	if info == "" {
		info = "Unknown Artist"
	}
	head := titleOf(s)
	if pos := queuePos(s); pos != "" {
		head = render.Columns(titleStyle().Render(head), metaStyle().Render(pos), innerWidth)
	} else {
		head = titleStyle().Render(render.TruncateEllipsis(head, innerWidth))
	}

	lines := []string{
		head,
		artistStyle().Render(render.TruncateEllipsis(info, innerWidth)),
		RenderProgressBar(s.Position, s.Duration, innerWidth, s.Status == playback.StatusPlaying),
		indicators(s),
	}
	return barStyle().Padding(0, 2).Width(max(width-2, 0)).Render(strings.Join(lines, "\n"))
}

func progress(s State) float64 {
	if s.Duration <= 0 {
		return 0
	}
	return min(max(float64(s.Position)/float64(s.Duration), 0), 1)
}
