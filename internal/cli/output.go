package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/jamwaves/internal/catalog"
)

// Table provides a simple table formatter.
type Table struct {
	w *tabwriter.Writer
}

// NewTable creates a table writing to out with the given headers.
func NewTable(out io.Writer, headers ...string) *Table {
	t := &Table{w: tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)}
	if len(headers) > 0 {
		t.Row(headers...)
	}
	return t
}

// Row adds a row to the table.
func (t *Table) Row(values ...string) {
	_, _ = t.w.Write([]byte(strings.Join(values, "\t") + "\n"))
}

// Flush writes the table output.
func (t *Table) Flush() {
	_ = t.w.Flush()
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatDuration formats d as m:ss or h:mm:ss. Unknown durations print
// as a dash.
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	seconds := int(d / time.Second)
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatAge renders a creation date relative to now ("3 days ago").
func FormatAge(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

// TruncateString truncates a string to maxLen runes, adding "..." if truncated.
func TruncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

func printTracks(out io.Writer, tracks []catalog.Track) {
	if len(tracks) == 0 {
		fmt.Fprintln(out, "No tracks found")
		return
	}
	t := NewTable(out, "#", "TITLE", "ARTIST", "DURATION", "ID")
	for i, tr := range tracks {
		t.Row(
			humanize.Comma(int64(i+1)),
			TruncateString(tr.Name, 40),
			TruncateString(tr.ArtistName, 30),
			FormatDuration(tr.Duration),
			tr.ID,
		)
	}
	t.Flush()
}

func printTrack(out io.Writer, tr catalog.Track) {
	fmt.Fprintf(out, "Title:    %s\n", tr.Name)
	fmt.Fprintf(out, "Artist:   %s\n", tr.ArtistName)
	if tr.AlbumName != "" {
		fmt.Fprintf(out, "Album:    %s\n", tr.AlbumName)
	}
	fmt.Fprintf(out, "Duration: %s\n", FormatDuration(tr.Duration))
	fmt.Fprintf(out, "ID:       %s\n", tr.ID)
	if tr.Audio != "" {
		fmt.Fprintf(out, "Audio:    %s\n", tr.Audio)
	}
	if tr.Image != "" {
		fmt.Fprintf(out, "Artwork:  %s\n", tr.Image)
	}
}

func printPlaylists(out io.Writer, playlists []catalog.Playlist) {
	if len(playlists) == 0 {
		fmt.Fprintln(out, "No playlists found")
		return
	}
	t := NewTable(out, "NAME", "BY", "CREATED", "PREVIEW", "ID")
	for _, p := range playlists {
		preview := "-"
		if len(p.Tracks) > 0 {
			preview = TruncateString(p.Tracks[0].Name+" - "+p.Tracks[0].ArtistName, 40)
		}
		t.Row(TruncateString(p.Name, 30), p.UserName, FormatAge(p.CreatedAt), preview, p.ID)
	}
	t.Flush()
}
