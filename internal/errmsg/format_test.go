package errmsg

import (
	"errors"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		op   Op
		err  error
		want string
	}{
		{"nil error", OpCatalogTrending, nil, ""},
		{"catalog", OpCatalogTrending, errors.New("timeout"), "Failed to load trending tracks: timeout"},
		{"playback", OpPlaybackResume, errors.New("no device"), "Failed to resume playback: no device"},
		{"favorites", OpFavoriteToggle, errors.New("disk full"), "Failed to update favorites: disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.op, tt.err); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name    string
		op      Op
		context string
		err     error
		want    string
	}{
		{"nil error", OpCatalogSearch, "rock", nil, ""},
		{"with context", OpCatalogSearch, "rock", errors.New("refused"), "Failed to search the catalog 'rock': refused"},
		{"empty context", OpCatalogTrack, "", errors.New("gone"), "Failed to load track: gone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatWith(tt.op, tt.context, tt.err); got != tt.want {
				t.Errorf("FormatWith() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	if Wrap(OpStateOpen, nil) != nil {
		t.Error("Wrap(nil) should be nil")
	}

	base := errors.New("locked")
	err := Wrap(OpStateOpen, base)
	if !errors.Is(err, base) {
		t.Errorf("Wrap() should keep the cause, got %v", err)
	}
	if err.Error() != "open database: locked" {
		t.Errorf("Wrap() = %q", err.Error())
	}
}

func TestOpConstants(t *testing.T) {
	ops := []Op{
		OpCatalogTrending, OpCatalogPlaylists, OpCatalogSearch, OpCatalogTrack,
		OpPlaybackStart, OpPlaybackResume, OpPlaybackSeek, OpPlaybackLoad,
		OpFavoriteToggle, OpFavoriteLoad, OpLastfmAuth, OpLastfmScrobble,
		OpServerStart, OpInitialize, OpConfigLoad, OpStateOpen,
	}
	for _, op := range ops {
		s := string(op)
		if s == "" {
			t.Error("empty Op constant")
		}
		if strings.ToLower(s) != s && !strings.Contains(s, "Last.fm") && !strings.Contains(s, "HTTP") {
			t.Errorf("Op %q should be lower case", s)
		}
	}
}
