package layout

import "testing"

func TestContentHeight(t *testing.T) {
	tests := []struct {
		name         string
		windowHeight int
		opts         ContentOpts
		want         int
	}{
		{
			name:         "header only",
			windowHeight: 40,
			opts:         ContentOpts{HeaderHeight: 1},
			want:         39,
		},
		{
			name:         "with player bar",
			windowHeight: 40,
			opts:         ContentOpts{HeaderHeight: 1, PlayerBarHeight: 3},
			want:         36,
		},
		{
			name:         "all components",
			windowHeight: 40,
			opts:         ContentOpts{HeaderHeight: 1, PlayerBarHeight: 6, StatusHeight: 1},
			want:         32,
		},
		{
			name:         "tiny window",
			windowHeight: 3,
			opts:         ContentOpts{HeaderHeight: 1, PlayerBarHeight: 3, StatusHeight: 1},
			want:         0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ContentHeight(tt.windowHeight, tt.opts)
			if got != tt.want {
				t.Errorf("ContentHeight() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsNarrowMode(t *testing.T) {
	if !IsNarrowMode(79) {
		t.Error("IsNarrowMode(79) = false, want true")
	}
	if IsNarrowMode(80) {
		t.Error("IsNarrowMode(80) = true, want false")
	}
}

func TestWidths(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		narrow   bool
		wantMain int
		wantSide int
	}{
		{"side by side", 100, false, 60, 40},
		{"odd width", 121, false, 72, 49},
		{"stacked", 70, true, 70, 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MainWidth(tt.width, tt.narrow); got != tt.wantMain {
				t.Errorf("MainWidth() = %d, want %d", got, tt.wantMain)
			}
			if got := SideWidth(tt.width, tt.narrow); got != tt.wantSide {
				t.Errorf("SideWidth() = %d, want %d", got, tt.wantSide)
			}
		})
	}
}

func TestHeights(t *testing.T) {
	tests := []struct {
		name     string
		content  int
		narrow   bool
		wantMain int
		wantSide int
	}{
		{"side by side", 30, false, 30, 30},
		{"stacked", 30, true, 20, 10},
		{"stacked odd", 31, true, 20, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MainHeight(tt.content, tt.narrow); got != tt.wantMain {
				t.Errorf("MainHeight() = %d, want %d", got, tt.wantMain)
			}
			if got := SideHeight(tt.content, tt.narrow); got != tt.wantSide {
				t.Errorf("SideHeight() = %d, want %d", got, tt.wantSide)
			}
		})
	}
}
