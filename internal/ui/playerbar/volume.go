package playerbar

import (
	"fmt"

	"github.com/llehouerou/jamwaves/internal/icons"
)

// RenderVolumeCompact renders the volume indicator, e.g. "vol  70%".
func RenderVolumeCompact(volume float64) string {
	pct := int(volume*100 + 0.5)
	return progressTimeStyle().Render(fmt.Sprintf("%s %3d%%", icons.Volume(volume), pct))
}
