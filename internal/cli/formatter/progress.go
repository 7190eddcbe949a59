package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/releaseplan/internal/capacity"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderUtilization renders a bar like [████░░░░]  45% for a utilization
// percentage. Values above 100 fill the bar and keep their real number.
// The bar takes the color of the utilization band.
func RenderUtilization(pct float64, width int) string {
	if width < 2 {
		width = 2
	}
	frac := pct / 100
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	filled := int(frac * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	style := CapacityStyle(capacity.ClassifyUtilization(pct))
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct)
}
