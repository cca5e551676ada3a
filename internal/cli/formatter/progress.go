package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// Thresholds follow the weekly status bands: green from 85%, yellow from 55%.
func RenderProgress(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(pct * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case pct < 0.55:
		style = StyleRed
	case pct < 0.85:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// RenderLoadBar renders a day's scheduled minutes against its capacity, so
// an overbooked or empty day stands out in the plan view.
func RenderLoadBar(totalMin, capacityMin, width int) string {
	if capacityMin <= 0 {
		return StyleDim.Render(strings.Repeat("·", width))
	}
	pct := float64(totalMin) / float64(capacityMin)
	if pct > 1 {
		pct = 1
	}
	filled := int(pct * float64(width))
	return StyleBlue.Render(strings.Repeat(filledBlock, filled)) + StyleDim.Render(strings.Repeat(emptyBlock, width-filled))
}
