package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/wattboard/internal/tui/theme"
)

// Bar is one column of a BarChart.
type Bar struct {
	Label string
	Value float64
	Color lipgloss.Color
}

// Sparkline renders a one-line unicode sparkline.
func Sparkline(bars []Bar) string {
	if len(bars) == 0 {
		return ""
	}
	t := theme.Active
	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := 0.0
	for _, b := range bars {
		peak = max(peak, b.Value)
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	for _, b := range bars {
		idx := int(b.Value / peak * float64(len(blocks)-1))
		idx = min(max(idx, 0), len(blocks)-1)
		style := lipgloss.NewStyle().Foreground(b.Color).Background(t.Surface)
		buf.WriteString(style.Render(string(blocks[idx])))
	}
	return buf.String()
}

// BarChart renders vertical bars, each in its own color, with a y-axis of
// rounded tick values and the labels underneath.
func BarChart(bars []Bar, width, height int) string {
	if len(bars) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(bars)
	}

	t := theme.Active
	surface := lipgloss.NewStyle().Background(t.Surface)
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	maxVal := 0.0
	for _, b := range bars {
		maxVal = max(maxVal, b.Value)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	tickStep := chartTickStep(maxVal)
	maxIntervals := max(height/2, 2)
	for int(math.Ceil(maxVal/tickStep)) > maxIntervals {
		tickStep *= 2
	}
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	numIntervals := max(int(math.Round(ceiling/tickStep)), 1)
	rowsPerTick := max(height/numIntervals, 1)
	chartH := rowsPerTick * numIntervals

	yLabelW := max(len(formatChartLabel(ceiling))+1, 4)
	tickLabels := make(map[int]string, numIntervals)
	for i := 1; i <= numIntervals; i++ {
		tickLabels[i*rowsPerTick] = formatChartLabel(tickStep * float64(i))
	}

	n := len(bars)
	chartW := max(width-yLabelW-1, n)
	gap := 1
	barW := (chartW - (n-1)*gap) / n
	if barW < 1 {
		gap, barW = 0, max(chartW/n, 1)
	}
	barW = min(barW, 7)
	axisLen := n*barW + (n-1)*gap

	partial := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(chartH)
		rowBottom := ceiling * float64(row-1) / float64(chartH)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", yLabelW, tickLabels[row])))
		for i, bar := range bars {
			if i > 0 && gap > 0 {
				b.WriteString(surface.Render(strings.Repeat(" ", gap)))
			}
			barStyle := lipgloss.NewStyle().Foreground(bar.Color).Background(t.Surface)
			switch {
			case bar.Value >= rowTop:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case bar.Value > rowBottom:
				idx := int((bar.Value - rowBottom) / (rowTop - rowBottom) * 8)
				idx = min(max(idx, 1), 8)
				b.WriteString(barStyle.Render(strings.Repeat(string(partial[idx]), barW)))
			default:
				b.WriteString(surface.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s└", yLabelW, "0")))
	b.WriteString(axisStyle.Render(strings.Repeat("─", axisLen)))
	b.WriteString("\n")

	// Labels are centered under their bar and clipped to its width.
	b.WriteString(surface.Render(strings.Repeat(" ", yLabelW+1)))
	for i, bar := range bars {
		if i > 0 && gap > 0 {
			b.WriteString(surface.Render(strings.Repeat(" ", gap)))
		}
		lbl := bar.Label
		if len(lbl) > barW {
			lbl = lbl[:barW]
		}
		left := (barW - len(lbl)) / 2
		cell := strings.Repeat(" ", left) + lbl + strings.Repeat(" ", barW-left-len(lbl))
		b.WriteString(lipgloss.NewStyle().Foreground(bar.Color).Background(t.Surface).Render(cell))
	}

	return b.String()
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e3:
		return fmt.Sprintf("%.1fk", v/1e3)
	case v >= 10 || v == math.Trunc(v):
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.1f", v)
	}
}
