package domain

import (
	"fmt"
	"math"
	"time"
)

// Progress aggregation is a pure recomputation over History: derived series
// are never cached, so any storage-changed signal can simply rebuild them.
const (
	weeklyDays   = 7
	heatmapDays  = 30
	minBarHeight = 3
	maxBarHeight = 40
)

// heatmap color anchors, cold to hot
var (
	heatCold = [3]int{0x0b, 0x3b, 0x2a}
	heatHot  = [3]int{0x22, 0xc5, 0x5e}
)

// HeatCell is one day of the trailing heatmap window.
type HeatCell struct {
	Date  string
	Count int
	Color string
}

// WeeklyBars renders the trailing 7 calendar days (oldest first, today
// inclusive) as abstract bar heights. Bars are scaled against the window
// maximum and floored at minBarHeight so an empty day still shows.
func WeeklyBars(h History, today time.Time) []int {
	days := trailingDays(today, weeklyDays)
	max := windowMax(h, days)
	bars := make([]int, 0, len(days))
	for _, day := range days {
		v := float64(h[day]) / float64(max)
		height := int(math.Round(v * maxBarHeight))
		if height < minBarHeight {
			height = minBarHeight
		}
		bars = append(bars, height)
	}
	return bars
}

// Heatmap renders the trailing 30 calendar days (oldest first) with a color
// interpolated between the cold and hot anchors, proportional to each day's
// share of the window maximum.
func Heatmap(h History, today time.Time) []HeatCell {
	days := trailingDays(today, heatmapDays)
	max := windowMax(h, days)
	cells := make([]HeatCell, 0, len(days))
	for _, day := range days {
		count := h[day]
		t := float64(count) / float64(max)
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		cells = append(cells, HeatCell{Date: day, Count: count, Color: heatColor(t)})
	}
	return cells
}

func trailingDays(today time.Time, n int) []string {
	days := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		days = append(days, today.AddDate(0, 0, -i).Format(dayLayout))
	}
	return days
}

func windowMax(h History, days []string) int {
	max := 1
	for _, day := range days {
		if h[day] > max {
			max = h[day]
		}
	}
	return max
}

func heatColor(t float64) string {
	lerp := func(a, b int) int {
		return int(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}
	return fmt.Sprintf("#%02x%02x%02x",
		lerp(heatCold[0], heatHot[0]),
		lerp(heatCold[1], heatHot[1]),
		lerp(heatCold[2], heatHot[2]))
}
