package timegrid

import (
	"fmt"
	"time"
)

// Grid maps times of day onto vertical pixel positions inside a visible
// window of hours. The window is half-open: [StartHour, EndHour).
type Grid struct {
	StartHour     int
	EndHour       int
	PixelsPerHour int
}

// Block is the positioned rectangle for one event column entry. Top and
// Height are truncated to the visible window; Start and End keep the true
// event times so labels stay honest for clipped events.
type Block struct {
	Top       float64   `json:"top"`
	Height    float64   `json:"height"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Truncated bool      `json:"truncated"`
}

// Label renders the true time range regardless of clipping.
func (b Block) Label() string {
	return fmt.Sprintf("%s - %s", b.Start.Format("15:04"), b.End.Format("15:04"))
}

// Hours returns the hour labels of the window, one per grid row.
func (g Grid) Hours() []int {
	hours := make([]int, 0, g.EndHour-g.StartHour)
	for h := g.StartHour; h < g.EndHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// Height returns the total pixel height of the grid.
func (g Grid) Height() float64 {
	return float64(g.EndHour-g.StartHour) * float64(g.PixelsPerHour)
}

// Block lays out one event. The second return value is false when the event
// lies entirely outside the window and must not be rendered at all.
//
// An event whose end is not after its start is displayed with a one-hour
// minimum duration instead of being rejected. The original data source
// produced such records and the UI tolerated them; we keep that behaviour
// for seed data rather than failing layout.
func (g Grid) Block(start, end time.Time) (Block, bool) {
	if !end.After(start) {
		end = start.Add(time.Hour)
	}

	startHour := hourOfDay(start)
	endHour := hourOfDay(end)

	windowStart := float64(g.StartHour)
	windowEnd := float64(g.EndHour)
	if endHour <= windowStart || startHour >= windowEnd {
		return Block{}, false
	}

	visibleStart := startHour
	if visibleStart < windowStart {
		visibleStart = windowStart
	}
	visibleEnd := endHour
	if visibleEnd > windowEnd {
		visibleEnd = windowEnd
	}

	scale := float64(g.PixelsPerHour)
	return Block{
		Top:       (visibleStart - windowStart) * scale,
		Height:    (visibleEnd - visibleStart) * scale,
		Start:     start,
		End:       end,
		Truncated: visibleStart != startHour || visibleEnd != endHour,
	}, true
}

// ScrollOffset positions the viewport so the current hour sits roughly at
// its center on first render. It returns 0 and false when now falls outside
// the window, in which case callers must not auto-scroll.
func (g Grid) ScrollOffset(now time.Time) (float64, bool) {
	hour := now.Hour()
	if hour < g.StartHour || hour > g.EndHour {
		return 0, false
	}
	scale := float64(g.PixelsPerHour)
	offset := float64(hour-g.StartHour)*scale - scale/2
	if offset < 0 {
		offset = 0
	}
	return offset, true
}

func hourOfDay(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}
