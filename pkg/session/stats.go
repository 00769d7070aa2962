package session

import (
	"fmt"
	"time"

	"github.com/c9s/chartdesk/pkg/types"
)

// Stats summarizes the bars of the current view.
type Stats struct {
	Name      string          `json:"name"`
	TimeRange types.TimeRange `json:"timeRange"`

	Bars      int    `json:"bars"`
	FirstDate string `json:"firstDate"`
	LastDate  string `json:"lastDate"`

	LastClose        float64 `json:"lastClose"`
	Change           float64 `json:"change"`
	ChangePercentage float64 `json:"changePercentage"`

	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Volume float64 `json:"volume"`

	Skipped  int       `json:"skipped"`
	LoadedAt time.Time `json:"loadedAt"`
}

// ComputeStats summarizes bars, the change is measured from the first close to the last close.
func ComputeStats(bars types.BarSlice) (Stats, bool) {
	first, ok := bars.First()
	if !ok {
		return Stats{}, false
	}
	last, _ := bars.Last()

	highs := make(types.Float64Slice, len(bars))
	lows := make(types.Float64Slice, len(bars))
	for i, b := range bars {
		highs[i] = b.High
		lows[i] = b.Low
	}

	stats := Stats{
		Bars:      len(bars),
		FirstDate: first.DateStr,
		LastDate:  last.DateStr,
		LastClose: last.Close,
		Change:    last.Close - first.Close,
		High:      highs.Max(),
		Low:       lows.Min(),
		Volume:    bars.Volumes().Sum(),
	}

	if first.Close != 0 {
		stats.ChangePercentage = stats.Change / first.Close
	}

	return stats, true
}

func (s Stats) String() string {
	return fmt.Sprintf("%s %s %d bars %s..%s close %.2f (%+.2f, %+.2f%%)",
		s.Name, s.TimeRange, s.Bars, s.FirstDate, s.LastDate, s.LastClose, s.Change, s.ChangePercentage*100)
}

// Stats summarizes the bars inside the current time range.
func (s *Session) Stats() (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats, ok := ComputeStats(s.bars.Window(s.timeRange))
	if !ok {
		return Stats{}, ErrNotLoaded
	}

	stats.Name = s.name
	stats.TimeRange = s.timeRange
	stats.LoadedAt = s.loadedAt
	if s.report != nil {
		stats.Skipped = len(s.report.Skipped)
	}
	return stats, nil
}
