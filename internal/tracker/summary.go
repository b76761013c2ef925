package tracker

import (
	"github.com/dustin/go-humanize"

	"github.com/guttosm/stockpulse/internal/domain/models"
)

// Summary holds the two card values shown under the chart.
type Summary struct {
	LatestPrice  string // "$150.12"
	LatestVolume string // "1,000"
}

// Summarize reads the last point of s. It reports false for an empty series
// so callers never index past the end.
func Summarize(s models.Series) (Summary, bool) {
	last, ok := s.Last()
	if !ok {
		return Summary{}, false
	}
	return Summary{
		LatestPrice:  "$" + last.Price,
		LatestVolume: humanize.Comma(last.Volume),
	}, true
}
