package tracker

import (
	"math"
	"math/big"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/stockpulse/internal/domain/models"
	"github.com/guttosm/stockpulse/internal/quote"
)

// DateLayout renders dates as M/D/YYYY.
const DateLayout = "1/2/2006"

// BuildSeries zips the chart's timestamps with its close and volume arrays.
//
// Behavior:
//   - A point whose close is null or missing is dropped.
//   - A null or missing volume becomes 0.
//   - Output keeps the upstream order.
//   - Prices are rounded to 2 decimals and kept as fixed strings.
func BuildSeries(c *quote.Chart, loc *time.Location) models.Series {
	if c == nil {
		return models.Series{}
	}
	if loc == nil {
		loc = time.Local
	}

	out := make(models.Series, 0, len(c.Timestamps))
	for i, ts := range c.Timestamps {
		if i >= len(c.Close) || c.Close[i] == nil {
			continue
		}
		var vol int64
		if i < len(c.Volume) && c.Volume[i] != nil {
			vol = int64(math.Round(*c.Volume[i]))
		}
		at := time.Unix(ts, 0).In(loc)
		out = append(out, models.PricePoint{
			Timestamp: at,
			Date:      at.Format(DateLayout),
			Price:     FormatPrice(*c.Close[i]),
			Volume:    vol,
		})
	}
	return out
}

// FormatPrice renders v with exactly 2 decimals. Rounding uses the exact
// binary value of v, halves going away from zero, so 1.005 (stored as
// 1.00499...) becomes "1.00".
func FormatPrice(v float64) string {
	x := new(big.Float).SetPrec(128).SetFloat64(math.Abs(v))
	x.Mul(x, big.NewFloat(100))
	x.Add(x, big.NewFloat(0.5))
	cents, _ := x.Int(nil)
	if v < 0 {
		cents.Neg(cents)
	}
	return decimal.NewFromBigInt(cents, -2).StringFixed(2)
}

// FilterPriced drops points without a price. Applying it to an already
// filtered series returns an equal series.
func FilterPriced(s models.Series) models.Series {
	out := make(models.Series, 0, len(s))
	for _, p := range s {
		if p.Price == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
