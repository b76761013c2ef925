package models

import (
	"strings"
	"time"
)

// PricePoint is one trading day of a symbol's chart: the closing price and the
// traded volume, stamped with the display date.
//
// Fields:
//   - Timestamp: the upstream bar time.
//   - Date: Timestamp formatted as M/D/YYYY in the display location.
//   - Price: closing price as a fixed 2-decimal string (e.g., "150.12").
//   - Volume: shares traded that day (0 when the upstream omitted it).
//
// swagger:model PricePoint
type PricePoint struct {
	Timestamp time.Time `json:"timestamp" example:"2023-11-14T22:13:20Z"`
	Date      string    `json:"date" example:"11/14/2023"`
	Price     string    `json:"price" example:"150.12"`
	Volume    int64     `json:"volume" example:"1000"`
}

// Series is the ordered sequence of priced points for one fetch, oldest first.
type Series []PricePoint

// Last returns the most recent point, or false when the series is empty.
func (s Series) Last() (PricePoint, bool) {
	if len(s) == 0 {
		return PricePoint{}, false
	}
	return s[len(s)-1], true
}

// NormalizeSymbol upper-cases user input. No other validation is applied.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(s)
}
