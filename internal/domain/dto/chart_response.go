package dto

import "github.com/guttosm/stockpulse/internal/domain/models"

// ChartResponse represents the JSON structure returned by the
// GET /api/v1/chart/{symbol} endpoint.
//
// LatestPrice and LatestVolume mirror the two summary cards of the page and
// are empty when the series has no priced points.
type ChartResponse struct {
	Symbol       string              `json:"symbol" example:"AAPL"`
	Points       []models.PricePoint `json:"points"`
	LatestPrice  string              `json:"latest_price,omitempty" example:"$150.12"`
	LatestVolume string              `json:"latest_volume,omitempty" example:"1,000"`
}
