package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockpulse/internal/domain/dto"
	"github.com/guttosm/stockpulse/internal/domain/models"
	"github.com/guttosm/stockpulse/internal/quote"
	"github.com/guttosm/stockpulse/internal/service"
	"github.com/guttosm/stockpulse/internal/tracker"
)

// Handler serves the JSON chart endpoint.
type Handler struct {
	svc service.ChartService
}

// NewHandler constructs a new Handler backed by svc.
func NewHandler(svc service.ChartService) *Handler {
	return &Handler{svc: svc}
}

// GetChart handles GET /api/v1/chart/{symbol} requests.
//
// The symbol is upper-cased and otherwise passed through as typed.
//
// Responses:
//   - 200 OK: ChartResponse with the priced points and the two summary values.
//   - 404 Not Found: "Invalid symbol" (upstream returned no result).
//   - 502 Bad Gateway: "Error fetching data" (transport or decoding failure).
//
// GetChart godoc
// @Summary      Get one month of daily prices for a symbol
// @Description  Fetches the 1-day/1-month chart for the symbol, drops days without a close price and returns the series with the latest price and volume
// @Tags         chart
// @Produce      json
// @Param        symbol  path      string  true  "Stock symbol" example(AAPL)
// @Success      200     {object}  dto.ChartResponse  "Success"
// @Failure      404     {object}  dto.ErrorResponse  "Invalid symbol"
// @Failure      502     {object}  dto.ErrorResponse  "Error fetching data"
// @Router       /api/v1/chart/{symbol} [get]
func (h *Handler) GetChart(c *gin.Context) {
	symbol := models.NormalizeSymbol(c.Param("symbol"))

	series, err := h.svc.Series(c.Request.Context(), symbol)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, quote.ErrInvalidSymbol) {
			status = http.StatusNotFound
		}
		c.JSON(status, dto.NewErrorResponse(tracker.MessageFor(err), err))
		return
	}

	resp := dto.ChartResponse{Symbol: symbol, Points: series}
	if sum, ok := tracker.Summarize(series); ok {
		resp.LatestPrice = sum.LatestPrice
		resp.LatestVolume = sum.LatestVolume
	}
	c.JSON(http.StatusOK, resp)
}
