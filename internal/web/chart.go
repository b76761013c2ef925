package web

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/shopspring/decimal"

	"github.com/guttosm/stockpulse/internal/tracker"
)

const lineColor = "#2196f3"

// newPriceChart builds the line chart of a loaded series: dates on the X
// axis, an auto-scaled price axis and an axis tooltip.
func newPriceChart(data tracker.Loaded) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: data.Symbol + " Stock Price Chart",
			Width:     "100%",
			Height:    "400px",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Scale: opts.Bool(true)}),
	)

	dates := make([]string, 0, len(data.Series))
	prices := make([]opts.LineData, 0, len(data.Series))
	for _, p := range data.Series {
		v, err := decimal.NewFromString(p.Price)
		if err != nil {
			continue
		}
		dates = append(dates, p.Date)
		prices = append(prices, opts.LineData{Value: v.InexactFloat64()})
	}

	line.SetXAxis(dates).AddSeries("price", prices,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: lineColor}),
	)
	return line
}

func renderChart(w io.Writer, data tracker.Loaded) error {
	return newPriceChart(data).Render(w)
}
