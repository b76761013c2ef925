package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/guttosm/stockpulse/internal/domain/models"
	"github.com/guttosm/stockpulse/internal/service"
	"github.com/guttosm/stockpulse/internal/tracker"
)

// quoteReport is what quote mode prints.
type quoteReport struct {
	Symbol       string       `json:"symbol" yaml:"symbol"`
	Error        string       `json:"error,omitempty" yaml:"error,omitempty"`
	LatestPrice  string       `json:"latest_price,omitempty" yaml:"latest_price,omitempty"`
	LatestVolume string       `json:"latest_volume,omitempty" yaml:"latest_volume,omitempty"`
	Points       []quoteEntry `json:"points,omitempty" yaml:"points,omitempty"`
}

type quoteEntry struct {
	Date   string `json:"date" yaml:"date"`
	Price  string `json:"price" yaml:"price"`
	Volume int64  `json:"volume" yaml:"volume"`
}

// runQuote fetches symbol once and writes a report in format (text, json or yaml).
// A fetch failure is still reported, then returned as an error.
func runQuote(ctx context.Context, w io.Writer, svc service.ChartService, symbol, format string) error {
	symbol = models.NormalizeSymbol(symbol)
	if format != "text" && format != "json" && format != "yaml" {
		return fmt.Errorf("unknown format %q", format)
	}

	series, fetchErr := svc.Series(ctx, symbol)
	report := quoteReport{Symbol: symbol}
	if fetchErr != nil {
		report.Error = tracker.MessageFor(fetchErr)
	} else {
		for _, p := range series {
			report.Points = append(report.Points, quoteEntry{Date: p.Date, Price: p.Price, Volume: p.Volume})
		}
		if sum, ok := tracker.Summarize(series); ok {
			report.LatestPrice = sum.LatestPrice
			report.LatestVolume = sum.LatestVolume
		}
	}

	if err := writeReport(w, report, format); err != nil {
		return err
	}
	if fetchErr != nil {
		return fmt.Errorf("%s: %w", report.Error, fetchErr)
	}
	return nil
}

func writeReport(w io.Writer, r quoteReport, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	}

	if r.Error != "" {
		_, err := fmt.Fprintln(w, r.Error)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s Stock Price Chart\n", r.Symbol)
	fmt.Fprintln(tw, "DATE\tPRICE\tVOLUME")
	for _, p := range r.Points {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", p.Date, p.Price, p.Volume)
	}
	if r.LatestPrice != "" {
		fmt.Fprintf(tw, "\nLatest Price:\t%s\n", r.LatestPrice)
		fmt.Fprintf(tw, "Trading Volume:\t%s\n", r.LatestVolume)
	}
	return tw.Flush()
}
