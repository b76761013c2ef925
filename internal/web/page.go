package web

import (
	"github.com/guttosm/stockpulse/internal/tracker"
)

// page is everything the page template needs.
type page struct {
	ViewID      string
	Symbol      string
	Error       string
	HasChart    bool
	Stale       bool
	ChartSymbol string
	ChartURL    string
	HasSummary  bool
	Summary     tracker.Summary
}

// buildPage renders a session snapshot into the page model. It is a pure
// function of (view id, symbol, state).
func buildPage(id string, snap tracker.Snapshot) page {
	p := page{
		ViewID: id,
		Symbol: snap.Symbol,
		Error:  tracker.ErrorText(snap.State),
	}
	data, stale, ok := tracker.Visible(snap.State)
	if !ok {
		return p
	}
	p.HasChart = true
	p.Stale = stale
	p.ChartSymbol = data.Symbol
	p.ChartURL = "/views/" + id + "/chart"
	p.Summary, p.HasSummary = tracker.Summarize(data.Series)
	return p
}
