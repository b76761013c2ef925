package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/guttosm/stockpulse/internal/domain/models"
	"github.com/guttosm/stockpulse/internal/logger"
	"github.com/guttosm/stockpulse/internal/quote"
	"github.com/guttosm/stockpulse/internal/tracker"
)

// ChartService fetches a symbol's chart and turns it into a price series.
type ChartService interface {
	Series(ctx context.Context, symbol string) (models.Series, error)
}

type chartService struct {
	fetcher quote.Fetcher
	loc     *time.Location
	group   singleflight.Group
}

// NewChartService builds a ChartService. Dates are formatted in loc.
//
// Concurrent calls for the same symbol share one upstream request; the result
// is not kept once the request completes.
func NewChartService(fetcher quote.Fetcher, loc *time.Location) ChartService {
	return &chartService{fetcher: fetcher, loc: loc}
}

var _ tracker.SeriesSource = (ChartService)(nil)

// Series returns the priced points of symbol in upstream order.
// A caller whose ctx ends stops waiting; the shared request keeps running for
// the other callers and is bounded by the client timeout.
func (s *chartService) Series(ctx context.Context, symbol string) (models.Series, error) {
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(symbol, func() (any, error) {
		chart, err := s.fetcher.FetchChart(shared, symbol)
		if err != nil {
			return nil, err
		}
		return tracker.BuildSeries(chart, s.loc), nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			if !errors.Is(res.Err, context.Canceled) {
				lg := logger.Component("service")
				lg.Warn().Err(res.Err).Str("symbol", symbol).Bool("shared", res.Shared).Msg("chart fetch failed")
			}
			return nil, res.Err
		}
		series := res.Val.(models.Series)
		return append(make(models.Series, 0, len(series)), series...), nil
	}
}
