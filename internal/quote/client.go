package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/guttosm/stockpulse/internal/logger"
)

const (
	chartPath       = "/v8/finance/chart/"
	maxResponseSize = 4 << 20
)

var (
	// ErrInvalidSymbol reports that the upstream answered with a chart envelope
	// but no usable result list.
	ErrInvalidSymbol = errors.New("quote: no chart result")

	// ErrMalformedChart reports a response that is JSON but not shaped like a chart.
	ErrMalformedChart = errors.New("quote: malformed chart response")
)

// Chart is the first result of an upstream chart response: bar timestamps and
// the parallel close/volume arrays. Nil entries are upstream nulls.
type Chart struct {
	Timestamps []int64
	Close      []*float64
	Volume     []*float64
}

// Fetcher retrieves chart data for one symbol.
type Fetcher interface {
	FetchChart(ctx context.Context, symbol string) (*Chart, error)
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Interval   string
	Range      string
	UserAgent  string
	Timeout    time.Duration
	HTTPClient *http.Client // optional; overrides Timeout
}

// Client queries the public finance chart endpoint.
type Client struct {
	baseURL   string
	interval  string
	rng       string
	userAgent string
	http      *http.Client
}

// NewClient builds a Client from opts.
func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		interval:  opts.Interval,
		rng:       opts.Range,
		userAgent: opts.UserAgent,
		http:      hc,
	}
}

var _ Fetcher = (*Client)(nil)

// chartEnvelope mirrors the upstream JSON:
//
//	{ chart: { result: [ { timestamp, indicators: { quote: [ { close, volume } ] } } ], error } }
type chartEnvelope struct {
	Chart *struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators *struct {
				Quote []struct {
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// URL returns the request URL for symbol.
func (c *Client) URL(symbol string) string {
	q := url.Values{}
	q.Set("interval", c.interval)
	q.Set("range", c.rng)
	return c.baseURL + chartPath + url.PathEscape(symbol) + "?" + q.Encode()
}

// FetchChart performs one GET for symbol and returns the first chart result.
//
// Errors:
//   - ErrInvalidSymbol: a chart envelope arrived with a null or empty result list
//     (the upstream answers unknown tickers this way, with status 404).
//   - ErrMalformedChart: the body is JSON but lacks the chart fields, including
//     a quote without its close or volume array. Short arrays are accepted.
//   - any other error: transport, status or decoding failure.
func (c *Client) FetchChart(ctx context.Context, symbol string) (*Chart, error) {
	log := logger.Component("quote")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(symbol), nil)
	if err != nil {
		return nil, fmt.Errorf("quote: build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quote: fetch %s: %w", symbol, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("quote: read body: %w", err)
	}
	log.Debug().
		Str("symbol", symbol).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Msg("chart fetched")

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300

	var env chartEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		if !ok {
			return nil, fmt.Errorf("quote: status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("quote: decode: %w", err)
	}
	if env.Chart == nil {
		if !ok {
			return nil, fmt.Errorf("quote: status %d", resp.StatusCode)
		}
		return nil, ErrMalformedChart
	}
	if len(env.Chart.Result) == 0 {
		if env.Chart.Error != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSymbol, env.Chart.Error.Description)
		}
		return nil, ErrInvalidSymbol
	}
	if !ok {
		return nil, fmt.Errorf("quote: status %d", resp.StatusCode)
	}

	first := env.Chart.Result[0]
	if first.Timestamp == nil || first.Indicators == nil || len(first.Indicators.Quote) == 0 {
		return nil, ErrMalformedChart
	}
	q := first.Indicators.Quote[0]
	if q.Close == nil || q.Volume == nil {
		return nil, ErrMalformedChart
	}
	return &Chart{
		Timestamps: first.Timestamp,
		Close:      q.Close,
		Volume:     q.Volume,
	}, nil
}

// Ping checks that the upstream host answers HTTP at all. Any status counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL, nil)
	if err != nil {
		return fmt.Errorf("quote: build ping: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("quote: ping: %w", err)
	}
	_ = resp.Body.Close()
	return nil
}
