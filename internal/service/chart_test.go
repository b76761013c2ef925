package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/guttosm/stockpulse/internal/quote"
)

type stubFetcher struct {
	chart *quote.Chart
	err   error
	gate  chan struct{}
	calls atomic.Int32
}

func (s *stubFetcher) FetchChart(ctx context.Context, _ string) (*quote.Chart, error) {
	s.calls.Add(1)
	if s.gate != nil {
		<-s.gate
	}
	return s.chart, s.err
}

func fp(v float64) *float64 { return &v }

func TestChartService_TableDriven(t *testing.T) {
	cases := []struct {
		name    string
		fetcher *stubFetcher
		wantLen int
		wantErr error
	}{
		{
			name: "success",
			fetcher: &stubFetcher{chart: &quote.Chart{
				Timestamps: []int64{1700000000, 1700086400},
				Close:      []*float64{fp(150.1234), nil},
				Volume:     []*float64{fp(1000), fp(2000)},
			}},
			wantLen: 1,
		},
		{
			name:    "invalid symbol",
			fetcher: &stubFetcher{err: quote.ErrInvalidSymbol},
			wantErr: quote.ErrInvalidSymbol,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewChartService(tc.fetcher, time.UTC)
			out, err := svc.Series(context.Background(), "AAPL")
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) || out != nil {
					t.Fatalf("expected %v, got out=%+v err=%v", tc.wantErr, out, err)
				}
				return
			}
			if err != nil || len(out) != tc.wantLen {
				t.Fatalf("unexpected: out=%+v err=%v", out, err)
			}
			if out[0].Price != "150.12" || out[0].Date != "11/14/2023" {
				t.Fatalf("unexpected point: %+v", out[0])
			}
		})
	}
}

func TestChartService_SharesInFlightRequests(t *testing.T) {
	f := &stubFetcher{
		chart: &quote.Chart{Timestamps: []int64{1}, Close: []*float64{fp(1)}},
		gate:  make(chan struct{}),
	}
	svc := NewChartService(f, time.UTC)

	const n = 5
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Series(context.Background(), "AAPL")
			errs <- err
		}()
	}

	// let every caller join the flight before releasing it
	deadline := time.Now().Add(time.Second)
	for f.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	close(f.gate)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}
	if got := f.calls.Load(); got != 1 {
		t.Fatalf("upstream calls=%d, want 1", got)
	}

	// nothing is cached: a later call goes upstream again
	if _, err := svc.Series(context.Background(), "AAPL"); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if got := f.calls.Load(); got != 2 {
		t.Fatalf("upstream calls=%d, want 2", got)
	}
}

func TestChartService_CallerCancelDoesNotAbortOthers(t *testing.T) {
	f := &stubFetcher{
		chart: &quote.Chart{Timestamps: []int64{1}, Close: []*float64{fp(1)}},
		gate:  make(chan struct{}),
	}
	svc := NewChartService(f, time.UTC)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := svc.Series(ctx, "AAPL")
		first <- err
	}()
	for f.calls.Load() == 0 {
		time.Sleep(5 * time.Millisecond)
	}

	second := make(chan error, 1)
	go func() {
		_, err := svc.Series(context.Background(), "AAPL")
		second <- err
	}()

	cancel()
	if err := <-first; !errors.Is(err, context.Canceled) {
		t.Fatalf("first caller err=%v, want canceled", err)
	}
	close(f.gate)
	if err := <-second; err != nil {
		t.Fatalf("second caller err=%v", err)
	}
}
