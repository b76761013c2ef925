package app

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/guttosm/stockpulse/config"
)

func testConfig(baseURL string) config.Config {
	return config.Config{
		Server: config.ServerConfig{Port: "0"},
		Chart: config.ChartConfig{
			BaseURL:  baseURL,
			Interval: "1d",
			Range:    "1mo",
			Timeout:  2 * time.Second,
		},
		View: config.ViewConfig{
			DefaultSymbol: "AAPL",
			TimeZone:      "UTC",
			TTL:           time.Minute,
			SweepSpec:     "@every 1m",
		},
	}
}

func withConfig(t *testing.T, cfg config.Config) {
	t.Helper()
	old := config.AppConfig
	config.AppConfig = cfg
	t.Cleanup(func() { config.AppConfig = old })
}

func TestInitializeApp_BadSweepSpec(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.View.SweepSpec = "every so often"
	withConfig(t, cfg)

	r, cleanup, err := InitializeApp()
	if err == nil || r != nil || cleanup != nil {
		t.Fatalf("expected error from InitializeApp with invalid sweep spec")
	}
}

func TestInitializeApp_HappyPath(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write([]byte(`{"chart":{"result":[{"timestamp":[1700000000,1700086400],"indicators":{"quote":[{"close":[150.1234,null],"volume":[1000,2000]}]}}]}}`))
	}))
	defer upstream.Close()
	withConfig(t, testConfig(upstream.URL))

	router, cleanup, err := InitializeApp()
	if err != nil || router == nil || cleanup == nil {
		t.Fatalf("InitializeApp failed: %v", err)
	}
	defer cleanup()

	for _, path := range []string{"/healthz", "/readyz", "/"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, w.Code)
		}
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/chart/aapl", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("chart status=%d body=%s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, `"latest_price":"$150.12"`) || !strings.Contains(body, `"date":"11/14/2023"`) {
		t.Fatalf("unexpected chart body: %s", body)
	}
}

var submitPath = regexp.MustCompile(`/views/[0-9a-f-]{36}/submit`)

// TestInitializeApp_TypingDoesNotExhaustRateLimit types a long symbol
// keystroke by keystroke, then submits: the page must render the result
// while the JSON API stays limited.
func TestInitializeApp_TypingDoesNotExhaustRateLimit(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":[{"timestamp":[1700000000],"indicators":{"quote":[{"close":[150.1234],"volume":[1000]}]}}]}}`))
	}))
	defer upstream.Close()
	cfg := testConfig(upstream.URL)
	cfg.Server.RateLimitPerMinute = 3
	withConfig(t, cfg)

	router, cleanup, err := InitializeApp()
	if err != nil {
		t.Fatalf("InitializeApp failed: %v", err)
	}
	defer cleanup()

	send := func(method, path string, form url.Values) *httptest.ResponseRecorder {
		var req *http.Request
		if form != nil {
			req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		} else {
			req = httptest.NewRequest(method, path, nil)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	page := send(http.MethodGet, "/", nil)
	submit := submitPath.FindString(page.Body.String())
	if submit == "" {
		t.Fatalf("no submit path in page: %s", page.Body.String())
	}
	symbolPath := strings.TrimSuffix(submit, "/submit") + "/symbol"

	typed := ""
	for _, ch := range "aaplaaplaapl" {
		typed += string(ch)
		if w := send(http.MethodPost, symbolPath, url.Values{"symbol": {typed}}); w.Code != http.StatusOK {
			t.Fatalf("keystroke %q: status=%d", typed, w.Code)
		}
	}
	send(http.MethodPost, symbolPath, url.Values{"symbol": {"aapl"}})

	w := send(http.MethodPost, submit, url.Values{"symbol": {"aapl"}})
	if w.Code != http.StatusOK {
		t.Fatalf("submit status=%d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "$150.12") {
		t.Fatalf("submit did not render the latest price: %s", w.Body.String())
	}

	var last int
	for i := 0; i < 4; i++ {
		last = send(http.MethodGet, "/api/v1/chart/AAPL", nil).Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("api status=%d, want 429", last)
	}
}
