package config

import (
	"os"
	"os/exec"
	"testing"
	"time"
)

// TestLoadConfig_Defaults verifies that defaults are loaded when no env is set.
func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{
		"SERVER_PORT", "CHART_BASE_URL", "CHART_INTERVAL", "CHART_RANGE",
		"CHART_TIMEOUT", "DEFAULT_SYMBOL", "DISPLAY_TIMEZONE", "VIEW_TTL",
	} {
		_ = os.Unsetenv(k)
	}

	LoadConfig()

	if AppConfig.Server.Port != "8080" {
		t.Fatalf("expected default SERVER_PORT=8080, got %q", AppConfig.Server.Port)
	}
	c := AppConfig.Chart
	if c.BaseURL != "https://query1.finance.yahoo.com" || c.Interval != "1d" || c.Range != "1mo" || c.Timeout != 10*time.Second {
		t.Fatalf("unexpected chart defaults: %+v", c)
	}
	if AppConfig.View.DefaultSymbol != "AAPL" || AppConfig.View.TTL != 30*time.Minute {
		t.Fatalf("unexpected view defaults: %+v", AppConfig.View)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("CHART_RANGE", "3mo")
	t.Setenv("CHART_TIMEOUT", "2s")

	LoadConfig()

	if AppConfig.Chart.Range != "3mo" {
		t.Fatalf("range=%q, want 3mo", AppConfig.Chart.Range)
	}
	if AppConfig.Chart.Timeout != 2*time.Second {
		t.Fatalf("timeout=%v, want 2s", AppConfig.Chart.Timeout)
	}
}

func TestViewConfig_Location(t *testing.T) {
	cases := []struct {
		tz   string
		want string
	}{
		{"", time.Local.String()},
		{"Local", time.Local.String()},
		{"UTC", "UTC"},
		{"Not/AZone", time.Local.String()},
	}
	for _, c := range cases {
		if got := (ViewConfig{TimeZone: c.tz}).Location().String(); got != c.want {
			t.Fatalf("Location(%q)=%q, want %q", c.tz, got, c.want)
		}
	}
}

// TestValidateConfig_Fatal uses a subprocess to assert that validateConfig triggers a fatal exit
// when required fields are missing.
func TestValidateConfig_Fatal(t *testing.T) {
	if os.Getenv("RUN_VALIDATE_FATAL") == "1" {
		AppConfig = Config{}
		validateConfig()
		t.Fatalf("validateConfig should have exited the process")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run", "TestValidateConfig_Fatal")
	cmd.Env = append(os.Environ(), "RUN_VALIDATE_FATAL=1")
	err := cmd.Run()
	if err == nil {
		t.Fatalf("expected process to exit with error, got nil")
	}
}
