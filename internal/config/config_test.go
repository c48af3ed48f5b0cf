// internal/config/config_test.go

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 8080 || cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected server defaults: %+v", cfg.Server)
	}
	if cfg.Currency.Locale != "en-US" || cfg.Currency.Symbol != "$" {
		t.Fatalf("unexpected currency defaults: %+v", cfg.Currency)
	}
	if loc, err := cfg.Report.Location(); err != nil || loc != time.Local {
		t.Fatalf("Location=%v,%v", loc, err)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("LEDGER_SERVER_PORT", "9090")
	t.Setenv("LEDGER_LOG_FORMAT", "json")
	t.Setenv("LEDGER_SERVER_READ_TIMEOUT", "3s")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 9090 || cfg.Log.Format != "json" || cfg.Server.ReadTimeout != 3*time.Second {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.Server.Addr() != "0.0.0.0:9090" {
		t.Fatalf("Addr=%s", cfg.Server.Addr())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.yaml")
	body := "server:\n  port: 7070\n  mode: debug\nreport:\n  timezone: UTC\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 7070 || cfg.Server.Mode != "debug" {
		t.Fatalf("file values not applied: %+v", cfg.Server)
	}
	if loc, _ := cfg.Report.Location(); loc.String() != "UTC" {
		t.Fatalf("Location=%v", loc)
	}
}

func TestLoadInvalid(t *testing.T) {
	t.Run("port", func(t *testing.T) {
		t.Setenv("LEDGER_SERVER_PORT", "70000")
		if _, err := Load(""); err == nil {
			t.Fatal("expected port error")
		}
	})
	t.Run("timezone", func(t *testing.T) {
		t.Setenv("LEDGER_REPORT_TIMEZONE", "Mars/Olympus")
		if _, err := Load(""); err == nil {
			t.Fatal("expected timezone error")
		}
	})
	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Fatal("expected read error")
		}
	})
}
