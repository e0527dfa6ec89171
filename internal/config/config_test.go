package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}
	return path
}

func TestLoadBootstrapsDefaultDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !s.Created {
		t.Error("Created = false, want true for a missing file")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default document was not written: %v", err)
	}

	// The bootstrap document must validate and carry the known defaults.
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() on default document = %v", err)
	}
	if got := s.Get("trading.risk_amount", 0.0); got != 50.0 {
		t.Errorf("trading.risk_amount = %v, want 50.0", got)
	}
	if got := s.Get("terminal.retry_attempts", nil); got == nil {
		t.Error("terminal.retry_attempts missing from default document")
	}

	// Loading again must read the written file, not re-create it.
	s2, err := Load(path)
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if s2.Created {
		t.Error("second Load() reported Created = true")
	}
}

func TestGetDotPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := s.Get("analysis.macd_fast", nil); got != 12 && got != 12.0 {
		t.Errorf("analysis.macd_fast = %v, want 12", got)
	}

	// Absent paths return the caller default, never an error.
	if got := s.Get("trading.nonexistent", "fallback"); got != "fallback" {
		t.Errorf("Get(absent) = %v, want caller default", got)
	}
	if got := s.Get("no.such.section", 7); got != 7 {
		t.Errorf("Get(absent section) = %v, want caller default", got)
	}
	// Path through a non-object also falls back.
	if got := s.Get("trading.risk_amount.deeper", "d"); got != "d" {
		t.Errorf("Get(through scalar) = %v, want caller default", got)
	}
}

func TestSetDotPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !s.Set("trading.risk_amount", 75.0) {
		t.Fatal("Set(trading.risk_amount) = false")
	}
	if got := s.Get("trading.risk_amount", nil); got != 75.0 {
		t.Errorf("after Set, trading.risk_amount = %v, want 75.0", got)
	}

	// Intermediate objects are created on demand.
	if !s.Set("notifications.email.enabled", true) {
		t.Fatal("Set with missing intermediates = false")
	}
	if got := s.Get("notifications.email.enabled", false); got != true {
		t.Errorf("after Set, notifications.email.enabled = %v, want true", got)
	}

	// Setting through a scalar fails.
	if s.Set("trading.risk_amount.sub", 1) {
		t.Error("Set through a scalar should report false")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	s.Set("trading.risk_amount", 75.0)
	if err := s.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if got := reloaded.Get("trading.risk_amount", nil); got != 75.0 {
		t.Errorf("reloaded trading.risk_amount = %v, want 75.0", got)
	}
}

func TestValidateRules(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{
			"missing section",
			`{"trading": {"risk_amount": 50, "max_daily_loss": 200, "min_risk_reward": 2},
			  "analysis": {}, "symbols": [{"name": "EURUSD", "enabled": true}], "logging": {}}`,
		},
		{
			"non-positive risk amount",
			`{"trading": {"risk_amount": 0, "max_daily_loss": 200, "min_risk_reward": 2},
			  "analysis": {}, "symbols": [{"name": "EURUSD", "enabled": true}], "logging": {}, "terminal": {}}`,
		},
		{
			"non-positive max daily loss",
			`{"trading": {"risk_amount": 50, "max_daily_loss": -1, "min_risk_reward": 2},
			  "analysis": {}, "symbols": [{"name": "EURUSD", "enabled": true}], "logging": {}, "terminal": {}}`,
		},
		{
			"risk reward below one",
			`{"trading": {"risk_amount": 50, "max_daily_loss": 200, "min_risk_reward": 0.5},
			  "analysis": {}, "symbols": [{"name": "EURUSD", "enabled": true}], "logging": {}, "terminal": {}}`,
		},
		{
			"no symbols",
			`{"trading": {"risk_amount": 50, "max_daily_loss": 200, "min_risk_reward": 2},
			  "analysis": {}, "symbols": [], "logging": {}, "terminal": {}}`,
		},
		{
			"empty trading section",
			`{"trading": {},
			  "analysis": {}, "symbols": [{"name": "EURUSD", "enabled": true}], "logging": {}, "terminal": {}}`,
		},
		{
			"risk amount absent",
			`{"trading": {"max_daily_loss": 200, "min_risk_reward": 2},
			  "analysis": {}, "symbols": [{"name": "EURUSD", "enabled": true}], "logging": {}, "terminal": {}}`,
		},
		{
			"risk amount not a number",
			`{"trading": {"risk_amount": "50", "max_daily_loss": 200, "min_risk_reward": 2},
			  "analysis": {}, "symbols": [{"name": "EURUSD", "enabled": true}], "logging": {}, "terminal": {}}`,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := Load(writeConfig(t, c.content))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if err := s.Validate(); !errors.Is(err, ErrConfigInvalid) {
				t.Errorf("Validate() = %v, want ErrConfigInvalid", err)
			}
		})
	}
}

func TestTypedView(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg, err := s.Typed()
	if err != nil {
		t.Fatalf("Typed() error = %v", err)
	}
	if cfg.Trading.RiskAmount != 50.0 || cfg.Trading.MinRiskReward != 2.0 {
		t.Errorf("Trading = %+v, want defaults", cfg.Trading)
	}
	if len(cfg.Terminal.BridgeAddresses) == 0 || cfg.Terminal.ConnectionTimeout != 60 {
		t.Errorf("Terminal = %+v, want bridge addresses and 60s timeout", cfg.Terminal)
	}
	if cfg.Terminal.RetryAttempts != 3 {
		t.Errorf("RetryAttempts = %d, want 3 carried through unused", cfg.Terminal.RetryAttempts)
	}

	enabled := cfg.EnabledSymbols()
	if len(enabled) != 2 || enabled[0].Name != "EURUSD" || enabled[1].Name != "GBPUSD" {
		t.Errorf("EnabledSymbols() = %+v, want EURUSD and GBPUSD", enabled)
	}
}

func TestTypedViewRejectsInvalidDocument(t *testing.T) {
	s, err := Load(writeConfig(t, `{"trading": {"risk_amount": -5}}`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := s.Typed(); !errors.Is(err, ErrConfigInvalid) {
		t.Errorf("Typed() error = %v, want ErrConfigInvalid", err)
	}
}

func TestPathEnvOverride(t *testing.T) {
	t.Setenv("MT5OPS_CONFIG", "/tmp/elsewhere.json")
	if got := Path(); got != "/tmp/elsewhere.json" {
		t.Errorf("Path() = %q, want env override", got)
	}
	t.Setenv("MT5OPS_CONFIG", "")
	if got := Path(); got != DefaultPath {
		t.Errorf("Path() = %q, want %q", got, DefaultPath)
	}
}
