// Package config manages the settings document: a flat JSON file with
// dot-path accessors, a hardcoded default document, and section-presence
// validation. A typed view is decoded and validated once at load time so the
// scripts never fumble key paths at runtime.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrConfigInvalid marks a settings document that fails validation: a
// missing section or an out-of-range value.
var ErrConfigInvalid = errors.New("config: invalid settings")

// DefaultPath is the settings file used when no override is given. The
// MT5OPS_CONFIG environment variable overrides it.
const DefaultPath = "config.json"

// Path resolves the settings file location.
func Path() string {
	if p := os.Getenv("MT5OPS_CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

// ---------------------------------------------------------------------------
// Typed configuration
// ---------------------------------------------------------------------------

// Config is the typed view of the settings document.
type Config struct {
	Trading  TradingConfig  `json:"trading"`
	Analysis AnalysisConfig `json:"analysis"`
	Symbols  []SymbolConfig `json:"symbols"`
	Logging  LoggingConfig  `json:"logging"`
	Terminal TerminalConfig `json:"terminal"`
}

// TradingConfig defines risk parameters.
type TradingConfig struct {
	RiskAmount     float64 `json:"risk_amount"`
	MaxDailyLoss   float64 `json:"max_daily_loss"`
	MinRiskReward  float64 `json:"min_risk_reward"`
	MaxSpreadPips  float64 `json:"max_spread_pips"`
	MaxRiskPercent float64 `json:"max_risk_percent"`
	MagicNumber    int     `json:"magic_number"`
}

// AnalysisConfig holds indicator parameters.
type AnalysisConfig struct {
	LookbackPeriod           int     `json:"lookback_period"`
	MACDFast                 int     `json:"macd_fast"`
	MACDSlow                 int     `json:"macd_slow"`
	MACDSignal               int     `json:"macd_signal"`
	SupportResistanceTouches int     `json:"support_resistance_touches"`
	CandleBodyThreshold      float64 `json:"candle_body_threshold"`
}

// SymbolConfig describes one tradable symbol entry.
type SymbolConfig struct {
	Name      string  `json:"name"`
	Enabled   bool    `json:"enabled"`
	MaxSpread float64 `json:"max_spread"`
	Timeframe string  `json:"timeframe"`
}

// LoggingConfig configures the application logger.
type LoggingConfig struct {
	Enabled     bool   `json:"enabled"`
	Level       string `json:"level"`
	LogTrades   bool   `json:"log_trades"`
	LogAnalysis bool   `json:"log_analysis"`
}

// TerminalConfig locates the terminal bridge. RetryAttempts is carried from
// the settings document but intentionally unused: no script retries, and
// inventing retry semantics here would change behavior the operator relies
// on.
type TerminalConfig struct {
	BridgeAddresses   []string `json:"bridge_addresses"`
	ConnectionTimeout int      `json:"connection_timeout"`
	RetryAttempts     int      `json:"retry_attempts"`
}

// EnabledSymbols returns the symbol entries flagged enabled, in document
// order.
func (c *Config) EnabledSymbols() []SymbolConfig {
	var out []SymbolConfig
	for _, s := range c.Symbols {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Document store
// ---------------------------------------------------------------------------

// Store holds the raw settings document with dot-path access. The document
// is nested JSON objects; arrays are not path-addressable and are read
// through the typed view instead.
type Store struct {
	path string
	doc  map[string]any

	// Created reports that the file was missing and the default document
	// was written in its place. A side effect, not an error.
	Created bool
}

// Load reads the settings document at path. A missing file bootstraps the
// hardcoded default document onto disk and loads that.
func Load(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		s.doc = defaultDocument()
		if err := s.Save(); err != nil {
			return nil, fmt.Errorf("config: writing default document: %w", err)
		}
		s.Created = true
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &s.doc); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return s, nil
}

// Get returns the value at a dot path (e.g. "trading.risk_amount"), or def
// when any segment is absent or not an object. Lookup failure is never an
// error.
func (s *Store) Get(dotPath string, def any) any {
	var cur any = s.doc
	for _, key := range strings.Split(dotPath, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return def
		}
		cur, ok = obj[key]
		if !ok {
			return def
		}
	}
	return cur
}

// Set writes a value at a dot path, creating intermediate objects as needed.
// It reports false when an intermediate segment exists but is not an object.
func (s *Store) Set(dotPath string, value any) bool {
	keys := strings.Split(dotPath, ".")
	if s.doc == nil {
		s.doc = make(map[string]any)
	}
	obj := s.doc
	for _, key := range keys[:len(keys)-1] {
		next, ok := obj[key]
		if !ok {
			child := make(map[string]any)
			obj[key] = child
			obj = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return false
		}
		obj = child
	}
	obj[keys[len(keys)-1]] = value
	return true
}

// Save writes the document back to its file.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("config: encoding: %w", err)
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("config: writing %s: %w", s.path, err)
	}
	return nil
}

// Document returns the raw document rendered as indented JSON.
func (s *Store) Document() string {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

// requiredSections are the top-level sections every settings document must
// carry.
var requiredSections = []string{"trading", "analysis", "symbols", "logging", "terminal"}

// Validate checks section presence and value ranges. All violations are
// reported in one error, wrapped around ErrConfigInvalid.
func (s *Store) Validate() error {
	var problems []string

	for _, section := range requiredSections {
		if _, ok := s.doc[section]; !ok {
			problems = append(problems, "missing required section: "+section)
		}
	}

	// A range-checked value that is absent (or not a number) is as invalid
	// as one out of range.
	if v, ok := toFloat(s.Get("trading.risk_amount", nil)); !ok || v <= 0 {
		problems = append(problems, "trading.risk_amount must be a positive number")
	}
	if v, ok := toFloat(s.Get("trading.max_daily_loss", nil)); !ok || v <= 0 {
		problems = append(problems, "trading.max_daily_loss must be a positive number")
	}
	if v, ok := toFloat(s.Get("trading.min_risk_reward", nil)); !ok || v < 1.0 {
		problems = append(problems, "trading.min_risk_reward must be a number of at least 1.0")
	}

	if raw, ok := s.doc["symbols"]; ok {
		if items, ok := raw.([]any); !ok || len(items) == 0 {
			problems = append(problems, "at least one symbol must be configured")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrConfigInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// toFloat widens the numeric types a document value can arrive as: float64
// from JSON, int/float64 from programmatic Set.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Typed decodes the document into the typed Config after validating it.
func (s *Store) Typed() (*Config, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	data, err := json.Marshal(s.doc)
	if err != nil {
		return nil, fmt.Errorf("config: encoding document: %w", err)
	}
	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: decoding document: %w", err)
	}
	return cfg, nil
}

// defaultDocument is the hardcoded bootstrap document written when no
// settings file exists.
func defaultDocument() map[string]any {
	return map[string]any{
		"trading": map[string]any{
			"risk_amount":      50.0,
			"max_daily_loss":   200.0,
			"min_risk_reward":  2.0,
			"max_spread_pips":  3.0,
			"max_risk_percent": 5.0,
			"magic_number":     234567,
		},
		"analysis": map[string]any{
			"lookback_period":            20,
			"macd_fast":                  12,
			"macd_slow":                  26,
			"macd_signal":                9,
			"support_resistance_touches": 2,
			"candle_body_threshold":      1.5,
		},
		"symbols": []any{
			map[string]any{
				"name":       "EURUSD",
				"enabled":    true,
				"max_spread": 0.0003,
				"timeframe":  "M1",
			},
			map[string]any{
				"name":       "GBPUSD",
				"enabled":    true,
				"max_spread": 0.0004,
				"timeframe":  "M1",
			},
		},
		"logging": map[string]any{
			"enabled":      true,
			"level":        "info",
			"log_trades":   true,
			"log_analysis": false,
		},
		"terminal": map[string]any{
			"bridge_addresses": []any{
				"http://127.0.0.1:6280",
				"http://127.0.0.1:8228",
			},
			"connection_timeout": 60,
			"retry_attempts":     3,
		},
	}
}
