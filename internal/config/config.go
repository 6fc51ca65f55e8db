package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/dshills/coderev/internal/providers"
)

// Config represents the coderev configuration.
type Config struct {
	Provider            string        `json:"provider"`
	Model               string        `json:"model"`
	Format              string        `json:"format"`
	Language            string        `json:"language"`
	Concurrency         int           `json:"concurrency"`
	MaxComments         int           `json:"maxComments"`
	FeedbackTemperature float64       `json:"feedbackTemperature"`
	FeedbackMaxTokens   int           `json:"feedbackMaxTokens"`
	SummaryTemperature  float64       `json:"summaryTemperature"`
	SummaryMaxTokens    int           `json:"summaryMaxTokens"`
	Privacy             PrivacyConfig `json:"privacy"`
	Log                 LogConfig     `json:"log"`
	Server              ServerConfig  `json:"server"`
}

// PrivacyConfig controls redaction behavior.
type PrivacyConfig struct {
	RedactSecrets bool `json:"redactSecrets"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr string `json:"addr"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider:            "groq",
		Model:               providers.DefaultGroqModel,
		Format:              "text",
		Language:            "auto-detect",
		Concurrency:         1,
		MaxComments:         10,
		FeedbackTemperature: 0.25,
		FeedbackMaxTokens:   900,
		SummaryTemperature:  0.4,
		SummaryMaxTokens:    300,
		Privacy: PrivacyConfig{
			RedactSecrets: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for coderev.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "coderev"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "coderev"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "coderev"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "coderev"), nil
	default:
		return filepath.Join(home, ".config", "coderev"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile decodes the config file over the defaults, so keys absent from
// the file keep their default values. A missing file yields Default().
func LoadFile() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}

	// A model left at the groq default follows the chosen provider.
	if cfg.Provider != "groq" && cfg.Model == providers.DefaultGroqModel {
		if m := providers.DefaultModel(cfg.Provider); m != "" {
			cfg.Model = m
		}
	}
	if cfg.Model == "" {
		cfg.Model = providers.DefaultModel(cfg.Provider)
	}

	return cfg, nil
}

// envKeys maps environment variables to config keys understood by SetField.
var envKeys = []struct {
	env string
	key string
}{
	{"CODEREV_PROVIDER", "provider"},
	{"CODEREV_MODEL", "model"},
	{"CODEREV_FORMAT", "format"},
	{"CODEREV_LANGUAGE", "language"},
	{"CODEREV_CONCURRENCY", "concurrency"},
	{"CODEREV_MAX_COMMENTS", "maxComments"},
	{"CODEREV_REDACT_SECRETS", "privacy.redactSecrets"},
	{"CODEREV_LOG_LEVEL", "log.level"},
	{"CODEREV_LOG_FORMAT", "log.format"},
	{"CODEREV_ADDR", "server.addr"},
}

func mergeEnv(cfg *Config) error {
	for _, e := range envKeys {
		v := os.Getenv(e.env)
		if v == "" {
			continue
		}
		if err := SetField(cfg, e.key, v); err != nil {
			return fmt.Errorf("%s: %w", e.env, err)
		}
	}
	return nil
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for key, v := range overrides {
		if v == "" {
			continue
		}
		if err := SetField(cfg, key, v); err != nil {
			return err
		}
	}
	return nil
}

// Keys lists the keys accepted by SetField.
func Keys() []string {
	return []string{
		"provider", "model", "format", "language", "concurrency", "maxComments",
		"feedbackTemperature", "feedbackMaxTokens", "summaryTemperature", "summaryMaxTokens",
		"privacy.redactSecrets", "log.level", "log.format", "server.addr",
	}
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "model":
		cfg.Model = value
	case "format":
		switch value {
		case "text", "json", "markdown":
		default:
			return fmt.Errorf("format must be one of text, json, markdown: got %q", value)
		}
		cfg.Format = value
	case "language":
		cfg.Language = value
	case "concurrency":
		n, err := positiveInt(key, value)
		if err != nil {
			return err
		}
		cfg.Concurrency = n
	case "maxComments":
		n, err := positiveInt(key, value)
		if err != nil {
			return err
		}
		cfg.MaxComments = n
	case "feedbackTemperature":
		f, err := temperature(key, value)
		if err != nil {
			return err
		}
		cfg.FeedbackTemperature = f
	case "feedbackMaxTokens":
		n, err := positiveInt(key, value)
		if err != nil {
			return err
		}
		cfg.FeedbackMaxTokens = n
	case "summaryTemperature":
		f, err := temperature(key, value)
		if err != nil {
			return err
		}
		cfg.SummaryTemperature = f
	case "summaryMaxTokens":
		n, err := positiveInt(key, value)
		if err != nil {
			return err
		}
		cfg.SummaryMaxTokens = n
	case "privacy.redactSecrets":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("privacy.redactSecrets must be a boolean: %w", err)
		}
		cfg.Privacy.RedactSecrets = b
	case "log.level":
		cfg.Log.Level = value
	case "log.format":
		cfg.Log.Format = value
	case "server.addr":
		cfg.Server.Addr = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func positiveInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("%s must be at least 1, got %d", key, n)
	}
	return n, nil
}

func temperature(key, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	if f < 0 || f > 2 {
		return 0, fmt.Errorf("%s must be between 0 and 2, got %g", key, f)
	}
	return f, nil
}
