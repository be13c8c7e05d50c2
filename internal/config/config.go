// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

// Package config provides configuration loading and management for the
// n3t inventory terminal.
//
// Configuration is read from ~/.n3t/config.toml with built-in defaults
// and N3T_* environment variable overrides applied last. The directory
// can be relocated with N3T_CONFIG_DIR, which the tests rely on.
package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/n3t-labs/n3t-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete application configuration.
type Config struct {
	API  APIConfig  `toml:"api"`
	Chat ChatConfig `toml:"chat"`
	UI   UIConfig   `toml:"ui"`
	Log  LogConfig  `toml:"log"`
}

// APIConfig controls the backend gateway.
type APIConfig struct {
	// BaseURL is the backend address.
	BaseURL string `toml:"base_url"`
	// TimeoutSeconds bounds every gateway request.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// ChatConfig controls the assistant widget.
type ChatConfig struct {
	// SystemInstruction is sent with every assistant prompt. Empty means
	// the backend default.
	SystemInstruction string `toml:"system_instruction"`
}

// UIConfig contains display settings.
type UIConfig struct {
	// LowStockThreshold marks items at or below this quantity as low stock.
	LowStockThreshold int `toml:"low_stock_threshold"`
}

// LogConfig controls the file logger.
type LogConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `toml:"level"`
	// File is the log file path (empty = ~/.n3t/n3t.log).
	File string `toml:"file"`
}

// Timeout returns the request timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8000",
			TimeoutSeconds: 15,
		},
		Chat: ChatConfig{
			SystemInstruction: "You are a helpful assistant for a warehouse inventory system. Answer concisely.",
		},
		UI: UIConfig{
			LowStockThreshold: 10,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// fillDefaults fills any missing values with defaults after a file load.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = defaults.API.BaseURL
	}
	if cfg.API.TimeoutSeconds == 0 {
		cfg.API.TimeoutSeconds = defaults.API.TimeoutSeconds
	}
	if cfg.Chat.SystemInstruction == "" {
		cfg.Chat.SystemInstruction = defaults.Chat.SystemInstruction
	}
	if cfg.UI.LowStockThreshold == 0 {
		cfg.UI.LowStockThreshold = defaults.UI.LowStockThreshold
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
}

// =============================================================================
// PATH HELPERS
// =============================================================================

// ConfigDir returns the application directory, honoring N3T_CONFIG_DIR.
func ConfigDir() (string, error) {
	if dir := os.Getenv("N3T_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".n3t"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LogPath returns the effective log file path for the given config.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "n3t.log"), nil
}

// EnsureConfigDir ensures the application directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads the config file, falling back to defaults when it is absent.
// Environment overrides are applied last, then the result is validated.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to decode %s: %w", path, err)
			}
			fillDefaults(cfg)
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the default TOML file atomically.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("# n3t configuration file\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes a single invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if _, err := url.ParseRequestURI(c.API.BaseURL); err != nil {
		return ValidationError{Field: "api.base_url", Message: fmt.Sprintf("invalid URL: %v", err)}
	}
	if c.API.TimeoutSeconds < 1 || c.API.TimeoutSeconds > 300 {
		return ValidationError{
			Field:   "api.timeout_seconds",
			Message: fmt.Sprintf("must be 1-300, got %d", c.API.TimeoutSeconds),
		}
	}
	if c.UI.LowStockThreshold < 0 {
		return ValidationError{Field: "ui.low_stock_threshold", Message: "must be non-negative"}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		}
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides.
//
// Supported variables:
//   - N3T_API_URL: overrides api.base_url
//   - N3T_TIMEOUT: overrides api.timeout_seconds
//   - N3T_SYSTEM_PROMPT: overrides chat.system_instruction
//   - N3T_LOG_LEVEL: overrides log.level
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("N3T_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("N3T_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.API.TimeoutSeconds = secs
		}
	}
	if v := os.Getenv("N3T_SYSTEM_PROMPT"); v != "" {
		c.Chat.SystemInstruction = v
	}
	if v := os.Getenv("N3T_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// =============================================================================
// GLOBAL INSTANCE (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance, loading it on first
// access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
