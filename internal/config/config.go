// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for chatgate.
//
// Configuration lives in TOML at ~/.chatgate/config.toml, with built-in
// defaults and environment variable overrides. The file is optional; a
// missing file just means defaults plus environment.
package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/chatgate/internal/util"
)

const (
	configDirName  = ".chatgate"
	configFileName = "config.toml"

	defaultDatabaseFile = "chatgate.db"
	defaultBaseURL      = "https://api.openai.com/v1"
	defaultModel        = "gpt-3.5-turbo"
)

// Config is the complete chatgate configuration.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Cloud    CloudConfig    `toml:"cloud"`
}

// DatabaseConfig locates the credential store.
type DatabaseConfig struct {
	// Path is the SQLite database file path.
	Path string `toml:"path"`
}

// CloudConfig holds remote responder settings. An empty APIKey disables
// the remote path; the application still runs on canned replies.
type CloudConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{},
		Cloud: CloudConfig{
			BaseURL: defaultBaseURL,
			Model:   defaultModel,
		},
	}
}

// ConfigDir returns the chatgate configuration directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}

// ConfigPath returns the path of the TOML configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads configuration in precedence order: defaults, then the TOML
// file if present, then environment overrides. The result is validated.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath is Load with an explicit file path (used in tests).
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides applies environment variables over file values.
// CHATGATE_API_KEY wins over OPENAI_API_KEY when both are set.
func (c *Config) ApplyEnvOverrides() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.Cloud.APIKey = key
	}
	if key := os.Getenv("CHATGATE_API_KEY"); key != "" {
		c.Cloud.APIKey = key
	}
	if u := os.Getenv("CHATGATE_BASE_URL"); u != "" {
		c.Cloud.BaseURL = u
	}
	if model := os.Getenv("CHATGATE_MODEL"); model != "" {
		c.Cloud.Model = model
	}
	if db := os.Getenv("CHATGATE_DB"); db != "" {
		c.Database.Path = db
	}
}

// SetDefaults fills any fields left empty after file and environment.
func (c *Config) SetDefaults() {
	if c.Cloud.BaseURL == "" {
		c.Cloud.BaseURL = defaultBaseURL
	}
	if c.Cloud.Model == "" {
		c.Cloud.Model = defaultModel
	}
	if c.Database.Path == "" {
		if dir, err := ConfigDir(); err == nil {
			c.Database.Path = filepath.Join(dir, defaultDatabaseFile)
		}
	}
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database path is empty")
	}
	u, err := url.Parse(c.Cloud.BaseURL)
	if err != nil {
		return fmt.Errorf("cloud base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("cloud base_url: unsupported scheme %q", u.Scheme)
	}
	if c.Cloud.Model == "" {
		return fmt.Errorf("cloud model is empty")
	}
	return nil
}

// Save writes the configuration to the default path.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveToPath(cfg, path)
}

// SaveToPath writes the configuration as TOML. The file is written
// atomically with 0600 permissions; the directory gets 0700.
func SaveToPath(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# chatgate configuration file\n")
	buf.WriteString("# Generated by chatgate - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0o600, 0o700); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
