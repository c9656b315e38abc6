/*
Package config manages TOML config for the nameserve service.
*/
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/anupamr/nameserve/internal/utils"
)

// Config holds the entire config structure.
type Config struct {
	Server ServerConfig `toml:"server"`
	Source SourceConfig `toml:"source"`
}

// ServerConfig has HTTP server related options.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	DefaultLimit int    `toml:"default_limit"`
	MaxLimit     int    `toml:"max_limit"`
}

// SourceConfig describes where the member directory comes from. When both a
// snapshot path and a base URL are set, the snapshot is tried first and the
// remote API is the fallback.
type SourceConfig struct {
	SnapshotPath       string `toml:"snapshot_path"`
	BaseURL            string `toml:"base_url"`
	TokenEnv           string `toml:"token_env"`
	PageSize           int    `toml:"page_size"`
	RefreshTimeoutSecs int    `toml:"refresh_timeout_secs"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8090",
			DefaultLimit: 5,
			MaxLimit:     25,
		},
		Source: SourceConfig{
			SnapshotPath:       "workspace_members.json",
			BaseURL:            "https://api.notion.com",
			TokenEnv:           "WORKSPACE_API_TOKEN",
			PageSize:           100,
			RefreshTimeoutSecs: 30,
		},
	}
}

// Load reads config from a TOML file. A missing path or file falls back to
// defaults; a file that exists but does not parse is an error. Unset fields
// keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" || !utils.FileExists(path) {
		if path != "" {
			log.Warnf("config file %s not found, using defaults", path)
		}
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.fillDefaults()
	log.Debugf("loaded config from %s", path)
	return cfg, nil
}

// Save writes the config to a TOML file, creating parent directories.
func Save(cfg *Config, path string) error {
	return utils.SaveTOMLFile(cfg, path)
}

// Token reads the API token from the configured environment variable.
func (c *Config) Token() string {
	if c.Source.TokenEnv == "" {
		return ""
	}
	return os.Getenv(c.Source.TokenEnv)
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Server.DefaultLimit <= 0 {
		c.Server.DefaultLimit = def.Server.DefaultLimit
	}
	if c.Server.MaxLimit <= 0 {
		c.Server.MaxLimit = def.Server.MaxLimit
	}
	if c.Source.PageSize <= 0 {
		c.Source.PageSize = def.Source.PageSize
	}
	if c.Source.RefreshTimeoutSecs <= 0 {
		c.Source.RefreshTimeoutSecs = def.Source.RefreshTimeoutSecs
	}
}
