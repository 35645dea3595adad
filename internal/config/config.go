package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "jamwaves"

// DefaultClientID is the public demo client id for the Jamendo API.
const DefaultClientID = "2c9a11b9"

type Config struct {
	Icons         string `koanf:"icons"`    // "nerd", "unicode", or "none"
	Database      string `koanf:"database"` // sqlite path, XDG data dir when empty
	Notifications *bool  `koanf:"notifications"`
	MPRIS         *bool  `koanf:"mpris"`

	Jamendo JamendoConfig `koanf:"jamendo"`
	Catalog CatalogConfig `koanf:"catalog"`
	Artwork ArtworkConfig `koanf:"artwork"`
	Player  PlayerConfig  `koanf:"player"`
	Log     LogConfig     `koanf:"log"`
	Server  ServerConfig  `koanf:"server"`

	// Last.fm scrobbling (enables scrobbling when configured)
	Lastfm LastfmConfig `koanf:"lastfm"`
}

// JamendoConfig identifies the API client.
type JamendoConfig struct {
	ClientID string `koanf:"client_id"`
	APIURL   string `koanf:"api_url"` // e.g., "https://api.jamendo.com/v3.0"
}

// CatalogConfig holds page sizes and the request timeout.
type CatalogConfig struct {
	TrendingLimit   int           `koanf:"trending_limit"`   // default: 20
	PlaylistLimit   int           `koanf:"playlist_limit"`   // default: 10
	SearchLimit     int           `koanf:"search_limit"`     // default: 20
	PlaylistPreview int           `koanf:"playlist_preview"` // tracks fetched per playlist (default: 1)
	Timeout         time.Duration `koanf:"timeout"`          // default: 30s
}

// ArtworkConfig selects how placeholder artwork is produced.
type ArtworkConfig struct {
	Mode        string        `koanf:"mode"`     // "url" (default), "generate" or "off"
	Endpoint    string        `koanf:"endpoint"` // generate endpoint or asset base URL
	Width       int           `koanf:"width"`
	Height      int           `koanf:"height"`
	Timeout     time.Duration `koanf:"timeout"`     // per image (default: 10s)
	Concurrency int           `koanf:"concurrency"` // parallel requests (default: 4)
}

// PlayerConfig holds audio settings.
type PlayerConfig struct {
	Volume *float64 `koanf:"volume"` // 0.0-1.0 (default: 0.7)
}

// LogConfig configures the log sink.
type LogConfig struct {
	File  string `koanf:"file"`  // path, "stderr", XDG state dir when empty
	Level string `koanf:"level"` // debug, info, warn, error (default: info)
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Listen string `koanf:"listen"` // default: "127.0.0.1:8787"
}

// LastfmConfig holds Last.fm scrobbling configuration.
type LastfmConfig struct {
	APIKey    string `koanf:"api_key"`
	APISecret string `koanf:"api_secret"`
}

// Load reads the configuration. With an explicit path only that file is
// read and it must exist; otherwise the default locations are tried in
// order, later files overriding earlier ones.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	if explicit != "" {
		path := expandPath(explicit)
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	} else {
		for _, path := range getConfigPaths() {
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
					return nil, fmt.Errorf("load %s: %w", path, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Jamendo.APIURL = strings.TrimSuffix(cfg.Jamendo.APIURL, "/")
	cfg.Database = expandPath(cfg.Database)
	if cfg.Log.File != "stderr" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/jamwaves/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasLastfmConfig returns true if Last.fm scrobbling is configured.
func (c *Config) HasLastfmConfig() bool {
	return c.Lastfm.APIKey != "" && c.Lastfm.APISecret != ""
}

// ClientID returns the Jamendo client id, falling back to the demo id.
func (c *Config) ClientID() string {
	if c.Jamendo.ClientID == "" {
		return DefaultClientID
	}
	return c.Jamendo.ClientID
}

// NotificationsEnabled defaults to true.
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications == nil || *c.Notifications
}

// MPRISEnabled defaults to true.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS == nil || *c.MPRIS
}

// GetCatalogConfig returns the catalog configuration with defaults applied.
func (c *Config) GetCatalogConfig() CatalogConfig {
	cfg := c.Catalog

	if cfg.TrendingLimit <= 0 || cfg.TrendingLimit > 200 {
		cfg.TrendingLimit = 20
	}
	if cfg.PlaylistLimit <= 0 || cfg.PlaylistLimit > 200 {
		cfg.PlaylistLimit = 10
	}
	if cfg.SearchLimit <= 0 || cfg.SearchLimit > 200 {
		cfg.SearchLimit = 20
	}
	if cfg.PlaylistPreview <= 0 || cfg.PlaylistPreview > 50 {
		cfg.PlaylistPreview = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return cfg
}

// GetArtworkConfig returns the artwork configuration with defaults applied.
// Unknown modes fall back to "url".
func (c *Config) GetArtworkConfig() ArtworkConfig {
	cfg := c.Artwork

	switch strings.ToLower(cfg.Mode) {
	case "generate", "off":
		cfg.Mode = strings.ToLower(cfg.Mode)
	default:
		cfg.Mode = "url"
	}
	if cfg.Width <= 0 {
		cfg.Width = 400
	}
	if cfg.Height <= 0 {
		cfg.Height = 400
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Concurrency <= 0 || cfg.Concurrency > 32 {
		cfg.Concurrency = 4
	}

	return cfg
}

// GetVolume returns the initial volume, clamped to [0,1] (default: 0.7).
func (c *Config) GetVolume() float64 {
	if c.Player.Volume == nil {
		return 0.7
	}
	return min(max(*c.Player.Volume, 0), 1)
}

// GetListen returns the HTTP listen address.
func (c *Config) GetListen() string {
	if c.Server.Listen == "" {
		return "127.0.0.1:8787"
	}
	return c.Server.Listen
}

// GetLogConfig returns the log configuration with defaults applied.
func (c *Config) GetLogConfig() (LogConfig, error) {
	cfg := c.Log
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.File == "" {
		path, err := xdg.StateFile(filepath.Join(appName, appName+".log"))
		if err != nil {
			return cfg, err
		}
		cfg.File = path
	}
	return cfg, nil
}
