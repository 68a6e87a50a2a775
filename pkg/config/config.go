package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"pschat/pkg/userid"

	"github.com/BurntSushi/toml"
)

// Config represents the application configuration
type Config struct {
	Server       ServerConfig `json:"server" toml:"server"`
	User         UserConfig   `json:"user" toml:"user"`
	Rooms        RoomsConfig  `json:"rooms" toml:"rooms"`
	HistoryLimit int          `json:"history_limit" toml:"history_limit"`
	HistoryTrim  int          `json:"history_trim" toml:"history_trim"`
	BacklogSize  int          `json:"backlog_size" toml:"backlog_size"`
	LogLevel     string       `json:"log_level" toml:"log_level"`
	LogFile      string       `json:"log_file" toml:"log_file"`
	LogFormat    string       `json:"log_format" toml:"log_format"`
	Theme        string       `json:"theme" toml:"theme"`
}

// ServerConfig holds the connection settings
type ServerConfig struct {
	URL       string  `json:"url" toml:"url"`
	SendRate  float64 `json:"send_rate" toml:"send_rate"`   // lines per second
	SendBurst int     `json:"send_burst" toml:"send_burst"` // lines sent back to back
}

// UserConfig holds the local user settings
type UserConfig struct {
	Name string `json:"name" toml:"name"`
}

// RoomsConfig lists the rooms opened at startup
type RoomsConfig struct {
	Autojoin []string `json:"autojoin" toml:"autojoin"`
}

// Default returns a configuration with default values
func Default() Config {
	return Config{
		Server: ServerConfig{
			URL:       "wss://sim3.psim.us/showdown/websocket",
			SendRate:  5,
			SendBurst: 5,
		},
		Rooms: RoomsConfig{
			Autojoin: []string{"lobby"},
		},
		HistoryLimit: 100,
		HistoryTrim:  20,
		BacklogSize:  1000,
		LogLevel:     "info",
		LogFormat:    "json",
		Theme:        "default",
	}
}

// Load loads configuration from the specified path.
// If the file doesn't exist, creates one with default values.
// Fields missing from the file keep their defaults.
func Load(configPath string) (Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return Config{}, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := Save(configPath, cfg); err != nil {
				return Config{}, fmt.Errorf("failed to create default config: %w", err)
			}
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if isTOML(configPath) {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
		return cfg, nil
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save saves the configuration to the specified path
func Save(configPath string, cfg Config) error {
	var data []byte
	if isTOML(configPath) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	if strings.TrimSpace(c.Server.URL) != "" {
		u, err := url.Parse(c.Server.URL)
		if err != nil || (u.Scheme != "ws" && u.Scheme != "wss") || u.Host == "" {
			return fmt.Errorf("server.url must be a ws:// or wss:// URL, got: %q", c.Server.URL)
		}
	}

	if c.Server.SendRate <= 0 {
		return fmt.Errorf("server.send_rate must be positive, got: %g", c.Server.SendRate)
	}
	if c.Server.SendBurst <= 0 {
		return fmt.Errorf("server.send_burst must be positive, got: %d", c.Server.SendBurst)
	}

	for _, id := range c.Rooms.Autojoin {
		if id == "" || !userid.IsRoomIDSafe(id) {
			return fmt.Errorf("rooms.autojoin contains an invalid room id: %q", id)
		}
	}

	if c.HistoryLimit <= 0 {
		return fmt.Errorf("history_limit must be positive, got: %d", c.HistoryLimit)
	}
	if c.HistoryTrim <= 0 || c.HistoryTrim >= c.HistoryLimit {
		return fmt.Errorf("history_trim must be between 1 and history_limit-1, got: %d", c.HistoryTrim)
	}
	if c.BacklogSize <= 0 {
		return fmt.Errorf("backlog_size must be positive, got: %d", c.BacklogSize)
	}

	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unsupported log_level: %s", c.LogLevel)
	}

	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "", "json", "text":
	default:
		return fmt.Errorf("unsupported log_format: %s", c.LogFormat)
	}

	switch strings.ToLower(strings.TrimSpace(c.Theme)) {
	case "", "default", "cyan", "dark":
	default:
		return fmt.Errorf("unsupported theme: %s", c.Theme)
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".pschat/config.json"
	}
	return filepath.Join(homeDir, ".pschat", "config.json")
}
