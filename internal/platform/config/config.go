package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DataDir           string
	DBPath            string
	PluginsPath       string
	RoomBaseURL       string
	ReminderInterval  time.Duration
	PluginCallTimeout time.Duration
}

type fileConfig struct {
	RoomBaseURL          string `yaml:"room_base_url"`
	ReminderMinutes      int    `yaml:"reminder_minutes"`
	PluginTimeoutSeconds int    `yaml:"plugin_timeout_seconds"`
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Config{
		DataDir:           dataDir,
		DBPath:            filepath.Join(dataDir, "study-streak.db"),
		PluginsPath:       filepath.Join(dataDir, "plugins"),
		RoomBaseURL:       "http://127.0.0.1:8484",
		ReminderInterval:  25 * time.Minute,
		PluginCallTimeout: 5 * time.Second,
	}

	raw, err := os.ReadFile(filepath.Join(dataDir, "config.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config.yaml: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return Config{}, fmt.Errorf("parse config.yaml: %w", err)
	}
	if fc.RoomBaseURL != "" {
		cfg.RoomBaseURL = fc.RoomBaseURL
	}
	if fc.ReminderMinutes > 0 {
		cfg.ReminderInterval = time.Duration(fc.ReminderMinutes) * time.Minute
	}
	if fc.PluginTimeoutSeconds > 0 {
		cfg.PluginCallTimeout = time.Duration(fc.PluginTimeoutSeconds) * time.Second
	}
	return cfg, nil
}
