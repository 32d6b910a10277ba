// Package config loads the daemon configuration from YAML, following the
// convention that a missing file means "run with defaults".
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds rakshakd configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Monitor   MonitorConfig   `yaml:"monitor"`
	Settings  SettingsConfig  `yaml:"settings"`
	Language  string          `yaml:"language"`
	Rules     RulesConfig     `yaml:"rules"`
	Alerts    AlertsConfig    `yaml:"alerts"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"` // status endpoint listen address, e.g. ":8080"
}

type MonitorConfig struct {
	IntervalSeconds  int     `yaml:"interval_seconds"`
	EventProbability float64 `yaml:"event_probability"`
	AutoBlock        bool    `yaml:"auto_block"`
}

// SettingsConfig mirrors the user-facing protection toggles.
type SettingsConfig struct {
	VoiceAssistant bool `yaml:"voice_assistant"`
	BlockchainLog  bool `yaml:"blockchain_log"`
	IPFSUpload     bool `yaml:"ipfs_upload"`
}

type RulesConfig struct {
	OverridesPath string `yaml:"overrides_path"`
}

type AlertsConfig struct {
	Sinks []SinkConfig `yaml:"sinks"`
}

type SinkConfig struct {
	Type           string            `yaml:"type"` // file_jsonl | webhook
	Path           string            `yaml:"path"`
	URL            string            `yaml:"url"`
	Headers        map[string]string `yaml:"headers"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
}

type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
	Protocol string `yaml:"protocol"` // grpc | http
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug | info | warn | error
}

// Load reads configuration from a YAML file. If the file doesn't exist, it
// returns a default config and no error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Monitor: MonitorConfig{
			IntervalSeconds:  8,
			EventProbability: 0.3,
		},
		Language: "en",
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Monitor.IntervalSeconds == 0 {
		cfg.Monitor.IntervalSeconds = 8
	}
	if cfg.Monitor.EventProbability == 0 {
		cfg.Monitor.EventProbability = 0.3
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
