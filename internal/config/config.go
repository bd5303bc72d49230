package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "yapr.cfg.json"

// DefaultGameLog is where the game writes its log on a default install.
const DefaultGameLog = `C:\Program Files\Roberts Space Industries\StarCitizen\LIVE\Game.log`

// TailConfig holds game log tailing settings
type TailConfig struct {
	GameLog      string        `json:"gameLog" mapstructure:"gameLog"`
	PollInterval time.Duration `json:"pollInterval" mapstructure:"pollInterval"`
	// Bootstrap scans the existing log for identity lines on startup.
	Bootstrap bool `json:"bootstrap" mapstructure:"bootstrap"`
}

// JSONConfig holds JSON file storage backend settings
type JSONConfig struct {
	Path           string `json:"path" mapstructure:"path"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
}

// SQLiteConfig holds SQLite storage backend settings
type SQLiteConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// StorageConfig selects and configures the persistence backend
type StorageConfig struct {
	Type   string        `json:"type" mapstructure:"type"`
	JSON   JSONConfig    `json:"json" mapstructure:"json"`
	SQLite SQLiteConfig  `json:"sqlite" mapstructure:"sqlite"`
	Export time.Duration `json:"exportInterval" mapstructure:"exportInterval"`
}

// OTelConfig holds OpenTelemetry settings
type OTelConfig struct {
	Enabled        bool          `json:"enabled" mapstructure:"enabled"`
	ServiceName    string        `json:"serviceName" mapstructure:"serviceName"`
	BatchTimeout   time.Duration `json:"batchTimeout" mapstructure:"batchTimeout"`
	Endpoint       string        `json:"endpoint" mapstructure:"endpoint"`
	Insecure       bool          `json:"insecure" mapstructure:"insecure"`
	Metrics        bool          `json:"metrics" mapstructure:"metrics"`
	MetricInterval time.Duration `json:"metricInterval" mapstructure:"metricInterval"`
}

// AlertConfig holds dungeon alert settings
type AlertConfig struct {
	Enabled  bool          `json:"enabled" mapstructure:"enabled"`
	Cooldown time.Duration `json:"cooldown" mapstructure:"cooldown"`
}

// MonitorConfig holds status file settings
type MonitorConfig struct {
	Enabled    bool          `json:"enabled" mapstructure:"enabled"`
	StatusFile string        `json:"statusFile" mapstructure:"statusFile"`
	Interval   time.Duration `json:"interval" mapstructure:"interval"`
	Theme      string        `json:"theme" mapstructure:"theme"`
}

// ManagerAlias maps a raw transit manager identifier to a display name.
type ManagerAlias struct {
	Raw  string `json:"raw" mapstructure:"raw"`
	Name string `json:"name" mapstructure:"name"`
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file. A missing file is
// not an error; the defaults apply.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./yaprlogs")

	viper.SetDefault("tail.gameLog", DefaultGameLog)
	viper.SetDefault("tail.pollInterval", "120ms")
	viper.SetDefault("tail.bootstrap", true)

	viper.SetDefault("storage.type", "json")
	viper.SetDefault("storage.exportInterval", "60s")
	viper.SetDefault("storage.json.path", "yapr_export.json")
	viper.SetDefault("storage.json.compressOutput", false)
	viper.SetDefault("storage.sqlite.path", "yapr.db")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "yapr")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", false)
	viper.SetDefault("otel.metrics", false)
	viper.SetDefault("otel.metricInterval", "30s")

	viper.SetDefault("alert.enabled", true)
	viper.SetDefault("alert.cooldown", "3s")

	viper.SetDefault("monitor.enabled", true)
	viper.SetDefault("monitor.statusFile", "status.json")
	viper.SetDefault("monitor.interval", "1s")
	viper.SetDefault("monitor.theme", "dark")

	viper.SetDefault("transit.aliases", []ManagerAlias{})

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GetTailConfig returns the tailing settings.
func GetTailConfig() TailConfig {
	return TailConfig{
		GameLog:      viper.GetString("tail.gameLog"),
		PollInterval: viper.GetDuration("tail.pollInterval"),
		Bootstrap:    viper.GetBool("tail.bootstrap"),
	}
}

// GetStorageConfig returns the persistence settings.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		JSON: JSONConfig{
			Path:           viper.GetString("storage.json.path"),
			CompressOutput: viper.GetBool("storage.json.compressOutput"),
		},
		SQLite: SQLiteConfig{
			Path: viper.GetString("storage.sqlite.path"),
		},
		Export: viper.GetDuration("storage.exportInterval"),
	}
}

// GetOTelConfig returns the telemetry settings.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:        viper.GetBool("otel.enabled"),
		ServiceName:    viper.GetString("otel.serviceName"),
		BatchTimeout:   viper.GetDuration("otel.batchTimeout"),
		Endpoint:       viper.GetString("otel.endpoint"),
		Insecure:       viper.GetBool("otel.insecure"),
		Metrics:        viper.GetBool("otel.metrics"),
		MetricInterval: viper.GetDuration("otel.metricInterval"),
	}
}

// GetAlertConfig returns the dungeon alert settings.
func GetAlertConfig() AlertConfig {
	return AlertConfig{
		Enabled:  viper.GetBool("alert.enabled"),
		Cooldown: viper.GetDuration("alert.cooldown"),
	}
}

// GetMonitorConfig returns the status file settings.
func GetMonitorConfig() MonitorConfig {
	return MonitorConfig{
		Enabled:    viper.GetBool("monitor.enabled"),
		StatusFile: viper.GetString("monitor.statusFile"),
		Interval:   viper.GetDuration("monitor.interval"),
		Theme:      viper.GetString("monitor.theme"),
	}
}

// GetManagerAliases returns extra transit manager aliases from the config.
// Aliases are a list rather than an object so the raw identifiers keep
// their case.
func GetManagerAliases() (map[string]string, error) {
	var list []ManagerAlias
	if err := viper.UnmarshalKey("transit.aliases", &list); err != nil {
		return nil, fmt.Errorf("failed to parse transit.aliases: %w", err)
	}
	out := make(map[string]string, len(list))
	for _, a := range list {
		if a.Raw == "" || a.Name == "" {
			continue
		}
		out[a.Raw] = a.Name
	}
	return out, nil
}
