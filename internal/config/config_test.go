package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0644))
	return dir
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"logLevel": "debug",
		"tail": { "gameLog": "D:/SC/LIVE/Game.log", "bootstrap": false }
	}`)

	require.NoError(t, Load(dir))

	assert.Equal(t, "debug", viper.GetString("logLevel"))
	tc := GetTailConfig()
	assert.Equal(t, "D:/SC/LIVE/Game.log", tc.GameLog)
	assert.False(t, tc.Bootstrap)
	assert.Equal(t, 120*time.Millisecond, tc.PollInterval)
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(writeConfig(t, `{}`)))

	assert.Equal(t, "info", viper.GetString("logLevel"))
	assert.Equal(t, "./yaprlogs", viper.GetString("logsDir"))
	assert.Equal(t, DefaultGameLog, viper.GetString("tail.gameLog"))
	assert.Equal(t, "json", viper.GetString("storage.type"))
	assert.Equal(t, "yapr_export.json", viper.GetString("storage.json.path"))
	assert.Equal(t, false, viper.GetBool("otel.enabled"))
	assert.Equal(t, true, viper.GetBool("alert.enabled"))
	assert.Equal(t, "status.json", viper.GetString("monitor.statusFile"))
	assert.Equal(t, "dark", viper.GetString("monitor.theme"))
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(t.TempDir()))
	assert.Equal(t, "json", GetStorageConfig().Type)
	assert.Equal(t, 3*time.Second, GetAlertConfig().Cooldown)
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load(writeConfig(t, `{"logLevel": `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestGetStorageConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(writeConfig(t, `{}`)))

	cfg := GetStorageConfig()
	assert.Equal(t, "json", cfg.Type)
	assert.Equal(t, "yapr_export.json", cfg.JSON.Path)
	assert.False(t, cfg.JSON.CompressOutput)
	assert.Equal(t, "yapr.db", cfg.SQLite.Path)
	assert.Equal(t, 60*time.Second, cfg.Export)
}

func TestGetStorageConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(writeConfig(t, `{
		"storage": {
			"type": "sqlite",
			"exportInterval": "2m",
			"json": { "path": "/tmp/out.json.gz", "compressOutput": true },
			"sqlite": { "path": "/tmp/yapr.db" }
		}
	}`)))

	sc := GetStorageConfig()
	assert.Equal(t, "sqlite", sc.Type)
	assert.Equal(t, "/tmp/out.json.gz", sc.JSON.Path)
	assert.True(t, sc.JSON.CompressOutput)
	assert.Equal(t, "/tmp/yapr.db", sc.SQLite.Path)
	assert.Equal(t, 2*time.Minute, sc.Export)
}

func TestGetOTelConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(writeConfig(t, `{}`)))

	cfg := GetOTelConfig()
	assert.Equal(t, false, cfg.Enabled)
	assert.Equal(t, "yapr", cfg.ServiceName)
	assert.Equal(t, 5*time.Second, cfg.BatchTimeout)
	assert.Equal(t, 30*time.Second, cfg.MetricInterval)
	assert.Equal(t, "", cfg.Endpoint)
	assert.Equal(t, false, cfg.Insecure)
	assert.Equal(t, false, cfg.Metrics)
}

func TestGetOTelConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(writeConfig(t, `{
		"otel": {
			"enabled": true,
			"serviceName": "radar",
			"batchTimeout": "30s",
			"endpoint": "localhost:4318",
			"insecure": true,
			"metrics": true
		}
	}`)))

	oc := GetOTelConfig()
	assert.Equal(t, true, oc.Enabled)
	assert.Equal(t, "radar", oc.ServiceName)
	assert.Equal(t, 30*time.Second, oc.BatchTimeout)
	assert.Equal(t, "localhost:4318", oc.Endpoint)
	assert.Equal(t, true, oc.Insecure)
	assert.Equal(t, true, oc.Metrics)
}

func TestGetMonitorConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(writeConfig(t, `{
		"monitor": { "enabled": false, "statusFile": "radar.json", "interval": "500ms", "theme": "light" }
	}`)))

	mc := GetMonitorConfig()
	assert.False(t, mc.Enabled)
	assert.Equal(t, "radar.json", mc.StatusFile)
	assert.Equal(t, 500*time.Millisecond, mc.Interval)
	assert.Equal(t, "light", mc.Theme)
}

func TestGetManagerAliases(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(writeConfig(t, `{
		"transit": {
			"aliases": [
				{ "raw": "TransitManager_MetroPlatform", "name": "Metro" },
				{ "raw": "", "name": "ignored" }
			]
		}
	}`)))

	aliases, err := GetManagerAliases()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"TransitManager_MetroPlatform": "Metro"}, aliases)
}

func TestGetManagerAliases_Default(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(t.TempDir()))

	aliases, err := GetManagerAliases()
	require.NoError(t, err)
	assert.Empty(t, aliases)
}
