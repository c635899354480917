package utils_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tavrel/ghsweep/internal/utils"
)

type loaderTestConfiguration struct {
	Common struct {
		LogLevel string `mapstructure:"log_level"`
	} `mapstructure:"common"`
	Tools struct {
		Manage struct {
			Delay     time.Duration `mapstructure:"delay"`
			AssumeYes bool          `mapstructure:"assume_yes"`
		} `mapstructure:"manage"`
	} `mapstructure:"tools"`
}

func writeConfigurationFile(t *testing.T, contents map[string]any) string {
	t.Helper()

	encoded, encodeError := yaml.Marshal(contents)
	require.NoError(t, encodeError)

	configurationPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configurationPath, encoded, 0o644))
	return configurationPath
}

func TestLoadConfigurationAppliesDefaults(t *testing.T) {
	loader := utils.NewConfigurationLoader("config", "yaml", "GHSWEEPTEST", []string{t.TempDir()})

	defaults := map[string]any{
		"common.log_level":   "info",
		"tools.manage.delay": "0s",
	}

	var configuration loaderTestConfiguration
	metadata, loadError := loader.LoadConfiguration("", defaults, &configuration)
	require.NoError(t, loadError)
	require.Empty(t, metadata.ConfigFileUsed)
	require.Equal(t, "info", configuration.Common.LogLevel)
	require.Equal(t, time.Duration(0), configuration.Tools.Manage.Delay)
}

func TestLoadConfigurationReadsFileAndDecodesDurations(t *testing.T) {
	configurationPath := writeConfigurationFile(t, map[string]any{
		"common": map[string]any{"log_level": "debug"},
		"tools": map[string]any{
			"manage": map[string]any{
				"delay":      "750ms",
				"assume_yes": true,
			},
		},
	})

	loader := utils.NewConfigurationLoader("config", "yaml", "GHSWEEPTEST", nil)

	var configuration loaderTestConfiguration
	metadata, loadError := loader.LoadConfiguration(configurationPath, nil, &configuration)
	require.NoError(t, loadError)
	require.Equal(t, configurationPath, metadata.ConfigFileUsed)
	require.Equal(t, "debug", configuration.Common.LogLevel)
	require.Equal(t, 750*time.Millisecond, configuration.Tools.Manage.Delay)
	require.True(t, configuration.Tools.Manage.AssumeYes)
}

func TestLoadConfigurationHonorsEnvironmentOverrides(t *testing.T) {
	t.Setenv("GHSWEEPTEST_COMMON_LOG_LEVEL", "warn")

	loader := utils.NewConfigurationLoader("config", "yaml", "GHSWEEPTEST", nil)

	defaults := map[string]any{"common.log_level": "info"}

	var configuration loaderTestConfiguration
	_, loadError := loader.LoadConfiguration("", defaults, &configuration)
	require.NoError(t, loadError)
	require.Equal(t, "warn", configuration.Common.LogLevel)
}

func TestLoadConfigurationRejectsUnreadableFile(t *testing.T) {
	configurationPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configurationPath, []byte("common: ["), 0o644))

	loader := utils.NewConfigurationLoader("config", "yaml", "GHSWEEPTEST", nil)

	var configuration loaderTestConfiguration
	_, loadError := loader.LoadConfiguration(configurationPath, nil, &configuration)
	require.Error(t, loadError)
}
