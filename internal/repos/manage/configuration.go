package manage

import "time"

const (
	delayConfigurationKeyConstant     = "delay"
	assumeYesConfigurationKeyConstant = "assume_yes"
	configurationKeySeparatorConstant = "."
)

// CommandConfiguration captures the tunable settings of the manage command.
type CommandConfiguration struct {
	// Delay is the pause inserted between consecutive mutating API calls.
	Delay time.Duration `mapstructure:"delay"`
	// AssumeYes skips the interactive confirmation prompt.
	AssumeYes bool `mapstructure:"assume_yes"`
}

// DefaultCommandConfiguration returns the built-in manage settings.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{Delay: 0, AssumeYes: false}
}

// DefaultConfigurationValues exposes the manage defaults keyed for configuration merging.
func DefaultConfigurationValues(configurationKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationKey + configurationKeySeparatorConstant + delayConfigurationKeyConstant:     defaults.Delay.String(),
		configurationKey + configurationKeySeparatorConstant + assumeYesConfigurationKeyConstant: defaults.AssumeYes,
	}
}
