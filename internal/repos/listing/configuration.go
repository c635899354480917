package listing

const (
	filterConfigurationKeyConstant    = "filter"
	fullNamesConfigurationKeyConstant = "full_names"
	configurationKeySeparatorConstant = "."
)

// CommandConfiguration captures the tunable settings of the listing commands.
type CommandConfiguration struct {
	// Filter restricts output by archival state: all, active, or archived.
	Filter string `mapstructure:"filter"`
	// FullNames switches the name column to owner/name form.
	FullNames bool `mapstructure:"full_names"`
}

// DefaultCommandConfiguration returns the built-in listing settings.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{Filter: "all", FullNames: false}
}

// DefaultConfigurationValues exposes the listing defaults keyed for configuration merging.
func DefaultConfigurationValues(configurationKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationKey + configurationKeySeparatorConstant + filterConfigurationKeyConstant:    defaults.Filter,
		configurationKey + configurationKeySeparatorConstant + fullNamesConfigurationKeyConstant: defaults.FullNames,
	}
}
