package cli

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/tavrel/ghsweep/internal/repos/listing"
	"github.com/tavrel/ghsweep/internal/repos/manage"
	"github.com/tavrel/ghsweep/internal/utils"
)

const (
	applicationNameConstant             = "ghsweep"
	applicationShortDescriptionConstant = "Bulk lifecycle management for GitHub repositories"
	applicationLongDescriptionConstant  = `ghsweep lists GitHub repositories, discovers other users' public
repositories, and archives or deletes repositories in bulk from a file of
owner/repo identifiers with a reviewed, confirmed execution plan.`
	configurationNameConstant          = "config"
	configurationTypeConstant          = "yaml"
	environmentPrefixConstant          = "GHSWEEP"
	configFlagNameConstant             = "config"
	configFlagDescriptionConstant      = "Path to a configuration file"
	logLevelFlagNameConstant           = "log-level"
	logLevelFlagDescriptionConstant    = "Diagnostic log level: debug, info, warn, or error"
	logFormatFlagNameConstant          = "log-format"
	logFormatFlagDescriptionConstant   = "Diagnostic log format: structured or console"
	logLevelConfigurationKeyConstant   = "common.log_level"
	logFormatConfigurationKeyConstant  = "common.log_format"
	manageConfigurationKeyConstant     = "tools.manage"
	listingConfigurationKeyConstant    = "tools.listing"
	userCancelledExitCodeConstant      = 2
	failureExitCodeConstant            = 1
	successExitCodeConstant            = 0
)

var configurationSearchPaths = []string{".", "$HOME/.ghsweep"}

type applicationConfiguration struct {
	Common struct {
		LogLevel  string `mapstructure:"log_level"`
		LogFormat string `mapstructure:"log_format"`
	} `mapstructure:"common"`
	Tools struct {
		Manage  manage.CommandConfiguration  `mapstructure:"manage"`
		Listing listing.CommandConfiguration `mapstructure:"listing"`
	} `mapstructure:"tools"`
}

// Application wires configuration, logging, and subcommands into a root command.
type Application struct {
	rootCommand   *cobra.Command
	configuration applicationConfiguration
	logger        *zap.Logger

	configFilePath string
	logLevelFlag   string
	logFormatFlag  string
}

// NewApplication constructs the fully wired CLI application.
func NewApplication() *Application {
	application := &Application{logger: zap.NewNop()}

	rootCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, _ []string) error {
			return application.initialize(command)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			application.flushLogger()
		},
	}

	rootCommand.PersistentFlags().StringVar(&application.configFilePath, configFlagNameConstant, "", configFlagDescriptionConstant)
	rootCommand.PersistentFlags().StringVar(&application.logLevelFlag, logLevelFlagNameConstant, "", logLevelFlagDescriptionConstant)
	rootCommand.PersistentFlags().StringVar(&application.logFormatFlag, logFormatFlagNameConstant, "", logFormatFlagDescriptionConstant)

	application.rootCommand = rootCommand
	application.registerSubcommands()

	return application
}

// Execute runs the root command and returns its terminal error, if any.
func (application *Application) Execute() error {
	defer application.flushLogger()
	return application.rootCommand.Execute()
}

// RootCommand exposes the assembled root command for testing.
func (application *Application) RootCommand() *cobra.Command {
	return application.rootCommand
}

func (application *Application) registerSubcommands() {
	loggerProvider := func() *zap.Logger { return application.logger }

	listBuilder := &listing.ListCommandBuilder{
		LoggerProvider:        loggerProvider,
		ConfigurationProvider: func() listing.CommandConfiguration { return application.configuration.Tools.Listing },
	}
	publicBuilder := &listing.PublicCommandBuilder{
		LoggerProvider:        loggerProvider,
		ConfigurationProvider: func() listing.CommandConfiguration { return application.configuration.Tools.Listing },
	}
	manageBuilder := &manage.CommandBuilder{
		LoggerProvider:        loggerProvider,
		ConfigurationProvider: func() manage.CommandConfiguration { return application.configuration.Tools.Manage },
	}

	for _, builder := range []interface {
		Build() (*cobra.Command, error)
	}{listBuilder, publicBuilder, manageBuilder} {
		subcommand, buildError := builder.Build()
		if buildError != nil {
			continue
		}
		application.rootCommand.AddCommand(subcommand)
	}
}

func (application *Application) initialize(command *cobra.Command) error {
	if loadError := application.loadConfiguration(); loadError != nil {
		return loadError
	}
	return application.createLogger(command)
}

func (application *Application) loadConfiguration() error {
	defaultValues := map[string]any{
		logLevelConfigurationKeyConstant:  string(utils.LogLevelInfo),
		logFormatConfigurationKeyConstant: string(utils.LogFormatStructured),
	}
	for key, value := range manage.DefaultConfigurationValues(manageConfigurationKeyConstant) {
		defaultValues[key] = value
	}
	for key, value := range listing.DefaultConfigurationValues(listingConfigurationKeyConstant) {
		defaultValues[key] = value
	}

	loader := utils.NewConfigurationLoader(configurationNameConstant, configurationTypeConstant, environmentPrefixConstant, configurationSearchPaths)
	_, loadError := loader.LoadConfiguration(application.configFilePath, defaultValues, &application.configuration)
	return loadError
}

func (application *Application) createLogger(command *cobra.Command) error {
	logLevel := utils.LogLevel(application.configuration.Common.LogLevel)
	if persistentFlagChanged(command.Flags(), logLevelFlagNameConstant) {
		logLevel = utils.LogLevel(application.logLevelFlag)
	}

	logFormat := utils.LogFormat(application.configuration.Common.LogFormat)
	if persistentFlagChanged(command.Flags(), logFormatFlagNameConstant) {
		logFormat = utils.LogFormat(application.logFormatFlag)
	}

	logger, loggerError := utils.NewLoggerFactory().CreateLogger(logLevel, logFormat)
	if loggerError != nil {
		return loggerError
	}

	application.logger = logger
	return nil
}

// flushLogger syncs buffered log entries. Sync failures on terminal stderr
// surface as ENOTSUP or EINVAL and are not actionable.
func (application *Application) flushLogger() {
	if application.logger == nil {
		return
	}
	syncError := application.logger.Sync()
	if syncError == nil {
		return
	}
	if errors.Is(syncError, syscall.ENOTSUP) || errors.Is(syncError, syscall.EINVAL) {
		return
	}
	fmt.Fprintf(os.Stderr, "failed to flush logs: %v\n", syncError)
}

// persistentFlagChanged reports whether a flag was set explicitly, including
// flags inherited from parent commands.
func persistentFlagChanged(flagSet *pflag.FlagSet, flagName string) bool {
	resolvedFlag := flagSet.Lookup(flagName)
	return resolvedFlag != nil && resolvedFlag.Changed
}

// Execute runs the application and returns the terminal error, if any.
func Execute() error {
	return NewApplication().Execute()
}

// ExitCodeForError maps a terminal command error to the process exit code.
func ExitCodeForError(terminalError error) int {
	if terminalError == nil {
		return successExitCodeConstant
	}
	if errors.Is(terminalError, manage.ErrUserCancelled) {
		return userCancelledExitCodeConstant
	}
	return failureExitCodeConstant
}
