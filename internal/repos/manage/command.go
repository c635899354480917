package manage

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tavrel/ghsweep/internal/githubapi"
	"github.com/tavrel/ghsweep/internal/githubauth"
	"github.com/tavrel/ghsweep/internal/repos/shared"
	"github.com/tavrel/ghsweep/internal/utils"
)

const (
	commandUseConstant              = "manage <file> <archive|delete>"
	commandShortDescriptionConstant = "Archive or delete repositories listed in a file"
	commandLongDescriptionConstant  = `Reads owner/repo identifiers from a file (one per line, # comments and blank
lines ignored), checks the current status of every repository, shows the
resulting plan, and applies the operation sequentially after confirmation.

Failures on individual repositories do not stop the batch; every repository
receives exactly one result in the final report.`
	assumeYesFlagNameConstant        = "yes"
	assumeYesFlagDescriptionConstant = "Skip the confirmation prompt"
	delayFlagNameConstant            = "delay"
	delayFlagDescriptionConstant     = "Pause inserted between consecutive mutating API calls"
	missingTokenMessageConstant      = "a GitHub token is required: set GH_TOKEN or GITHUB_TOKEN"
	emptyListTemplateConstant        = "no repository identifiers found in %s"
	openFileTemplateConstant         = "unable to open repository list %s: %w"
	assumeYesNoticeConstant          = "Confirmation skipped (--yes).\n"
)

// CommandBuilder assembles the manage command from its collaborators.
type CommandBuilder struct {
	// LoggerProvider supplies the structured logger used for diagnostics.
	LoggerProvider func() *zap.Logger
	// ConfigurationProvider supplies the resolved command configuration.
	ConfigurationProvider func() CommandConfiguration
	// RepositoryService overrides the GitHub client, primarily for tests.
	RepositoryService shared.RepositoryService
	// Prompter overrides the interactive confirmation prompter.
	Prompter shared.ConfirmationPrompter
	// Environment overrides token resolution sources.
	Environment map[string]string
}

// Build constructs the cobra command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.ExactArgs(2),
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.run(command, arguments)
		},
	}

	command.Flags().Bool(assumeYesFlagNameConstant, false, assumeYesFlagDescriptionConstant)
	command.Flags().Duration(delayFlagNameConstant, 0, delayFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	command.SilenceUsage = true

	operation, operationError := shared.ParseOperation(arguments[1])
	if operationError != nil {
		command.SilenceUsage = false
		return operationError
	}

	listPath := arguments[0]
	listFile, openError := os.Open(listPath)
	if openError != nil {
		return fmt.Errorf(openFileTemplateConstant, listPath, openError)
	}
	defer listFile.Close()

	identifiers, parseError := ParseRepositoryList(listFile)
	if parseError != nil {
		return parseError
	}
	if len(identifiers) == 0 {
		return fmt.Errorf(emptyListTemplateConstant, listPath)
	}

	configuration := builder.resolveConfiguration(command)
	logger := builder.resolveLogger()

	repositoryService, serviceError := builder.resolveRepositoryService()
	if serviceError != nil {
		return serviceError
	}

	output := utils.NewFlushingWriter(command.OutOrStdout())
	reporter := shared.NewWriterReporter(output)

	logger.Debug("starting batch management",
		zap.String("operation", string(operation)),
		zap.Int("repository_count", len(identifiers)),
		zap.Duration("pacing_delay", configuration.Delay),
	)

	planner := NewPlanner(repositoryService, reporter)
	plan, planError := planner.BuildPlan(command.Context(), identifiers, operation)
	if planError != nil {
		return planError
	}

	confirmationPolicy := shared.ConfirmationPolicyFromBool(configuration.AssumeYes)
	if confirmationPolicy.ShouldPrompt() {
		prompter := builder.Prompter
		if prompter == nil {
			prompter = NewLineConfirmationPrompter(command.InOrStdin(), output)
		}
		gate := NewConfirmationGate(prompter, output)
		if gateError := gate.Review(plan, operation); gateError != nil {
			return gateError
		}
	} else {
		if renderError := RenderPlanPreview(output, plan, operation); renderError != nil {
			return renderError
		}
		fmt.Fprint(output, assumeYesNoticeConstant)
	}

	executor := NewExecutor(
		Dependencies{Mutator: repositoryService, Output: output},
		Options{PacingDelay: configuration.Delay},
	)
	report := executor.Execute(command.Context(), plan)

	fmt.Fprintln(output)
	if renderError := report.RenderTable(output); renderError != nil {
		return renderError
	}

	logger.Debug("batch management finished",
		zap.Int("succeeded", report.Succeeded()),
		zap.Int("failed", report.Failed()),
	)

	return report.ExitError()
}

func (builder *CommandBuilder) resolveConfiguration(command *cobra.Command) CommandConfiguration {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	if command.Flags().Changed(assumeYesFlagNameConstant) {
		flagValue, flagError := command.Flags().GetBool(assumeYesFlagNameConstant)
		if flagError == nil {
			configuration.AssumeYes = flagValue
		}
	}
	if command.Flags().Changed(delayFlagNameConstant) {
		flagValue, flagError := command.Flags().GetDuration(delayFlagNameConstant)
		if flagError == nil {
			configuration.Delay = flagValue
		}
	}
	if configuration.Delay < 0 {
		configuration.Delay = time.Duration(0)
	}

	return configuration
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider != nil {
		if logger := builder.LoggerProvider(); logger != nil {
			return logger
		}
	}
	return zap.NewNop()
}

func (builder *CommandBuilder) resolveRepositoryService() (shared.RepositoryService, error) {
	if builder.RepositoryService != nil {
		return builder.RepositoryService, nil
	}

	token, tokenFound := githubauth.ResolveToken(builder.Environment)
	if !tokenFound {
		return nil, errors.New(missingTokenMessageConstant)
	}

	return githubapi.NewClient(githubapi.Options{AuthToken: token})
}
