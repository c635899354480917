package listing

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cli/go-gh/v2/pkg/api"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tavrel/ghsweep/internal/githubapi"
	"github.com/tavrel/ghsweep/internal/githubauth"
	"github.com/tavrel/ghsweep/internal/repos/shared"
	"github.com/tavrel/ghsweep/internal/utils"
)

const (
	listCommandUseConstant              = "list"
	listCommandShortDescriptionConstant = "List repositories of the authenticated user"
	publicCommandUseConstant            = "public <username>"
	publicCommandShortDescription       = "List public repositories of a user"
	filterFlagNameConstant              = "filter"
	filterFlagDescriptionConstant       = "Restrict output by archival state: all, active, or archived"
	fullNamesFlagNameConstant           = "full-names"
	fullNamesFlagDescriptionConstant    = "Show owner/name identifiers instead of bare names"
	exportFlagNameConstant              = "export"
	exportFlagDescriptionConstant       = "Write owner/name identifiers to a file instead of printing a table"
	listMissingTokenMessageConstant     = "a GitHub token is required: set GH_TOKEN or GITHUB_TOKEN"
	userNotFoundTemplateConstant        = "user %q not found"
)

// ListCommandBuilder assembles the authenticated listing command.
type ListCommandBuilder struct {
	// LoggerProvider supplies the structured logger used for diagnostics.
	LoggerProvider func() *zap.Logger
	// ConfigurationProvider supplies the resolved command configuration.
	ConfigurationProvider func() CommandConfiguration
	// RepositoryService overrides the GitHub client, primarily for tests.
	RepositoryService shared.RepositoryService
	// Environment overrides token resolution sources.
	Environment map[string]string
}

// Build constructs the cobra command.
func (builder *ListCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   listCommandUseConstant,
		Short: listCommandShortDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			command.SilenceUsage = true

			repositoryService, serviceError := resolveRepositoryService(builder.RepositoryService, builder.Environment, true)
			if serviceError != nil {
				return serviceError
			}

			summaries, listError := repositoryService.ListRepositories(command.Context())
			if listError != nil {
				return listError
			}

			return renderListing(command, builder.configuration(command), builder.logger(), summaries)
		},
	}

	registerListingFlags(command)
	return command, nil
}

func (builder *ListCommandBuilder) configuration(command *cobra.Command) CommandConfiguration {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}
	return applyListingFlags(command, configuration)
}

func (builder *ListCommandBuilder) logger() *zap.Logger {
	return resolveLogger(builder.LoggerProvider)
}

// PublicCommandBuilder assembles the public repository discovery command.
// A token is optional; without one the client degrades to anonymous access.
type PublicCommandBuilder struct {
	// LoggerProvider supplies the structured logger used for diagnostics.
	LoggerProvider func() *zap.Logger
	// ConfigurationProvider supplies the resolved command configuration.
	ConfigurationProvider func() CommandConfiguration
	// RepositoryService overrides the GitHub client, primarily for tests.
	RepositoryService shared.RepositoryService
	// Environment overrides token resolution sources.
	Environment map[string]string
}

// Build constructs the cobra command.
func (builder *PublicCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   publicCommandUseConstant,
		Short: publicCommandShortDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			command.SilenceUsage = true

			repositoryService, serviceError := resolveRepositoryService(builder.RepositoryService, builder.Environment, false)
			if serviceError != nil {
				return serviceError
			}

			username := arguments[0]
			summaries, listError := repositoryService.ListPublicRepositories(command.Context(), username)
			if listError != nil {
				if isUserNotFound(listError) {
					return fmt.Errorf(userNotFoundTemplateConstant, username)
				}
				return listError
			}

			return renderListing(command, builder.configuration(command), builder.logger(), summaries)
		},
	}

	registerListingFlags(command)
	return command, nil
}

func (builder *PublicCommandBuilder) configuration(command *cobra.Command) CommandConfiguration {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}
	return applyListingFlags(command, configuration)
}

func (builder *PublicCommandBuilder) logger() *zap.Logger {
	return resolveLogger(builder.LoggerProvider)
}

func registerListingFlags(command *cobra.Command) {
	command.Flags().String(filterFlagNameConstant, "", filterFlagDescriptionConstant)
	command.Flags().Bool(fullNamesFlagNameConstant, false, fullNamesFlagDescriptionConstant)
	command.Flags().String(exportFlagNameConstant, "", exportFlagDescriptionConstant)
}

func applyListingFlags(command *cobra.Command, configuration CommandConfiguration) CommandConfiguration {
	if command.Flags().Changed(filterFlagNameConstant) {
		if flagValue, flagError := command.Flags().GetString(filterFlagNameConstant); flagError == nil {
			configuration.Filter = flagValue
		}
	}
	if command.Flags().Changed(fullNamesFlagNameConstant) {
		if flagValue, flagError := command.Flags().GetBool(fullNamesFlagNameConstant); flagError == nil {
			configuration.FullNames = flagValue
		}
	}
	return configuration
}

func renderListing(command *cobra.Command, configuration CommandConfiguration, logger *zap.Logger, summaries []shared.RepositorySummary) error {
	filter, filterError := shared.ParseRepositoryFilter(configuration.Filter)
	if filterError != nil {
		return filterError
	}

	filtered := make([]shared.RepositorySummary, 0, len(summaries))
	for _, summary := range summaries {
		if filter.Matches(summary) {
			filtered = append(filtered, summary)
		}
	}

	logger.Debug("rendering repository listing",
		zap.Int("fetched", len(summaries)),
		zap.Int("after_filter", len(filtered)),
		zap.String("filter", string(filter)),
	)

	output := utils.NewFlushingWriter(command.OutOrStdout())

	exportPath, exportError := command.Flags().GetString(exportFlagNameConstant)
	if exportError == nil && len(exportPath) > 0 {
		return ExportFullNames(output, exportPath, filtered)
	}

	return RenderSummaries(output, filtered, RenderOptions{FullNames: configuration.FullNames})
}

func resolveRepositoryService(override shared.RepositoryService, environment map[string]string, tokenRequired bool) (shared.RepositoryService, error) {
	if override != nil {
		return override, nil
	}

	token, tokenFound := githubauth.ResolveToken(environment)
	if !tokenFound && tokenRequired {
		return nil, errors.New(listMissingTokenMessageConstant)
	}

	return githubapi.NewClient(githubapi.Options{AuthToken: token})
}

func resolveLogger(provider func() *zap.Logger) *zap.Logger {
	if provider != nil {
		if logger := provider(); logger != nil {
			return logger
		}
	}
	return zap.NewNop()
}

func isUserNotFound(candidate error) bool {
	var httpError *api.HTTPError
	if !errors.As(candidate, &httpError) {
		return false
	}
	return httpError.StatusCode == http.StatusNotFound
}
