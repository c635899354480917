package listing

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tavrel/ghsweep/internal/repos/shared"
)

const (
	nameHeaderConstant        = "NAME"
	fullNameHeaderConstant    = "FULL NAME"
	visibilityHeaderConstant  = "VISIBILITY"
	statusHeaderConstant      = "STATUS"
	descriptionHeaderConstant = "DESCRIPTION"
	privateVisibilityConstant = "private"
	publicVisibilityConstant  = "public"
	totalTemplateConstant     = "\nTotal repositories: %d\n"
	exportedTemplateConstant  = "Exported %d repositories to %s\n"
	exportFilePermissions     = 0o644
)

// RenderOptions tunes summary table rendering.
type RenderOptions struct {
	// FullNames switches the first column to the owner/name form.
	FullNames bool
}

// RenderSummaries writes the repository table followed by a total count line.
func RenderSummaries(writer io.Writer, summaries []shared.RepositorySummary, options RenderOptions) error {
	printer := shared.NewTablePrinter(writer)

	nameHeader := nameHeaderConstant
	if options.FullNames {
		nameHeader = fullNameHeaderConstant
	}
	printer.AddHeader([]string{nameHeader, visibilityHeaderConstant, statusHeaderConstant, descriptionHeaderConstant})

	for _, summary := range summaries {
		displayName := summary.Name
		if options.FullNames {
			displayName = summary.FullName
		}

		visibility := publicVisibilityConstant
		if summary.Private {
			visibility = privateVisibilityConstant
		}

		printer.AddField(displayName)
		printer.AddField(visibility)
		printer.AddField(string(summary.Status()))
		printer.AddField(summary.Description)
		printer.EndRow()
	}

	if renderError := printer.Render(); renderError != nil {
		return renderError
	}

	_, writeError := fmt.Fprintf(writer, totalTemplateConstant, len(summaries))
	return writeError
}

// ExportFullNames writes one owner/name identifier per line to the given path
// and reports the export on the output writer. The file format matches the
// batch management input format.
func ExportFullNames(output io.Writer, exportPath string, summaries []shared.RepositorySummary) error {
	lines := make([]string, 0, len(summaries)+1)
	for _, summary := range summaries {
		lines = append(lines, summary.FullName)
	}
	lines = append(lines, "")

	if writeError := os.WriteFile(exportPath, []byte(strings.Join(lines, "\n")), exportFilePermissions); writeError != nil {
		return fmt.Errorf("unable to write export file %s: %w", exportPath, writeError)
	}

	_, writeError := fmt.Fprintf(output, exportedTemplateConstant, len(summaries), exportPath)
	return writeError
}
