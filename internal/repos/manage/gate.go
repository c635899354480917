package manage

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/tavrel/ghsweep/internal/repos/shared"
)

const (
	previewRepositoryHeaderConstant     = "REPOSITORY"
	previewStatusHeaderConstant         = "CURRENT STATUS"
	previewActionHeaderConstant         = "PLANNED ACTION"
	confirmationWarningTemplateConstant = "\nWARNING: you are about to %s %d repositories.\n"
	deletionWarningMessageConstant      = "DELETION IS IRREVERSIBLE - deleted repositories cannot be recovered."
	confirmationPromptTemplateConstant  = "\nType 'yes' to %s these repositories, anything else cancels: "
)

// ErrUserCancelled signals that the operator declined the confirmation prompt.
// No mutating call has been made when this error is returned.
var ErrUserCancelled = errors.New("operation cancelled by user")

// ConfirmationGate renders the execution plan and collects explicit operator
// approval before any mutation proceeds. The gate never touches the remote API.
type ConfirmationGate struct {
	prompter shared.ConfirmationPrompter
	output   io.Writer
}

// NewConfirmationGate constructs a gate around the provided prompter and output sink.
func NewConfirmationGate(prompter shared.ConfirmationPrompter, output io.Writer) *ConfirmationGate {
	return &ConfirmationGate{prompter: prompter, output: output}
}

// Review renders the plan preview and blocks for confirmation. It returns
// ErrUserCancelled on any response other than an exact case-insensitive "yes".
func (gate *ConfirmationGate) Review(plan []PlanEntry, operation shared.Operation) error {
	if renderError := RenderPlanPreview(gate.output, plan, operation); renderError != nil {
		return renderError
	}

	mutationCount := 0
	for _, entry := range plan {
		if entry.RequiresMutation() {
			mutationCount++
		}
	}

	fmt.Fprintf(gate.output, confirmationWarningTemplateConstant, operation, mutationCount)
	if operation == shared.OperationDelete {
		warningColor := color.New(color.FgRed, color.Bold)
		fmt.Fprintln(gate.output, warningColor.Sprint(deletionWarningMessageConstant))
	}

	confirmed, promptError := gate.prompter.Confirm(fmt.Sprintf(confirmationPromptTemplateConstant, operation))
	if promptError != nil {
		return promptError
	}
	if !confirmed {
		return ErrUserCancelled
	}

	return nil
}

// RenderPlanPreview writes the plan table showing each repository, its current
// status, and the planned action with its reversibility tag.
func RenderPlanPreview(writer io.Writer, plan []PlanEntry, operation shared.Operation) error {
	printer := shared.NewTablePrinter(writer)

	printer.AddHeader([]string{previewRepositoryHeaderConstant, previewStatusHeaderConstant, previewActionHeaderConstant})

	actionColor := color.New(color.FgMagenta)
	if operation == shared.OperationDelete {
		actionColor = color.New(color.FgRed)
	}

	for _, entry := range plan {
		printer.AddField(entry.Repository.String())
		printer.AddField(string(entry.CurrentStatus))
		printer.AddField(actionColor.Sprint(entry.PlannedActionDescription()))
		printer.EndRow()
	}

	return printer.Render()
}
