package manage

import (
	"errors"
	"fmt"
	"io"

	"github.com/tavrel/ghsweep/internal/repos/shared"
)

const (
	reportRepositoryHeaderConstant = "REPOSITORY"
	reportOperationHeaderConstant  = "OPERATION"
	reportResultHeaderConstant     = "RESULT"
	reportDetailsHeaderConstant    = "DETAILS"
	reportSuccessLabelConstant     = "SUCCESS"
	reportFailureLabelConstant     = "FAILED"
	reportSummaryTemplateConstant  = "Results: %d successful, %d failed"
)

// ErrOperationsFailed signals that at least one planned operation failed.
var ErrOperationsFailed = errors.New("one or more operations failed")

// ExecutionReport aggregates the outcome of every executed plan entry.
type ExecutionReport struct {
	Outcomes []OperationOutcome
}

// Succeeded counts outcomes that reached or already held the target state.
func (report ExecutionReport) Succeeded() int {
	count := 0
	for _, outcome := range report.Outcomes {
		if outcome.Result.CountsAsSuccess() {
			count++
		}
	}
	return count
}

// Failed counts outcomes that did not succeed.
func (report ExecutionReport) Failed() int {
	return len(report.Outcomes) - report.Succeeded()
}

// Summary renders the one-line success and failure tally.
func (report ExecutionReport) Summary() string {
	return fmt.Sprintf(reportSummaryTemplateConstant, report.Succeeded(), report.Failed())
}

// RenderTable writes the per-repository outcome table followed by the summary line.
func (report ExecutionReport) RenderTable(writer io.Writer) error {
	printer := shared.NewTablePrinter(writer)

	printer.AddHeader([]string{reportRepositoryHeaderConstant, reportOperationHeaderConstant, reportResultHeaderConstant, reportDetailsHeaderConstant})
	for _, outcome := range report.Outcomes {
		resultLabel := reportSuccessLabelConstant
		if outcome.Result == OutcomeFailure {
			resultLabel = reportFailureLabelConstant
		}
		printer.AddField(outcome.Repository.String())
		printer.AddField(string(outcome.Operation))
		printer.AddField(resultLabel)
		printer.AddField(outcome.Details)
		printer.EndRow()
	}
	if renderError := printer.Render(); renderError != nil {
		return renderError
	}

	_, writeError := fmt.Fprintf(writer, "\n%s\n", report.Summary())
	return writeError
}

// ExitError returns ErrOperationsFailed when any outcome failed, nil otherwise.
func (report ExecutionReport) ExitError() error {
	if report.Failed() > 0 {
		return ErrOperationsFailed
	}
	return nil
}
