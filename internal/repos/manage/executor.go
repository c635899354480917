package manage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/tavrel/ghsweep/internal/repos/shared"
)

const (
	executionProgressTemplateConstant = "[%d/%d] processing %s\n"
	executionSuccessTemplateConstant  = "  OK: %s\n"
	executionFailureTemplateConstant  = "  FAILED: %s\n"
	notFoundDetailConstant            = "repository not found or no access"
	alreadyArchivedDetailConstant     = "already archived"
	archivedDetailConstant            = "archived"
	deletedDetailConstant             = "deleted"
)

// Dependencies carries the collaborators an Executor needs.
type Dependencies struct {
	Mutator RepositoryMutator
	Output  io.Writer
	Sleeper shared.Sleeper
}

// Options tunes executor behavior.
type Options struct {
	// PacingDelay is the wait inserted after each mutating call when more
	// entries remain. Zero disables pacing.
	PacingDelay time.Duration
}

// Executor walks a plan strictly in order, applying one operation at a time.
// Failures are isolated per entry and never stop the walk.
type Executor struct {
	dependencies Dependencies
	options      Options
}

// NewExecutor constructs an executor, defaulting the sleeper to real waits.
func NewExecutor(dependencies Dependencies, options Options) *Executor {
	if dependencies.Sleeper == nil {
		dependencies.Sleeper = shared.SystemSleeper{}
	}
	return &Executor{dependencies: dependencies, options: options}
}

// Execute applies every plan entry sequentially and returns the aggregated
// report. Exactly one outcome is produced per entry, in plan order.
func (executor *Executor) Execute(executionContext context.Context, plan []PlanEntry) ExecutionReport {
	outcomes := make([]OperationOutcome, 0, len(plan))

	for entryIndex, entry := range plan {
		executor.printf(executionProgressTemplateConstant, entryIndex+1, len(plan), entry.Repository)

		outcome, madeRemoteCall := executor.executeEntry(executionContext, entry)
		if outcome.Result == OutcomeFailure {
			executor.printf(executionFailureTemplateConstant, outcome.Details)
		} else {
			executor.printf(executionSuccessTemplateConstant, outcome.Details)
		}
		outcomes = append(outcomes, outcome)

		if madeRemoteCall && executor.options.PacingDelay > 0 && entryIndex+1 < len(plan) {
			executor.dependencies.Sleeper.Sleep(executor.options.PacingDelay)
		}
	}

	return ExecutionReport{Outcomes: outcomes}
}

func (executor *Executor) executeEntry(executionContext context.Context, entry PlanEntry) (OperationOutcome, bool) {
	outcome := OperationOutcome{Repository: entry.Repository, Operation: entry.Operation}

	if entry.CurrentStatus == shared.RepositoryStatusNotFound {
		outcome.Result = OutcomeFailure
		outcome.Details = notFoundDetailConstant
		return outcome, false
	}

	if !entry.RequiresMutation() {
		outcome.Result = OutcomeAlreadyInTargetState
		outcome.Details = alreadyArchivedDetailConstant
		return outcome, false
	}

	var mutationError error
	successDetail := ""
	switch entry.Operation {
	case shared.OperationDelete:
		mutationError = executor.dependencies.Mutator.DeleteRepository(executionContext, entry.Repository)
		successDetail = deletedDetailConstant
	default:
		mutationError = executor.dependencies.Mutator.SetArchived(executionContext, entry.Repository, true)
		successDetail = archivedDetailConstant
	}

	if mutationError != nil {
		outcome.Result = OutcomeFailure
		outcome.Details = mutationError.Error()
		return outcome, true
	}

	outcome.Result = OutcomeSuccess
	outcome.Details = successDetail
	return outcome, true
}

func (executor *Executor) printf(format string, arguments ...any) {
	if executor.dependencies.Output == nil {
		return
	}
	fmt.Fprintf(executor.dependencies.Output, format, arguments...)
}
