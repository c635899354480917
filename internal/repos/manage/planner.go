package manage

import (
	"context"
	"fmt"

	"github.com/tavrel/ghsweep/internal/repos/shared"
)

const (
	planningProgressTemplateConstant = "[%d/%d] checking %s..."
	planningStatusTemplateConstant   = " %s\n"
	planningErrorSuffixConstant      = " error\n"
	planningFailedTemplateConstant   = "planning failed for %s: %v"
)

// PlanningFailedError aborts planning on a transient status-fetch failure so
// an incomplete preview is never shown before a destructive operation.
type PlanningFailedError struct {
	Repository shared.OwnerRepository
	Cause      error
}

// Error names the repository whose status fetch failed.
func (planningError PlanningFailedError) Error() string {
	return fmt.Sprintf(planningFailedTemplateConstant, planningError.Repository, planningError.Cause)
}

// Unwrap exposes the underlying fetch failure.
func (planningError PlanningFailedError) Unwrap() error {
	return planningError.Cause
}

// Planner annotates parsed identifiers with their current remote status.
type Planner struct {
	statusFetcher RepositoryStatusFetcher
	reporter      shared.Reporter
}

// NewPlanner constructs a planner around the provided status fetcher.
func NewPlanner(statusFetcher RepositoryStatusFetcher, reporter shared.Reporter) *Planner {
	return &Planner{statusFetcher: statusFetcher, reporter: reporter}
}

// BuildPlan fetches the current status of every identifier and produces plan
// entries in input order. Identifiers the API reports as missing or forbidden
// still enter the plan as not-found entries; any other fetch failure aborts
// planning entirely.
func (planner *Planner) BuildPlan(executionContext context.Context, identifiers []shared.OwnerRepository, operation shared.Operation) ([]PlanEntry, error) {
	entries := make([]PlanEntry, 0, len(identifiers))

	for identifierIndex, repository := range identifiers {
		planner.printf(planningProgressTemplateConstant, identifierIndex+1, len(identifiers), repository)

		currentStatus, fetchError := planner.statusFetcher.FetchStatus(executionContext, repository)
		if fetchError != nil {
			planner.printf(planningErrorSuffixConstant)
			return nil, PlanningFailedError{Repository: repository, Cause: fetchError}
		}

		planner.printf(planningStatusTemplateConstant, currentStatus)
		entries = append(entries, PlanEntry{Repository: repository, CurrentStatus: currentStatus, Operation: operation})
	}

	return entries, nil
}

func (planner *Planner) printf(format string, arguments ...any) {
	if planner.reporter == nil {
		return
	}
	planner.reporter.Printf(format, arguments...)
}
