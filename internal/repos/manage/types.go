package manage

import "github.com/tavrel/ghsweep/internal/repos/shared"

const (
	actionArchiveDescriptionConstant       = "ARCHIVE (reversible)"
	actionDeleteDescriptionConstant        = "DELETE (irreversible)"
	actionNoChangeDescriptionConstant      = "NO CHANGE NEEDED"
	actionCannotArchiveDescriptionConstant = "CANNOT ARCHIVE"
	actionCannotDeleteDescriptionConstant  = "CANNOT DELETE"
)

// PlanEntry pairs an identifier with its remote status and the requested operation.
type PlanEntry struct {
	Repository    shared.OwnerRepository
	CurrentStatus shared.RepositoryStatus
	Operation     shared.Operation
}

// PlannedActionDescription renders the action column shown in plan previews.
func (entry PlanEntry) PlannedActionDescription() string {
	switch entry.Operation {
	case shared.OperationDelete:
		if entry.CurrentStatus == shared.RepositoryStatusNotFound {
			return actionCannotDeleteDescriptionConstant
		}
		return actionDeleteDescriptionConstant
	default:
		switch entry.CurrentStatus {
		case shared.RepositoryStatusNotFound:
			return actionCannotArchiveDescriptionConstant
		case shared.RepositoryStatusArchived:
			return actionNoChangeDescriptionConstant
		default:
			return actionArchiveDescriptionConstant
		}
	}
}

// RequiresMutation reports whether executing the entry will call the remote API.
func (entry PlanEntry) RequiresMutation() bool {
	if entry.CurrentStatus == shared.RepositoryStatusNotFound {
		return false
	}
	if targetStatus, hasTarget := entry.Operation.TargetStatus(); hasTarget && entry.CurrentStatus == targetStatus {
		return false
	}
	return true
}

// OutcomeResult classifies the terminal result of one planned operation.
type OutcomeResult string

// Possible outcome results.
const (
	OutcomeSuccess              OutcomeResult = "success"
	OutcomeAlreadyInTargetState OutcomeResult = "already in target state"
	OutcomeFailure              OutcomeResult = "failure"
)

// CountsAsSuccess reports whether the result contributes to the succeeded tally.
func (result OutcomeResult) CountsAsSuccess() bool {
	return result != OutcomeFailure
}

// OperationOutcome records what happened to a single plan entry. Immutable
// once produced; exactly one exists per entry.
type OperationOutcome struct {
	Repository shared.OwnerRepository
	Operation  shared.Operation
	Result     OutcomeResult
	Details    string
}
