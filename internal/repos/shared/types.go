package shared

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	ownerRepositorySeparatorConstant         = "/"
	emptyOwnerRepositoryMessageConstant      = "owner/repository value required"
	malformedOwnerRepositoryTemplateConstant = "malformed owner/repository value %q: expected exactly one %q separating two non-empty segments"
	unsupportedOperationTemplateConstant     = "unsupported operation %q: expected archive or delete"
	unsupportedFilterTemplateConstant        = "unsupported repository filter %q: expected all, active, or archived"
)

// RepositoryStatus enumerates the remote states a repository can report.
type RepositoryStatus string

// Repository statuses observed through the remote API.
const (
	RepositoryStatusActive   RepositoryStatus = "active"
	RepositoryStatusArchived RepositoryStatus = "archived"
	RepositoryStatusNotFound RepositoryStatus = "not found"
)

// Operation enumerates the mutating actions supported by batch management.
type Operation string

// Supported batch operations.
const (
	OperationArchive Operation = "archive"
	OperationDelete  Operation = "delete"
)

// ParseOperation validates a raw operation string.
func ParseOperation(raw string) (Operation, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	switch Operation(normalized) {
	case OperationArchive:
		return OperationArchive, nil
	case OperationDelete:
		return OperationDelete, nil
	default:
		return "", fmt.Errorf(unsupportedOperationTemplateConstant, raw)
	}
}

// Reversible reports whether the remote effect of the operation can be undone out of band.
func (operation Operation) Reversible() bool {
	return operation == OperationArchive
}

// TargetStatus returns the repository status implied by a completed operation,
// or false when no reachable status exists (deleted repositories vanish).
func (operation Operation) TargetStatus() (RepositoryStatus, bool) {
	if operation == OperationArchive {
		return RepositoryStatusArchived, true
	}
	return "", false
}

// RepositoryFilter restricts listings by archival state.
type RepositoryFilter string

// Supported repository filters.
const (
	RepositoryFilterAll      RepositoryFilter = "all"
	RepositoryFilterActive   RepositoryFilter = "active"
	RepositoryFilterArchived RepositoryFilter = "archived"
)

// ParseRepositoryFilter validates a raw filter string, defaulting blanks to all.
func ParseRepositoryFilter(raw string) (RepositoryFilter, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if len(normalized) == 0 {
		return RepositoryFilterAll, nil
	}
	switch RepositoryFilter(normalized) {
	case RepositoryFilterAll, RepositoryFilterActive, RepositoryFilterArchived:
		return RepositoryFilter(normalized), nil
	default:
		return "", fmt.Errorf(unsupportedFilterTemplateConstant, raw)
	}
}

// Matches reports whether a repository summary satisfies the filter.
func (filter RepositoryFilter) Matches(summary RepositorySummary) bool {
	switch filter {
	case RepositoryFilterActive:
		return !summary.Archived
	case RepositoryFilterArchived:
		return summary.Archived
	default:
		return true
	}
}

// OwnerRepository identifies a remote repository as owner plus name.
type OwnerRepository struct {
	owner string
	name  string
}

// NewOwnerRepository validates a raw owner/name identifier.
func NewOwnerRepository(raw string) (OwnerRepository, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) == 0 {
		return OwnerRepository{}, errors.New(emptyOwnerRepositoryMessageConstant)
	}

	segments := strings.Split(trimmed, ownerRepositorySeparatorConstant)
	if len(segments) != 2 || len(segments[0]) == 0 || len(segments[1]) == 0 {
		return OwnerRepository{}, fmt.Errorf(malformedOwnerRepositoryTemplateConstant, trimmed, ownerRepositorySeparatorConstant)
	}

	return OwnerRepository{owner: segments[0], name: segments[1]}, nil
}

// Owner returns the owner segment.
func (repository OwnerRepository) Owner() string {
	return repository.owner
}

// Name returns the repository name segment.
func (repository OwnerRepository) Name() string {
	return repository.name
}

// String renders the canonical owner/name form.
func (repository OwnerRepository) String() string {
	return repository.owner + ownerRepositorySeparatorConstant + repository.name
}

// RepositorySummary carries the listing fields surfaced to users.
type RepositorySummary struct {
	Name        string
	FullName    string
	Private     bool
	Archived    bool
	Description string
}

// Status derives the archival status of a listed repository.
func (summary RepositorySummary) Status() RepositoryStatus {
	if summary.Archived {
		return RepositoryStatusArchived
	}
	return RepositoryStatusActive
}

// RepositoryService exposes the remote repository operations consumed by commands.
type RepositoryService interface {
	FetchStatus(executionContext context.Context, repository OwnerRepository) (RepositoryStatus, error)
	ListRepositories(executionContext context.Context) ([]RepositorySummary, error)
	ListPublicRepositories(executionContext context.Context, username string) ([]RepositorySummary, error)
	SetArchived(executionContext context.Context, repository OwnerRepository, archived bool) error
	DeleteRepository(executionContext context.Context, repository OwnerRepository) error
}

// ConfirmationPrompter collects user confirmations prior to mutating actions.
type ConfirmationPrompter interface {
	Confirm(prompt string) (bool, error)
}

// Sleeper abstracts pacing waits for deterministic testing.
type Sleeper interface {
	Sleep(duration time.Duration)
}

// SystemSleeper implements Sleeper with real waits.
type SystemSleeper struct{}

// Sleep blocks for the requested duration.
func (SystemSleeper) Sleep(duration time.Duration) {
	time.Sleep(duration)
}
