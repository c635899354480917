package manage

import (
	"context"

	"github.com/tavrel/ghsweep/internal/repos/shared"
)

// RepositoryStatusFetcher exposes the status lookup used while planning.
type RepositoryStatusFetcher interface {
	FetchStatus(executionContext context.Context, repository shared.OwnerRepository) (shared.RepositoryStatus, error)
}

// RepositoryMutator exposes the mutating remote calls used during execution.
type RepositoryMutator interface {
	SetArchived(executionContext context.Context, repository shared.OwnerRepository, archived bool) error
	DeleteRepository(executionContext context.Context, repository shared.OwnerRepository) error
}
