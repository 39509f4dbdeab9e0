package repository

import (
	"context"

	"readmearchitect/internal/domain/entity"
)

// ProjectRepository persists generated READMEs per owner.
type ProjectRepository interface {
	Save(ctx context.Context, project *entity.Project) error
	// ListByOwner returns the owner's projects, most recent first.
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Project, error)
}
