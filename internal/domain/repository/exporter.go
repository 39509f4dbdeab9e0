package repository

import (
	"context"

	"readmearchitect/internal/domain/entity"
)

// ReadmeExporter writes a project's README outside the primary store.
type ReadmeExporter interface {
	Export(ctx context.Context, project *entity.Project) error
}
