package repository

import (
	"context"

	"readmearchitect/internal/domain/entity"
)

// WorkflowInvoker calls the external AI workflow once. Every error it returns
// is an *entity.ClassifiedFailure.
type WorkflowInvoker interface {
	Invoke(ctx context.Context, wf entity.WorkflowConfig, req entity.GenerationRequest, sessionID string) (entity.Envelope, error)
}
