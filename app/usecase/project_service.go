package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"readmearchitect/internal/domain/entity"
	"readmearchitect/internal/domain/repository"
)

// ErrInvalidRequest wraps request validation errors.
var ErrInvalidRequest = errors.New("invalid generation request")

// SavedReadme is a generated README and the id of the record it was stored as.
type SavedReadme struct {
	ProjectID string
	Readme    string
	SessionID string
}

type ProjectUsecase interface {
	GenerateReadme(ctx context.Context, ownerID string, req entity.GenerationRequest) (SavedReadme, error)
	Save(ctx context.Context, ownerID string, req entity.GenerationRequest, text string) (string, error)
	History(ctx context.Context, ownerID string) ([]*entity.Project, error)
}

var _ ProjectUsecase = (*ProjectService)(nil)

type ProjectService struct {
	generator ReadmeGenerator
	projects  repository.ProjectRepository
	exporter  repository.ReadmeExporter
	workflow  entity.WorkflowConfig
	logger    *slog.Logger
}

// NewProjectService wires generation to persistence. exporter may be nil.
func NewProjectService(
	generator ReadmeGenerator,
	projects repository.ProjectRepository,
	exporter repository.ReadmeExporter,
	workflow entity.WorkflowConfig,
	logger *slog.Logger,
) *ProjectService {
	return &ProjectService{
		generator: generator,
		projects:  projects,
		exporter:  exporter,
		workflow:  workflow,
		logger:    logger,
	}
}

// GenerateReadme validates, generates and persists one README. A cancelled
// ctx after generation leaves nothing behind.
func (s *ProjectService) GenerateReadme(ctx context.Context, ownerID string, req entity.GenerationRequest) (SavedReadme, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return SavedReadme{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	result, err := s.generator.Generate(ctx, req, s.workflow)
	if err != nil {
		return SavedReadme{}, err
	}
	if err := ctx.Err(); err != nil {
		s.logger.Info("generation abandoned, not saving", "owner_id", ownerID, "err", err)
		return SavedReadme{}, err
	}

	id, err := s.Save(ctx, ownerID, req, result.Readme)
	if err != nil {
		return SavedReadme{}, err
	}
	return SavedReadme{ProjectID: id, Readme: result.Readme, SessionID: result.SessionID}, nil
}

// Save stores one generated README and returns its record id. The export,
// when configured, is best effort.
func (s *ProjectService) Save(ctx context.Context, ownerID string, req entity.GenerationRequest, text string) (string, error) {
	if ownerID == "" {
		return "", fmt.Errorf("ownerID is required")
	}
	project := entity.NewProject(ownerID, req, text)
	if err := s.projects.Save(ctx, project); err != nil {
		return "", fmt.Errorf("save project for owner %s: %w", ownerID, err)
	}

	if s.exporter != nil {
		if err := s.exporter.Export(ctx, project); err != nil {
			s.logger.Error("export readme failed", "project_id", project.ID, "err", err)
		}
	}
	return project.ID, nil
}

func (s *ProjectService) History(ctx context.Context, ownerID string) ([]*entity.Project, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is required")
	}
	projects, err := s.projects.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list projects for owner %s: %w", ownerID, err)
	}
	return projects, nil
}
