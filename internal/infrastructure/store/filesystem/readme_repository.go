package filesystem

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"readmearchitect/internal/domain/entity"
	"readmearchitect/internal/domain/repository"
)

const (
	readmeFileName   = "README.md"
	metadataFileName = "metadata.json"
)

type exportMetadata struct {
	ProjectID   string    `json:"project_id"`
	UserID      string    `json:"user_id"`
	ProjectName string    `json:"project_name"`
	CreatedAt   time.Time `json:"created_at"`
	ExportedAt  time.Time `json:"exported_at"`
	Bytes       int       `json:"bytes"`
}

// ReadmeRepository writes each project to <base>/<project id>/README.md.
type ReadmeRepository struct {
	basePath string
}

var _ repository.ReadmeExporter = (*ReadmeRepository)(nil)

func NewReadmeRepository(basePath string) (*ReadmeRepository, error) {
	info, err := os.Stat(basePath)
	if os.IsNotExist(err) {
		if mkErr := os.MkdirAll(basePath, 0o755); mkErr != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", basePath, mkErr)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to check directory %s: %w", basePath, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("path %s exists but is not a directory", basePath)
	}

	return &ReadmeRepository{basePath: basePath}, nil
}

func (r *ReadmeRepository) GetBasePath() string {
	return r.basePath
}

func (r *ReadmeRepository) Export(ctx context.Context, project *entity.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if project.ID == "" {
		return fmt.Errorf("project id is empty")
	}

	dir := filepath.Join(r.basePath, project.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, readmeFileName), []byte(project.GeneratedReadme), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", readmeFileName, err)
	}

	metadata := exportMetadata{
		ProjectID:   project.ID,
		UserID:      project.UserID,
		ProjectName: project.ProjectName,
		CreatedAt:   project.CreatedAt,
		ExportedAt:  time.Now().UTC(),
		Bytes:       len(project.GeneratedReadme),
	}
	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, metadataFileName), data, 0o644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	return nil
}
