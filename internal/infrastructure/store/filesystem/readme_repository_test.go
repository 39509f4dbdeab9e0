package filesystem

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readmearchitect/internal/domain/entity"
)

func TestReadmeRepository_Export(t *testing.T) {
	base := filepath.Join(t.TempDir(), "exports")
	repo, err := NewReadmeRepository(base)
	require.NoError(t, err)

	project := entity.NewProject("user-1", entity.GenerationRequest{ProjectName: "ledger"}, "# ledger\n")
	require.NoError(t, repo.Export(context.Background(), project))

	got, err := os.ReadFile(filepath.Join(base, project.ID, readmeFileName))
	require.NoError(t, err)
	assert.Equal(t, "# ledger\n", string(got))

	raw, err := os.ReadFile(filepath.Join(base, project.ID, metadataFileName))
	require.NoError(t, err)
	var meta exportMetadata
	require.NoError(t, json.Unmarshal(raw, &meta))
	assert.Equal(t, project.ID, meta.ProjectID)
	assert.Equal(t, "ledger", meta.ProjectName)
	assert.Equal(t, len("# ledger\n"), meta.Bytes)
}

func TestReadmeRepository_Errors(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain-file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := NewReadmeRepository(file)
	assert.Error(t, err)

	repo, err := NewReadmeRepository(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, repo.Export(context.Background(), &entity.Project{}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, repo.Export(ctx, entity.NewProject("u", entity.GenerationRequest{}, "x")), context.Canceled)
}
