package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readmearchitect/internal/domain/entity"
)

type stubGenerator struct {
	result entity.GenerationResult
	err    error
	onCall func()
	got    entity.GenerationRequest
}

func (g *stubGenerator) Generate(_ context.Context, req entity.GenerationRequest, _ entity.WorkflowConfig) (entity.GenerationResult, error) {
	g.got = req
	if g.onCall != nil {
		g.onCall()
	}
	return g.result, g.err
}

func TestGenerateReadme_SavesAndExports(t *testing.T) {
	gen := &stubGenerator{result: entity.GenerationResult{Readme: "# ledger"}}
	projects := &fakeProjects{}
	exporter := &fakeExporter{}
	svc := NewProjectService(gen, projects, exporter, configuredWorkflow, testLogger())

	req := advancedRequest()
	req.Mode = ""
	saved, err := svc.GenerateReadme(context.Background(), "user-1", req)

	require.NoError(t, err)
	assert.Equal(t, entity.ModeBasic, gen.got.Mode)
	assert.Equal(t, "# ledger", saved.Readme)
	require.Len(t, projects.saved, 1)
	record := projects.saved[0]
	assert.Equal(t, saved.ProjectID, record.ID)
	assert.Equal(t, "# ledger", record.GeneratedReadme)
	assert.Equal(t, "user-1", record.UserID)
	assert.Equal(t, "be brief", record.ExtraNotes)
	assert.Equal(t, []string{record.ID}, exporter.exported)
}

func TestGenerateReadme_SaveFailure(t *testing.T) {
	gen := &stubGenerator{result: entity.GenerationResult{Readme: "# ledger"}}
	exporter := &fakeExporter{}
	svc := NewProjectService(gen, &fakeProjects{saveErr: errors.New("mongo down")}, exporter, configuredWorkflow, testLogger())

	saved, err := svc.GenerateReadme(context.Background(), "user-1", advancedRequest())

	assert.Error(t, err)
	assert.Empty(t, saved.ProjectID)
	assert.Empty(t, exporter.exported)
}

func TestSave_ReturnsRecordID(t *testing.T) {
	projects := &fakeProjects{}
	exporter := &fakeExporter{}
	svc := NewProjectService(&stubGenerator{}, projects, exporter, configuredWorkflow, testLogger())

	id, err := svc.Save(context.Background(), "user-1", advancedRequest(), "# text")

	require.NoError(t, err)
	require.Len(t, projects.saved, 1)
	assert.Equal(t, projects.saved[0].ID, id)
	assert.Equal(t, []string{id}, exporter.exported)

	_, err = svc.Save(context.Background(), "", advancedRequest(), "# text")
	assert.Error(t, err)
}

func TestGenerateReadme_ExportFailureIsNotFatal(t *testing.T) {
	gen := &stubGenerator{result: entity.GenerationResult{Readme: "# ledger"}}
	svc := NewProjectService(gen, &fakeProjects{}, &fakeExporter{err: errors.New("disk full")}, configuredWorkflow, testLogger())

	_, err := svc.GenerateReadme(context.Background(), "user-1", advancedRequest())
	assert.NoError(t, err)
}

func TestGenerateReadme_InvalidRequest(t *testing.T) {
	gen := &stubGenerator{}
	projects := &fakeProjects{}
	svc := NewProjectService(gen, projects, nil, configuredWorkflow, testLogger())

	_, err := svc.GenerateReadme(context.Background(), "user-1", entity.GenerationRequest{ProjectName: " "})

	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.ErrorIs(t, err, entity.ErrProjectNameRequired)
	assert.Empty(t, projects.saved)
}

func TestGenerateReadme_FailureNotPersisted(t *testing.T) {
	failure := entity.NewFailure(entity.FailureRateLimited, "slow down", true, nil)
	projects := &fakeProjects{}
	svc := NewProjectService(&stubGenerator{err: failure}, projects, nil, configuredWorkflow, testLogger())

	_, err := svc.GenerateReadme(context.Background(), "user-1", advancedRequest())

	f, ok := entity.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, entity.FailureRateLimited, f.Kind)
	assert.Empty(t, projects.saved)
}

func TestGenerateReadme_CancelledNotPersisted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	gen := &stubGenerator{result: entity.GenerationResult{Readme: "# late"}, onCall: cancel}
	projects := &fakeProjects{}
	svc := NewProjectService(gen, projects, nil, configuredWorkflow, testLogger())

	_, err := svc.GenerateReadme(ctx, "user-1", advancedRequest())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, projects.saved)
}

func TestHistory_NewestFirst(t *testing.T) {
	projects := &fakeProjects{}
	svc := NewProjectService(&stubGenerator{}, projects, nil, configuredWorkflow, testLogger())
	ctx := context.Background()

	firstID, err := svc.Save(ctx, "user-1", advancedRequest(), "one")
	require.NoError(t, err)
	projects.saved[0].CreatedAt = time.Now().Add(-time.Hour)
	secondID, err := svc.Save(ctx, "user-1", advancedRequest(), "two")
	require.NoError(t, err)
	_, err = svc.Save(ctx, "user-2", advancedRequest(), "other")
	require.NoError(t, err)

	got, err := svc.History(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, secondID, got[0].ID)
	assert.Equal(t, firstID, got[1].ID)

	_, err = svc.History(ctx, "")
	assert.Error(t, err)
}
