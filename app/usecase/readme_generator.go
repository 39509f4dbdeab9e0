package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"readmearchitect/internal/domain/entity"
	"readmearchitect/internal/domain/repository"
	"readmearchitect/internal/infrastructure/metrics"
	"readmearchitect/internal/readme"
)

// Appended to extra_notes before the workflow sees them.
const plainTextInstruction = "\n\nIMPORTANT: Do not use any emojis or special Unicode characters in the output. Use plain text only."

const (
	msgFlowIDMissing = "Langflow Flow ID not configured. Please set LANGFLOW_FLOW_ID in the environment or .env"
	msgAPIKeyMissing = "Langflow API Key not configured. Please set LANGFLOW_API_KEY in the environment or .env"
	msgUnexpected    = "Error processing Langflow response. Try Basic mode or check Langflow flow configuration."
)

type ReadmeGenerator interface {
	Generate(ctx context.Context, req entity.GenerationRequest, wf entity.WorkflowConfig) (entity.GenerationResult, error)
}

var _ ReadmeGenerator = (*ReadmeGeneratorService)(nil)

// ReadmeGeneratorService picks the generation strategy for a request. Basic
// mode renders the local template; advanced mode calls the external workflow
// and normalizes whatever it returns. Errors are always
// *entity.ClassifiedFailure.
type ReadmeGeneratorService struct {
	invoker      repository.WorkflowInvoker
	logger       *slog.Logger
	newSessionID func() string
}

func NewReadmeGeneratorService(invoker repository.WorkflowInvoker, logger *slog.Logger) *ReadmeGeneratorService {
	return &ReadmeGeneratorService{
		invoker:      invoker,
		logger:       logger,
		newSessionID: uuid.NewString,
	}
}

func (s *ReadmeGeneratorService) Generate(ctx context.Context, req entity.GenerationRequest, wf entity.WorkflowConfig) (result entity.GenerationResult, err error) {
	req = req.Normalize()
	if verr := req.Validate(); verr != nil {
		return entity.GenerationResult{}, entity.NewFailure(entity.FailureInternal, verr.Error(), false, verr)
	}

	start := time.Now()
	mode := string(req.Mode)
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("generation panicked", "project", req.ProjectName, "panic", r)
			result = entity.GenerationResult{}
			err = entity.NewFailure(entity.FailureInternal, msgUnexpected, false, fmt.Errorf("panic: %v", r))
		}
		metrics.ObserveGenerationDuration(mode, time.Since(start))
		if err != nil {
			metrics.IncGeneration(mode, "failure")
			if f, ok := entity.AsFailure(err); ok {
				metrics.IncGenerationFailure(string(f.Kind))
			}
			return
		}
		metrics.IncGeneration(mode, "success")
	}()

	if req.Mode == entity.ModeBasic {
		return entity.GenerationResult{Readme: readme.Render(req)}, nil
	}
	return s.generateAdvanced(ctx, req, wf)
}

func (s *ReadmeGeneratorService) generateAdvanced(ctx context.Context, req entity.GenerationRequest, wf entity.WorkflowConfig) (entity.GenerationResult, error) {
	if !wf.HasFlowID() {
		return entity.GenerationResult{}, entity.NewConfigurationFailure(msgFlowIDMissing)
	}
	if !wf.HasAPIKey() {
		return entity.GenerationResult{}, entity.NewConfigurationFailure(msgAPIKeyMissing)
	}

	prompt := req
	prompt.ExtraNotes = req.ExtraNotes + plainTextInstruction
	sessionID := s.newSessionID()

	env, err := s.invoker.Invoke(ctx, wf, prompt, sessionID)
	if err != nil {
		f, ok := entity.AsFailure(err)
		if !ok {
			f = entity.NewFailure(entity.FailureInternal, msgUnexpected, false, err)
		}
		s.logger.Warn("workflow call failed",
			"session_id", sessionID,
			"kind", f.Kind,
			"retryable", f.Retryable,
			"err", err,
		)
		return entity.GenerationResult{}, f
	}

	text, strategy := readme.ExtractWith(env, req.ProjectName)
	metrics.IncExtractionStrategy(strategy)
	text = readme.Sanitize(text)

	s.logger.Info("readme extracted",
		"session_id", sessionID,
		"strategy", strategy,
		"length", len(text),
	)
	return entity.GenerationResult{Readme: text, SessionID: sessionID}, nil
}
