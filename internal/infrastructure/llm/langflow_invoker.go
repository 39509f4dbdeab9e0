package llm

import (
	"context"
	"log/slog"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"

	"readmearchitect/internal/domain/entity"
	"readmearchitect/internal/domain/repository"
	"readmearchitect/internal/infrastructure/metrics"
)

const (
	APIKeyHeader   = "x-api-key"
	DefaultTimeout = 120 * time.Second

	logBodyLimit = 500
)

type runInput struct {
	RepoName           string `json:"repo_name"`
	ProjectDescription string `json:"project_description"`
	TechStack          string `json:"tech_stack"`
	Features           string `json:"features"`
	InstallationSteps  string `json:"installation_steps"`
	ExtraNotes         string `json:"extra_notes"`
}

type runRequest struct {
	InputValue runInput `json:"input_value"`
	OutputType string   `json:"output_type"`
	InputType  string   `json:"input_type"`
	SessionID  string   `json:"session_id"`
}

// LangflowInvoker runs a Langflow flow over its REST API. One call per
// Invoke; failures are classified and never retried here.
type LangflowInvoker struct {
	client *resty.Client
	logger *slog.Logger
}

var _ repository.WorkflowInvoker = (*LangflowInvoker)(nil)

func NewLangflowInvoker(timeout time.Duration, logger *slog.Logger) *LangflowInvoker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal)

	return &LangflowInvoker{
		client: client,
		logger: logger,
	}
}

func (g *LangflowInvoker) Invoke(ctx context.Context, wf entity.WorkflowConfig, req entity.GenerationRequest, sessionID string) (entity.Envelope, error) {
	body := runRequest{
		InputValue: runInput{
			RepoName:           req.ProjectName,
			ProjectDescription: req.Description,
			TechStack:          req.TechStack,
			Features:           req.Features,
			InstallationSteps:  req.InstallationSteps,
			ExtraNotes:         req.ExtraNotes,
		},
		OutputType: "text",
		InputType:  "text",
		SessionID:  sessionID,
	}

	start := time.Now()
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader(APIKeyHeader, wf.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(wf.Endpoint())
	metrics.ObserveUpstreamDuration(time.Since(start))
	if err != nil {
		metrics.IncUpstreamRequest("0")
		metrics.IncError("llm", "http_do")
		g.logger.Error("langflow request failed", "session_id", sessionID, "url", wf.Endpoint(), "err", err)
		return entity.Envelope{}, ClassifyTransportFailure(err, wf.BaseURL)
	}

	status := resp.StatusCode()
	metrics.IncUpstreamRequest(strconv.Itoa(status))
	g.logger.Info("langflow responded",
		"session_id", sessionID,
		"status", status,
		"duration", time.Since(start),
		"body", truncate(resp.String(), logBodyLimit),
	)

	if status >= 400 {
		metrics.IncError("llm", "api_error_"+strconv.Itoa(status))
		return entity.Envelope{}, ClassifyHTTPFailure(status, resp.String())
	}

	env, err := entity.ParseEnvelope(resp.Body())
	if err != nil {
		metrics.IncError("llm", "decode_response")
		g.logger.Error("langflow response is not json", "session_id", sessionID, "err", err)
		return entity.Envelope{}, invalidJSONFailure(status, err)
	}
	return env, nil
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
