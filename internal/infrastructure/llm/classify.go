package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"readmearchitect/internal/domain/entity"
)

const (
	msgQuotaExceeded = "AI API quota exceeded. The model provider's quota for this workflow has been reached. Please wait or upgrade the API plan, or use Basic mode."
	msgRateLimited   = "Rate limit exceeded. Please wait a few minutes and try again, or use Basic mode."
	msgUpstreamError = "Langflow returned error %d. Check Langflow logs and the flow configuration for details."
	msgUnreachable   = "Cannot connect to Langflow at %s. Make sure Langflow is running."
	msgInternal      = "Error processing Langflow response. Try Basic mode or check Langflow flow configuration."
	msgCancelled     = "Generation was cancelled before Langflow answered."
	msgInvalidJSON   = "Langflow returned a response that is not valid JSON. Check the flow's output component."
)

// ClassifyHTTPFailure maps a workflow response with status >= 400 onto the
// failure taxonomy. The upstream has no structured error codes, so the body
// text is matched case-insensitively; keep this the only place that does it.
func ClassifyHTTPFailure(status int, body string) *entity.ClassifiedFailure {
	lower := strings.ToLower(body)
	cause := fmt.Errorf("langflow status %d", status)

	switch {
	case strings.Contains(lower, "quota") || strings.Contains(body, "429"):
		return entity.NewFailure(entity.FailureQuotaExceeded, msgQuotaExceeded, false, cause).WithStatus(status)
	case strings.Contains(lower, "rate limit"):
		return entity.NewFailure(entity.FailureRateLimited, msgRateLimited, true, cause).WithStatus(status)
	default:
		return entity.NewFailure(entity.FailureUpstream, fmt.Sprintf(msgUpstreamError, status), false, cause).WithStatus(status)
	}
}

// ClassifyTransportFailure maps an error raised while performing the call.
// Connection level problems mention baseURL so operators can spot a wrong
// address; anything else gets a generic message.
func ClassifyTransportFailure(err error, baseURL string) *entity.ClassifiedFailure {
	var (
		netErr net.Error
		urlErr *url.Error
	)
	switch {
	case errors.Is(err, context.Canceled):
		return entity.NewFailure(entity.FailureInternal, msgCancelled, false, err)
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr), errors.As(err, &urlErr):
		return entity.NewFailure(entity.FailureUpstreamUnreachable, fmt.Sprintf(msgUnreachable, baseURL), true, err)
	default:
		return entity.NewFailure(entity.FailureInternal, msgInternal, false, err)
	}
}

func invalidJSONFailure(status int, err error) *entity.ClassifiedFailure {
	return entity.NewFailure(entity.FailureUpstream, msgInvalidJSON, false, err).WithStatus(status)
}
