package transport

import (
	"net/http"

	"readmearchitect/internal/domain/entity"
)

// retryAfterSeconds is advertised on rate limited responses.
const retryAfterSeconds = "60"

type errorBody struct {
	Detail string `json:"detail"`
}

type failureBody struct {
	Detail    string             `json:"detail"`
	Kind      entity.FailureKind `json:"kind"`
	Retryable bool               `json:"retryable"`
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, errorBody{Detail: err.Error()})
}

func failureStatus(kind entity.FailureKind) int {
	switch kind {
	case entity.FailureQuotaExceeded, entity.FailureRateLimited:
		return http.StatusTooManyRequests
	case entity.FailureUpstreamUnreachable, entity.FailureUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeFailure renders a classified failure with its user-facing message only.
func writeFailure(w http.ResponseWriter, f *entity.ClassifiedFailure) {
	if f.Kind == entity.FailureRateLimited {
		w.Header().Set("Retry-After", retryAfterSeconds)
	}
	writeJSON(w, failureStatus(f.Kind), failureBody{
		Detail:    f.Message,
		Kind:      f.Kind,
		Retryable: f.Retryable,
	})
}
