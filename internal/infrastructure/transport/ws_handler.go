package transport

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"readmearchitect/app/usecase"
	"readmearchitect/internal/domain/entity"
)

const (
	wsReadRequestTimeout = 30 * time.Second
	wsWriteTimeout       = 10 * time.Second
)

const (
	eventStarted   = "started"
	eventCompleted = "completed"
	eventFailed    = "failed"

	kindInvalidRequest = "invalid_request"
)

type startedEvent struct {
	Event     string `json:"event"`
	SessionID string `json:"session_id"`
}

type completedEvent struct {
	Event     string `json:"event"`
	Readme    string `json:"readme"`
	ProjectID string `json:"project_id"`
}

type failedEvent struct {
	Event     string             `json:"event"`
	Kind      entity.FailureKind `json:"kind"`
	Detail    string             `json:"detail"`
	Retryable bool               `json:"retryable"`
}

// GET /projects/ws/generate?token=...
//
// The client sends a single GenerationRequest. Closing the socket cancels
// the in-flight generation, and nothing is saved.
func (h *Handler) handleGenerateWS(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.CurrentUser(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	sessionID := uuid.NewString()
	log := h.logger.With("ws_session", sessionID, "user_id", user.ID)

	var req entity.GenerationRequest
	_ = conn.SetReadDeadline(time.Now().Add(wsReadRequestTimeout))
	if err := conn.ReadJSON(&req); err != nil {
		log.Warn("read generation request failed", "err", err)
		h.finish(conn, failedEvent{Event: eventFailed, Kind: kindInvalidRequest, Detail: "invalid request message"})
		return
	}
	_ = conn.SetReadDeadline(time.Time{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Reads only fail once the peer goes away.
	go func() {
		for {
			if _, _, err := conn.NextReader(); err != nil {
				cancel()
				return
			}
		}
	}()

	if err := h.send(conn, startedEvent{Event: eventStarted, SessionID: sessionID}); err != nil {
		log.Warn("send started event failed", "err", err)
		return
	}

	saved, err := h.projects.GenerateReadme(ctx, user.ID, req)
	if err != nil {
		if ctx.Err() != nil {
			log.Info("client disconnected, generation abandoned")
			return
		}
		h.finish(conn, h.failedEventFor(err, user.ID))
		return
	}
	h.finish(conn, completedEvent{Event: eventCompleted, Readme: saved.Readme, ProjectID: saved.ProjectID})
}

func (h *Handler) failedEventFor(err error, userID string) failedEvent {
	if f, ok := entity.AsFailure(err); ok {
		return failedEvent{Event: eventFailed, Kind: f.Kind, Detail: f.Message, Retryable: f.Retryable}
	}
	if errors.Is(err, usecase.ErrInvalidRequest) {
		return failedEvent{Event: eventFailed, Kind: kindInvalidRequest, Detail: err.Error()}
	}
	h.logger.Error("websocket generation failed", "user_id", userID, "err", err)
	return failedEvent{Event: eventFailed, Kind: entity.FailureInternal, Detail: "internal server error"}
}

func (h *Handler) send(conn *websocket.Conn, v interface{}) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(v)
}

// finish sends the terminal event followed by a normal close frame.
func (h *Handler) finish(conn *websocket.Conn, v interface{}) {
	if err := h.send(conn, v); err != nil {
		h.logger.Warn("send final event failed", "err", err)
		return
	}
	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(wsWriteTimeout),
	)
}
