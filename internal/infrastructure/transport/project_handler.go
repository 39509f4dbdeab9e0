package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"readmearchitect/app/usecase"
	"readmearchitect/internal/domain/entity"
)

type generateResp struct {
	Readme    string `json:"readme"`
	ProjectID string `json:"project_id"`
}

// POST /projects/generate-readme
func (h *Handler) handleGenerateReadme(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req entity.GenerationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("bad request body: %w", err))
		return
	}

	saved, err := h.projects.GenerateReadme(r.Context(), user.ID, req)
	if err != nil {
		h.writeGenerateError(w, user.ID, err)
		return
	}
	writeJSON(w, http.StatusOK, generateResp{Readme: saved.Readme, ProjectID: saved.ProjectID})
}

func (h *Handler) writeGenerateError(w http.ResponseWriter, userID string, err error) {
	if f, ok := entity.AsFailure(err); ok {
		writeFailure(w, f)
		return
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, context.Canceled):
		writeError(w, http.StatusRequestTimeout, errors.New("request canceled"))
	default:
		h.logger.Error("generate readme failed", "user_id", userID, "err", err)
		writeError(w, http.StatusInternalServerError, errors.New("internal server error"))
	}
}

// GET /projects/history
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	projects, err := h.projects.History(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("list history failed", "user_id", user.ID, "err", err)
		writeError(w, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}
	if projects == nil {
		projects = []*entity.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}
