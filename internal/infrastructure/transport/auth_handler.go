package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"readmearchitect/app/usecase"
	"readmearchitect/internal/domain/entity"
)

type userCtxKey struct{}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func userFromContext(ctx context.Context) *entity.User {
	user, _ := ctx.Value(userCtxKey{}).(*entity.User)
	return user
}

func (h *Handler) writeAuthError(w http.ResponseWriter, err error) {
	if errors.Is(err, usecase.ErrUnauthorized) {
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, http.StatusUnauthorized, usecase.ErrUnauthorized)
		return
	}
	h.logger.Error("resolve current user failed", "err", err)
	writeError(w, http.StatusInternalServerError, errors.New("internal server error"))
}

// requireUser resolves the bearer token and stores the user in the request context.
func (h *Handler) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.auth.CurrentUser(r.Context(), bearerToken(r))
		if err != nil {
			h.writeAuthError(w, err)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userCtxKey{}, user)))
	}
}

// POST /auth/register
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("bad request body: %w", err))
		return
	}

	user, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	switch {
	case errors.Is(err, usecase.ErrEmailTaken), errors.Is(err, usecase.ErrInvalidUser):
		writeError(w, http.StatusBadRequest, err)
		return
	case err != nil:
		h.logger.Error("register failed", "err", err)
		writeError(w, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// POST /auth/login
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("bad request body: %w", err))
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, http.StatusUnauthorized, err)
		return
	case err != nil:
		h.logger.Error("login failed", "err", err)
		writeError(w, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}
	writeJSON(w, http.StatusOK, tokenResp{AccessToken: token, TokenType: "bearer"})
}

// GET /auth/me
func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userFromContext(r.Context()))
}
