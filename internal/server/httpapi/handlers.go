// Package httpapi exposes the auth operations over HTTP with gorilla/mux.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/messages"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
	"github.com/dmitrijs2005/authkeeper/internal/server/validation"
)

const maxBodyBytes = 1 << 20

// AuthService is the subset of services.UserService the handlers need.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*services.AuthResult, error)
	Login(ctx context.Context, req models.LoginRequest) (*services.AuthResult, error)
	Inspect(ctx context.Context, raw string) (*models.User, error)
	Logout(ctx context.Context, raw string) error
}

type Handler struct {
	auth    AuthService
	metrics *Metrics
	logger  logging.Logger
}

func NewHandler(a AuthService, m *Metrics, l logging.Logger) *Handler {
	return &Handler{auth: a, metrics: m, logger: l.With("module", "http_handler")}
}

type registerResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
	Token   string       `json:"token"`
}

type loginResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    models.PublicUser `json:"user"`
}

type dashboardResponse struct {
	User    *models.User `json:"user"`
	Message string       `json:"message"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	typeErrs := decodeJSON(r, &req, "name", "email", "password")

	res, err := h.auth.Register(r.Context(), req)
	if err != nil {
		h.fail(w, "register", withTypeErrors(err, typeErrs))
		return
	}

	h.metrics.authEvent("register", "success")
	writeJSON(w, http.StatusCreated, registerResponse{
		Message: messages.Get(messages.RegisterSuccess),
		User:    res.User,
		Token:   res.Token.Raw,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	typeErrs := decodeJSON(r, &req, "email", "password")

	res, err := h.auth.Login(r.Context(), req)
	if err != nil {
		h.fail(w, "login", withTypeErrors(err, typeErrs))
		return
	}

	h.metrics.authEvent("login", "success")
	writeJSON(w, http.StatusOK, loginResponse{
		Message: messages.Get(messages.LoginSuccess),
		Token:   res.Token.Raw,
		User:    res.User.Public(),
	})
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.Inspect(r.Context(), bearerToken(r))
	if err != nil {
		h.fail(w, "dashboard", err)
		return
	}

	h.metrics.authEvent("dashboard", "success")
	writeJSON(w, http.StatusOK, dashboardResponse{
		User:    user,
		Message: messages.Get(messages.DashboardWelcome),
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	err := h.auth.Logout(r.Context(), bearerToken(r))
	switch {
	case err == nil:
		h.metrics.authEvent("logout", "success")
		writeJSON(w, http.StatusOK, map[string]string{"message": messages.Get(messages.LogoutSuccess)})
	case errors.Is(err, common.ErrTokenMissing):
		h.fail(w, "logout", err)
	default:
		h.metrics.authEvent("logout", "error")
		writeError(w, http.StatusInternalServerError, messages.LogoutFailed)
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// fail maps a service error onto a status code and message.
func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		h.metrics.authEvent(op, "validation")
		writeValidation(w, vErr.Errors)
		return
	}

	status, key, outcome := http.StatusInternalServerError, messages.InternalError, "error"
	switch {
	case errors.Is(err, common.ErrInvalidEmail):
		status, key, outcome = http.StatusUnauthorized, messages.InvalidEmail, "invalid_email"
	case errors.Is(err, common.ErrInvalidPassword):
		status, key, outcome = http.StatusUnauthorized, messages.InvalidPassword, "invalid_password"
	case errors.Is(err, common.ErrTokenMissing):
		status, key, outcome = http.StatusUnauthorized, messages.TokenMissing, "token_missing"
	case errors.Is(err, common.ErrTokenExpired):
		status, key, outcome = http.StatusUnauthorized, messages.TokenExpired, "token_expired"
	case errors.Is(err, common.ErrTokenInvalid):
		status, key, outcome = http.StatusUnauthorized, messages.TokenInvalid, "token_invalid"
	}

	h.metrics.authEvent(op, outcome)
	writeError(w, status, key)
}

// decodeJSON fills dst from the request body. A body that is missing or not
// a JSON object leaves dst empty so the validator reports required fields.
// Each of fields holding a non-string value is left empty and reported in
// the returned errors.
func decodeJSON(r *http.Request, dst any, fields ...string) validation.Errors {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil
	}

	var typeErrs validation.Errors
	for _, f := range fields {
		v, ok := raw[f]
		if !ok || isStringOrNull(v) {
			continue
		}
		if typeErrs == nil {
			typeErrs = validation.Errors{}
		}
		typeErrs.Add(f, validation.NotString(f))
	}

	// Type mismatches are reported above; the remaining fields are still set.
	_ = json.Unmarshal(body, dst)
	return typeErrs
}

func isStringOrNull(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	return bytes.Equal(v, []byte("null")) || (len(v) > 0 && v[0] == '"')
}

// withTypeErrors merges JSON type errors into a validation failure. A field
// with the wrong type keeps only its type message.
func withTypeErrors(err error, typeErrs validation.Errors) error {
	var vErr *services.ValidationError
	if typeErrs.Empty() || !errors.As(err, &vErr) {
		return err
	}

	merged := validation.Errors{}
	for f, msgs := range vErr.Errors {
		if _, bad := typeErrs[f]; !bad {
			merged[f] = msgs
		}
	}
	for f, msgs := range typeErrs {
		merged[f] = msgs
	}
	return &services.ValidationError{Errors: merged}
}
