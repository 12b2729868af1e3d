package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/cardquest/internal/quest/service"
	"github.com/aussiebroadwan/cardquest/pkg/httpx"
	"github.com/aussiebroadwan/cardquest/pkg/slogx"
)

// statusFor maps service errors onto HTTP statuses. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidCardHash),
		errors.Is(err, service.ErrInvalidUserID),
		errors.Is(err, service.ErrInvalidUsername):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrQuestionNotFound),
		errors.Is(err, service.ErrInvalidToken):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAlreadyRegistered),
		errors.Is(err, service.ErrTokenCollision),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrUserExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrCategoryEmpty):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError writes err as an envelope. Internal errors are logged and
// replaced by msg so store details never reach the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		slogx.FromContext(r.Context()).Error(msg, slog.Any("error", err))
		httpx.WriteError(w, code, msg)
		return
	}
	httpx.WriteError(w, code, err.Error())
}
