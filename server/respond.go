package server

import (
	"encoding/json"
	"errors"
	"net/http"

	truedeverrors "github.com/jrsteele09/truedev-client/internal/errors"
	"github.com/rs/zerolog/log"
)

// Messages carried in {message} error bodies.
const (
	MessageInvalidCredentials   = "invalid_credentials"
	MessageUnauthorized         = "unauthorized"
	MessageTokenExpired         = "token_expired"
	MessageInvalidToken         = "invalid_token"
	MessageInvalidRefreshToken  = "invalid_refresh_token"
	MessageCurrentPasswordWrong = "currentPassword_unauthorized"
	MessagePasswordDuplicated   = "password_duplicated"
	MessageAlreadyLiked         = "already_liked"
	MessageDuplicateEmail       = "email_duplicated"
	MessageNotFound             = "not_found"
	MessageForbidden            = "forbidden"
	MessageInvalidRequest       = "invalid_request"
	MessageInternal             = "internal_server_error"
)

type dataEnvelope struct {
	Data any `json:"data"`
}

type messageEnvelope struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warn().Err(err).Msg("Failed to write response")
	}
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, dataEnvelope{Data: data})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageEnvelope{Message: message})
}

// writeError maps a repository or validation error to a status and message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, truedeverrors.ErrNotFound):
		writeMessage(w, http.StatusNotFound, MessageNotFound)
	case errors.Is(err, truedeverrors.ErrForbidden):
		writeMessage(w, http.StatusForbidden, MessageForbidden)
	case errors.Is(err, truedeverrors.ErrInvalidInput):
		writeMessage(w, http.StatusBadRequest, MessageInvalidRequest)
	default:
		logError(r.Method, r.URL.Path, err)
		writeMessage(w, http.StatusInternalServerError, MessageInternal)
	}
}
