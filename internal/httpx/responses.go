package httpx

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"librarymanager/internal/apperr"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const serverErrorMessage = "Server error"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, MessageResponse{Message: message})
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindValidation, apperr.KindConflict:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WriteError renders err as an ErrorResponse. Client errors expose their
// reason; server errors are logged and reported with a generic message.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	status := StatusFor(kind)
	if status >= http.StatusInternalServerError {
		LoggerFrom(r.Context()).Error("request failed", zap.Error(err))
		msg := serverErrorMessage
		switch kind {
		case apperr.KindUnknown:
			kind = apperr.KindStorage
		case apperr.KindUpstream:
			msg = apperr.Reason(err)
		}
		WriteJSON(w, status, ErrorResponse{Message: msg, Code: kind.String()})
		return
	}

	msg := apperr.Reason(err)
	if msg == "" {
		msg = http.StatusText(status)
	}
	WriteJSON(w, status, ErrorResponse{Message: msg, Code: kind.String()})
}
