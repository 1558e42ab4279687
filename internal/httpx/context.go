package httpx

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"librarymanager/internal/authn"
)

type contextKey string

const (
	identityKey    contextKey = "identity"
	requestIDKey   contextKey = "requestID"
	loggerKey      contextKey = "logger"
	requestInfoKey contextKey = "requestInfo"
)

// requestInfo is shared by outer middlewares so they can see what inner
// ones learned about the request.
type requestInfo struct {
	userID string
}

// IdentityFrom retrieves the authenticated caller from the request context.
// The zero Identity means the request was not authenticated.
func IdentityFrom(r *http.Request) authn.Identity {
	if v, ok := r.Context().Value(identityKey).(authn.Identity); ok {
		return v
	}
	return authn.Identity{}
}

// UserIDFrom retrieves the caller's owner id from the request context.
func UserIDFrom(r *http.Request) string {
	return IdentityFrom(r).OwnerID
}

func ContextWithIdentity(ctx context.Context, id authn.Identity) context.Context {
	if info, ok := ctx.Value(requestInfoKey).(*requestInfo); ok {
		info.userID = id.OwnerID
	}
	return context.WithValue(ctx, identityKey, id)
}

// RequestIDFrom retrieves the request ID from the request context.
func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// LoggerFrom returns the request-scoped logger, or a no-op logger.
func LoggerFrom(ctx context.Context) *zap.Logger {
	if v, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return v
	}
	return zap.NewNop()
}

func ContextWithLogger(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}
