package httpx

import (
	"net/http"

	"go.uber.org/zap"
)

func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				LoggerFrom(r.Context()).Error("panic recovered", zap.Any("panic", rec), zap.Stack("stack"))

				var wroteHeader bool
				if rw, ok := w.(*responseWriter); ok {
					wroteHeader = rw.wroteHeader()
				}
				if !wroteHeader {
					WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Message: serverErrorMessage, Code: "internal"})
				}
			}
		}()
		next.ServeHTTP(w, r)
	})
}
