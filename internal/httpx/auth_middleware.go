package httpx

import (
	"net/http"

	"go.uber.org/zap"

	"librarymanager/internal/authn"
)

// CredentialVerifier is satisfied by *authn.Verifier.
type CredentialVerifier interface {
	Verify(credential string) (authn.Identity, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// caller identity in the request context.
func AuthMiddleware(verifier CredentialVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential := authn.BearerCredential(r.Header.Get("Authorization"))
			id, err := verifier.Verify(credential)
			if err != nil {
				LoggerFrom(r.Context()).Debug("credential rejected", zap.Error(err))
				WriteError(w, r, err)
				return
			}

			ctx := ContextWithIdentity(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
