// Package authn turns bearer credentials into caller identities.
//
// The verifier trusts the claims of a correctly signed, unexpired token; it
// does not look the identity up in any store.
package authn

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"librarymanager/internal/apperr"
	"librarymanager/internal/platform/crypto"
)

// Identity is the caller derived from a verified credential.
type Identity struct {
	OwnerID string
}

var (
	ErrNoCredential      = &apperr.Error{Kind: apperr.KindUnauthenticated, Reason: "no credential supplied"}
	ErrInvalidCredential = &apperr.Error{Kind: apperr.KindUnauthenticated, Reason: "invalid or expired credential"}
)

var errMissingSecret = errors.New("authn: signing secret must not be empty")

type Verifier struct {
	secret string
	now    func() time.Time
}

// NewVerifier builds a Verifier for the HS256 signing secret. A nil clock
// means time.Now.
func NewVerifier(secret string, now func() time.Time) (*Verifier, error) {
	if secret == "" {
		return nil, errMissingSecret
	}
	if now == nil {
		now = time.Now
	}
	return &Verifier{secret: secret, now: now}, nil
}

// Verify validates credential and returns the identity embedded at issuance.
// Malformed, expired and badly signed tokens all fail with ErrInvalidCredential.
func (v *Verifier) Verify(credential string) (Identity, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return Identity{}, ErrNoCredential
	}

	claims, err := crypto.ParseToken(v.secret, credential, jwt.WithTimeFunc(v.now))
	if err != nil {
		return Identity{}, &apperr.Error{Kind: ErrInvalidCredential.Kind, Reason: ErrInvalidCredential.Reason, Err: err}
	}
	if claims.UserID == "" {
		return Identity{}, ErrInvalidCredential
	}
	return Identity{OwnerID: claims.UserID}, nil
}

// BearerCredential extracts the token from an Authorization header value.
func BearerCredential(header string) string {
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
