// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"librarymanager/internal/platform/crypto"
	"librarymanager/internal/platform/database"
)

// NewSQLiteDB opens a private in-memory database that is closed when the
// test ends.
func NewSQLiteDB(t testing.TB) *bun.DB {
	t.Helper()
	db, err := database.OpenSQLite(context.Background(), database.MemoryDSN(uuid.NewString()), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// Token signs a one hour token for userID.
func Token(t testing.TB, secret, userID string) string {
	t.Helper()
	token, err := crypto.GenerateToken(secret, userID, time.Hour)
	require.NoError(t, err)
	return token
}

// NewRequest builds a request with an optional JSON body and bearer token.
func NewRequest(method, path, token, body string) *http.Request {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

// Serve runs req through h and returns the recorded response.
func Serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
