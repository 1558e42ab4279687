package savedbook

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarymanager/internal/authn"
	"librarymanager/internal/httpx"
	"librarymanager/internal/testutil"
)

const handlerSecret = "handler-test-secret"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	verifier, err := authn.NewVerifier(handlerSecret, nil)
	require.NoError(t, err)
	h := NewHTTPHandler(newSQLiteService(t), httpx.NewBinder())
	protect := httpx.AuthMiddleware(verifier)

	mux := http.NewServeMux()
	mux.Handle("GET /books", protect(http.HandlerFunc(h.List)))
	mux.Handle("POST /books", protect(http.HandlerFunc(h.Create)))
	mux.Handle("PUT /books/{id}", protect(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /books/{id}", protect(http.HandlerFunc(h.Delete)))
	return mux
}

func tokenFor(t *testing.T, ownerID string) string {
	t.Helper()
	return testutil.Token(t, handlerSecret, ownerID)
}

func do(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	return testutil.Serve(h, testutil.NewRequest(method, path, token, body))
}

func decodeBook(t *testing.T, w *httptest.ResponseRecorder) BookResponse {
	t.Helper()
	var resp BookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHTTPHandler_RequiresToken(t *testing.T) {
	router := newTestRouter(t)
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/books"},
		{http.MethodPost, "/books"},
		{http.MethodPut, "/books/b1"},
		{http.MethodDelete, "/books/b1"},
	} {
		w := do(t, router, tc.method, tc.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}

	w := do(t, router, http.MethodGet, "/books", "tampered.token.value", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHTTPHandler_Scenario(t *testing.T) {
	router := newTestRouter(t)
	token := tokenFor(t, "u1")

	w := do(t, router, http.MethodPost, "/books", token, `{"externalId":"gb-42","title":"Dune"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeBook(t, w)
	assert.Equal(t, "Book saved successfully", created.Message)
	assert.Equal(t, StatusWantToRead, created.Book.Status)
	assert.Empty(t, created.Book.Review)
	assert.Equal(t, "u1", created.Book.OwnerID)
	assert.Contains(t, w.Body.String(), `"authors":[]`)

	w = do(t, router, http.MethodPut, "/books/"+created.Book.ID, token, `{"status":"Reading","review":"so far so good"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeBook(t, w)
	assert.Equal(t, "Book updated successfully", updated.Message)
	assert.Equal(t, StatusReading, updated.Book.Status)
	assert.Equal(t, "so far so good", updated.Book.Review)

	w = do(t, router, http.MethodPut, "/books/"+created.Book.ID, token, `{"status":"Finished"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"invalid status value","code":"validation"}`, w.Body.String())

	w = do(t, router, http.MethodGet, "/books", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var books []SavedBook
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &books))
	require.Len(t, books, 1)
	assert.Equal(t, StatusReading, books[0].Status)

	w = do(t, router, http.MethodDelete, "/books/"+created.Book.ID, token, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Book deleted successfully"}`, w.Body.String())

	w = do(t, router, http.MethodDelete, "/books/"+created.Book.ID, token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHTTPHandler_Create(t *testing.T) {
	router := newTestRouter(t)
	token := tokenFor(t, "u1")

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantMsg    string
	}{
		{name: "missing title", body: `{"externalId":"gb-1"}`, wantStatus: http.StatusBadRequest, wantMsg: "required field missing: title"},
		{name: "missing external id", body: `{"title":"Emma"}`, wantStatus: http.StatusBadRequest, wantMsg: "required field missing: externalId"},
		{name: "blank title", body: `{"externalId":"gb-1","title":"   "}`, wantStatus: http.StatusBadRequest, wantMsg: "required field missing: title"},
		{name: "malformed", body: `{"externalId":`, wantStatus: http.StatusBadRequest, wantMsg: "malformed request body"},
		{name: "legacy id alias", body: `{"googleBookId":"gb-2","title":"Emma","authors":["Jane Austen"]}`, wantStatus: http.StatusCreated},
		{name: "duplicate", body: `{"externalId":"gb-2","title":"Emma"}`, wantStatus: http.StatusBadRequest, wantMsg: "already saved"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, http.MethodPost, "/books", token, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantMsg != "" {
				var body httpx.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.wantMsg, body.Message)
			}
		})
	}
}

func TestHTTPHandler_OwnershipIsolation(t *testing.T) {
	router := newTestRouter(t)
	alice := tokenFor(t, "alice")
	bob := tokenFor(t, "bob")

	w := do(t, router, http.MethodPost, "/books", alice, `{"externalId":"gb-42","title":"Dune"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	book := decodeBook(t, w).Book

	w = do(t, router, http.MethodPut, "/books/"+book.ID, bob, `{"review":"hijacked"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, router, http.MethodDelete, "/books/"+book.ID, bob, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodPost, "/books", bob, `{"externalId":"gb-42","title":"Dune"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(t, router, http.MethodGet, "/books", alice, "")
	var books []SavedBook
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &books))
	require.Len(t, books, 1)
	assert.Empty(t, books[0].Review)
}

func TestHTTPHandler_UpdateWithEmptyBody(t *testing.T) {
	router := newTestRouter(t)
	token := tokenFor(t, "u1")

	w := do(t, router, http.MethodPost, "/books", token, `{"externalId":"gb-3","title":"Beloved"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	book := decodeBook(t, w).Book

	w = do(t, router, http.MethodPut, "/books/"+book.ID, token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, StatusWantToRead, decodeBook(t, w).Book.Status)

	w = do(t, router, http.MethodPut, "/books/does-not-exist", token, `{"status":"Reading"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"book not found","code":"not_found"}`, w.Body.String())
}
