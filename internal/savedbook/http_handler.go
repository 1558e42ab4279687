package savedbook

import (
	"net/http"

	"librarymanager/internal/httpx"
)

type HTTPHandler struct {
	service *Service
	binder  *httpx.Binder
}

func NewHTTPHandler(service *Service, binder *httpx.Binder) *HTTPHandler {
	return &HTTPHandler{service: service, binder: binder}
}

// CreateBookReq accepts googleBookId for clients that predate externalId.
type CreateBookReq struct {
	ExternalID   string   `json:"externalId" mod:"trim" validate:"required_without=GoogleBookID"`
	GoogleBookID string   `json:"googleBookId,omitempty" mod:"trim"`
	Title        string   `json:"title" mod:"trim" validate:"required"`
	Authors      []string `json:"authors"`
	Description  string   `json:"description"`
	Thumbnail    string   `json:"thumbnail"`
	InfoLink     string   `json:"infoLink"`
}

func (req CreateBookReq) input() CreateInput {
	externalID := req.ExternalID
	if externalID == "" {
		externalID = req.GoogleBookID
	}
	return CreateInput{
		ExternalID:  externalID,
		Title:       req.Title,
		Authors:     req.Authors,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		InfoLink:    req.InfoLink,
	}
}

type UpdateBookReq struct {
	Status *string `json:"status"`
	Review *string `json:"review"`
}

// BookResponse wraps a single saved book with a confirmation message.
type BookResponse struct {
	Message string    `json:"message"`
	Book    SavedBook `json:"book"`
}

// List handles GET /books
// @Summary List saved books
// @Description Get every book saved by the caller, oldest first
// @Tags books
// @Produce json
// @Security BearerAuth
// @Success 200 {array} SavedBook
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context(), httpx.IdentityFrom(r))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, books)
}

// Create handles POST /books
// @Summary Save a book
// @Description Save a catalog entry to the caller's library
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBookReq true "Book to save"
// @Success 201 {object} BookResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookReq
	if err := h.binder.Bind(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	book, err := h.service.Create(r.Context(), httpx.IdentityFrom(r), req.input())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, BookResponse{Message: "Book saved successfully", Book: book})
}

// Update handles PUT /books/{id}
// @Summary Update a saved book
// @Description Change the reading status and/or review of a saved book
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Saved book id"
// @Param request body UpdateBookReq true "Fields to change"
// @Success 200 {object} BookResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateBookReq
	if err := h.binder.Bind(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	book, err := h.service.Update(r.Context(), httpx.IdentityFrom(r), r.PathValue("id"), UpdateInput{
		Status: req.Status,
		Review: req.Review,
	})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, BookResponse{Message: "Book updated successfully", Book: book})
}

// Delete handles DELETE /books/{id}
// @Summary Delete a saved book
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path string true "Saved book id"
// @Success 200 {object} httpx.MessageResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), httpx.IdentityFrom(r), r.PathValue("id")); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "Book deleted successfully")
}
