package catalog

import (
	"net/http"
	"strconv"

	"librarymanager/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Search handles GET /search
// @Summary Search the book catalog
// @Tags catalog
// @Produce json
// @Param q query string true "Search terms"
// @Param maxResults query int false "Page size" default(20)
// @Success 200 {array} Volume
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /search [get]
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	maxResults, _ := strconv.Atoi(r.URL.Query().Get("maxResults"))

	volumes, err := h.service.Search(r.Context(), r.URL.Query().Get("q"), maxResults)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, volumes)
}
