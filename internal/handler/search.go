package handler

import (
	"net/http"

	"github.com/lumenfide/lumen/internal/httputil"
	"github.com/lumenfide/lumen/internal/service"
)

type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

// Search handles GET /api/search?q=&type=&locale=
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	resp, err := h.searchService.Search(r.Context(), service.SearchQuery{
		Term:   query.Get("q"),
		Type:   query.Get("type"),
		Locale: query.Get("locale"),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}
