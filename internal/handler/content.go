package handler

import (
	"net/http"

	"github.com/lumenfide/lumen/internal/httputil"
	"github.com/lumenfide/lumen/internal/service"
)

type ContentHandler struct {
	contentService *service.ContentService
}

func NewContentHandler(contentService *service.ContentService) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
	}
}

func listQuery(r *http.Request) service.ContentListQuery {
	q := r.URL.Query()
	return service.ContentListQuery{
		Query:      q.Get("query"),
		Locale:     q.Get("locale"),
		Category:   q.Get("category"),
		FeastMonth: q.Get("feastMonth"),
	}
}

// respond writes v as JSON, or the mapped error.
func respond(w http.ResponseWriter, r *http.Request, v any, err error) {
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, v)
}

func (h *ContentHandler) Prayers(w http.ResponseWriter, r *http.Request) {
	prayers, err := h.contentService.Prayers(r.Context(), listQuery(r))
	respond(w, r, prayers, err)
}

func (h *ContentHandler) Prayer(w http.ResponseWriter, r *http.Request) {
	prayer, err := h.contentService.Prayer(r.Context(), r.PathValue("slug"), r.URL.Query().Get("locale"))
	respond(w, r, prayer, err)
}

func (h *ContentHandler) Saints(w http.ResponseWriter, r *http.Request) {
	saints, err := h.contentService.Saints(r.Context(), listQuery(r))
	respond(w, r, saints, err)
}

func (h *ContentHandler) Saint(w http.ResponseWriter, r *http.Request) {
	saint, err := h.contentService.Saint(r.Context(), r.PathValue("slug"), r.URL.Query().Get("locale"))
	respond(w, r, saint, err)
}

func (h *ContentHandler) Apparitions(w http.ResponseWriter, r *http.Request) {
	apparitions, err := h.contentService.Apparitions(r.Context(), listQuery(r))
	respond(w, r, apparitions, err)
}

func (h *ContentHandler) Apparition(w http.ResponseWriter, r *http.Request) {
	apparition, err := h.contentService.Apparition(r.Context(), r.PathValue("slug"), r.URL.Query().Get("locale"))
	respond(w, r, apparition, err)
}

// Parishes accepts lat/lng but filters only by city, postal code and country.
func (h *ContentHandler) Parishes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	parishes, err := h.contentService.Parishes(r.Context(), service.ParishListQuery{
		City:       q.Get("city"),
		PostalCode: q.Get("postal"),
		Country:    q.Get("country"),
	})
	respond(w, r, parishes, err)
}

func (h *ContentHandler) Parish(w http.ResponseWriter, r *http.Request) {
	parish, err := h.contentService.Parish(r.Context(), r.PathValue("id"))
	respond(w, r, parish, err)
}
