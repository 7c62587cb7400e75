package handler

import (
	"fmt"
	"net/http"

	"github.com/lumenfide/lumen/internal/ctxkeys"
	"github.com/lumenfide/lumen/internal/domain"
	"github.com/lumenfide/lumen/internal/httputil"
	"github.com/lumenfide/lumen/internal/service"
)

type JournalHandler struct {
	journalService *service.JournalService
}

func NewJournalHandler(journalService *service.JournalService) *JournalHandler {
	return &JournalHandler{
		journalService: journalService,
	}
}

func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.journalService.Entries(r.Context(), ctxkeys.UserID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, entries)
}

func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.journalService.ByID(r.Context(), ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, entry)
}

func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateJournalEntryRequest
	err := httputil.ParseJSON(w, r, &req)
	if err != nil {
		handleError(w, r, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	entry, err := h.journalService.Create(r.Context(), ctxkeys.UserID(r.Context()), req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, entry)
}

func (h *JournalHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateJournalEntryRequest
	err := httputil.ParseJSON(w, r, &req)
	if err != nil {
		handleError(w, r, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	entry, err := h.journalService.Update(r.Context(), ctxkeys.UserID(r.Context()), r.PathValue("id"), req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, entry)
}

func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.journalService.Delete(r.Context(), ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
