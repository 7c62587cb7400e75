package handler

import (
	"fmt"
	"net/http"

	"github.com/lumenfide/lumen/internal/ctxkeys"
	"github.com/lumenfide/lumen/internal/domain"
	"github.com/lumenfide/lumen/internal/httputil"
	"github.com/lumenfide/lumen/internal/service"
)

type MilestoneHandler struct {
	milestoneService *service.MilestoneService
}

func NewMilestoneHandler(milestoneService *service.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{
		milestoneService: milestoneService,
	}
}

func (h *MilestoneHandler) List(w http.ResponseWriter, r *http.Request) {
	milestones, err := h.milestoneService.Milestones(r.Context(), ctxkeys.UserID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, milestones)
}

func (h *MilestoneHandler) Get(w http.ResponseWriter, r *http.Request) {
	milestone, err := h.milestoneService.ByID(r.Context(), ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, milestone)
}

func (h *MilestoneHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateMilestoneRequest
	err := httputil.ParseJSON(w, r, &req)
	if err != nil {
		handleError(w, r, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	milestone, err := h.milestoneService.Create(r.Context(), ctxkeys.UserID(r.Context()), req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, milestone)
}

func (h *MilestoneHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateMilestoneRequest
	err := httputil.ParseJSON(w, r, &req)
	if err != nil {
		handleError(w, r, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	milestone, err := h.milestoneService.Update(r.Context(), ctxkeys.UserID(r.Context()), r.PathValue("id"), req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, milestone)
}

func (h *MilestoneHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.milestoneService.Delete(r.Context(), ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
