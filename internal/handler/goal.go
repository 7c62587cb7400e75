package handler

import (
	"fmt"
	"net/http"

	"github.com/lumenfide/lumen/internal/ctxkeys"
	"github.com/lumenfide/lumen/internal/domain"
	"github.com/lumenfide/lumen/internal/httputil"
	"github.com/lumenfide/lumen/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	goals, err := h.goalService.Goals(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	goal, err := h.goalService.ByID(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req service.CreateGoalRequest
	err := httputil.ParseJSON(w, r, &req)
	if err != nil {
		handleError(w, r, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	goal, err := h.goalService.Create(r.Context(), userID, req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req service.UpdateGoalRequest
	err := httputil.ParseJSON(w, r, &req)
	if err != nil {
		handleError(w, r, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	goal, err := h.goalService.Update(r.Context(), userID, r.PathValue("id"), req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	err := h.goalService.Delete(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *GoalHandler) Days(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	days, err := h.goalService.Days(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, days)
}

func (h *GoalHandler) UpdateDay(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	day, ok := dayNumber(r)
	if !ok {
		httputil.RespondError(w, http.StatusBadRequest, "invalid day number")
		return
	}

	var req service.UpdateGoalDayRequest
	err := httputil.ParseJSON(w, r, &req)
	if err != nil {
		handleError(w, r, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	goalDay, err := h.goalService.UpdateDay(r.Context(), userID, r.PathValue("id"), day, req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, goalDay)
}

// ToggleDay flips the completion state of one day.
func (h *GoalHandler) ToggleDay(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	day, ok := dayNumber(r)
	if !ok {
		httputil.RespondError(w, http.StatusBadRequest, "invalid day number")
		return
	}

	goalDay, err := h.goalService.ToggleDay(r.Context(), userID, r.PathValue("id"), day)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, goalDay)
}
