package handler

import (
	"net/http"

	"github.com/lumenfide/lumen/internal/ctxkeys"
	"github.com/lumenfide/lumen/internal/httputil"
	"github.com/lumenfide/lumen/internal/service"
)

type GuideHandler struct {
	guideService *service.GuideService
}

func NewGuideHandler(guideService *service.GuideService) *GuideHandler {
	return &GuideHandler{
		guideService: guideService,
	}
}

func (h *GuideHandler) Get(w http.ResponseWriter, r *http.Request) {
	guide, err := h.guideService.BySlug(r.Context(), r.PathValue("slug"), r.URL.Query().Get("locale"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, guide)
}

// AddGoal converts the guide into a new goal for the caller.
func (h *GuideHandler) AddGoal(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	goal, err := h.guideService.ConvertToGoal(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, goal)
}
