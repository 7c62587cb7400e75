package handler

import (
	"net/http"

	"github.com/lumenfide/lumen/internal/ctxkeys"
	"github.com/lumenfide/lumen/internal/httputil"
	"github.com/lumenfide/lumen/internal/model"
	"github.com/lumenfide/lumen/internal/service"
)

type FavoriteHandler struct {
	favoriteService *service.FavoriteService
}

func NewFavoriteHandler(favoriteService *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
	}
}

// Save returns a handler that favorites the {id} item of the given type.
func (h *FavoriteHandler) Save(entityType model.ContentType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := ctxkeys.UserID(r.Context())

		favorite, err := h.favoriteService.Save(r.Context(), userID, entityType, r.PathValue("id"))
		if err != nil {
			handleError(w, r, err)
			return
		}

		httputil.RespondJSON(w, http.StatusCreated, favorite)
	}
}

func (h *FavoriteHandler) Remove(entityType model.ContentType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := ctxkeys.UserID(r.Context())

		err := h.favoriteService.Remove(r.Context(), userID, entityType, r.PathValue("id"))
		if err != nil {
			handleError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	favorites, err := h.favoriteService.Favorites(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, favorites)
}
