package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/lumenfide/lumen/internal/domain"
	"github.com/lumenfide/lumen/internal/httputil"
)

// handleError maps domain errors to problem responses. Anything unrecognised
// is logged and reported as a 500 without details.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
	default:
		slog.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// dayNumber parses the {day} path value. Numbers with no matching day are
// left to the service, which reports them as not found.
func dayNumber(r *http.Request) (int, bool) {
	day, err := strconv.Atoi(r.PathValue("day"))
	if err != nil {
		return 0, false
	}
	return day, true
}
