package routes

import (
	"context"
	"net/http"

	"github.com/lumenfide/lumen/internal/app"
	"github.com/lumenfide/lumen/internal/cache"
	"github.com/lumenfide/lumen/internal/handler"
	"github.com/lumenfide/lumen/internal/middleware"
	"github.com/lumenfide/lumen/internal/model"
)

// SetupRoutes builds the API handler. ctx bounds background work such as
// rate limiter cleanup.
func SetupRoutes(ctx context.Context, app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler(app.DB)
	search := handler.NewSearchHandler(app.SearchService)
	content := handler.NewContentHandler(app.ContentService)
	guide := handler.NewGuideHandler(app.GuideService)
	goal := handler.NewGoalHandler(app.GoalService)
	favorite := handler.NewFavoriteHandler(app.FavoriteService)
	journal := handler.NewJournalHandler(app.JournalService)
	milestone := handler.NewMilestoneHandler(app.MilestoneService)

	// Shared cache store, when configured
	var store cache.Store
	var limiter middleware.Limiter
	if app.Cache != nil {
		store = app.Cache
		limiter = middleware.NewStoreLimiter(app.Cache, app.Cfg.RateLimitRequests, app.Cfg.RateLimitWindow)
	} else {
		limiter = middleware.NewRateLimiter(ctx, app.Cfg.RateLimitRequests, app.Cfg.RateLimitWindow)
	}
	cached := middleware.CacheResponses(store, "content", app.Cfg.SearchCacheTTL)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /api/health", home.Health)

	// Search
	mux.HandleFunc("GET /api/search", cached(search.Search))

	// Content
	mux.HandleFunc("GET /api/prayers", cached(content.Prayers))
	mux.HandleFunc("GET /api/prayers/{slug}", cached(content.Prayer))
	mux.HandleFunc("GET /api/saints", cached(content.Saints))
	mux.HandleFunc("GET /api/saints/{slug}", cached(content.Saint))
	mux.HandleFunc("GET /api/ourladies", cached(content.Apparitions))
	mux.HandleFunc("GET /api/ourladies/{slug}", cached(content.Apparition))
	mux.HandleFunc("GET /api/guides/{slug}", cached(guide.Get))
	mux.HandleFunc("GET /api/parishes", cached(content.Parishes))
	mux.HandleFunc("GET /api/parishes/{id}", cached(content.Parish))

	// ============================================================================
	// PROTECTED ROUTES
	// ============================================================================

	// Favorites
	favoriteRoutes := map[string]model.ContentType{
		"prayers":   model.ContentTypePrayer,
		"saints":    model.ContentTypeSaint,
		"ourladies": model.ContentTypeOurLady,
		"guides":    model.ContentTypeGuide,
		"parishes":  model.ContentTypeParish,
	}
	for path, contentType := range favoriteRoutes {
		mux.HandleFunc("POST /api/"+path+"/{id}/save", middleware.RequireAuth(favorite.Save(contentType)))
		mux.HandleFunc("DELETE /api/"+path+"/{id}/remove", middleware.RequireAuth(favorite.Remove(contentType)))
	}
	mux.HandleFunc("GET /api/favorites", middleware.RequireAuth(favorite.List))

	// Guide to goal
	mux.HandleFunc("POST /api/guides/{id}/add-goal", middleware.RequireAuth(guide.AddGoal))

	// Goals
	mux.HandleFunc("GET /api/goals", middleware.RequireAuth(goal.List))
	mux.HandleFunc("POST /api/goals", middleware.RequireAuth(goal.Create))
	mux.HandleFunc("GET /api/goals/{id}", middleware.RequireAuth(goal.Get))
	mux.HandleFunc("PUT /api/goals/{id}", middleware.RequireAuth(goal.Update))
	mux.HandleFunc("DELETE /api/goals/{id}", middleware.RequireAuth(goal.Delete))
	mux.HandleFunc("GET /api/goals/{id}/days", middleware.RequireAuth(goal.Days))
	mux.HandleFunc("PUT /api/goals/{id}/days/{day}", middleware.RequireAuth(goal.UpdateDay))
	mux.HandleFunc("POST /api/goals/{id}/days/{day}/toggle", middleware.RequireAuth(goal.ToggleDay))

	// Journal
	mux.HandleFunc("GET /api/journal", middleware.RequireAuth(journal.List))
	mux.HandleFunc("POST /api/journal", middleware.RequireAuth(journal.Create))
	mux.HandleFunc("GET /api/journal/{id}", middleware.RequireAuth(journal.Get))
	mux.HandleFunc("PUT /api/journal/{id}", middleware.RequireAuth(journal.Update))
	mux.HandleFunc("DELETE /api/journal/{id}", middleware.RequireAuth(journal.Delete))

	// Milestones
	mux.HandleFunc("GET /api/milestones", middleware.RequireAuth(milestone.List))
	mux.HandleFunc("POST /api/milestones", middleware.RequireAuth(milestone.Create))
	mux.HandleFunc("GET /api/milestones/{id}", middleware.RequireAuth(milestone.Get))
	mux.HandleFunc("PUT /api/milestones/{id}", middleware.RequireAuth(milestone.Update))
	mux.HandleFunc("DELETE /api/milestones/{id}", middleware.RequireAuth(milestone.Delete))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	// 404
	mux.HandleFunc("/{path...}", home.NotFound)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Recovery,        // Must be first so panics anywhere below are caught
		middleware.RequestID,       // Request id for logs and responses
		middleware.RequestLogging,
		middleware.SecurityHeaders, // Security headers for all responses
		middleware.CORS(app.Cfg.CORSOrigins),
		middleware.RateLimit(limiter),
		middleware.AuthMiddleware(app.AuthService),
	)

	return handler
}
