package routes

import (
	"net/http"

	"github.com/templui/studytrack/internal/app"
	"github.com/templui/studytrack/internal/handler"
	"github.com/templui/studytrack/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	goal := handler.NewGoalHandler(app.Sessions)
	activity := handler.NewActivityHandler(app.Sessions)
	stats := handler.NewStatsHandler(app.Sessions)

	// Mutations are rate limited per user
	limit := app.Limiter.Limit

	api := http.NewServeMux()

	// Goals
	api.HandleFunc("GET /api/goals", goal.List)
	api.HandleFunc("POST /api/goals", limit(goal.Create))
	api.HandleFunc("PUT /api/goals/{id}", limit(goal.Update))
	api.HandleFunc("POST /api/goals/{id}/toggle", limit(goal.Toggle))
	api.HandleFunc("POST /api/goals/{id}/edit", goal.RequestEdit)
	api.HandleFunc("DELETE /api/goals/{id}", limit(goal.Delete))

	// Activities
	api.HandleFunc("GET /api/activities", activity.List)
	api.HandleFunc("POST /api/activities", limit(activity.Create))
	api.HandleFunc("PUT /api/activities/{id}", limit(activity.Update))
	api.HandleFunc("PUT /api/activities/{id}/status", limit(activity.UpdateStatus))
	api.HandleFunc("POST /api/activities/{id}/edit", activity.RequestEdit)
	api.HandleFunc("DELETE /api/activities/{id}", limit(activity.Delete))

	// Stats
	api.HandleFunc("GET /api/stats", stats.Stats)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handler.Health)
	mux.Handle("/api/", middleware.RequireBearer(app.Tokens)(api))

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.RequestLogging,
	)
}
