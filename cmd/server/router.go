package main

import (
	"net/http"

	"github.com/dmuriuki/taskforge-api/internal/api"
	apiMiddleware "github.com/dmuriuki/taskforge-api/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Reads are public; writes sit behind basic authentication.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	basicAuth := apiMiddleware.NewBasicAuthMiddleware(app.credentialVerifier)

	r.Route("/tasks", func(r chi.Router) {
		// Listing is public
		r.Get("/", taskHandler.ListTasks)

		// Mutations require credentials
		r.Group(func(r chi.Router) {
			r.Use(basicAuth.Authenticate)
			r.Post("/", taskHandler.CreateTask)
			r.Put("/{id}", taskHandler.UpdateTask)
			r.Delete("/{id}", taskHandler.DeleteTask)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
