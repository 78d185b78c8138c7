package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vocabdeck/vocabdeck-api/internal/api"
	apiMiddleware "github.com/vocabdeck/vocabdeck-api/internal/api/middleware"
	"github.com/vocabdeck/vocabdeck-api/internal/api/shared"
)

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.config.Auth, app.clock)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	folderHandler := api.NewFolderHandler(app.folderService)
	studySetHandler := api.NewStudySetHandler(app.studySetService)
	sessionHandler := api.NewSessionHandler(app.sessions)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Route("/folders", func(r chi.Router) {
				r.Get("/", folderHandler.ListFolders)
				r.Post("/", folderHandler.CreateFolder)
				r.Get("/{id}", folderHandler.GetFolder)
				r.Put("/{id}", folderHandler.UpdateFolder)
				r.Delete("/{id}", folderHandler.DeleteFolder)
			})

			r.Route("/study-sets", func(r chi.Router) {
				r.Get("/", studySetHandler.ListStudySets)
				r.Post("/", studySetHandler.CreateStudySet)
				r.Get("/{id}", studySetHandler.GetStudySet)
				r.Put("/{id}", studySetHandler.UpdateStudySet)
				r.Delete("/{id}", studySetHandler.DeleteStudySet)
				r.Put("/{id}/vocabulary", studySetHandler.ReplaceVocabulary)
				r.Post("/{id}/import", studySetHandler.ImportVocabulary)
				r.Post("/{id}/examples", studySetHandler.RequestExamples)
				r.Post("/{id}/sessions", sessionHandler.StartSession)
			})

			r.Post("/vocabulary/parse", studySetHandler.ParseVocabulary)

			r.Route("/sessions/{id}", func(r chi.Router) {
				r.Get("/", sessionHandler.GetSession)
				r.Delete("/", sessionHandler.EndSession)

				r.Post("/flashcards/flip", sessionHandler.Flip)
				r.Post("/flashcards/next", sessionHandler.Next)
				r.Post("/flashcards/previous", sessionHandler.Previous)
				r.Post("/flashcards/swipe", sessionHandler.Swipe)

				r.Post("/quiz/select", sessionHandler.SelectAnswer)
				r.Post("/quiz/advance", sessionHandler.Advance)

				r.Post("/matching/select", sessionHandler.SelectTile)
				r.Post("/matching/restart", sessionHandler.Restart)
				r.Post("/matching/continue", sessionHandler.Continue)
			})
		})
	})

	r.Get("/health", app.health)

	return r
}

func (app *application) health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, api.HealthResponse{
		Status: "ok",
		Time:   app.clock.Now().UTC(),
	})
}
