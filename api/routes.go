package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *application) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/events", func(r chi.Router) {
		r.Get("/", app.ListEvents)
		r.Post("/", app.CreateEvent)
		r.Get("/new", app.NewEventForm)

		r.Route("/{eventID}", func(r chi.Router) {
			r.Get("/", app.GetEvent)
			r.Put("/", app.UpdateEvent)
			r.Delete("/", app.DeleteEvent)
			r.Get("/edit", app.EditEventForm)
		})
	})

	return r
}
