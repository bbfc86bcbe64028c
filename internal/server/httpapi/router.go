package httpapi

import (
	"github.com/go-chi/chi/v5"
)

// NewRouter mounts the API under /api/v1. Everything past auth and ping
// requires a valid bearer token.
func NewRouter(h *Handler, secretKey []byte) chi.Router {
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", h.Register)
		r.Post("/auth/salt", h.GetSalt)
		r.Post("/auth/login", h.Login)
		r.Post("/auth/refresh", h.Refresh)

		r.Get("/ping", h.Ping)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(secretKey))

			r.Get("/sync", h.Sync)
			r.Get("/records/{recordID}/attachments/{attachmentID}/url", h.AttachmentURL)
			r.Post("/events", h.CollectEvent)
		})
	})

	return r
}
