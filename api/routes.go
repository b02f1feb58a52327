package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/blogicum-backend/errs"
	"github.com/rs/zerolog/log"
)

// setupRoutes mirrors the site's page layout. Every route runs with the
// viewer resolved; operations that need an account check for it themselves.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware, limiter *loginLimiter) {
	responder := NewResponder(log.With().Str("handlerName", "router").Logger())
	r.Use(ColoredHTTPLoggingMiddleware)
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responder.WriteError(w, req, errs.NewNotFoundError("page "+req.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		responder.WriteError(w, req, errs.NewMethodNotAllowedError(req.Method))
	})

	r.Get("/health", handlers.healthHandler.health())

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)

		// Feeds
		r.Get("/", handlers.feedHandler.index())
		r.Get("/category/{category_slug}", handlers.feedHandler.category())
		r.Get("/profile", handlers.feedHandler.ownProfile())
		r.Get("/profile/{username}", handlers.feedHandler.profile())

		// Profile editing
		r.Get("/edit_profile", handlers.profileHandler.editForm())
		r.Post("/edit_profile", handlers.profileHandler.updateProfile())

		// Posts
		r.Get("/posts/create", handlers.postHandler.createForm())
		r.Post("/posts/create", handlers.postHandler.createPost())
		r.Get("/posts/{post_id:[0-9]+}", handlers.postHandler.getPost())
		r.Get("/posts/{post_id:[0-9]+}/edit", handlers.postHandler.editForm())
		r.Post("/posts/{post_id:[0-9]+}/edit", handlers.postHandler.updatePost())
		r.Get("/posts/{post_id:[0-9]+}/delete", handlers.postHandler.deleteConfirm())
		r.Post("/posts/{post_id:[0-9]+}/delete", handlers.postHandler.deletePost())

		// Comments
		r.Get("/posts/{post_id:[0-9]+}/comment", handlers.commentHandler.commentFormNotAllowed())
		r.Post("/posts/{post_id:[0-9]+}/comment", handlers.commentHandler.addComment())
		r.Get("/posts/{post_id:[0-9]+}/edit_comment/{comment_id:[0-9]+}", handlers.commentHandler.editForm())
		r.Post("/posts/{post_id:[0-9]+}/edit_comment/{comment_id:[0-9]+}", handlers.commentHandler.updateComment())
		r.Get("/posts/{post_id:[0-9]+}/delete_comment/{comment_id:[0-9]+}", handlers.commentHandler.deleteConfirm())
		r.Post("/posts/{post_id:[0-9]+}/delete_comment/{comment_id:[0-9]+}", handlers.commentHandler.deleteComment())

		// Auth
		r.Post("/auth/registration", handlers.authHandler.register())
		r.Get("/auth/login", handlers.authHandler.loginPage())
		r.With(limiter.Limit).Post("/auth/login", handlers.authHandler.login())
		r.Post("/auth/logout", handlers.authHandler.logout())

		// Staff provisioning
		r.Route("/admin", func(r chi.Router) {
			r.Get("/categories", handlers.adminHandler.listCategories())
			r.Post("/categories", handlers.adminHandler.createCategory())
			r.Get("/categories/{id:[0-9]+}", handlers.adminHandler.getCategory())
			r.Put("/categories/{id:[0-9]+}", handlers.adminHandler.updateCategory())
			r.Post("/categories/{id:[0-9]+}", handlers.adminHandler.updateCategory())
			r.Delete("/categories/{id:[0-9]+}", handlers.adminHandler.deleteCategory())

			r.Get("/locations", handlers.adminHandler.listLocations())
			r.Post("/locations", handlers.adminHandler.createLocation())
			r.Get("/locations/{id:[0-9]+}", handlers.adminHandler.getLocation())
			r.Put("/locations/{id:[0-9]+}", handlers.adminHandler.updateLocation())
			r.Post("/locations/{id:[0-9]+}", handlers.adminHandler.updateLocation())
			r.Delete("/locations/{id:[0-9]+}", handlers.adminHandler.deleteLocation())
		})
	})
}
