package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts the public and the authenticated endpoints
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware, limiters routeLimiters) {
	r.Get("/", handlers.systemHandler.root())
	r.Get("/health", handlers.systemHandler.health())

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Get("/public/posts", handlers.publicHandler.listPublishedPosts())
		r.Get("/public/posts/{slug}", handlers.publicHandler.getPublishedPost())
		r.Get("/public/posts/{postId}/comments", handlers.publicHandler.listComments())
		r.With(limiters.usernameCheck.middleware).Get("/check-username", handlers.userHandler.checkUsername())

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Get("/posts", handlers.postHandler.listPosts())
			r.Post("/posts", handlers.postHandler.createPost())
			r.Get("/posts/{postId}", handlers.postHandler.getPost())
			r.Patch("/posts/{postId}", handlers.postHandler.updatePost())
			r.Patch("/posts/{postId}/publish", handlers.postHandler.togglePublish())
			r.Delete("/posts/{postId}", handlers.postHandler.deletePost())

			r.With(limiters.comments.middleware).Post("/comments", handlers.commentHandler.createComment())

			r.Get("/dashboard/stats", handlers.dashboardHandler.getStats())

			r.Patch("/me", handlers.userHandler.updateProfile())
		})
	})
}
