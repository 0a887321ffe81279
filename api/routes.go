package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupRoutes wires every route with its authentication and
// authorization guards. Article and robot reads are public; all
// mutations require a valid token, and member mutation additionally
// requires the administrator privilege level.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware, uploadsDir string) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/api/health", handlers.healthHandler.health())

		r.Route("/api/members", func(r chi.Router) {
			r.Post("/register", handlers.authHandler.register())
			r.Post("/login", handlers.authHandler.login())

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.authenticate)
				r.Get("/", handlers.memberHandler.getAllMembers())
				r.Get("/{memberID}", handlers.memberHandler.getMember())
				r.Get("/{memberID}/stats", handlers.memberHandler.getMemberStats())

				r.Group(func(r chi.Router) {
					r.Use(authMiddleware.requireAdmin)
					r.Put("/{memberID}", handlers.memberHandler.updateMember())
					r.Delete("/{memberID}", handlers.memberHandler.deleteMember())
				})
			})
		})

		r.Route("/api/tasks", func(r chi.Router) {
			r.Use(authMiddleware.authenticate)
			r.Get("/", handlers.taskHandler.getAllTasks())
			r.Post("/", handlers.taskHandler.createTask())
			r.Put("/{taskID}", handlers.taskHandler.updateTask())
			r.Delete("/{taskID}", handlers.taskHandler.deleteTask())
		})

		r.Route("/api/articles", func(r chi.Router) {
			r.Get("/", handlers.articleHandler.getAllArticles())
			r.Get("/{articleID}", handlers.articleHandler.getArticle())

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.authenticate)
				r.Post("/", handlers.articleHandler.createArticle())
				r.Put("/{articleID}", handlers.articleHandler.updateArticle())
				r.Delete("/{articleID}", handlers.articleHandler.deleteArticle())
			})
		})

		r.Route("/api/robots", func(r chi.Router) {
			r.Get("/", handlers.robotHandler.getAllRobots())
			r.Get("/{robotID}", handlers.robotHandler.getRobot())

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.authenticate)
				r.Post("/", handlers.robotHandler.createRobot())
				r.Put("/{robotID}", handlers.robotHandler.updateRobot())
				r.Delete("/{robotID}", handlers.robotHandler.deleteRobot())
			})
		})
	})

	// Uploaded attachments, served as-is from the local uploads
	// directory. S3-backed deployments serve this path from a CDN.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))
}
