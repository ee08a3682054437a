package api

import (
	"github.com/go-chi/chi/v5"
)

// setupPublicRoutes registers the pages anyone can read and the account
// entry points.
func setupPublicRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/", handlers.siteHandler.home())
	r.Get("/about", handlers.siteHandler.about())
	r.Get("/portfolio", handlers.siteHandler.portfolio())
	r.Get("/project/{projectID}", handlers.projectHandler.getProjectDetail())
	r.Get("/share_project/{projectID}", handlers.projectHandler.shareProject())
	r.Get("/profile/{userID}", handlers.profileHandler.getProfile())
	r.Get("/uploads/*", handlers.siteHandler.uploads())
	r.Get("/set_language/{language}", handlers.siteHandler.setLanguage())
	r.Get("/healthz", handlers.siteHandler.healthz())

	r.Post("/login", handlers.authHandler.login())
	r.Post("/register", handlers.authHandler.register())
	r.Post("/logout", handlers.authHandler.logout())
	r.Post("/forgot_password", handlers.authHandler.forgotPassword())
	r.Get("/reset_password/{token}", handlers.authHandler.checkResetToken())
	r.Post("/reset_password/{token}", handlers.authHandler.resetPassword())
}

// setupUserRoutes registers the routes that need a signed-in user.
func setupUserRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.requireAuthenticated)

		r.Post("/project/{projectID}/like", handlers.projectHandler.toggleLike())
		r.Post("/project/{projectID}/comment", handlers.projectHandler.addComment())

		r.Get("/profile", handlers.profileHandler.ownProfile())
		r.Post("/edit_profile", handlers.profileHandler.editProfile())
		r.Post("/add_social_network", handlers.profileHandler.addSocialNetwork())
		r.Delete("/remove_social_network/{networkID}", handlers.profileHandler.removeSocialNetwork())
	})
}

// setupAdminRoutes registers the content management routes.
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authMiddleware.requireAdmin)

		r.Get("/", handlers.siteHandler.dashboard())
		r.Post("/change_password", handlers.authHandler.changePassword())
		r.Get("/about", handlers.siteHandler.getAbout())
		r.Post("/about", handlers.siteHandler.updateAbout())

		// Project Handler endpoints
		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Post("/projects", handlers.projectHandler.createProject())
		r.Get("/projects/{projectID}", handlers.projectHandler.getProject())
		r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())

		r.Get("/achievements", handlers.achievementHandler.list())
		r.Post("/achievements", handlers.achievementHandler.create())
		r.Get("/achievements/{achievementID}", handlers.achievementHandler.get())
		r.Put("/achievements/{achievementID}", handlers.achievementHandler.update())
		r.Delete("/achievements/{achievementID}", handlers.achievementHandler.delete())

		r.Get("/experiences", handlers.experienceHandler.list())
		r.Post("/experiences", handlers.experienceHandler.create())
		r.Get("/experiences/{experienceID}", handlers.experienceHandler.get())
		r.Put("/experiences/{experienceID}", handlers.experienceHandler.update())
		r.Delete("/experiences/{experienceID}", handlers.experienceHandler.delete())

		r.Get("/categories", handlers.categoryHandler.list())
		r.Post("/categories", handlers.categoryHandler.create())
		r.Get("/categories/{categoryID}", handlers.categoryHandler.get())
		r.Put("/categories/{categoryID}", handlers.categoryHandler.update())
		r.Delete("/categories/{categoryID}", handlers.categoryHandler.delete())
	})
}
