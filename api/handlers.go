package api

import (
	"github.com/rpupo63/portfolio-backend/config"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, router router) *routeHandlers {
	secureCookie := config.GetBool(router.config, "COOKIE_SECURE", false)
	baseURL := config.GetString(router.config, "BASE_URL", "")

	return &routeHandlers{
		authHandler:        newAuthHandler(deps.Identity, deps.Sessions, secureCookie),
		profileHandler:     newProfileHandler(deps.Identity),
		projectHandler:     newProjectHandler(deps.Content, deps.Engagement, deps.Site, baseURL),
		achievementHandler: newAchievementHandler(deps.Content),
		experienceHandler:  newExperienceHandler(deps.Content),
		categoryHandler:    newCategoryHandler(deps.Content),
		siteHandler:        newSiteHandler(deps.Site, deps.Assets, deps.Health, router.startupTime, secureCookie),
	}
}
