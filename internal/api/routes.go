package api

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Kamar-Folarin/repo-insights/docs"
)

// @title Repo Insights API
// @version 1.0
// @description Activity analysis of the GitHub repositories linked to projects
// @contact.name API Support
// @contact.url http://github.com/Kamar-Folarin
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// SetupRouter configures the API routes. GET analysis routes are cached per
// project for cacheTTL and dropped when the project is linked or unlinked;
// a zero TTL disables caching.
func SetupRouter(h *Handler, cacheTTL time.Duration) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.logger))

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	cached := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return []gin.HandlerFunc{handler}
	}
	if cacheTTL > 0 {
		h.cache = newResponseCache(cacheTTL)
		cached = func(handler gin.HandlerFunc) []gin.HandlerFunc {
			return []gin.HandlerFunc{h.cache.middleware(), handler}
		}
	}

	v1 := r.Group("/api/v1")
	{
		v1.GET("/skills", h.ListSkills)

		gh := v1.Group("/projects/:id/github")
		{
			gh.GET("", h.GetStatus)
			gh.PUT("", h.LinkRepository)
			gh.DELETE("", h.UnlinkRepository)

			gh.GET("/repo", cached(h.GetRepoInfo)...)
			gh.GET("/commits", cached(h.GetCommits)...)
			gh.GET("/commit-details", cached(h.GetCommitDetails)...)
			gh.GET("/contributors", cached(h.GetContributors)...)
			gh.GET("/contributors/skills", cached(h.GetContributorSkills)...)
			gh.GET("/pulls", cached(h.GetPullRequests)...)

			gh.GET("/heroes", cached(h.GetHeroMoments)...)
			gh.GET("/flow", cached(h.GetFlowPeriods)...)
			gh.GET("/decisions", cached(h.GetDecisionPoints)...)
			gh.GET("/retrospective", cached(h.GetRetrospective)...)
			gh.POST("/assignees", h.SuggestAssignees)
		}
	}

	return r
}
