package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	apperrors "github.com/Kamar-Folarin/repo-insights/internal/errors"
	"github.com/Kamar-Folarin/repo-insights/internal/github"
	"github.com/Kamar-Folarin/repo-insights/internal/models"
	"github.com/Kamar-Folarin/repo-insights/internal/service"
)

// InsightsService is the analysis surface the handlers depend on.
type InsightsService interface {
	Status(ctx context.Context, projectID string) (*service.ConnectionStatus, error)
	Link(ctx context.Context, projectID, repoURL, token string) (*models.RepoInfo, error)
	Unlink(ctx context.Context, projectID string) error
	RepoInfo(ctx context.Context, projectID string) (*models.RepoInfo, error)
	Commits(ctx context.Context, projectID string, filter github.CommitFilter) ([]models.Commit, error)
	CommitDetails(ctx context.Context, projectID string, shas []string) ([]models.Commit, error)
	Contributors(ctx context.Context, projectID string) ([]models.Contributor, error)
	ContributorsWithSkills(ctx context.Context, projectID string) ([]models.Contributor, error)
	PullRequests(ctx context.Context, projectID, state string) ([]models.PullRequest, error)
	HeroMoments(ctx context.Context, projectID string) ([]models.HeroMoment, error)
	FlowPeriods(ctx context.Context, projectID, contributor string) ([]models.FlowPeriod, error)
	DecisionPoints(ctx context.Context, projectID string) ([]models.DecisionPoint, error)
	Retrospective(ctx context.Context, projectID string) (*models.RetroSummary, error)
	SuggestAssignees(ctx context.Context, projectID string, required models.SkillCategory, members []service.Member) ([]models.AssigneeScore, error)
}

var _ InsightsService = (*service.InsightsService)(nil)

// Handler serves the project GitHub routes.
type Handler struct {
	insights InsightsService
	logger   *logrus.Logger
	// cache is set by SetupRouter when response caching is enabled.
	cache *responseCache
}

// NewHandler creates a handler backed by insights.
func NewHandler(insights InsightsService, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{
		insights: insights,
		logger:   logger,
	}
}

// respond writes value, or the error mapped to a status code. Projects
// without a GitHub link answer {"connected": false}; that answer is aborted
// so the response cache never stores it.
func (h *Handler) respond(c *gin.Context, value interface{}, err error) {
	if err == nil {
		c.JSON(http.StatusOK, value)
		return
	}
	if errors.Is(err, service.ErrNotConnected) {
		c.AbortWithStatusJSON(http.StatusOK, DisconnectedResponse{Connected: false})
		return
	}

	appErr := apperrors.FromGitHub(err)
	status := appErr.HTTPStatus()
	entry := h.logger.WithFields(logrus.Fields{
		"path":   c.FullPath(),
		"status": status,
		"error":  err.Error(),
	})
	switch {
	case apperrors.IsRateLimit(appErr):
		entry.Warn("GitHub rate limit reached")
	case apperrors.IsInvalidInput(appErr):
		entry.Debug("Rejected invalid request")
	case status >= http.StatusInternalServerError:
		entry.Error("Request failed")
	default:
		entry.Warn("Request rejected")
	}
	c.JSON(status, ErrorResponse{Error: errorMessage(appErr)})
}

// invalidate drops cached responses of the project after its link changed.
func (h *Handler) invalidate(projectID string) {
	if h.cache != nil {
		h.cache.invalidate(projectID)
	}
}

func errorMessage(appErr *apperrors.AppError) string {
	if appErr.Cause != nil && appErr.Type != apperrors.ErrInternal {
		return appErr.Cause.Error()
	}
	return appErr.Message
}

// @Summary Get GitHub connection status
// @Description Report whether the project is linked to a repository. The token is never returned.
// @Tags github
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} service.ConnectionStatus
// @Failure 500 {object} ErrorResponse
// @Router /projects/{id}/github [get]
func (h *Handler) GetStatus(c *gin.Context) {
	status, err := h.insights.Status(c.Request.Context(), c.Param("id"))
	h.respond(c, status, err)
}

// @Summary Link a project to a GitHub repository
// @Description Validates the repository with GitHub before saving the link
// @Tags github
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body LinkRequest true "Repository to link"
// @Success 200 {object} models.RepoInfo
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /projects/{id}/github [put]
func (h *Handler) LinkRepository(c *gin.Context) {
	var req LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	projectID := c.Param("id")
	info, err := h.insights.Link(c.Request.Context(), projectID, req.RepoURL, req.Token)
	if err == nil {
		h.invalidate(projectID)
	}
	h.respond(c, info, err)
}

// @Summary Unlink a project from GitHub
// @Tags github
// @Param id path string true "Project ID"
// @Success 204 "No Content"
// @Failure 500 {object} ErrorResponse
// @Router /projects/{id}/github [delete]
func (h *Handler) UnlinkRepository(c *gin.Context) {
	projectID := c.Param("id")
	if err := h.insights.Unlink(c.Request.Context(), projectID); err != nil {
		h.respond(c, nil, err)
		return
	}
	h.invalidate(projectID)
	c.Status(http.StatusNoContent)
}

// @Summary Get repository details
// @Tags github
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} models.RepoInfo
// @Failure 404 {object} ErrorResponse
// @Router /projects/{id}/github/repo [get]
func (h *Handler) GetRepoInfo(c *gin.Context) {
	info, err := h.insights.RepoInfo(c.Request.Context(), c.Param("id"))
	h.respond(c, info, err)
}

// @Summary List recent commits
// @Description First page of commits, without stats or files
// @Tags github
// @Produce json
// @Param id path string true "Project ID"
// @Param author query string false "Only commits by this login"
// @Param since query string false "Only commits after this time (RFC3339)" example("2024-03-20T00:00:00Z")
// @Success 200 {array} models.Commit
// @Failure 400 {object} ErrorResponse
// @Router /projects/{id}/github/commits [get]
func (h *Handler) GetCommits(c *gin.Context) {
	filter := github.CommitFilter{Author: c.Query("author")}
	if since := c.Query("since"); since != "" {
		t, err := time.Parse(time.RFC3339, since)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid since parameter (use RFC3339 format)"})
			return
		}
		filter.Since = t
	}

	commits, err := h.insights.Commits(c.Request.Context(), c.Param("id"), filter)
	h.respond(c, commits, err)
}

// @Summary Get commit details
// @Description Stats and changed files for the given commits. Commits that cannot be fetched are left out.
// @Tags github
// @Produce json
// @Param id path string true "Project ID"
// @Param sha query []string true "Commit SHAs" collectionFormat(multi)
// @Success 200 {array} models.Commit
// @Failure 400 {object} ErrorResponse
// @Router /projects/{id}/github/commit-details [get]
func (h *Handler) GetCommitDetails(c *gin.Context) {
	var shas []string
	for _, v := range c.QueryArray("sha") {
		for _, sha := range strings.Split(v, ",") {
			if sha = strings.TrimSpace(sha); sha != "" {
				shas = append(shas, sha)
			}
		}
	}
	if len(shas) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "At least one sha is required"})
		return
	}

	details, err := h.insights.CommitDetails(c.Request.Context(), c.Param("id"), shas)
	h.respond(c, details, err)
}

// @Summary List contributors
// @Tags github
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} models.Contributor
// @Router /projects/{id}/github/contributors [get]
func (h *Handler) GetContributors(c *gin.Context) {
	contributors, err := h.insights.Contributors(c.Request.Context(), c.Param("id"))
	h.respond(c, contributors, err)
}

// @Summary List contributors with detected skills
// @Tags github
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} models.Contributor
// @Router /projects/{id}/github/contributors/skills [get]
func (h *Handler) GetContributorSkills(c *gin.Context) {
	contributors, err := h.insights.ContributorsWithSkills(c.Request.Context(), c.Param("id"))
	h.respond(c, contributors, err)
}

// @Summary List pull requests
// @Tags github
// @Produce json
// @Param id path string true "Project ID"
// @Param state query string false "open, closed or all" default(all)
// @Success 200 {array} models.PullRequest
// @Router /projects/{id}/github/pulls [get]
func (h *Handler) GetPullRequests(c *gin.Context) {
	prs, err := h.insights.PullRequests(c.Request.Context(), c.Param("id"), c.Query("state"))
	h.respond(c, prs, err)
}

// @Summary Detect hero moments
// @Tags insights
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} models.HeroMoment
// @Router /projects/{id}/github/heroes [get]
func (h *Handler) GetHeroMoments(c *gin.Context) {
	heroes, err := h.insights.HeroMoments(c.Request.Context(), c.Param("id"))
	h.respond(c, heroes, err)
}

// @Summary Detect flow periods of a contributor
// @Tags insights
// @Produce json
// @Param id path string true "Project ID"
// @Param contributor query string true "Contributor login"
// @Success 200 {array} models.FlowPeriod
// @Failure 400 {object} ErrorResponse
// @Router /projects/{id}/github/flow [get]
func (h *Handler) GetFlowPeriods(c *gin.Context) {
	contributor := c.Query("contributor")
	if contributor == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "contributor is required"})
		return
	}

	periods, err := h.insights.FlowPeriods(c.Request.Context(), c.Param("id"), contributor)
	h.respond(c, periods, err)
}

// @Summary List decision points
// @Description Merged pull requests among the most recently updated closed ones
// @Tags insights
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} models.DecisionPoint
// @Router /projects/{id}/github/decisions [get]
func (h *Handler) GetDecisionPoints(c *gin.Context) {
	points, err := h.insights.DecisionPoints(c.Request.Context(), c.Param("id"))
	h.respond(c, points, err)
}

// @Summary Get a retrospective summary
// @Tags insights
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} models.RetroSummary
// @Router /projects/{id}/github/retrospective [get]
func (h *Handler) GetRetrospective(c *gin.Context) {
	summary, err := h.insights.Retrospective(c.Request.Context(), c.Param("id"))
	h.respond(c, summary, err)
}

// @Summary Suggest assignees for a task
// @Description Rank members by confidence in the required skill minus a penalty per open task
// @Tags insights
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body AssigneeRequest true "Task skill and candidate members"
// @Success 200 {array} models.AssigneeScore
// @Failure 400 {object} ErrorResponse
// @Router /projects/{id}/github/assignees [post]
func (h *Handler) SuggestAssignees(c *gin.Context) {
	var req AssigneeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	if !req.RequiredSkill.Valid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown skill: " + string(req.RequiredSkill)})
		return
	}

	scores, err := h.insights.SuggestAssignees(c.Request.Context(), c.Param("id"), req.RequiredSkill, req.Members)
	h.respond(c, scores, err)
}

// @Summary List skill categories
// @Description Every skill category with its display label, in enumeration order
// @Tags insights
// @Produce json
// @Success 200 {array} SkillCategoryResponse
// @Router /skills [get]
func (h *Handler) ListSkills(c *gin.Context) {
	categories := make([]SkillCategoryResponse, 0, len(models.SkillCategories))
	for _, category := range models.SkillCategories {
		categories = append(categories, SkillCategoryResponse{Name: category, Label: category.Label()})
	}
	c.JSON(http.StatusOK, categories)
}
