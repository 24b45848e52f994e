package api

import (
	"github.com/Kamar-Folarin/repo-insights/internal/models"
	"github.com/Kamar-Folarin/repo-insights/internal/service"
)

// ErrorResponse represents an API error
// @Description Error response from the API
type ErrorResponse struct {
	Error string `json:"error" example:"GitHub API error: 404"`
}

// DisconnectedResponse is returned by analysis routes of projects that
// have no GitHub link.
type DisconnectedResponse struct {
	Connected bool `json:"connected" example:"false"`
}

// LinkRequest names the repository to link and an optional access token.
type LinkRequest struct {
	RepoURL string `json:"repoUrl" binding:"required" example:"https://github.com/owner/repo"`
	Token   string `json:"token"`
}

type AssigneeRequest struct {
	RequiredSkill models.SkillCategory `json:"requiredSkill" binding:"required" example:"backend"`
	Members       []service.Member     `json:"members"`
}

// SkillCategoryResponse pairs a skill category with its display label.
type SkillCategoryResponse struct {
	Name  models.SkillCategory `json:"name" example:"ml"`
	Label string               `json:"label" example:"ML / AI"`
}
