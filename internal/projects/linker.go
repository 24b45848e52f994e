package projects

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/repo-insights/internal/db"
	apperrors "github.com/Kamar-Folarin/repo-insights/internal/errors"
	"github.com/Kamar-Folarin/repo-insights/internal/models"
	"github.com/Kamar-Folarin/repo-insights/internal/utils"
)

// RepoValidator checks that a link points at a reachable repository.
type RepoValidator interface {
	FetchRepoInfo(ctx context.Context, link models.GitHubLink) (*models.RepoInfo, error)
}

// Linker connects projects to GitHub repositories.
type Linker struct {
	store     db.LinkStore
	validator RepoValidator
	logger    *logrus.Logger
}

// NewLinker creates a linker that validates repositories through validator
// before saving them to store.
func NewLinker(store db.LinkStore, validator RepoValidator, logger *logrus.Logger) *Linker {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Linker{store: store, validator: validator, logger: logger}
}

// Link validates repoURL against GitHub with token and saves it for the
// project. GitHub errors are returned unwrapped so callers can show them.
func (l *Linker) Link(ctx context.Context, projectID, repoURL, token string) (*models.RepoInfo, error) {
	if projectID == "" {
		return nil, apperrors.NewValidationError("project id is required", nil)
	}

	owner, repo, err := utils.ParseRepoURL(repoURL)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid repository URL", err)
	}

	link := models.GitHubLink{Owner: owner, Repo: repo, Token: token}
	info, err := l.validator.FetchRepoInfo(ctx, link)
	if err != nil {
		return nil, err
	}

	if err := l.store.SaveGitHubLink(ctx, projectID, link); err != nil {
		return nil, apperrors.NewInternalError("failed to save github link", err)
	}

	l.logger.WithFields(logrus.Fields{
		"project": projectID,
		"repo":    link.FullName(),
	}).Info("Linked project to GitHub repository")

	return info, nil
}

// Unlink removes the project's GitHub link. Unlinking a project that has
// no link is not an error.
func (l *Linker) Unlink(ctx context.Context, projectID string) error {
	if err := l.store.DeleteGitHubLink(ctx, projectID); err != nil {
		return apperrors.NewInternalError("failed to delete github link", err)
	}

	l.logger.WithField("project", projectID).Info("Unlinked project from GitHub")
	return nil
}
