package github

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/repo-insights/internal/batch"
	"github.com/Kamar-Folarin/repo-insights/internal/models"
)

// API is the set of GitHub reads the insight pipeline consumes.
type API interface {
	FetchRepoInfo(ctx context.Context, link models.GitHubLink) (*models.RepoInfo, error)
	FetchCommits(ctx context.Context, link models.GitHubLink, filter CommitFilter) ([]models.Commit, error)
	FetchCommitDetail(ctx context.Context, link models.GitHubLink, sha string) (*models.Commit, error)
	FetchContributors(ctx context.Context, link models.GitHubLink) ([]models.Contributor, error)
	FetchPullRequests(ctx context.Context, link models.GitHubLink, state string) ([]models.PullRequest, error)
}

var _ API = (*Client)(nil)

// FetchCommitDetails looks up the details of at most limit leading SHAs.
// Items whose lookup fails are dropped from Values and reported in Failures;
// the batch itself never fails.
func FetchCommitDetails(ctx context.Context, api API, p *batch.Processor, link models.GitHubLink, shas []string, limit int, logger *logrus.Logger) batch.Outcome[models.Commit] {
	sampled := batch.Prefix(shas, limit)

	results := batch.Run(ctx, p, sampled, func(ctx context.Context, sha string) (models.Commit, error) {
		detail, err := api.FetchCommitDetail(ctx, link, sha)
		if err != nil {
			return models.Commit{}, err
		}
		return *detail, nil
	})

	out := batch.Gather(results)
	if out.Failed() > 0 && logger != nil {
		logger.WithFields(logrus.Fields{
			"repo":      link.FullName(),
			"requested": len(sampled),
			"failed":    out.Failed(),
		}).Warn("Skipped commits whose details could not be fetched")
	}
	return out
}

// SHAs returns the SHA of every commit in order.
func SHAs(commits []models.Commit) []string {
	shas := make([]string, 0, len(commits))
	for _, c := range commits {
		shas = append(shas, c.SHA)
	}
	return shas
}
