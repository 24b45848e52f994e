package projects

import (
	"context"

	"github.com/Kamar-Folarin/repo-insights/internal/db"
	"github.com/Kamar-Folarin/repo-insights/internal/models"
)

// Provider resolves the GitHub link of a project. A nil link with a nil
// error means the project has no GitHub integration.
type Provider interface {
	GitHubLink(ctx context.Context, projectID string) (*models.GitHubLink, error)
}

// StoreProvider reads per-project links from a LinkStore.
type StoreProvider struct {
	store db.LinkStore
}

// NewStoreProvider creates a provider backed by store.
func NewStoreProvider(store db.LinkStore) *StoreProvider {
	return &StoreProvider{store: store}
}

// GitHubLink returns the stored link, or nil when it is missing or lacks
// an owner or repo.
func (p *StoreProvider) GitHubLink(ctx context.Context, projectID string) (*models.GitHubLink, error) {
	link, err := p.store.GetGitHubLink(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if link == nil || !link.Valid() {
		return nil, nil
	}
	return link, nil
}

// StaticProvider serves the same link for every project.
type StaticProvider struct {
	link models.GitHubLink
}

// NewStaticProvider creates a provider for the legacy single-repository
// setup.
func NewStaticProvider(link models.GitHubLink) *StaticProvider {
	return &StaticProvider{link: link}
}

func (p *StaticProvider) GitHubLink(_ context.Context, _ string) (*models.GitHubLink, error) {
	if !p.link.Valid() {
		return nil, nil
	}
	link := p.link
	return &link, nil
}

type fallback struct {
	primary   Provider
	secondary Provider
}

// Fallback consults secondary only when primary has no link for the
// project. Errors from primary are returned as is.
func Fallback(primary, secondary Provider) Provider {
	return &fallback{primary: primary, secondary: secondary}
}

func (f *fallback) GitHubLink(ctx context.Context, projectID string) (*models.GitHubLink, error) {
	link, err := f.primary.GitHubLink(ctx, projectID)
	if err != nil || link != nil {
		return link, err
	}
	return f.secondary.GitHubLink(ctx, projectID)
}
