package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Kamar-Folarin/repo-insights/internal/assignment"
	"github.com/Kamar-Folarin/repo-insights/internal/batch"
	"github.com/Kamar-Folarin/repo-insights/internal/github"
	"github.com/Kamar-Folarin/repo-insights/internal/insights"
	"github.com/Kamar-Folarin/repo-insights/internal/models"
	"github.com/Kamar-Folarin/repo-insights/internal/projects"
	"github.com/Kamar-Folarin/repo-insights/internal/skills"
)

// ErrNotConnected is returned when a project has no GitHub link.
var ErrNotConnected = errors.New("project is not connected to GitHub")

const closedPRState = "closed"

// ConnectionStatus describes the GitHub link of a project without its token.
type ConnectionStatus struct {
	Connected bool   `json:"connected"`
	Owner     string `json:"owner,omitempty"`
	Repo      string `json:"repo,omitempty"`
}

// Member is a project member offered for assignment. Skills are looked up
// from the contributor analysis.
type Member struct {
	Login            string `json:"login"`
	CurrentTaskCount int    `json:"currentTaskCount"`
}

// InsightsService runs the activity analysis for linked projects.
type InsightsService struct {
	provider  projects.Provider
	api       github.API
	linker    *projects.Linker
	processor *batch.Processor
	location  *time.Location
	logger    *logrus.Logger
}

// Option configures an InsightsService.
type Option func(*InsightsService)

// WithLocation sets the zone hero moments and timelines are computed in.
func WithLocation(loc *time.Location) Option {
	return func(s *InsightsService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithLinker enables Link and Unlink.
func WithLinker(l *projects.Linker) Option {
	return func(s *InsightsService) {
		s.linker = l
	}
}

// NewInsightsService creates the service. A nil processor runs detail
// batches sequentially with the default caps.
func NewInsightsService(provider projects.Provider, api github.API, processor *batch.Processor, logger *logrus.Logger, opts ...Option) *InsightsService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if processor == nil {
		processor = batch.NewProcessor(nil)
	}
	s := &InsightsService{
		provider:  provider,
		api:       api,
		processor: processor,
		location:  time.Local,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InsightsService) link(ctx context.Context, projectID string) (models.GitHubLink, error) {
	link, err := s.provider.GitHubLink(ctx, projectID)
	if err != nil {
		return models.GitHubLink{}, err
	}
	if link == nil {
		return models.GitHubLink{}, ErrNotConnected
	}
	return *link, nil
}

// Status reports whether the project is linked. It never fails for an
// unlinked project.
func (s *InsightsService) Status(ctx context.Context, projectID string) (*ConnectionStatus, error) {
	link, err := s.link(ctx, projectID)
	if errors.Is(err, ErrNotConnected) {
		return &ConnectionStatus{Connected: false}, nil
	}
	if err != nil {
		return nil, err
	}
	return &ConnectionStatus{Connected: true, Owner: link.Owner, Repo: link.Repo}, nil
}

// RepoInfo fetches the linked repository's details.
func (s *InsightsService) RepoInfo(ctx context.Context, projectID string) (*models.RepoInfo, error) {
	link, err := s.link(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.api.FetchRepoInfo(ctx, link)
}

func (s *InsightsService) Commits(ctx context.Context, projectID string, filter github.CommitFilter) ([]models.Commit, error) {
	link, err := s.link(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.api.FetchCommits(ctx, link, filter)
}

// CommitDetails fetches the details of the leading shas, up to the general
// detail cap. Failed lookups are left out.
func (s *InsightsService) CommitDetails(ctx context.Context, projectID string, shas []string) ([]models.Commit, error) {
	link, err := s.link(ctx, projectID)
	if err != nil {
		return nil, err
	}
	out := github.FetchCommitDetails(ctx, s.api, s.processor, link, shas, s.processor.Config().DetailCap, s.logger)
	return out.Values, nil
}

func (s *InsightsService) Contributors(ctx context.Context, projectID string) ([]models.Contributor, error) {
	link, err := s.link(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.api.FetchContributors(ctx, link)
}

// detailedCommits lists recent commits and fetches details for the first
// limit of them.
func (s *InsightsService) detailedCommits(ctx context.Context, link models.GitHubLink, limit int) ([]models.Commit, error) {
	commits, err := s.api.FetchCommits(ctx, link, github.CommitFilter{})
	if err != nil {
		return nil, err
	}
	out := github.FetchCommitDetails(ctx, s.api, s.processor, link, github.SHAs(commits), limit, s.logger)
	return out.Values, nil
}

// ContributorsWithSkills attaches detected skills to every contributor,
// sampling the skill detail cap of recent commits.
func (s *InsightsService) ContributorsWithSkills(ctx context.Context, projectID string) ([]models.Contributor, error) {
	link, err := s.link(ctx, projectID)
	if err != nil {
		return nil, err
	}

	contributors, err := s.api.FetchContributors(ctx, link)
	if err != nil {
		return nil, err
	}

	detailed, err := s.detailedCommits(ctx, link, s.processor.Config().SkillCap)
	if err != nil {
		return nil, err
	}

	return skills.Aggregate(contributors, detailed), nil
}

func (s *InsightsService) PullRequests(ctx context.Context, projectID, state string) ([]models.PullRequest, error) {
	link, err := s.link(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.api.FetchPullRequests(ctx, link, state)
}

// HeroMoments runs hero detection over the detailed recent commits, up to
// the hero detail cap.
func (s *InsightsService) HeroMoments(ctx context.Context, projectID string) ([]models.HeroMoment, error) {
	link, err := s.link(ctx, projectID)
	if err != nil {
		return nil, err
	}

	detailed, err := s.detailedCommits(ctx, link, s.processor.Config().HeroCap)
	if err != nil {
		return nil, err
	}
	return insights.DetectHeroMoments(detailed, s.location), nil
}

// FlowPeriods detects flow periods of contributor over the recent commit
// listing.
func (s *InsightsService) FlowPeriods(ctx context.Context, projectID, contributor string) ([]models.FlowPeriod, error) {
	commits, err := s.Commits(ctx, projectID, github.CommitFilter{})
	if err != nil {
		return nil, err
	}
	return insights.DetectFlowPeriods(commits, contributor), nil
}

// DecisionPoints lists merged pull requests as decision points.
func (s *InsightsService) DecisionPoints(ctx context.Context, projectID string) ([]models.DecisionPoint, error) {
	prs, err := s.PullRequests(ctx, projectID, closedPRState)
	if err != nil {
		return nil, err
	}
	return insights.DetectDecisionPoints(prs), nil
}

// Retrospective summarizes recent activity of the project.
func (s *InsightsService) Retrospective(ctx context.Context, projectID string) (*models.RetroSummary, error) {
	link, err := s.link(ctx, projectID)
	if err != nil {
		return nil, err
	}

	var (
		commits      []models.Commit
		contributors []models.Contributor
		prs          []models.PullRequest
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		commits, err = s.api.FetchCommits(gctx, link, github.CommitFilter{})
		return err
	})
	g.Go(func() (err error) {
		contributors, err = s.api.FetchContributors(gctx, link)
		return err
	})
	g.Go(func() (err error) {
		prs, err = s.api.FetchPullRequests(gctx, link, closedPRState)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	details := github.FetchCommitDetails(ctx, s.api, s.processor, link, github.SHAs(commits), s.processor.Config().HeroCap, s.logger)
	heroes := insights.DetectHeroMoments(details.Values, s.location)
	decisions := insights.DetectDecisionPoints(prs)

	summary := insights.Summarize(commits, len(contributors), heroes, decisions, s.location)
	return &summary, nil
}

// SuggestAssignees ranks members for a task needing required. Members
// without detected skills score zero.
func (s *InsightsService) SuggestAssignees(ctx context.Context, projectID string, required models.SkillCategory, members []Member) ([]models.AssigneeScore, error) {
	contributors, err := s.ContributorsWithSkills(ctx, projectID)
	if err != nil {
		return nil, err
	}

	skillsByLogin := make(map[string][]models.ContributorSkill, len(contributors))
	for _, c := range contributors {
		skillsByLogin[c.Login] = c.Skills
	}

	candidates := make([]models.AssigneeCandidate, 0, len(members))
	for _, m := range members {
		candidates = append(candidates, models.AssigneeCandidate{
			Login:            m.Login,
			Skills:           skillsByLogin[m.Login],
			CurrentTaskCount: m.CurrentTaskCount,
		})
	}
	return assignment.SuggestAssignees(candidates, required), nil
}

// Link connects the project to the repository at repoURL.
func (s *InsightsService) Link(ctx context.Context, projectID, repoURL, token string) (*models.RepoInfo, error) {
	if s.linker == nil {
		return nil, errors.New("linking is not configured")
	}
	return s.linker.Link(ctx, projectID, repoURL, token)
}

// Unlink removes the project's link.
func (s *InsightsService) Unlink(ctx context.Context, projectID string) error {
	if s.linker == nil {
		return errors.New("linking is not configured")
	}
	return s.linker.Unlink(ctx, projectID)
}
