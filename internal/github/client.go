package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/Kamar-Folarin/repo-insights/internal/models"
)

const (
	defaultBaseURL  = "https://api.github.com"
	acceptHeader    = "application/vnd.github.v3+json"
	commitsPerPage  = 100
	listPerPage     = 50
	defaultPRState  = "all"
	defaultLanguage = "Unknown"
)

// RateLimitInfo holds information about GitHub API rate limits
type RateLimitInfo struct {
	Limit     int
	Remaining int
	ResetTime time.Time
}

// CommitFilter narrows a commit listing. Zero values are not sent.
type CommitFilter struct {
	Since  time.Time
	Author string
}

// Client is a GitHub REST v3 client. The token travels with each call so
// one client serves every linked project.
type Client struct {
	client  *http.Client
	baseURL string
	logger  *logrus.Logger
	limiter *rate.Limiter

	mu            sync.RWMutex
	rateLimitInfo RateLimitInfo
}

// ClientOption allows configuring the GitHub client
type ClientOption func(*Client)

// WithBaseURL points the client at another API root, e.g. GitHub Enterprise.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client. Bearer tokens are
// layered on top of its transport.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithTimeout sets the timeout of the underlying HTTP client.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// WithRateLimit spaces requests to at most rps per second. It does not
// retry failed requests.
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *Client) {
		if rps <= 0 {
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewClient creates a new GitHub client with the given options
func NewClient(logger *logrus.Logger, opts ...ClientOption) *Client {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	c := &Client{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultBaseURL,
		logger:  logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// RateLimit returns the rate limit state reported by the last response.
func (c *Client) RateLimit() RateLimitInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rateLimitInfo
}

// updateRateLimitInfo updates the rate limit information from response headers
func (c *Client) updateRateLimitInfo(resp *http.Response) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if limit := resp.Header.Get("X-RateLimit-Limit"); limit != "" {
		c.rateLimitInfo.Limit, _ = strconv.Atoi(limit)
	}
	if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		c.rateLimitInfo.Remaining, _ = strconv.Atoi(remaining)
	}
	if reset := resp.Header.Get("X-RateLimit-Reset"); reset != "" {
		if resetTime, err := strconv.ParseInt(reset, 10, 64); err == nil {
			c.rateLimitInfo.ResetTime = time.Unix(resetTime, 0)
		}
	}
}

// httpClient returns a client that authenticates with token, or the plain
// client for anonymous access. Both share the configured timeout.
func (c *Client) httpClient(ctx context.Context, token string) *http.Client {
	if token == "" {
		return c.client
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	hc := oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, c.client), ts)
	hc.Timeout = c.client.Timeout
	return hc
}

// get performs a GET against path and decodes the JSON body into result.
func (c *Client) get(ctx context.Context, token, path string, query url.Values, result interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := c.httpClient(ctx, token).Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.updateRateLimitInfo(resp)
	if info := c.RateLimit(); info.Limit > 0 && info.Remaining == 0 {
		c.logger.WithFields(logrus.Fields{
			"path":     path,
			"limit":    info.Limit,
			"reset_at": info.ResetTime.Format(time.RFC3339),
		}).Warn("GitHub API rate limit exhausted")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb ghErrorBody
		_ = json.Unmarshal(body, &eb)
		c.logger.WithFields(logrus.Fields{
			"path":   path,
			"status": resp.StatusCode,
		}).Debug("GitHub API request failed")
		return NewAPIError(resp.StatusCode, eb.Message)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func validateRepo(link models.GitHubLink) error {
	if link.Owner == "" {
		return NewValidationError("owner", "cannot be empty")
	}
	if link.Repo == "" {
		return NewValidationError("repo", "cannot be empty")
	}
	return nil
}

func repoPath(link models.GitHubLink) string {
	return fmt.Sprintf("/repos/%s/%s", url.PathEscape(link.Owner), url.PathEscape(link.Repo))
}

// FetchRepoInfo gets repository information from GitHub
func (c *Client) FetchRepoInfo(ctx context.Context, link models.GitHubLink) (*models.RepoInfo, error) {
	if err := validateRepo(link); err != nil {
		return nil, err
	}

	var repo ghRepository
	if err := c.get(ctx, link.Token, repoPath(link), nil, &repo); err != nil {
		return nil, err
	}

	info := &models.RepoInfo{
		Name:       repo.Name,
		Owner:      repo.Owner.Login,
		URL:        repo.HTMLURL,
		Language:   defaultLanguage,
		Stars:      repo.StargazersCount,
		Forks:      repo.ForksCount,
		OpenIssues: repo.OpenIssuesCount,
	}
	if repo.Description != nil {
		info.Description = *repo.Description
	}
	if repo.Language != nil && *repo.Language != "" {
		info.Language = *repo.Language
	}
	return info, nil
}

// FetchCommits lists the first page (up to 100) of commits. Summary commits
// carry no stats or files.
func (c *Client) FetchCommits(ctx context.Context, link models.GitHubLink, filter CommitFilter) ([]models.Commit, error) {
	if err := validateRepo(link); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("per_page", strconv.Itoa(commitsPerPage))
	if !filter.Since.IsZero() {
		query.Set("since", filter.Since.UTC().Format(time.RFC3339))
	}
	if filter.Author != "" {
		query.Set("author", filter.Author)
	}

	var raw []ghCommit
	if err := c.get(ctx, link.Token, repoPath(link)+"/commits", query, &raw); err != nil {
		return nil, err
	}

	commits := make([]models.Commit, 0, len(raw))
	for i := range raw {
		commit := normalizeCommit(&raw[i])
		commit.Additions = 0
		commit.Deletions = 0
		commit.FilesChanged = []string{}
		commits = append(commits, commit)
	}

	c.logger.WithFields(logrus.Fields{
		"repo":    link.FullName(),
		"commits": len(commits),
	}).Debug("Fetched commits")

	return commits, nil
}

// FetchCommitDetail gets a single commit with its stats and changed files.
func (c *Client) FetchCommitDetail(ctx context.Context, link models.GitHubLink, sha string) (*models.Commit, error) {
	if err := validateRepo(link); err != nil {
		return nil, err
	}
	if sha == "" {
		return nil, NewValidationError("sha", "cannot be empty")
	}

	var raw ghCommit
	if err := c.get(ctx, link.Token, repoPath(link)+"/commits/"+url.PathEscape(sha), nil, &raw); err != nil {
		return nil, err
	}

	commit := normalizeCommit(&raw)
	return &commit, nil
}

// FetchContributors lists up to 50 contributors. Commits and skills are
// left empty for later enrichment.
func (c *Client) FetchContributors(ctx context.Context, link models.GitHubLink) ([]models.Contributor, error) {
	if err := validateRepo(link); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("per_page", strconv.Itoa(listPerPage))

	var raw []ghContributor
	if err := c.get(ctx, link.Token, repoPath(link)+"/contributors", query, &raw); err != nil {
		return nil, err
	}

	contributors := make([]models.Contributor, 0, len(raw))
	for _, rc := range raw {
		contributors = append(contributors, models.Contributor{
			Login:         rc.Login,
			Avatar:        rc.AvatarURL,
			Contributions: rc.Contributions,
			Commits:       []models.Commit{},
			Skills:        []models.ContributorSkill{},
		})
	}
	return contributors, nil
}

// FetchPullRequests lists up to 50 pull requests, most recently updated
// first. An empty state means "all".
func (c *Client) FetchPullRequests(ctx context.Context, link models.GitHubLink, state string) ([]models.PullRequest, error) {
	if err := validateRepo(link); err != nil {
		return nil, err
	}
	if state == "" {
		state = defaultPRState
	}

	query := url.Values{}
	query.Set("state", state)
	query.Set("per_page", strconv.Itoa(listPerPage))
	query.Set("sort", "updated")
	query.Set("direction", "desc")

	var raw []ghPullRequest
	if err := c.get(ctx, link.Token, repoPath(link)+"/pulls", query, &raw); err != nil {
		return nil, err
	}

	prs := make([]models.PullRequest, 0, len(raw))
	for _, pr := range raw {
		prs = append(prs, models.PullRequest{
			Number:       pr.Number,
			Title:        pr.Title,
			Author:       pr.User.Login,
			AuthorAvatar: pr.User.AvatarURL,
			State:        pr.State,
			MergedAt:     pr.MergedAt,
			CreatedAt:    pr.CreatedAt,
		})
	}
	return prs, nil
}

func normalizeCommit(raw *ghCommit) models.Commit {
	message, _, _ := strings.Cut(raw.Commit.Message, "\n")

	commit := models.Commit{
		SHA:          raw.SHA,
		Message:      message,
		Author:       raw.Commit.Author.Name,
		Date:         raw.Commit.Author.Date,
		FilesChanged: make([]string, 0, len(raw.Files)),
	}
	if raw.Author != nil && raw.Author.Login != "" {
		commit.Author = raw.Author.Login
	}
	if raw.Author != nil {
		commit.AuthorAvatar = raw.Author.AvatarURL
	}
	if raw.Stats != nil {
		commit.Additions = raw.Stats.Additions
		commit.Deletions = raw.Stats.Deletions
	}
	for _, f := range raw.Files {
		commit.FilesChanged = append(commit.FilesChanged, f.Filename)
	}
	return commit
}
