package config

import "time"

// GitHubConfig holds GitHub-specific configuration
type GitHubConfig struct {
	APIBaseURL string
	// Token is only used for the legacy single-repo link.
	Token   string
	Timeout time.Duration
	// RequestsPerSecond paces outgoing requests. Zero means unpaced.
	RequestsPerSecond float64
}

// DefaultGitHubConfig returns the default GitHub configuration
func DefaultGitHubConfig() *GitHubConfig {
	return &GitHubConfig{
		APIBaseURL: "https://api.github.com",
		Timeout:    30 * time.Second,
	}
}
