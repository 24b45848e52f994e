package models

type RepoInfo struct {
	Name        string `json:"name"`
	Owner       string `json:"owner"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Stars       int    `json:"stars"`
	Forks       int    `json:"forks"`
	OpenIssues  int    `json:"openIssues"`
}

// GitHubLink is the GitHub connection of a project. Token is optional and
// never serialized back to clients.
type GitHubLink struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
	Token string `json:"-"`
}

// Valid reports whether both owner and repo are set.
func (l *GitHubLink) Valid() bool {
	return l != nil && l.Owner != "" && l.Repo != ""
}

// FullName returns "owner/repo".
func (l *GitHubLink) FullName() string {
	return l.Owner + "/" + l.Repo
}
