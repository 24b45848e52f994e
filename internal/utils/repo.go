package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseRepoURL parses a GitHub repository reference into owner and name
// components. It accepts "owner/repo", "github.com/owner/repo" and full
// URLs, with or without a trailing ".git".
func ParseRepoURL(repoURL string) (owner, name string, err error) {
	raw := strings.TrimSpace(repoURL)
	if raw == "" {
		return "", "", fmt.Errorf("invalid GitHub repository URL")
	}

	path := raw
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", "", err
		}
		path = u.Path
	} else if host, rest, ok := strings.Cut(raw, "/"); ok && strings.Contains(host, ".") {
		path = rest
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid GitHub repository URL")
	}

	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}
