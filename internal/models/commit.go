package models

import "time"

// Commit is a normalized GitHub commit. Commits from list endpoints carry
// zero stats and an empty file list; only detail fetches fill them in.
type Commit struct {
	SHA          string    `json:"sha"`
	Message      string    `json:"message"`
	Author       string    `json:"author"`
	AuthorAvatar string    `json:"authorAvatar"`
	Date         time.Time `json:"date"`
	Additions    int       `json:"additions"`
	Deletions    int       `json:"deletions"`
	FilesChanged []string  `json:"filesChanged"`
}

// LinesChanged returns additions plus deletions.
func (c *Commit) LinesChanged() int {
	return c.Additions + c.Deletions
}

type Contributor struct {
	Login         string             `json:"login"`
	Avatar        string             `json:"avatar"`
	Contributions int                `json:"contributions"`
	Commits       []Commit           `json:"commits"`
	Skills        []ContributorSkill `json:"skills"`
}

type PullRequest struct {
	Number       int        `json:"number"`
	Title        string     `json:"title"`
	Author       string     `json:"author"`
	AuthorAvatar string     `json:"authorAvatar"`
	State        string     `json:"state"`
	MergedAt     *time.Time `json:"mergedAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	// Additions and Deletions are not returned by the pulls list endpoint
	// and stay zero.
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
}
