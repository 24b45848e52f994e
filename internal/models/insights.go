package models

import "time"

type HeroMoment struct {
	CommitSHA    string    `json:"commitSha"`
	Author       string    `json:"author"`
	AuthorAvatar string    `json:"authorAvatar"`
	Message      string    `json:"message"`
	Reason       string    `json:"reason"`
	Timestamp    time.Time `json:"timestamp"`
	LinesChanged int       `json:"linesChanged"`
}

// FlowPeriod is a burst of commits by one contributor with no long pause
// between consecutive commits.
type FlowPeriod struct {
	Contributor string    `json:"contributor"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	CommitCount int       `json:"commitCount"`
}

type DecisionPoint struct {
	PRNumber   int       `json:"prNumber"`
	Title      string    `json:"title"`
	MergedDate time.Time `json:"mergedDate"`
	Author     string    `json:"author"`
	Impact     string    `json:"impact"`
}

// TimelineDay counts commits made on one calendar day.
type TimelineDay struct {
	Date     string         `json:"date"`
	Total    int            `json:"total"`
	ByAuthor map[string]int `json:"byAuthor"`
}

type RetroSummary struct {
	TotalCommits int           `json:"totalCommits"`
	Contributors int           `json:"contributors"`
	HeroMoments  int           `json:"heroMoments"`
	PRsMerged    int           `json:"prsMerged"`
	Timeline     []TimelineDay `json:"timeline"`
}
