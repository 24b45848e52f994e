package insights

import (
	"sort"
	"time"

	"github.com/Kamar-Folarin/repo-insights/internal/models"
)

const dayLayout = "2006-01-02"

// Summarize builds the retrospective overview: headline counts and a
// per-day commit timeline in loc, oldest day first.
func Summarize(commits []models.Commit, contributors int, heroes []models.HeroMoment, decisions []models.DecisionPoint, loc *time.Location) models.RetroSummary {
	return models.RetroSummary{
		TotalCommits: len(commits),
		Contributors: contributors,
		HeroMoments:  len(heroes),
		PRsMerged:    len(decisions),
		Timeline:     Timeline(commits, loc),
	}
}

// Timeline groups commits by calendar day in loc.
func Timeline(commits []models.Commit, loc *time.Location) []models.TimelineDay {
	if loc == nil {
		loc = time.Local
	}

	days := make(map[string]*models.TimelineDay)
	for _, c := range commits {
		key := c.Date.In(loc).Format(dayLayout)
		day, ok := days[key]
		if !ok {
			day = &models.TimelineDay{Date: key, ByAuthor: map[string]int{}}
			days[key] = day
		}
		day.Total++
		day.ByAuthor[c.Author]++
	}

	timeline := make([]models.TimelineDay, 0, len(days))
	for _, day := range days {
		timeline = append(timeline, *day)
	}
	sort.Slice(timeline, func(i, j int) bool { return timeline[i].Date < timeline[j].Date })
	return timeline
}
