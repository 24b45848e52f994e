// Package insights derives hero moments, flow periods, decision points and
// retrospective summaries from normalized commit and pull request data.
// Every function is pure.
package insights

import (
	"regexp"
	"strings"
	"time"

	"github.com/Kamar-Folarin/repo-insights/internal/models"
)

const (
	ReasonLateNight   = "Late night commit"
	ReasonMassive     = "Massive change"
	ReasonCriticalFix = "Critical fix"
	ReasonClutch      = "Clutch player"

	massiveLines = 500
	clutchLines  = 200
	// Late night is [lateNightStart, lateNightEnd) in local hours.
	lateNightStart = 0
	lateNightEnd   = 5
)

var criticalPattern = regexp.MustCompile(`\b(fix|hotfix|critical|urgent|emergency)\b`)

type heroFacts struct {
	hour    int
	lines   int
	message string
}

func (f heroFacts) lateNight() bool {
	return f.hour >= lateNightStart && f.hour < lateNightEnd
}

type heroRule struct {
	label string
	match func(heroFacts) bool
}

// heroRules are checked in order; the first match names the moment.
var heroRules = []heroRule{
	{ReasonLateNight, func(f heroFacts) bool { return f.lateNight() }},
	{ReasonMassive, func(f heroFacts) bool { return f.lines > massiveLines }},
	{ReasonCriticalFix, func(f heroFacts) bool { return criticalPattern.MatchString(f.message) }},
	{ReasonClutch, func(f heroFacts) bool { return f.lines > clutchLines && f.lateNight() }},
}

// Reasons returns the labels of every rule the commit matches, in rule
// order. The hour of day is read in loc; nil means time.Local.
func Reasons(c models.Commit, loc *time.Location) []string {
	if loc == nil {
		loc = time.Local
	}
	facts := heroFacts{
		hour:    c.Date.In(loc).Hour(),
		lines:   c.LinesChanged(),
		message: strings.ToLower(c.Message),
	}

	var reasons []string
	for _, rule := range heroRules {
		if rule.match(facts) {
			reasons = append(reasons, rule.label)
		}
	}
	return reasons
}

// DetectHeroMoments emits at most one moment per commit, labelled with the
// first matching rule. Commits matching no rule are skipped.
func DetectHeroMoments(commits []models.Commit, loc *time.Location) []models.HeroMoment {
	heroes := make([]models.HeroMoment, 0)
	for _, c := range commits {
		reasons := Reasons(c, loc)
		if len(reasons) == 0 {
			continue
		}
		heroes = append(heroes, models.HeroMoment{
			CommitSHA:    c.SHA,
			Author:       c.Author,
			AuthorAvatar: c.AuthorAvatar,
			Message:      c.Message,
			Reason:       reasons[0],
			Timestamp:    c.Date,
			LinesChanged: c.LinesChanged(),
		})
	}
	return heroes
}
