// Package assignment ranks project members for a task by skill fit and
// current workload.
package assignment

import (
	"sort"

	"github.com/Kamar-Folarin/repo-insights/internal/models"
	"github.com/Kamar-Folarin/repo-insights/internal/skills"
)

// TaskPenalty is the number of points every task already assigned to a
// member takes off their score.
const TaskPenalty = 10

// Score returns max(0, confidence - TaskPenalty*currentTaskCount) for the
// required skill. A member without the skill has confidence 0.
func Score(candidate models.AssigneeCandidate, required models.SkillCategory) int {
	confidence := 0
	if s, ok := skills.Find(candidate.Skills, required); ok {
		confidence = s.Confidence
	}
	score := confidence - candidate.CurrentTaskCount*TaskPenalty
	if score < 0 {
		return 0
	}
	return score
}

// SuggestAssignees scores every candidate and returns them best first.
// Equal scores keep input order.
func SuggestAssignees(candidates []models.AssigneeCandidate, required models.SkillCategory) []models.AssigneeScore {
	scores := make([]models.AssigneeScore, 0, len(candidates))
	for _, c := range candidates {
		scores = append(scores, models.AssigneeScore{Login: c.Login, Score: Score(c, required)})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores
}
