package insights

import (
	"fmt"

	"github.com/Kamar-Folarin/repo-insights/internal/models"
)

// DetectDecisionPoints turns every merged pull request into a decision
// point, keeping input order.
func DetectDecisionPoints(prs []models.PullRequest) []models.DecisionPoint {
	points := make([]models.DecisionPoint, 0)
	for _, pr := range prs {
		if pr.MergedAt == nil {
			continue
		}
		points = append(points, models.DecisionPoint{
			PRNumber:   pr.Number,
			Title:      pr.Title,
			MergedDate: *pr.MergedAt,
			Author:     pr.Author,
			Impact:     fmt.Sprintf("PR #%d merged", pr.Number),
		})
	}
	return points
}
