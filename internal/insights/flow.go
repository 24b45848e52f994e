package insights

import (
	"sort"
	"time"

	"github.com/Kamar-Folarin/repo-insights/internal/models"
)

const (
	// FlowGap is the pause that ends a run; a shorter gap continues it.
	FlowGap = 3 * time.Hour
	// MinFlowCommits is the smallest run reported as a flow period.
	MinFlowCommits = 3
)

// DetectFlowPeriods finds bursts of at least MinFlowCommits commits by
// contributor where each commit follows the previous one by less than
// FlowGap.
func DetectFlowPeriods(commits []models.Commit, contributor string) []models.FlowPeriod {
	dates := make([]time.Time, 0)
	for _, c := range commits {
		if c.Author == contributor {
			dates = append(dates, c.Date)
		}
	}
	sort.SliceStable(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	periods := make([]models.FlowPeriod, 0)
	emit := func(start, end time.Time, count int) {
		if count >= MinFlowCommits {
			periods = append(periods, models.FlowPeriod{
				Contributor: contributor,
				Start:       start,
				End:         end,
				CommitCount: count,
			})
		}
	}

	var start, last time.Time
	count := 0
	for _, d := range dates {
		if count > 0 && d.Sub(last) < FlowGap {
			count++
			last = d
			continue
		}
		emit(start, last, count)
		start, last, count = d, d, 1
	}
	emit(start, last, count)

	return periods
}
