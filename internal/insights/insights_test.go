package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kamar-Folarin/repo-insights/internal/models"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, 3, 15, hour, minute, 0, 0, time.UTC)
}

func TestDetectHeroMoments(t *testing.T) {
	tests := []struct {
		name       string
		commit     models.Commit
		wantReason string
		wantLines  int
	}{
		{
			name:       "massive change in the afternoon",
			commit:     models.Commit{SHA: "a", Date: at(14, 0), Additions: 600},
			wantReason: ReasonMassive,
			wantLines:  600,
		},
		{
			name:       "critical fix message",
			commit:     models.Commit{SHA: "b", Date: at(10, 0), Message: "Critical hotfix for payments", Additions: 10, Deletions: 5},
			wantReason: ReasonCriticalFix,
			wantLines:  15,
		},
		{
			name:       "late night wins over clutch and massive",
			commit:     models.Commit{SHA: "c", Date: at(2, 30), Additions: 400, Deletions: 200},
			wantReason: ReasonLateNight,
			wantLines:  600,
		},
		{
			name:       "hour five is no longer late",
			commit:     models.Commit{SHA: "d", Date: at(5, 0), Message: "urgent: patch", Additions: 1},
			wantReason: ReasonCriticalFix,
			wantLines:  1,
		},
		{
			name:       "fix inside a word does not count",
			commit:     models.Commit{SHA: "e", Date: at(9, 0), Message: "prefix handling", Additions: 600},
			wantReason: ReasonMassive,
			wantLines:  600,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectHeroMoments([]models.Commit{tt.commit}, time.UTC)
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantReason, got[0].Reason)
			assert.Equal(t, tt.wantLines, got[0].LinesChanged)
			assert.Equal(t, tt.commit.SHA, got[0].CommitSHA)
			assert.Equal(t, tt.commit.Date, got[0].Timestamp)
		})
	}
}

func TestDetectHeroMoments_NoMatch(t *testing.T) {
	commits := []models.Commit{
		{SHA: "quiet", Date: at(11, 0), Message: "Refactor header", Additions: 20},
		{SHA: "boundary", Date: at(12, 0), Message: "Tweak spacing", Additions: 500},
	}
	assert.Empty(t, DetectHeroMoments(commits, time.UTC))
}

func TestDetectHeroMoments_OnePerCommit(t *testing.T) {
	commits := []models.Commit{
		{SHA: "1", Date: at(1, 0), Message: "emergency fix", Additions: 900},
		{SHA: "2", Date: at(13, 0), Message: "fix typo"},
		{SHA: "3", Date: at(13, 0), Message: "docs"},
	}

	got := DetectHeroMoments(commits, time.UTC)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].CommitSHA)
	assert.Equal(t, "2", got[1].CommitSHA)
	assert.Equal(t, got, DetectHeroMoments(commits, time.UTC))
}

func TestDetectHeroMoments_UsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	commit := models.Commit{SHA: "tz", Date: at(17, 0)}

	assert.Empty(t, DetectHeroMoments([]models.Commit{commit}, time.UTC))

	got := DetectHeroMoments([]models.Commit{commit}, tokyo)
	require.Len(t, got, 1)
	assert.Equal(t, ReasonLateNight, got[0].Reason)
}

func TestReasons(t *testing.T) {
	commit := models.Commit{Date: at(3, 0), Message: "HOTFIX login", Additions: 300}
	assert.Equal(t, []string{ReasonLateNight, ReasonCriticalFix, ReasonClutch}, Reasons(commit, time.UTC))
}

func TestDetectFlowPeriods(t *testing.T) {
	commits := []models.Commit{
		{SHA: "5", Author: "alice", Date: at(17, 0)},
		{SHA: "1", Author: "alice", Date: at(10, 0)},
		{SHA: "3", Author: "alice", Date: at(12, 30)},
		{SHA: "b", Author: "bob", Date: at(11, 30)},
		{SHA: "2", Author: "alice", Date: at(11, 0)},
		{SHA: "4", Author: "alice", Date: at(16, 0)},
	}

	got := DetectFlowPeriods(commits, "alice")
	require.Len(t, got, 1)
	assert.Equal(t, models.FlowPeriod{
		Contributor: "alice",
		Start:       at(10, 0),
		End:         at(12, 30),
		CommitCount: 3,
	}, got[0])

	assert.Equal(t, got, DetectFlowPeriods(commits, "alice"))
}

func TestDetectFlowPeriods_GapBoundary(t *testing.T) {
	t.Run("exactly three hours breaks the run", func(t *testing.T) {
		commits := []models.Commit{
			{Author: "alice", Date: at(9, 0)},
			{Author: "alice", Date: at(12, 0)},
			{Author: "alice", Date: at(15, 0)},
		}
		assert.Empty(t, DetectFlowPeriods(commits, "alice"))
	})

	t.Run("just under three hours continues", func(t *testing.T) {
		commits := []models.Commit{
			{Author: "alice", Date: at(9, 0)},
			{Author: "alice", Date: at(11, 59)},
			{Author: "alice", Date: at(14, 58)},
		}
		got := DetectFlowPeriods(commits, "alice")
		require.Len(t, got, 1)
		assert.Equal(t, 3, got[0].CommitCount)
	})

	t.Run("two separate runs", func(t *testing.T) {
		commits := []models.Commit{
			{Author: "alice", Date: at(1, 0)},
			{Author: "alice", Date: at(1, 30)},
			{Author: "alice", Date: at(2, 0)},
			{Author: "alice", Date: at(8, 0)},
			{Author: "alice", Date: at(8, 10)},
			{Author: "alice", Date: at(8, 20)},
			{Author: "alice", Date: at(8, 30)},
		}
		got := DetectFlowPeriods(commits, "alice")
		require.Len(t, got, 2)
		assert.Equal(t, 3, got[0].CommitCount)
		assert.Equal(t, 4, got[1].CommitCount)
		assert.Equal(t, at(8, 0), got[1].Start)
		assert.Equal(t, at(8, 30), got[1].End)
	})

	t.Run("unknown contributor", func(t *testing.T) {
		assert.Empty(t, DetectFlowPeriods([]models.Commit{{Author: "bob", Date: at(1, 0)}}, "alice"))
	})
}

func TestDetectDecisionPoints(t *testing.T) {
	merged := at(9, 0)
	prs := []models.PullRequest{
		{Number: 7, Title: "Add auth", Author: "alice", State: "closed", MergedAt: &merged},
		{Number: 8, Title: "WIP", Author: "bob", State: "open"},
	}

	got := DetectDecisionPoints(prs)
	require.Len(t, got, 1)
	assert.Equal(t, models.DecisionPoint{
		PRNumber:   7,
		Title:      "Add auth",
		MergedDate: merged,
		Author:     "alice",
		Impact:     "PR #7 merged",
	}, got[0])

	assert.Empty(t, DetectDecisionPoints(nil))
}

func TestSummarize(t *testing.T) {
	commits := []models.Commit{
		{Author: "alice", Date: time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)},
		{Author: "bob", Date: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		{Author: "alice", Date: time.Date(2024, 3, 2, 23, 30, 0, 0, time.UTC)},
	}
	heroes := []models.HeroMoment{{CommitSHA: "x"}}
	decisions := []models.DecisionPoint{{PRNumber: 1}, {PRNumber: 2}}

	got := Summarize(commits, 4, heroes, decisions, time.UTC)

	assert.Equal(t, 3, got.TotalCommits)
	assert.Equal(t, 4, got.Contributors)
	assert.Equal(t, 1, got.HeroMoments)
	assert.Equal(t, 2, got.PRsMerged)
	require.Len(t, got.Timeline, 2)
	assert.Equal(t, models.TimelineDay{Date: "2024-03-01", Total: 1, ByAuthor: map[string]int{"bob": 1}}, got.Timeline[0])
	assert.Equal(t, models.TimelineDay{Date: "2024-03-02", Total: 2, ByAuthor: map[string]int{"alice": 2}}, got.Timeline[1])
}

func TestTimeline_Location(t *testing.T) {
	commits := []models.Commit{{Author: "alice", Date: time.Date(2024, 3, 2, 23, 30, 0, 0, time.UTC)}}
	plusTwo := time.FixedZone("UTC+2", 2*60*60)

	got := Timeline(commits, plusTwo)
	require.Len(t, got, 1)
	assert.Equal(t, "2024-03-03", got[0].Date)
}
