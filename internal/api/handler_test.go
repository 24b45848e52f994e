package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Kamar-Folarin/repo-insights/internal/errors"
	"github.com/Kamar-Folarin/repo-insights/internal/github"
	"github.com/Kamar-Folarin/repo-insights/internal/models"
	"github.com/Kamar-Folarin/repo-insights/internal/service"
)

// MockInsightsService is a mock implementation of InsightsService
type MockInsightsService struct {
	mock.Mock
}

func (m *MockInsightsService) Status(ctx context.Context, projectID string) (*service.ConnectionStatus, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ConnectionStatus), args.Error(1)
}

func (m *MockInsightsService) Link(ctx context.Context, projectID, repoURL, token string) (*models.RepoInfo, error) {
	args := m.Called(ctx, projectID, repoURL, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RepoInfo), args.Error(1)
}

func (m *MockInsightsService) Unlink(ctx context.Context, projectID string) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

func (m *MockInsightsService) RepoInfo(ctx context.Context, projectID string) (*models.RepoInfo, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RepoInfo), args.Error(1)
}

func (m *MockInsightsService) Commits(ctx context.Context, projectID string, filter github.CommitFilter) ([]models.Commit, error) {
	args := m.Called(ctx, projectID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Commit), args.Error(1)
}

func (m *MockInsightsService) CommitDetails(ctx context.Context, projectID string, shas []string) ([]models.Commit, error) {
	args := m.Called(ctx, projectID, shas)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Commit), args.Error(1)
}

func (m *MockInsightsService) Contributors(ctx context.Context, projectID string) ([]models.Contributor, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Contributor), args.Error(1)
}

func (m *MockInsightsService) ContributorsWithSkills(ctx context.Context, projectID string) ([]models.Contributor, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Contributor), args.Error(1)
}

func (m *MockInsightsService) PullRequests(ctx context.Context, projectID, state string) ([]models.PullRequest, error) {
	args := m.Called(ctx, projectID, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PullRequest), args.Error(1)
}

func (m *MockInsightsService) HeroMoments(ctx context.Context, projectID string) ([]models.HeroMoment, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.HeroMoment), args.Error(1)
}

func (m *MockInsightsService) FlowPeriods(ctx context.Context, projectID, contributor string) ([]models.FlowPeriod, error) {
	args := m.Called(ctx, projectID, contributor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FlowPeriod), args.Error(1)
}

func (m *MockInsightsService) DecisionPoints(ctx context.Context, projectID string) ([]models.DecisionPoint, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DecisionPoint), args.Error(1)
}

func (m *MockInsightsService) Retrospective(ctx context.Context, projectID string) (*models.RetroSummary, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RetroSummary), args.Error(1)
}

func (m *MockInsightsService) SuggestAssignees(ctx context.Context, projectID string, required models.SkillCategory, members []service.Member) ([]models.AssigneeScore, error) {
	args := m.Called(ctx, projectID, required, members)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AssigneeScore), args.Error(1)
}

func setupTestRouter(svc InsightsService, cacheTTL time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(bytes.NewBuffer(nil))
	return SetupRouter(NewHandler(svc, logger), cacheTTL)
}

func perform(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetStatus(t *testing.T) {
	svc := new(MockInsightsService)
	svc.On("Status", mock.Anything, "p1").Return(&service.ConnectionStatus{Connected: true, Owner: "octo", Repo: "hello"}, nil)
	router := setupTestRouter(svc, 0)

	w := perform(router, http.MethodGet, "/api/v1/projects/p1/github", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"connected":true,"owner":"octo","repo":"hello"}`, w.Body.String())
}

func TestAnalysisRoute_NotConnected(t *testing.T) {
	svc := new(MockInsightsService)
	svc.On("HeroMoments", mock.Anything, "p1").Return(nil, service.ErrNotConnected)
	router := setupTestRouter(svc, 0)

	w := perform(router, http.MethodGet, "/api/v1/projects/p1/github/heroes", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"connected":false}`, w.Body.String())
}

func TestLinkRepository(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(MockInsightsService)
		svc.On("Link", mock.Anything, "p1", "octo/hello", "tok").Return(&models.RepoInfo{Name: "hello", Owner: "octo"}, nil)
		router := setupTestRouter(svc, 0)

		w := perform(router, http.MethodPut, "/api/v1/projects/p1/github", LinkRequest{RepoURL: "octo/hello", Token: "tok"})

		assert.Equal(t, http.StatusOK, w.Code)
		var info models.RepoInfo
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
		assert.Equal(t, "hello", info.Name)
	})

	t.Run("upstream status is surfaced", func(t *testing.T) {
		svc := new(MockInsightsService)
		svc.On("Link", mock.Anything, "p1", "octo/missing", "").Return(nil, github.NewAPIError(404, "Not Found"))
		router := setupTestRouter(svc, 0)

		w := perform(router, http.MethodPut, "/api/v1/projects/p1/github", LinkRequest{RepoURL: "octo/missing"})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"GitHub API error: 404"}`, w.Body.String())
	})

	t.Run("invalid url", func(t *testing.T) {
		svc := new(MockInsightsService)
		svc.On("Link", mock.Anything, "p1", "nope", "").
			Return(nil, apperrors.NewValidationError("invalid repository URL", nil))
		router := setupTestRouter(svc, 0)

		w := perform(router, http.MethodPut, "/api/v1/projects/p1/github", LinkRequest{RepoURL: "nope"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"invalid repository URL"}`, w.Body.String())
	})

	t.Run("missing body", func(t *testing.T) {
		svc := new(MockInsightsService)
		router := setupTestRouter(svc, 0)

		w := perform(router, http.MethodPut, "/api/v1/projects/p1/github", map[string]string{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Link", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUnlinkRepository(t *testing.T) {
	svc := new(MockInsightsService)
	svc.On("Unlink", mock.Anything, "p1").Return(nil)
	router := setupTestRouter(svc, 0)

	w := perform(router, http.MethodDelete, "/api/v1/projects/p1/github", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	svc.AssertExpectations(t)
}

func TestGetCommits(t *testing.T) {
	since := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

	t.Run("passes filters", func(t *testing.T) {
		svc := new(MockInsightsService)
		svc.On("Commits", mock.Anything, "p1", github.CommitFilter{Since: since, Author: "alice"}).
			Return([]models.Commit{{SHA: "abc", Author: "alice"}}, nil)
		router := setupTestRouter(svc, 0)

		w := perform(router, http.MethodGet, "/api/v1/projects/p1/github/commits?author=alice&since=2024-03-20T00:00:00Z", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"sha":"abc"`)
	})

	t.Run("invalid since", func(t *testing.T) {
		router := setupTestRouter(new(MockInsightsService), 0)
		w := perform(router, http.MethodGet, "/api/v1/projects/p1/github/commits?since=yesterday", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rate limited", func(t *testing.T) {
		svc := new(MockInsightsService)
		svc.On("Commits", mock.Anything, "p1", github.CommitFilter{}).Return(nil, github.NewAPIError(403, "API rate limit exceeded"))
		router := setupTestRouter(svc, 0)

		w := perform(router, http.MethodGet, "/api/v1/projects/p1/github/commits", nil)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})
}

func TestGetCommitDetails(t *testing.T) {
	svc := new(MockInsightsService)
	svc.On("CommitDetails", mock.Anything, "p1", []string{"a", "b", "c"}).Return([]models.Commit{{SHA: "a"}}, nil)
	router := setupTestRouter(svc, 0)

	w := perform(router, http.MethodGet, "/api/v1/projects/p1/github/commit-details?sha=a,b&sha=c", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(router, http.MethodGet, "/api/v1/projects/p1/github/commit-details", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetFlowPeriods_RequiresContributor(t *testing.T) {
	router := setupTestRouter(new(MockInsightsService), 0)

	w := perform(router, http.MethodGet, "/api/v1/projects/p1/github/flow", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuggestAssignees(t *testing.T) {
	members := []service.Member{{Login: "alice", CurrentTaskCount: 1}, {Login: "bob"}}

	t.Run("success", func(t *testing.T) {
		svc := new(MockInsightsService)
		svc.On("SuggestAssignees", mock.Anything, "p1", models.SkillBackend, members).
			Return([]models.AssigneeScore{{Login: "alice", Score: 80}, {Login: "bob", Score: 0}}, nil)
		router := setupTestRouter(svc, 0)

		w := perform(router, http.MethodPost, "/api/v1/projects/p1/github/assignees",
			AssigneeRequest{RequiredSkill: models.SkillBackend, Members: members})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"login":"alice","score":80},{"login":"bob","score":0}]`, w.Body.String())
	})

	t.Run("unknown skill", func(t *testing.T) {
		router := setupTestRouter(new(MockInsightsService), 0)

		w := perform(router, http.MethodPost, "/api/v1/projects/p1/github/assignees",
			AssigneeRequest{RequiredSkill: "cooking", Members: members})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.True(t, strings.Contains(w.Body.String(), "cooking"))
	})
}

func TestAnalysisRoutes_AreCached(t *testing.T) {
	svc := new(MockInsightsService)
	svc.On("DecisionPoints", mock.Anything, "p1").Return([]models.DecisionPoint{{PRNumber: 1}}, nil).Once()
	router := setupTestRouter(svc, time.Minute)

	first := perform(router, http.MethodGet, "/api/v1/projects/p1/github/decisions", nil)
	second := perform(router, http.MethodGet, "/api/v1/projects/p1/github/decisions", nil)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	svc.AssertNumberOfCalls(t, "DecisionPoints", 1)
}

func TestListSkills(t *testing.T) {
	router := setupTestRouter(new(MockInsightsService), 0)

	w := perform(router, http.MethodGet, "/api/v1/skills", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var categories []SkillCategoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	require.Len(t, categories, len(models.SkillCategories))
	assert.Equal(t, SkillCategoryResponse{Name: models.SkillFrontend, Label: "Frontend"}, categories[0])
	assert.Equal(t, SkillCategoryResponse{Name: models.SkillML, Label: "ML / AI"}, categories[4])
}

func TestAnalysisRoutes_DisconnectedNotCached(t *testing.T) {
	svc := new(MockInsightsService)
	svc.On("HeroMoments", mock.Anything, "p1").Return(nil, service.ErrNotConnected).Once()
	svc.On("HeroMoments", mock.Anything, "p1").Return([]models.HeroMoment{{CommitSHA: "abc"}}, nil).Once()
	router := setupTestRouter(svc, time.Minute)

	w := perform(router, http.MethodGet, "/api/v1/projects/p1/github/heroes", nil)
	assert.JSONEq(t, `{"connected":false}`, w.Body.String())

	w = perform(router, http.MethodGet, "/api/v1/projects/p1/github/heroes", nil)
	assert.Contains(t, w.Body.String(), `"commitSha":"abc"`)
	svc.AssertNumberOfCalls(t, "HeroMoments", 2)
}
