package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kiotdev/contesthub-api/internal/api/middleware"
	"github.com/kiotdev/contesthub-api/internal/domain"
	"github.com/kiotdev/contesthub-api/internal/service"
)

type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) CreateTeam(ctx context.Context, contestID, leaderID uint, name string) (domain.Team, error) {
	args := m.Called(ctx, contestID, leaderID, name)

	return args.Get(0).(domain.Team), args.Error(1)
}

func (m *MockTeamService) JoinTeam(ctx context.Context, teamID, studentID uint) error {
	args := m.Called(ctx, teamID, studentID)

	return args.Error(0)
}

func (m *MockTeamService) LeaveTeam(ctx context.Context, teamID, studentID uint) error {
	args := m.Called(ctx, teamID, studentID)

	return args.Error(0)
}

func (m *MockTeamService) GetTeam(ctx context.Context, id uint) (domain.Team, error) {
	args := m.Called(ctx, id)

	return args.Get(0).(domain.Team), args.Error(1)
}

func (m *MockTeamService) ListForContest(ctx context.Context, contestID uint) ([]domain.Team, error) {
	args := m.Called(ctx, contestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Team), args.Error(1)
}

func (m *MockTeamService) ListMine(ctx context.Context, studentID uint) ([]domain.Team, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Team), args.Error(1)
}

func newTeamRouter(svc TeamService, identity domain.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewTeamHandler(svc)
	withIdentity := func(ctx *gin.Context) {
		ctx.Set(middleware.IdentityKey, identity)
	}

	router := gin.New()
	router.POST("/teams/:teamID/join", withIdentity, handler.HandleJoinTeam)
	router.DELETE("/teams/:teamID/leave", withIdentity, handler.HandleLeaveTeam)

	return router
}

func TestTeamHandler_HandleLeaveTeam(t *testing.T) {
	student := domain.Identity{ID: 3, Name: "Ada", Role: domain.RoleStudent}

	t.Run("non-member gets 404", func(t *testing.T) {
		svc := new(MockTeamService)
		svc.On("LeaveTeam", mock.Anything, uint(7), uint(3)).Return(service.ErrNotTeamMember)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/teams/7/leave", nil)
		newTeamRouter(svc, student).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "membership")
	})

	t.Run("leader gets 400", func(t *testing.T) {
		svc := new(MockTeamService)
		svc.On("LeaveTeam", mock.Anything, uint(7), uint(3)).Return(service.ErrLeaderCannotLeave)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/teams/7/leave", nil)
		newTeamRouter(svc, student).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("member leaves with 200", func(t *testing.T) {
		svc := new(MockTeamService)
		svc.On("LeaveTeam", mock.Anything, uint(7), uint(3)).Return(nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/teams/7/leave", nil)
		newTeamRouter(svc, student).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestTeamHandler_HandleJoinTeam(t *testing.T) {
	student := domain.Identity{ID: 5, Name: "Grace", Role: domain.RoleStudent}

	t.Run("missing team gets 404", func(t *testing.T) {
		svc := new(MockTeamService)
		svc.On("JoinTeam", mock.Anything, uint(9), uint(5)).Return(service.ErrTeamNotFound)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/teams/9/join", nil)
		newTeamRouter(svc, student).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing contest gets 404", func(t *testing.T) {
		svc := new(MockTeamService)
		svc.On("JoinTeam", mock.Anything, uint(9), uint(5)).Return(service.ErrContestNotFound)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/teams/9/join", nil)
		newTeamRouter(svc, student).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "contest")
	})

	t.Run("full team gets 400", func(t *testing.T) {
		svc := new(MockTeamService)
		svc.On("JoinTeam", mock.Anything, uint(9), uint(5)).Return(service.ErrTeamFull)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/teams/9/join", nil)
		newTeamRouter(svc, student).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
