package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kiotdev/contesthub-api/internal/domain"
)

type MockContestRepository struct {
	mock.Mock
}

func (m *MockContestRepository) Create(ctx context.Context, contest domain.Contest) (domain.Contest, error) {
	args := m.Called(ctx, contest)

	return args.Get(0).(domain.Contest), args.Error(1)
}

func (m *MockContestRepository) FindByID(ctx context.Context, id uint) (domain.Contest, error) {
	args := m.Called(ctx, id)

	return args.Get(0).(domain.Contest), args.Error(1)
}

func (m *MockContestRepository) FindDetailByID(ctx context.Context, id uint) (domain.Contest, error) {
	args := m.Called(ctx, id)

	return args.Get(0).(domain.Contest), args.Error(1)
}

func (m *MockContestRepository) FindAll(ctx context.Context) ([]domain.Contest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Contest), args.Error(1)
}

func (m *MockContestRepository) Update(ctx context.Context, id uint, update domain.ContestUpdate) error {
	args := m.Called(ctx, id, update)

	return args.Error(0)
}

func (m *MockContestRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

type MockTeamLister struct {
	mock.Mock
}

func (m *MockTeamLister) FindByContest(ctx context.Context, contestID uint) ([]domain.Team, error) {
	args := m.Called(ctx, contestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Team), args.Error(1)
}

func TestContestService_CreateContest(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("creates with ordered deadlines", func(t *testing.T) {
		contest := domain.Contest{
			Title:                "Hackathon",
			RegistrationDeadline: now.Add(24 * time.Hour),
			SubmissionDeadline:   now.Add(48 * time.Hour),
			MaxTeamSize:          4,
			CreatedBy:            3,
		}

		repo := new(MockContestRepository)
		repo.On("Create", ctx, contest).Return(contest, nil)

		svc := NewContestService(repo, new(MockTeamLister))
		_, err := svc.CreateContest(ctx, contest)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("registration deadline after submission deadline is rejected", func(t *testing.T) {
		svc := NewContestService(new(MockContestRepository), new(MockTeamLister))
		_, err := svc.CreateContest(ctx, domain.Contest{
			Title:                "Backwards",
			RegistrationDeadline: now.Add(48 * time.Hour),
			SubmissionDeadline:   now.Add(24 * time.Hour),
		})

		assert.ErrorIs(t, err, ErrInvalidDeadlines)
	})

	t.Run("equal deadlines are rejected", func(t *testing.T) {
		deadline := now.Add(24 * time.Hour)
		svc := NewContestService(new(MockContestRepository), new(MockTeamLister))
		_, err := svc.CreateContest(ctx, domain.Contest{
			Title:                "Same day",
			RegistrationDeadline: deadline,
			SubmissionDeadline:   deadline,
		})

		assert.ErrorIs(t, err, ErrInvalidDeadlines)
	})

	t.Run("max team size floors at one", func(t *testing.T) {
		repo := new(MockContestRepository)
		repo.On("Create", ctx, mock.MatchedBy(func(c domain.Contest) bool {
			return c.MaxTeamSize == 1
		})).Return(domain.Contest{ID: 1, MaxTeamSize: 1}, nil)

		svc := NewContestService(repo, new(MockTeamLister))
		_, err := svc.CreateContest(ctx, domain.Contest{
			Title:                "Solo",
			RegistrationDeadline: now.Add(24 * time.Hour),
			SubmissionDeadline:   now.Add(48 * time.Hour),
			MaxTeamSize:          0,
		})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestContestService_GetContest(t *testing.T) {
	ctx := context.Background()

	t.Run("team-based detail includes teams", func(t *testing.T) {
		repo := new(MockContestRepository)
		repo.On("FindDetailByID", ctx, uint(10)).
			Return(domain.Contest{ID: 10, IsTeamBased: true}, nil)

		teams := new(MockTeamLister)
		teams.On("FindByContest", ctx, uint(10)).
			Return([]domain.Team{{ID: 7, Name: "Gophers"}}, nil)

		svc := NewContestService(repo, teams)
		contest, err := svc.GetContest(ctx, 10)

		require.NoError(t, err)
		require.Len(t, contest.Teams, 1)
		assert.Equal(t, "Gophers", contest.Teams[0].Name)
	})

	t.Run("individual detail skips the team lookup", func(t *testing.T) {
		repo := new(MockContestRepository)
		repo.On("FindDetailByID", ctx, uint(11)).
			Return(domain.Contest{ID: 11, IsTeamBased: false}, nil)

		teams := new(MockTeamLister)
		svc := NewContestService(repo, teams)
		contest, err := svc.GetContest(ctx, 11)

		require.NoError(t, err)
		assert.Empty(t, contest.Teams)
		teams.AssertNotCalled(t, "FindByContest", ctx, uint(11))
	})
}

func TestContestService_UpdateContest(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	stored := domain.Contest{
		ID:                   10,
		CreatedBy:            3,
		RegistrationDeadline: now.Add(24 * time.Hour),
		SubmissionDeadline:   now.Add(48 * time.Hour),
	}

	t.Run("owner updates a field", func(t *testing.T) {
		repo := new(MockContestRepository)
		repo.On("FindByID", ctx, uint(10)).Return(stored, nil)

		title := "Renamed"
		update := domain.ContestUpdate{Title: &title}
		repo.On("Update", ctx, uint(10), update).Return(nil)

		svc := NewContestService(repo, new(MockTeamLister))
		err := svc.UpdateContest(ctx, 10, 3, update)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		repo := new(MockContestRepository)
		repo.On("FindByID", ctx, uint(10)).Return(stored, nil)

		svc := NewContestService(repo, new(MockTeamLister))
		err := svc.UpdateContest(ctx, 10, 99, domain.ContestUpdate{})

		assert.ErrorIs(t, err, ErrNotContestOwner)
	})

	t.Run("moving the registration deadline past submission is rejected", func(t *testing.T) {
		repo := new(MockContestRepository)
		repo.On("FindByID", ctx, uint(10)).Return(stored, nil)

		late := now.Add(72 * time.Hour)
		svc := NewContestService(repo, new(MockTeamLister))
		err := svc.UpdateContest(ctx, 10, 3, domain.ContestUpdate{RegistrationDeadline: &late})

		assert.ErrorIs(t, err, ErrInvalidDeadlines)
	})

	t.Run("moving both deadlines together is allowed", func(t *testing.T) {
		repo := new(MockContestRepository)
		repo.On("FindByID", ctx, uint(10)).Return(stored, nil)

		reg := now.Add(72 * time.Hour)
		sub := now.Add(96 * time.Hour)
		update := domain.ContestUpdate{RegistrationDeadline: &reg, SubmissionDeadline: &sub}
		repo.On("Update", ctx, uint(10), update).Return(nil)

		svc := NewContestService(repo, new(MockTeamLister))
		err := svc.UpdateContest(ctx, 10, 3, update)

		require.NoError(t, err)
	})
}

func TestContestService_DeleteContest(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes", func(t *testing.T) {
		repo := new(MockContestRepository)
		repo.On("FindByID", ctx, uint(10)).Return(domain.Contest{ID: 10, CreatedBy: 3}, nil)
		repo.On("Delete", ctx, uint(10)).Return(nil)

		svc := NewContestService(repo, new(MockTeamLister))
		err := svc.DeleteContest(ctx, 10, 3)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		repo := new(MockContestRepository)
		repo.On("FindByID", ctx, uint(10)).Return(domain.Contest{ID: 10, CreatedBy: 3}, nil)

		svc := NewContestService(repo, new(MockTeamLister))
		err := svc.DeleteContest(ctx, 10, 4)

		assert.ErrorIs(t, err, ErrNotContestOwner)
		repo.AssertNotCalled(t, "Delete", ctx, uint(10))
	})
}
