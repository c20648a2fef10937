package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kiotdev/contesthub-api/internal/domain"
	"github.com/kiotdev/contesthub-api/internal/repository"
)

type MockRegistrationRepository struct {
	mock.Mock
}

func (m *MockRegistrationRepository) Create(ctx context.Context, contestID, studentID uint) (domain.Registration, error) {
	args := m.Called(ctx, contestID, studentID)

	return args.Get(0).(domain.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) FindByID(ctx context.Context, id uint) (domain.Registration, error) {
	args := m.Called(ctx, id)

	return args.Get(0).(domain.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) FindByStudent(ctx context.Context, studentID uint) ([]domain.Registration, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) FindByContest(ctx context.Context, contestID uint) ([]domain.Registration, error) {
	args := m.Called(ctx, contestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

type MockContestFinder struct {
	mock.Mock
}

func (m *MockContestFinder) FindByID(ctx context.Context, id uint) (domain.Contest, error) {
	args := m.Called(ctx, id)

	return args.Get(0).(domain.Contest), args.Error(1)
}

func TestRegistrationService_Register(t *testing.T) {
	ctx := context.Background()

	individualContest := func(deadline time.Time) domain.Contest {
		return domain.Contest{
			ID:                   10,
			RegistrationDeadline: deadline,
			SubmissionDeadline:   deadline.Add(24 * time.Hour),
		}
	}

	t.Run("registers just before the deadline", func(t *testing.T) {
		contests := new(MockContestFinder)
		contests.On("FindByID", ctx, uint(10)).
			Return(individualContest(time.Now().Add(time.Minute)), nil)

		repo := new(MockRegistrationRepository)
		repo.On("Create", ctx, uint(10), uint(1)).
			Return(domain.Registration{ID: 5, ContestID: 10, StudentID: 1}, nil)

		svc := NewRegistrationService(repo, contests)
		registration, err := svc.Register(ctx, 10, 1)

		require.NoError(t, err)
		assert.Equal(t, uint(5), registration.ID)
	})

	t.Run("rejects just after the deadline", func(t *testing.T) {
		contests := new(MockContestFinder)
		contests.On("FindByID", ctx, uint(10)).
			Return(individualContest(time.Now().Add(-time.Second)), nil)

		svc := NewRegistrationService(new(MockRegistrationRepository), contests)
		_, err := svc.Register(ctx, 10, 1)

		assert.ErrorIs(t, err, ErrDeadlinePassed)
	})

	t.Run("rejects team-based contests", func(t *testing.T) {
		contest := individualContest(time.Now().Add(time.Hour))
		contest.IsTeamBased = true

		contests := new(MockContestFinder)
		contests.On("FindByID", ctx, uint(10)).Return(contest, nil)

		repo := new(MockRegistrationRepository)
		svc := NewRegistrationService(repo, contests)
		_, err := svc.Register(ctx, 10, 1)

		assert.ErrorIs(t, err, ErrTeamBasedContest)
		repo.AssertNotCalled(t, "Create", ctx, uint(10), uint(1))
	})

	t.Run("duplicate registration surfaces as a conflict", func(t *testing.T) {
		contests := new(MockContestFinder)
		contests.On("FindByID", ctx, uint(10)).
			Return(individualContest(time.Now().Add(time.Hour)), nil)

		repo := new(MockRegistrationRepository)
		repo.On("Create", ctx, uint(10), uint(1)).
			Return(domain.Registration{}, repository.ErrRegistrationExists)

		svc := NewRegistrationService(repo, contests)
		_, err := svc.Register(ctx, 10, 1)

		assert.ErrorIs(t, err, ErrAlreadyRegistered)
	})

	t.Run("unknown contest propagates not found", func(t *testing.T) {
		contests := new(MockContestFinder)
		contests.On("FindByID", ctx, uint(99)).
			Return(domain.Contest{}, repository.ErrContestNotFound)

		svc := NewRegistrationService(new(MockRegistrationRepository), contests)
		_, err := svc.Register(ctx, 99, 1)

		assert.ErrorIs(t, err, ErrContestNotFound)
	})
}

func TestRegistrationService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("owner cancels before the deadline", func(t *testing.T) {
		repo := new(MockRegistrationRepository)
		repo.On("FindByID", ctx, uint(5)).
			Return(domain.Registration{ID: 5, ContestID: 10, StudentID: 1}, nil)
		repo.On("Delete", ctx, uint(5)).Return(nil)

		contests := new(MockContestFinder)
		contests.On("FindByID", ctx, uint(10)).Return(domain.Contest{
			ID:                   10,
			RegistrationDeadline: time.Now().Add(time.Hour),
		}, nil)

		svc := NewRegistrationService(repo, contests)
		err := svc.Cancel(ctx, 5, 1)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("someone else's registration is forbidden", func(t *testing.T) {
		repo := new(MockRegistrationRepository)
		repo.On("FindByID", ctx, uint(5)).
			Return(domain.Registration{ID: 5, ContestID: 10, StudentID: 2}, nil)

		svc := NewRegistrationService(repo, new(MockContestFinder))
		err := svc.Cancel(ctx, 5, 1)

		assert.ErrorIs(t, err, ErrNotRegistrationOwner)
		repo.AssertNotCalled(t, "Delete", ctx, uint(5))
	})

	t.Run("cancel after the deadline is rejected", func(t *testing.T) {
		repo := new(MockRegistrationRepository)
		repo.On("FindByID", ctx, uint(5)).
			Return(domain.Registration{ID: 5, ContestID: 10, StudentID: 1}, nil)

		contests := new(MockContestFinder)
		contests.On("FindByID", ctx, uint(10)).Return(domain.Contest{
			ID:                   10,
			RegistrationDeadline: time.Now().Add(-time.Minute),
		}, nil)

		svc := NewRegistrationService(repo, contests)
		err := svc.Cancel(ctx, 5, 1)

		assert.ErrorIs(t, err, ErrDeadlinePassed)
		repo.AssertNotCalled(t, "Delete", ctx, uint(5))
	})
}
