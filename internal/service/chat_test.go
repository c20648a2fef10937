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

type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) GetOrCreateThread(ctx context.Context, contestID uint) (domain.ChatThread, error) {
	args := m.Called(ctx, contestID)

	return args.Get(0).(domain.ChatThread), args.Error(1)
}

func (m *MockChatRepository) CreateMessage(ctx context.Context, threadID uint, sender domain.Sender, text string) (domain.Message, error) {
	args := m.Called(ctx, threadID, sender, text)

	return args.Get(0).(domain.Message), args.Error(1)
}

func (m *MockChatRepository) FindMessages(ctx context.Context, threadID uint, limit int, before uint) ([]domain.Message, error) {
	args := m.Called(ctx, threadID, limit, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *MockChatRepository) FindMessageByID(ctx context.Context, id uint) (domain.Message, error) {
	args := m.Called(ctx, id)

	return args.Get(0).(domain.Message), args.Error(1)
}

func (m *MockChatRepository) DeleteMessage(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockChatRepository) FindGroupsBySender(ctx context.Context, sender domain.Sender) ([]domain.ChatGroup, error) {
	args := m.Called(ctx, sender)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.ChatGroup), args.Error(1)
}

func TestChatService_PostMessage(t *testing.T) {
	ctx := context.Background()
	student := domain.Sender{Role: domain.RoleStudent, ID: 1}

	t.Run("posts a trimmed message", func(t *testing.T) {
		contests := new(MockContestFinder)
		contests.On("FindByID", ctx, uint(10)).Return(domain.Contest{ID: 10}, nil)

		repo := new(MockChatRepository)
		repo.On("GetOrCreateThread", ctx, uint(10)).
			Return(domain.ChatThread{ID: 4, ContestID: 10}, nil)
		repo.On("CreateMessage", ctx, uint(4), student, "hello team").
			Return(domain.Message{ID: 100, ThreadID: 4, Sender: student, Text: "hello team"}, nil)

		svc := NewChatService(repo, contests)
		message, err := svc.PostMessage(ctx, 10, student, "  hello team  ")

		require.NoError(t, err)
		assert.Equal(t, uint(100), message.ID)
		repo.AssertExpectations(t)
	})

	t.Run("whitespace-only text is rejected", func(t *testing.T) {
		svc := NewChatService(new(MockChatRepository), new(MockContestFinder))
		_, err := svc.PostMessage(ctx, 10, student, "   \t\n ")

		assert.ErrorIs(t, err, ErrEmptyMessage)
	})

	t.Run("unknown contest propagates not found", func(t *testing.T) {
		contests := new(MockContestFinder)
		contests.On("FindByID", ctx, uint(99)).
			Return(domain.Contest{}, repository.ErrContestNotFound)

		svc := NewChatService(new(MockChatRepository), contests)
		_, err := svc.PostMessage(ctx, 99, student, "hi")

		assert.ErrorIs(t, err, ErrContestNotFound)
	})
}

func TestChatService_ListMessages(t *testing.T) {
	ctx := context.Background()

	t.Run("zero limit falls back to the default", func(t *testing.T) {
		contests := new(MockContestFinder)
		contests.On("FindByID", ctx, uint(10)).Return(domain.Contest{ID: 10}, nil)

		repo := new(MockChatRepository)
		repo.On("GetOrCreateThread", ctx, uint(10)).
			Return(domain.ChatThread{ID: 4, ContestID: 10}, nil)
		repo.On("FindMessages", ctx, uint(4), defaultMessageLimit, uint(0)).
			Return([]domain.Message{{ID: 1}, {ID: 2}}, nil)

		svc := NewChatService(repo, contests)
		page, err := svc.ListMessages(ctx, 10, 0, 0)

		require.NoError(t, err)
		assert.Equal(t, uint(4), page.ThreadID)
		assert.Len(t, page.Messages, 2)
		repo.AssertExpectations(t)
	})

	t.Run("oversized limit is clamped", func(t *testing.T) {
		contests := new(MockContestFinder)
		contests.On("FindByID", ctx, uint(10)).Return(domain.Contest{ID: 10}, nil)

		repo := new(MockChatRepository)
		repo.On("GetOrCreateThread", ctx, uint(10)).
			Return(domain.ChatThread{ID: 4, ContestID: 10}, nil)
		repo.On("FindMessages", ctx, uint(4), maxMessageLimit, uint(55)).
			Return([]domain.Message{}, nil)

		svc := NewChatService(repo, contests)
		_, err := svc.ListMessages(ctx, 10, 100000, 55)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestChatService_DeleteMessage(t *testing.T) {
	ctx := context.Background()
	student := domain.Sender{Role: domain.RoleStudent, ID: 1}

	t.Run("author deletes their message", func(t *testing.T) {
		repo := new(MockChatRepository)
		repo.On("FindMessageByID", ctx, uint(100)).
			Return(domain.Message{ID: 100, Sender: student}, nil)
		repo.On("DeleteMessage", ctx, uint(100)).Return(nil)

		svc := NewChatService(repo, new(MockContestFinder))
		err := svc.DeleteMessage(ctx, 100, student)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("same id under a different role is not the owner", func(t *testing.T) {
		// Mentor 1 and student 1 are different people; the role is part of
		// the sender identity.
		repo := new(MockChatRepository)
		repo.On("FindMessageByID", ctx, uint(100)).
			Return(domain.Message{ID: 100, Sender: student}, nil)

		svc := NewChatService(repo, new(MockContestFinder))
		err := svc.DeleteMessage(ctx, 100, domain.Sender{Role: domain.RoleMentor, ID: 1})

		assert.ErrorIs(t, err, ErrNotMessageOwner)
		repo.AssertNotCalled(t, "DeleteMessage", ctx, uint(100))
	})

	t.Run("missing message propagates not found", func(t *testing.T) {
		repo := new(MockChatRepository)
		repo.On("FindMessageByID", ctx, uint(404)).
			Return(domain.Message{}, repository.ErrMessageNotFound)

		svc := NewChatService(repo, new(MockContestFinder))
		err := svc.DeleteMessage(ctx, 404, student)

		assert.ErrorIs(t, err, ErrMessageNotFound)
	})
}

func TestChatService_MyGroups(t *testing.T) {
	ctx := context.Background()
	mentor := domain.Sender{Role: domain.RoleMentor, ID: 9}

	repo := new(MockChatRepository)
	repo.On("FindGroupsBySender", ctx, mentor).Return([]domain.ChatGroup{
		{ContestID: 10, ContestTitle: "Hackathon", LastActivity: time.Now()},
		{ContestID: 11, ContestTitle: "Code Golf", LastActivity: time.Now().Add(-time.Hour)},
	}, nil)

	svc := NewChatService(repo, new(MockContestFinder))
	groups, err := svc.MyGroups(ctx, mentor)

	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Hackathon", groups[0].ContestTitle)
}
