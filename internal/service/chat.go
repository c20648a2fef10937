package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kiotdev/contesthub-api/internal/domain"
	"github.com/kiotdev/contesthub-api/internal/repository"
)

const (
	defaultMessageLimit = 50
	maxMessageLimit     = 200
)

var (
	ErrEmptyMessage    = errors.New("message text must not be empty")
	ErrMessageNotFound = repository.ErrMessageNotFound
	ErrNotMessageOwner = errors.New("only the author may delete a message")
)

type ChatRepository interface {
	GetOrCreateThread(ctx context.Context, contestID uint) (domain.ChatThread, error)
	CreateMessage(ctx context.Context, threadID uint, sender domain.Sender, text string) (domain.Message, error)
	FindMessages(ctx context.Context, threadID uint, limit int, before uint) ([]domain.Message, error)
	FindMessageByID(ctx context.Context, id uint) (domain.Message, error)
	DeleteMessage(ctx context.Context, id uint) error
	FindGroupsBySender(ctx context.Context, sender domain.Sender) ([]domain.ChatGroup, error)
}

type ChatContestRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Contest, error)
}

type ChatService struct {
	repo     ChatRepository
	contests ChatContestRepository
}

func NewChatService(repo ChatRepository, contests ChatContestRepository) *ChatService {
	return &ChatService{
		repo:     repo,
		contests: contests,
	}
}

// PostMessage appends to the contest's thread, creating the thread on
// first use. Whitespace-only text is rejected.
func (s *ChatService) PostMessage(ctx context.Context, contestID uint, sender domain.Sender, text string) (domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Message{}, ErrEmptyMessage
	}

	if _, err := s.contests.FindByID(ctx, contestID); err != nil {
		return domain.Message{}, fmt.Errorf("s.contests.FindByID -> %w", err)
	}

	thread, err := s.repo.GetOrCreateThread(ctx, contestID)
	if err != nil {
		return domain.Message{}, fmt.Errorf("s.repo.GetOrCreateThread -> %w", err)
	}

	message, err := s.repo.CreateMessage(ctx, thread.ID, sender, text)
	if err != nil {
		return domain.Message{}, fmt.Errorf("s.repo.CreateMessage -> %w", err)
	}

	return message, nil
}

// ListMessages returns one poll's worth of history, oldest first. A zero
// limit falls back to the default and before=0 means "from the newest".
func (s *ChatService) ListMessages(ctx context.Context, contestID uint, limit int, before uint) (domain.ChatPage, error) {
	if _, err := s.contests.FindByID(ctx, contestID); err != nil {
		return domain.ChatPage{}, fmt.Errorf("s.contests.FindByID -> %w", err)
	}

	thread, err := s.repo.GetOrCreateThread(ctx, contestID)
	if err != nil {
		return domain.ChatPage{}, fmt.Errorf("s.repo.GetOrCreateThread -> %w", err)
	}

	if limit <= 0 {
		limit = defaultMessageLimit
	}
	if limit > maxMessageLimit {
		limit = maxMessageLimit
	}

	messages, err := s.repo.FindMessages(ctx, thread.ID, limit, before)
	if err != nil {
		return domain.ChatPage{}, fmt.Errorf("s.repo.FindMessages -> %w", err)
	}

	return domain.ChatPage{
		ThreadID:  thread.ID,
		ContestID: contestID,
		Messages:  messages,
	}, nil
}

// DeleteMessage removes the sender's own message. Ownership means the
// stored sender matches on both role and id.
func (s *ChatService) DeleteMessage(ctx context.Context, messageID uint, sender domain.Sender) error {
	message, err := s.repo.FindMessageByID(ctx, messageID)
	if err != nil {
		return fmt.Errorf("s.repo.FindMessageByID -> %w", err)
	}
	if message.Sender != sender {
		return ErrNotMessageOwner
	}

	if err = s.repo.DeleteMessage(ctx, messageID); err != nil {
		return fmt.Errorf("s.repo.DeleteMessage -> %w", err)
	}

	return nil
}

// MyGroups lists the contests the user has posted in, most recently
// active first.
func (s *ChatService) MyGroups(ctx context.Context, sender domain.Sender) ([]domain.ChatGroup, error) {
	groups, err := s.repo.FindGroupsBySender(ctx, sender)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindGroupsBySender -> %w", err)
	}

	return groups, nil
}
