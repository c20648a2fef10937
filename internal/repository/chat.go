package repository

import (
	"context"
	"fmt"

	"github.com/kiotdev/contesthub-api/internal/domain"
	"github.com/kiotdev/contesthub-api/internal/repository/dao"
)

var (
	ErrMessageNotFound = dao.ErrMessageNotFound
	ErrThreadNotFound  = dao.ErrThreadNotFound
)

type ChatDAO interface {
	GetOrCreateThread(ctx context.Context, contestID uint) (dao.ChatThread, error)
	InsertMessage(ctx context.Context, message dao.Message) (dao.Message, error)
	FindMessages(ctx context.Context, chatID uint, limit int, before uint) ([]dao.MessageRow, error)
	FindMessageByID(ctx context.Context, id uint) (dao.Message, error)
	DeleteMessage(ctx context.Context, id uint) error
	FindGroupsBySender(ctx context.Context, role string, senderID uint) ([]dao.GroupRow, error)
}

type ChatRepository struct {
	dao ChatDAO
}

func NewChatRepository(dao ChatDAO) *ChatRepository {
	return &ChatRepository{
		dao: dao,
	}
}

func (r *ChatRepository) GetOrCreateThread(ctx context.Context, contestID uint) (domain.ChatThread, error) {
	thread, err := r.dao.GetOrCreateThread(ctx, contestID)
	if err != nil {
		return domain.ChatThread{}, fmt.Errorf("r.dao.GetOrCreateThread -> %w", err)
	}

	return domain.ChatThread{
		ID:        thread.ID,
		ContestID: thread.ContestID,
		CreatedAt: thread.CreatedAt,
	}, nil
}

func (r *ChatRepository) CreateMessage(ctx context.Context, threadID uint, sender domain.Sender, text string) (domain.Message, error) {
	message := dao.Message{
		ChatID:      threadID,
		MessageText: text,
	}

	switch sender.Role {
	case domain.RoleStudent:
		message.SenderStudentID = &sender.ID
	case domain.RoleMentor:
		message.SenderMentorID = &sender.ID
	case domain.RoleCoordinator:
		message.SenderCoordinatorID = &sender.ID
	default:
		return domain.Message{}, fmt.Errorf("unknown sender role %q", sender.Role)
	}

	created, err := r.dao.InsertMessage(ctx, message)
	if err != nil {
		return domain.Message{}, fmt.Errorf("r.dao.InsertMessage -> %w", err)
	}

	return domain.Message{
		ID:       created.ID,
		ThreadID: created.ChatID,
		Sender:   sender,
		Text:     created.MessageText,
		SentAt:   created.SentAt,
	}, nil
}

// FindMessages returns a page of thread history, oldest message first.
func (r *ChatRepository) FindMessages(ctx context.Context, threadID uint, limit int, before uint) ([]domain.Message, error) {
	rows, err := r.dao.FindMessages(ctx, threadID, limit, before)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindMessages -> %w", err)
	}

	// The dao pages newest-first; flip to chronological order.
	messages := make([]domain.Message, len(rows))
	for i, row := range rows {
		messages[len(rows)-1-i] = r.rowToDomain(row)
	}

	return messages, nil
}

func (r *ChatRepository) FindMessageByID(ctx context.Context, id uint) (domain.Message, error) {
	found, err := r.dao.FindMessageByID(ctx, id)
	if err != nil {
		return domain.Message{}, fmt.Errorf("r.dao.FindMessageByID -> %w", err)
	}

	message := domain.Message{
		ID:       found.ID,
		ThreadID: found.ChatID,
		Text:     found.MessageText,
		SentAt:   found.SentAt,
	}
	message.Sender = senderFromColumns(found)

	return message, nil
}

func (r *ChatRepository) DeleteMessage(ctx context.Context, id uint) error {
	if err := r.dao.DeleteMessage(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteMessage -> %w", err)
	}

	return nil
}

func (r *ChatRepository) FindGroupsBySender(ctx context.Context, sender domain.Sender) ([]domain.ChatGroup, error) {
	rows, err := r.dao.FindGroupsBySender(ctx, string(sender.Role), sender.ID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindGroupsBySender -> %w", err)
	}

	groups := make([]domain.ChatGroup, len(rows))
	for i, row := range rows {
		groups[i] = domain.ChatGroup{
			ContestID:    row.ContestID,
			ContestTitle: row.ContestTitle,
			LastActivity: row.LastActivity,
		}
	}

	return groups, nil
}

func (r *ChatRepository) rowToDomain(row dao.MessageRow) domain.Message {
	return domain.Message{
		ID:         row.ID,
		ThreadID:   row.ChatID,
		Sender:     senderFromColumns(row.Message),
		SenderName: row.SenderName,
		Text:       row.MessageText,
		SentAt:     row.SentAt,
	}
}

// senderFromColumns folds the three nullable columns back into the tagged
// form. Exactly one column is set for any row the dao has written.
func senderFromColumns(m dao.Message) domain.Sender {
	switch {
	case m.SenderStudentID != nil:
		return domain.Sender{Role: domain.RoleStudent, ID: *m.SenderStudentID}
	case m.SenderMentorID != nil:
		return domain.Sender{Role: domain.RoleMentor, ID: *m.SenderMentorID}
	case m.SenderCoordinatorID != nil:
		return domain.Sender{Role: domain.RoleCoordinator, ID: *m.SenderCoordinatorID}
	}

	return domain.Sender{}
}
