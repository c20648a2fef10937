package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrThreadNotFound  = errors.New("chat thread not found")
)

type ChatThread struct {
	ID uint `gorm:"primaryKey"`

	ContestID uint `gorm:"not null;uniqueIndex"`

	CreatedAt time.Time `gorm:"not null"`
}

func (ChatThread) TableName() string {
	return "contest_chats"
}

// Message stores its sender as three nullable columns, exactly one of
// which is set. The dao is the only layer that sees this shape; everything
// above works with the tagged domain.Sender.
type Message struct {
	ID uint `gorm:"primaryKey"`

	ChatID              uint  `gorm:"not null;index"`
	SenderStudentID     *uint `gorm:"index"`
	SenderMentorID      *uint `gorm:"index"`
	SenderCoordinatorID *uint `gorm:"index"`

	MessageText string `gorm:"not null"`

	SentAt time.Time `gorm:"not null;autoCreateTime;index"`
}

// MessageRow is a message annotated with the derived sender role and the
// resolved sender name.
type MessageRow struct {
	Message
	SenderRole string
	SenderName string
}

// GroupRow is one contest the sender has posted in.
type GroupRow struct {
	ContestID    uint
	ContestTitle string
	LastActivity time.Time
}

type ChatDAO struct {
	db *gorm.DB
}

func NewChatDAO(db *gorm.DB) *ChatDAO {
	return &ChatDAO{
		db: db,
	}
}

const messageRowSelect = `messages.*,
	CASE
		WHEN messages.sender_student_id IS NOT NULL THEN 'student'
		WHEN messages.sender_mentor_id IS NOT NULL THEN 'mentor'
		WHEN messages.sender_coordinator_id IS NOT NULL THEN 'coordinator'
	END AS sender_role,
	COALESCE(s.name, m.name, co.name) AS sender_name`

// senderColumns maps a role onto its sender column. Keeping this a fixed
// table means role input can never reach SQL as text.
var senderColumns = map[string]string{
	"student":     "sender_student_id",
	"mentor":      "sender_mentor_id",
	"coordinator": "sender_coordinator_id",
}

// GetOrCreateThread returns the contest's thread, creating it on first
// access. The unique index on contest_id keeps concurrent first accesses
// from producing two threads.
func (d *ChatDAO) GetOrCreateThread(ctx context.Context, contestID uint) (ChatThread, error) {
	var thread ChatThread

	err := d.db.WithContext(ctx).First(&thread, "contest_id = ?", contestID).Error
	if err == nil {
		return thread, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ChatThread{}, err
	}

	thread = ChatThread{ContestID: contestID}
	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&thread)
	if result.Error != nil {
		return ChatThread{}, result.Error
	}
	if result.RowsAffected == 0 {
		// Lost the race; someone else just created it.
		if err = d.db.WithContext(ctx).First(&thread, "contest_id = ?", contestID).Error; err != nil {
			return ChatThread{}, err
		}
	}

	return thread, nil
}

func (d *ChatDAO) InsertMessage(ctx context.Context, message Message) (Message, error) {
	result := d.db.WithContext(ctx).Create(&message)
	if result.Error != nil {
		return Message{}, result.Error
	}

	return message, nil
}

// FindMessages returns up to limit messages newest-first, optionally only
// those older than the before message id.
func (d *ChatDAO) FindMessages(ctx context.Context, chatID uint, limit int, before uint) ([]MessageRow, error) {
	var rows []MessageRow

	query := d.db.WithContext(ctx).
		Table("messages").
		Select(messageRowSelect).
		Joins("LEFT JOIN students s ON messages.sender_student_id = s.id").
		Joins("LEFT JOIN mentors m ON messages.sender_mentor_id = m.id").
		Joins("LEFT JOIN coordinators co ON messages.sender_coordinator_id = co.id").
		Where("messages.chat_id = ?", chatID)

	if before > 0 {
		query = query.Where("messages.id < ?", before)
	}

	result := query.
		Order("messages.sent_at DESC").
		Order("messages.id DESC").
		Limit(limit).
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *ChatDAO) FindMessageByID(ctx context.Context, id uint) (Message, error) {
	var message Message

	result := d.db.WithContext(ctx).First(&message, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Message{}, ErrMessageNotFound
		}

		return Message{}, result.Error
	}

	return message, nil
}

func (d *ChatDAO) DeleteMessage(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Delete(&Message{}, id).Error
}

// FindGroupsBySender lists the contests in which the given identity has
// posted, most recently active first.
func (d *ChatDAO) FindGroupsBySender(ctx context.Context, role string, senderID uint) ([]GroupRow, error) {
	column, ok := senderColumns[role]
	if !ok {
		return nil, nil
	}

	var rows []GroupRow

	result := d.db.WithContext(ctx).
		Table("messages").
		Select(`cc.contest_id,
			c.title AS contest_title,
			MAX(messages.sent_at) AS last_activity`).
		Joins("JOIN contest_chats cc ON messages.chat_id = cc.id").
		Joins("JOIN contests c ON cc.contest_id = c.id").
		Where("messages."+column+" = ?", senderID).
		Group("cc.contest_id, c.title").
		Order("last_activity DESC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}
