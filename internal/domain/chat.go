package domain

import "time"

// Sender identifies the author of a message as exactly one of the three
// role identities. Storage maps this onto per-role columns; domain code
// only ever sees the tagged form.
type Sender struct {
	Role Role `json:"sender_role"`
	ID   uint `json:"sender_id"`
}

type ChatThread struct {
	ID        uint      `json:"chat_id"`
	ContestID uint      `json:"contest_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Message struct {
	ID         uint      `json:"message_id"`
	ThreadID   uint      `json:"chat_id"`
	Sender     Sender    `json:"sender"`
	SenderName string    `json:"sender_name"`
	Text       string    `json:"message_text"`
	SentAt     time.Time `json:"sent_at"`
}

// ChatPage is one poll's worth of thread history, oldest message first.
type ChatPage struct {
	ThreadID  uint      `json:"chat_id"`
	ContestID uint      `json:"contest_id"`
	Messages  []Message `json:"messages"`
}

// ChatGroup is a contest the user has posted in, for the "my chats" list.
type ChatGroup struct {
	ContestID    uint      `json:"contest_id"`
	ContestTitle string    `json:"title"`
	LastActivity time.Time `json:"last_activity"`
}
