// Package domain contains core concepts of the chat system.
// This file defines Message and related rules.
package domain

import "time"

// MessageID identifies a chat message within one server process.
// IDs are assigned from a monotonically increasing counter and never reused.
type MessageID int64

// SystemMessageID is the sentinel ID carried by typing indicators and
// system notices. It sits outside the positive ID space: such messages are
// never stored in history and take no reactions.
const SystemMessageID MessageID = 0

// Message is a broadcast or private chat line. The text and timestamp are
// immutable once rendered; reactions are appended, never removed.
type Message struct {
	ID        MessageID
	Text      string
	CreatedAt time.Time
	Reactions []string
}

// React appends an emoji annotation to the message.
func (m *Message) React(emoji string) {
	m.Reactions = append(m.Reactions, emoji)
}
