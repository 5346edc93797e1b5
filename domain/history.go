package domain

import "sync"

// DefaultHistoryLimit is the number of public messages retained for replay.
const DefaultHistoryLimit = 50

// History is a bounded FIFO log of public broadcast messages. It holds only
// public chat lines: private messages and system notices never enter it.
// Appends and replays are atomic, so a reader never observes a
// partially-evicted state.
type History struct {
	mu      sync.Mutex
	limit   int
	entries []*Message
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Append adds a message to the tail, evicting from the head once the
// buffer exceeds its limit.
func (h *History) Append(m *Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, m)
	if len(h.entries) > h.limit {
		h.entries = h.entries[1:]
	}
}

// Replay returns the rendered texts in chronological order. Used once per
// newly joined session to prime its view before live messages arrive.
func (h *History) Replay() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	texts := make([]string, len(h.entries))
	for i, m := range h.entries {
		texts[i] = m.Text
	}
	return texts
}

// React attaches an emoji to the retained message with the given ID and
// reports whether such a message was present.
func (h *History) React(id MessageID, emoji string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, m := range h.entries {
		if m.ID == id {
			m.React(emoji)
			return true
		}
	}
	return false
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Snapshot copies the retained messages, reactions included, for read-only
// consumers such as the debug server.
func (h *History) Snapshot() []Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Message, len(h.entries))
	for i, m := range h.entries {
		out[i] = Message{
			ID:        m.ID,
			Text:      m.Text,
			CreatedAt: m.CreatedAt,
			Reactions: append([]string(nil), m.Reactions...),
		}
	}
	return out
}
