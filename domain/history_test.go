package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHistory_Append_EvictsOldestBeyondLimit(t *testing.T) {
	req := require.New(t)
	history := NewHistory(50)

	// When 51 public broadcasts are appended
	for i := 1; i <= 51; i++ {
		history.Append(&Message{
			ID:        MessageID(i),
			Text:      fmt.Sprintf("line %d", i),
			CreatedAt: time.Now(),
		})
	}

	// Then the buffer never exceeds 50 entries
	req.Equal(50, history.Len())

	// And the 1st is absent while the 2nd..51st are present in order
	replay := history.Replay()
	req.Len(replay, 50)
	req.Equal("line 2", replay[0])
	req.Equal("line 51", replay[49])
	for i, text := range replay {
		req.Equal(fmt.Sprintf("line %d", i+2), text)
	}
}

func TestHistory_React_AttachesToRetainedMessage(t *testing.T) {
	req := require.New(t)
	history := NewHistory(50)
	history.Append(&Message{ID: 7, Text: "reactable"})

	// When a reaction targets a retained ID
	req.True(history.React(7, "👍"))

	snapshot := history.Snapshot()
	req.Len(snapshot, 1)
	req.Equal([]string{"👍"}, snapshot[0].Reactions)

	// Reactions are appended, never replaced
	req.True(history.React(7, "🎉"))
	req.Equal([]string{"👍", "🎉"}, history.Snapshot()[0].Reactions)
}

func TestHistory_React_UnknownIDMutatesNothing(t *testing.T) {
	req := require.New(t)
	history := NewHistory(50)
	history.Append(&Message{ID: 1, Text: "only entry"})

	req.False(history.React(42, "👍"))
	req.Empty(history.Snapshot()[0].Reactions)
}

func TestHistory_Replay_IsASnapshot(t *testing.T) {
	req := require.New(t)
	history := NewHistory(2)
	history.Append(&Message{ID: 1, Text: "first"})

	replay := history.Replay()
	history.Append(&Message{ID: 2, Text: "second"})
	history.Append(&Message{ID: 3, Text: "third"})

	// The earlier snapshot is unaffected by later appends and evictions
	req.Equal([]string{"first"}, replay)
	req.Equal([]string{"second", "third"}, history.Replay())
}
