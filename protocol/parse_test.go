package protocol

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AJYORK88/ConnectSphere-Online/domain"
	apperrors "github.com/AJYORK88/ConnectSphere-Online/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		line string
		want domain.Command
	}{
		{
			name: "free text is a public message",
			line: "hello everyone",
			want: domain.PublicMessageCommand{From: "Alice", Text: "hello everyone"},
		},
		{
			name: "bare /pm without the space is public chat",
			line: "/pm",
			want: domain.PublicMessageCommand{From: "Alice", Text: "/pm"},
		},
		{
			name: "unknown slash command is public chat",
			line: "/shrug hello",
			want: domain.PublicMessageCommand{From: "Alice", Text: "/shrug hello"},
		},
		{
			name: "private message keeps the raw remainder",
			line: "/pm Bob hi there",
			want: domain.PrivateMessageCommand{From: "Alice", Remainder: "Bob hi there"},
		},
		{
			name: "private message with empty remainder still parses",
			line: "/pm   ",
			want: domain.PrivateMessageCommand{From: "Alice", Remainder: ""},
		},
		{
			name: "typing start",
			line: "/typing start",
			want: domain.PublicTypingCommand{From: "Alice", Status: domain.TypingStart},
		},
		{
			name: "typing stop ignores trailing tokens",
			line: "/typing stop now please",
			want: domain.PublicTypingCommand{From: "Alice", Status: domain.TypingStop},
		},
		{
			name: "pmtyping resolves user then status",
			line: "/pmtyping Bob start",
			want: domain.PrivateTypingCommand{From: "Alice", To: "Bob", Status: domain.TypingStart},
		},
		{
			name: "pmtyping keeps spaces inside the username",
			line: "/pmtyping Ann Smith stop",
			want: domain.PrivateTypingCommand{From: "Alice", To: "Ann Smith", Status: domain.TypingStop},
		},
		{
			name: "private reaction",
			line: "/reaction Bob 12 👍",
			want: domain.PrivateReactionCommand{From: "Alice", To: "Bob", MessageID: 12, Emoji: "👍"},
		},
		{
			name: "public reaction",
			line: "/reaction_public 7 🎉",
			want: domain.PublicReactionCommand{From: "Alice", MessageID: 7, Emoji: "🎉"},
		},
		{
			name: "public reaction is not swallowed by the private prefix",
			line: "/reaction_public 3 ❤️",
			want: domain.PublicReactionCommand{From: "Alice", MessageID: 3, Emoji: "❤️"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)

			cmd, err := Parse("Alice", tc.line)

			req.NoError(err)
			req.Equal(tc.want, cmd)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	lines := []string{
		"",
		"/typing ",
		"/typing fast",
		"/pmtyping Bob",
		"/pmtyping Bob typing",
		"/pmtyping  start",
		"/reaction Bob 12",
		"/reaction Bob twelve 👍",
		"/reaction_public 7",
		"/reaction_public seven 🎉",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			req := require.New(t)

			cmd, err := Parse("Alice", line)

			req.ErrorIs(err, apperrors.ErrMalformedCommand)
			req.Nil(cmd)
		})
	}
}

func TestRendering(t *testing.T) {
	req := require.New(t)
	at := time.Date(2024, 5, 17, 9, 30, 5, 0, time.UTC)

	req.Equal("NAMEACCEPTED Alice", NameAccepted("Alice"))
	req.Equal("USERLIST Alice,Bob", UserList([]domain.Username{"Alice", "Bob"}))
	req.Equal("TYPING Alice start", Typing("Alice", domain.TypingStart))
	req.Equal("PMTYPING Alice stop", PMTyping("Alice", domain.TypingStop))
	req.Equal("REACTION Bob 12 👍", Reaction("Bob", 12, "👍"))
	req.Equal("REACTION_PUBLIC 7 🎉", PublicReaction(7, "🎉"))

	req.Equal("[09:30:05] Alice: hi", FormatPublic(at, "Alice", "hi"))
	req.Equal("[09:30:05] (Private from Alice): hi", FormatPrivateFrom(at, "Alice", "hi"))
	req.Equal("[09:30:05] (Private to Bob): hi", FormatPrivateTo(at, "Bob", "hi"))
	req.Equal("[09:30:05] Server: down for maintenance", FormatServerNotice(at, "down for maintenance"))
	req.Equal("Alice joined the chat", JoinNotice("Alice"))
	req.Equal("Alice left the chat", LeaveNotice("Alice"))
}
