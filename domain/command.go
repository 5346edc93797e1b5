package domain

// TypingStatus is the transition carried by typing indicators.
type TypingStatus string

const (
	TypingStart TypingStatus = "start"
	TypingStop  TypingStatus = "stop"
)

// Command is a parsed client intent handed to the router. Commands are pure
// data: recipient resolution and delivery happen in the router, which owns
// all shared state.
type Command interface {
	Sender() Username
}

// PublicMessageCommand is any non-empty line that matched no command prefix.
type PublicMessageCommand struct {
	From Username
	Text string
}

func (c PublicMessageCommand) Sender() Username { return c.From }

// PrivateMessageCommand carries the raw remainder after "/pm ". The
// recipient is resolved against the live registry snapshot at routing time.
type PrivateMessageCommand struct {
	From      Username
	Remainder string
}

func (c PrivateMessageCommand) Sender() Username { return c.From }

// PublicTypingCommand toggles the sender's public typing state.
type PublicTypingCommand struct {
	From   Username
	Status TypingStatus
}

func (c PublicTypingCommand) Sender() Username { return c.From }

// PrivateTypingCommand addresses a typing transition to one recipient.
type PrivateTypingCommand struct {
	From   Username
	To     Username
	Status TypingStatus
}

func (c PrivateTypingCommand) Sender() Username { return c.From }

// PrivateReactionCommand forwards an emoji reaction within a private
// conversation. The message ID is meaningful only to the two clients.
type PrivateReactionCommand struct {
	From      Username
	To        Username
	MessageID MessageID
	Emoji     string
}

func (c PrivateReactionCommand) Sender() Username { return c.From }

// PublicReactionCommand attaches an emoji to a message in the public history.
type PublicReactionCommand struct {
	From      Username
	MessageID MessageID
	Emoji     string
}

func (c PublicReactionCommand) Sender() Username { return c.From }
