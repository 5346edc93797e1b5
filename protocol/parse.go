package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AJYORK88/ConnectSphere-Online/domain"
	apperrors "github.com/AJYORK88/ConnectSphere-Online/errors"
)

// Client -> server command prefixes. Only the exact prefix-with-space forms
// are recognized; a bare "/pm" is an ordinary chat line.
const (
	pmPrefix          = "/pm "
	typingCmdPrefix   = "/typing "
	pmTypingCmdPrefix = "/pmtyping "
	reactionCmdPrefix = "/reaction "
	publicReactCmd    = "/reaction_public "
)

// Parse classifies one inbound line from an active session. Unrecognized
// non-empty lines become public chat messages. Recognized commands with
// broken syntax return ErrMalformedCommand and must be dropped by the
// caller, never escalated.
func Parse(from domain.Username, line string) (domain.Command, error) {
	switch {
	case line == "":
		return nil, fmt.Errorf("%w: empty line", apperrors.ErrMalformedCommand)

	case strings.HasPrefix(line, pmPrefix):
		return domain.PrivateMessageCommand{
			From:      from,
			Remainder: strings.TrimSpace(line[len(pmPrefix):]),
		}, nil

	case strings.HasPrefix(line, typingCmdPrefix):
		status, err := parseStatus(strings.TrimSpace(line[len(typingCmdPrefix):]))
		if err != nil {
			return nil, err
		}
		return domain.PublicTypingCommand{From: from, Status: status}, nil

	case strings.HasPrefix(line, pmTypingCmdPrefix):
		return parsePrivateTyping(from, strings.TrimSpace(line[len(pmTypingCmdPrefix):]))

	case strings.HasPrefix(line, publicReactCmd):
		return parsePublicReaction(from, strings.TrimSpace(line[len(publicReactCmd):]))

	case strings.HasPrefix(line, reactionCmdPrefix):
		return parsePrivateReaction(from, strings.TrimSpace(line[len(reactionCmdPrefix):]))

	default:
		return domain.PublicMessageCommand{From: from, Text: line}, nil
	}
}

func parseStatus(token string) (domain.TypingStatus, error) {
	// Anything after the status token is ignored, matching the historical
	// split-and-take-first behavior.
	if fields := strings.Fields(token); len(fields) > 0 {
		token = fields[0]
	}
	switch domain.TypingStatus(token) {
	case domain.TypingStart:
		return domain.TypingStart, nil
	case domain.TypingStop:
		return domain.TypingStop, nil
	default:
		return "", fmt.Errorf("%w: typing status %q", apperrors.ErrMalformedCommand, token)
	}
}

// parsePrivateTyping expects "<user> start|stop". The status is the final
// token so usernames containing spaces still resolve.
func parsePrivateTyping(from domain.Username, rest string) (domain.Command, error) {
	var status domain.TypingStatus
	var user string
	switch {
	case strings.HasSuffix(rest, " "+string(domain.TypingStart)):
		status = domain.TypingStart
		user = strings.TrimSpace(strings.TrimSuffix(rest, " "+string(domain.TypingStart)))
	case strings.HasSuffix(rest, " "+string(domain.TypingStop)):
		status = domain.TypingStop
		user = strings.TrimSpace(strings.TrimSuffix(rest, " "+string(domain.TypingStop)))
	default:
		return nil, fmt.Errorf("%w: pmtyping %q", apperrors.ErrMalformedCommand, rest)
	}
	if user == "" {
		return nil, fmt.Errorf("%w: pmtyping without recipient", apperrors.ErrMalformedCommand)
	}
	return domain.PrivateTypingCommand{From: from, To: domain.Username(user), Status: status}, nil
}

// parsePrivateReaction expects "<user> <messageId> <emoji>".
func parsePrivateReaction(from domain.Username, rest string) (domain.Command, error) {
	parts := strings.SplitN(rest, " ", 3)
	if len(parts) < 3 {
		return nil, fmt.Errorf("%w: reaction %q", apperrors.ErrMalformedCommand, rest)
	}
	id, err := parseMessageID(parts[1])
	if err != nil {
		return nil, err
	}
	emoji := strings.TrimSpace(parts[2])
	if emoji == "" {
		return nil, fmt.Errorf("%w: reaction without emoji", apperrors.ErrMalformedCommand)
	}
	return domain.PrivateReactionCommand{
		From:      from,
		To:        domain.Username(parts[0]),
		MessageID: id,
		Emoji:     emoji,
	}, nil
}

// parsePublicReaction expects "<messageId> <emoji>".
func parsePublicReaction(from domain.Username, rest string) (domain.Command, error) {
	parts := strings.SplitN(rest, " ", 2)
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: reaction_public %q", apperrors.ErrMalformedCommand, rest)
	}
	id, err := parseMessageID(parts[0])
	if err != nil {
		return nil, err
	}
	emoji := strings.TrimSpace(parts[1])
	if emoji == "" {
		return nil, fmt.Errorf("%w: reaction_public without emoji", apperrors.ErrMalformedCommand)
	}
	return domain.PublicReactionCommand{From: from, MessageID: id, Emoji: emoji}, nil
}

func parseMessageID(token string) (domain.MessageID, error) {
	id, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: message id %q", apperrors.ErrMalformedCommand, token)
	}
	return domain.MessageID(id), nil
}
