// Package protocol renders and parses the newline-delimited wire lines
// exchanged between server and clients.
package protocol

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/AJYORK88/ConnectSphere-Online/domain"
)

// Server -> client line prefixes.
const (
	SubmitName         = "SUBMITNAME"
	NameAcceptedPrefix = "NAMEACCEPTED"
	MessagePrefix      = "MESSAGE"
	UserListPrefix     = "USERLIST"
	TypingPrefix       = "TYPING"
	PMTypingPrefix     = "PMTYPING"
	ReactionPrefix     = "REACTION"
	PublicReactPrefix  = "REACTION_PUBLIC"
)

// TimeLayout renders server-local wall-clock timestamps as HH:mm:ss.
const TimeLayout = "15:04:05"

func NameAccepted(name domain.Username) string {
	return fmt.Sprintf("%s %s", NameAcceptedPrefix, name)
}

func Message(text string) string {
	return fmt.Sprintf("%s %s", MessagePrefix, text)
}

// UserList renders the full membership snapshot, display-case names joined
// by commas in registration order.
func UserList(names []domain.Username) string {
	display := lo.Map(names, func(u domain.Username, _ int) string {
		return string(u)
	})
	return fmt.Sprintf("%s %s", UserListPrefix, strings.Join(display, ","))
}

func Typing(user domain.Username, status domain.TypingStatus) string {
	return fmt.Sprintf("%s %s %s", TypingPrefix, user, status)
}

func PMTyping(user domain.Username, status domain.TypingStatus) string {
	return fmt.Sprintf("%s %s %s", PMTypingPrefix, user, status)
}

// Reaction addresses a private reaction line to one party of a
// conversation; peer names the other party so the client can reconcile the
// ID against the right thread.
func Reaction(peer domain.Username, id domain.MessageID, emoji string) string {
	return fmt.Sprintf("%s %s %d %s", ReactionPrefix, peer, id, emoji)
}

func PublicReaction(id domain.MessageID, emoji string) string {
	return fmt.Sprintf("%s %d %s", PublicReactPrefix, id, emoji)
}

// FormatPublic renders a public chat line: [HH:mm:ss] name: text
func FormatPublic(at time.Time, from domain.Username, text string) string {
	return fmt.Sprintf("[%s] %s: %s", at.Format(TimeLayout), from, text)
}

// FormatPrivateFrom renders the recipient's copy of a private message.
func FormatPrivateFrom(at time.Time, sender domain.Username, body string) string {
	return fmt.Sprintf("[%s] (Private from %s): %s", at.Format(TimeLayout), sender, body)
}

// FormatPrivateTo renders the sender's echo of a private message.
func FormatPrivateTo(at time.Time, recipient domain.Username, body string) string {
	return fmt.Sprintf("[%s] (Private to %s): %s", at.Format(TimeLayout), recipient, body)
}

// FormatServerNotice renders an error or status line addressed to a single
// sender, e.g. invalid private message format.
func FormatServerNotice(at time.Time, text string) string {
	return fmt.Sprintf("[%s] Server: %s", at.Format(TimeLayout), text)
}

func JoinNotice(name domain.Username) string {
	return fmt.Sprintf("%s joined the chat", name)
}

func LeaveNotice(name domain.Username) string {
	return fmt.Sprintf("%s left the chat", name)
}
