package runtime

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/AJYORK88/ConnectSphere-Online/contract"
	"github.com/AJYORK88/ConnectSphere-Online/domain"
	"github.com/AJYORK88/ConnectSphere-Online/moderation"
	"github.com/AJYORK88/ConnectSphere-Online/protocol"
)

// Compile-time assertions of the architectural contracts.
var (
	_ contract.Worker  = (*Router)(nil)
	_ contract.IRouter = (*Router)(nil)
)

const invalidPMFormat = "Invalid private message format or user not found. Use: /pm username message"

// envelope is one unit of work in the router's mailbox: either a parsed
// client command or a join/leave control request.
type envelope struct {
	cmd   domain.Command
	join  *joinRequest
	leave *domain.Username
}

type joinRequest struct {
	name  domain.Username
	sink  contract.Sink
	reply chan error
}

// Router is the protocol state machine and the single serializing owner of
// all shared chat state. One goroutine drains the mailbox; registry writes,
// history appends, typing transitions, and deliveries all happen there, so
// broadcast order matches history order and no lock ordering exists to get
// wrong. Sessions talk to it only through Join, Leave, and Dispatch.
type Router struct {
	log      *slog.Logger
	registry *Registry
	history  *domain.History
	typing   *domain.TypingSet
	censor   *moderation.Moderator
	mailbox  chan envelope
	now      func() time.Time
	lastID   domain.MessageID

	publicMessages     atomic.Int64
	privateMessages    atomic.Int64
	reactionsAttached  atomic.Int64
	reactionsForwarded atomic.Int64
}

func NewRouter(log *slog.Logger, registry *Registry, history *domain.History,
	censor *moderation.Moderator, bufferSize int) *Router {
	return &Router{
		log:      log,
		registry: registry,
		history:  history,
		typing:   domain.NewTypingSet(),
		censor:   censor,
		mailbox:  make(chan envelope, bufferSize),
		now:      time.Now,
	}
}

// Join registers the candidate name and primes the new sink: name
// acknowledgment, history replay, typing burst, join notice, and user-list
// broadcast happen atomically with respect to concurrent routing, so the
// newcomer never misses or double-receives a live message.
func (r *Router) Join(ctx context.Context, name domain.Username, sink contract.Sink) error {
	req := &joinRequest{name: name, sink: sink, reply: make(chan error, 1)}
	select {
	case r.mailbox <- envelope{join: req}:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-req.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Leave releases the username and emits the departure broadcasts. Safe to
// call more than once; later calls find nothing to release.
func (r *Router) Leave(ctx context.Context, name domain.Username) {
	select {
	case r.mailbox <- envelope{leave: &name}:
	case <-ctx.Done():
	}
}

// Dispatch hands a parsed command to the router. Commands from one session
// arrive through one read loop, so per-sender ordering is preserved.
func (r *Router) Dispatch(ctx context.Context, cmd domain.Command) {
	select {
	case r.mailbox <- envelope{cmd: cmd}:
	case <-ctx.Done():
	}
}

func (r *Router) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			r.log.Debug("Stopping worker")
			return ctx.Err()
		case env, ok := <-r.mailbox:
			if !ok {
				return nil
			}
			r.handle(env)
		}
	}
}

func (r *Router) handle(env envelope) {
	switch {
	case env.join != nil:
		r.handleJoin(env.join)
	case env.leave != nil:
		r.handleLeave(*env.leave)
	case env.cmd != nil:
		r.handleCommand(env.cmd)
	}
}

func (r *Router) handleJoin(req *joinRequest) {
	name, err := r.registry.Register(req.name, req.sink)
	req.reply <- err
	if err != nil {
		return
	}

	r.deliver(req.sink, protocol.NameAccepted(name))
	for _, text := range r.history.Replay() {
		r.deliver(req.sink, protocol.Message(text))
	}
	for _, user := range r.typing.Active() {
		r.deliver(req.sink, protocol.Typing(user, domain.TypingStart))
	}
	r.broadcast(protocol.Message(protocol.JoinNotice(name)))
	r.broadcastUserList()
	r.log.Info("client joined", "name", name)
}

func (r *Router) handleLeave(name domain.Username) {
	display, _, ok := r.registry.Lookup(name)
	if !ok {
		return
	}
	// A synthetic stop must precede the departure notice when the leaving
	// user was mid-type.
	if r.typing.Stop(display) {
		r.broadcast(protocol.Typing(display, domain.TypingStop))
	}
	r.registry.Release(display)
	r.broadcast(protocol.Message(protocol.LeaveNotice(display)))
	r.broadcastUserList()
	r.log.Info("client left", "name", display)
}

func (r *Router) handleCommand(cmd domain.Command) {
	switch c := cmd.(type) {
	case domain.PublicMessageCommand:
		r.routePublicMessage(c)
	case domain.PrivateMessageCommand:
		r.routePrivateMessage(c)
	case domain.PublicTypingCommand:
		r.routePublicTyping(c)
	case domain.PrivateTypingCommand:
		r.routePrivateTyping(c)
	case domain.PrivateReactionCommand:
		r.routePrivateReaction(c)
	case domain.PublicReactionCommand:
		r.routePublicReaction(c)
	default:
		r.log.Warn("unhandled command", "sender", cmd.Sender())
	}
}

func (r *Router) routePublicMessage(c domain.PublicMessageCommand) {
	text, hits := r.censor.Censor(c.Text)
	if len(hits) > 0 {
		r.log.Info("message censored",
			"author", c.From,
			"words", hits,
			"lang", moderation.Language(c.Text))
	}

	msg := r.newMessage(protocol.FormatPublic(r.now(), c.From, text))
	r.history.Append(msg)
	r.broadcast(protocol.Message(msg.Text))
	r.publicMessages.Add(1)
}

// routePrivateMessage resolves the recipient by scanning the registry
// snapshot in registration order for the first username that prefixes the
// remainder (case-insensitively, followed by a space). The prefix match is
// ambiguous when one online name prefixes another ("Ann" vs "Anna"); the
// first-match rule is long-standing observed behavior that connected
// clients rely on, so it is kept as is.
func (r *Router) routePrivateMessage(c domain.PrivateMessageCommand) {
	now := r.now()

	var recipient domain.Username
	var body string
	lowered := strings.ToLower(c.Remainder)
	for _, name := range r.registry.Snapshot() {
		if strings.HasPrefix(lowered, name.Key()+" ") {
			recipient = name
			body = strings.TrimSpace(c.Remainder[len(name):])
			break
		}
	}

	if recipient == "" || body == "" {
		r.deliverTo(c.From, protocol.Message(protocol.FormatServerNotice(now, invalidPMFormat)))
		return
	}

	_, recipientSink, ok := r.registry.Lookup(recipient)
	if !ok {
		r.deliverTo(c.From, protocol.Message(protocol.FormatServerNotice(now, "User "+string(recipient)+" not found.")))
		return
	}

	// Each addressed rendering gets its own message ID; neither enters the
	// public history.
	toRecipient := r.newMessage(protocol.FormatPrivateFrom(now, c.From, body))
	toSender := r.newMessage(protocol.FormatPrivateTo(now, recipient, body))

	r.deliver(recipientSink, protocol.Message(toRecipient.Text))
	r.deliverTo(c.From, protocol.Message(toSender.Text))
	r.privateMessages.Add(1)
	r.log.Debug("private message routed",
		"from", c.From, "to", recipient,
		"ids", []domain.MessageID{toRecipient.ID, toSender.ID})
}

func (r *Router) routePublicTyping(c domain.PublicTypingCommand) {
	var changed bool
	if c.Status == domain.TypingStart {
		changed = r.typing.Start(c.From)
	} else {
		changed = r.typing.Stop(c.From)
	}
	// Redundant transitions are no-ops and must not re-emit.
	if changed {
		r.broadcast(protocol.Typing(c.From, c.Status))
	}
}

func (r *Router) routePrivateTyping(c domain.PrivateTypingCommand) {
	_, sink, ok := r.registry.Lookup(c.To)
	if !ok {
		// Offline recipient: dropped, not queued, not an error.
		return
	}
	r.deliver(sink, protocol.PMTyping(c.From, c.Status))
}

// routePrivateReaction forwards the reaction to both parties of the
// conversation. The server keeps no copy of private message bodies, so the
// ID is passed through verbatim and the two clients reconcile it against
// their own threads; each party receives the line keyed by the other party.
func (r *Router) routePrivateReaction(c domain.PrivateReactionCommand) {
	recipient, sink, ok := r.registry.Lookup(c.To)
	if !ok {
		r.log.Debug("dropping reaction for offline recipient", "from", c.From, "to", c.To)
		return
	}
	r.deliver(sink, protocol.Reaction(c.From, c.MessageID, c.Emoji))
	r.deliverTo(c.From, protocol.Reaction(recipient, c.MessageID, c.Emoji))
	r.reactionsForwarded.Add(1)
}

func (r *Router) routePublicReaction(c domain.PublicReactionCommand) {
	if !r.history.React(c.MessageID, c.Emoji) {
		// Unknown ID: nothing is mutated and no error is broadcast.
		r.log.Debug("dropping reaction for unknown message", "from", c.From, "id", c.MessageID)
		return
	}
	r.broadcast(protocol.PublicReaction(c.MessageID, c.Emoji))
	r.reactionsAttached.Add(1)
}

// newMessage stamps a rendered line with the next message ID. Only called
// from the router goroutine, so the counter needs no synchronization.
func (r *Router) newMessage(text string) *domain.Message {
	r.lastID++
	return &domain.Message{ID: r.lastID, Text: text, CreatedAt: r.now()}
}

// broadcast delivers one line to every registered sink. Per-recipient
// failures are logged and skipped so one broken connection never blocks the
// rest of the room.
func (r *Router) broadcast(line string) {
	for _, sink := range r.registry.Sinks() {
		r.deliver(sink, line)
	}
}

func (r *Router) broadcastUserList() {
	r.broadcast(protocol.UserList(r.registry.Snapshot()))
}

func (r *Router) deliver(sink contract.Sink, line string) {
	if err := sink.Deliver(line); err != nil {
		r.log.Warn("delivery failed", "error", err)
	}
}

func (r *Router) deliverTo(name domain.Username, line string) {
	if _, sink, ok := r.registry.Lookup(name); ok {
		r.deliver(sink, line)
	}
}

// Stats exposes counters for the health monitor and the debug server.
func (r *Router) Stats() map[string]any {
	return map[string]any{
		"users_online":        r.registry.Len(),
		"history_size":        r.history.Len(),
		"public_messages":     r.publicMessages.Load(),
		"private_messages":    r.privateMessages.Load(),
		"reactions_attached":  r.reactionsAttached.Load(),
		"reactions_forwarded": r.reactionsForwarded.Load(),
	}
}
