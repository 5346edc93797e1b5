package tcp

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"

	"github.com/google/uuid"

	"github.com/AJYORK88/ConnectSphere-Online/contract"
	"github.com/AJYORK88/ConnectSphere-Online/domain"
	apperrors "github.com/AJYORK88/ConnectSphere-Online/errors"
	"github.com/AJYORK88/ConnectSphere-Online/protocol"
)

// Session owns one client connection: the name negotiation handshake, the
// read loop feeding parsed commands to the router, and the exactly-once
// teardown. Read errors are disconnects, never server failures.
type Session struct {
	id     uuid.UUID
	log    *slog.Logger
	router contract.IRouter
	sink   *LineSink
}

func NewSession(log *slog.Logger, router contract.IRouter, conn net.Conn) *Session {
	id := uuid.New()
	return &Session{
		id:     id,
		log:    log.With("session_id", id, "remote", conn.RemoteAddr().String()),
		router: router,
		sink:   NewLineSink(conn),
	}
}

func (s *Session) Run(ctx context.Context) {
	// Cancellation closes the connection, which is the only way to unblock
	// the read loop.
	stopAfter := context.AfterFunc(ctx, func() { _ = s.sink.Close() })
	defer stopAfter()
	defer func() { _ = s.sink.Close() }()

	scanner := bufio.NewScanner(s.sink.conn)

	name, ok := s.negotiate(ctx, scanner)
	if !ok {
		s.log.Debug("connection closed before a name was accepted")
		return
	}
	s.log = s.log.With("name", name)

	var leaveOnce sync.Once
	leave := func() {
		leaveOnce.Do(func() { s.router.Leave(ctx, name) })
	}
	defer leave()

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		cmd, err := protocol.Parse(name, line)
		if err != nil {
			s.log.Debug("dropping malformed command", "line", line, "error", err)
			continue
		}
		s.router.Dispatch(ctx, cmd)
	}
	if err := scanner.Err(); err != nil {
		s.log.Debug("read loop ended", "error", err)
	}
}

// negotiate repeats the SUBMITNAME prompt until the registry accepts a
// name. Identity conflicts just re-prompt; they are never surfaced to
// other clients.
func (s *Session) negotiate(ctx context.Context, scanner *bufio.Scanner) (domain.Username, bool) {
	for {
		if err := s.sink.Deliver(protocol.SubmitName); err != nil {
			return "", false
		}
		if !scanner.Scan() {
			return "", false
		}
		candidate := domain.Username(scanner.Text()).Trim()
		if candidate == "" {
			continue
		}
		err := s.router.Join(ctx, candidate, s.sink)
		switch {
		case err == nil:
			return candidate, true
		case errors.Is(err, apperrors.ErrNameTaken), errors.Is(err, apperrors.ErrEmptyName):
			continue
		default:
			return "", false
		}
	}
}
