package tcp

import (
	"context"
	"log/slog"
	"net"

	"github.com/AJYORK88/ConnectSphere-Online/contract"
)

var _ contract.Worker = (*Server)(nil)

// Server accepts connections on an already-bound listener and spawns one
// session goroutine per connection. The listener is bound by the caller so
// that a bind failure stays a fatal startup error rather than a supervised
// restart loop. There is no connection cap; that is a known resource-limit
// gap, not a feature.
type Server struct {
	log      *slog.Logger
	listener net.Listener
	router   contract.IRouter
}

func NewServer(log *slog.Logger, listener net.Listener, router contract.IRouter) *Server {
	return &Server{log: log, listener: listener, router: router}
}

func (s *Server) Run(ctx context.Context) error {
	stopAfter := context.AfterFunc(ctx, func() { _ = s.listener.Close() })
	defer stopAfter()

	s.log.Info("chat server listening", "addr", s.listener.Addr().String())
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.log.Info("listener closed, no longer accepting")
				return nil
			}
			return err
		}
		s.log.Info("new client connected", "remote", conn.RemoteAddr().String())

		session := NewSession(s.log, s.router, conn)
		go session.Run(ctx)
	}
}
