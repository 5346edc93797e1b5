package contract

import (
	"context"
	"reflect"

	"github.com/AJYORK88/ConnectSphere-Online/domain"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself; the supervisor handles panics and restarts.
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes, avoiding the need for
// manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Sink is one client's outbound channel. Deliver is synchronous: a slow
// reader stalls the delivering goroutine for that recipient only, and a
// failed delivery must never affect other sinks.
type Sink interface {
	Deliver(line string) error
	Close() error
}

// IRegistry is the authority for username uniqueness and live sink lookup.
type IRegistry interface {
	Register(candidate domain.Username, sink Sink) (domain.Username, error)
	Release(name domain.Username)
	Lookup(name domain.Username) (domain.Username, Sink, bool)
	Snapshot() []domain.Username
	Sinks() []Sink
	Len() int
}

// IRouter is the handle sessions use to reach the serializing coordinator
// that owns the registry, history, and typing state.
type IRouter interface {
	Join(ctx context.Context, name domain.Username, sink Sink) error
	Leave(ctx context.Context, name domain.Username)
	Dispatch(ctx context.Context, cmd domain.Command)
}
