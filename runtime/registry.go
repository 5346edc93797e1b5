// Package runtime hosts the live server state and the coordinator that
// serializes access to it. It contains no wire-format or domain rules.
package runtime

import (
	"sync"

	"github.com/samber/lo"

	"github.com/AJYORK88/ConnectSphere-Online/contract"
	"github.com/AJYORK88/ConnectSphere-Online/domain"
	apperrors "github.com/AJYORK88/ConnectSphere-Online/errors"
)

type member struct {
	name domain.Username
	sink contract.Sink
}

// Registry owns the set of connected usernames and the mapping to their
// outbound sinks. Uniqueness and lookup are case-insensitive; display case
// and registration order are preserved for user-list snapshots. All writes
// flow through the router's goroutine, the mutex additionally makes reads
// from other goroutines (stats, tests) safe.
type Registry struct {
	mu    sync.RWMutex
	order []*member
	index map[string]*member
}

func NewRegistry() *Registry {
	return &Registry{index: make(map[string]*member)}
}

// Register claims the candidate name. The candidate is trimmed; an empty
// result is rejected with ErrEmptyName and a case-insensitive collision
// with ErrNameTaken: the first registration for a given lowercase form wins
// until it is released. Returns the display-case name that was stored.
func (r *Registry) Register(candidate domain.Username, sink contract.Sink) (domain.Username, error) {
	name := candidate.Trim()
	if name == "" {
		return "", apperrors.ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.index[name.Key()]; taken {
		return "", apperrors.ErrNameTaken
	}
	m := &member{name: name, sink: sink}
	r.index[name.Key()] = m
	r.order = append(r.order, m)
	return name, nil
}

// Release removes the username and its sink mapping. Idempotent.
func (r *Registry) Release(name domain.Username) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.index[name.Key()]
	if !ok {
		return
	}
	delete(r.index, name.Key())
	r.order = lo.Reject(r.order, func(e *member, _ int) bool { return e == m })
}

// Lookup resolves a name case-insensitively to its display form and live sink.
func (r *Registry) Lookup(name domain.Username) (domain.Username, contract.Sink, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.index[name.Key()]
	if !ok {
		return "", nil, false
	}
	return m.name, m.sink, true
}

// Snapshot returns the display-case usernames in registration order.
func (r *Registry) Snapshot() []domain.Username {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Map(r.order, func(m *member, _ int) domain.Username { return m.name })
}

// Sinks returns the live outbound sinks in registration order. Broadcast
// iterates this snapshot, so members joining or leaving mid-broadcast never
// invalidate the iteration.
func (r *Registry) Sinks() []contract.Sink {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Map(r.order, func(m *member, _ int) contract.Sink { return m.sink })
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
