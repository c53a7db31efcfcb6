package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Rooms/internal/core"
	"github.com/dkeye/Rooms/internal/domain"
)

type sessionEntry struct {
	RoomID      domain.RoomID
	Participant *core.Participant
	Cancel      context.CancelFunc
}

// Registry tracks the live transport sessions: which participant is bound
// to which room and how to tear its connection down.
type Registry struct {
	mu       sync.RWMutex
	sessions map[domain.UserID]*sessionEntry
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[domain.UserID]*sessionEntry),
	}
}

func (r *Registry) Bind(roomID domain.RoomID, p *core.Participant, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[p.ID()] = &sessionEntry{
		RoomID:      roomID,
		Participant: p,
		Cancel:      cancel,
	}
	log.Info().Str("module", "app.registry").Str("user", string(p.ID())).Str("room", string(roomID)).Msg("bound session")
}

// Unbind removes the session and reports the room it was bound to.
// Only the first call for a given id returns ok.
func (r *Registry) Unbind(id domain.UserID) (domain.RoomID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return "", false
	}
	delete(r.sessions, id)
	log.Info().Str("module", "app.registry").Str("user", string(id)).Msg("unbind session")
	return e.RoomID, true
}

func (r *Registry) RoomOf(id domain.UserID) (domain.RoomID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[id]
	if !ok {
		return "", false
	}
	return e.RoomID, true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// CancelAll cancels every session and returns how many there were.
func (r *Registry) CancelAll() int {
	r.mu.RLock()
	cancels := make([]context.CancelFunc, 0, len(r.sessions))
	for _, e := range r.sessions {
		if e.Cancel != nil {
			cancels = append(cancels, e.Cancel)
		}
	}
	n := len(r.sessions)
	r.mu.RUnlock()

	for _, cancel := range cancels {
		cancel()
	}
	return n
}
