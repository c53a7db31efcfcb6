package core

import (
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/dkeye/Rooms/internal/domain"
)

// roomImpl is a threadsafe in-memory room.
// It never closes adapter-owned resources.
type roomImpl struct {
	// op serializes whole join/leave/publish sequences; mu only guards state,
	// so snapshots are not held up by sends.
	op sync.Mutex

	mu      sync.RWMutex
	room    *domain.Room
	members map[domain.UserID]*Participant
	closed  bool
}

func NewRoomService(room *domain.Room) RoomService {
	return &roomImpl{
		room:    room,
		members: make(map[domain.UserID]*Participant),
	}
}

func (r *roomImpl) ID() domain.RoomID { return r.room.ID }

func (r *roomImpl) Do(fn func()) {
	r.op.Lock()
	defer r.op.Unlock()
	fn()
}

func (r *roomImpl) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

func (r *roomImpl) Closed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.closed
}

func (r *roomImpl) Member(id domain.UserID) (*Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.members[id]
	return p, ok
}

func (r *roomImpl) Members(except ...domain.UserID) []*Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Participant, 0, len(r.members))
	for id, p := range r.members {
		if lo.Contains(except, id) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (r *roomImpl) AddMember(p *Participant, limit int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRoomNotFound
	}
	if _, ok := r.members[p.ID()]; !ok && limit > 0 && len(r.members) >= limit {
		return ErrRoomFull
	}
	r.members[p.ID()] = p
	log.Info().Str("module", "core.room").Str("room", string(r.room.ID)).Str("user", string(p.ID())).Msg("member added")
	return nil
}

func (r *roomImpl) RemoveMember(id domain.UserID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return 0, ErrRoomNotFound
	}
	if _, ok := r.members[id]; !ok {
		return len(r.members), ErrParticipantNotInRoom
	}
	delete(r.members, id)
	if len(r.members) == 0 {
		r.closed = true
	}
	log.Info().Str("module", "core.room").Str("room", string(r.room.ID)).Str("user", string(id)).Int("remaining", len(r.members)).Msg("member removed")
	return len(r.members), nil
}

func (r *roomImpl) Snapshot() RoomSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap := RoomSnapshot{
		ID:             r.room.ID,
		Vote:           r.room.Vote,
		ConnectedUsers: make(map[domain.UserID]MemberDTO, len(r.members)),
	}
	if r.room.CurrentSong != nil {
		song := *r.room.CurrentSong
		snap.CurrentSong = &song
	}
	for id, p := range r.members {
		snap.ConnectedUsers[id] = p.DTO()
	}
	return snap
}
