package app

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/dkeye/Rooms/internal/core"
	"github.com/dkeye/Rooms/internal/domain"
)

const DefaultRoomIDLength = 7

var roomIDCharset = append(append([]rune{}, lo.LowerCaseLettersCharset...), lo.NumbersCharset...)

// RandomRoomID returns n characters from [a-z0-9].
func RandomRoomID(n int) domain.RoomID {
	return domain.RoomID(lo.RandomString(n, roomIDCharset))
}

type RoomManagerConfig struct {
	IDLength int
	// MaxMembers of 0 means unbounded.
	MaxMembers int
	Policy     Policy
	// NewID overrides the random generator, mostly for tests.
	NewID func() domain.RoomID
}

type RoomManagerImpl struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]core.RoomService

	newID      func() domain.RoomID
	maxMembers int
	policy     Policy
}

func NewRoomManager(cfg RoomManagerConfig) *RoomManagerImpl {
	if cfg.IDLength <= 0 {
		cfg.IDLength = DefaultRoomIDLength
	}
	if cfg.NewID == nil {
		n := cfg.IDLength
		cfg.NewID = func() domain.RoomID { return RandomRoomID(n) }
	}
	return &RoomManagerImpl{
		rooms:      make(map[domain.RoomID]core.RoomService),
		newID:      cfg.NewID,
		maxMembers: cfg.MaxMembers,
		policy:     cfg.Policy,
	}
}

// CreateRoom never fails; an id that is already live gets regenerated.
func (m *RoomManagerImpl) CreateRoom() domain.RoomID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.newID()
	for {
		if _, taken := m.rooms[id]; !taken {
			break
		}
		log.Warn().Str("module", "app.rooms").Str("room", string(id)).Msg("room id collision, regenerating")
		id = m.newID()
	}
	m.rooms[id] = core.NewRoomService(domain.NewRoom(id))
	log.Info().Str("module", "app.rooms").Str("room", string(id)).Msg("room created")
	return id
}

func (m *RoomManagerImpl) GetRoom(id domain.RoomID) (core.RoomSnapshot, bool) {
	room, ok := m.room(id)
	if !ok {
		return core.RoomSnapshot{}, false
	}
	return room.Snapshot(), true
}

func (m *RoomManagerImpl) DoesRoomExist(id domain.RoomID) bool {
	_, ok := m.room(id)
	return ok
}

func (m *RoomManagerImpl) List() []core.RoomInfo {
	m.mu.RLock()
	rooms := lo.Values(m.rooms)
	m.mu.RUnlock()

	out := make([]core.RoomInfo, 0, len(rooms))
	for _, r := range rooms {
		if r.Closed() {
			continue
		}
		out = append(out, core.RoomInfo{ID: r.ID(), MemberCount: r.MemberCount()})
	}
	slices.SortFunc(out, func(a, b core.RoomInfo) int { return strings.Compare(string(a.ID), string(b.ID)) })
	return out
}

// JoinRoom adds p, sends the Welcome to p and then the Join to everyone else.
func (m *RoomManagerImpl) JoinRoom(id domain.RoomID, p *core.Participant) error {
	room, ok := m.room(id)
	if !ok {
		return fmt.Errorf("join %s: %w", id, core.ErrRoomNotFound)
	}
	var err error
	room.Do(func() {
		if err = room.AddMember(p, m.maxMembers); err != nil {
			return
		}
		m.dispatch(room, core.NewWelcome(p.User, room.Snapshot()), []*core.Participant{p})
		m.dispatch(room, core.NewJoin(p.User), room.Members(p.ID()))
	})
	if err != nil {
		return fmt.Errorf("join %s: %w", id, err)
	}
	log.Info().Str("module", "app.rooms").Str("room", string(id)).Str("user", string(p.ID())).Str("username", p.User.Username).Msg("joined room")
	return nil
}

// LeaveRoom removes p. The last member leaving evicts the room silently,
// otherwise the remaining members get a Left event.
func (m *RoomManagerImpl) LeaveRoom(id domain.RoomID, p *core.Participant) error {
	room, ok := m.room(id)
	if !ok {
		return fmt.Errorf("leave %s: %w", id, core.ErrRoomNotFound)
	}
	var err error
	room.Do(func() {
		var remaining int
		if remaining, err = room.RemoveMember(p.ID()); err != nil {
			return
		}
		if remaining == 0 {
			m.evict(room)
			return
		}
		m.dispatch(room, core.NewLeft(p.ID()), room.Members())
	})
	if err != nil {
		return fmt.Errorf("leave %s: %w", id, err)
	}
	log.Info().Str("module", "app.rooms").Str("room", string(id)).Str("user", string(p.ID())).Msg("left room")
	return nil
}

func (m *RoomManagerImpl) PublishAll(id domain.RoomID, e core.Event) (core.PublishResult, error) {
	return m.publish(id, e, func(room core.RoomService) ([]*core.Participant, error) {
		return room.Members(), nil
	})
}

func (m *RoomManagerImpl) PublishAllBut(id domain.RoomID, e core.Event, excluded domain.UserID) (core.PublishResult, error) {
	return m.publish(id, e, func(room core.RoomService) ([]*core.Participant, error) {
		return room.Members(excluded), nil
	})
}

func (m *RoomManagerImpl) PublishTo(id domain.RoomID, e core.Event, target domain.UserID) (core.PublishResult, error) {
	return m.publish(id, e, func(room core.RoomService) ([]*core.Participant, error) {
		p, ok := room.Member(target)
		if !ok {
			return nil, core.ErrParticipantNotInRoom
		}
		return []*core.Participant{p}, nil
	})
}

func (m *RoomManagerImpl) publish(
	id domain.RoomID,
	e core.Event,
	recipients func(core.RoomService) ([]*core.Participant, error),
) (core.PublishResult, error) {
	room, ok := m.room(id)
	if !ok {
		return core.PublishResult{}, fmt.Errorf("publish %s: %w", id, core.ErrRoomNotFound)
	}
	var (
		res core.PublishResult
		err error
	)
	room.Do(func() {
		if room.Closed() {
			err = core.ErrRoomNotFound
			return
		}
		var to []*core.Participant
		if to, err = recipients(room); err != nil {
			return
		}
		res = m.dispatch(room, e, to)
	})
	if err != nil {
		return core.PublishResult{}, fmt.Errorf("publish %s: %w", id, err)
	}
	return res, nil
}

// dispatch must run inside room.Do. Every send is independent of the others.
func (m *RoomManagerImpl) dispatch(room core.RoomService, e core.Event, to []*core.Participant) core.PublishResult {
	res := core.PublishResult{}
	if len(to) == 0 {
		return res
	}
	frame, err := core.EncodeEvent(e)
	if err != nil {
		log.Error().Err(err).Str("module", "app.rooms").Str("room", string(room.ID())).Msg("encode event")
		res.Dropped = to
		return res
	}
	for _, p := range to {
		if err := p.Send(frame); err != nil {
			log.Warn().
				Err(err).
				Str("module", "app.rooms").
				Str("room", string(room.ID())).
				Str("user", string(p.ID())).
				Str("event", string(e.Type())).
				Msg("send failed")
			res.Dropped = append(res.Dropped, p)
			continue
		}
		res.SendTo++
	}
	log.Debug().Str("module", "app.rooms").Str("room", string(room.ID())).Str("event", string(e.Type())).Int("sent_to", res.SendTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	m.onDropped(room, res.Dropped)
	return res
}

func (m *RoomManagerImpl) onDropped(room core.RoomService, dropped []*core.Participant) {
	if m.policy == nil {
		return
	}
	for _, slow := range dropped {
		switch m.policy.OnBackPressure(room, slow) {
		case KickMember:
			// Closing the channel makes the transport report a close,
			// which runs the normal leave path.
			if conn := slow.Address.Signal(); conn != nil {
				log.Info().Str("module", "app.rooms").Str("room", string(room.ID())).Str("user", string(slow.ID())).Msg("kicking member after failed send")
				conn.Close()
			}
		case DropFrame, NoAction:
		}
	}
}

// room hides rooms that were closed but not yet evicted.
func (m *RoomManagerImpl) room(id domain.RoomID) (core.RoomService, bool) {
	m.mu.RLock()
	room, ok := m.rooms[id]
	m.mu.RUnlock()
	if !ok || room.Closed() {
		return nil, false
	}
	return room, true
}

func (m *RoomManagerImpl) evict(room core.RoomService) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.rooms[room.ID()]; ok && cur == room {
		delete(m.rooms, room.ID())
		log.Info().Str("module", "app.rooms").Str("room", string(room.ID())).Msg("room closed")
	}
}
