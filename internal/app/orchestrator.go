package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Rooms/internal/core"
	"github.com/dkeye/Rooms/internal/domain"
)

// Orchestrator is what the transport talks to: it gets one OnOpen and one
// OnClose per connection and keeps the session registry in step with rooms.
type Orchestrator struct {
	Registry *Registry
	Rooms    core.RoomManager
}

// OnOpen joins p to the room. A participant already bound elsewhere is
// moved, so one session is never in two rooms.
func (o *Orchestrator) OnOpen(roomID domain.RoomID, p *core.Participant, cancel context.CancelFunc) error {
	if prev, ok := o.Registry.RoomOf(p.ID()); ok {
		o.leave(p)
		log.Info().Str("module", "app.orch").Str("user", string(p.ID())).Str("from_room", string(prev)).Msg("moved out of previous room")
	}
	o.Registry.Bind(roomID, p, cancel)
	if err := o.Rooms.JoinRoom(roomID, p); err != nil {
		o.Registry.Unbind(p.ID())
		return fmt.Errorf("open session: %w", err)
	}
	return nil
}

// OnClose is safe to call more than once; only the first call leaves.
func (o *Orchestrator) OnClose(p *core.Participant) {
	o.leave(p)
}

func (o *Orchestrator) leave(p *core.Participant) {
	roomID, ok := o.Registry.Unbind(p.ID())
	if !ok {
		return
	}
	err := o.Rooms.LeaveRoom(roomID, p)
	switch {
	case err == nil:
	case errors.Is(err, core.ErrRoomNotFound), errors.Is(err, core.ErrParticipantNotInRoom):
		log.Warn().Err(err).Str("module", "app.orch").Str("user", string(p.ID())).Str("room", string(roomID)).Msg("leave on close")
	default:
		log.Error().Err(err).Str("module", "app.orch").Str("user", string(p.ID())).Str("room", string(roomID)).Msg("leave on close")
	}
}

// Shutdown cancels every live session; their transports then close and
// leave their rooms through OnClose.
func (o *Orchestrator) Shutdown() {
	n := o.Registry.CancelAll()
	log.Info().Str("module", "app.orch").Int("sessions", n).Msg("shutdown: sessions canceled")
}
