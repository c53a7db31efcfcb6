package signal

import (
	"github.com/dkeye/Rooms/internal/core"
	"github.com/dkeye/Rooms/internal/domain"
)

func (ctl *SignalWSController) handleWhoAmI(
	p *core.Participant,
	conn *WsSignalConn,
) {
	resp := struct {
		Type     string        `json:"type"`
		UserID   domain.UserID `json:"userId"`
		Username string        `json:"username"`
		Room     domain.RoomID `json:"room,omitempty"`
	}{
		Type:     "whoami",
		UserID:   p.ID(),
		Username: p.User.Username,
	}
	if roomID, ok := ctl.Orch.Registry.RoomOf(p.ID()); ok {
		resp.Room = roomID
	}
	ctl.sendJSON(conn, resp)
}
