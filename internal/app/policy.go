package app

import (
	"fmt"

	"github.com/dkeye/Rooms/internal/core"
)

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	KickMember
	DropFrame
)

// Policy decides what happens to a member whose send just failed.
type Policy interface {
	OnBackPressure(room core.RoomService, member *core.Participant) BackpressureAction
}

// SimplePolicy treats a failed send as an implicit disconnect.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(room core.RoomService, member *core.Participant) BackpressureAction {
	return KickMember
}

// DropPolicy only loses the frame; the member stays in the room.
type DropPolicy struct{}

func (DropPolicy) OnBackPressure(room core.RoomService, member *core.Participant) BackpressureAction {
	return DropFrame
}

func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", "kick":
		return SimplePolicy{}, nil
	case "drop":
		return DropPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown backpressure policy %q", name)
	}
}
