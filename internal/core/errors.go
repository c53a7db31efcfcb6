package core

import "errors"

var (
	ErrRoomNotFound         = errors.New("room not found")
	ErrParticipantNotInRoom = errors.New("participant not in room")
	ErrRoomFull             = errors.New("room is full")
	ErrInvalidOrigin        = errors.New("invalid origin address")
	ErrUnknownEvent         = errors.New("unknown event type")
)
