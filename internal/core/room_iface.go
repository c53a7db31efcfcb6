package core

import (
	"github.com/dkeye/Rooms/internal/domain"
)

// MemberDTO is a read-only view for APIs (no transport fields).
type MemberDTO struct {
	ID       domain.UserID `json:"id"`
	Username string        `json:"username"`
}

// RoomSnapshot is a detached copy of a room, safe to encode and hand out.
type RoomSnapshot struct {
	ID             domain.RoomID               `json:"id"`
	CurrentSong    *domain.Song                `json:"currentSong"`
	Vote           domain.Vote                 `json:"vote"`
	ConnectedUsers map[domain.UserID]MemberDTO `json:"connectedUsers"`
}

// RoomService is the core-facing API of a room.
// It owns the membership set but never touches transport resources.
type RoomService interface {
	ID() domain.RoomID
	MemberCount() int
	Snapshot() RoomSnapshot
	Member(id domain.UserID) (*Participant, bool)
	// Members returns every member except the given ids.
	Members(except ...domain.UserID) []*Participant
	Closed() bool

	// AddMember fails with ErrRoomNotFound once the room was closed and with
	// ErrRoomFull when limit > 0 is reached. Re-adding an id overwrites it.
	AddMember(p *Participant, limit int) error
	// RemoveMember closes the room when the last member leaves.
	RemoveMember(id domain.UserID) (remaining int, err error)

	// Do runs fn while no other Do call on the same room is running.
	Do(fn func())
}

type RoomInfo struct {
	ID          domain.RoomID `json:"id"`
	MemberCount int           `json:"memberCount"`
}

// PublishResult reports delivery stats/backpressure for one dispatch.
type PublishResult struct {
	SendTo  int
	Dropped []*Participant
}

//go:generate mockgen -destination=../mocks/room_manager_mock.go -package=mocks github.com/dkeye/Rooms/internal/core RoomManager

// RoomManager is the only owner of the room registry. Every membership
// change goes through it and is followed by the matching broadcast.
type RoomManager interface {
	CreateRoom() domain.RoomID
	GetRoom(id domain.RoomID) (RoomSnapshot, bool)
	DoesRoomExist(id domain.RoomID) bool
	List() []RoomInfo

	JoinRoom(id domain.RoomID, p *Participant) error
	LeaveRoom(id domain.RoomID, p *Participant) error

	PublishAll(id domain.RoomID, e Event) (PublishResult, error)
	PublishAllBut(id domain.RoomID, e Event, excluded domain.UserID) (PublishResult, error)
	PublishTo(id domain.RoomID, e Event, target domain.UserID) (PublishResult, error)
}
