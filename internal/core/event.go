package core

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/dkeye/Rooms/internal/domain"
)

type EventType string

const (
	EventWelcome EventType = "UserWelcomeEvent"
	EventJoin    EventType = "UserJoinEvent"
	EventLeft    EventType = "UserLeftEvent"
)

// Event is a membership transition sent to room members.
// The set of variants is closed: Welcome, Join and Left.
type Event interface {
	ID() string
	Type() EventType
	isEvent()
}

// Header is the part every event carries on the wire.
type Header struct {
	EventID string    `json:"eventId"`
	Kind    EventType `json:"type"`
}

func newHeader(kind EventType) Header {
	return Header{EventID: uuid.NewString(), Kind: kind}
}

func (h Header) ID() string      { return h.EventID }
func (h Header) Type() EventType { return h.Kind }
func (Header) isEvent()          {}

// Welcome goes to the newcomer only and carries the room as it is
// right after the newcomer was added.
type Welcome struct {
	Header
	UserID    domain.UserID `json:"userId"`
	Username  string        `json:"username"`
	RoomState RoomSnapshot  `json:"roomState"`
}

// Join goes to everyone in the room except the newcomer.
type Join struct {
	Header
	UserID   domain.UserID `json:"userId"`
	Username string        `json:"username"`
}

// Left goes to the members that remain after someone exits.
type Left struct {
	Header
	UserID domain.UserID `json:"userId"`
}

func NewWelcome(u *domain.User, state RoomSnapshot) Welcome {
	return Welcome{Header: newHeader(EventWelcome), UserID: u.ID, Username: u.Username, RoomState: state}
}

func NewJoin(u *domain.User) Join {
	return Join{Header: newHeader(EventJoin), UserID: u.ID, Username: u.Username}
}

func NewLeft(id domain.UserID) Left {
	return Left{Header: newHeader(EventLeft), UserID: id}
}

// EncodeEvent renders an event as a JSON text frame. Map keys come out sorted.
func EncodeEvent(e Event) (Frame, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", e.Type(), err)
	}
	return b, nil
}

func DecodeEvent(data []byte) (Event, error) {
	var h Header
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("decode event header: %w", err)
	}
	var (
		e   Event
		err error
	)
	switch h.Kind {
	case EventWelcome:
		var w Welcome
		err = json.Unmarshal(data, &w)
		e = w
	case EventJoin:
		var j Join
		err = json.Unmarshal(data, &j)
		e = j
	case EventLeft:
		var l Left
		err = json.Unmarshal(data, &l)
		e = l
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, h.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", h.Kind, err)
	}
	return e, nil
}
