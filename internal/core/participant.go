package core

import (
	"context"
	"fmt"

	"github.com/dkeye/Rooms/internal/domain"
)

// UsernameSource hands out display names for new connections.
type UsernameSource interface {
	Username(ctx context.Context) (string, error)
}

// Participant binds a domain.User and its transport endpoint.
// This is what a room stores and fans out to.
type Participant struct {
	User    *domain.User
	Address Address
	// Queue is reserved for outbound buffering and is not drained yet.
	Queue []Frame
}

func NewParticipant(user *domain.User, addr Address) *Participant {
	return &Participant{User: user, Address: addr}
}

// BuildParticipant creates the participant for one connection attempt.
// It does not touch any room.
func BuildParticipant(ctx context.Context, origin string, conn SignalConnection, names UsernameSource) (*Participant, error) {
	host, port, err := ParseOrigin(origin)
	if err != nil {
		return nil, err
	}
	name, err := names.Username(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve username: %w", err)
	}
	user, err := domain.NewUser(name)
	if err != nil {
		return nil, fmt.Errorf("new user: %w", err)
	}
	return NewParticipant(user, NewAddress(host, port, conn)), nil
}

func (p *Participant) ID() domain.UserID { return p.User.ID }

func (p *Participant) Send(f Frame) error {
	if p.Address.Signal() == nil {
		return fmt.Errorf("participant %s: no signal connection", p.User.ID)
	}
	return p.Address.Signal().TrySend(f)
}

func (p *Participant) DTO() MemberDTO {
	return MemberDTO{ID: p.User.ID, Username: p.User.Username}
}
