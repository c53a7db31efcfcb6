package app

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dkeye/Rooms/internal/core"
	"github.com/dkeye/Rooms/internal/domain"
)

var errSendFailed = errors.New("send failed")

// recordingSignal keeps every frame it was handed.
type recordingSignal struct {
	mu     sync.Mutex
	frames []core.Frame
	fail   bool
	closed bool
}

func (s *recordingSignal) TrySend(f core.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail || s.closed {
		return errSendFailed
	}
	s.frames = append(s.frames, f)
	return nil
}

func (s *recordingSignal) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *recordingSignal) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *recordingSignal) events(t *testing.T) []core.Event {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Event, 0, len(s.frames))
	for _, f := range s.frames {
		e, err := core.DecodeEvent(f)
		require.NoError(t, err)
		out = append(out, e)
	}
	return out
}

func newMember(id, name string) (*core.Participant, *recordingSignal) {
	sig := &recordingSignal{}
	u := &domain.User{ID: domain.UserID(id), Username: name}
	return core.NewParticipant(u, core.NewAddress("127.0.0.1", 40000, sig)), sig
}

func fixedIDs(ids ...domain.RoomID) func() domain.RoomID {
	var mu sync.Mutex
	i := 0
	return func() domain.RoomID {
		mu.Lock()
		defer mu.Unlock()
		id := ids[i%len(ids)]
		i++
		return id
	}
}
