package core

import (
	"context"
	"errors"
	"sync"
)

type fakeSignal struct {
	mu     sync.Mutex
	frames []Frame
	fail   bool
	closed bool
}

func (f *fakeSignal) TrySend(fr Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail || f.closed {
		return errors.New("send failed")
	}
	f.frames = append(f.frames, fr)
	return nil
}

func (f *fakeSignal) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

type staticNames struct {
	name string
	err  error
}

func (s staticNames) Username(_ context.Context) (string, error) { return s.name, s.err }
