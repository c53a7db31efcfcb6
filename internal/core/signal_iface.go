package core

//go:generate mockgen -source=signal_iface.go -destination=../mocks/signal_mock.go -package=mocks

// Frame is a raw encoded payload.
type Frame []byte

// SignalConnection abstracts for a system messaging transport
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	// TrySend must not block; a full or closed connection returns an error.
	TrySend(Frame) error
	Close()
}
